package errors

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "launch error",
			err:  &LaunchError{Executable: "./pi_calc", Steps: 100, Threads: 2, Err: os.ErrNotExist},
			want: KindLaunch,
		},
		{
			name: "wrapped launch error",
			err:  fmt.Errorf("run: %w", &LaunchError{Executable: "./pi_calc", Err: os.ErrPermission}),
			want: KindLaunch,
		},
		{
			name: "timeout error",
			err:  &TimeoutError{Executable: "./pi_calc", Steps: 100, Threads: 2, Err: errors.New("deadline exceeded")},
			want: KindTimeout,
		},
		{
			name: "format error",
			err:  &FormatError{Err: ErrMarkerNotFound},
			want: KindFormat,
		},
		{
			name: "generic error",
			err:  errors.New("boom"),
			want: KindUnknown,
		},
		{
			name: "nil",
			err:  nil,
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLaunchError_Unwrap(t *testing.T) {
	err := &LaunchError{Executable: "./missing", Steps: 1000, Threads: 4, Err: os.ErrNotExist}

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected LaunchError to unwrap to os.ErrNotExist")
	}
	if !IsLaunch(err) || IsFormat(err) {
		t.Error("expected launch classification only")
	}
	want := "failed to launch ./missing (steps=1000, threads=4): file does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFormatError_Message(t *testing.T) {
	_, parseErr := strconv.ParseFloat("not_a_number", 64)
	err := &FormatError{Line: "Czas obliczen: not_a_number s", Err: parseErr}

	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatal("expected FormatError to unwrap to *strconv.NumError")
	}
	if !IsFormat(err) {
		t.Error("expected format classification")
	}

	bare := &FormatError{Err: ErrMarkerNotFound}
	if !errors.Is(bare, ErrMarkerNotFound) {
		t.Error("expected ErrMarkerNotFound")
	}
	if bare.Error() != "unparsable output: timing line not found in output" {
		t.Errorf("unexpected message: %s", bare.Error())
	}
}

func TestTimeoutError_Message(t *testing.T) {
	err := &TimeoutError{Executable: "./pi_calc", Steps: 100, Threads: 4, Timeout: 1500 * time.Millisecond, Err: errors.New("deadline exceeded")}
	want := "./pi_calc killed after 1.5s (steps=100, threads=4): deadline exceeded"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsTimeout(fmt.Errorf("run: %w", err)) {
		t.Error("expected wrapped TimeoutError to be a timeout")
	}
}
