package errors

import (
	"errors"
	"fmt"
	"time"
)

// Failure kinds as recorded in a sweep.
const (
	KindLaunch  = "launch"
	KindFormat  = "format"
	KindTimeout = "timeout"
	KindUnknown = "unknown"
)

// ErrMarkerNotFound is returned when no output line contains the timing marker.
var ErrMarkerNotFound = errors.New("timing line not found in output")

// LaunchError means the external program could not be started at all.
type LaunchError struct {
	Executable string
	Steps      int64
	Threads    int
	Err        error
}

// Error implements the error interface
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s (steps=%d, threads=%d): %v", e.Executable, e.Steps, e.Threads, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// TimeoutError means the program started but was killed after running
// longer than the per-run timeout.
type TimeoutError struct {
	Executable string
	Steps      int64
	Threads    int
	Timeout    time.Duration
	Err        error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s killed after %v (steps=%d, threads=%d): %v", e.Executable, e.Timeout, e.Steps, e.Threads, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// FormatError means the program ran but its output did not carry a usable timing line.
type FormatError struct {
	Line string
	Err  error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("unparsable output: %v", e.Err)
	}
	return fmt.Sprintf("unparsable timing line %q: %v", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Kind classifies err as one of the Kind constants.
func Kind(err error) string {
	var launchErr *LaunchError
	var timeoutErr *TimeoutError
	var formatErr *FormatError

	switch {
	case errors.As(err, &launchErr):
		return KindLaunch
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &formatErr):
		return KindFormat
	default:
		return KindUnknown
	}
}

// IsLaunch reports whether err is (or wraps) a LaunchError.
func IsLaunch(err error) bool {
	return Kind(err) == KindLaunch
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	return Kind(err) == KindTimeout
}

// IsFormat reports whether err is (or wraps) a FormatError.
func IsFormat(err error) bool {
	return Kind(err) == KindFormat
}
