package benchmark

import (
	"strconv"
	"testing"

	scerrors "scalebench/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	output := `
Wynik PI: 3.141592653589793
Czas obliczen: 1.2345 s
Watki: 4 | Kroki: 100000000
`
	seconds, err := ParseDuration(output, DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, 1.2345, seconds)
}

func TestParseDuration_SingleLine(t *testing.T) {
	seconds, err := ParseDuration("Czas obliczen: 1.2345 s", "Czas")
	require.NoError(t, err)
	assert.Equal(t, 1.2345, seconds)
}

func TestParseDuration_FirstMatchWins(t *testing.T) {
	output := "Czas obliczen: 2.5 s\nCzas obliczen: 9.0 s\n"
	seconds, err := ParseDuration(output, DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, 2.5, seconds)
}

func TestParseDuration_CRLF(t *testing.T) {
	seconds, err := ParseDuration("Wynik PI: 3.14\r\nCzas obliczen: 0.75\r\n", DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, 0.75, seconds)
}

func TestParseDuration_NotANumber(t *testing.T) {
	_, err := ParseDuration("Czas obliczen: not_a_number s", DefaultMarker)
	require.Error(t, err)

	var formatErr *scerrors.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Czas obliczen: not_a_number s", formatErr.Line)

	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
}

func TestParseDuration_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "empty output", output: ""},
		{name: "no marker", output: "Wynik PI: 3.14\nWatki: 2 | Kroki: 10\n"},
		{name: "no colon", output: "Czas obliczen 1.0 s"},
		{name: "nothing after colon", output: "Czas obliczen:   "},
		{name: "nan", output: "Czas obliczen: nan s"},
		{name: "inf", output: "Czas obliczen: inf s"},
		{name: "negative infinity", output: "Czas obliczen: -Inf s"},
		{name: "negative", output: "Czas obliczen: -1 s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDuration(tt.output, DefaultMarker)
			require.Error(t, err)
			assert.True(t, scerrors.IsFormat(err))
		})
	}
}

func TestParseDuration_MarkerNotFound(t *testing.T) {
	_, err := ParseDuration("hello\nworld\n", DefaultMarker)
	assert.ErrorIs(t, err, scerrors.ErrMarkerNotFound)
}

func TestParseDuration_CustomMarker(t *testing.T) {
	seconds, err := ParseDuration("Czas obliczen: 1.0 s\nElapsed: 0.5 s\n", "Elapsed")
	require.NoError(t, err)
	assert.Equal(t, 0.5, seconds)
}

func TestParseDuration_StopsAtSecondColon(t *testing.T) {
	seconds, err := ParseDuration("Czas obliczen: 1.5:00 s", DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, 1.5, seconds)
}

func TestParseDuration_ZeroIsValid(t *testing.T) {
	seconds, err := ParseDuration("Czas obliczen: 0 s", DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, 0.0, seconds)
}
