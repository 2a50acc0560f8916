package benchmark

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	scerrors "scalebench/internal/errors"
)

// DefaultMarker identifies the timing line printed by the π program
// ("Czas obliczen: 0.123 s").
const DefaultMarker = "Czas"

// ParseDuration extracts the self-reported duration in seconds from output.
// Only the first line containing marker is considered: the text between its
// first and second colon is split on whitespace and the first token parsed
// as a float. NaN, infinite and negative values are rejected.
func ParseDuration(output, marker string) (float64, error) {
	line, ok := findLine(output, marker)
	if !ok {
		return 0, &scerrors.FormatError{Err: scerrors.ErrMarkerNotFound}
	}

	_, rest, found := strings.Cut(line, ":")
	if !found {
		return 0, &scerrors.FormatError{Line: line, Err: fmt.Errorf("missing ':' separator")}
	}

	value, _, _ := strings.Cut(rest, ":")
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, &scerrors.FormatError{Line: line, Err: fmt.Errorf("no value after ':'")}
	}

	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, &scerrors.FormatError{Line: line, Err: err}
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, &scerrors.FormatError{Line: line, Err: fmt.Errorf("%v is not a valid duration", seconds)}
	}
	return seconds, nil
}

func findLine(output, marker string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, marker) {
			return line, true
		}
	}
	return "", false
}
