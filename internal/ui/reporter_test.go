package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"scalebench/internal/benchmark"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Plain text keeps assertions independent of the terminal running the tests.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)

	r.SeriesStarted(100_000_000, 4)
	r.SampleRecorded(100_000_000, benchmark.Sample{Threads: 1, Seconds: 1.2345}, 1, 4)
	r.SampleFailed(100_000_000, 2, errors.New("boom"), 2, 4)

	out := buf.String()
	assert.Contains(t, out, "Testing steps: 100,000,000")
	assert.Contains(t, out, "threads: 1 -> 1.234500s")
	assert.Contains(t, out, "error for 2 threads: boom")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "50%")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, fraction(0, 0))
	assert.Equal(t, 0.5, fraction(1, 2))
	assert.Equal(t, 1.0, fraction(3, 2))
}
