// Package ui prints sweep progress and summaries for humans.
package ui

import (
	"fmt"
	"io"

	"scalebench/internal/benchmark"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
)

// ConsoleReporter writes one line per run with an overall progress bar.
type ConsoleReporter struct {
	out io.Writer
	bar progress.Model
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		out: out,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

var _ benchmark.Reporter = (*ConsoleReporter)(nil)

func (r *ConsoleReporter) SeriesStarted(steps int64, total int) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headerStyle.Render("Testing steps: "+humanize.Comma(steps)))
}

func (r *ConsoleReporter) SampleRecorded(steps int64, sample benchmark.Sample, done, total int) {
	line := sampleStyle.Render(fmt.Sprintf("threads: %d -> %fs", sample.Threads, sample.Seconds))
	fmt.Fprintf(r.out, "%s %s\n", r.bar.ViewAs(fraction(done, total)), line)
}

func (r *ConsoleReporter) SampleFailed(steps int64, threads int, err error, done, total int) {
	line := errorStyle.Render(fmt.Sprintf("error for %d threads: %v", threads, err))
	fmt.Fprintf(r.out, "%s %s\n", r.bar.ViewAs(fraction(done, total)), line)
}

func fraction(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(done) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}
