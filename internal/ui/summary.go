package ui

import (
	"fmt"
	"strings"
	"time"

	"scalebench/internal/analysis"
	"scalebench/internal/benchmark"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
)

// SummaryMarkdown describes a finished sweep as a markdown document: one
// table row per workload size followed by the list of failed runs.
func SummaryMarkdown(sweep benchmark.Sweep) string {
	var sb strings.Builder

	if sweep.ID > 0 {
		fmt.Fprintf(&sb, "# Sweep #%d\n\n", sweep.ID)
	} else {
		sb.WriteString("# Sweep summary\n\n")
	}
	fmt.Fprintf(&sb, "Executable `%s`, %d samples, %d failures, took %s.\n\n",
		sweep.Executable, sweep.SampleCount(), sweep.FailureCount(),
		sweep.FinishedAt.Sub(sweep.StartedAt).Round(time.Millisecond))

	sb.WriteString("| Steps | Samples | Failures | Best threads | Best time (s) | Max speedup | Mean efficiency | Mean overhead |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, r := range analysis.AnalyzeSweep(sweep) {
		if r.Samples == 0 {
			fmt.Fprintf(&sb, "| %s | 0 | %d | - | - | - | - | - |\n", humanize.Comma(r.Steps), r.Failures)
			continue
		}
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %.6f | %.2fx | %.1f%% | %s |\n",
			humanize.Comma(r.Steps), r.Samples, r.Failures, r.BestThreads, r.BestSeconds,
			r.MaxSpeedup, r.MeanEfficiency*100, r.MeanOverhead.Round(time.Microsecond))
	}

	if sweep.FailureCount() > 0 {
		sb.WriteString("\n## Failures\n\n")
		for _, s := range sweep.Series {
			for _, f := range s.Failures {
				fmt.Fprintf(&sb, "- steps %s, %d threads (%s): %s\n", humanize.Comma(s.Steps), f.Threads, f.Kind, f.Message)
			}
		}
	}

	return sb.String()
}

// RenderSummary renders SummaryMarkdown for the terminal. If glamour cannot
// render it, the plain markdown is returned along with the error.
func RenderSummary(sweep benchmark.Sweep) (string, error) {
	md := SummaryMarkdown(sweep)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return md, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md, fmt.Errorf("failed to render summary: %w", err)
	}
	return out, nil
}
