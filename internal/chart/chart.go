// Package chart renders a sweep as a thread-scaling line chart.
package chart

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"scalebench/internal/benchmark"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	Title  = "PI computation performance scaling"
	XLabel = "Number of threads"
	YLabel = "Execution time (s)"
)

// Options controls the rendered image.
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions matches a 12x7 inch figure.
func DefaultOptions() Options {
	return Options{Width: 12 * vg.Inch, Height: 7 * vg.Inch}
}

// SeriesLabel formats the legend entry for a workload size.
func SeriesLabel(steps int64) string {
	return "Steps: " + humanize.Comma(steps)
}

// Build creates the plot: one line per series in sweep order, x = thread
// count, y = reported seconds. Every sample carries its own thread count, so
// a failed run leaves a gap instead of shifting later points. Series with
// no samples are left out.
func Build(sweep benchmark.Sweep) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, series := range sweep.Series {
		if len(series.Samples) == 0 {
			slog.Warn("no samples to plot", "steps", series.Steps)
			continue
		}

		line, err := plotter.NewLine(Points(series))
		if err != nil {
			return nil, fmt.Errorf("failed to build line for steps %d: %w", series.Steps, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(SeriesLabel(series.Steps), line)
	}

	return p, nil
}

// Points pairs each sample's thread count with its reported seconds.
func Points(series benchmark.Series) plotter.XYs {
	pts := make(plotter.XYs, len(series.Samples))
	for i, s := range series.Samples {
		pts[i].X = float64(s.Threads)
		pts[i].Y = s.Seconds
	}
	return pts
}

// Render builds the chart for sweep and saves it at path. The image format
// follows the file extension (png, jpg, svg, pdf, eps, tif).
func Render(sweep benchmark.Sweep, path string, opts Options) error {
	p, err := Build(sweep)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", path, err)
	}
	return nil
}
