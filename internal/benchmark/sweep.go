package benchmark

import (
	"context"
	"log/slog"
	"os"
	"time"

	scerrors "scalebench/internal/errors"
)

// Reporter receives progress events while a sweep runs.
type Reporter interface {
	SeriesStarted(steps int64, total int)
	SampleRecorded(steps int64, sample Sample, done, total int)
	SampleFailed(steps int64, threads int, err error, done, total int)
}

// Plan is the set of runs a Driver performs.
type Plan struct {
	Steps   []int64
	Threads []int
	Marker  string
}

// Driver executes a Plan against a Runner, strictly one run at a time.
type Driver struct {
	Runner     Runner
	Executable string
	Reporters  []Reporter
	Logger     *slog.Logger
	now        func() time.Time
}

func NewDriver(runner Runner, executable string, reporters ...Reporter) *Driver {
	return &Driver{
		Runner:     runner,
		Executable: executable,
		Reporters:  reporters,
		Logger:     slog.Default(),
		now:        time.Now,
	}
}

// Sweep runs every (steps, threads) combination of plan: workload sizes in
// the given order, thread counts ascending. A failed run is reported and
// recorded as a Failure; it never aborts the sweep. Only cancellation of ctx
// stops early, in which case the partial sweep is returned with ctx.Err().
func (d *Driver) Sweep(ctx context.Context, plan Plan) (*Sweep, error) {
	marker := plan.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	sweep := &Sweep{
		StartedAt:  d.clock(),
		Executable: d.Executable,
		Threads:    append([]int(nil), plan.Threads...),
		Series:     make([]Series, 0, len(plan.Steps)),
	}
	if host, err := os.Hostname(); err == nil {
		sweep.Host = host
	}

	total := len(plan.Steps) * len(plan.Threads)
	done := 0

	for _, steps := range plan.Steps {
		sweep.Series = append(sweep.Series, Series{Steps: steps, Samples: []Sample{}})
		series := &sweep.Series[len(sweep.Series)-1]

		for _, r := range d.Reporters {
			r.SeriesStarted(steps, total)
		}

		for _, threads := range plan.Threads {
			if err := ctx.Err(); err != nil {
				sweep.FinishedAt = d.clock()
				return sweep, err
			}

			sample, err := d.measure(ctx, steps, threads, marker)
			done++
			if err != nil {
				if ctx.Err() != nil {
					sweep.FinishedAt = d.clock()
					return sweep, ctx.Err()
				}
				series.Failures = append(series.Failures, Failure{
					Threads: threads,
					Kind:    scerrors.Kind(err),
					Message: err.Error(),
				})
				for _, r := range d.Reporters {
					r.SampleFailed(steps, threads, err, done, total)
				}
				continue
			}

			series.Samples = append(series.Samples, sample)
			for _, r := range d.Reporters {
				r.SampleRecorded(steps, sample, done, total)
			}
		}
	}

	sweep.FinishedAt = d.clock()
	return sweep, nil
}

func (d *Driver) measure(ctx context.Context, steps int64, threads int, marker string) (Sample, error) {
	out, err := d.Runner.Run(ctx, steps, threads)
	if err != nil {
		return Sample{}, err
	}

	d.logger().Debug("program finished",
		"steps", steps,
		"threads", threads,
		"exit_code", out.ExitCode,
		"wall_clock", out.WallClock,
		"stderr", out.Stderr,
	)

	seconds, err := ParseDuration(out.Stdout, marker)
	if err != nil {
		return Sample{}, err
	}

	return Sample{Threads: threads, Seconds: seconds, WallClock: out.WallClock}, nil
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *Driver) clock() time.Time {
	if d.now == nil {
		return time.Now()
	}
	return d.now()
}
