package benchmark

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"time"

	scerrors "scalebench/internal/errors"
)

// Output is what one invocation of the external program produced.
type Output struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	WallClock time.Duration
}

// Runner defines the interface for invoking the program under test.
type Runner interface {
	Run(ctx context.Context, steps int64, threads int) (Output, error)
}

// execCommandContext allows mocking in tests.
var execCommandContext = exec.CommandContext

// ProcessRunner runs the external program as a subprocess, one call at a time.
type ProcessRunner struct {
	Executable string
	// Timeout bounds a single run. Zero means wait indefinitely.
	Timeout time.Duration
}

func NewProcessRunner(executable string, timeout time.Duration) *ProcessRunner {
	return &ProcessRunner{Executable: executable, Timeout: timeout}
}

// Run invokes "<executable> <steps> <threads>" and waits for it to exit.
// A non-zero exit status is not an error here. A process killed by the
// per-run timeout yields a *errors.TimeoutError; a failure to start it (or an
// interrupted wait) yields a *errors.LaunchError.
func (r *ProcessRunner) Run(ctx context.Context, steps int64, threads int) (Output, error) {
	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := execCommandContext(runCtx, r.Executable, strconv.FormatInt(steps, 10), strconv.Itoa(threads))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := Output{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		WallClock: time.Since(start),
	}

	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	started := errors.As(err, &exitErr)
	switch {
	case started && runCtx.Err() == nil:
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	case started && ctx.Err() == nil:
		return out, &scerrors.TimeoutError{
			Executable: r.Executable,
			Steps:      steps,
			Threads:    threads,
			Timeout:    r.Timeout,
			Err:        runCtx.Err(),
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return out, &scerrors.LaunchError{Executable: r.Executable, Steps: steps, Threads: threads, Err: err}
}
