package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"scalebench/internal/benchmark"
	"scalebench/internal/config"
	"scalebench/internal/notify"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fakeRunner prints a timing line of 1/threads seconds unless told to fail.
type fakeRunner struct {
	silent map[int]bool
	nan    map[int]bool
	calls  int
	onRun  func(threads int)
}

func (f *fakeRunner) Run(ctx context.Context, steps int64, threads int) (benchmark.Output, error) {
	f.calls++
	if f.onRun != nil {
		f.onRun(threads)
	}
	if f.nan[threads] {
		return benchmark.Output{Stdout: "Czas obliczen: nan s\n", WallClock: time.Millisecond}, nil
	}
	if f.silent[threads] {
		return benchmark.Output{Stdout: "Wynik PI: 3.14\n", WallClock: time.Millisecond}, nil
	}
	return benchmark.Output{
		Stdout:    fmt.Sprintf("Czas obliczen: %f s\n", 1.0/float64(threads)),
		WallClock: time.Millisecond,
	}, nil
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(ctx context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

type cmdEnv struct {
	dir      string
	chart    string
	history  string
	runner   *fakeRunner
	notifier *recordingNotifier
	shown    []string
}

// setupCmdTest resets viper, points every artifact into a temp dir and
// replaces the process runner, notifier and chart viewer with fakes.
func setupCmdTest(t *testing.T) *cmdEnv {
	t.Helper()

	viper.Reset()
	config.SetDefaults()

	env := &cmdEnv{
		dir:      t.TempDir(),
		runner:   &fakeRunner{silent: map[int]bool{}},
		notifier: &recordingNotifier{},
	}
	env.chart = filepath.Join(env.dir, "performance_chart.png")
	env.history = filepath.Join(env.dir, "history.json")
	viper.Set("chart.output", env.chart)
	viper.Set("chart.width", 4.0)
	viper.Set("chart.height", 3.0)
	viper.Set("store.type", "json")
	viper.Set("store.path", env.history)
	viper.Set("notifications.slack.enabled", false)

	oldRunner, oldNotifier, oldShow := newRunnerFunc, newNotifierFunc, showChartFunc
	newRunnerFunc = func(string, time.Duration) benchmark.Runner { return env.runner }
	newNotifierFunc = func(string) notify.Notifier { return env.notifier }
	showChartFunc = func(path string) error {
		env.shown = append(env.shown, path)
		return nil
	}

	t.Cleanup(func() {
		newRunnerFunc, newNotifierFunc, showChartFunc = oldRunner, oldNotifier, oldShow
		viper.Reset()
	})
	return env
}

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	return executeCommandContext(context.Background(), cmd, args...)
}

func executeCommandContext(ctx context.Context, cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func storeSweeps(t *testing.T, path string, sweeps ...benchmark.Sweep) {
	t.Helper()
	store, err := benchmark.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range sweeps {
		if _, err := store.Save(s); err != nil {
			t.Fatal(err)
		}
	}
}

func testSweep(start time.Time, seconds ...float64) benchmark.Sweep {
	series := benchmark.Series{Steps: 1_000_000, Samples: []benchmark.Sample{}}
	for i, s := range seconds {
		series.Samples = append(series.Samples, benchmark.Sample{Threads: i + 1, Seconds: s})
	}
	return benchmark.Sweep{
		StartedAt:  start,
		FinishedAt: start.Add(5 * time.Second),
		Executable: "./pi_calc",
		Host:       "bench-01",
		Threads:    benchmark.ThreadRange(1, len(seconds)),
		Series:     []benchmark.Series{series},
	}
}
