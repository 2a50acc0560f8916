package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"scalebench/internal/benchmark"
	"scalebench/internal/chart"
	"scalebench/internal/config"
	"scalebench/internal/notify"
	"scalebench/internal/telemetry"
	"scalebench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full sweep and plot the results",
		Long: `Runs the configured executable for every workload size and every
thread count from threads.min to threads.max, one run at a time. Runs that
fail to start or print no parsable time are reported and skipped. The sweep
is then summarized, optionally saved to the history store and drawn as a
line chart.`,
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("executable", "", "Program to benchmark (default ./pi_calc)")
	cmd.Flags().Int64Slice("steps", nil, "Workload sizes, comma separated")
	cmd.Flags().Int("min-threads", 0, "Smallest thread count (default 1)")
	cmd.Flags().Int("max-threads", 0, "Largest thread count (default 50)")
	cmd.Flags().String("marker", "", "Substring identifying the timing line (default Czas)")
	cmd.Flags().StringP("output", "o", "", "Chart file, format by extension (default performance_chart.png)")
	cmd.Flags().Bool("no-show", false, "Do not open the chart after saving it")
	cmd.Flags().Bool("save", true, "Save the sweep to the history store")
	cmd.Flags().Duration("timeout", 0, "Kill a run after this long (0 disables)")
}

// applyRunFlags copies explicitly set flags over the configuration.
func applyRunFlags(flags *pflag.FlagSet) error {
	if flags.Changed("executable") {
		v, _ := flags.GetString("executable")
		viper.Set("executable", v)
	}
	if flags.Changed("steps") {
		v, err := flags.GetInt64Slice("steps")
		if err != nil {
			return err
		}
		viper.Set("steps", v)
	}
	if flags.Changed("min-threads") {
		v, _ := flags.GetInt("min-threads")
		viper.Set("threads.min", v)
	}
	if flags.Changed("max-threads") {
		v, _ := flags.GetInt("max-threads")
		viper.Set("threads.max", v)
	}
	if flags.Changed("marker") {
		v, _ := flags.GetString("marker")
		viper.Set("marker", v)
	}
	if flags.Changed("output") {
		v, _ := flags.GetString("output")
		viper.Set("chart.output", v)
	}
	if flags.Changed("no-show") {
		v, _ := flags.GetBool("no-show")
		viper.Set("chart.show", !v)
	}
	if flags.Changed("save") {
		v, _ := flags.GetBool("save")
		viper.Set("store.save", v)
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		viper.Set("timeout", v)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if err := applyRunFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Get()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	metrics := telemetry.NewSweepMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := telemetry.StartMetricsServer(ctx, cfg.MetricsAddr, metrics); err != nil {
				telemetry.LogWarn("Metrics server stopped", err, "addr", cfg.MetricsAddr)
			}
		}()
	}

	plan := benchmark.Plan{
		Steps:   cfg.Steps,
		Threads: benchmark.ThreadRange(cfg.Threads.Min, cfg.Threads.Max),
		Marker:  cfg.Marker,
	}
	driver := benchmark.NewDriver(
		newRunnerFunc(cfg.Executable, cfg.Timeout),
		cfg.Executable,
		ui.NewConsoleReporter(out),
		metrics,
	)

	telemetry.LogInfo("Starting sweep", "executable", cfg.Executable, "steps", cfg.Steps,
		"min_threads", cfg.Threads.Min, "max_threads", cfg.Threads.Max)

	sweep, sweepErr := driver.Sweep(ctx, plan)
	if sweepErr != nil {
		if !errors.Is(sweepErr, context.Canceled) && !errors.Is(sweepErr, context.DeadlineExceeded) {
			return sweepErr
		}
		fmt.Fprintf(out, "\nSweep interrupted after %d runs\n", sweep.SampleCount()+sweep.FailureCount())
	}

	var storeErr error
	if cfg.Store.Save {
		if storeErr = saveSweep(cfg.Store, sweep); storeErr != nil {
			telemetry.LogWarn("Sweep not saved to history", storeErr, "store", cfg.Store.Type)
		}
	}

	summary, err := ui.RenderSummary(*sweep)
	if err != nil {
		telemetry.LogWarn("Falling back to plain summary", err)
	}
	fmt.Fprintln(out, summary)

	if cfg.Notifications.Slack.Enabled {
		notifier := newNotifierFunc(cfg.Notifications.Slack.WebhookURL)
		if err := notifier.Notify(context.WithoutCancel(ctx), notify.SweepMessage(*sweep)); err != nil {
			telemetry.LogWarn("Failed to send sweep notification", err)
		}
	}

	if err := renderChart(cmd, cfg, *sweep, sweepErr == nil); err != nil {
		return err
	}
	return errors.Join(sweepErr, storeErr)
}

func saveSweep(storeCfg config.StoreConfig, sweep *benchmark.Sweep) error {
	store, err := newStoreFunc(storeCfg)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	id, err := store.Save(*sweep)
	if err != nil {
		return fmt.Errorf("failed to save sweep: %w", err)
	}
	sweep.ID = id
	telemetry.LogInfo("Sweep saved", "id", id, "store", storeCfg.Type)
	return nil
}

func renderChart(cmd *cobra.Command, cfg *config.Config, sweep benchmark.Sweep, show bool) error {
	opts := chart.Options{
		Width:  vg.Length(cfg.Chart.Width) * vg.Inch,
		Height: vg.Length(cfg.Chart.Height) * vg.Inch,
	}
	if err := chart.Render(sweep, cfg.Chart.Output, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Chart saved to %s\n", cfg.Chart.Output)

	if show && cfg.Chart.Show {
		if err := showChartFunc(cfg.Chart.Output); err != nil {
			telemetry.LogWarn("Could not display chart", err, "path", cfg.Chart.Output)
		}
	}
	return nil
}
