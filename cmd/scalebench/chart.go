package main

import (
	"fmt"
	"strconv"

	"scalebench/internal/benchmark"
	"scalebench/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart [id]",
		Short: "Re-render the chart of a stored sweep",
		Long:  `Draws the chart for the sweep with the given id, or the latest stored sweep when no id is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				v, _ := cmd.Flags().GetString("output")
				viper.Set("chart.output", v)
			}
			if cmd.Flags().Changed("no-show") {
				v, _ := cmd.Flags().GetBool("no-show")
				viper.Set("chart.show", !v)
			}

			cfg, err := config.Get()
			if err != nil {
				return err
			}

			store, err := newStoreFunc(cfg.Store)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer store.Close()

			sweep, err := loadSweepArg(store, args)
			if err != nil {
				return err
			}
			return renderChart(cmd, cfg, *sweep, true)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Chart file, format by extension")
	cmd.Flags().Bool("no-show", false, "Do not open the chart after saving it")
	return cmd
}

// loadSweepArg loads the sweep named by args[0], or the latest one.
func loadSweepArg(store benchmark.Store, args []string) (*benchmark.Sweep, error) {
	if len(args) == 0 {
		sweep, err := store.LoadLatest()
		if err != nil {
			return nil, fmt.Errorf("failed to load latest sweep: %w", err)
		}
		if sweep == nil {
			return nil, fmt.Errorf("no stored sweeps; run 'scalebench run' first")
		}
		return sweep, nil
	}

	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return store.Load(id)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid sweep id %q", s)
	}
	return id, nil
}
