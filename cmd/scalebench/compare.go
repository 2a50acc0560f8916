package main

import (
	"fmt"
	"text/tabwriter"

	"scalebench/internal/benchmark"
	"scalebench/internal/config"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var threshold, failThreshold float64

	cmd := &cobra.Command{
		Use:   "compare [prev-id cur-id]",
		Short: "Compare two stored sweeps",
		Long: `Compares the execution time of every (steps, threads) point present in
both sweeps. Without ids the two most recent sweeps are compared.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 sweep ids, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get()
			if err != nil {
				return err
			}

			store, err := newStoreFunc(cfg.Store)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer store.Close()

			prev, curr, err := loadPair(store, args)
			if err != nil {
				return err
			}

			comps := benchmark.Compare(*prev, *curr)
			if len(comps) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Sweeps %d and %d have no points in common.\n", prev.ID, curr.ID)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Comparing sweep %d against %d\n\n", curr.ID, prev.ID)
			printComparison(cmd, comps, threshold)

			if failThreshold > 0 {
				if regs := benchmark.Regressions(comps, failThreshold); len(regs) > 0 {
					return fmt.Errorf("%d points regressed more than %.1f%%, worst %s", len(regs), failThreshold, worst(regs))
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 10.0, "Percentage change reported as SLOWER or FASTER")
	cmd.Flags().Float64Var(&failThreshold, "fail-threshold", 0, "Fail when any point is slower by more than this percentage (0 disables)")
	return cmd
}

func loadPair(store benchmark.Store, args []string) (*benchmark.Sweep, *benchmark.Sweep, error) {
	if len(args) == 2 {
		prevID, err := parseID(args[0])
		if err != nil {
			return nil, nil, err
		}
		currID, err := parseID(args[1])
		if err != nil {
			return nil, nil, err
		}
		prev, err := store.Load(prevID)
		if err != nil {
			return nil, nil, err
		}
		curr, err := store.Load(currID)
		if err != nil {
			return nil, nil, err
		}
		return prev, curr, nil
	}

	sweeps, err := store.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load history: %w", err)
	}
	if len(sweeps) < 2 {
		return nil, nil, fmt.Errorf("need at least two stored sweeps to compare, have %d", len(sweeps))
	}
	return &sweeps[len(sweeps)-2], &sweeps[len(sweeps)-1], nil
}

func printComparison(cmd *cobra.Command, comps []benchmark.Comparison, threshold float64) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STEPS\tTHREADS\tPREV (s)\tCURR (s)\tDIFF\tSTATUS")
	for _, c := range comps {
		status := "SAME"
		if c.Diff > threshold {
			status = "SLOWER"
		} else if c.Diff < -threshold {
			status = "FASTER"
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.6f\t%+.2f%%\t%s\n",
			humanize.Comma(c.Steps), c.Threads, c.Prev, c.Curr, c.Diff, status)
	}
	w.Flush()
}

func worst(comps []benchmark.Comparison) benchmark.Comparison {
	w := comps[0]
	for _, c := range comps[1:] {
		if c.Diff > w.Diff {
			w = c
		}
	}
	return w
}
