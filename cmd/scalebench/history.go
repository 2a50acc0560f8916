package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"scalebench/internal/config"
	"scalebench/internal/utils"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored sweeps",
		Args:  cobra.NoArgs,
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

			sweeps, err := store.LoadAll()
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if len(sweeps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored sweeps.")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tSTARTED\tAGE\tEXECUTABLE\tHOST\tSTEPS\tSAMPLES\tFAILURES\tDURATION")
			for _, s := range sweeps {
				sizes := make([]string, 0, len(s.Series))
				for _, series := range s.Series {
					sizes = append(sizes, humanize.Comma(series.Steps))
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					s.ID,
					s.StartedAt.Local().Format("2006-01-02 15:04:05"),
					utils.FormatSince(s.StartedAt, now),
					s.Executable,
					s.Host,
					strings.Join(sizes, " "),
					s.SampleCount(),
					s.FailureCount(),
					s.FinishedAt.Sub(s.StartedAt).Round(time.Second),
				)
			}
			return w.Flush()
		},
	}
}
