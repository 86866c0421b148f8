// Package history provides commands for the local run history.
package history

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kordata/xlmatch/internal/config"
	"github.com/kordata/xlmatch/internal/output"
	"github.com/kordata/xlmatch/internal/runlog"
)

// NewCommand returns the history command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past match runs",
		Long:  "Every match run is recorded in ~/.xlmatch/history.jsonl (disable with history.enabled: false in the config).",
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newClearCommand())

	return cmd
}

func store() *runlog.Store {
	s := runlog.DefaultStore()
	if cfg, err := config.Load(); err == nil {
		s.Enabled = cfg.History.Enabled
		if cfg.History.Path != "" {
			s.Path = cfg.History.Path
		}
	}
	return s
}

func newShowCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List recorded runs, most recent last",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			entries, err := store().Read()
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			if jsonFlag {
				return output.WriteJSON(entries)
			}

			if len(entries) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}
			for _, e := range entries {
				when := e.Timestamp.Format("2006-01-02 15:04:05")
				if e.Error != "" {
					output.WriteError("%s  %s → %s: %s", when, e.Source, e.Target, e.Error)
					continue
				}
				fmt.Printf("%s  %s → %s  keys=%v value=%s  matched %d/%d\n",
					when, e.Source, e.Target, e.KeyColumns, e.Value, e.Matched, e.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Show at most this many recent runs (0 = all)")
	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics over all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			stats, err := store().Summary()
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.WriteJSON(stats)
			}

			output.Header.Println("Run history")
			fmt.Printf("  Runs:         %d (%d failed)\n", stats.TotalRuns, stats.ErrorCount)
			fmt.Printf("  Rows matched: %d/%d\n", stats.TotalMatched, stats.TotalRows)
			fmt.Printf("  Avg duration: %.0fms\n", stats.AvgDuration)
			return nil
		},
	}
}

func newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store().Clear(); err != nil {
				return err
			}
			fmt.Println("Run history cleared")
			return nil
		},
	}
}
