// Package watch provides the "xlmatch watch" command: re-run a match
// whenever the source or target workbook changes.
package watch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kordata/xlmatch/internal/config"
	enginematch "github.com/kordata/xlmatch/internal/match"
	"github.com/kordata/xlmatch/internal/output"
	"github.com/kordata/xlmatch/internal/watch"
)

// NewCommand returns the watch command.
func NewCommand() *cobra.Command {
	var (
		source      string
		sourceSheet string
		target      string
		targetSheet string
		keys        []string
		value       string
		accumulate  bool
		column      string
		header      string
		outPath     string
		debounceMs  int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a match when the workbooks change",
		Long: `Runs the match once, then keeps watching the source and target
workbooks and re-runs the match after every save. Stop with Ctrl+C.

An explicit --output is required so re-runs never race against the
editor holding the target file open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("accumulate") {
				accumulate = cfg.Defaults.Accumulate
			}
			if debounceMs == 0 {
				debounceMs = cfg.Watch.DebounceMs
			}
			if outPath == "" {
				return fmt.Errorf("--output is required in watch mode")
			}

			runCfg := enginematch.RunConfig{
				SourcePath:   source,
				SourceSheet:  sourceSheet,
				TargetPath:   target,
				TargetSheet:  targetSheet,
				KeyColumns:   keys,
				ValueColumn:  value,
				Accumulate:   accumulate,
				TargetColumn: column,
				OutputHeader: header,
				OutputPath:   outPath,
			}
			if err := runCfg.Validate(); err != nil {
				return err
			}

			runOnce := func() {
				result, err := enginematch.Run(runCfg)
				if err != nil {
					output.WriteError("%s", err)
					return
				}
				output.Success.Printf("Matched %d/%d rows → %s\n",
					result.Matched, result.Total, result.OutputPath)
			}

			// Initial run before watching.
			runOnce()

			w, err := watch.New(watch.Config{
				Paths:      []string{source, target},
				DebounceMs: debounceMs,
			})
			if err != nil {
				return err
			}
			w.Handler = func(path string) error {
				fmt.Printf("Change detected: %s\n", path)
				runOnce()
				return nil
			}

			return w.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source workbook holding the lookup data (required)")
	cmd.Flags().StringVar(&sourceSheet, "source-sheet", "", "Source sheet name (default: first sheet)")
	cmd.Flags().StringVar(&target, "target", "", "Target workbook whose rows are matched (required)")
	cmd.Flags().StringVar(&targetSheet, "target-sheet", "", "Target sheet name (default: first sheet)")
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "Ordered key column names, comma-separated (required)")
	cmd.Flags().StringVar(&value, "value", "", "Value column name in the source workbook (required)")
	cmd.Flags().BoolVar(&accumulate, "accumulate", false, "Combine same-key values (numeric sum or ;-joined set)")
	cmd.Flags().StringVar(&column, "column", "", "Existing target column to overwrite (default: append)")
	cmd.Flags().StringVar(&header, "header", "", "Header for the appended column (default: 匹配_<value>)")
	cmd.Flags().StringVar(&outPath, "output", "", "Output workbook path (required)")
	cmd.Flags().IntVar(&debounceMs, "debounce", 0, "Milliseconds to wait after the last change before re-running")

	return cmd
}
