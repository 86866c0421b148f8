// Package match provides the primary "xlmatch match" command.
package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kordata/xlmatch/internal/config"
	enginematch "github.com/kordata/xlmatch/internal/match"
	"github.com/kordata/xlmatch/internal/output"
	"github.com/kordata/xlmatch/internal/runlog"
)

// NewCommand returns the match command.
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
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match target rows against a source lookup table",
		Long: `Builds a key→value lookup table from the source workbook (merged cells
are flattened first), then resolves every row of the target workbook by
composite key and writes the result into a column.

By default a new column named 匹配_<value column> is appended; use
--column to overwrite an existing column or --header to name the new one.

Example:
  xlmatch match --source rates.xlsx --target orders.xlsx \
      --keys Region,Dept --value Rate --accumulate --output orders_out.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("accumulate") {
				accumulate = cfg.Defaults.Accumulate
			}
			if sourceSheet == "" {
				sourceSheet = cfg.Defaults.SourceSheet
			}
			if targetSheet == "" {
				targetSheet = cfg.Defaults.TargetSheet
			}

			runCfg := enginematch.RunConfig{
				SourcePath:   source,
				SourceSheet:  sourceSheet,
				TargetPath:   target,
				TargetSheet:  targetSheet,
				KeyColumns:   splitKeys(keys),
				ValueColumn:  value,
				Accumulate:   accumulate,
				TargetColumn: column,
				OutputHeader: header,
				OutputPath:   outPath,
			}

			result, runErr := enginematch.Run(runCfg)
			recordRun(cfg, runCfg, result, runErr)
			if runErr != nil {
				return runErr
			}

			if jsonFlag {
				return output.WriteJSON(result)
			}

			output.Success.Printf("Matched %d/%d rows\n", result.Matched, result.Total)
			fmt.Printf("  Index keys: %d\n", result.Keys)
			fmt.Printf("  Column:     %s\n", result.Column)
			fmt.Printf("  Output:     %s\n", result.OutputPath)
			output.Dim.Printf("  (%s)\n", result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source workbook holding the lookup data (required)")
	cmd.Flags().StringVar(&sourceSheet, "source-sheet", "", "Source sheet name (default: first sheet)")
	cmd.Flags().StringVar(&target, "target", "", "Target workbook whose rows are matched (required)")
	cmd.Flags().StringVar(&targetSheet, "target-sheet", "", "Target sheet name (default: first sheet)")
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "Ordered key column names, comma-separated (required)")
	cmd.Flags().StringVar(&value, "value", "", "Value column name in the source workbook (required)")
	cmd.Flags().BoolVar(&accumulate, "accumulate", false, "Combine same-key values (numeric sum or ;-joined set)")
	cmd.Flags().StringVar(&column, "column", "", "Existing target column to overwrite (default: append a new column)")
	cmd.Flags().StringVar(&header, "header", "", "Header for the appended column (default: 匹配_<value>)")
	cmd.Flags().StringVar(&outPath, "output", "", "Output workbook path (default: rewrite target in place)")

	return cmd
}

// splitKeys tolerates both repeated --keys flags and a single
// comma-separated value.
func splitKeys(keys []string) []string {
	var out []string
	for _, k := range keys {
		for _, p := range strings.Split(k, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func recordRun(cfg *config.Config, runCfg enginematch.RunConfig, result *enginematch.Result, runErr error) {
	store := runlog.DefaultStore()
	store.Enabled = cfg.History.Enabled
	if cfg.History.Path != "" {
		store.Path = cfg.History.Path
	}

	entry := runlog.Entry{
		Timestamp:  time.Now(),
		Source:     runCfg.SourcePath,
		Target:     runCfg.TargetPath,
		Output:     runCfg.OutputPath,
		KeyColumns: runCfg.KeyColumns,
		Value:      runCfg.ValueColumn,
		Accumulate: runCfg.Accumulate,
	}
	if result != nil {
		entry.IndexKeys = result.Keys
		entry.Matched = result.Matched
		entry.Total = result.Total
		entry.DurationMs = result.DurationMs
		entry.Output = result.OutputPath
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	store.Record(entry)
}
