// Package batch provides the "xlmatch batch" command for YAML job files.
package batch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kordata/xlmatch/internal/batch"
	"github.com/kordata/xlmatch/internal/output"
)

// NewCommand returns the batch command.
func NewCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "batch <jobs.yaml>",
		Short: "Run multiple match jobs from a YAML file",
		Long: `Runs every job in a YAML batch file sequentially. A failing job aborts
the batch unless it sets on_failure: skip.

Job file format:
  name: month-end
  jobs:
    - id: sales
      source: rates.xlsx
      target: orders.xlsx
      keys: [Region, Dept]
      value: Rate
      accumulate: true
      output: orders_out.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verboseFlag, _ := cmd.Flags().GetBool("verbose")

			f, err := batch.Load(args[0])
			if err != nil {
				return err
			}

			if dryRun {
				if jsonFlag {
					return output.WriteJSON(f)
				}
				output.Header.Printf("Batch: %s (%d jobs)\n", f.Name, len(f.Jobs))
				for _, job := range f.Jobs {
					fmt.Printf("  %s: %s → %s  keys=%v value=%s\n",
						job.ID, job.SourcePath, job.TargetPath, job.KeyColumns, job.ValueColumn)
				}
				return nil
			}

			runner := batch.NewRunner(verboseFlag)
			results, runErr := runner.Execute(f)

			if jsonFlag {
				if err := output.WriteJSON(results); err != nil {
					return err
				}
				return runErr
			}

			for _, r := range results {
				if r.Error != "" {
					output.WriteError("%s: %s", r.JobID, r.Error)
					continue
				}
				output.Success.Printf("✓ %s", r.JobID)
				fmt.Printf("  matched %d/%d → %s\n", r.Result.Matched, r.Result.Total, r.Result.OutputPath)
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and list jobs without running them")

	return cmd
}
