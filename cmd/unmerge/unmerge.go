// Package unmerge provides the standalone unmerge-and-fill command.
package unmerge

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kordata/xlmatch/internal/formats/xlsx"
	"github.com/kordata/xlmatch/internal/output"
)

// NewCommand returns the unmerge command.
func NewCommand() *cobra.Command {
	var (
		sheet   string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "unmerge <file.xlsx>",
		Short: "Flatten merged cells into a fully-populated copy",
		Long: `Reads a sheet, copies every merged region's anchor value into all of
its cells, and writes the flattened result to a new workbook. This is the
same flattening pass the match command runs internally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			path := args[0]
			if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
				return fmt.Errorf("expected an .xlsx file, got %q", path)
			}
			if outPath == "" {
				return fmt.Errorf("--output is required — specify where to write the flattened copy")
			}
			if !strings.HasSuffix(strings.ToLower(outPath), ".xlsx") {
				outPath += ".xlsx"
			}

			g, spans, err := xlsx.ReadSheet(path, sheet)
			if err != nil {
				return err
			}
			g.Unmerge(spans)

			if err := xlsx.WriteGrid(g, sheet, outPath); err != nil {
				return err
			}

			if jsonFlag {
				return output.WriteJSON(map[string]any{
					"file":   path,
					"output": outPath,
					"spans":  len(spans),
					"rows":   g.NumRows(),
				})
			}

			output.Success.Printf("Flattened %d merged region(s)\n", len(spans))
			fmt.Printf("  Output: %s (%d rows)\n", outPath, g.NumRows())
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	cmd.Flags().StringVar(&outPath, "output", "", "Output .xlsx path for the flattened copy (required)")

	return cmd
}
