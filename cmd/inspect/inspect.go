// Package inspect provides commands for examining workbook structure.
package inspect

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kordata/xlmatch/internal/formats/xlsx"
	"github.com/kordata/xlmatch/internal/output"
)

// NewCommand returns the inspect command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Examine workbook sheets and columns",
		Long:  "List the sheets of a workbook, or the header columns of a sheet, as the matching engine sees them.",
	}

	cmd.AddCommand(newSheetsCommand())
	cmd.AddCommand(newColumnsCommand())

	return cmd
}

func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file.xlsx>",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			path := args[0]
			if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
				return fmt.Errorf("expected an .xlsx file, got %q", path)
			}

			sheets, err := xlsx.ListSheets(path)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.WriteJSON(map[string]any{"file": path, "sheets": sheets})
			}

			output.Header.Printf("%s\n", path)
			for i, s := range sheets {
				fmt.Printf("  %d  %s\n", i+1, s)
			}
			output.Dim.Printf("  (%d sheets)\n", len(sheets))
			return nil
		},
	}
}

func newColumnsCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "columns <file.xlsx>",
		Short: "List the header columns of a sheet",
		Long:  "Lists the column names of the header row. Empty header cells are shown with their synthesized 列N names, exactly as --keys and --value resolve them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			path := args[0]
			cols, err := xlsx.ListColumns(path, sheet)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.WriteJSON(map[string]any{"file": path, "sheet": sheet, "columns": cols})
			}

			output.Header.Printf("%s\n", path)
			for i, c := range cols {
				fmt.Printf("  %d  %s\n", i+1, c)
			}
			output.Dim.Printf("  (%d columns)\n", len(cols))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	return cmd
}
