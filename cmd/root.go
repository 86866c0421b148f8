// Package cmd contains all CLI commands for the xlmatch binary.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdbatch "github.com/kordata/xlmatch/cmd/batch"
	"github.com/kordata/xlmatch/cmd/completion"
	cmdconfig "github.com/kordata/xlmatch/cmd/config"
	"github.com/kordata/xlmatch/cmd/history"
	"github.com/kordata/xlmatch/cmd/inspect"
	cmdmatch "github.com/kordata/xlmatch/cmd/match"
	cmdshell "github.com/kordata/xlmatch/cmd/shell"
	"github.com/kordata/xlmatch/cmd/unmerge"
	"github.com/kordata/xlmatch/cmd/version"
	cmdwatch "github.com/kordata/xlmatch/cmd/watch"
	"github.com/kordata/xlmatch/internal/shell"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlmatch",
		Short: "Merged-cell-aware spreadsheet key/value matcher",
		Long: `xlmatch — look up rows across spreadsheets, merged cells included.

Flattens merged-cell regions in a source .xlsx workbook into a key→value
lookup table, then resolves each row of a target workbook by composite key
and writes the result into a column.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(cmdmatch.NewCommand())
	rootCmd.AddCommand(inspect.NewCommand())
	rootCmd.AddCommand(unmerge.NewCommand())
	rootCmd.AddCommand(cmdbatch.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(history.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	shell.DefaultRunner = runForShell

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// runForShell executes a command line from the interactive shell against a
// fresh root command, so per-run flag state never leaks between commands.
func runForShell(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
