// Package shell provides the "xlmatch shell" interactive REPL command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	shellpkg "github.com/kordata/xlmatch/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd string
		source  string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive xlmatch shell",
		Long: `Start an interactive REPL with history and tab completion.

Set a default source workbook once with 'set source <file>' and run
repeated matches against it without retyping the flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shellpkg.NewSession()
			if err != nil {
				return err
			}
			if source != "" {
				session.DefaultSource = source
			}
			if evalCmd != "" {
				output, err := session.Eval(cmd.Context(), evalCmd)
				if err != nil {
					return err
				}
				fmt.Print(output)
				return nil
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().StringVar(&source, "source", "", "Default source workbook for the session")
	return cmd
}
