// Package config provides CLI commands for configuration management.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kordata/xlmatch/internal/config"
	"github.com/kordata/xlmatch/internal/output"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xlmatch configuration",
		Long:  "View and modify settings in ~/.xlmatch/config.yaml.",
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newGetCommand())
	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newPathCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.WriteJSON(cfg)
			}

			output.Header.Println("xlmatch configuration")
			fmt.Printf("  defaults.source_sheet: %s\n", orUnset(cfg.Defaults.SourceSheet))
			fmt.Printf("  defaults.target_sheet: %s\n", orUnset(cfg.Defaults.TargetSheet))
			fmt.Printf("  defaults.accumulate:   %t\n", cfg.Defaults.Accumulate)
			fmt.Printf("  output.format:         %s\n", cfg.Output.Format)
			fmt.Printf("  output.color:          %t\n", cfg.Output.Color)
			fmt.Printf("  history.enabled:       %t\n", cfg.History.Enabled)
			fmt.Printf("  history.path:          %s\n", cfg.History.Path)
			fmt.Printf("  watch.debounce_ms:     %d\n", cfg.Watch.DebounceMs)
			return nil
		},
	}
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val := config.Get(args[0])
			if val == "" {
				fmt.Printf("%s: (not set)\n", args[0])
			} else {
				fmt.Printf("%s: %s\n", args[0], val)
			}
			return nil
		},
	}
}

func newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.Path())
		},
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
