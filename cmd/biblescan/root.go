// Package main provides the entry point for the biblescan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for biblescan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "biblescan",
		Short: "Abbreviation scanner for Bible translation JSON files",
		Long: `Biblescan reads Bible translation JSON files and reports every book
abbreviation they contain, cross-referenced against the multi-word book
name table.

Scan results are saved to a local database by default so that later runs
can be compared against earlier ones. Use 'scan --no-save' to opt out.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
