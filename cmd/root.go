// Package cmd contains all CLI commands for the xlbatch binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlbatch/cmd/completion"
	cmdconfig "github.com/klytics/xlbatch/cmd/config"
	"github.com/klytics/xlbatch/cmd/ops"
	cmdrecipe "github.com/klytics/xlbatch/cmd/recipe"
	"github.com/klytics/xlbatch/cmd/run"
	cmdshell "github.com/klytics/xlbatch/cmd/shell"
	"github.com/klytics/xlbatch/cmd/version"
	cmdwatch "github.com/klytics/xlbatch/cmd/watch"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlbatch",
		Short: "Batch editor for Excel workbooks",
		Long: `xlbatch — batch edits for .xlsx workbooks.

Describe the edits once as a recipe of steps — convert formulas, merge or
split cells, add sheets, insert rows, recolor ranges — and apply them to
any number of workbooks. Files are backed up before they are touched, a
failed step never stops the run, and every outcome lands in the report.`,
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
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(ops.NewCommand())
	rootCmd.AddCommand(cmdrecipe.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
