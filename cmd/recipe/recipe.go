// Package recipe provides CLI commands for working with recipe files.
package recipe

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlbatch/internal/recipe"
)

// NewCommand returns the recipe command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Validate and inspect recipe files",
	}

	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newShowCommand())

	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <recipe.yaml>",
		Short: "Check a recipe file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := recipe.Load(args[0])
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Printf("Recipe %q is valid: %d step(s).\n", r.Name, len(r.Steps))
			return nil
		},
	}
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe.yaml>",
		Short: "Print a recipe's steps in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			r, err := recipe.Load(args[0])
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}

			name := r.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("Recipe: %s\n\n", name)
			for i, step := range r.Steps {
				fmt.Printf("  step %d  %s\n", i+1, step.Describe())
			}
			return nil
		},
	}
}
