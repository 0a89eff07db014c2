// Package ops provides commands that document the available operations.
package ops

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlbatch/internal/recipe"
)

// NewCommand returns the ops command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List and describe recipe operations",
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newDescribeCommand())

	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every operation a recipe step can use",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			infos := recipe.Ops()

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			bold := color.New(color.Bold)
			for _, info := range infos {
				bold.Printf("  %-22s", info.Name)
				fmt.Printf(" %s\n", info.Summary)
			}
			return nil
		},
	}
}

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <op>",
		Short: "Show an operation's parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			info, ok := recipe.LookupOp(args[0])
			if !ok {
				return fmt.Errorf("unknown operation %q — run 'xlbatch ops list' for the catalog", args[0])
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			color.New(color.Bold).Println(info.Name)
			fmt.Printf("  %s\n", info.Summary)
			if info.Params != "" {
				fmt.Printf("  Parameters: %s\n", info.Params)
			}
			return nil
		},
	}
}
