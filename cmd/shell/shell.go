// Package shell provides the interactive shell command.
package shell

import (
	"github.com/spf13/cobra"

	"github.com/klytics/xlbatch/internal/shell"
)

// NewCommand returns the shell subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive step builder",
		Long: `Start an interactive session: build a step list with 'add', pick
workbooks with 'files', and apply everything with 'run'. Step lists can be
saved as recipe files and loaded back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shell.NewSession()
			if err != nil {
				return err
			}
			return session.Run(cmd.Context())
		},
	}
}
