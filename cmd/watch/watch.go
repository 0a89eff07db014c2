// Package watch provides the watch command: run a recipe on workbooks as
// they appear in watched folders.
package watch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/xlbatch/internal/config"
	"github.com/klytics/xlbatch/internal/engine"
	"github.com/klytics/xlbatch/internal/recipe"
	"github.com/klytics/xlbatch/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		outDir     string
		backupDir  string
		recursive  bool
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch <recipe.yaml> <dir> [dirs...]",
		Short: "Apply a recipe to workbooks as they appear",
		Long: `Watch one or more folders and apply the recipe to every .xlsx file
that is created or modified there. Runs until interrupted. Backups and
lock files are ignored so processed output never retriggers the watcher.`,
		Example: `  xlbatch watch cleanup.yaml ./inbox
  xlbatch watch cleanup.yaml ./inbox --out-dir ./done --recursive`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}
			if backupDir == "" {
				backupDir = cfg.BackupDir
			}

			r, err := recipe.Load(args[0])
			if err != nil {
				return err
			}

			proc := &engine.Processor{OutDir: outDir, BackupDir: backupDir}
			w, err := watch.New(watch.Config{
				Dirs:       args[1:],
				Recursive:  recursive,
				DebounceMs: debounceMs,
			}, func(path string) error {
				summary := proc.Run(cmd.Context(), []string{path}, r.Steps)
				if summary.Failed > 0 {
					return fmt.Errorf("%d of %d step(s) failed", summary.Failed, summary.Steps)
				}
				return nil
			})
			if err != nil {
				return err
			}

			return w.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Write edited copies here instead of in place")
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "Backup directory (default: .bak.xlsx next to each file)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch subdirectories too")
	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Milliseconds to wait for a file to settle")

	return cmd
}
