// Package run provides the run command: apply a recipe to workbooks.
package run

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlbatch/internal/config"
	"github.com/klytics/xlbatch/internal/engine"
	"github.com/klytics/xlbatch/internal/progress"
	"github.com/klytics/xlbatch/internal/recipe"
	"github.com/klytics/xlbatch/internal/report"
	"github.com/klytics/xlbatch/internal/scan"
)

// NewCommand returns the run subcommand.
func NewCommand() *cobra.Command {
	var (
		outDir       string
		backupDir    string
		reportFormat string
		reportName   string
		recursive    bool
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "run <recipe.yaml> [files|dirs|globs...]",
		Short: "Apply a recipe to workbooks",
		Long: `Apply every step of a recipe to each workbook, in order.

Each file is backed up before it is modified. A failed step is recorded
and the remaining steps still run; a file that cannot be opened fails
all of its steps without stopping the other files. With no file
arguments the current directory is scanned.`,
		Example: `  xlbatch run cleanup.yaml report.xlsx
  xlbatch run cleanup.yaml ./invoices --recursive --out-dir ./done
  xlbatch run cleanup.yaml '*.xlsx' --report xlsx
  xlbatch run cleanup.yaml data.xlsx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

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
			if reportFormat == "" {
				reportFormat = cfg.Report.Format
			}
			if reportName == "" {
				reportName = cfg.Report.Name
			}
			if reportFormat != "text" && reportFormat != "xlsx" && reportFormat != "none" {
				return fmt.Errorf("invalid report format %q — use text, xlsx, or none", reportFormat)
			}

			r, err := recipe.Load(args[0])
			if err != nil {
				return err
			}

			fileArgs := args[1:]
			if len(fileArgs) == 0 {
				fileArgs = []string{"."}
			}
			files, err := scan.Resolve(fileArgs, recursive)
			if err != nil {
				return err
			}

			if dryRun {
				return printPlan(r, files, jsonFlag)
			}

			bar := progress.New("Processing", len(files)*len(r.Steps))
			proc := &engine.Processor{
				OutDir:    outDir,
				BackupDir: backupDir,
				Progress: func(u engine.Update) {
					bar.SetLabel(filepath.Base(u.File))
					bar.Increment(u.Description)
				},
			}

			done := make(chan *engine.Summary, 1)
			go func() {
				done <- proc.Run(cmd.Context(), files, r.Steps)
			}()
			summary := <-done
			bar.Finish(fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed))

			reportDir := outDir
			if reportDir == "" {
				reportDir = "."
			}
			var reportPath string
			switch reportFormat {
			case "text":
				reportPath, err = report.WriteText(summary, reportDir, reportName)
			case "xlsx":
				reportPath, err = report.WriteExcel(summary, reportDir, reportName)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			printSummary(summary, reportPath)
			if summary.Failed > 0 {
				return fmt.Errorf("%d step(s) failed — see the report for details", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Write edited copies here instead of in place")
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "Backup directory (default: .bak.xlsx next to each file)")
	cmd.Flags().StringVar(&reportFormat, "report", "", "Report format: text | xlsx | none")
	cmd.Flags().StringVar(&reportName, "report-name", "", "Report file name override")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan directories recursively")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would run without touching any file")

	return cmd
}

func printPlan(r *recipe.Recipe, files []string, jsonFlag bool) error {
	if jsonFlag {
		plan := struct {
			Recipe string        `json:"recipe"`
			Steps  []recipe.Step `json:"steps"`
			Files  []string      `json:"files"`
		}{r.Name, r.Steps, files}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	name := r.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("Recipe: %s\n\n", name)
	for i, step := range r.Steps {
		fmt.Printf("  step %d  %s\n", i+1, step.Describe())
	}
	fmt.Printf("\nWould process %d file(s):\n", len(files))
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func printSummary(summary *engine.Summary, reportPath string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Println()
	for _, r := range summary.Results {
		if r.Success {
			green.Printf("  ok    ")
		} else {
			red.Printf("  FAIL  ")
		}
		fmt.Printf("%s  step %d  %s  %s\n",
			filepath.Base(r.File), r.Step, r.Description, engine.CleanMessage(r.Message))
	}
	for _, fe := range summary.FileErrors {
		red.Printf("  %s (%s): %s\n", filepath.Base(fe.File), fe.Stage, fe.Message)
	}

	fmt.Printf("\n%d file(s) × %d step(s): %d succeeded, %d failed\n",
		summary.Files, summary.Steps, summary.Succeeded, summary.Failed)
	if summary.Canceled {
		fmt.Println("Run was canceled before all files were processed.")
	}
	if reportPath != "" {
		fmt.Printf("Report written to %s\n", reportPath)
	}
}
