package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klytics/xlbatch/internal/recipe"
	"github.com/klytics/xlbatch/internal/workbook"
)

// Update is one progress notification, sent after every step.
type Update struct {
	File        string
	FileIndex   int
	TotalFiles  int
	StepIndex   int
	TotalSteps  int
	Description string
	Success     bool
}

// FileError records a file-level failure (backup, open, or save).
type FileError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Summary aggregates everything that happened in one batch run.
type Summary struct {
	Results    []StepResult `json:"results"`
	FileErrors []FileError  `json:"fileErrors,omitempty"`
	Files      int          `json:"files"`
	Steps      int          `json:"steps"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Canceled   bool         `json:"canceled,omitempty"`
}

// Processor runs a step list over a set of files, one file at a time.
// Exactly one workbook is open at any moment; failures never escape Run.
type Processor struct {
	// OutDir receives the edited copies. Empty means edit in place.
	OutDir string
	// BackupDir receives pre-edit backups. Empty means a .bak.xlsx sibling.
	BackupDir string
	// Progress, when set, is called after every step.
	Progress func(Update)
}

// Run processes every file with every step, in order. A failed step is
// recorded and the remaining steps still run; a file that cannot be backed
// up or opened fails all of its steps without stopping other files.
// Cancellation is honored between files only, so no workbook is ever left
// half-saved. The invariant len(Results) == files × steps holds for every
// non-canceled run.
func (p *Processor) Run(ctx context.Context, files []string, steps []recipe.Step) *Summary {
	summary := &Summary{Files: len(files), Steps: len(steps)}
	exec := NewExecutor()

	for fi, file := range files {
		if ctx.Err() != nil {
			summary.Canceled = true
			break
		}
		p.processFile(exec, summary, file, fi, len(files), steps)
	}

	for _, r := range summary.Results {
		if r.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}

func (p *Processor) processFile(exec *Executor, summary *Summary, file string, fileIndex, totalFiles int, steps []recipe.Step) {
	if _, err := workbook.Backup(file, p.BackupDir); err != nil {
		p.failAllSteps(summary, file, fileIndex, totalFiles, steps, "backup", err)
		return
	}

	wb, err := workbook.Open(file)
	if err != nil {
		p.failAllSteps(summary, file, fileIndex, totalFiles, steps, "open", err)
		return
	}
	defer wb.Close()

	for i, step := range steps {
		result := exec.Execute(wb, i+1, step)
		summary.Results = append(summary.Results, result)
		p.notify(Update{
			File:        file,
			FileIndex:   fileIndex,
			TotalFiles:  totalFiles,
			StepIndex:   i + 1,
			TotalSteps:  len(steps),
			Description: result.Description,
			Success:     result.Success,
		})
	}

	if err := wb.SaveAs(p.outputPath(file)); err != nil {
		summary.FileErrors = append(summary.FileErrors, FileError{
			File:    file,
			Stage:   "save",
			Message: err.Error(),
		})
	}
}

// failAllSteps materializes one failed result per configured step so the
// results count stays files × steps even when a file never opened.
func (p *Processor) failAllSteps(summary *Summary, file string, fileIndex, totalFiles int, steps []recipe.Step, stage string, cause error) {
	summary.FileErrors = append(summary.FileErrors, FileError{
		File:    file,
		Stage:   stage,
		Message: cause.Error(),
	})

	for i, step := range steps {
		desc := step.Describe()
		summary.Results = append(summary.Results, StepResult{
			File:        file,
			Step:        i + 1,
			Op:          step.Op,
			Description: desc,
			Success:     false,
			Message:     fmt.Sprintf("step %d: %s failed: could not %s workbook: %v", i+1, desc, stage, cause),
		})
		p.notify(Update{
			File:        file,
			FileIndex:   fileIndex,
			TotalFiles:  totalFiles,
			StepIndex:   i + 1,
			TotalSteps:  len(steps),
			Description: desc,
			Success:     false,
		})
	}
}

func (p *Processor) notify(u Update) {
	if p.Progress != nil {
		p.Progress(u)
	}
}

func (p *Processor) outputPath(file string) string {
	if p.OutDir == "" {
		return file
	}
	_ = os.MkdirAll(p.OutDir, 0755)
	return filepath.Join(p.OutDir, filepath.Base(file))
}
