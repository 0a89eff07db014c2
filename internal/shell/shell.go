// Package shell provides the interactive xlbatch REPL: build a step list,
// pick files, and run — without writing a recipe file first.
package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/klytics/xlbatch/internal/engine"
	"github.com/klytics/xlbatch/internal/progress"
	"github.com/klytics/xlbatch/internal/recipe"
	"github.com/klytics/xlbatch/internal/scan"
)

// Session manages an interactive xlbatch shell session.
type Session struct {
	Steps       []recipe.Step
	Files       []string
	OutDir      string
	BackupDir   string
	HistoryFile string
	StartTime   time.Time

	commandCount int
}

// NewSession creates a new interactive session.
func NewSession() (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".xlbatch", "shell_history")
	os.MkdirAll(filepath.Dir(histFile), 0755)

	return &Session{
		HistoryFile: histFile,
		StartTime:   time.Now(),
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "xlbatch> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(s.buildCompleter()...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("xlbatch — Interactive Shell")
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.commandCount++

		if line == "exit" || line == "quit" {
			elapsed := time.Since(s.StartTime)
			fmt.Printf("\nSession ended. %d commands run in %s.\n",
				s.commandCount-1, formatDuration(elapsed))
			return nil
		}

		if err := s.Eval(ctx, line); err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		}
	}

	return nil
}

// Eval runs a single shell command line.
func (s *Session) Eval(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "help":
		s.printHelp()
	case "ops":
		s.printOps()
	case "add":
		return s.cmdAdd(args[1:])
	case "list":
		s.printSteps()
	case "rm":
		return s.cmdRemove(args[1:])
	case "move":
		return s.cmdMove(args[1:])
	case "clear":
		s.Steps = nil
		fmt.Println("Steps cleared.")
	case "files":
		return s.cmdFiles(args[1:])
	case "out":
		return s.cmdOut(args[1:])
	case "run":
		return s.cmdRun(ctx)
	case "save":
		return s.cmdSave(args[1:])
	case "load":
		return s.cmdLoad(args[1:])
	default:
		return fmt.Errorf("unknown command %q — type 'help' for commands", args[0])
	}
	return nil
}

func (s *Session) cmdAdd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <op> [key=value ...] — type 'ops' for operations")
	}

	step := recipe.Step{Op: args[0]}
	for _, arg := range args[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "sheet":
			step.Sheet = value
		case "sheets":
			for _, part := range strings.Split(value, ",") {
				n, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					return fmt.Errorf("sheets must be numeric indexes, got %q", part)
				}
				step.Sheets = append(step.Sheets, n)
			}
		case "range":
			step.Range = value
		case "position":
			step.Position = value
		case "action":
			step.Action = value
		case "merge_mode":
			step.MergeMode = value
		case "color":
			step.Color = value
		case "content":
			step.Content = value
		default:
			return fmt.Errorf("unknown parameter %q — valid: sheet, sheets, range, position, action, merge_mode, color, content", key)
		}
	}

	if err := recipe.ValidateStep(step); err != nil {
		return err
	}

	s.Steps = append(s.Steps, step)
	fmt.Printf("Added step %d: %s\n", len(s.Steps), step.Describe())
	return nil
}

func (s *Session) cmdRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(s.Steps) {
		return fmt.Errorf("no step %s — have %d step(s)", args[0], len(s.Steps))
	}
	removed := s.Steps[n-1]
	s.Steps = append(s.Steps[:n-1], s.Steps[n:]...)
	fmt.Printf("Removed step %d: %s\n", n, removed.Describe())
	return nil
}

func (s *Session) cmdMove(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <from> <to>")
	}
	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || from < 1 || from > len(s.Steps) || to < 1 || to > len(s.Steps) {
		return fmt.Errorf("positions must be between 1 and %d", len(s.Steps))
	}
	step := s.Steps[from-1]
	s.Steps = append(s.Steps[:from-1], s.Steps[from:]...)
	s.Steps = append(s.Steps[:to-1], append([]recipe.Step{step}, s.Steps[to-1:]...)...)
	fmt.Printf("Moved step %d to position %d.\n", from, to)
	return nil
}

func (s *Session) cmdFiles(args []string) error {
	if len(args) == 0 {
		if len(s.Files) == 0 {
			fmt.Println("No files selected. Use: files <path|dir|glob> ...")
			return nil
		}
		for i, f := range s.Files {
			fmt.Printf("  %d  %s\n", i+1, f)
		}
		return nil
	}

	files, err := scan.Resolve(args, false)
	if err != nil {
		return err
	}
	s.Files = files
	fmt.Printf("Selected %d file(s).\n", len(files))
	return nil
}

func (s *Session) cmdOut(args []string) error {
	if len(args) == 0 {
		if s.OutDir == "" {
			fmt.Println("Output: in place (originals are backed up first).")
		} else {
			fmt.Printf("Output directory: %s\n", s.OutDir)
		}
		return nil
	}
	s.OutDir = args[0]
	fmt.Printf("Output directory set to %s.\n", s.OutDir)
	return nil
}

func (s *Session) cmdRun(ctx context.Context) error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps to run — use 'add' first")
	}
	if len(s.Files) == 0 {
		return fmt.Errorf("no files selected — use 'files' first")
	}

	bar := progress.New("Processing", len(s.Files)*len(s.Steps))
	proc := &engine.Processor{
		OutDir:    s.OutDir,
		BackupDir: s.BackupDir,
		Progress: func(u engine.Update) {
			bar.SetLabel(filepath.Base(u.File))
			bar.Increment(u.Description)
		},
	}

	done := make(chan *engine.Summary, 1)
	go func() {
		done <- proc.Run(ctx, s.Files, s.Steps)
	}()
	summary := <-done
	bar.Finish(fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed))

	printSummary(summary)
	return nil
}

func (s *Session) cmdSave(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: save <recipe.yaml>")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps to save")
	}
	r := &recipe.Recipe{Name: "shell session", Steps: s.Steps}
	if err := r.Save(args[0]); err != nil {
		return err
	}
	fmt.Printf("Saved %d step(s) to %s.\n", len(s.Steps), args[0])
	return nil
}

func (s *Session) cmdLoad(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <recipe.yaml>")
	}
	r, err := recipe.Load(args[0])
	if err != nil {
		return err
	}
	s.Steps = r.Steps
	fmt.Printf("Loaded %d step(s) from %s.\n", len(s.Steps), args[0])
	return nil
}

func (s *Session) printSteps() {
	if len(s.Steps) == 0 {
		fmt.Println("No steps. Use: add <op> [key=value ...]")
		return
	}
	for i, step := range s.Steps {
		fmt.Printf("  %d  %s\n", i+1, step.Describe())
	}
}

func (s *Session) printOps() {
	for _, info := range recipe.Ops() {
		fmt.Printf("  %-22s %s\n", info.Name, info.Summary)
	}
}

func (s *Session) printHelp() {
	fmt.Println("Step commands:")
	fmt.Println("  ops                — list available operations")
	fmt.Println("  add <op> [k=v ...] — append a step (e.g. add merge_cells range=A1:C3)")
	fmt.Println("  list               — show the current step list")
	fmt.Println("  rm <n>             — remove step n")
	fmt.Println("  move <a> <b>       — move step a to position b")
	fmt.Println("  clear              — remove all steps")
	fmt.Println()
	fmt.Println("Run commands:")
	fmt.Println("  files [args...]    — show or set the workbooks to process")
	fmt.Println("  out [dir]          — show or set the output directory")
	fmt.Println("  run                — process the selected files")
	fmt.Println()
	fmt.Println("Recipe commands:")
	fmt.Println("  save <file>        — save steps as a recipe file")
	fmt.Println("  load <file>        — load steps from a recipe file")
	fmt.Println()
	fmt.Println("  help, exit")
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var opItems []readline.PrefixCompleterInterface
	for _, info := range recipe.Ops() {
		opItems = append(opItems, readline.PcItem(info.Name))
	}
	return []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("ops"),
		readline.PcItem("add", opItems...),
		readline.PcItem("list"),
		readline.PcItem("rm"),
		readline.PcItem("move"),
		readline.PcItem("clear"),
		readline.PcItem("files"),
		readline.PcItem("out"),
		readline.PcItem("run"),
		readline.PcItem("save"),
		readline.PcItem("load"),
		readline.PcItem("exit"),
	}
}

func printSummary(summary *engine.Summary) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

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
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
