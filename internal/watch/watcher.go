// Package watch monitors folders for new or changed workbooks and runs a
// recipe against each one as it appears.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config holds the watcher configuration.
type Config struct {
	Dirs       []string
	Recursive  bool
	DebounceMs int
}

// Event records one workbook the watcher picked up.
type Event struct {
	Time   time.Time `json:"time"`
	Path   string    `json:"path"`
	Status string    `json:"status"` // "processed" or "error"
	Error  string    `json:"error,omitempty"`
}

// Handler processes one workbook that appeared or changed.
type Handler func(path string) error

// Watcher monitors directories and triggers the handler per workbook.
type Watcher struct {
	cfg     Config
	handler Handler
	logger  *log.Logger

	mu       sync.Mutex
	events   []Event
	debounce map[string]*time.Timer
	fsw      *fsnotify.Watcher
}

// New creates a Watcher. The handler is called once per settled workbook.
func New(cfg Config, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = 500
	}
	return &Watcher{
		cfg:      cfg,
		handler:  handler,
		logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		debounce: make(map[string]*time.Timer),
		fsw:      fsw,
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.cfg.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}
		if w.cfg.Recursive {
			if err := w.addRecursive(abs); err != nil {
				return err
			}
		} else if err := w.fsw.Add(abs); err != nil {
			return fmt.Errorf("could not watch %s: %w", abs, err)
		}
	}

	w.logger.Printf("Watching %d directory(ies) for workbooks", len(w.cfg.Dirs))

	for {
		select {
		case <-ctx.Done():
			w.logger.Println("Stopping watcher")
			return w.fsw.Close()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("Error: %v", err)
		}
	}
}

// Events returns a copy of everything processed so far.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Event(nil), w.events...)
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), ".xlsx") {
		return
	}
	// Excel lock files and our own backups retrigger endlessly if processed.
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") ||
		strings.HasSuffix(strings.ToLower(base), ".bak.xlsx") {
		return
	}

	// Debounce: editors fire several writes while a workbook settles.
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(time.Duration(w.cfg.DebounceMs)*time.Millisecond, func() {
		w.process(path)
	})
	w.mu.Unlock()
}

func (w *Watcher) process(path string) {
	evt := Event{Time: time.Now(), Path: path, Status: "processed"}

	if err := w.handler(path); err != nil {
		evt.Status = "error"
		evt.Error = err.Error()
		w.logger.Printf("Error processing %s: %v", path, err)
	} else {
		w.logger.Printf("Processed %s", path)
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}
