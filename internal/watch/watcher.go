// Package watch re-runs a match whenever one of its workbooks changes.
// It monitors the parent directories of the watched files, since most
// spreadsheet editors replace files on save instead of writing in place.
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
	// Paths are the workbook files whose changes trigger the handler.
	Paths []string
	// DebounceMs is how long to wait after the last event before firing.
	DebounceMs int
}

// Event records one handled file change.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // "processed", "error", "skipped"
	Error     string    `json:"error,omitempty"`
}

// Handler is called with the changed file once its debounce window closes.
type Handler func(path string) error

// Watcher monitors workbook files and triggers the handler on change.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Handler Handler

	mu       sync.Mutex
	events   []Event
	watched  map[string]bool
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// New creates a Watcher for the given files.
func New(config Config) (*Watcher, error) {
	if len(config.Paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if config.DebounceMs <= 0 {
		config.DebounceMs = 500
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	w := &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watched:  make(map[string]bool, len(config.Paths)),
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}
	return w, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for _, p := range w.Config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", p, err)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	w.Logger.Printf("Watching %d file(s)", len(w.watched))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	path := event.Name
	if !w.shouldProcess(path) {
		return
	}

	// Debounce: editors fire bursts of events per save.
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(time.Duration(w.Config.DebounceMs)*time.Millisecond, func() {
		w.processFile(path, event.Op.String())
	})
	w.mu.Unlock()
}

// shouldProcess filters events down to the watched workbooks, ignoring
// editor lock/temp files.
func (w *Watcher) shouldProcess(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.watched[abs]
}

func (w *Watcher) processFile(path, operation string) {
	evt := Event{Time: time.Now(), Path: path, Operation: operation}

	if w.Handler != nil {
		if err := w.Handler(path); err != nil {
			evt.Status = "error"
			evt.Error = err.Error()
			w.Logger.Printf("Error processing %s: %v", path, err)
		} else {
			evt.Status = "processed"
			w.Logger.Printf("Processed %s", path)
		}
	} else {
		evt.Status = "skipped"
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// Events returns all recorded events.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.events))
	copy(events, w.events)
	return events
}
