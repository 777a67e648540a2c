// Package fs watches roster script files and reports changes to them.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change observed on a script file.
type Op string

const (
	OpCreate Op = "CREATE"
	OpWrite  Op = "WRITE"
	OpRemove Op = "REMOVE"
)

// Event is a debounced change to a file matching one of the watched patterns.
type Event struct {
	Op        Op
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Op, e.Path)
}

// Config configures a Watcher.
type Config struct {
	// Patterns are doublestar filesystem patterns, e.g. "scenarios/**/*.yaml".
	Patterns []string
	// Debounce collapses bursts of writes to the same file. Zero means 50ms.
	Debounce time.Duration
	Logger   *slog.Logger
	// ErrorHandler receives runtime watcher errors. When nil they are only logged.
	ErrorHandler func(error)
}

// Watcher is a lifecycle worker that emits Events for matching files.
type Watcher struct {
	*worker.BaseWorker
	config    Config
	events    chan<- Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

// NewWatcher creates a watcher that sends to events. The caller owns the channel.
func NewWatcher(config Config, events chan<- Event) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("script-watcher"),
		config:     config,
		events:     events,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if len(w.config.Patterns) == 0 {
		return errors.New("no patterns to watch")
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, p := range w.config.Patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		if err := recursiveAdd(watcher, filepath.FromSlash(base)); err != nil {
			_ = watcher.Close()
			return err
		}
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.config.Debounce)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// Matches reports whether path matches any watched pattern.
func (w *Watcher) Matches(path string) bool {
	clean := filepath.ToSlash(filepath.Clean(path))
	for _, p := range w.config.Patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(filepath.Clean(p)), clean); ok {
			return true
		}
	}
	return false
}

func recursiveAdd(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func mapOp(event fsnotify.Event) Op {
	switch {
	case event.Has(fsnotify.Create):
		return OpCreate
	case event.Has(fsnotify.Write):
		return OpWrite
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return OpRemove
	}
	return ""
}

// processEvent filters, maps and debounces one fsnotify event.
func (w *Watcher) processEvent(ctx context.Context, event fsnotify.Event) {
	w.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	op := mapOp(event)
	if op == "" {
		return
	}

	// New directories may hold matching files later.
	if op == OpCreate {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := recursiveAdd(w.watcher, event.Name); err != nil {
				w.handleWatcherError(err)
			}
			return
		}
	}

	if !w.Matches(event.Name) {
		return
	}

	w.sendEvent(ctx, Event{
		Op:        op,
		Path:      event.Name,
		Timestamp: time.Now().Unix(),
	})
}

// sendEvent enqueues an event via the debouncer, protecting against channel closure during shutdown.
func (w *Watcher) sendEvent(ctx context.Context, event Event) {
	w.debouncer.add(event, func(e Event) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) handleWatcherError(err error) {
	w.config.Logger.Error("fsnotify error", "error", err)
	if w.config.ErrorHandler != nil {
		w.config.ErrorHandler(err)
	}
}

func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.config.Logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.config.Logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer w.watcher.Close()

	err = w.loop(ctx)

	// Wait for in-flight timers so no send races the caller closing the channel.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// debouncer keeps the latest event per path and fires it once the path has been
// quiet for the configured delay.
type debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]Event),
	}
}

func (d *debouncer) add(e Event, fire func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[e.Path] = e
	if t, ok := d.timers[e.Path]; ok {
		if t.Stop() {
			d.timers[e.Path] = time.AfterFunc(d.delay, d.flush(e.Path, fire))
			return
		}
		// Already fired; arm a fresh timer below.
	}
	d.wg.Add(1)
	d.timers[e.Path] = time.AfterFunc(d.delay, d.flush(e.Path, fire))
}

func (d *debouncer) flush(path string, fire func(Event)) func() {
	return func() {
		defer d.wg.Done()
		d.mu.Lock()
		e, ok := d.pending[path]
		delete(d.pending, path)
		delete(d.timers, path)
		d.mu.Unlock()
		if ok {
			fire(e)
		}
	}
}

// stopAndWait rejects new events and waits up to timeout for pending timers.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
