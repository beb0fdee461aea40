// Package watch implements the watch command: run sync, then re-run it
// whenever the rules document changes on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	synccmd "github.com/arthur-debert/rulesync/pkg/commands/sync"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
)

// DefaultDebounce batches the burst of events an editor save produces
const DefaultDebounce = 500 * time.Millisecond

// WatchOptions defines the options for the Watch command
type WatchOptions struct {
	// Sync is the sync configuration re-run on every change
	Sync synccmd.SyncOptions

	// Debounce is how long to wait after the last event before re-syncing.
	// Zero means DefaultDebounce.
	Debounce time.Duration

	// OnSync is called after every sync run with its result or error
	// (optional)
	OnSync func(*synccmd.SyncResult, error)
}

// Watcher re-runs sync when the rules document changes. The parent
// directory is watched rather than the file itself so atomic-rename saves
// keep working.
type Watcher struct {
	mu        sync.Mutex
	logger    zerolog.Logger
	watcher   *fsnotify.Watcher
	rulesFile string
	opts      WatchOptions
	pending   map[string]time.Time
	debounce  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// NewWatcher creates a watcher for the rules document named by the sync
// options
func NewWatcher(opts WatchOptions) (*Watcher, error) {
	rulesFile := opts.Sync.RulesFile
	if rulesFile == "" && os.Getenv(paths.EnvRulesFile) == "" && opts.Sync.Config != nil {
		rulesFile = opts.Sync.Config.Rules.File
	}
	p, err := paths.New(rulesFile)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := opts.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		logger:    logging.GetLogger("commands.watch"),
		watcher:   fsWatcher,
		rulesFile: p.RulesFile(),
		opts:      opts,
		pending:   make(map[string]time.Time),
		debounce:  debounce,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// RulesFile returns the resolved path being watched
func (w *Watcher) RulesFile() string {
	return w.rulesFile
}

// Start begins watching the rules document's directory. Non-blocking; the
// event loop runs in a goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.rulesFile)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.logger.Info().Str("dir", dir).Str("file", w.rulesFile).Msg("Watching rules document")

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Error closing watcher")
	}
	w.logger.Info().Msg("Watcher stopped")
}

// run is the main event loop for the watcher
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	flushTicker := time.NewTicker(100 * time.Millisecond)
	defer flushTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("Context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-flushTicker.C:
			w.flushPending(ctx)
		}
	}
}

// handleEvent records a relevant event for the next debounce flush
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Atomic saves show up as create/rename of the watched name
	if filepath.Clean(event.Name) != w.rulesFile {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()

	w.logger.Debug().Str("event", event.Op.String()).Str("path", event.Name).Msg("Change detected")
}

// flushPending re-syncs once the debounce window after the last event has
// passed
func (w *Watcher) flushPending(ctx context.Context) {
	w.mu.Lock()
	due := false
	for path, last := range w.pending {
		if time.Since(last) >= w.debounce {
			delete(w.pending, path)
			due = true
		}
	}
	w.mu.Unlock()

	if !due {
		return
	}

	w.logger.Info().Str("file", w.rulesFile).Msg("Rules document changed, re-syncing")
	result, err := synccmd.Sync(ctx, w.opts.Sync)
	if err != nil {
		w.logger.Error().Err(err).Msg("Sync failed")
	}
	if w.opts.OnSync != nil {
		w.opts.OnSync(result, err)
	}
}

// Watch runs an initial sync and then re-syncs on every change until the
// context is cancelled
func Watch(ctx context.Context, opts WatchOptions) error {
	result, err := synccmd.Sync(ctx, opts.Sync)
	if err != nil {
		return err
	}
	if opts.OnSync != nil {
		opts.OnSync(result, nil)
	}

	watcher, err := NewWatcher(opts)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	<-ctx.Done()
	return nil
}
