package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a workspace directory and fires when one of the
// named documents is created, written, renamed or removed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *FileWatcherConfig
	debounce *Debouncer

	mu      sync.Mutex
	running bool
}

// FileWatcherConfig contains configuration for the file watcher.
type FileWatcherConfig struct {
	// Dir is the workspace directory to watch.
	Dir string

	// Names are the base names of the files that trigger a run.
	Names []string

	// DebounceInterval is the quiet period before firing (default: 200ms).
	DebounceInterval time.Duration
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(config *FileWatcherConfig, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil || config.Dir == "" {
		return nil, errors.New("watch directory is required")
	}
	if len(config.Names) == 0 {
		return nil, errors.New("at least one file name to watch is required")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 200 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "watch.files"),
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
	}, nil
}

// Watch blocks until ctx is cancelled, calling onChange after each
// debounced burst of relevant events. The watcher is closed on return.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(ctx context.Context)) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return errors.New("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.debounce.Stop()
		fw.watcher.Close()
	}()

	info, err := os.Stat(fw.config.Dir)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", fw.config.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("failed to watch %q: not a directory", fw.config.Dir)
	}

	// Watching the directory instead of the files survives editors that
	// replace a file by rename.
	if err := fw.watcher.Add(fw.config.Dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", fw.config.Dir, err)
	}

	fw.logger.Info("file watcher started",
		"dir", fw.config.Dir,
		"files", fw.config.Names,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())

			fw.debounce.Trigger(func() {
				if ctx.Err() != nil {
					return
				}
				onChange(ctx)
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Close releases the watcher without running it. Watch closes it on return.
func (fw *FileWatcher) Close() error {
	fw.debounce.Stop()
	return fw.watcher.Close()
}

func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	base := filepath.Base(event.Name)
	for _, name := range fw.config.Names {
		if base == name {
			return true
		}
	}
	return false
}
