package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultDebounce = 750 * time.Millisecond
	pollInterval    = 500 * time.Millisecond
)

// DBWatcher reports when a SQLite database file (or its WAL/journal) has
// been written by another process, e.g. an importer adding hands.
type DBWatcher struct {
	Path     string
	watcher  *fsnotify.Watcher
	done     chan struct{}
	mu       sync.Mutex
	stopOnce sync.Once

	cleanPath string
	debounce  time.Duration
	lastSig   signature
	pending   time.Time
	onChange  func()
	onError   func(err error)
}

type WatcherConfig struct {
	// Debounce is how long the files must stay quiet before OnChange fires.
	Debounce time.Duration
	OnChange func()
	OnError  func(err error)
}

// NewDBWatcher creates a watcher for the database at dbPath.
func NewDBWatcher(dbPath string, cfg WatcherConfig) (*DBWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &DBWatcher{
		Path:      dbPath,
		watcher:   w,
		done:      make(chan struct{}),
		cleanPath: filepath.Clean(dbPath),
		debounce:  debounce,
		onChange:  cfg.OnChange,
		onError:   cfg.OnError,
	}, nil
}

// Start begins watching. The current file state is the baseline, so
// OnChange only fires for writes made after Start.
func (dw *DBWatcher) Start() error {
	slog.Info("watcher starting", "path", dw.Path)
	// Watch the directory; SQLite replaces and truncates its side files.
	dir := filepath.Dir(dw.cleanPath)
	if err := dw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	dw.mu.Lock()
	dw.lastSig = dw.currentSignature()
	dw.mu.Unlock()

	go dw.watchLoop()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (dw *DBWatcher) Stop() {
	dw.stopOnce.Do(func() {
		slog.Info("watcher stopped", "path", dw.Path)
		close(dw.done)
		_ = dw.watcher.Close()
	})
}

func (dw *DBWatcher) watchLoop() {
	ticker := time.NewTicker(pollInterval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-dw.done:
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if dw.relevant(event.Name) && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				dw.check(time.Now())
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			if dw.onError != nil {
				dw.onError(err)
			}
		case now := <-ticker.C:
			// Periodic poll as fallback for filesystems without events.
			dw.check(now)
			dw.flush(now)
		}
	}
}

// check records a pending change when the files' signature moved.
func (dw *DBWatcher) check(now time.Time) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	sig := dw.currentSignature()
	if sig == dw.lastSig {
		return
	}
	dw.lastSig = sig
	dw.pending = now
}

func (dw *DBWatcher) flush(now time.Time) {
	dw.mu.Lock()
	if dw.pending.IsZero() || now.Sub(dw.pending) < dw.debounce {
		dw.mu.Unlock()
		return
	}
	dw.pending = time.Time{}
	dw.mu.Unlock()

	slog.Debug("database changed", "path", dw.Path)
	if dw.onChange != nil {
		dw.onChange()
	}
}

func (dw *DBWatcher) relevant(name string) bool {
	name = filepath.Clean(name)
	return name == dw.cleanPath || name == dw.cleanPath+"-wal" || name == dw.cleanPath+"-journal"
}

type fileSig struct {
	size    int64
	modTime time.Time
}

type signature struct {
	db, wal fileSig
}

func (dw *DBWatcher) currentSignature() signature {
	return signature{db: stat(dw.cleanPath), wal: stat(dw.cleanPath + "-wal")}
}

func stat(path string) fileSig {
	info, err := os.Stat(path)
	if err != nil {
		return fileSig{}
	}
	return fileSig{size: info.Size(), modTime: info.ModTime()}
}
