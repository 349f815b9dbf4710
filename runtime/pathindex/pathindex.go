package pathindex

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Index is a snapshot of the executables reachable through an ordered
// list of search-path directories, keyed by command name with the first
// directory winning. It backs completion; command resolution itself
// always goes to the filesystem so a stale index can never run the
// wrong binary.
//
// Watch keeps the index fresh by rescanning when a watched directory
// changes. All methods are safe for concurrent use.
type Index struct {
	dirs   []string
	logger *slog.Logger

	mu    sync.RWMutex
	names map[string]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates an index over dirs and performs the initial scan.
func New(dirs []string) *Index {
	ix := &Index{
		dirs:   dirs,
		logger: newLogger(),
		names:  make(map[string]string),
	}
	ix.Rescan()
	return ix
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("CORAL_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Rescan walks every directory in order and rebuilds the name table.
// Unreadable directories are skipped.
func (ix *Index) Rescan() {
	names := make(map[string]string)

	for _, dir := range ix.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if _, seen := names[name]; seen {
				continue
			}
			path := filepath.Join(dir, name)
			if isExecutable(path) {
				names[name] = path
			}
		}
	}

	ix.mu.Lock()
	ix.names = names
	ix.mu.Unlock()

	ix.logger.Debug("rescanned search path", "dirs", len(ix.dirs), "executables", len(names))
}

// Lookup returns the indexed path for name.
func (ix *Index) Lookup(name string) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	path, ok := ix.names[name]
	return path, ok
}

// Names returns every indexed command name in sorted order.
func (ix *Index) Names() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	names := make([]string, 0, len(ix.names))
	for name := range ix.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of indexed executables.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.names)
}

// Watch starts watching the index's directories and rescans whenever
// one of them changes. It returns immediately; Close stops the watch.
func (ix *Index) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range ix.dirs {
		if err := watcher.Add(dir); err != nil {
			ix.logger.Debug("cannot watch search-path directory", "dir", dir, "error", err)
		}
	}

	ix.watcher = watcher
	ix.done = make(chan struct{})

	go ix.watchLoop()
	return nil
}

func (ix *Index) watchLoop() {
	for {
		select {
		case event, ok := <-ix.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) != 0 {
				ix.logger.Debug("search path changed", "event", event.String())
				ix.Rescan()
			}
		case err, ok := <-ix.watcher.Errors:
			if !ok {
				return
			}
			ix.logger.Debug("watch error", "error", err)
		case <-ix.done:
			return
		}
	}
}

// Close stops the watcher, if one was started.
func (ix *Index) Close() error {
	if ix.watcher == nil {
		return nil
	}
	close(ix.done)
	err := ix.watcher.Close()
	ix.watcher = nil
	return err
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0o111 != 0
}
