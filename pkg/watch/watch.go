// Package watch drives an engine.Engine from live file system events:
// edits and creates debounce into InsertFile, removes and renames into
// RemoveFile. Grounded almost directly on the teacher's
// pkg/indexer/watcher.go FileWatcher — same fsnotify.Watcher setup over
// a walked directory tree, same per-path debounce timer map, same
// Start/Stop lifecycle — generalized from the teacher's dedicated
// extractor-and-indexer pair to a single engine.Engine and from its
// hardcoded TS/JS extension check to a .sysml/.kerml one (Options.Include
// applies only to the initial scan).
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"sysmlkit/pkg/engine"
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/scanner"
	"sysmlkit/pkg/token"
)

// Options configures a Watcher.
type Options struct {
	// Include replaces the initial scan's include globs (relative to the
	// watched root); a nil/empty slice keeps scanner.DefaultConfig's
	// `**/*.sysml`/`**/*.kerml`. Live events are filtered by extension
	// (.sysml/.kerml) whatever Include says.
	Include []string
	// IgnorePatterns are directory/file basenames skipped entirely, in
	// addition to the builtin node_modules/.git/dist/build/.next/.sysmlls set.
	IgnorePatterns []string
	// DebounceMs groups rapid successive writes to the same file into a
	// single reload. Defaults to 200 if zero.
	DebounceMs int
	Logger     *slog.Logger
}

// dialectFor infers a file's dialect from its extension. KerML files use
// ".kerml"; everything else is treated as SysML.
func dialectFor(path string) token.Dialect {
	if filepath.Ext(path) == ".kerml" {
		return token.DialectKerML
	}
	return token.DialectSysML
}

func (o Options) withDefaults() Options {
	if o.DebounceMs == 0 {
		o.DebounceMs = 200
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Watcher watches a directory tree and keeps an engine.Engine's files in
// sync with what's on disk.
type Watcher struct {
	fsw     *fsnotify.Watcher
	engine  *engine.Engine
	options Options

	fileIDs map[string]ids.FileId
	idsMu   sync.Mutex

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	mu       sync.Mutex
	stopped  bool
}

// New creates a Watcher over eng. Call Start to begin watching.
func New(eng *engine.Engine, options Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: failed to create file watcher: %w", err)
	}
	return &Watcher{
		fsw:            fsw,
		engine:         eng,
		options:        options.withDefaults(),
		fileIDs:        make(map[string]ids.FileId),
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start loads every matching file under rootPath into the engine, then
// begins watching rootPath and its subdirectories for changes in the
// background.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watch: watcher already stopped")
	}
	w.mu.Unlock()

	if err := w.fsw.Add(rootPath); err != nil {
		return fmt.Errorf("watch: failed to watch %s: %w", rootPath, err)
	}

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if w.shouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.options.Logger.Warn("watch: failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: failed to set up watches: %w", err)
	}

	loaded, stats, err := scanInitial(rootPath, w.options)
	if err != nil {
		return fmt.Errorf("watch: initial scan failed: %w", err)
	}
	for _, lf := range loaded {
		w.trackInsert(lf.Path, lf.Text)
	}
	w.options.Logger.Info("watch: initial load complete", "files", stats.FilesLoaded, "failed", stats.FilesFailed)

	go w.eventLoop()
	return nil
}

// Stop stops watching and releases the underlying fsnotify watcher.
// Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.options.Logger.Error("watch: fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnoreDir(path) || !w.matchesInclude(path) {
		return
	}

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write, event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceReload(path)
	case event.Op&fsnotify.Remove == fsnotify.Remove, event.Op&fsnotify.Rename == fsnotify.Rename:
		w.handleRemove(path)
	}
}

func (w *Watcher) debounceReload(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(time.Duration(w.options.DebounceMs)*time.Millisecond, func() {
		w.reload(path)
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) reload(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.options.Logger.Warn("watch: failed to read file for reload", "path", path, "error", err)
		return
	}
	w.trackInsert(path, string(data))
	w.options.Logger.Debug("watch: reloaded file", "path", path)
}

func (w *Watcher) handleRemove(path string) {
	w.idsMu.Lock()
	file, ok := w.fileIDs[path]
	delete(w.fileIDs, path)
	w.idsMu.Unlock()
	if !ok {
		return
	}
	w.engine.RemoveFile(file)
	w.options.Logger.Debug("watch: removed file", "path", path)
}

func (w *Watcher) trackInsert(path string, text string) {
	file := w.engine.InsertFile(path, text, dialectFor(path))
	w.idsMu.Lock()
	w.fileIDs[path] = file
	w.idsMu.Unlock()
}

// scanInitial loads every file matching options into the workspace
// before the event loop starts, reusing pkg/scanner rather than
// re-implementing directory discovery here.
func scanInitial(rootPath string, options Options) ([]scanner.LoadedFile, scanner.Stats, error) {
	cfg := scanner.DefaultConfig()
	if len(options.Include) > 0 {
		cfg.Include = options.Include
	}
	for _, pattern := range options.IgnorePatterns {
		cfg.Exclude = append(cfg.Exclude, fmt.Sprintf("**/%s/**", pattern))
	}
	cfg.Logger = options.Logger
	return scanner.Scan(rootPath, cfg)
}

// matchesInclude reports whether a single changed path is one this
// watcher cares about. Unlike the initial scan's directory-wide globs,
// a live fsnotify event names one file directly, so matching reduces to
// its extension.
func (w *Watcher) matchesInclude(path string) bool {
	switch filepath.Ext(path) {
	case ".sysml", ".kerml":
		return true
	default:
		return false
	}
}

func (w *Watcher) shouldIgnoreDir(path string) bool {
	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	switch filepath.Base(path) {
	case "node_modules", ".git", "dist", "build", ".next", ".sysmlls":
		return true
	}
	return false
}
