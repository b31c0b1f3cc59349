// Package db is the incremental query database: a small set of input
// tables (file text, workspace membership, whether the bundled standard
// library is active) and a larger set of derived queries (parse,
// file_symbols, symbol_index, diagnostics) that are recomputed only when
// an input they actually read has changed since they last ran. The shape
// generalizes the teacher's SymbolIndexer, which the teacher itself
// describes as a "Salsa pattern" lazy-invalidation design: a dirty-files
// set plus an LRU-bounded cache keyed by file path. Here the dirty set
// becomes a single monotonic revision counter (bumping it invalidates
// every derived query uniformly, since SysML symbol resolution is
// workspace-wide rather than per-file) and the LRU cache moves from
// file-level symbol tables to parse-tree level, the most expensive and
// most reusable artifact.
package db

import (
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/index"
	"sysmlkit/pkg/stdlib"
	"sysmlkit/pkg/syntax"
	"sysmlkit/pkg/token"
)

// Revision is a monotonically increasing version stamp. Every input
// mutation bumps it; a cached derived value is reused only while its
// recorded revision still matches the database's current one.
type Revision uint64

// Config mirrors the teacher's SymbolIndexerConfig: a knob for the
// parse-tree cache's size plus a logger, both with the same "zero value
// means use the default" contract, and the initial stdlib_active() value,
// whose zero value (false) is not the DefaultConfig value (true).
type Config struct {
	MaxCachedFiles int
	Logger         *slog.Logger
	// StdlibActive seeds the initial stdlib_active() value; the bundled
	// kernel packages are always registered (so their FileIds are stable
	// across the toggle), just excluded from WorkspaceFiles() while off.
	StdlibActive bool
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{MaxCachedFiles: 1000, Logger: slog.Default(), StdlibActive: true}
}

// parseCacheKey pairs a file's identity with its text's revision so a
// stale cache entry from before an edit is never mistaken for current.
type parseCacheKey struct {
	file ids.FileId
	rev  Revision
}

type parseResult struct {
	green *syntax.GreenNode
	errs  []syntax.SyntaxError
}

// fileRecord is one workspace file's current input state.
type fileRecord struct {
	text    string
	dialect token.Dialect
	li      *ids.LineIndex
	rev     Revision // revision at which text last changed
}

// Database holds every open file's text and dialect, the workspace's
// current revision, and memoized results of the derived queries that
// read them. All exported methods are safe for concurrent use: readers
// take the read lock, InsertFile/SetText/RemoveFile/SetStdlibActive take
// the write lock and bump the revision.
type Database struct {
	mu sync.RWMutex

	rev Revision

	files *ids.FileTable

	records map[ids.FileId]*fileRecord

	stdlibFiles  map[ids.FileId]bool
	stdlibActive bool

	parseCache *lru.Cache[parseCacheKey, parseResult]

	// cachedIndexRev/cachedIndex memoize the workspace-wide symbol index,
	// the one derived query that genuinely depends on every file at once
	// rather than on a single file's revision, so it cannot be keyed the
	// same way parse results are.
	cachedIndexRev Revision
	cachedIndex    *index.SymbolIndex

	logger *slog.Logger
}

// New returns an empty database with the bundled kernel library
// registered and, per cfg, initially active in WorkspaceFiles().
func New(cfg Config) *Database {
	if cfg.MaxCachedFiles == 0 {
		cfg.MaxCachedFiles = 1000
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cache, err := lru.New[parseCacheKey, parseResult](cfg.MaxCachedFiles)
	if err != nil {
		panic("db: failed to construct parse-tree cache: " + err.Error())
	}

	db := &Database{
		files:        ids.NewFileTable(),
		records:      make(map[ids.FileId]*fileRecord),
		stdlibFiles:  make(map[ids.FileId]bool),
		stdlibActive: cfg.StdlibActive,
		parseCache:   cache,
		logger:       cfg.Logger,
	}
	db.loadStdlib()
	return db
}

func (db *Database) loadStdlib() {
	for _, src := range stdlib.Sources() {
		file := db.files.Insert("stdlib://" + src.Path)
		db.records[file] = &fileRecord{
			text: src.Text, dialect: src.Dialect,
			li: ids.NewLineIndex([]byte(src.Text)), rev: db.rev,
		}
		db.stdlibFiles[file] = true
	}
}

// Revision returns the database's current revision.
func (db *Database) Revision() Revision {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.rev
}

// InsertFile allocates a FileId for path (or returns its existing one, if
// path was already inserted and never removed), records text and
// dialect, and bumps the revision.
func (db *Database) InsertFile(path string, text string, dialect token.Dialect) ids.FileId {
	db.mu.Lock()
	defer db.mu.Unlock()

	file := db.files.Insert(path)
	db.records[file] = &fileRecord{text: text, dialect: dialect, li: ids.NewLineIndex([]byte(text)), rev: db.rev + 1}
	db.bumpRevLocked()

	db.logger.Debug("db: inserted file", "path", path, "file", file, "revision", db.rev)
	return file
}

// SetText replaces file's text in place. Returns false if file is
// unknown or was removed.
func (db *Database) SetText(file ids.FileId, text string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec, ok := db.records[file]
	if !ok {
		return false
	}
	rec.text = text
	rec.li = ids.NewLineIndex([]byte(text))
	db.bumpRevLocked()
	rec.rev = db.rev
	return true
}

// RemoveFile drops file from the workspace and bumps the revision. The
// bundled standard library's files cannot be removed this way — use
// SetStdlibActive instead.
func (db *Database) RemoveFile(file ids.FileId) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.stdlibFiles[file] {
		return
	}
	if _, ok := db.records[file]; !ok {
		return
	}
	delete(db.records, file)
	db.files.Remove(file)
	db.bumpRevLocked()

	db.logger.Debug("db: removed file", "file", file, "revision", db.rev)
}

// SetStdlibActive toggles whether pkg/stdlib's bundled kernel packages
// participate in WorkspaceFiles() and thus in resolution, bumping the
// revision whenever the effective value changes. The kernel files' text
// stays registered either way, so their FileIds are stable across a
// toggle instead of being reallocated.
func (db *Database) SetStdlibActive(active bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.stdlibActive == active {
		return
	}
	db.stdlibActive = active
	db.bumpRevLocked()
}

// StdlibActive reports the current stdlib_active() value.
func (db *Database) StdlibActive() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.stdlibActive
}

func (db *Database) bumpRevLocked() {
	db.rev++
}

// WorkspaceFiles returns every file id currently visible: user-inserted
// files plus, when stdlib_active() is true, the bundled kernel packages.
func (db *Database) WorkspaceFiles() []ids.FileId {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]ids.FileId, 0, len(db.records))
	for file := range db.records {
		if db.stdlibFiles[file] && !db.stdlibActive {
			continue
		}
		out = append(out, file)
	}
	return out
}

// FilePath returns the path file was inserted under, if it is still live.
func (db *Database) FilePath(file ids.FileId) (string, bool) {
	return db.files.Path(file)
}

// FileText returns file's current text.
func (db *Database) FileText(file ids.FileId) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.records[file]
	if !ok {
		return "", false
	}
	return rec.text, true
}

// LineIndex returns the LineIndex backing file's current text.
func (db *Database) LineIndex(file ids.FileId) (*ids.LineIndex, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.records[file]
	if !ok {
		return nil, false
	}
	return rec.li, true
}
