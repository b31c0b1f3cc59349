// Package engine is the single entry point an embedder talks to: insert,
// remove, and edit files, then take a Snapshot and run every IDE query
// against it. It is a thin facade over pkg/db.Database and pkg/ide.Queries,
// the same shape as the teacher's pkg/catalog.QueryService sitting in
// front of a loaded Catalog and its CatalogIndex, and cmd/uispec/main.go's
// load-then-construct-service sequence.
package engine

import (
	"sysmlkit/pkg/db"
	"sysmlkit/pkg/ide"
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/token"
)

// Engine owns the workspace's mutable state: every inserted file's text
// and the revision counter their edits advance.
type Engine struct {
	db *db.Database
	q  *ide.Queries
}

// New constructs an Engine with the given configuration. The bundled
// kernel library is always registered; cfg.StdlibActive sets whether it
// starts out participating in resolution.
func New(cfg db.Config) *Engine {
	d := db.New(cfg)
	return &Engine{db: d, q: ide.New(d)}
}

// InsertFile registers a new file and returns its allocated FileId.
func (e *Engine) InsertFile(path string, text string, dialect token.Dialect) ids.FileId {
	return e.db.InsertFile(path, text, dialect)
}

// RemoveFile drops a previously inserted file from the workspace.
func (e *Engine) RemoveFile(file ids.FileId) {
	e.db.RemoveFile(file)
}

// SetText replaces a file's text in place, advancing the workspace
// revision. Reports whether file was known.
func (e *Engine) SetText(file ids.FileId, text string) bool {
	return e.db.SetText(file, text)
}

// SetStdlibActive toggles whether the bundled kernel library
// participates in resolution and diagnostics.
func (e *Engine) SetStdlibActive(active bool) {
	e.db.SetStdlibActive(active)
}

// Analysis is the read-only query surface a Snapshot offers: every
// derived query spec.md's external interface names, answered against
// the workspace state as of the revision the Snapshot was taken at.
type Analysis struct {
	*ide.Queries
}

// Snapshot returns the current Analysis. An Analysis does not hold a
// deep copy of the workspace: it is a view over the same Database the
// Engine mutates, so a caller that calls InsertFile/SetText/RemoveFile
// between two queries against the same Analysis will see the later
// edit. What pkg/db's per-revision memoization does guarantee is that
// any single query result (a Parse, a SymbolIndex, a Diagnostics list)
// is never mutated in place once computed — a later edit produces a new
// result for the new revision rather than altering the old one. Callers
// that need a result stable across concurrent edits should finish
// reading one Snapshot's queries before issuing the next edit, the same
// single-writer discipline pkg/db's own revision counter assumes.
func (e *Engine) Snapshot() Analysis {
	return Analysis{Queries: e.q}
}
