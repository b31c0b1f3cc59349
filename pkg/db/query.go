package db

import (
	"sysmlkit/pkg/diagnostics"
	"sysmlkit/pkg/hir"
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/index"
	"sysmlkit/pkg/syntax"
)

// Parse returns file's green tree and syntax errors, memoized per
// (file, text-revision) in the parse-tree LRU cache. A cache hit costs
// one map lookup; a miss re-lexes and re-parses file's current text.
func (db *Database) Parse(file ids.FileId) (*syntax.GreenNode, []syntax.SyntaxError, bool) {
	db.mu.RLock()
	rec, ok := db.records[file]
	db.mu.RUnlock()
	if !ok {
		return nil, nil, false
	}

	key := parseCacheKey{file: file, rev: rec.rev}
	if cached, ok := db.parseCache.Get(key); ok {
		return cached.green, cached.errs, true
	}

	green, errs := syntax.Parse([]byte(rec.text), rec.dialect)
	db.parseCache.Add(key, parseResult{green: green, errs: errs})
	return green, errs, true
}

// FileSymbols extracts file's flat symbol table, depending on Parse and
// on LineIndex for anonymous-name line stamping.
func (db *Database) FileSymbols(file ids.FileId) ([]hir.HirSymbol, bool) {
	ext, ok := db.fileExtraction(file)
	if !ok {
		return nil, false
	}
	return ext.Symbols, true
}

// fileExtraction is the shared extraction step behind FileSymbols and
// SymbolIndex: the latter also needs a file's Import/ScopeFilter
// statements, which carry no HirSymbol of their own.
func (db *Database) fileExtraction(file ids.FileId) (hir.Extraction, bool) {
	green, _, ok := db.Parse(file)
	if !ok {
		return hir.Extraction{}, false
	}
	li, ok := db.LineIndex(file)
	if !ok {
		return hir.Extraction{}, false
	}
	return hir.Extract(file, syntax.NewRoot(green), li), true
}

// SymbolIndex returns the workspace-wide symbol index over every visible
// file (per WorkspaceFiles), rebuilding it only when the database's
// revision has moved since the last build. Building re-extracts every
// file's symbols rather than diffing; spec.md's own resolver rebuilds
// the whole index on any workspace-scale edit for the same reason the
// teacher re-extracts a file wholesale rather than patching individual
// symbols — incremental symbol-level diffing is strictly harder than
// per-file bulk recomputation and the workspace sizes this targets don't
// need it.
func (db *Database) SymbolIndex() *index.SymbolIndex {
	db.mu.Lock()
	if db.cachedIndex != nil && db.cachedIndexRev == db.rev {
		idx := db.cachedIndex
		db.mu.Unlock()
		return idx
	}
	rev := db.rev
	db.mu.Unlock()

	idx := index.NewSymbolIndex()
	for _, file := range db.WorkspaceFiles() {
		ext, ok := db.fileExtraction(file)
		if !ok {
			continue
		}
		idx.SetFileSymbols(file, ext.Symbols, ext.Imports, ext.Filters)
	}

	db.mu.Lock()
	if db.rev == rev {
		db.cachedIndex = idx
		db.cachedIndexRev = rev
	}
	db.mu.Unlock()

	return idx
}

// Diagnostics runs every diagnostics pass over file's symbols against the
// current workspace-wide index, depending on Parse, FileSymbols, and
// SymbolIndex. Diagnostics is intentionally not itself memoized the way
// Parse and SymbolIndex are: it is cheap relative to building the index
// it reads, and memoizing it per file would need the same revision-keyed
// cache machinery for comparatively little benefit.
func (db *Database) Diagnostics(file ids.FileId) ([]diagnostics.Diagnostic, bool) {
	if _, ok := db.FileSymbols(file); !ok {
		return nil, false
	}

	idx := db.SymbolIndex()
	symPtrs := idx.All()
	syms := make([]hir.HirSymbol, len(symPtrs))
	for i, s := range symPtrs {
		syms[i] = *s
	}
	all := diagnostics.Run(idx, syms)

	out := make([]diagnostics.Diagnostic, 0)
	for _, d := range all {
		if d.File == file {
			out = append(out, d)
		}
	}
	return out, true
}
