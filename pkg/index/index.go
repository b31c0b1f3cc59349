// Package index builds and queries a workspace-wide symbol index: FQN and
// simple-name lookup maps, per-file membership for incremental rebuild,
// and name resolution against SysML/KerML's import/inheritance/visibility
// rules. Structurally this mirrors the teacher's SymbolIndexer (an FQN hash
// map, a reverse file→symbols index for O(files-changed) invalidation, and
// an RWMutex reader/writer split) generalized from a flat symbol table to
// one that also has to resolve relationships between symbols.
package index

import (
	"sync"

	"sysmlkit/pkg/hir"
	"sysmlkit/pkg/ids"
)

// SymbolIndex is a workspace-wide, mutable view over every file's
// extracted symbols. It is safe for concurrent readers; SetFileSymbols/RemoveFile
// take the write lock.
type SymbolIndex struct {
	mu sync.RWMutex

	byFQN    map[string]*hir.HirSymbol
	bySimple map[string][]*hir.HirSymbol
	byFile   map[ids.FileId][]*hir.HirSymbol
	byParent map[string][]*hir.HirSymbol

	// importsByScope/filtersByScope index Import/ScopeFilter statements by
	// the scope they were written in (not the scope they name), for
	// VisibilityMap's import resolution. byFileImports/byFileFilters track
	// what each file last contributed so SetFileSymbols can retract exactly
	// that on re-extraction, the same way byFile backs removeSymbol.
	importsByScope map[string][]hir.Import
	filtersByScope map[string][]hir.ScopeFilter
	byFileImports  map[ids.FileId][]hir.Import
	byFileFilters  map[ids.FileId][]hir.ScopeFilter

	visibility *visibilityCache
}

// NewSymbolIndex returns an empty index.
func NewSymbolIndex() *SymbolIndex {
	idx := &SymbolIndex{
		byFQN:          make(map[string]*hir.HirSymbol),
		bySimple:       make(map[string][]*hir.HirSymbol),
		byFile:         make(map[ids.FileId][]*hir.HirSymbol),
		byParent:       make(map[string][]*hir.HirSymbol),
		importsByScope: make(map[string][]hir.Import),
		filtersByScope: make(map[string][]hir.ScopeFilter),
		byFileImports:  make(map[ids.FileId][]hir.Import),
		byFileFilters:  make(map[ids.FileId][]hir.ScopeFilter),
	}
	idx.visibility = newVisibilityCache(idx)
	return idx
}

// SetFileSymbols replaces everything previously indexed for file with
// syms/imports/filters, a single atomic operation from the caller's
// point of view. This is the only mutation entry point: there is no
// incremental per-symbol update, matching the teacher's per-file
// re-extraction-then-reindex cycle rather than symbol-level diffing.
func (idx *SymbolIndex) SetFileSymbols(file ids.FileId, syms []hir.HirSymbol, imports []hir.Import, filters []hir.ScopeFilter) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.removeFileLocked(file)

	stored := make([]*hir.HirSymbol, len(syms))
	for i := range syms {
		s := syms[i]
		stored[i] = &s
	}
	idx.byFile[file] = stored

	for _, s := range stored {
		idx.byFQN[s.FullyQualifiedName] = s
		idx.bySimple[s.Name] = append(idx.bySimple[s.Name], s)
		idx.byParent[s.ParentFQN] = append(idx.byParent[s.ParentFQN], s)
	}

	idx.byFileImports[file] = imports
	for _, im := range imports {
		idx.importsByScope[im.Scope] = append(idx.importsByScope[im.Scope], im)
	}
	idx.byFileFilters[file] = filters
	for _, f := range filters {
		idx.filtersByScope[f.Scope] = append(idx.filtersByScope[f.Scope], f)
	}

	idx.visibility.invalidateAll()
}

// RemoveFile drops every symbol previously indexed for file.
func (idx *SymbolIndex) RemoveFile(file ids.FileId) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeFileLocked(file)
	idx.visibility.invalidateAll()
}

func (idx *SymbolIndex) removeFileLocked(file ids.FileId) {
	if old, ok := idx.byFile[file]; ok {
		for _, s := range old {
			if idx.byFQN[s.FullyQualifiedName] == s {
				delete(idx.byFQN, s.FullyQualifiedName)
			}
			idx.bySimple[s.Name] = removeSymbol(idx.bySimple[s.Name], s)
			idx.byParent[s.ParentFQN] = removeSymbol(idx.byParent[s.ParentFQN], s)
		}
		delete(idx.byFile, file)
	}
	if oldImports, ok := idx.byFileImports[file]; ok {
		for _, im := range oldImports {
			idx.importsByScope[im.Scope] = removeImport(idx.importsByScope[im.Scope], im)
		}
		delete(idx.byFileImports, file)
	}
	if oldFilters, ok := idx.byFileFilters[file]; ok {
		for _, f := range oldFilters {
			idx.filtersByScope[f.Scope] = removeFilter(idx.filtersByScope[f.Scope], f)
		}
		delete(idx.byFileFilters, file)
	}
}

func removeSymbol(list []*hir.HirSymbol, target *hir.HirSymbol) []*hir.HirSymbol {
	out := list[:0]
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func removeImport(list []hir.Import, target hir.Import) []hir.Import {
	out := list[:0]
	for _, im := range list {
		if im != target {
			out = append(out, im)
		}
	}
	return out
}

func removeFilter(list []hir.ScopeFilter, target hir.ScopeFilter) []hir.ScopeFilter {
	out := list[:0]
	for _, f := range list {
		if f != target {
			out = append(out, f)
		}
	}
	return out
}

// ImportsIn returns every import statement written directly in scope
// scopeFQN, in extraction order.
func (idx *SymbolIndex) ImportsIn(scopeFQN string) []hir.Import {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]hir.Import(nil), idx.importsByScope[scopeFQN]...)
}

// FiltersIn returns every standalone `filter @M;` statement written
// directly in scope scopeFQN.
func (idx *SymbolIndex) FiltersIn(scopeFQN string) []hir.ScopeFilter {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]hir.ScopeFilter(nil), idx.filtersByScope[scopeFQN]...)
}

// ByFQN returns the symbol with the exact fully qualified name, if any.
func (idx *SymbolIndex) ByFQN(fqn string) (*hir.HirSymbol, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	s, ok := idx.byFQN[fqn]
	return s, ok
}

// BySimpleName returns every symbol anywhere in the workspace sharing the
// given simple name, across files.
func (idx *SymbolIndex) BySimpleName(name string) []*hir.HirSymbol {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]*hir.HirSymbol(nil), idx.bySimple[name]...)
}

// Children returns the direct child symbols of the scope named parentFQN
// ("" for the workspace root).
func (idx *SymbolIndex) Children(parentFQN string) []*hir.HirSymbol {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]*hir.HirSymbol(nil), idx.byParent[parentFQN]...)
}

// FileSymbols returns every symbol extracted from file.
func (idx *SymbolIndex) FileSymbols(file ids.FileId) []*hir.HirSymbol {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]*hir.HirSymbol(nil), idx.byFile[file]...)
}

// All returns every symbol in the workspace — used by workspace_symbols.
func (idx *SymbolIndex) All() []*hir.HirSymbol {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*hir.HirSymbol, 0, len(idx.byFQN))
	for _, s := range idx.byFQN {
		out = append(out, s)
	}
	return out
}
