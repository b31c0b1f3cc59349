package index

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"sysmlkit/pkg/hir"
)

// visibilityCache memoizes each scope's resolved name->symbol map (own
// members plus everything reachable through inheritance), since building
// one walks the scope's full specialization chain. Entries are evicted
// wholesale whenever the index mutates — SysML's inheritance graph can
// make a targeted per-scope invalidation subtler than it looks (a single
// file edit can change what every descendant of a changed type sees), so
// the teacher's own LRU-with-invalidation approach is kept but simplified
// to a full purge per edit rather than per-entry tracking.
type visibilityCache struct {
	idx   *SymbolIndex
	mu    sync.Mutex
	cache *lru.Cache[string, map[string]*hir.HirSymbol]
}

func newVisibilityCache(idx *SymbolIndex) *visibilityCache {
	c, err := lru.New[string, map[string]*hir.HirSymbol](2048)
	if err != nil {
		panic("index: failed to construct visibility LRU cache: " + err.Error())
	}
	return &visibilityCache{idx: idx, cache: c}
}

func (vc *visibilityCache) invalidateAll() {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.cache.Purge()
}

// VisibilityMap returns every name visible from scope fqn: scope's own
// direct members, layered under everything inherited through its
// specializes/subsets/redefines/references/conjugates chain (own members
// take precedence over inherited ones with the same simple name, matching
// the "inner shadows outer" rule applied one level down into the
// inheritance graph rather than the lexical one).
func (idx *SymbolIndex) VisibilityMap(fqn string) map[string]*hir.HirSymbol {
	if m, ok := idx.visibility.lookup(fqn); ok {
		return m
	}
	m := idx.buildVisibilityMap(fqn)
	idx.visibility.store(fqn, m)
	return m
}

func (vc *visibilityCache) lookup(fqn string) (map[string]*hir.HirSymbol, bool) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.cache.Get(fqn)
}

func (vc *visibilityCache) store(fqn string, m map[string]*hir.HirSymbol) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.cache.Add(fqn, m)
}

func (idx *SymbolIndex) buildVisibilityMap(fqn string) map[string]*hir.HirSymbol {
	out := make(map[string]*hir.HirSymbol)
	idx.collectInherited(fqn, out, map[string]bool{})
	idx.collectImported(fqn, out)
	for _, child := range idx.Children(fqn) {
		out[child.Name] = child // own members always win over inherited/imported ones
	}
	return out
}

// collectImported layers fqn's import statements over the inherited map:
// a single-target import binds one name (or its `alias` spelling), a
// wildcard import binds every exportable direct child of its target, and
// a recursive wildcard (`::**`) does the same transitively. Later imports
// in the same scope shadow earlier ones with the same resulting name,
// matching the last-wins rule recorded for import/alias precedence.
func (idx *SymbolIndex) collectImported(fqn string, out map[string]*hir.HirSymbol) {
	scopeFilters := idx.FiltersIn(fqn)

	for _, im := range idx.ImportsIn(fqn) {
		switch im.Kind {
		case hir.ImportSingle:
			sym, ok := idx.ByFQN(im.Target)
			if !ok || !idx.isExportable(sym) {
				continue
			}
			name := sym.Name
			if im.Alias != "" {
				name = im.Alias
			}
			out[name] = sym
		case hir.ImportWildcard:
			idx.collectWildcard(im.Target, importFilters(scopeFilters, fqn, im), out)
		case hir.ImportTransitive:
			idx.collectWildcardTransitive(im.Target, importFilters(scopeFilters, fqn, im), out, map[string]bool{})
		}
	}
}

// importFilters appends im's own bracket filter clause, if any, to the
// scope's standalone filter statements. A per-import bracket filter
// narrows only that import's own expansion; it never joins the
// scope-wide AND-composed set other wildcard imports in the same scope
// also have to satisfy.
func importFilters(scopeFilters []hir.ScopeFilter, fqn string, im hir.Import) []hir.ScopeFilter {
	if im.FilterExpr == "" {
		return scopeFilters
	}
	out := make([]hir.ScopeFilter, len(scopeFilters), len(scopeFilters)+1)
	copy(out, scopeFilters)
	return append(out, hir.ScopeFilter{Scope: fqn, Target: im.FilterExpr})
}

func (idx *SymbolIndex) collectWildcard(target string, filters []hir.ScopeFilter, out map[string]*hir.HirSymbol) {
	for _, child := range idx.Children(target) {
		if idx.isExportable(child) && passesFilters(child, filters) {
			out[child.Name] = child
		}
	}
}

func (idx *SymbolIndex) collectWildcardTransitive(target string, filters []hir.ScopeFilter, out map[string]*hir.HirSymbol, visited map[string]bool) {
	if visited[target] {
		return
	}
	visited[target] = true
	for _, child := range idx.Children(target) {
		if idx.isExportable(child) && passesFilters(child, filters) {
			out[child.Name] = child
		}
		idx.collectWildcardTransitive(child.FullyQualifiedName, filters, out, visited)
	}
}

// isExportable reports whether sym can be reached from outside its own
// declaring scope at all: private/protected members cannot (protected's
// reach into specializations is handled by Resolve's own inheritance
// walk, not by import visibility), checked before any filter so a
// private member is never made visible by a matching metadata filter.
// A standalone alias symbol additionally needs its underlying import (if
// its target came in through one) to itself be public — an alias of a
// non-public import does not re-export the name.
func (idx *SymbolIndex) isExportable(sym *hir.HirSymbol) bool {
	if sym.Visibility != hir.VisibilityPublic {
		return false
	}
	for _, rel := range sym.Relationships {
		if rel.Kind == hir.RelAliasOf {
			return idx.aliasReexportable(sym, rel.TargetName)
		}
	}
	return true
}

// aliasReexportable finds the import (if any) in alias's own scope that
// brought targetName into scope, and returns whether that import was
// public. targetName is matched both as a fully qualified name (an alias
// written `alias R for Lib::Real;`) and as the bound local name an
// import introduces (the common `alias R for Real;` referring to
// whatever `import Lib::Real;` already bound as "Real" in the same
// scope). An alias whose target isn't import-gated (declared locally, or
// reached purely through inheritance) is re-exportable by default, since
// only import visibility, not inheritance visibility, is being decided
// here.
func (idx *SymbolIndex) aliasReexportable(alias *hir.HirSymbol, targetName string) bool {
	for _, im := range idx.ImportsIn(alias.ParentFQN) {
		switch im.Kind {
		case hir.ImportSingle:
			if im.Target == targetName || importBoundName(im) == targetName {
				return im.IsPublic
			}
		case hir.ImportWildcard, hir.ImportTransitive:
			if strings.HasPrefix(targetName, im.Target+"::") {
				return im.IsPublic
			}
			if child, ok := idx.ByFQN(im.Target + "::" + targetName); ok && child.Name == targetName {
				return im.IsPublic
			}
		}
	}
	return true
}

// importBoundName returns the local name im binds in its own scope: its
// alias spelling if it has one, otherwise its target's last segment.
func importBoundName(im hir.Import) string {
	if im.Alias != "" {
		return im.Alias
	}
	if i := strings.LastIndex(im.Target, "::"); i >= 0 {
		return im.Target[i+2:]
	}
	return im.Target
}

func passesFilters(sym *hir.HirSymbol, filters []hir.ScopeFilter) bool {
	for _, f := range filters {
		if !hasMetadata(sym, f.Target) {
			return false
		}
	}
	return true
}

func hasMetadata(sym *hir.HirSymbol, target string) bool {
	for _, m := range sym.Metadata {
		if m == target {
			return true
		}
	}
	return false
}

func (idx *SymbolIndex) collectInherited(fqn string, out map[string]*hir.HirSymbol, visited map[string]bool) {
	if visited[fqn] {
		return
	}
	visited[fqn] = true

	owner, ok := idx.ByFQN(fqn)
	if !ok {
		return
	}
	for _, rel := range owner.Relationships {
		switch rel.Kind {
		case hir.RelSpecializes, hir.RelRedefines, hir.RelReferences, hir.RelConjugates:
		default:
			continue
		}
		super, ok := idx.resolveRelTarget(fqn, rel.TargetName)
		if !ok {
			continue
		}
		idx.collectInherited(super.FullyQualifiedName, out, visited)
		for _, child := range idx.Children(super.FullyQualifiedName) {
			if _, exists := out[child.Name]; !exists {
				out[child.Name] = child
			}
		}
	}
}
