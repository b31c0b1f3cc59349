package index

import (
	"strings"

	"sysmlkit/pkg/hir"
)

// ResolveKind distinguishes how a Resolve call found its result, which
// the IDE layer uses to prioritize among ambiguous candidates and to
// decide what a hover/goto-definition response should say.
type ResolveKind uint8

const (
	ResolveExact ResolveKind = iota
	ResolveInherited
	ResolveAmbiguous
	ResolveNotFound
)

// ResolveResult is the outcome of resolving one name reference from a
// scope. Candidates has more than one entry only when Kind is
// ResolveAmbiguous.
type ResolveResult struct {
	Kind       ResolveKind
	Symbol     *hir.HirSymbol
	Candidates []*hir.HirSymbol
}

// Resolve looks up name starting from scope fqn, applying (in order):
//  1. an exact fully-qualified match, if name itself looks qualified,
//  2. each enclosing scope's visibility map, innermost first (inner
//     shadows outer — the first match wins outright); a scope's
//     visibility map already layers its own members over what it
//     inherits through specializes/subsets/redefines/references/
//     conjugates and what its import/alias/filter statements bring in,
//  3. members inherited through fqn's own chain a second time, for a
//     name that isn't a direct child of any inherited scope but is
//     itself inherited further down that scope's own chain.
//
// A name not reachable through any of the above is NotFound even if a
// symbol with that simple name exists elsewhere in the workspace:
// reachability is exactly what a scope's own members, inheritance, and
// imports/aliases/filters grant it, and nothing else — a workspace-wide
// simple-name scan would let an unrelated, unimported, or filtered-out
// symbol resolve anyway, which is precisely what imports and filters
// exist to prevent.
func (idx *SymbolIndex) Resolve(fqn string, name string) ResolveResult {
	if strings.Contains(name, "::") {
		if s, ok := idx.ByFQN(name); ok {
			return ResolveResult{Kind: ResolveExact, Symbol: s}
		}
	}

	for _, scope := range scopeChain(fqn) {
		if s, ok := idx.VisibilityMap(scope)[name]; ok {
			return ResolveResult{Kind: ResolveExact, Symbol: s}
		}
	}

	if owner, ok := idx.ByFQN(fqn); ok {
		if s, ok := idx.resolveInherited(owner, name, map[string]bool{}); ok {
			return ResolveResult{Kind: ResolveInherited, Symbol: s}
		}
	}

	return ResolveResult{Kind: ResolveNotFound}
}

// ResolveChain resolves a dotted feature chain (segments[0] is the root
// name, resolved the same way a plain reference would be; each later
// segment descends one simple-name lookup into the previous segment's
// own visibility map). Returns ResolveNotFound the moment any segment
// fails to resolve, since a broken link partway down a chain makes the
// rest of the chain meaningless.
func (idx *SymbolIndex) ResolveChain(fqn string, segments []string) ResolveResult {
	if len(segments) == 0 {
		return ResolveResult{Kind: ResolveNotFound}
	}
	result := idx.Resolve(fqn, segments[0])
	for _, seg := range segments[1:] {
		if result.Symbol == nil {
			return ResolveResult{Kind: ResolveNotFound}
		}
		next, ok := idx.VisibilityMap(result.Symbol.FullyQualifiedName)[seg]
		if !ok {
			return ResolveResult{Kind: ResolveNotFound}
		}
		result = ResolveResult{Kind: ResolveExact, Symbol: next}
	}
	return result
}

// ResolveAlias follows s's own RelAliasOf edge, if it has one, to the
// symbol it names, continuing through alias-of-alias chains until it
// reaches a non-alias symbol, an unresolvable target, or a cycle. Resolve
// deliberately stops at the alias itself (so looking a alias up by name
// finds its own symbol); ResolveAlias is the extra hop goto-definition
// takes to land on the real target.
func (idx *SymbolIndex) ResolveAlias(s *hir.HirSymbol) *hir.HirSymbol {
	visited := map[string]bool{}
	cur := s
	for {
		if visited[cur.FullyQualifiedName] {
			return cur
		}
		visited[cur.FullyQualifiedName] = true

		target := ""
		for _, rel := range cur.Relationships {
			if rel.Kind == hir.RelAliasOf {
				target = rel.TargetName
				break
			}
		}
		if target == "" {
			return cur
		}
		result := idx.Resolve(cur.ParentFQN, target)
		if result.Symbol == nil {
			return cur
		}
		cur = result.Symbol
	}
}

// resolveInherited walks owner's specializes/subsets/redefines/
// references/conjugates targets looking for a direct child named name,
// recursively, stopping at cycles.
func (idx *SymbolIndex) resolveInherited(owner *hir.HirSymbol, name string, visited map[string]bool) (*hir.HirSymbol, bool) {
	if visited[owner.FullyQualifiedName] {
		return nil, false
	}
	visited[owner.FullyQualifiedName] = true

	for _, rel := range owner.Relationships {
		switch rel.Kind {
		case hir.RelSpecializes, hir.RelRedefines, hir.RelReferences, hir.RelConjugates:
		default:
			continue
		}
		super, ok := idx.resolveRelTarget(owner.FullyQualifiedName, rel.TargetName)
		if !ok {
			continue
		}
		if s, ok := idx.ByFQN(joinScope(super.FullyQualifiedName, name)); ok {
			return s, true
		}
		if s, ok := idx.resolveInherited(super, name, visited); ok {
			return s, true
		}
	}
	return nil, false
}

// resolveRelTarget finds the symbol a relationship's raw target name
// refers to, starting from fqn's own scope chain — the same two steps
// Resolve itself opens with (exact qualified match, then each enclosing
// scope by raw FQN), but through ByFQN rather than VisibilityMap: this
// runs from inside VisibilityMap's own construction (collectInherited),
// where fqn's visibility map is not yet built and is not safe to ask for
// again.
func (idx *SymbolIndex) resolveRelTarget(fqn, name string) (*hir.HirSymbol, bool) {
	if strings.Contains(name, "::") {
		if s, ok := idx.ByFQN(name); ok {
			return s, true
		}
	}
	for _, scope := range scopeChain(fqn) {
		if s, ok := idx.ByFQN(joinScope(scope, name)); ok {
			return s, true
		}
	}
	return nil, false
}

// scopeChain returns fqn, its parent, its parent's parent, ..., down to
// the workspace root (""), innermost first.
func scopeChain(fqn string) []string {
	if fqn == "" {
		return []string{""}
	}
	parts := strings.Split(fqn, "::")
	chain := make([]string, 0, len(parts)+1)
	for i := len(parts); i > 0; i-- {
		chain = append(chain, strings.Join(parts[:i], "::"))
	}
	chain = append(chain, "")
	return chain
}

func joinScope(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "::" + name
}
