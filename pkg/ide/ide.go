// Package ide answers the IDE-facing queries (hover, goto-definition,
// find-references, completions, document/workspace symbols, semantic
// tokens, folding ranges) as thin, read-only queries over a pkg/db
// Database — no state of their own, matching the teacher's
// pkg/validator/analyzer.go, which walks an already-built AST once and
// synthesizes a summary rather than maintaining its own index, and
// pkg/mcp/handlers.go, which dispatches one handler per request kind
// into a shared query service.
package ide

import (
	"sysmlkit/pkg/db"
	"sysmlkit/pkg/diagnostics"
	"sysmlkit/pkg/hir"
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/index"
	"sysmlkit/pkg/syntax"
)

// Location identifies a byte range within a specific file, the unit
// goto_definition and find_references answer in.
type Location struct {
	File  ids.FileId
	Range ids.TextRange
}

// ResolvedRelationship pairs a symbol's Relationship with the Location of
// whatever it resolved to, for display in a Hover.
type ResolvedRelationship struct {
	hir.Relationship
	Target *Location
}

// ResolvedTypeRef pairs a symbol's TypeRef with the Location of whatever
// it typed against, the typing counterpart to ResolvedRelationship now
// that typing targets live on their own field instead of being folded
// into Relationships.
type ResolvedTypeRef struct {
	hir.TypeRef
	Target *Location
}

// Hover is the answer to a hover query at a cursor position.
type Hover struct {
	Symbol        hir.HirSymbol
	Range         ids.TextRange
	Relationships []ResolvedRelationship
	TypeRefs      []ResolvedTypeRef
}

// CompletionItem is one candidate offered at a cursor position.
type CompletionItem struct {
	Name   string
	Kind   hir.SymbolKind
	Detail string
}

// SemanticToken is one classified span for syntax highlighting.
type SemanticToken struct {
	Range     ids.TextRange
	TokenType string
	Modifiers []string
}

// Queries wraps a Database and answers every IDE-facing query against
// it. It carries no state beyond the Database reference: every method
// is a pure function of the database's current revision.
type Queries struct {
	db *db.Database
}

// New returns a Queries view over d.
func New(d *db.Database) *Queries {
	return &Queries{db: d}
}

// ParseErrors returns file's syntax errors.
func (q *Queries) ParseErrors(file ids.FileId) []syntax.SyntaxError {
	_, errs, _ := q.db.Parse(file)
	return errs
}

// Symbols returns file's flat symbol table in source order.
func (q *Queries) Symbols(file ids.FileId) []hir.HirSymbol {
	syms, _ := q.db.FileSymbols(file)
	return syms
}

// Diagnostics returns file's semantic findings.
func (q *Queries) Diagnostics(file ids.FileId) []diagnostics.Diagnostic {
	diags, _ := q.db.Diagnostics(file)
	return diags
}

// symbolAt returns the innermost symbol in file whose Range contains
// offset, preferring NameRange matches (the cursor sits on the name
// itself, the common hover/goto target) over a broader body match.
func (q *Queries) symbolAt(file ids.FileId, offset uint32) (hir.HirSymbol, bool) {
	var best hir.HirSymbol
	found := false
	for _, s := range q.Symbols(file) {
		if s.NameRange.ContainsOffset(offset) {
			return s, true
		}
		if s.Range.ContainsOffset(offset) {
			if !found || s.Range.Len() < best.Range.Len() {
				best = s
				found = true
			}
		}
	}
	return best, found
}

// relationshipAt returns the relationship on the symbol at offset (there
// is at most one useful relationship at any single cursor position: the
// one whose own Range contains it), if any.
func (q *Queries) relationshipAt(file ids.FileId, offset uint32) (hir.HirSymbol, hir.Relationship, bool) {
	owner, ok := q.symbolAt(file, offset)
	if !ok {
		return hir.HirSymbol{}, hir.Relationship{}, false
	}
	for _, rel := range owner.Relationships {
		if rel.Range.ContainsOffset(offset) {
			return owner, rel, true
		}
	}
	return owner, hir.Relationship{}, false
}

// typeRefAt returns the type reference on the symbol at offset whose own
// Range contains it, if any — the typing counterpart to relationshipAt.
func (q *Queries) typeRefAt(file ids.FileId, offset uint32) (hir.HirSymbol, hir.TypeRef, bool) {
	owner, ok := q.symbolAt(file, offset)
	if !ok {
		return hir.HirSymbol{}, hir.TypeRef{}, false
	}
	for _, ref := range owner.TypeRefs {
		if ref.Range.ContainsOffset(offset) {
			return owner, ref, true
		}
	}
	return owner, hir.TypeRef{}, false
}

// resolveTypeRef resolves ref as seen from owner's scope, following its
// Chain segment-by-segment when it names a dotted feature chain rather
// than a bare type name.
func (q *Queries) resolveTypeRef(idx *index.SymbolIndex, owner hir.HirSymbol, ref hir.TypeRef) index.ResolveResult {
	if len(ref.Chain) > 1 {
		segments := make([]string, len(ref.Chain))
		for i, seg := range ref.Chain {
			segments[i] = seg.Name
		}
		return idx.ResolveChain(owner.FullyQualifiedName, segments)
	}
	return idx.Resolve(owner.FullyQualifiedName, ref.Target)
}

func (q *Queries) locationOf(s *hir.HirSymbol) Location {
	return Location{File: s.File, Range: s.NameRange}
}

// Resolve looks up name as seen from the scope at offset in file.
func (q *Queries) Resolve(file ids.FileId, offset uint32, name string) index.ResolveResult {
	owner, ok := q.symbolAt(file, offset)
	scope := ""
	if ok {
		scope = owner.FullyQualifiedName
	}
	return q.db.SymbolIndex().Resolve(scope, name)
}

// Hover answers a hover query: the symbol under the cursor, or — if the
// cursor sits on a relationship's target name — that relationship
// resolved against the workspace index.
func (q *Queries) Hover(file ids.FileId, offset uint32) (Hover, bool) {
	owner, _, onRel := q.relationshipAt(file, offset)
	if !onRel {
		s, ok := q.symbolAt(file, offset)
		if !ok {
			return Hover{}, false
		}
		return Hover{Symbol: s, Range: s.NameRange, Relationships: q.resolveRelationships(s), TypeRefs: q.resolveTypeRefs(s)}, true
	}
	return Hover{Symbol: owner, Range: owner.NameRange, Relationships: q.resolveRelationships(owner), TypeRefs: q.resolveTypeRefs(owner)}, true
}

func (q *Queries) resolveRelationships(s hir.HirSymbol) []ResolvedRelationship {
	idx := q.db.SymbolIndex()
	out := make([]ResolvedRelationship, 0, len(s.Relationships))
	for _, rel := range s.Relationships {
		resolved := ResolvedRelationship{Relationship: rel}
		if result := idx.Resolve(s.FullyQualifiedName, rel.TargetName); result.Kind == index.ResolveExact || result.Kind == index.ResolveInherited {
			loc := q.locationOf(result.Symbol)
			resolved.Target = &loc
		}
		out = append(out, resolved)
	}
	return out
}

func (q *Queries) resolveTypeRefs(s hir.HirSymbol) []ResolvedTypeRef {
	idx := q.db.SymbolIndex()
	out := make([]ResolvedTypeRef, 0, len(s.TypeRefs))
	for _, ref := range s.TypeRefs {
		resolved := ResolvedTypeRef{TypeRef: ref}
		if result := q.resolveTypeRef(idx, s, ref); result.Kind == index.ResolveExact || result.Kind == index.ResolveInherited {
			loc := q.locationOf(result.Symbol)
			resolved.Target = &loc
		}
		out = append(out, resolved)
	}
	return out
}

// GotoDefinition resolves the reference (if any) at offset and returns
// its defining location. A reference that lands on an alias follows the
// alias's own RelAliasOf edge one more hop, so goto-definition on a use
// of an alias lands on the real symbol it names rather than the alias
// declaration itself.
func (q *Queries) GotoDefinition(file ids.FileId, offset uint32) []Location {
	idx := q.db.SymbolIndex()

	if owner, rel, onRel := q.relationshipAt(file, offset); onRel {
		return q.gotoResult(idx.Resolve(owner.FullyQualifiedName, rel.TargetName), idx)
	}
	if owner, ref, onRef := q.typeRefAt(file, offset); onRef {
		return q.gotoResult(q.resolveTypeRef(idx, owner, ref), idx)
	}
	return nil
}

func (q *Queries) gotoResult(result index.ResolveResult, idx *index.SymbolIndex) []Location {
	switch result.Kind {
	case index.ResolveExact, index.ResolveInherited:
		return []Location{q.locationOf(idx.ResolveAlias(result.Symbol))}
	case index.ResolveAmbiguous:
		out := make([]Location, len(result.Candidates))
		for i, c := range result.Candidates {
			out[i] = q.locationOf(idx.ResolveAlias(c))
		}
		return out
	default:
		return nil
	}
}

// FindReferences returns every relationship in the workspace that
// resolves to the symbol at offset, plus that symbol's own declaration.
func (q *Queries) FindReferences(file ids.FileId, offset uint32) []Location {
	target, ok := q.symbolAt(file, offset)
	if !ok {
		return nil
	}

	idx := q.db.SymbolIndex()
	out := []Location{q.locationOf(&target)}
	for _, s := range idx.All() {
		for _, rel := range s.Relationships {
			if rel.Implicit {
				continue
			}
			result := idx.Resolve(s.FullyQualifiedName, rel.TargetName)
			if result.Kind == index.ResolveExact || result.Kind == index.ResolveInherited {
				if result.Symbol.FullyQualifiedName == target.FullyQualifiedName {
					out = append(out, Location{File: s.File, Range: rel.Range})
				}
			}
		}
		for _, ref := range s.TypeRefs {
			result := q.resolveTypeRef(idx, *s, ref)
			if result.Kind == index.ResolveExact || result.Kind == index.ResolveInherited {
				if result.Symbol.FullyQualifiedName == target.FullyQualifiedName {
					out = append(out, Location{File: s.File, Range: ref.Range})
				}
			}
		}
	}
	return out
}

// DocumentSymbols returns file's symbols in source order, tree-shaped
// via each symbol's ParentFQN.
func (q *Queries) DocumentSymbols(file ids.FileId) []hir.HirSymbol {
	return q.Symbols(file)
}

// WorkspaceSymbols returns every symbol in the workspace whose simple
// name contains query as a case-sensitive substring (empty query matches
// everything).
func (q *Queries) WorkspaceSymbols(query string) []hir.HirSymbol {
	all := q.db.SymbolIndex().All()
	if query == "" {
		out := make([]hir.HirSymbol, len(all))
		for i, s := range all {
			out[i] = *s
		}
		return out
	}
	out := []hir.HirSymbol{}
	for _, s := range all {
		if containsSubstring(s.Name, query) {
			out = append(out, *s)
		}
	}
	return out
}

// Completions offers every name visible from the scope at offset:
// everything in scope's VisibilityMap plus every direct child of the
// workspace root (top-level packages are always reachable by qualified
// name).
func (q *Queries) Completions(file ids.FileId, offset uint32) []CompletionItem {
	owner, ok := q.symbolAt(file, offset)
	scope := ""
	if ok {
		scope = owner.FullyQualifiedName
	}

	idx := q.db.SymbolIndex()
	seen := make(map[string]bool)
	var out []CompletionItem
	for name, s := range idx.VisibilityMap(scope) {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, CompletionItem{Name: name, Kind: s.Kind, Detail: s.FullyQualifiedName})
	}
	for _, s := range idx.Children("") {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, CompletionItem{Name: s.Name, Kind: s.Kind, Detail: s.FullyQualifiedName})
	}
	return out
}

// SemanticTokens emits one token per Name node in file. A name that is a
// non-anonymous declaration's own name is classified by that symbol's
// SymbolKind (plus a "definition" modifier for definitions); every other
// name is classified as "identifier". Keywords, literals, and punctuation
// produce no token.
func (q *Queries) SemanticTokens(file ids.FileId) []SemanticToken {
	green, _, ok := q.db.Parse(file)
	if !ok {
		return nil
	}
	root := syntax.NewRoot(green)

	byNameRange := make(map[ids.TextRange]hir.HirSymbol)
	for _, s := range q.Symbols(file) {
		if !s.IsAnonymous {
			byNameRange[s.NameRange] = s
		}
	}

	var out []SemanticToken
	root.Walk(func(n *syntax.Node) {
		if n.Kind() != syntax.Name {
			return
		}
		rng := n.Range()
		tokenType := "identifier"
		var modifiers []string
		if s, ok := byNameRange[rng]; ok {
			tokenType = s.Kind.String()
			if s.IsDefinition {
				modifiers = append(modifiers, "definition")
			}
		}
		out = append(out, SemanticToken{Range: rng, TokenType: tokenType, Modifiers: modifiers})
	})
	return out
}

// FoldingRanges returns the range of every declaration and package body
// wide enough to be worth collapsing (more than one line).
func (q *Queries) FoldingRanges(file ids.FileId) []ids.TextRange {
	green, _, ok := q.db.Parse(file)
	if !ok {
		return nil
	}
	root := syntax.NewRoot(green)
	li, _ := q.db.LineIndex(file)

	var out []ids.TextRange
	root.Walk(func(n *syntax.Node) {
		switch n.Kind() {
		case syntax.Package, syntax.LibraryPackage, syntax.Definition, syntax.Usage, syntax.NamespaceBody:
		default:
			return
		}
		rng := n.Range()
		if li != nil && li.LineCol(rng.Start).Line == li.LineCol(rng.End).Line {
			return
		}
		out = append(out, rng)
	})
	return out
}

func containsSubstring(haystack, needle string) bool {
	hl, nl := len(haystack), len(needle)
	if nl == 0 {
		return true
	}
	for i := 0; i+nl <= hl; i++ {
		if haystack[i:i+nl] == needle {
			return true
		}
	}
	return false
}
