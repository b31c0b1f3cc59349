package hir

import (
	"strconv"
	"strings"

	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/syntax"
	"sysmlkit/pkg/token"
)

// defKindToSymbolKind maps the parser's DefKeywordKind (derived straight
// from a declaration's leading token) to the domain SymbolKind the rest
// of the analysis engine reasons about.
var defKindToSymbolKind = map[syntax.DefKeywordKind]SymbolKind{
	syntax.DefPackage: SymbolPackage, syntax.DefLibraryPackage: SymbolLibraryPackage,
	syntax.DefPart: SymbolPart, syntax.DefAttribute: SymbolAttribute, syntax.DefItem: SymbolItem,
	syntax.DefOccurrence: SymbolOccurrence, syntax.DefPort: SymbolPort,
	syntax.DefConnection: SymbolConnection, syntax.DefInterface: SymbolInterface,
	syntax.DefFlow: SymbolFlow, syntax.DefAllocation: SymbolAllocation,
	syntax.DefAction: SymbolAction, syntax.DefState: SymbolState, syntax.DefCalc: SymbolCalc,
	syntax.DefConstraint: SymbolConstraint, syntax.DefRequirement: SymbolRequirement,
	syntax.DefCase: SymbolCase, syntax.DefAnalysisCase: SymbolAnalysisCase,
	syntax.DefVerificationCase: SymbolVerificationCase, syntax.DefUseCase: SymbolUseCase,
	syntax.DefView: SymbolView, syntax.DefViewpoint: SymbolViewpoint,
	syntax.DefRendering: SymbolRendering, syntax.DefMetadata: SymbolMetadata,
	syntax.DefEnumeration: SymbolEnumeration, syntax.DefClass: SymbolClass,
	syntax.DefStruct: SymbolStruct, syntax.DefDataType: SymbolDataType,
	syntax.DefAssoc: SymbolAssoc, syntax.DefBehavior: SymbolBehavior,
	syntax.DefFunction: SymbolFunction, syntax.DefPredicate: SymbolPredicate,
	syntax.DefInteraction: SymbolInteraction, syntax.DefClassifier: SymbolClassifier,
	syntax.DefFeature: SymbolFeature, syntax.DefStep: SymbolStep,
	syntax.DefConnector: SymbolConnector, syntax.DefRef: SymbolRef,
	syntax.DefConcern: SymbolConcern,
}

// relNodeKindToRelKind maps relationship-clause node kinds to the HIR
// RelationshipKind stored in Relationships. syntax.Typing is handled
// separately in extractDeclaration (see typeRefsFromTyping) since a typing
// clause needs a TypeRef, not a plain Relationship.
var relNodeKindToRelKind = map[syntax.NodeKind]RelationshipKind{
	syntax.Specializes: RelSpecializes, syntax.Redefines: RelRedefines,
	syntax.References: RelReferences, syntax.Conjugates: RelConjugates,
	syntax.Crosses: RelCrosses, syntax.Performs: RelPerforms, syntax.Exhibits: RelExhibits,
	syntax.Includes: RelIncludes, syntax.Satisfies: RelSatisfies, syntax.Asserts: RelAsserts,
	syntax.Verifies: RelVerifies, syntax.Disjoining: RelDisjoins,
}

// Extraction is Extract's full result: the file's flat symbol table plus
// the import and scope-filter statements collected along the way.
// pkg/index consumes Imports/Filters to build cross-file visibility maps;
// neither is derivable from Symbols alone since imports/filters carry no
// HirSymbol of their own (a standalone `alias` statement does, and is
// included in Symbols like any other declaration).
type Extraction struct {
	Symbols []HirSymbol
	Imports []Import
	Filters []ScopeFilter
}

// Extract walks a parsed file's red tree and returns its flat symbol
// table plus its import and filter statements. file identifies the
// symbols' owning file for cross-file maps in pkg/index; li supplies the
// 1-based line number stamped into synthesized anonymous names (see
// anonName).
func Extract(file ids.FileId, root *syntax.Node, li *ids.LineIndex) Extraction {
	c := &ctx{file: file, li: li, anonCounters: map[string]int{}}
	sf, ok := syntax.AsSourceFile(root)
	if !ok {
		return Extraction{}
	}
	for _, m := range sf.Members() {
		c.extractMember(m)
	}
	return Extraction{Symbols: c.symbols, Imports: c.imports, Filters: c.filters}
}

type ctx struct {
	file         ids.FileId
	li           *ids.LineIndex
	scope        []string
	symbols      []HirSymbol
	imports      []Import
	filters      []ScopeFilter
	anonCounters map[string]int
}

func (c *ctx) currentFQN() string { return strings.Join(c.scope, "::") }

func (c *ctx) pushScope(name string) { c.scope = append(c.scope, name) }
func (c *ctx) popScope()             { c.scope = c.scope[:len(c.scope)-1] }

// anonName synthesizes a stable-looking name for an unnamed element:
// <prefix#counter@Lline>, where counter is the nth anonymous element of
// that prefix encountered so far in this file and line is its 1-based
// source line.
func (c *ctx) anonName(prefix string, rng ids.TextRange) string {
	c.anonCounters[prefix]++
	n := c.anonCounters[prefix]
	line := c.li.LineCol(rng.Start).Line + 1
	return "<" + prefix + "#" + strconv.Itoa(n) + "@L" + strconv.Itoa(int(line)) + ">"
}

func (c *ctx) extractMember(n *syntax.Node) {
	switch n.Kind() {
	case syntax.Package, syntax.LibraryPackage:
		c.extractPackage(n)
	case syntax.Definition:
		c.extractDeclaration(n, true)
	case syntax.Usage:
		c.extractDeclaration(n, false)
	case syntax.Import:
		c.imports = append(c.imports, c.extractImport(n))
	case syntax.AliasStatement:
		c.extractAliasStatement(n)
	case syntax.FilterStatement:
		c.filters = append(c.filters, c.extractFilterStatement(n))
	case syntax.CommentElement:
		// Doc/comment elements carry no symbol of their own.
	}
}

func (c *ctx) extractPackage(n *syntax.Node) {
	isLibrary := n.Kind() == syntax.LibraryPackage
	kind := SymbolPackage
	if isLibrary {
		kind = SymbolLibraryPackage
	}

	name := "<package>"
	isAnon := true
	var nameRange ids.TextRange
	if nm := n.ChildOfKind(syntax.Name); nm != nil {
		if named, ok := syntax.AsName(nm); ok {
			name = ids.DisplayForm(named.Text())
			nameRange = nm.Range()
			isAnon = false
		}
	}
	if isAnon {
		name = c.anonName("package", n.Range())
	}

	parent := c.currentFQN()
	c.pushScope(name)
	fqn := c.currentFQN()

	c.symbols = append(c.symbols, HirSymbol{
		Name: name, FullyQualifiedName: fqn, ParentFQN: parent,
		Kind: kind, IsDefinition: true, IsAnonymous: isAnon,
		File: c.file, Range: n.Range(), NameRange: nameRange,
		Visibility: visibilityOf(n),
	})

	if body := n.ChildOfKind(syntax.NamespaceBody); body != nil {
		for _, m := range body.Children() {
			c.extractMember(m)
		}
	}
	c.popScope()
}

func (c *ctx) extractDeclaration(n *syntax.Node, isDef bool) {
	defKind, _ := syntax.DefKindOf(n)
	symKind := SymbolRef
	if k, ok := defKindToSymbolKind[defKind]; ok {
		symKind = k
	}

	name := ""
	isAnon := true
	var nameRange ids.TextRange
	if nm := n.ChildOfKind(syntax.Name); nm != nil {
		if named, ok := syntax.AsName(nm); ok {
			name = ids.DisplayForm(named.Text())
			nameRange = nm.Range()
			isAnon = false
		}
	}
	if isAnon {
		name = c.anonName(symKind.String(), n.Range())
	}

	parent := c.currentFQN()
	c.pushScope(name)
	fqn := c.currentFQN()

	var rels []Relationship
	var metadata []string
	var typeRefs []TypeRef
	hasOwnTypeRelation := false
	for _, child := range n.Children() {
		if child.Kind() == syntax.Typing {
			hasOwnTypeRelation = true
			typeRefs = append(typeRefs, typeRefsFromTyping(child)...)
			continue
		}
		if relKind, ok := relNodeKindToRelKind[child.Kind()]; ok {
			if relKind == RelSpecializes || relKind == RelRedefines || relKind == RelReferences || relKind == RelConjugates {
				hasOwnTypeRelation = true
			}
			for _, qn := range child.ChildrenOfKind(syntax.QualifiedName) {
				rels = append(rels, Relationship{
					Kind:       relKind,
					TargetName: joinQualifiedName(qn),
					Range:      child.Range(),
				})
			}
		}
		if child.Kind() == syntax.MetadataAnnotation {
			if qn := child.ChildOfKind(syntax.QualifiedName); qn != nil {
				metadata = append(metadata, joinQualifiedName(qn))
			}
		}
	}

	if !hasOwnTypeRelation {
		if implicit, ok := implicitSupertypeFor(defKind); ok {
			rels = append(rels, Relationship{
				Kind: RelSpecializes, TargetName: implicit, Implicit: true,
			})
		}
	}

	var mult *Multiplicity
	if mn := n.ChildOfKind(syntax.Multiplicity); mn != nil {
		mult = extractMultiplicity(mn)
	}
	abstract, variation, derived, readonly := declFlags(n)

	c.symbols = append(c.symbols, HirSymbol{
		Name: name, FullyQualifiedName: fqn, ParentFQN: parent,
		Kind: symKind, IsDefinition: isDef, IsAnonymous: isAnon,
		File: c.file, Range: n.Range(), NameRange: nameRange,
		Visibility:   visibilityOf(n),
		IsAbstract:   abstract,
		IsVariation:  variation,
		IsDerived:    derived,
		IsReadonly:   readonly,
		Multiplicity: mult,
		TypeRefs:     typeRefs,
		Relationships: rels, Metadata: metadata,
	})

	if body := n.ChildOfKind(syntax.NamespaceBody); body != nil {
		for _, m := range body.Children() {
			c.extractMember(m)
		}
	}
	c.popScope()
}

// extractImport turns an Import node into the flat Import record
// pkg/index consumes when building visibility maps; the CST keeps the
// full grammar shape (ImportTarget, inline Alias/Filter clauses) but the
// resolver only needs the resolved scope, target, kind, and modifiers.
func (c *ctx) extractImport(n *syntax.Node) Import {
	im, _ := syntax.AsImport(n)
	kind := ImportSingle
	switch {
	case im.IsTransitive():
		kind = ImportTransitive
	case im.IsWildcard():
		kind = ImportWildcard
	}

	target := ""
	if t, ok := im.Target(); ok {
		target = strings.Join(syntax.QualifiedNameSegments(t), "::")
	}

	alias := ""
	if a, ok := im.Alias(); ok {
		alias = ids.DisplayForm(a.Text())
	}

	filterExpr := ""
	if f := n.ChildOfKind(syntax.Filter); f != nil {
		if expr := f.ChildOfKind(syntax.Expression); expr != nil {
			filterExpr = extractAtMetadataName(expr)
		}
	}

	return Import{
		Scope:      c.currentFQN(),
		Target:     target,
		Kind:       kind,
		IsPublic:   hasKeyword(n, token.KW_PUBLIC),
		Alias:      alias,
		FilterExpr: filterExpr,
		Range:      n.Range(),
	}
}

// extractAliasStatement records a standalone `alias A for B;` as its own
// HirSymbol (so resolving "A" finds the alias itself) carrying a single
// RelAliasOf relationship to its target (so goto-definition can walk one
// hop further to B).
func (c *ctx) extractAliasStatement(n *syntax.Node) {
	a, _ := syntax.AsAliasStatement(n)

	name := ""
	isAnon := true
	var nameRange ids.TextRange
	if nm, ok := a.Name(); ok {
		name = ids.DisplayForm(nm.Text())
		nameRange = nm.Range()
		isAnon = false
	}
	if isAnon {
		name = c.anonName("alias", n.Range())
	}

	target := ""
	if t, ok := a.Target(); ok {
		target = joinQualifiedName(t)
	}

	parent := c.currentFQN()
	fqn := joinFQN(parent, name)

	c.symbols = append(c.symbols, HirSymbol{
		Name: name, FullyQualifiedName: fqn, ParentFQN: parent,
		Kind: SymbolRef, IsDefinition: true, IsAnonymous: isAnon,
		File: c.file, Range: n.Range(), NameRange: nameRange,
		Visibility: visibilityOf(n),
		Relationships: []Relationship{
			{Kind: RelAliasOf, TargetName: target, Range: n.Range()},
		},
	})
}

func (c *ctx) extractFilterStatement(n *syntax.Node) ScopeFilter {
	f, _ := syntax.AsFilterStatement(n)
	target := ""
	if t, ok := f.Target(); ok {
		target = joinQualifiedName(t)
	}
	return ScopeFilter{Scope: c.currentFQN(), Target: target}
}

// extractAtMetadataName reads the `@MetadataType` name out of an import's
// bracket filter clause. Unlike the standalone `filter @M;` statement
// (which parses its metadata reference as a MetadataAnnotation node), the
// bracket clause is parsed as a raw balanced Expression, so the `@` and
// its qualified name have to be picked back out of the token stream.
func extractAtMetadataName(expr *syntax.Node) string {
	toks := expr.NonTriviaTokens()
	var b strings.Builder
	collecting := false
	for _, tk := range toks {
		if !collecting {
			if tk.Kind == token.AT {
				collecting = true
			}
			continue
		}
		switch tk.Kind {
		case token.IDENT, token.IDENT_UNRESTR:
			b.WriteString(ids.DisplayForm(tk.Text))
		case token.COLON_COLON:
			b.WriteString("::")
		default:
			return b.String()
		}
	}
	return b.String()
}

// visibilityOf scans a declaration's own leading tokens (visibility never
// appears anywhere else in a Definition/Usage/Package/Import/
// AliasStatement's immediate token children) for an explicit
// public/private/protected keyword, defaulting to public when none is
// written.
func visibilityOf(n *syntax.Node) Visibility {
	for _, tk := range n.NonTriviaTokens() {
		switch tk.Kind {
		case token.KW_PRIVATE:
			return VisibilityPrivate
		case token.KW_PROTECTED:
			return VisibilityProtected
		case token.KW_PUBLIC:
			return VisibilityPublic
		}
	}
	return VisibilityPublic
}

func hasKeyword(n *syntax.Node, k token.Kind) bool {
	for _, tk := range n.NonTriviaTokens() {
		if tk.Kind == k {
			return true
		}
	}
	return false
}

// declFlags reads the abstract/variation/derived/readonly prefix (or
// trailing) modifiers off a Definition/Usage's own immediate tokens.
func declFlags(n *syntax.Node) (abstract, variation, derived, readonly bool) {
	for _, tk := range n.NonTriviaTokens() {
		switch tk.Kind {
		case token.KW_ABSTRACT:
			abstract = true
		case token.KW_VARIATION:
			variation = true
		case token.KW_DERIVED:
			derived = true
		case token.KW_READONLY:
			readonly = true
		}
	}
	return
}

// typeRefsFromTyping turns a Typing clause's targets (one per comma-
// separated entry, each either a plain QualifiedName or a dotted
// FeatureChain) into TypeRefs.
func typeRefsFromTyping(n *syntax.Node) []TypeRef {
	var out []TypeRef
	for _, c := range n.Children() {
		switch c.Kind() {
		case syntax.QualifiedName:
			out = append(out, TypeRef{Target: joinQualifiedName(c), Range: c.Range()})
		case syntax.FeatureChain:
			out = append(out, typeRefFromFeatureChain(c))
		}
	}
	return out
}

// typeRefFromFeatureChain flattens a FeatureChain node — a nested
// QualifiedName followed by `.`-separated Name segments — into ordered
// ChainSegments, each keeping its own range for independent hover/goto.
func typeRefFromFeatureChain(n *syntax.Node) TypeRef {
	var chain []ChainSegment
	for _, c := range n.Children() {
		switch c.Kind() {
		case syntax.QualifiedName:
			for _, nm := range c.ChildrenOfKind(syntax.Name) {
				if named, ok := syntax.AsName(nm); ok {
					chain = append(chain, ChainSegment{Name: named.Text(), Range: nm.Range()})
				}
			}
		case syntax.Name:
			if named, ok := syntax.AsName(c); ok {
				chain = append(chain, ChainSegment{Name: named.Text(), Range: c.Range()})
			}
		}
	}
	target := ""
	if len(chain) > 0 {
		target = chain[len(chain)-1].Name
	}
	return TypeRef{Target: target, Range: n.Range(), Chain: chain}
}

// extractMultiplicity reads a `[ ... ]` bound off its Multiplicity node:
// the bare `[*]` form (a lone STAR_INFINITY token, no MultiplicityRange
// child) or the `[n]` / `[lower..upper]` forms (a MultiplicityRange
// child), plus the trailing ordered/nonunique modifiers either form
// allows.
func extractMultiplicity(n *syntax.Node) *Multiplicity {
	m := &Multiplicity{}
	for _, tk := range n.NonTriviaTokens() {
		switch tk.Kind {
		case token.KW_ORDERED:
			m.IsOrdered = true
		case token.KW_NONUNIQUE:
			m.IsNonunique = true
		case token.STAR_INFINITY:
			m.Lower = Bound{Star: true}
			m.Upper = Bound{Star: true}
		}
	}
	if r := n.ChildOfKind(syntax.MultiplicityRange); r != nil {
		lower, upper, hasRange := extractBounds(r)
		m.Lower, m.Upper, m.HasRange = lower, upper, hasRange
	}
	return m
}

// extractBounds reads the one or two bounds of a MultiplicityRange:
// either an Expression node (a literal, evaluated by boundFromExpression)
// or a bare STAR_INFINITY token (the unbounded `*`, reclassified by the
// parser so it isn't confused with a wildcard import).
func extractBounds(rangeNode *syntax.Node) (lower, upper Bound, hasRange bool) {
	var bounds []Bound
	for _, el := range rangeNode.ChildrenWithTokens() {
		switch {
		case el.IsNode() && el.Node.Kind() == syntax.Expression:
			bounds = append(bounds, boundFromExpression(el.Node))
		case el.Token != nil && el.Token.Kind == token.STAR_INFINITY:
			bounds = append(bounds, Bound{Star: true})
		}
	}
	switch len(bounds) {
	case 0:
		return Bound{}, Bound{}, false
	case 1:
		return bounds[0], bounds[0], false
	default:
		return bounds[0], bounds[1], true
	}
}

func boundFromExpression(n *syntax.Node) Bound {
	for _, tk := range n.NonTriviaTokens() {
		if tk.Kind == token.INTEGER {
			if v, err := strconv.ParseInt(tk.Text, 10, 64); err == nil {
				return Bound{Value: v}
			}
		}
	}
	return Bound{}
}

func joinFQN(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "::" + name
}

func joinQualifiedName(n *syntax.Node) string {
	return strings.Join(syntax.QualifiedNameSegments(n), "::")
}
