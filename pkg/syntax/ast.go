package syntax

import "sysmlkit/pkg/token"

// Parsed is the result of a single Parse call: the lossless tree plus any
// recovery diagnostics, bundled so callers don't have to thread two return
// values through query layers.
type Parsed struct {
	Green  *GreenNode
	Errors []SyntaxError
}

// Root returns a red-tree view over the parsed file.
func (p Parsed) Root() *Node { return NewRoot(p.Green) }

// ParseFile is a convenience wrapper around Parse that returns a Parsed.
func ParseFile(src []byte, d token.Dialect) Parsed {
	green, errs := Parse(src, d)
	return Parsed{Green: green, Errors: errs}
}

// SourceFileNode is a typed wrapper over the root SourceFile node.
type SourceFileNode struct{ *Node }

// AsSourceFile wraps n if it is a SourceFile node.
func AsSourceFile(n *Node) (SourceFileNode, bool) {
	if n.Kind() != SourceFile {
		return SourceFileNode{}, false
	}
	return SourceFileNode{n}, true
}

// Members returns the file's top-level Package/Import/Definition/Usage/
// CommentElement/AliasStatement/FilterStatement children.
func (f SourceFileNode) Members() []*Node {
	var out []*Node
	for _, c := range f.Children() {
		switch c.Kind() {
		case Package, LibraryPackage, Import, Definition, Usage, CommentElement,
			AliasStatement, FilterStatement:
			out = append(out, c)
		}
	}
	return out
}

// NameNode is a typed wrapper over a Name node.
type NameNode struct{ *Node }

// AsName wraps n if it is a Name node.
func AsName(n *Node) (NameNode, bool) {
	if n == nil || n.Kind() != Name {
		return NameNode{}, false
	}
	return NameNode{n}, true
}

// Text returns the name's raw spelling, quotes included for unrestricted
// identifiers — use Display for the resolved form.
func (nm NameNode) Text() string {
	for _, tk := range nm.NonTriviaTokens() {
		if tk.Kind == token.IDENT || tk.Kind == token.IDENT_UNRESTR {
			return tk.Text
		}
	}
	return ""
}

// DefinitionNode is a typed wrapper over a Definition node.
type DefinitionNode struct{ *Node }

// AsDefinition wraps n if it is a Definition node.
func AsDefinition(n *Node) (DefinitionNode, bool) {
	if n == nil || n.Kind() != Definition {
		return DefinitionNode{}, false
	}
	return DefinitionNode{n}, true
}

// Name returns the definition's declared name, if present (anonymous
// definitions have none — the extractor synthesizes one).
func (d DefinitionNode) Name() (NameNode, bool) {
	return AsName(d.ChildOfKind(Name))
}

// Body returns the definition's NamespaceBody, if it has one (an empty
// `;`-terminated definition has none).
func (d DefinitionNode) Body() (*Node, bool) {
	b := d.ChildOfKind(NamespaceBody)
	return b, b != nil
}

// Specializations returns every Specializes/Redefines/References/
// Conjugates clause attached directly to this definition.
func (d DefinitionNode) Specializations() []*Node {
	var out []*Node
	for _, c := range d.Children() {
		switch c.Kind() {
		case Specializes, Redefines, References, Conjugates:
			out = append(out, c)
		}
	}
	return out
}

// LeadingKeyword returns the first non-trivia token of the definition,
// which may be a leading visibility or prefix-modifier keyword rather
// than the primary declaration keyword itself — use DefKindOf to recover
// the DefKeywordKind.
func (d DefinitionNode) LeadingKeyword() (token.Token, bool) {
	toks := d.NonTriviaTokens()
	if len(toks) == 0 {
		return token.Token{}, false
	}
	return toks[0], true
}

// UsageNode is a typed wrapper over a Usage node; it shares the same
// shape as DefinitionNode minus the `def` keyword.
type UsageNode struct{ *Node }

// AsUsage wraps n if it is a Usage node.
func AsUsage(n *Node) (UsageNode, bool) {
	if n == nil || n.Kind() != Usage {
		return UsageNode{}, false
	}
	return UsageNode{n}, true
}

func (u UsageNode) Name() (NameNode, bool) { return AsName(u.ChildOfKind(Name)) }

func (u UsageNode) Typings() []*Node {
	return u.ChildrenOfKind(Typing)
}

// ImportNode is a typed wrapper over an Import node.
type ImportNode struct{ *Node }

// AsImport wraps n if it is an Import node.
func AsImport(n *Node) (ImportNode, bool) {
	if n == nil || n.Kind() != Import {
		return ImportNode{}, false
	}
	return ImportNode{n}, true
}

// Target returns the import's ImportTarget qualified-name node.
func (im ImportNode) Target() (*Node, bool) {
	t := im.ChildOfKind(ImportTarget)
	return t, t != nil
}

// IsWildcard reports whether the import ends in `::*`.
func (im ImportNode) IsWildcard() bool {
	t, ok := im.Target()
	if !ok {
		return false
	}
	toks := t.NonTriviaTokens()
	if len(toks) == 0 {
		return false
	}
	last := toks[len(toks)-1]
	return last.Kind == token.STAR || last.Kind == token.STAR_STAR
}

// IsTransitive reports whether the import ends in `::**` (recursive
// wildcard over nested namespaces).
func (im ImportNode) IsTransitive() bool {
	t, ok := im.Target()
	if !ok {
		return false
	}
	toks := t.NonTriviaTokens()
	return len(toks) > 0 && toks[len(toks)-1].Kind == token.STAR_STAR
}

// Alias returns the import's `alias X` target name, if present.
func (im ImportNode) Alias() (NameNode, bool) {
	a := im.ChildOfKind(Alias)
	if a == nil {
		return NameNode{}, false
	}
	return AsName(a.ChildOfKind(Name))
}

// AliasStatementNode is a typed wrapper over a top-level AliasStatement
// node (`alias A for B;`), distinct from the Alias node nested inside an
// Import's inline `alias` clause.
type AliasStatementNode struct{ *Node }

// AsAliasStatement wraps n if it is an AliasStatement node.
func AsAliasStatement(n *Node) (AliasStatementNode, bool) {
	if n == nil || n.Kind() != AliasStatement {
		return AliasStatementNode{}, false
	}
	return AliasStatementNode{n}, true
}

// Name returns the alias's own declared name.
func (a AliasStatementNode) Name() (NameNode, bool) { return AsName(a.ChildOfKind(Name)) }

// Target returns the qualified name being aliased.
func (a AliasStatementNode) Target() (*Node, bool) {
	t := a.ChildOfKind(QualifiedName)
	return t, t != nil
}

// FilterStatementNode is a typed wrapper over a top-level FilterStatement
// node (`filter @MetadataType;`).
type FilterStatementNode struct{ *Node }

// AsFilterStatement wraps n if it is a FilterStatement node.
func AsFilterStatement(n *Node) (FilterStatementNode, bool) {
	if n == nil || n.Kind() != FilterStatement {
		return FilterStatementNode{}, false
	}
	return FilterStatementNode{n}, true
}

// Target returns the filter's metadata type qualified name.
func (f FilterStatementNode) Target() (*Node, bool) {
	m := f.ChildOfKind(MetadataAnnotation)
	if m == nil {
		return nil, false
	}
	t := m.ChildOfKind(QualifiedName)
	return t, t != nil
}

// DefKindOf returns the DefKeywordKind of a Definition or Usage node's
// primary keyword token, letting callers (the symbol extractor) pick a
// SymbolKind and implicit supertype without re-lexing or re-parsing. Any
// leading visibility (`public`/`private`/`protected`) and declaration
// prefix modifiers (`abstract`, `readonly`, `derived`, ...) are children
// of the same node ahead of the primary keyword, so this skips past them
// rather than assuming the first token is the one that matters.
func DefKindOf(n *Node) (DefKeywordKind, bool) {
	for _, tk := range n.NonTriviaTokens() {
		switch tk.Kind {
		case token.KW_PUBLIC, token.KW_PRIVATE, token.KW_PROTECTED:
			continue
		default:
			if IsDeclPrefixModifier(tk.Kind) {
				continue
			}
			return defKeywordFor(tk.Kind)
		}
	}
	return DefUnknown, false
}

// QualifiedNameSegments returns the dot-free `::`-separated Name segments
// of a QualifiedName or ImportTarget node, in order.
func QualifiedNameSegments(n *Node) []string {
	var out []string
	for _, c := range n.ChildrenOfKind(Name) {
		if nm, ok := AsName(c); ok {
			out = append(out, nm.Text())
		}
	}
	return out
}
