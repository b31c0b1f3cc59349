package syntax

import (
	"sysmlkit/pkg/lexer"
	"sysmlkit/pkg/token"
)

// Parse runs the recursive-descent parser over src under dialect d and
// returns the lossless green tree root plus any syntax errors recorded
// during recovery. Parse never fails outright: malformed input is wrapped
// in ErrorNode sentinels and parsing continues.
func Parse(src []byte, d token.Dialect) (*GreenNode, []SyntaxError) {
	p := &parser{
		toks:    lexer.Lex(src, d),
		b:       newBuilder(),
		dialect: d,
	}
	p.parseSourceFile()
	return p.b.finish(), p.errors
}

type parser struct {
	toks    []token.Token
	pos     int
	b       *builder
	dialect token.Dialect
	errors  []SyntaxError
}

// Recovery sets, named after the grammar context that installs them. Each
// set is the collection of token kinds that may legitimately follow (or
// resume) the construct currently being parsed; error_recover consumes
// tokens until one of these is reached so a single malformed declaration
// doesn't cascade into spurious errors for the rest of the file.
var (
	recoveryNamespaceBody = []token.Kind{
		token.KW_PART, token.KW_ACTION, token.KW_STATE, token.KW_REQUIREMENT,
		token.KW_CONCERN, token.KW_PACKAGE, token.KW_IMPORT, token.KW_ALIAS,
		token.KW_FILTER, token.KW_PUBLIC, token.KW_PRIVATE,
		token.KW_PROTECTED, token.KW_ATTRIBUTE, token.KW_ITEM, token.KW_PORT,
		token.KW_CONNECTION, token.KW_INTERFACE, token.KW_FLOW, token.KW_ALLOCATION,
		token.KW_CALC, token.KW_CONSTRAINT, token.KW_CASE, token.KW_VIEW,
		token.KW_VIEWPOINT, token.KW_RENDERING, token.KW_METADATA, token.KW_ENUM,
		token.KW_CLASS, token.KW_STRUCT, token.KW_DATATYPE, token.KW_ASSOC,
		token.KW_BEHAVIOR, token.KW_FUNCTION, token.KW_PREDICATE,
		token.KW_INTERACTION, token.KW_CLASSIFIER, token.KW_FEATURE,
		token.KW_STEP, token.KW_CONNECTOR, token.KW_DOC, token.KW_COMMENT,
		token.KW_PERFORM, token.KW_EXHIBIT, token.KW_INCLUDE, token.KW_SATISFY,
		token.KW_ASSERT, token.KW_VERIFY, token.KW_DISJOINT,
		token.KW_ABSTRACT, token.KW_VARIATION, token.KW_VARIANT, token.KW_DERIVED,
		token.KW_READONLY, token.KW_END, token.KW_REF, token.KW_IN, token.KW_OUT,
		token.KW_INOUT,
		token.R_BRACE,
	}
	recoveryExpression  = []token.Kind{token.SEMICOLON, token.R_PAREN, token.R_BRACKET, token.R_BRACE, token.COMMA}
	recoveryImport      = []token.Kind{token.SEMICOLON, token.R_BRACE}
	recoveryMultiplicity = []token.Kind{token.R_BRACKET}
	// recoveryDeclHeader also resumes at the next member keyword so a
	// malformed declaration header doesn't swallow its well-formed
	// successor while scanning for its own terminator.
	recoveryDeclHeader = append([]token.Kind{token.L_BRACE, token.SEMICOLON}, recoveryNamespaceBody...)
)

// ---- token cursor helpers ----

// current emits any trivia ahead of pos into the open node, then returns
// the next significant token without consuming it.
func (p *parser) current() token.Token {
	p.bumpTrivia()
	return p.rawCurrent()
}

// rawCurrent returns the token at pos without skipping trivia — used by
// current, bump and bumpAs once bumpTrivia has emitted any trivia.
func (p *parser) rawCurrent() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF}
}

func (p *parser) bumpTrivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].IsTrivia() {
		tk := p.toks[p.pos]
		p.b.token(tk.Kind, tk.Text)
		p.pos++
	}
}

// bump consumes trivia up to the next significant token, then that token.
func (p *parser) bump() {
	p.bumpTrivia()
	tk := p.rawCurrent()
	p.b.token(tk.Kind, tk.Text)
	if p.pos < len(p.toks) {
		p.pos++
	}
}

// bumpAs consumes the current token but records it in the tree under kind
// rather than its lexed kind — used for context-sensitive reclassification
// (`*` as STAR_INFINITY only when it appears as a multiplicity bound,
// where it means "unbounded" rather than "wildcard import").
func (p *parser) bumpAs(kind token.Kind) {
	p.bumpTrivia()
	tk := p.rawCurrent()
	p.b.token(kind, tk.Text)
	if p.pos < len(p.toks) {
		p.pos++
	}
}

func (p *parser) at(k token.Kind) bool { return p.current().Kind == k }

func (p *parser) atAny(kinds []token.Kind) bool {
	c := p.current().Kind
	for _, k := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

func (p *parser) atEOF() bool { return p.current().Kind == token.EOF }

func (p *parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

func (p *parser) expect(k token.Kind) bool {
	if p.eat(k) {
		return true
	}
	p.errorHere(CategoryStructural, "expected "+k.String()+", found "+p.current().Kind.String())
	return false
}

func (p *parser) errorHere(cat ErrorCategory, msg string) {
	tk := p.current()
	p.errors = append(p.errors, newError(cat, tk.Range, msg))
}

// errorRecover records an error, then wraps every token consumed (at
// least one, to guarantee forward progress) up to the next recovery-set
// token in an ErrorNode.
func (p *parser) errorRecover(cat ErrorCategory, msg string, recovery []token.Kind) {
	p.errorHere(cat, msg)
	cp := p.b.checkpointHere()
	p.b.startNodeAt(cp)
	consumed := false
	for !p.atEOF() && !p.atAny(recovery) {
		p.bump()
		consumed = true
	}
	if !consumed && !p.atEOF() {
		p.bump()
	}
	p.b.finishNode(ErrorNode)
}

// ---- grammar entry points ----

func (p *parser) parseSourceFile() {
	p.b.startNode()
	p.bumpTrivia()
	for !p.atEOF() {
		p.parseNamespaceMember()
	}
	p.b.finishNode(SourceFile)
}

// parseNamespaceMember parses one top-level or package-body member:
// visibility modifier, import, alias, filter, package/library package, or
// a definition/usage introduced by a declaration keyword. The dispatch
// itself looks past any leading visibility and declaration-prefix
// modifier keywords (peekMemberKind) so that e.g. `readonly attribute x`
// or `private abstract part def Car` route to the right parse function;
// each of those functions consumes its own leading visibility/modifiers
// as children of the node it builds, rather than the caller consuming
// them ahead of time and losing them to the enclosing node.
func (p *parser) parseNamespaceMember() {
	switch p.peekMemberKind() {
	case token.KW_IMPORT:
		p.parseImport()
	case token.KW_PACKAGE, token.KW_NAMESPACE:
		p.parsePackage(false)
	case token.KW_LIBRARY:
		p.parseLibraryPackage()
	case token.KW_ALIAS:
		p.parseAliasStatement()
	case token.KW_FILTER:
		p.parseFilterStatement()
	case token.KW_DOC, token.KW_COMMENT:
		p.parseCommentOrDoc()
	default:
		if kind, ok := defKeywordFor(p.peekMemberKind()); ok {
			p.parseDefinitionOrUsage(kind)
		} else {
			p.errorRecover(CategoryStructural, "expected a namespace member, found "+p.current().Kind.String(), recoveryNamespaceBody)
		}
	}
}

func (p *parser) eatVisibility() {
	for p.current().Kind == token.KW_PUBLIC || p.current().Kind == token.KW_PRIVATE || p.current().Kind == token.KW_PROTECTED {
		p.bump()
	}
}

// IsDeclPrefixModifier reports whether k is one of the modifier keywords
// that can precede a declaration's primary keyword (`abstract part def
// Car`, `readonly attribute x`, `derived attribute y`, `in item p`, ...).
// Exported so pkg/hir can recover declaration flags from the same
// vocabulary the parser uses to decide where a declaration header ends.
func IsDeclPrefixModifier(k token.Kind) bool {
	switch k {
	case token.KW_ABSTRACT, token.KW_VARIATION, token.KW_VARIANT, token.KW_DERIVED,
		token.KW_READONLY, token.KW_END, token.KW_REF, token.KW_IN, token.KW_OUT, token.KW_INOUT:
		return true
	default:
		return false
	}
}

// peekMemberKind looks past leading visibility and declaration-prefix
// modifier keywords to find the token kind that should drive
// parseNamespaceMember's dispatch, without consuming any input.
func (p *parser) peekMemberKind() token.Kind {
	i := p.pos
	skipTrivia := func() {
		for i < len(p.toks) && p.toks[i].IsTrivia() {
			i++
		}
	}
	skipTrivia()
	for i < len(p.toks) {
		k := p.toks[i].Kind
		if k == token.KW_PUBLIC || k == token.KW_PRIVATE || k == token.KW_PROTECTED || IsDeclPrefixModifier(k) {
			i++
			skipTrivia()
			continue
		}
		return k
	}
	return token.EOF
}

func (p *parser) parseCommentOrDoc() {
	p.b.startNode()
	p.bump() // doc / comment
	if p.current().Kind == token.IDENT || p.current().Kind == token.IDENT_UNRESTR {
		p.parseName()
	}
	if p.at(token.KW_ABOUT) {
		p.bump()
		p.parseQualifiedNameList()
	}
	// Body is a free-form string or locale string; tolerate either and
	// preserve it losslessly inside the comment node.
	for !p.atEOF() && !p.at(token.SEMICOLON) {
		p.bump()
	}
	p.eat(token.SEMICOLON)
	p.b.finishNode(CommentElement)
}

func (p *parser) parsePackage(isLibrary bool) {
	p.b.startNode()
	p.eatVisibility()
	p.bump() // package
	p.parsePackageRest(isLibrary)
}

// parseLibraryPackage handles `library package Name { ... }`, opening the
// node before the `library` keyword so visibility, `library`, and
// `package` all end up as children of the resulting LibraryPackage node.
func (p *parser) parseLibraryPackage() {
	p.b.startNode()
	p.eatVisibility()
	p.bump() // library
	p.expect(token.KW_PACKAGE)
	p.parsePackageRest(true)
}

// parseAliasStatement parses a top-level `alias Name for Target;`
// statement, distinct from the inline `import P::Q alias C;` form nested
// inside Import.
func (p *parser) parseAliasStatement() {
	p.b.startNode()
	p.eatVisibility()
	p.bump() // alias
	p.parseName()
	if p.at(token.KW_FOR) {
		p.bump()
		p.parseQualifiedName()
	} else {
		p.errorHere(CategoryStructural, "expected 'for' in alias statement")
	}
	if !p.expect(token.SEMICOLON) {
		p.errorRecover(CategoryStructural, "expected ';' to terminate alias", recoveryNamespaceBody)
		p.eat(token.SEMICOLON)
	}
	p.b.finishNode(AliasStatement)
}

// parseFilterStatement parses a top-level `filter @MetadataType;`
// statement, which composes (by AND) with every other filter statement
// in the same scope when computing what a wildcard import into that
// scope actually exposes.
func (p *parser) parseFilterStatement() {
	p.b.startNode()
	p.bump() // filter
	if p.at(token.AT) {
		p.parseMetadataAnnotation()
		p.eat(token.SEMICOLON)
	} else {
		p.errorRecover(CategoryStructural, "expected '@' metadata reference in filter", recoveryNamespaceBody)
	}
	p.b.finishNode(FilterStatement)
}

// parsePackageRest continues after the `package`/`library package` keyword
// has already been bumped by the caller (the library-package case needs a
// node opened before the "library" token, so that caller starts the node
// itself).
func (p *parser) parsePackageRest(isLibrary bool) {
	if p.current().Kind == token.IDENT || p.current().Kind == token.IDENT_UNRESTR {
		p.parseName()
	} else {
		p.errorHere(CategoryDeclaration, "expected a package name")
	}
	p.parseNamespaceBody()
	if isLibrary {
		p.b.finishNode(LibraryPackage)
	} else {
		p.b.finishNode(Package)
	}
}

func (p *parser) parseNamespaceBody() {
	if !p.expect(token.L_BRACE) {
		// No body at all (e.g. `package Foo;`): allow the empty-body form.
		if p.eat(token.SEMICOLON) {
			return
		}
	}
	p.b.startNode()
	for !p.atEOF() && !p.at(token.R_BRACE) {
		p.parseNamespaceMember()
	}
	p.expect(token.R_BRACE)
	p.b.finishNode(NamespaceBody)
}

// parseImport handles `import A::B::*;`, `import A::B::**;`,
// `import A::B::*::**;`, aliasing (`import A::B alias C;`), and filter
// clauses (`import A::* [ <filter-expr> ];`).
func (p *parser) parseImport() {
	p.b.startNode()
	p.eatVisibility()
	p.bump() // import
	if p.at(token.KW_ALL) {
		p.bump()
	}

	// Built from parseNamePart directly rather than parseQualifiedName:
	// the latter's own "::" loop would already have consumed the
	// separator before `*`/`**` and left the wildcard marker stranded,
	// since it always expects an identifier to follow.
	p.b.startNode()
	p.parseNamePart()
	for p.at(token.COLON_COLON) {
		p.bump()
		if p.at(token.STAR) {
			p.bump()
			if p.at(token.COLON_COLON) {
				p.bump()
				p.expect(token.STAR_STAR)
			}
			break
		}
		if p.at(token.STAR_STAR) {
			p.bump()
			break
		}
		p.parseNamePart()
	}
	p.b.finishNode(ImportTarget)

	if p.at(token.KW_ALIAS) {
		p.b.startNode()
		p.bump()
		p.parseName()
		p.b.finishNode(Alias)
	}

	if p.at(token.L_BRACKET) {
		p.b.startNode()
		p.bump()
		p.parseExpressionUntil(token.R_BRACKET)
		p.expect(token.R_BRACKET)
		p.b.finishNode(Filter)
	}

	if !p.expect(token.SEMICOLON) {
		p.errorRecover(CategoryImport, "expected ';' to terminate import", recoveryImport)
		p.eat(token.SEMICOLON)
	}
	p.b.finishNode(Import)
}

// parseDefinitionOrUsage parses both `<kw> def Name { ... }` definitions
// and `<kw> name : Type { ... }` / `<kw> name : Type;` usages, since both
// share the same relationship-clause grammar and only differ in whether
// `def` appears and whether a body or `;` terminates the declaration.
func (p *parser) parseDefinitionOrUsage(kind DefKeywordKind) {
	p.b.startNode()
	p.eatVisibility()
	// Prefix modifiers precede the primary keyword in the common case
	// (`abstract part def Car`, `readonly attribute x`, `derived
	// attribute y`, `in item p`), which is why parseNamespaceMember's
	// dispatch has to look past them to find kind in the first place.
	for IsDeclPrefixModifier(p.current().Kind) {
		p.bump()
	}
	p.bump() // leading keyword, e.g. `part`, `action`, `attribute`

	isDef := false
	if p.at(token.KW_DEF) {
		p.bump()
		isDef = true
	}
	// Modifiers are tolerated trailing the primary keyword too (e.g.
	// `part def abstract Foo`), alongside the more common prefix form.
	for IsDeclPrefixModifier(p.current().Kind) {
		p.bump()
		if p.at(token.KW_DEF) {
			p.bump()
			isDef = true
		}
	}

	if p.current().Kind == token.IDENT || p.current().Kind == token.IDENT_UNRESTR {
		p.parseName()
	}

	for p.parseRelationshipClauseIfPresent() {
	}

	if p.at(token.L_BRACKET) {
		p.parseMultiplicity()
	}

	for p.parseRelationshipClauseIfPresent() {
	}

	for p.at(token.AT) {
		p.parseMetadataAnnotation()
	}

	if p.at(token.L_BRACE) {
		p.parseNamespaceBody()
	} else if !p.expect(token.SEMICOLON) {
		p.errorRecover(CategoryDeclaration, "expected ';' or '{' to terminate declaration", recoveryDeclHeader)
		if p.at(token.L_BRACE) {
			p.parseNamespaceBody()
		} else {
			p.eat(token.SEMICOLON)
		}
	}

	if isDef {
		p.b.finishNode(Definition)
	} else {
		p.b.finishNode(Usage)
	}
}

// parseRelationshipClauseIfPresent parses one specializes/redefines/
// references/conjugates/crosses/performs/exhibits/includes/satisfies/
// asserts/verifies/disjoint clause and its target, returning true if one
// was found (so callers can loop for the `A :> B, C;` comma-list form and
// mixed clause ordering).
func (p *parser) parseRelationshipClauseIfPresent() bool {
	var kind NodeKind
	switch p.current().Kind {
	case token.COLON, token.KW_TYPED:
		kind = Typing
	case token.COLON_GT, token.KW_SPECIALIZES, token.KW_SUBSETS:
		kind = Specializes
	case token.COLON_GT_GT, token.KW_REDEFINES:
		kind = Redefines
	case token.COLON_COLON_GT, token.KW_REFERENCES:
		kind = References
	case token.TILDE, token.KW_CONJUGATES:
		kind = Conjugates
	case token.FAT_ARROW, token.KW_CROSSES:
		kind = Crosses
	case token.KW_PERFORM:
		kind = Performs
	case token.KW_EXHIBIT:
		kind = Exhibits
	case token.KW_INCLUDE:
		kind = Includes
	case token.KW_SATISFY:
		kind = Satisfies
	case token.KW_ASSERT:
		kind = Asserts
	case token.KW_VERIFY:
		kind = Verifies
	case token.KW_DISJOINT:
		kind = Disjoining
	default:
		return false
	}
	p.b.startNode()
	typedKeyword := p.current().Kind == token.KW_TYPED
	p.bump()
	if typedKeyword {
		p.eat(token.KW_BY)
	}
	if kind == Typing {
		p.parseFeatureChainTarget()
		for p.at(token.COMMA) {
			p.bump()
			p.parseFeatureChainTarget()
		}
	} else {
		p.parseQualifiedName()
		for p.at(token.COMMA) {
			p.bump()
			p.parseQualifiedName()
		}
	}
	p.b.finishNode(kind)
	return true
}

// parseFeatureChainTarget parses a typing target, which is either a plain
// qualified name (`T`, `P::T`) or a dotted feature chain (`a.b.c`). The
// qualified name is always parsed first; it is retroactively wrapped in a
// FeatureChain node only when a `.` actually follows, so the common
// unchained case produces the same tree shape as before.
func (p *parser) parseFeatureChainTarget() {
	cp := p.b.checkpointHere()
	p.parseQualifiedName()
	if !p.at(token.DOT) {
		return
	}
	p.b.startNodeAt(cp)
	for p.at(token.DOT) {
		p.bump()
		p.parseNamePart()
	}
	p.b.finishNode(FeatureChain)
}

// parseMultiplicity parses `[ lower..upper ]`, `[ n ]`, or `[*]`, followed
// by optional trailing `ordered`/`nonunique` modifiers.
func (p *parser) parseMultiplicity() {
	p.b.startNode()
	p.bump() // [
	if p.at(token.STAR) {
		p.bumpAs(token.STAR_INFINITY)
	} else {
		p.b.startNode()
		p.parseMultiplicityBound()
		if p.at(token.DOT_DOT) {
			p.bump()
			p.parseMultiplicityBound()
		}
		p.b.finishNode(MultiplicityRange)
	}
	if !p.expect(token.R_BRACKET) {
		p.errorRecover(CategoryStructural, "expected ']' to close multiplicity", recoveryMultiplicity)
		p.eat(token.R_BRACKET)
	}
	for p.current().Kind == token.KW_ORDERED || p.current().Kind == token.KW_NONUNIQUE {
		p.bump()
	}
	p.b.finishNode(Multiplicity)
}

// parseMultiplicityBound consumes one bound of a multiplicity range: the
// unbounded `*` literal (reclassified as STAR_INFINITY, since it means
// something different here than the wildcard-import `*`), or a balanced
// expression otherwise.
func (p *parser) parseMultiplicityBound() {
	if p.at(token.STAR) {
		p.bumpAs(token.STAR_INFINITY)
		return
	}
	p.parseExpressionUntil(token.DOT_DOT, token.R_BRACKET)
}

// parseMetadataAnnotation parses `@Type` or `@Type { ... }`.
func (p *parser) parseMetadataAnnotation() {
	p.b.startNode()
	p.bump() // @
	p.parseQualifiedName()
	if p.at(token.L_BRACE) {
		p.parseNamespaceBody()
	}
	p.b.finishNode(MetadataAnnotation)
}

// parseName wraps a single IDENT/IDENT_UNRESTR token in a Name node.
func (p *parser) parseName() {
	p.bumpTrivia()
	p.b.startNode()
	p.bump()
	p.b.finishNode(Name)
}

func (p *parser) parseNamePart() {
	if p.current().Kind == token.IDENT || p.current().Kind == token.IDENT_UNRESTR {
		p.parseName()
	} else {
		p.errorHere(CategoryImport, "expected an identifier in qualified name")
	}
}

// parseQualifiedName parses NAME (:: NAME)*.
func (p *parser) parseQualifiedName() {
	p.b.startNode()
	p.parseNamePart()
	for p.at(token.COLON_COLON) {
		p.bump()
		p.parseNamePart()
	}
	p.b.finishNode(QualifiedName)
}

func (p *parser) parseQualifiedNameList() {
	p.parseQualifiedName()
	for p.at(token.COMMA) {
		p.bump()
		p.parseQualifiedName()
	}
}

// parseExpressionUntil consumes a balanced-bracket expression up to (but
// not including) one of the stop kinds, preserving every token losslessly
// inside an Expression node. Expression evaluation itself is out of
// scope; only lossless containment matters here.
func (p *parser) parseExpressionUntil(stop ...token.Kind) {
	p.b.startNode()
	depth := 0
	for !p.atEOF() {
		c := p.current().Kind
		if depth == 0 {
			stopped := false
			for _, s := range stop {
				if c == s {
					stopped = true
					break
				}
			}
			if stopped {
				break
			}
		}
		switch c {
		case token.L_PAREN, token.L_BRACKET, token.L_BRACE:
			depth++
		case token.R_PAREN, token.R_BRACKET, token.R_BRACE:
			if depth == 0 {
				p.b.finishNode(Expression)
				return
			}
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				p.b.finishNode(Expression)
				return
			}
		}
		p.bump()
	}
	p.b.finishNode(Expression)
}

// defKeywordFor maps a leading declaration keyword token to its
// DefKeywordKind, used by both the extractor (to pick a SymbolKind and
// implicit supertype) and the parser (to decide whether a token starts a
// definition/usage).
func defKeywordFor(k token.Kind) (DefKeywordKind, bool) {
	switch k {
	case token.KW_PART:
		return DefPart, true
	case token.KW_ATTRIBUTE:
		return DefAttribute, true
	case token.KW_ITEM:
		return DefItem, true
	case token.KW_OCCURRENCE:
		return DefOccurrence, true
	case token.KW_PORT:
		return DefPort, true
	case token.KW_CONNECTION:
		return DefConnection, true
	case token.KW_INTERFACE:
		return DefInterface, true
	case token.KW_FLOW:
		return DefFlow, true
	case token.KW_ALLOCATION:
		return DefAllocation, true
	case token.KW_ACTION:
		return DefAction, true
	case token.KW_STATE:
		return DefState, true
	case token.KW_CALC:
		return DefCalc, true
	case token.KW_CONSTRAINT:
		return DefConstraint, true
	case token.KW_REQUIREMENT:
		return DefRequirement, true
	case token.KW_CONCERN:
		return DefConcern, true
	case token.KW_CASE:
		return DefCase, true
	case token.KW_ANALYSIS:
		return DefAnalysisCase, true
	case token.KW_VERIFICATION:
		return DefVerificationCase, true
	case token.KW_USE:
		return DefUseCase, true
	case token.KW_VIEW:
		return DefView, true
	case token.KW_VIEWPOINT:
		return DefViewpoint, true
	case token.KW_RENDERING:
		return DefRendering, true
	case token.KW_METADATA:
		return DefMetadata, true
	case token.KW_ENUM:
		return DefEnumeration, true
	case token.KW_CLASS:
		return DefClass, true
	case token.KW_STRUCT:
		return DefStruct, true
	case token.KW_DATATYPE:
		return DefDataType, true
	case token.KW_ASSOC:
		return DefAssoc, true
	case token.KW_BEHAVIOR:
		return DefBehavior, true
	case token.KW_FUNCTION:
		return DefFunction, true
	case token.KW_PREDICATE:
		return DefPredicate, true
	case token.KW_INTERACTION:
		return DefInteraction, true
	case token.KW_CLASSIFIER:
		return DefClassifier, true
	case token.KW_FEATURE:
		return DefFeature, true
	case token.KW_STEP:
		return DefStep, true
	case token.KW_CONNECTOR:
		return DefConnector, true
	case token.KW_REF:
		return DefRef, true
	case token.KW_PERFORM, token.KW_EXHIBIT, token.KW_INCLUDE, token.KW_SATISFY,
		token.KW_ASSERT, token.KW_VERIFY, token.KW_DISJOINT:
		// These also introduce a body-level usage member on their own
		// (PerformActionUsage, SatisfyRequirementUsage, ...), distinct
		// from their use as a relationship clause inside a declaration.
		return DefRef, true
	default:
		return DefUnknown, false
	}
}
