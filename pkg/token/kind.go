// Package token defines the closed set of lexical token kinds shared by
// the KerML and SysML v2 dialects, and the Token type the lexer produces.
package token

import "fmt"

// Dialect distinguishes which keyword set is active for a file. KerML is
// the kernel language; SysML v2 layers additional reserved words
// (part, action, state, ...) on top of it. The same token kind space is
// used for both — Dialect only changes which spellings the lexer treats
// as keywords rather than plain identifiers.
type Dialect uint8

const (
	DialectSysML Dialect = iota
	DialectKerML
)

// Kind is a closed enumeration of lexical token kinds.
type Kind uint16

const (
	// Special.
	EOF Kind = iota
	ERROR

	// Trivia — preserved verbatim in the CST, never semantically meaningful.
	WHITESPACE
	LINE_COMMENT
	BLOCK_COMMENT

	// Literals.
	IDENT          // regular identifier
	IDENT_UNRESTR  // 'unrestricted identifier', quotes retained in text
	INTEGER        // 42
	DECIMAL        // 3.14, .14, 3.14e10
	STRING         // "hello"
	KW_TRUE        // boolean literal
	KW_FALSE       // boolean literal
	KW_NULL        // null literal
	STAR_INFINITY  // '*' used as the unbounded multiplicity literal

	// Punctuation / operators.
	L_BRACE    // {
	R_BRACE    // }
	L_BRACKET  // [
	R_BRACKET  // ]
	L_PAREN    // (
	R_PAREN    // )
	SEMICOLON  // ;
	COLON      // :            (typing)
	COLON_COLON   // ::        (qualified-name separator)
	COLON_GT      // :>        (specializes / subsets)
	COLON_GT_GT   // :>>       (redefines)
	COLON_COLON_GT // ::>      (references)
	DOT        // .            (feature chain separator)
	DOT_DOT    // ..
	COMMA      // ,
	EQ         // =
	ARROW      // ->
	FAT_ARROW  // =>           (crosses)
	TILDE      // ~            (conjugates)
	AT         // @            (metadata annotation)
	AT_AT      // @@
	STAR       // *            (wildcard import segment / unbounded)
	STAR_STAR  // **           (transitive wildcard import)
	PLUS       // +
	MINUS      // -
	SLASH      // /
	PERCENT    // %
	QUESTION   // ?
	BANG       // !
	PIPE       // |
	AMP        // &
	DOLLAR     // $            ($:: workspace-root prefix)
	LT
	GT
	LT_EQ
	GT_EQ
	EQ_EQ
	BANG_EQ

	// Namespace / visibility keywords.
	KW_PACKAGE
	KW_LIBRARY
	KW_STANDARD
	KW_IMPORT
	KW_ALIAS
	KW_FOR
	KW_ALL
	KW_FILTER
	KW_PRIVATE
	KW_PROTECTED
	KW_PUBLIC

	// Definition / usage keywords.
	KW_DEF
	KW_ABSTRACT
	KW_VARIATION
	KW_VARIANT
	KW_PART
	KW_ATTRIBUTE
	KW_ENUM
	KW_ENUMERATION
	KW_ITEM
	KW_OCCURRENCE
	KW_PORT
	KW_CONNECTION
	KW_INTERFACE
	KW_FLOW
	KW_ALLOCATION
	KW_ALLOCATE
	KW_ACTION
	KW_STATE
	KW_TRANSITION
	KW_ENTRY
	KW_EXIT
	KW_DO
	KW_ACCEPT
	KW_SEND
	KW_PERFORM
	KW_EXHIBIT
	KW_CALC
	KW_CONSTRAINT
	KW_ASSERT
	KW_REQUIREMENT
	KW_SUBJECT
	KW_CONCERN
	KW_SATISFY
	KW_VERIFY
	KW_CASE
	KW_ANALYSIS
	KW_VERIFICATION
	KW_USE
	KW_INCLUDE
	KW_VIEW
	KW_VIEWPOINT
	KW_RENDERING
	KW_EXPOSE
	KW_METACLASS
	KW_METADATA
	KW_ABOUT
	KW_COMMENT
	KW_DOC
	KW_LANGUAGE
	KW_LOCALE
	KW_REF
	KW_READONLY
	KW_DERIVED
	KW_END
	KW_ORDERED
	KW_NONUNIQUE
	KW_DEFAULT
	KW_IN
	KW_OUT
	KW_INOUT
	KW_SUCCESSION
	KW_FIRST
	KW_THEN
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_LOOP
	KW_UNTIL
	KW_CONNECT
	KW_BIND
	KW_NEW
	KW_THIS

	// Relationship keywords.
	KW_SPECIALIZES
	KW_SUBSETS
	KW_REDEFINES
	KW_REFERENCES
	KW_CONJUGATES
	KW_CROSSES
	KW_TYPED
	KW_BY
	KW_DISJOINT
	KW_FROM
	KW_CHAINS
	KW_INVERSE
	KW_OF

	// KerML kernel keywords (available in both dialects, reserved always).
	KW_TYPE
	KW_CLASSIFIER
	KW_CLASS
	KW_STRUCT
	KW_DATATYPE
	KW_ASSOC
	KW_BEHAVIOR
	KW_FUNCTION
	KW_PREDICATE
	KW_INTERACTION
	KW_FEATURE
	KW_STEP
	KW_EXPR
	KW_CONNECTOR
	KW_DISJOINING
	KW_SPECIALIZATION
	KW_SUBTYPE
	KW_FEATURING
	KW_NAMESPACE

	kindCount
)

var names = [kindCount]string{
	EOF: "EOF", ERROR: "ERROR",
	WHITESPACE: "WHITESPACE", LINE_COMMENT: "LINE_COMMENT", BLOCK_COMMENT: "BLOCK_COMMENT",
	IDENT: "IDENT", IDENT_UNRESTR: "IDENT_UNRESTR", INTEGER: "INTEGER", DECIMAL: "DECIMAL",
	STRING: "STRING", KW_TRUE: "true", KW_FALSE: "false", KW_NULL: "null", STAR_INFINITY: "*",
	L_BRACE: "{", R_BRACE: "}", L_BRACKET: "[", R_BRACKET: "]", L_PAREN: "(", R_PAREN: ")",
	SEMICOLON: ";", COLON: ":", COLON_COLON: "::", COLON_GT: ":>", COLON_GT_GT: ":>>",
	COLON_COLON_GT: "::>", DOT: ".", DOT_DOT: "..", COMMA: ",", EQ: "=", ARROW: "->",
	FAT_ARROW: "=>", TILDE: "~", AT: "@", AT_AT: "@@", STAR: "*", STAR_STAR: "**",
	PLUS: "+", MINUS: "-", SLASH: "/", PERCENT: "%", QUESTION: "?", BANG: "!", PIPE: "|",
	AMP: "&", DOLLAR: "$", LT: "<", GT: ">", LT_EQ: "<=", GT_EQ: ">=", EQ_EQ: "==", BANG_EQ: "!=",

	KW_PACKAGE: "package", KW_LIBRARY: "library", KW_STANDARD: "standard", KW_IMPORT: "import",
	KW_ALIAS: "alias", KW_FOR: "for", KW_ALL: "all", KW_FILTER: "filter", KW_PRIVATE: "private",
	KW_PROTECTED: "protected", KW_PUBLIC: "public",

	KW_DEF: "def", KW_ABSTRACT: "abstract", KW_VARIATION: "variation", KW_VARIANT: "variant",
	KW_PART: "part", KW_ATTRIBUTE: "attribute", KW_ENUM: "enum", KW_ENUMERATION: "enumeration",
	KW_ITEM: "item", KW_OCCURRENCE: "occurrence", KW_PORT: "port", KW_CONNECTION: "connection",
	KW_INTERFACE: "interface", KW_FLOW: "flow", KW_ALLOCATION: "allocation", KW_ALLOCATE: "allocate",
	KW_ACTION: "action", KW_STATE: "state", KW_TRANSITION: "transition", KW_ENTRY: "entry",
	KW_EXIT: "exit", KW_DO: "do", KW_ACCEPT: "accept", KW_SEND: "send", KW_PERFORM: "perform",
	KW_EXHIBIT: "exhibit", KW_CALC: "calc", KW_CONSTRAINT: "constraint", KW_ASSERT: "assert",
	KW_REQUIREMENT: "requirement", KW_SUBJECT: "subject", KW_CONCERN: "concern",
	KW_SATISFY: "satisfy", KW_VERIFY: "verify", KW_CASE: "case", KW_ANALYSIS: "analysis",
	KW_VERIFICATION: "verification", KW_USE: "use", KW_INCLUDE: "include", KW_VIEW: "view",
	KW_VIEWPOINT: "viewpoint", KW_RENDERING: "rendering", KW_EXPOSE: "expose",
	KW_METACLASS: "metaclass", KW_METADATA: "metadata", KW_ABOUT: "about", KW_COMMENT: "comment",
	KW_DOC: "doc", KW_LANGUAGE: "language", KW_LOCALE: "locale", KW_REF: "ref",
	KW_READONLY: "readonly", KW_DERIVED: "derived", KW_END: "end", KW_ORDERED: "ordered",
	KW_NONUNIQUE: "nonunique", KW_DEFAULT: "default", KW_IN: "in", KW_OUT: "out",
	KW_INOUT: "inout", KW_SUCCESSION: "succession", KW_FIRST: "first", KW_THEN: "then",
	KW_IF: "if", KW_ELSE: "else", KW_WHILE: "while", KW_LOOP: "loop", KW_UNTIL: "until",
	KW_CONNECT: "connect", KW_BIND: "bind", KW_NEW: "new", KW_THIS: "this",

	KW_SPECIALIZES: "specializes", KW_SUBSETS: "subsets", KW_REDEFINES: "redefines",
	KW_REFERENCES: "references", KW_CONJUGATES: "conjugates", KW_CROSSES: "crosses",
	KW_TYPED: "typed", KW_BY: "by", KW_DISJOINT: "disjoint", KW_FROM: "from",
	KW_CHAINS: "chains", KW_INVERSE: "inverse", KW_OF: "of",

	KW_TYPE: "type", KW_CLASSIFIER: "classifier", KW_CLASS: "class", KW_STRUCT: "struct",
	KW_DATATYPE: "datatype", KW_ASSOC: "assoc", KW_BEHAVIOR: "behavior", KW_FUNCTION: "function",
	KW_PREDICATE: "predicate", KW_INTERACTION: "interaction", KW_FEATURE: "feature",
	KW_STEP: "step", KW_EXPR: "expr", KW_CONNECTOR: "connector", KW_DISJOINING: "disjoining",
	KW_SPECIALIZATION: "specialization", KW_SUBTYPE: "subtype", KW_FEATURING: "featuring",
	KW_NAMESPACE: "namespace",
}

// String renders the kind's canonical spelling (for punctuation/keywords)
// or its symbolic name (for classes like IDENT).
func (k Kind) String() string {
	if int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	return k == WHITESPACE || k == LINE_COMMENT || k == BLOCK_COMMENT
}

// IsKeyword reports whether k is one of the reserved words (either dialect).
func (k Kind) IsKeyword() bool {
	return k >= KW_PACKAGE && k < kindCount
}

// keywordsCommon and keywordsSysMLOnly map a keyword's spelling to its Kind.
// KerML-only files do not reserve the SysML-specific words (part, action,
// state, requirement, ...); those remain plain identifiers in that dialect.
var keywordsCommon = map[string]Kind{
	"package": KW_PACKAGE, "library": KW_LIBRARY, "standard": KW_STANDARD,
	"import": KW_IMPORT, "alias": KW_ALIAS, "for": KW_FOR, "all": KW_ALL,
	"filter": KW_FILTER, "private": KW_PRIVATE, "protected": KW_PROTECTED, "public": KW_PUBLIC,
	"specializes": KW_SPECIALIZES, "subsets": KW_SUBSETS, "redefines": KW_REDEFINES,
	"references": KW_REFERENCES, "conjugates": KW_CONJUGATES, "crosses": KW_CROSSES,
	"typed": KW_TYPED, "by": KW_BY, "disjoint": KW_DISJOINT, "from": KW_FROM,
	"chains": KW_CHAINS, "inverse": KW_INVERSE, "of": KW_OF,
	"true": KW_TRUE, "false": KW_FALSE, "null": KW_NULL,
	"type": KW_TYPE, "classifier": KW_CLASSIFIER, "class": KW_CLASS, "struct": KW_STRUCT,
	"datatype": KW_DATATYPE, "assoc": KW_ASSOC, "behavior": KW_BEHAVIOR, "function": KW_FUNCTION,
	"predicate": KW_PREDICATE, "interaction": KW_INTERACTION, "feature": KW_FEATURE,
	"step": KW_STEP, "expr": KW_EXPR, "connector": KW_CONNECTOR, "disjoining": KW_DISJOINING,
	"specialization": KW_SPECIALIZATION, "subtype": KW_SUBTYPE, "featuring": KW_FEATURING,
	"namespace": KW_NAMESPACE, "def": KW_DEF, "abstract": KW_ABSTRACT,
	"doc": KW_DOC, "comment": KW_COMMENT, "language": KW_LANGUAGE, "locale": KW_LOCALE,
	"metaclass": KW_METACLASS, "metadata": KW_METADATA, "about": KW_ABOUT,
	"ref": KW_REF, "readonly": KW_READONLY, "derived": KW_DERIVED, "end": KW_END,
	"in": KW_IN, "out": KW_OUT, "inout": KW_INOUT,
}

var keywordsSysMLOnly = map[string]Kind{
	"part": KW_PART, "attribute": KW_ATTRIBUTE, "enum": KW_ENUM, "enumeration": KW_ENUMERATION,
	"item": KW_ITEM, "occurrence": KW_OCCURRENCE, "port": KW_PORT, "connection": KW_CONNECTION,
	"interface": KW_INTERFACE, "flow": KW_FLOW, "allocation": KW_ALLOCATION, "allocate": KW_ALLOCATE,
	"action": KW_ACTION, "state": KW_STATE, "transition": KW_TRANSITION, "entry": KW_ENTRY,
	"exit": KW_EXIT, "do": KW_DO, "accept": KW_ACCEPT, "send": KW_SEND, "perform": KW_PERFORM,
	"exhibit": KW_EXHIBIT, "calc": KW_CALC, "constraint": KW_CONSTRAINT, "assert": KW_ASSERT,
	"requirement": KW_REQUIREMENT, "subject": KW_SUBJECT, "concern": KW_CONCERN,
	"satisfy": KW_SATISFY, "verify": KW_VERIFY, "case": KW_CASE, "analysis": KW_ANALYSIS,
	"verification": KW_VERIFICATION, "use": KW_USE, "include": KW_INCLUDE, "view": KW_VIEW,
	"viewpoint": KW_VIEWPOINT, "rendering": KW_RENDERING, "expose": KW_EXPOSE,
	"variation": KW_VARIATION, "variant": KW_VARIANT, "ordered": KW_ORDERED,
	"nonunique": KW_NONUNIQUE, "default": KW_DEFAULT, "succession": KW_SUCCESSION,
	"first": KW_FIRST, "then": KW_THEN, "if": KW_IF, "else": KW_ELSE, "while": KW_WHILE,
	"loop": KW_LOOP, "until": KW_UNTIL, "connect": KW_CONNECT, "bind": KW_BIND,
	"new": KW_NEW, "this": KW_THIS,
}

// LookupKeyword returns the Kind for word under dialect d, and whether it
// is reserved at all (false means "treat as a regular identifier").
func LookupKeyword(word string, d Dialect) (Kind, bool) {
	if k, ok := keywordsCommon[word]; ok {
		return k, true
	}
	if d == DialectSysML {
		if k, ok := keywordsSysMLOnly[word]; ok {
			return k, true
		}
	}
	return 0, false
}
