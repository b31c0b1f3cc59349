// Package hir extracts a flat table of symbols and their relationships
// from a parsed syntax tree — the semantic layer above the lossless CST.
// Extraction never re-lexes or re-parses; it walks the red tree produced
// by pkg/syntax and reads DefKeywordKind off each Definition/Usage's
// leading keyword token.
package hir

import "sysmlkit/pkg/ids"

// SymbolKind identifies the domain concept a HirSymbol names. Definitions
// and usages of the same concept (e.g. `part def Car` and `part engine`)
// share a SymbolKind; HirSymbol.IsDefinition distinguishes them.
type SymbolKind uint8

const (
	SymbolUnknown SymbolKind = iota
	SymbolPackage
	SymbolLibraryPackage
	SymbolPart
	SymbolAttribute
	SymbolItem
	SymbolOccurrence
	SymbolPort
	SymbolConnection
	SymbolInterface
	SymbolFlow
	SymbolAllocation
	SymbolAction
	SymbolState
	SymbolCalc
	SymbolConstraint
	SymbolRequirement
	SymbolCase
	SymbolAnalysisCase
	SymbolVerificationCase
	SymbolUseCase
	SymbolView
	SymbolViewpoint
	SymbolRendering
	SymbolMetadata
	SymbolEnumeration
	SymbolClass
	SymbolStruct
	SymbolDataType
	SymbolAssoc
	SymbolBehavior
	SymbolFunction
	SymbolPredicate
	SymbolInteraction
	SymbolClassifier
	SymbolFeature
	SymbolStep
	SymbolConnector
	SymbolRef
	SymbolConcern
)

var symbolKindNames = map[SymbolKind]string{
	SymbolUnknown: "unknown", SymbolPackage: "package", SymbolLibraryPackage: "library package",
	SymbolPart: "part", SymbolAttribute: "attribute", SymbolItem: "item",
	SymbolOccurrence: "occurrence", SymbolPort: "port", SymbolConnection: "connection",
	SymbolInterface: "interface", SymbolFlow: "flow", SymbolAllocation: "allocation",
	SymbolAction: "action", SymbolState: "state", SymbolCalc: "calc",
	SymbolConstraint: "constraint", SymbolRequirement: "requirement", SymbolCase: "case",
	SymbolAnalysisCase: "analysis case", SymbolVerificationCase: "verification case",
	SymbolUseCase: "use case", SymbolView: "view", SymbolViewpoint: "viewpoint",
	SymbolRendering: "rendering", SymbolMetadata: "metadata", SymbolEnumeration: "enum",
	SymbolClass: "class", SymbolStruct: "struct", SymbolDataType: "datatype",
	SymbolAssoc: "assoc", SymbolBehavior: "behavior", SymbolFunction: "function",
	SymbolPredicate: "predicate", SymbolInteraction: "interaction", SymbolClassifier: "classifier",
	SymbolFeature: "feature", SymbolStep: "step", SymbolConnector: "connector", SymbolRef: "ref",
	SymbolConcern: "concern",
}

func (k SymbolKind) String() string {
	if s, ok := symbolKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// RelationshipKind identifies the grammatical relation a Relationship
// captures, mirroring the CST's relationship node kinds one-for-one.
type RelationshipKind uint8

const (
	RelSpecializes RelationshipKind = iota
	RelRedefines
	RelReferences
	RelConjugates
	RelCrosses
	RelPerforms
	RelExhibits
	RelIncludes
	RelSatisfies
	RelAsserts
	RelVerifies
	RelDisjoins
	// RelAliasOf is the edge a standalone `alias A for B;` statement's own
	// HirSymbol carries to its target — the alias is indexed as a symbol
	// in its own right (so resolving its own name finds it), and this
	// relationship is how goto-definition walks one hop further to B.
	RelAliasOf
	// RelTyping exists so the relationship-kind vocabulary stays complete,
	// but a symbol's own `X : T` / `X typed by T` clause is captured as a
	// TypeRef (HirSymbol.TypeRefs), not as a Relationship — type refs carry
	// per-segment feature-chain ranges a bare TargetName can't express.
	RelTyping
)

var relationshipKindNames = map[RelationshipKind]string{
	RelSpecializes: "specializes", RelRedefines: "redefines", RelReferences: "references",
	RelConjugates: "conjugates", RelCrosses: "crosses", RelPerforms: "performs",
	RelExhibits: "exhibits", RelIncludes: "includes", RelSatisfies: "satisfies",
	RelAsserts: "asserts", RelVerifies: "verifies", RelDisjoins: "disjoins",
	RelAliasOf: "alias of", RelTyping: "typed by",
}

func (k RelationshipKind) String() string {
	if s, ok := relationshipKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Relationship is one specialization/redefinition/typing/... edge from a
// symbol to a (not-yet-resolved) target name. Resolution against the
// workspace symbol index happens in pkg/index, not here.
type Relationship struct {
	Kind       RelationshipKind
	TargetName string // unresolved qualified-name text, e.g. "Vehicles::Engine"
	Range      ids.TextRange
	// Implicit marks a relationship the extractor synthesized rather than
	// one the author wrote — currently only the kernel-metaclass
	// specialization every definition/usage gets when it declares no
	// explicit specialization of its own. Implicit redefinition (an
	// inherited feature re-declared under the same name without an
	// explicit `redefines`) is not detected, neither here nor in
	// pkg/index.
	Implicit bool
}

// ChainSegment is one `.`-separated step of a dotted feature chain typing
// target (`a.b.c`), carrying its own byte range so hover/goto can resolve
// each segment independently rather than only the chain as a whole.
type ChainSegment struct {
	Name  string
	Range ids.TextRange
}

// TypeRef is a symbol's `X : T` / `X typed by T` typing target. Target is
// the qualified path text when Chain is empty, or the last chain
// segment's simple name when it's a dotted feature chain — Chain is
// empty for a plain qualified-name target.
type TypeRef struct {
	Target string
	Range  ids.TextRange
	Chain  []ChainSegment
}

// Bound is one endpoint of a multiplicity range: either a literal integer
// or the unbounded `*` (Star true, Value unused).
type Bound struct {
	Value int64
	Star  bool
}

// Multiplicity is a `[ ... ]` bound on a feature or definition, plus the
// trailing `ordered`/`nonunique` modifiers SysML allows after it.
type Multiplicity struct {
	Lower      Bound
	Upper      Bound
	HasRange   bool // false for the bare `[*]` / `[n]` single-bound form
	IsOrdered  bool
	IsNonunique bool
}

// ImportKind distinguishes a single-target import from the two forms of
// wildcard import SysML allows.
type ImportKind uint8

const (
	// ImportSingle names exactly one target: `import P::Name;`.
	ImportSingle ImportKind = iota
	// ImportWildcard brings in every direct child of the target scope:
	// `import P::*;`.
	ImportWildcard
	// ImportTransitive brings in every transitively reachable child:
	// `import P::**;`.
	ImportTransitive
)

// Import is one `import` statement, flattened out of the CST for
// pkg/index's visibility-map construction. Scope is the FQN of the
// namespace the import statement appears in, not the imported target.
type Import struct {
	Scope      string
	Target     string
	Kind       ImportKind
	IsPublic   bool
	Alias      string
	FilterExpr string // metadata name from a bracket `[ @M ]` clause ("::"-joined if qualified), "" if none
	Range      ids.TextRange
}

// ScopeFilter is one standalone `filter @M;` statement. Multiple filters
// in the same scope compose by AND.
type ScopeFilter struct {
	Scope  string
	Target string
}

// HirSymbol is one extracted declaration: a definition or a usage, plus
// its relationships and metadata. Symbols form a tree via ParentFQN, but
// are stored as a flat slice per file so pkg/index can merge many files'
// symbols into workspace-wide maps without a tree-merge step.
type HirSymbol struct {
	Name               string // simple name, display form (quotes/escapes resolved)
	FullyQualifiedName string // "::"-joined from the file's package root
	ParentFQN          string // "" for a top-level (file-root) symbol
	Kind               SymbolKind
	IsDefinition       bool
	IsAnonymous        bool // true if Name was synthesized, not authored
	File               ids.FileId
	Range              ids.TextRange // the whole Definition/Usage/Package node
	NameRange          ids.TextRange // just the Name token, for goto-definition
	Visibility         Visibility
	IsAbstract         bool
	IsVariation        bool
	IsDerived          bool
	IsReadonly         bool
	Multiplicity       *Multiplicity // nil if no `[ ... ]` bound was declared
	TypeRefs           []TypeRef
	Relationships      []Relationship
	Metadata           []string // applied metadata annotation names as written, "::"-joined if qualified
}

// Visibility is a symbol's own declared visibility (not the effective,
// import-resolved visibility a consumer sees — that is computed in
// pkg/index against the resolver's visibility rules).
type Visibility uint8

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
	VisibilityProtected
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityProtected:
		return "protected"
	default:
		return "public"
	}
}
