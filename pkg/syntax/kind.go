package syntax

import "fmt"

// NodeKind is a closed enumeration of CST non-terminals, plus the ERROR
// sentinel the parser's recovery emits for malformed input.
type NodeKind uint16

const (
	// Root.
	SourceFile NodeKind = iota

	// Namespace elements.
	Package
	LibraryPackage
	NamespaceBody

	// Names.
	Name           // wraps a single IDENT or IDENT_UNRESTR token
	QualifiedName  // NAME (:: NAME)*, with an optional leading '$' for $::
	FeatureChain   // NAME (. NAME)*

	// Import / alias / filter.
	Import
	ImportTarget // the qualified-name-or-chain plus optional ::* / ::**
	Alias
	Filter
	AliasStatement  // top-level `alias A for B;`
	FilterStatement // top-level `filter @M;`

	// Definitions and usages.
	Definition
	Usage

	// Relationship clauses, appearing inside a Definition/Usage.
	Typing        // : T  (also "typed by")
	Specializes   // :> T / specializes T / subsets T
	Redefines     // :>> T / redefines T
	References    // ::> T / references T
	Conjugates    // ~ T / conjugates T
	Crosses       // => T / crosses T
	Performs      // perform T
	Exhibits      // exhibit T
	Includes      // include T
	Satisfies     // satisfy T
	Asserts       // assert T
	Verifies      // verify T
	Disjoining    // disjoint T

	// Multiplicity.
	Multiplicity
	MultiplicityRange // lower..upper

	// Metadata / annotations.
	MetadataAnnotation // @Type
	CommentElement     // comment ... /* doc */

	// Expressions (kept intentionally shallow — spec.md scopes out type
	// inference and full expression evaluation; the parser still needs to
	// consume and preserve them losslessly).
	Expression
	ArgumentList

	// Error recovery sentinel.
	ErrorNode

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	SourceFile: "SourceFile", Package: "Package", LibraryPackage: "LibraryPackage",
	NamespaceBody: "NamespaceBody", Name: "Name", QualifiedName: "QualifiedName",
	FeatureChain: "FeatureChain", Import: "Import", ImportTarget: "ImportTarget",
	Alias: "Alias", Filter: "Filter", AliasStatement: "AliasStatement",
	FilterStatement: "FilterStatement", Definition: "Definition", Usage: "Usage",
	Typing: "Typing", Specializes: "Specializes", Redefines: "Redefines",
	References: "References", Conjugates: "Conjugates", Crosses: "Crosses",
	Performs: "Performs", Exhibits: "Exhibits", Includes: "Includes",
	Satisfies: "Satisfies", Asserts: "Asserts", Verifies: "Verifies",
	Disjoining: "Disjoining", Multiplicity: "Multiplicity",
	MultiplicityRange: "MultiplicityRange", MetadataAnnotation: "MetadataAnnotation",
	CommentElement: "CommentElement", Expression: "Expression", ArgumentList: "ArgumentList",
	ErrorNode: "ErrorNode",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint16(k))
}

// DefKeywordKind identifies which declaration keyword introduced a
// Definition or Usage node — the symbol extractor uses this (rather than
// re-lexing) to pick a SymbolKind and an implicit supertype.
type DefKeywordKind uint16

const (
	DefUnknown DefKeywordKind = iota
	DefPackage
	DefLibraryPackage
	DefPart
	DefAttribute
	DefItem
	DefOccurrence
	DefPort
	DefConnection
	DefInterface
	DefFlow
	DefAllocation
	DefAction
	DefState
	DefCalc
	DefConstraint
	DefRequirement
	DefConcern
	DefCase
	DefAnalysisCase
	DefVerificationCase
	DefUseCase
	DefView
	DefViewpoint
	DefRendering
	DefMetadata
	DefEnumeration
	DefClass
	DefStruct
	DefDataType
	DefAssoc
	DefBehavior
	DefFunction
	DefPredicate
	DefInteraction
	DefClassifier
	DefFeature
	DefStep
	DefConnector
	DefRef // a plain feature/ref usage without a more specific keyword
)
