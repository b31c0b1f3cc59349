package hir

import "sysmlkit/pkg/syntax"

// implicitSupertypes maps each DefKeywordKind to the fully qualified name
// of the kernel-library metaclass it implicitly specializes when no
// explicit specialization is given — every def/usage in SysML implicitly
// specializes its kernel metaclass even if the author never writes `:>`.
var implicitSupertypes = map[syntax.DefKeywordKind]string{
	syntax.DefPart:              "Parts::Part",
	syntax.DefItem:              "Items::Item",
	syntax.DefAction:            "Actions::Action",
	syntax.DefState:             "States::StateAction",
	syntax.DefConstraint:        "Constraints::ConstraintCheck",
	syntax.DefRequirement:       "Requirements::RequirementCheck",
	syntax.DefCalc:              "Calculations::Calculation",
	syntax.DefPort:              "Ports::Port",
	// BinaryConnection rather than the bare Connection metaclass: most
	// connections are binary and need the source/target features that
	// BinaryConnection inherits from BinaryLinkObject.
	syntax.DefConnection:        "Connections::BinaryConnection",
	syntax.DefInterface:        "Interfaces::Interface",
	syntax.DefFlow:             "Flows::Flow",
	syntax.DefAllocation:       "Allocations::Allocation",
	syntax.DefUseCase:          "UseCases::UseCase",
	syntax.DefAnalysisCase:     "AnalysisCases::AnalysisCase",
	syntax.DefVerificationCase: "VerificationCases::VerificationCase",
	syntax.DefAttribute:        "Attributes::AttributeValue",
	syntax.DefCase:             "Cases::Case",
	syntax.DefView:             "Views::View",
	syntax.DefViewpoint:        "Views::Viewpoint",
	syntax.DefRendering:        "Renderings::Rendering",
	syntax.DefMetadata:         "Metaobjects::Metaobject",
	syntax.DefEnumeration:      "ScalarValues::Enumeration",
	syntax.DefOccurrence:       "Occurrences::Occurrence",
	syntax.DefConcern:          "Requirements::ConcernCheck",
}

// implicitSupertypeFor returns the kernel-library fully qualified name this
// DefKeywordKind implicitly specializes, and whether one applies at all —
// kernel-only kinds (DefClass, DefStruct, DefDataType, DefAssoc,
// DefBehavior, DefFunction, DefPredicate, DefInteraction, DefClassifier,
// DefFeature, DefStep, DefConnector, DefRef) have no kernel-library
// counterpart to specialize and return false.
func implicitSupertypeFor(kind syntax.DefKeywordKind) (string, bool) {
	s, ok := implicitSupertypes[kind]
	return s, ok
}
