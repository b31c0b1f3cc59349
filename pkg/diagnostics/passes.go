package diagnostics

import (
	"fmt"

	"sysmlkit/pkg/hir"
	"sysmlkit/pkg/index"
)

// checkReference resolves one Relationship's TargetName from owner's
// scope and reports E0001/E0002, or E0006 when a target that must be a
// definition is a usage. Every relationship kind is checked: Performs/
// Exhibits/Includes/Satisfies/Asserts/Verifies/Disjoining reference
// behavioral usages rather than types but must resolve all the same.
func checkReference(idx *index.SymbolIndex, owner hir.HirSymbol, rel hir.Relationship) *Diagnostic {
	result := idx.Resolve(owner.FullyQualifiedName, rel.TargetName)
	switch result.Kind {
	case index.ResolveExact, index.ResolveInherited:
		if needsDefinitionTarget(rel.Kind) && !result.Symbol.IsDefinition {
			d := newDiagnostic(CodeInvalidSpecialize, owner.File, rel.Range,
				fmt.Sprintf("%s specializes %q, which is a usage, not a definition", owner.Name, rel.TargetName))
			return &d
		}
		return nil
	case index.ResolveAmbiguous:
		d := newDiagnostic(CodeAmbiguousReference, owner.File, rel.Range,
			fmt.Sprintf("reference to %q is ambiguous among %d candidates", rel.TargetName, len(result.Candidates)))
		for _, cand := range result.Candidates {
			d = d.withRelated(cand.File, cand.Range, "candidate: "+cand.FullyQualifiedName)
		}
		return &d
	default:
		d := newDiagnostic(CodeUndefinedReference, owner.File, rel.Range,
			fmt.Sprintf("%q does not resolve to any symbol visible from %s", rel.TargetName, owner.FullyQualifiedName))
		return &d
	}
}

// checkTypeRef resolves one TypeRef's target the same way checkReference
// resolves a Relationship's, reporting E0001/E0002. A typing target is
// never required to be a definition the way :>/:>>/::> targets are — a
// feature can be typed by another feature redefining its own type — so
// there is no InvalidSpecialize counterpart here.
func checkTypeRef(idx *index.SymbolIndex, owner hir.HirSymbol, ref hir.TypeRef) *Diagnostic {
	var result index.ResolveResult
	if len(ref.Chain) > 1 {
		segments := make([]string, len(ref.Chain))
		for i, seg := range ref.Chain {
			segments[i] = seg.Name
		}
		result = idx.ResolveChain(owner.FullyQualifiedName, segments)
	} else {
		result = idx.Resolve(owner.FullyQualifiedName, ref.Target)
	}
	switch result.Kind {
	case index.ResolveExact, index.ResolveInherited:
		return nil
	case index.ResolveAmbiguous:
		d := newDiagnostic(CodeAmbiguousReference, owner.File, ref.Range,
			fmt.Sprintf("reference to %q is ambiguous among %d candidates", ref.Target, len(result.Candidates)))
		for _, cand := range result.Candidates {
			d = d.withRelated(cand.File, cand.Range, "candidate: "+cand.FullyQualifiedName)
		}
		return &d
	default:
		d := newDiagnostic(CodeUndefinedReference, owner.File, ref.Range,
			fmt.Sprintf("%q does not resolve to any symbol visible from %s", ref.Target, owner.FullyQualifiedName))
		return &d
	}
}

// CheckTypeRefs resolves every `X : T` / `X typed by T` typing target
// recorded on every symbol in syms against idx, the TypeRefs counterpart
// to CheckReferences now that typing targets are no longer folded into
// Relationships.
func CheckTypeRefs(idx *index.SymbolIndex, syms []hir.HirSymbol) []Diagnostic {
	var out []Diagnostic
	for _, s := range syms {
		for _, ref := range s.TypeRefs {
			if d := checkTypeRef(idx, s, ref); d != nil {
				out = append(out, *d)
			}
		}
	}
	return out
}

func needsDefinitionTarget(kind hir.RelationshipKind) bool {
	switch kind {
	case hir.RelSpecializes, hir.RelRedefines, hir.RelConjugates:
		return true
	default:
		return false
	}
}

// CheckReferences resolves every relationship target recorded on every
// symbol in syms against idx, reporting E0001/E0002/E0006 as appropriate.
// Implicit relationships (synthesized kernel-metaclass supertypes) are
// skipped: a missing stdlib package is a workspace configuration problem,
// not a user authoring mistake, and stdlib_active() governs that
// separately.
func CheckReferences(idx *index.SymbolIndex, syms []hir.HirSymbol) []Diagnostic {
	var out []Diagnostic
	for _, s := range syms {
		for _, rel := range s.Relationships {
			if rel.Implicit {
				continue
			}
			if d := checkReference(idx, s, rel); d != nil {
				out = append(out, *d)
			}
		}
	}
	return out
}

// CheckDuplicateDefinitions reports E0004 for every fully qualified name
// claimed by more than one non-anonymous symbol. Anonymous symbols carry
// a synthesized, file-and-line-stamped name and can never collide.
func CheckDuplicateDefinitions(syms []hir.HirSymbol) []Diagnostic {
	byFQN := make(map[string][]hir.HirSymbol)
	for _, s := range syms {
		if s.IsAnonymous {
			continue
		}
		byFQN[s.FullyQualifiedName] = append(byFQN[s.FullyQualifiedName], s)
	}

	var out []Diagnostic
	for fqn, group := range byFQN {
		if len(group) < 2 {
			continue
		}
		for i, s := range group {
			d := newDiagnostic(CodeDuplicateDefinition, s.File, s.NameRange,
				fmt.Sprintf("%q is defined more than once", fqn))
			for j, other := range group {
				if i == j {
					continue
				}
				d = d.withRelated(other.File, other.NameRange, "also defined here")
			}
			out = append(out, d)
		}
	}
	return out
}

// CheckCircularSpecialization reports E0007 once per symbol that sits on
// a cycle in the specializes/redefines/conjugates graph (the kinds
// needsDefinitionTarget accepts; references edges are not followed). The
// cycle is reported at every member of it (not just its first-discovered
// node) so each offending declaration gets its own squiggle.
func CheckCircularSpecialization(idx *index.SymbolIndex, syms []hir.HirSymbol) []Diagnostic {
	var out []Diagnostic
	for _, s := range syms {
		if cycle := findCycle(idx, s.FullyQualifiedName, nil, map[string]bool{}); cycle != nil {
			out = append(out, newDiagnostic(CodeCircularSpecialize, s.File, s.Range,
				fmt.Sprintf("%s participates in a specialization cycle: %s", s.Name, describeCycle(cycle))))
		}
	}
	return out
}

func findCycle(idx *index.SymbolIndex, fqn string, path []string, visiting map[string]bool) []string {
	for _, p := range path {
		if p == fqn {
			return append(append([]string{}, path...), fqn)
		}
	}
	if visiting[fqn] {
		return nil
	}
	visiting[fqn] = true

	owner, ok := idx.ByFQN(fqn)
	if !ok {
		return nil
	}
	path = append(path, fqn)
	for _, rel := range owner.Relationships {
		if rel.Implicit || !needsDefinitionTarget(rel.Kind) {
			continue
		}
		result := idx.Resolve(owner.FullyQualifiedName, rel.TargetName)
		if result.Symbol == nil {
			continue
		}
		if cycle := findCycle(idx, result.Symbol.FullyQualifiedName, path, visiting); cycle != nil {
			return cycle
		}
	}
	return nil
}

func describeCycle(cycle []string) string {
	out := ""
	for i, c := range cycle {
		if i > 0 {
			out += " -> "
		}
		out += c
	}
	return out
}

// Run executes every error- and warning-level check over syms against
// idx and returns one deduplicated diagnostic list. The result is not
// cached: pkg/db's Diagnostics calls Run on every query, so each call
// runs the full set, including the workspace-wide warning scans.
func Run(idx *index.SymbolIndex, syms []hir.HirSymbol) []Diagnostic {
	var all []Diagnostic
	all = append(all, CheckDuplicateDefinitions(syms)...)
	all = append(all, CheckReferences(idx, syms)...)
	all = append(all, CheckTypeRefs(idx, syms)...)
	all = append(all, CheckCircularSpecialization(idx, syms)...)
	all = append(all, CheckDeprecatedUsage(syms)...)
	all = append(all, CheckNamingConvention(syms)...)
	all = append(all, CheckUnusedSymbols(idx, syms)...)
	return Dedup(all)
}
