package diagnostics

import (
	"fmt"
	"strings"
	"unicode"

	"sysmlkit/pkg/hir"
	"sysmlkit/pkg/index"
)

// CheckDeprecatedUsage reports W0002 wherever a symbol carries a
// @Deprecated metadata annotation, once per annotated symbol. It does not
// chase deprecation through specialization: a type that merely inherits
// from a deprecated supertype is not itself deprecated.
func CheckDeprecatedUsage(syms []hir.HirSymbol) []Diagnostic {
	var out []Diagnostic
	for _, s := range syms {
		for _, m := range s.Metadata {
			if lastSegment(m) != "Deprecated" {
				continue
			}
			out = append(out, newDiagnostic(CodeDeprecatedUsage, s.File, s.NameRange,
				fmt.Sprintf("%s is marked @Deprecated", s.Name)))
			break
		}
	}
	return out
}

// CheckNamingConvention reports W0003 for definitions whose name doesn't
// start with an uppercase letter, SysML's usual type-naming convention.
// Anonymous symbols and plain usages (which conventionally start lower
// case, like a part usage named "engine") are exempt.
func CheckNamingConvention(syms []hir.HirSymbol) []Diagnostic {
	var out []Diagnostic
	for _, s := range syms {
		if s.IsAnonymous || !s.IsDefinition || s.Name == "" {
			continue
		}
		first := []rune(s.Name)[0]
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			out = append(out, newDiagnostic(CodeNamingConvention, s.File, s.NameRange,
				fmt.Sprintf("definition %q should start with an uppercase letter", s.Name)))
		}
	}
	return out
}

// CheckUnusedSymbols reports W0001 for every non-anonymous definition
// that no relationship anywhere in the workspace targets and that no
// other symbol's fully qualified name nests under (a package with
// members is "used" by virtue of containing them). Usages are exempt:
// an unreferenced feature inside a used definition is ordinary structure,
// not dead code.
//
// A relationship's or type reference's target name is frequently written
// unqualified relative to its owning scope (":> Base" inside a package,
// not ":> P::Base"), so idx.Resolve is used to find what it actually
// names before marking that FQN referenced — comparing the raw target
// name against s.FullyQualifiedName directly would miss every such
// reference and misreport its target as unused.
func CheckUnusedSymbols(idx *index.SymbolIndex, syms []hir.HirSymbol) []Diagnostic {
	referenced := make(map[string]bool)
	hasChildren := make(map[string]bool)
	for _, s := range syms {
		hasChildren[s.ParentFQN] = true
		for _, rel := range s.Relationships {
			if rel.Implicit {
				continue
			}
			if result := idx.Resolve(s.FullyQualifiedName, rel.TargetName); result.Symbol != nil {
				referenced[result.Symbol.FullyQualifiedName] = true
			}
		}
		for _, ref := range s.TypeRefs {
			if result := idx.Resolve(s.FullyQualifiedName, ref.Target); result.Symbol != nil {
				referenced[result.Symbol.FullyQualifiedName] = true
			}
		}
	}

	var out []Diagnostic
	for _, s := range syms {
		if s.IsAnonymous || !s.IsDefinition {
			continue
		}
		if referenced[s.FullyQualifiedName] || hasChildren[s.FullyQualifiedName] {
			continue
		}
		out = append(out, newDiagnostic(CodeUnusedSymbol, s.File, s.NameRange,
			fmt.Sprintf("%q is never specialized, typed against, or otherwise referenced", s.FullyQualifiedName)))
	}
	return out
}

func lastSegment(qualifiedName string) string {
	if i := strings.LastIndex(qualifiedName, "::"); i >= 0 {
		return qualifiedName[i+2:]
	}
	return qualifiedName
}
