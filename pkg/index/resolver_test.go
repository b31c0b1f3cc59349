package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExactFullyQualifiedNameBypassesScope(t *testing.T) {
	idx := buildIndex(t, "package Vehicles {\n\tpart def Car;\n}\n")

	result := idx.Resolve("", "Vehicles::Car")
	require.Equal(t, ResolveExact, result.Kind)
	assert.Equal(t, "Vehicles::Car", result.Symbol.FullyQualifiedName)
}

func TestResolve_InheritedMemberFoundThroughSpecialization(t *testing.T) {
	idx := buildIndex(t, "package P {\n\tpart def Base {\n\t\tpart engine;\n\t}\n\tpart def Car :> Base;\n}\n")

	// VisibilityMap("P::Car") already layers Base's members in (collectInherited
	// resolves the unqualified ":> Base" target relative to Car's own scope), so
	// this is found by Resolve's scope-chain step before the resolveInherited
	// fallback ever runs.
	result := idx.Resolve("P::Car", "engine")
	require.Equal(t, ResolveExact, result.Kind)
	assert.Equal(t, "P::Base::engine", result.Symbol.FullyQualifiedName)
}

func TestResolve_UnrelatedUnimportedSimpleNameIsNotFound(t *testing.T) {
	idx := buildIndex(t, "package A {\n\tpart def Widget;\n}\npackage B {\n\tpart def Other;\n}\n")

	result := idx.Resolve("B", "Widget")
	assert.Equal(t, ResolveNotFound, result.Kind)
}

// TestResolve_AliasResolvesToAliasItselfNotTarget is the first half of
// spec.md's concrete scenario 5: resolving an alias's own name returns
// the alias symbol, not the thing it points at.
func TestResolve_AliasResolvesToAliasItselfNotTarget(t *testing.T) {
	idx := buildIndex(t, "package P {\n\tpart def Real;\n\talias R for Real;\n}\n")

	result := idx.Resolve("P", "R")
	require.Equal(t, ResolveExact, result.Kind)
	assert.Equal(t, "P::R", result.Symbol.FullyQualifiedName)
}

// TestResolveAlias_FollowsToRealTarget is the second half of scenario 5:
// goto-definition's extra hop past the alias lands on the real target.
func TestResolveAlias_FollowsToRealTarget(t *testing.T) {
	idx := buildIndex(t, "package P {\n\tpart def Real;\n\talias R for Real;\n}\n")

	alias, ok := idx.ByFQN("P::R")
	require.True(t, ok)

	target := idx.ResolveAlias(alias)
	assert.Equal(t, "P::Real", target.FullyQualifiedName)
}

func TestResolveAlias_NonAliasSymbolReturnsItself(t *testing.T) {
	idx := buildIndex(t, "part def Car;\n")
	car, ok := idx.ByFQN("Car")
	require.True(t, ok)

	assert.Same(t, car, idx.ResolveAlias(car))
}

func TestResolveAlias_FollowsChainOfAliases(t *testing.T) {
	idx := buildIndex(t, "package P {\n\tpart def Real;\n\talias Mid for Real;\n\talias Outer for Mid;\n}\n")

	outer, ok := idx.ByFQN("P::Outer")
	require.True(t, ok)

	assert.Equal(t, "P::Real", idx.ResolveAlias(outer).FullyQualifiedName)
}

func TestResolveAlias_BreaksCycleInsteadOfLooping(t *testing.T) {
	idx := buildIndex(t, "package P {\n\talias A for B;\n\talias B for A;\n}\n")

	a, ok := idx.ByFQN("P::A")
	require.True(t, ok)

	result := idx.ResolveAlias(a)
	require.NotNil(t, result)
	assert.Contains(t, []string{"P::A", "P::B"}, result.FullyQualifiedName)
}

func TestResolveChain_DescendsDottedFeatureChain(t *testing.T) {
	idx := buildIndex(t, "package P {\n\tpart a {\n\t\tpart b {\n\t\t\tpart c;\n\t\t}\n\t}\n}\n")

	result := idx.ResolveChain("P", []string{"a", "b", "c"})
	require.Equal(t, ResolveExact, result.Kind)
	assert.Equal(t, "P::a::b::c", result.Symbol.FullyQualifiedName)
}

func TestResolveChain_BrokenLinkIsNotFound(t *testing.T) {
	idx := buildIndex(t, "package P {\n\tpart a {\n\t\tpart b;\n\t}\n}\n")

	result := idx.ResolveChain("P", []string{"a", "missing", "c"})
	assert.Equal(t, ResolveNotFound, result.Kind)
}
