package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmlkit/pkg/token"
)

func assertLossless(t *testing.T, src string, green *GreenNode) {
	t.Helper()
	assert.Equal(t, src, green.Text())
}

func TestParsePackageWithPartDef(t *testing.T) {
	src := "package Vehicle {\n\tpart def Engine;\n\tpart def Car {\n\t\tpart engine : Engine;\n\t}\n}\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.Empty(t, errs)
	assertLossless(t, src, green)

	root := NewRoot(green)
	sf, ok := AsSourceFile(root)
	require.True(t, ok)
	members := sf.Members()
	require.Len(t, members, 1)
	assert.Equal(t, Package, members[0].Kind())
}

func TestParseImportForms(t *testing.T) {
	src := "import Vehicles::Engine;\nimport Vehicles::*;\nimport Vehicles::**;\nimport Vehicles::*::**;\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.Empty(t, errs)
	assertLossless(t, src, green)

	root := NewRoot(green)
	sf, _ := AsSourceFile(root)
	members := sf.Members()
	require.Len(t, members, 4)

	im0, ok := AsImport(members[0])
	require.True(t, ok)
	assert.False(t, im0.IsWildcard())

	im1, _ := AsImport(members[1])
	assert.True(t, im1.IsWildcard())
	assert.False(t, im1.IsTransitive())

	im2, _ := AsImport(members[2])
	assert.True(t, im2.IsTransitive())
}

func TestParseImportWithAliasAndFilter(t *testing.T) {
	src := "import Vehicles::Engine alias Eng;\nimport Vehicles::* [ @Deprecated ];\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.Empty(t, errs)
	assertLossless(t, src, green)

	root := NewRoot(green)
	sf, _ := AsSourceFile(root)
	members := sf.Members()
	require.Len(t, members, 2)

	im0, _ := AsImport(members[0])
	alias, ok := im0.Alias()
	require.True(t, ok)
	assert.Equal(t, "Eng", alias.Text())

	im1, _ := AsImport(members[1])
	filter := im1.ChildOfKind(Filter)
	require.NotNil(t, filter)
}

func TestParseUsageWithSpecializationAndMultiplicity(t *testing.T) {
	src := "part def Fleet {\n\tpart cars : Car [1..*] :> Vehicles;\n}\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.Empty(t, errs)
	assertLossless(t, src, green)

	root := NewRoot(green)
	sf, _ := AsSourceFile(root)
	def, ok := AsDefinition(sf.Members()[0])
	require.True(t, ok)
	body, ok := def.Body()
	require.True(t, ok)
	usages := body.ChildrenOfKind(Usage)
	require.Len(t, usages, 1)

	u, _ := AsUsage(usages[0])
	nm, ok := u.Name()
	require.True(t, ok)
	assert.Equal(t, "cars", nm.Text())
	require.Len(t, u.Typings(), 1)

	mult := usages[0].ChildOfKind(Multiplicity)
	require.NotNil(t, mult)

	specs := usages[0].ChildrenOfKind(Specializes)
	require.Len(t, specs, 1)
}

func TestParseRelationshipKeywordForms(t *testing.T) {
	src := "action def Drive {\n\tperform accelerate;\n\tsatisfy SafetyReq;\n}\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.Empty(t, errs)
	assertLossless(t, src, green)

	root := NewRoot(green)
	sf, _ := AsSourceFile(root)
	def, _ := AsDefinition(sf.Members()[0])
	body, _ := def.Body()
	usages := body.ChildrenOfKind(Usage)
	require.Len(t, usages, 2)
}

func TestParseKerMLPlainFeature(t *testing.T) {
	// "part" has no special meaning in bare KerML, so it is a bare feature
	// redeclaration rather than a SysML part usage.
	src := "namespace N {\n\tfeature x : Anything;\n}\n"
	green, errs := Parse([]byte(src), token.DialectKerML)
	require.Empty(t, errs)
	assertLossless(t, src, green)
}

func TestParseUnrestrictedIdentifierName(t *testing.T) {
	src := "part def 'vehicle model 1';\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.Empty(t, errs)
	assertLossless(t, src, green)

	root := NewRoot(green)
	sf, _ := AsSourceFile(root)
	def, ok := AsDefinition(sf.Members()[0])
	require.True(t, ok)
	nm, ok := def.Name()
	require.True(t, ok)
	assert.Equal(t, "'vehicle model 1'", nm.Text())
}

func TestParseMalformedDeclarationRecovers(t *testing.T) {
	src := "package Vehicle {\n\tpart def Car extra tokens\n\tpart def Truck;\n}\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.NotEmpty(t, errs)
	assertLossless(t, src, green)

	root := NewRoot(green)
	sf, _ := AsSourceFile(root)
	pkg := sf.Members()[0]
	body := pkg.ChildOfKind(NamespaceBody)
	require.NotNil(t, body)
	// The second, well-formed `part def Truck;` must still be recovered as
	// a sibling Definition despite the first one being malformed.
	defs := body.ChildrenOfKind(Definition)
	require.Len(t, defs, 2)
	nm, ok := AsName(defs[1].ChildOfKind(Name))
	require.True(t, ok)
	assert.Equal(t, "Truck", nm.Text())
}

func TestParseMismatchedBraceRecovers(t *testing.T) {
	src := "package Vehicle {\n\tpart def Car;\n"
	green, errs := Parse([]byte(src), token.DialectSysML)
	require.NotEmpty(t, errs)
	assertLossless(t, src, green)
}

func TestParseUnknownByteProducesErrorNodeNotPanic(t *testing.T) {
	src := "package \x01Vehicle {}\n"
	require.NotPanics(t, func() {
		green, errs := Parse([]byte(src), token.DialectSysML)
		assertLossless(t, src, green)
		require.NotEmpty(t, errs)
	})
}

func TestNodeAtOffsetFindsInnerName(t *testing.T) {
	src := "part def Car;"
	green, _ := Parse([]byte(src), token.DialectSysML)
	root := NewRoot(green)
	n := root.NodeAtOffset(9) // inside "Car"
	require.NotNil(t, n)
	// Walk up until we find the Name node covering the offset.
	for n != nil && n.Kind() != Name {
		n = n.Parent()
	}
	require.NotNil(t, n)
	nm, ok := AsName(n)
	require.True(t, ok)
	assert.Equal(t, "Car", nm.Text())
}
