package ide

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmlkit/pkg/db"
	"sysmlkit/pkg/token"
)

func testQueries(t *testing.T) (*Queries, *db.Database) {
	t.Helper()
	d := db.New(db.DefaultConfig())
	d.SetStdlibActive(false)
	return New(d), d
}

func TestHover_OnDefinitionName(t *testing.T) {
	q, d := testQueries(t)
	file := d.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	hover, ok := q.Hover(file, 9) // inside "Car"
	require.True(t, ok)
	assert.Equal(t, "Car", hover.Symbol.Name)
}

func TestHover_OnSpecializationTargetResolvesTarget(t *testing.T) {
	q, d := testQueries(t)
	d.InsertFile("base.sysml", "part def Vehicle;\n", token.DialectSysML)
	derived := d.InsertFile("derived.sysml", "part def Car :> Vehicle;\n", token.DialectSysML)

	offset := uint32(16) // inside "Vehicle" in ":> Vehicle"
	hover, ok := q.Hover(derived, offset)
	require.True(t, ok)
	require.Len(t, hover.Relationships, 1)
	require.NotNil(t, hover.Relationships[0].Target)
	assert.Equal(t, "Vehicle", hover.Relationships[0].TargetName)
}

func TestHover_OnTypingTargetResolvesTarget(t *testing.T) {
	q, d := testQueries(t)
	d.InsertFile("base.sysml", "part def Engine;\n", token.DialectSysML)
	src := "part e : Engine;\n"
	derived := d.InsertFile("derived.sysml", src, token.DialectSysML)

	offset := uint32(strings.Index(src, "Engine"))
	hover, ok := q.Hover(derived, offset)
	require.True(t, ok)
	require.Len(t, hover.TypeRefs, 1)
	require.NotNil(t, hover.TypeRefs[0].Target)
	assert.Equal(t, "Engine", hover.TypeRefs[0].TypeRef.Target)
	assert.NotEqual(t, derived, hover.TypeRefs[0].Target.File)
}

func TestGotoDefinition_OnTypingTarget(t *testing.T) {
	q, d := testQueries(t)
	d.InsertFile("base.sysml", "part def Engine;\n", token.DialectSysML)
	src := "part e : Engine;\n"
	derived := d.InsertFile("derived.sysml", src, token.DialectSysML)

	offset := uint32(strings.Index(src, "Engine"))
	locs := q.GotoDefinition(derived, offset)
	require.Len(t, locs, 1)
	assert.NotEqual(t, derived, locs[0].File)
}

func TestGotoDefinition_FollowsAliasToRealTarget(t *testing.T) {
	q, d := testQueries(t)
	src := "package P {\n\tpart def Actual;\n\talias Rx for Actual;\n\tpart p : Rx;\n}\n"
	file := d.InsertFile("lib.sysml", src, token.DialectSysML)

	offset := uint32(strings.LastIndex(src, "Rx"))
	locs := q.GotoDefinition(file, offset)
	require.Len(t, locs, 1)
	assert.Equal(t, uint32(strings.Index(src, "Actual")), locs[0].Range.Start)
}

func TestFindReferences_IncludesTypingUsages(t *testing.T) {
	q, d := testQueries(t)
	base := d.InsertFile("base.sysml", "part def Engine;\n", token.DialectSysML)
	d.InsertFile("derived.sysml", "part e : Engine;\n", token.DialectSysML)

	locs := q.FindReferences(base, 9) // on "Engine"'s own name
	assert.Len(t, locs, 2)            // the declaration itself, plus the one typing usage
}

func TestGotoDefinition_ResolvesAcrossFiles(t *testing.T) {
	q, d := testQueries(t)
	d.InsertFile("base.sysml", "part def Vehicle;\n", token.DialectSysML)
	derived := d.InsertFile("derived.sysml", "part def Car :> Vehicle;\n", token.DialectSysML)

	locs := q.GotoDefinition(derived, 16)
	require.Len(t, locs, 1)
	assert.NotEqual(t, derived, locs[0].File)
}

func TestGotoDefinition_NoReferenceAtOffset(t *testing.T) {
	q, d := testQueries(t)
	file := d.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	locs := q.GotoDefinition(file, 9)
	assert.Empty(t, locs)
}

func TestFindReferences_FindsSpecializationAndDeclaration(t *testing.T) {
	q, d := testQueries(t)
	base := d.InsertFile("base.sysml", "part def Vehicle;\n", token.DialectSysML)
	d.InsertFile("derived.sysml", "part def Car :> Vehicle;\n", token.DialectSysML)

	locs := q.FindReferences(base, 9) // on "Vehicle"'s own name
	assert.Len(t, locs, 2)            // the declaration itself, plus the one specialization
}

func TestDocumentSymbols_ListsEveryFileSymbol(t *testing.T) {
	q, d := testQueries(t)
	file := d.InsertFile("car.sysml", "package P {\n\tpart def Car;\n\tpart def Truck;\n}\n", token.DialectSysML)

	syms := q.DocumentSymbols(file)
	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Car")
	assert.Contains(t, names, "Truck")
}

func TestWorkspaceSymbols_FiltersBySubstring(t *testing.T) {
	q, d := testQueries(t)
	d.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)
	d.InsertFile("truck.sysml", "part def Truck;\n", token.DialectSysML)

	found := q.WorkspaceSymbols("Car")
	require.Len(t, found, 1)
	assert.Equal(t, "Car", found[0].Name)

	assert.Len(t, q.WorkspaceSymbols(""), 2)
}

func TestCompletions_IncludesInheritedAndOwnMembers(t *testing.T) {
	q, d := testQueries(t)
	d.InsertFile("base.sysml", "part def Vehicle {\n\tpart engine;\n}\n", token.DialectSysML)
	derived := d.InsertFile("derived.sysml", "part def Car :> Vehicle {\n\tpart wheel;\n}\n", token.DialectSysML)

	syms := q.Symbols(derived)
	var carOffset uint32
	for _, s := range syms {
		if s.Name == "Car" {
			carOffset = s.Range.Start + 1
		}
	}

	items := q.Completions(derived, carOffset)
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Contains(t, names, "wheel")
	assert.Contains(t, names, "engine")
}

func TestSemanticTokens_ClassifiesDefinitionName(t *testing.T) {
	q, d := testQueries(t)
	file := d.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	tokens := q.SemanticTokens(file)
	var found bool
	for _, tk := range tokens {
		if tk.TokenType == "part" {
			found = true
			assert.Contains(t, tk.Modifiers, "definition")
		}
	}
	assert.True(t, found, "expected a semantic token classified as a part definition")
}

func TestFoldingRanges_SkipsSingleLineDeclarations(t *testing.T) {
	q, d := testQueries(t)
	file := d.InsertFile("car.sysml", "part def Car;\npackage P {\n\tpart def Truck;\n}\n", token.DialectSysML)

	ranges := q.FoldingRanges(file)
	require.NotEmpty(t, ranges)
	for _, r := range ranges {
		assert.Greater(t, r.End, r.Start+uint32(len("part def Car;")))
	}
}

func TestDiagnosticsAndParseErrors(t *testing.T) {
	q, d := testQueries(t)
	file := d.InsertFile("car.sysml", "part def Car :> Missing;\n", token.DialectSysML)

	assert.Empty(t, q.ParseErrors(file))
	require.NotEmpty(t, q.Diagnostics(file))
}
