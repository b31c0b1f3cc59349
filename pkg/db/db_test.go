package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmlkit/pkg/diagnostics"
	"sysmlkit/pkg/token"
)

func TestInsertFileThenParse(t *testing.T) {
	d := New(DefaultConfig())
	file := d.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	green, errs, ok := d.Parse(file)
	require.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, "part def Car;\n", green.Text())
}

func TestParseIsMemoizedUntilTextChanges(t *testing.T) {
	d := New(DefaultConfig())
	file := d.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	green1, _, _ := d.Parse(file)
	green2, _, _ := d.Parse(file)
	assert.Same(t, green1, green2, "unchanged text should return the same cached green tree")

	d.SetText(file, "part def Truck;\n")
	green3, _, _ := d.Parse(file)
	assert.NotSame(t, green1, green3)
	assert.Equal(t, "part def Truck;\n", green3.Text())
}

func TestSetTextOnUnknownFileFails(t *testing.T) {
	d := New(DefaultConfig())
	assert.False(t, d.SetText(999, "part def X;\n"))
}

func TestStdlibRegisteredButToggleable(t *testing.T) {
	d := New(DefaultConfig())
	withStdlib := len(d.WorkspaceFiles())
	assert.True(t, d.StdlibActive())

	d.SetStdlibActive(false)
	withoutStdlib := len(d.WorkspaceFiles())
	assert.Less(t, withoutStdlib, withStdlib)

	d.SetStdlibActive(true)
	assert.Equal(t, withStdlib, len(d.WorkspaceFiles()))
}

func TestRemoveFileCannotTouchStdlib(t *testing.T) {
	d := New(DefaultConfig())
	before := len(d.WorkspaceFiles())

	for _, f := range d.WorkspaceFiles() {
		if path, _ := d.FilePath(f); path == "stdlib://Base.sysml" {
			d.RemoveFile(f)
		}
	}
	assert.Equal(t, before, len(d.WorkspaceFiles()))
}

func TestFileSymbolsAndSymbolIndex(t *testing.T) {
	d := New(DefaultConfig())
	d.InsertFile("base.sysml", "part def Vehicle;\n", token.DialectSysML)
	d.InsertFile("derived.sysml", "part def Car :> Vehicle;\n", token.DialectSysML)

	idx := d.SymbolIndex()
	car, ok := idx.ByFQN("Car")
	require.True(t, ok)
	require.Len(t, car.Relationships, 1)
	assert.Equal(t, "Vehicle", car.Relationships[0].TargetName)
}

func TestSymbolIndexIsMemoizedAcrossRevisions(t *testing.T) {
	d := New(DefaultConfig())
	d.InsertFile("base.sysml", "part def Vehicle;\n", token.DialectSysML)

	idx1 := d.SymbolIndex()
	idx2 := d.SymbolIndex()
	assert.Same(t, idx1, idx2)

	d.InsertFile("other.sysml", "part def Thing;\n", token.DialectSysML)
	idx3 := d.SymbolIndex()
	assert.NotSame(t, idx1, idx3)
}

func TestDiagnosticsAcrossFiles(t *testing.T) {
	d := New(DefaultConfig())
	d.InsertFile("base.sysml", "part def Vehicle;\n", token.DialectSysML)
	file := d.InsertFile("derived.sysml", "part def Car :> NoSuchType;\n", token.DialectSysML)

	diags, ok := d.Diagnostics(file)
	require.True(t, ok)
	require.NotEmpty(t, diags)
	assert.Equal(t, file, diags[0].File)
}

func TestRemovingBaseFileSurfacesUndefinedReference(t *testing.T) {
	d := New(DefaultConfig())
	base := d.InsertFile("base.sysml", "part def Vehicle;\n", token.DialectSysML)
	derived := d.InsertFile("derived.sysml", "part def Car :> Vehicle;\n", token.DialectSysML)

	diagsBefore, _ := d.Diagnostics(derived)
	for _, dg := range diagsBefore {
		assert.NotEqual(t, diagnostics.CodeUndefinedReference, dg.Code)
	}

	d.RemoveFile(base)
	diagsAfter, _ := d.Diagnostics(derived)
	require.NotEmpty(t, diagsAfter)
	undefined := false
	for _, dg := range diagsAfter {
		if dg.Code == diagnostics.CodeUndefinedReference {
			undefined = true
		}
	}
	assert.True(t, undefined)
}
