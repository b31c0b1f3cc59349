package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmlkit/pkg/db"
	"sysmlkit/pkg/token"
)

func TestInsertAndQuerySymbols(t *testing.T) {
	e := New(db.DefaultConfig())
	e.SetStdlibActive(false)
	file := e.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	an := e.Snapshot()
	syms := an.Symbols(file)
	require.Len(t, syms, 1)
	assert.Equal(t, "Car", syms[0].Name)
}

func TestSetTextInvalidatesSnapshotQueries(t *testing.T) {
	e := New(db.DefaultConfig())
	e.SetStdlibActive(false)
	file := e.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	an := e.Snapshot()
	require.Len(t, an.Symbols(file), 1)

	ok := e.SetText(file, "part def Car;\npart def Truck;\n")
	require.True(t, ok)
	assert.Len(t, an.Symbols(file), 2)
}

func TestRemoveFileDropsItFromWorkspaceSymbols(t *testing.T) {
	e := New(db.DefaultConfig())
	e.SetStdlibActive(false)
	file := e.InsertFile("car.sysml", "part def Car;\n", token.DialectSysML)

	an := e.Snapshot()
	require.NotEmpty(t, an.WorkspaceSymbols(""))

	e.RemoveFile(file)
	assert.Empty(t, an.WorkspaceSymbols(""))
}

func TestDiagnosticsSurfaceThroughSnapshot(t *testing.T) {
	e := New(db.DefaultConfig())
	e.SetStdlibActive(false)
	file := e.InsertFile("car.sysml", "part def Car :> Missing;\n", token.DialectSysML)

	an := e.Snapshot()
	require.NotEmpty(t, an.Diagnostics(file))
}
