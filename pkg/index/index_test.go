package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmlkit/pkg/hir"
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/syntax"
	"sysmlkit/pkg/token"
)

// extractInto parses src and loads its extraction into idx under file, the
// same parse->extract->index pipeline pkg/db's derived queries run per file.
func extractInto(t *testing.T, idx *SymbolIndex, file ids.FileId, src string) hir.Extraction {
	t.Helper()
	green, errs := syntax.Parse([]byte(src), token.DialectSysML)
	require.Empty(t, errs)
	li := ids.NewLineIndex([]byte(src))
	ext := hir.Extract(file, syntax.NewRoot(green), li)
	idx.SetFileSymbols(file, ext.Symbols, ext.Imports, ext.Filters)
	return ext
}

// buildIndex loads each src in srcs into its own FileId, in order.
func buildIndex(t *testing.T, srcs ...string) *SymbolIndex {
	t.Helper()
	idx := NewSymbolIndex()
	for i, src := range srcs {
		extractInto(t, idx, ids.FileId(i+1), src)
	}
	return idx
}

func TestSetFileSymbols_IndexesByFQNAndSimpleName(t *testing.T) {
	idx := buildIndex(t, "package Vehicle {\n\tpart def Car;\n}\n")

	car, ok := idx.ByFQN("Vehicle::Car")
	require.True(t, ok)
	assert.Equal(t, "Car", car.Name)

	bySimple := idx.BySimpleName("Car")
	require.Len(t, bySimple, 1)
	assert.Equal(t, "Vehicle::Car", bySimple[0].FullyQualifiedName)

	children := idx.Children("Vehicle")
	require.Len(t, children, 1)
	assert.Equal(t, "Car", children[0].Name)
}

func TestSetFileSymbols_IndexesImportsAndFiltersByScope(t *testing.T) {
	idx := buildIndex(t, "package Consumer {\n\timport Lib::*;\n\tfilter @Safety;\n}\n")

	imports := idx.ImportsIn("Consumer")
	require.Len(t, imports, 1)
	assert.Equal(t, "Lib", imports[0].Target)
	assert.Equal(t, hir.ImportWildcard, imports[0].Kind)

	filters := idx.FiltersIn("Consumer")
	require.Len(t, filters, 1)
	assert.Equal(t, "Safety", filters[0].Target)
}

func TestRemoveFile_RetractsSymbolsImportsAndFilters(t *testing.T) {
	idx := NewSymbolIndex()
	extractInto(t, idx, ids.FileId(1), "package Consumer {\n\timport Lib::*;\n\tfilter @Safety;\n\tpart def Local;\n}\n")

	idx.RemoveFile(ids.FileId(1))

	_, ok := idx.ByFQN("Consumer::Local")
	assert.False(t, ok)
	assert.Empty(t, idx.ImportsIn("Consumer"))
	assert.Empty(t, idx.FiltersIn("Consumer"))
	assert.Empty(t, idx.Children("Consumer"))
}

func TestSetFileSymbols_ReextractionReplacesPriorContent(t *testing.T) {
	idx := NewSymbolIndex()
	extractInto(t, idx, ids.FileId(1), "package Consumer {\n\timport Lib::*;\n}\n")
	require.Len(t, idx.ImportsIn("Consumer"), 1)

	extractInto(t, idx, ids.FileId(1), "package Consumer {\n\tpart def Local;\n}\n")
	assert.Empty(t, idx.ImportsIn("Consumer"))
	_, ok := idx.ByFQN("Consumer::Local")
	assert.True(t, ok)
}
