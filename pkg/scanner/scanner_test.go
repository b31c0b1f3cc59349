package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "car.sysml"), []byte("part def Car;\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "truck.sysml"), []byte("part def Truck;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not sysml\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "skip.sysml"), []byte("part def Skip;\n"), 0o644))

	return dir
}

func TestDiscoverFiles_MatchesIncludeSkipsExclude(t *testing.T) {
	dir := writeWorkspace(t)

	files, err := DiscoverFiles(dir, DefaultConfig())
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Contains(t, names, "car.sysml")
	assert.Contains(t, names, "truck.sysml")
	assert.NotContains(t, names, "notes.txt")
	assert.NotContains(t, names, "skip.sysml")
}

func TestScan_LoadsEveryDiscoveredFile(t *testing.T) {
	dir := writeWorkspace(t)

	loaded, stats, err := Scan(dir, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesLoaded)
	assert.Empty(t, stats.Errors)
	require.Len(t, loaded, 2)

	for _, lf := range loaded {
		assert.Contains(t, lf.Text, "part def")
	}
}

func TestScan_EmptyWorkspaceReturnsNoFiles(t *testing.T) {
	dir := t.TempDir()

	loaded, stats, err := Scan(dir, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.Equal(t, 0, stats.FilesDiscovered)
}
