package workerpool

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFiles(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%d.sysml", i))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("part def F%d;\n", i)), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func TestPool_ProcessesEveryFile(t *testing.T) {
	paths := writeTempFiles(t, 10)

	var mu sync.Mutex
	seen := make(map[string]string)

	pool := New(4, func(path, text string) error {
		mu.Lock()
		seen[path] = text
		mu.Unlock()
		return nil
	}, nil)
	pool.Start()

	for i, path := range paths {
		require.NoError(t, pool.Submit(FileJob{FilePath: path, JobID: i}))
	}
	pool.FinishSubmitting()

	for range paths {
		select {
		case res := <-pool.Results():
			assert.Contains(t, res.Text, "part def")
		case err := <-pool.Errors():
			t.Fatalf("unexpected error: %v", err.Error)
		}
	}
	pool.Stop()

	assert.Len(t, seen, len(paths))
}

func TestPool_ReportsProcessErrors(t *testing.T) {
	paths := writeTempFiles(t, 3)

	pool := New(2, func(path, text string) error {
		return fmt.Errorf("boom: %s", path)
	}, nil)
	pool.Start()

	for i, path := range paths {
		require.NoError(t, pool.Submit(FileJob{FilePath: path, JobID: i}))
	}
	pool.FinishSubmitting()

	failures := 0
	for range paths {
		select {
		case <-pool.Results():
			t.Fatal("expected every job to fail")
		case <-pool.Errors():
			failures++
		}
	}
	pool.Stop()

	assert.Equal(t, len(paths), failures)
}

func TestPool_ReportsUnreadableFiles(t *testing.T) {
	pool := New(2, func(path, text string) error { return nil }, nil)
	pool.Start()

	require.NoError(t, pool.Submit(FileJob{FilePath: "/no/such/file.sysml", JobID: 0}))
	pool.FinishSubmitting()

	select {
	case <-pool.Results():
		t.Fatal("expected an error for a missing file")
	case err := <-pool.Errors():
		assert.Contains(t, err.Error.Error(), "failed to read file")
	}
	pool.Stop()
}
