// Package scanner discovers SysML/KerML source files in a workspace
// directory and loads them in parallel, ready to hand to
// engine.Engine.InsertFile. Discovery is grounded on the teacher's
// pkg/scanner/discovery.go (doublestar glob matching over a
// filepath.WalkDir tree, sorted output for deterministic results);
// parallel loading is grounded on the teacher's
// pkg/indexer/scanner.go (discover-then-worker-pool three-phase shape),
// generalized to run over pkg/workerpool instead of a dedicated
// TS/JS extractor pool.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"sysmlkit/pkg/workerpool"
)

// Config controls which files a Scan considers part of the workspace.
type Config struct {
	Include []string
	Exclude []string
	// Workers overrides the worker pool size; 0 auto-detects.
	Workers int
	Logger  *slog.Logger
}

// DefaultConfig returns the recommended include/exclude globs: every
// .sysml and .kerml file, skipping the usual VCS/build directories.
func DefaultConfig() Config {
	return Config{
		Include: []string{"**/*.sysml", "**/*.kerml"},
		Exclude: []string{
			"node_modules/**", ".git/**", "dist/**", "build/**",
			".sysmlls/**", "out/**",
		},
	}
}

// DiscoverFiles walks rootDir applying cfg's include/exclude globs.
// Returns a sorted slice of absolute file paths for deterministic
// output.
func DiscoverFiles(rootDir string, cfg Config) ([]string, error) {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("scanner: invalid exclude pattern %q", pattern)
		}
	}
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("scanner: invalid include pattern %q", pattern)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("scanner: failed to resolve root path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range cfg.Exclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if len(cfg.Include) > 0 {
			matched := false
			for _, pattern := range cfg.Include {
				if m, _ := doublestar.PathMatch(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// LoadedFile is one discovered file's path and text, ready for
// engine.Engine.InsertFile.
type LoadedFile struct {
	Path string
	Text string
}

// Stats summarizes one Scan call.
type Stats struct {
	FilesDiscovered int
	FilesLoaded     int
	FilesFailed     int
	Errors          []workerpool.FileError
}

// Scan discovers every matching file under rootDir and loads its text in
// parallel via pkg/workerpool, returning every successfully loaded file
// alongside a Stats summary. A file that fails to read is recorded in
// Stats.Errors rather than aborting the whole scan — partial results
// are still useful for a large workspace with one unreadable file.
func Scan(rootDir string, cfg Config) ([]LoadedFile, Stats, error) {
	files, err := DiscoverFiles(rootDir, cfg)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{FilesDiscovered: len(files)}
	if len(files) == 0 {
		return nil, stats, nil
	}

	var mu sync.Mutex
	var loaded []LoadedFile

	pool := workerpool.New(cfg.Workers, func(path, text string) error {
		mu.Lock()
		loaded = append(loaded, LoadedFile{Path: path, Text: text})
		mu.Unlock()
		return nil
	}, cfg.Logger)
	pool.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		remaining := len(files)
		for remaining > 0 {
			select {
			case _, ok := <-pool.Results():
				if !ok {
					return
				}
				stats.FilesLoaded++
				remaining--
			case ferr, ok := <-pool.Errors():
				if !ok {
					return
				}
				stats.FilesFailed++
				stats.Errors = append(stats.Errors, ferr)
				remaining--
			}
		}
	}()

	for i, path := range files {
		if err := pool.Submit(workerpool.FileJob{FilePath: path, JobID: i}); err != nil {
			return nil, stats, fmt.Errorf("scanner: failed to submit %s: %w", path, err)
		}
	}
	pool.FinishSubmitting()
	<-done
	pool.Stop()

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Path < loaded[j].Path })
	return loaded, stats, nil
}
