package ids

import "sync"

// FileTable allocates monotonic FileIds for workspace paths and never
// reuses one, even after the path is removed — spec.md's "Lifecycle"
// contract for FileId. It is intentionally separate from Interner: file
// paths are not Names (they are never subject to SysML lexical rules or
// display-form stripping).
type FileTable struct {
	mu      sync.RWMutex
	byPath  map[string]FileId
	byID    map[FileId]string
	nextID  FileId
	removed map[FileId]bool
}

// NewFileTable creates an empty file table.
func NewFileTable() *FileTable {
	return &FileTable{
		byPath:  make(map[string]FileId),
		byID:    make(map[FileId]string),
		removed: make(map[FileId]bool),
	}
}

// Insert allocates a fresh FileId for path. Re-inserting an already-known
// path (without an intervening Remove) returns the existing id.
func (ft *FileTable) Insert(path string) FileId {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if id, ok := ft.byPath[path]; ok && !ft.removed[id] {
		return id
	}
	id := ft.nextID
	ft.nextID++
	ft.byPath[path] = id
	ft.byID[id] = path
	return id
}

// Remove marks id's path as gone. The FileId itself is never reused.
func (ft *FileTable) Remove(id FileId) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if path, ok := ft.byID[id]; ok {
		delete(ft.byPath, path)
		ft.removed[id] = true
	}
}

// Path returns the path for id, or ("", false) if id is unknown or removed.
func (ft *FileTable) Path(id FileId) (string, bool) {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	if ft.removed[id] {
		return "", false
	}
	p, ok := ft.byID[id]
	return p, ok
}

// Lookup returns the FileId currently assigned to path, if any.
func (ft *FileTable) Lookup(path string) (FileId, bool) {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	id, ok := ft.byPath[path]
	return id, ok
}

// Files returns the set of currently-live FileIds, in unspecified order.
func (ft *FileTable) Files() []FileId {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	out := make([]FileId, 0, len(ft.byID)-len(ft.removed))
	for id := range ft.byID {
		if !ft.removed[id] {
			out = append(out, id)
		}
	}
	return out
}
