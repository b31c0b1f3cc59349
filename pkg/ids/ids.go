// Package ids provides the compact handle types shared across the engine:
// file identifiers, interned names, and byte-range/line-column positions.
package ids

import "fmt"

// FileId is an opaque handle identifying a file in the workspace.
//
// FileIds are allocated monotonically by FileTable.Insert and are never
// reused, even after the file they named is removed.
type FileId uint32

// String implements fmt.Stringer for debug output.
func (f FileId) String() string {
	return fmt.Sprintf("FileId(%d)", uint32(f))
}

// invalidFileId is returned by lookups that fail.
const invalidFileId FileId = ^FileId(0)

// TextRange is a half-open byte range [Start, End) within a file's text.
type TextRange struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes the range covers.
func (r TextRange) Len() uint32 { return r.End - r.Start }

// Contains reports whether r strictly or non-strictly contains other,
// i.e. other.Start >= r.Start && other.End <= r.End.
func (r TextRange) Contains(other TextRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// ContainsOffset reports whether the byte offset off lies within [Start, End).
func (r TextRange) ContainsOffset(off uint32) bool {
	return off >= r.Start && off < r.End
}

// Cover returns the smallest TextRange containing both r and other.
func (r TextRange) Cover(other TextRange) TextRange {
	start, end := r.Start, r.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return TextRange{Start: start, End: end}
}

// NewRange builds a TextRange from raw offsets, panicking if start > end —
// callers construct ranges only from already-validated token/node extents.
func NewRange(start, end uint32) TextRange {
	if start > end {
		panic(fmt.Sprintf("ids: invalid range [%d, %d)", start, end))
	}
	return TextRange{Start: start, End: end}
}

// LineCol is a zero-indexed (line, column) pair. Column counts bytes, not
// runes, from the start of the line — sufficient for the engine's own
// diagnostics; UTF-16 conversion (for LSP embedders) is the caller's job.
type LineCol struct {
	Line   uint32
	Column uint32
}

// LineIndex maps byte offsets to LineCol pairs for one file's text.
//
// Built once per file text and cached by the query database; immutable
// after construction and safe to share across goroutines.
type LineIndex struct {
	// lineStarts[i] is the byte offset of the first byte of line i.
	lineStarts []uint32
	length     uint32
}

// NewLineIndex scans text for line breaks ('\n') and builds the offset table.
func NewLineIndex(text []byte) *LineIndex {
	starts := []uint32{0}
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return &LineIndex{lineStarts: starts, length: uint32(len(text))}
}

// LineCol converts a byte offset into a (line, column) pair. Offsets past
// the end of the text clamp to the last valid position.
func (li *LineIndex) LineCol(offset uint32) LineCol {
	if offset > li.length {
		offset = li.length
	}
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(li.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return LineCol{Line: uint32(lo), Column: offset - li.lineStarts[lo]}
}

// Offset converts a (line, column) pair back into a byte offset. An
// out-of-range line clamps to the last line; an out-of-range column clamps
// to the end of the file text.
func (li *LineIndex) Offset(lc LineCol) uint32 {
	line := int(lc.Line)
	if line < 0 {
		line = 0
	}
	if line >= len(li.lineStarts) {
		line = len(li.lineStarts) - 1
	}
	off := li.lineStarts[line] + lc.Column
	if off > li.length {
		off = li.length
	}
	return off
}

// LineCount returns the number of lines in the indexed text.
func (li *LineIndex) LineCount() int { return len(li.lineStarts) }
