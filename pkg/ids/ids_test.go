package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndexBasic(t *testing.T) {
	text := []byte("abc\ndef\nghi")
	li := NewLineIndex(text)

	require.Equal(t, 3, li.LineCount())
	assert.Equal(t, LineCol{Line: 0, Column: 0}, li.LineCol(0))
	assert.Equal(t, LineCol{Line: 0, Column: 3}, li.LineCol(3)) // the \n itself
	assert.Equal(t, LineCol{Line: 1, Column: 0}, li.LineCol(4))
	assert.Equal(t, LineCol{Line: 2, Column: 2}, li.LineCol(10))
}

func TestLineIndexRoundTrip(t *testing.T) {
	text := []byte("package P {\n  part def Car;\n}\n")
	li := NewLineIndex(text)
	for off := uint32(0); off <= uint32(len(text)); off++ {
		lc := li.LineCol(off)
		got := li.Offset(lc)
		assert.Equal(t, off, got, "offset %d round-tripped through %+v", off, lc)
	}
}

func TestInternerEquality(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Vehicle")
	b := in.Intern("Vehicle")
	c := in.Intern("Car")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "Vehicle", in.Lookup(a))
}

func TestInternerDisplayUnrestricted(t *testing.T) {
	in := NewInterner()
	n := in.Intern(`'vehicle model 1'`)
	assert.Equal(t, `'vehicle model 1'`, in.Lookup(n))
	assert.Equal(t, "vehicle model 1", in.Display(n))
}

func TestDisplayFormEscapes(t *testing.T) {
	assert.Equal(t, `a'b`, DisplayForm(`'a\'b'`))
	assert.Equal(t, `a\b`, DisplayForm(`'a\\b'`))
	assert.Equal(t, "plain", DisplayForm("plain"))
}

func TestFileTableLifecycle(t *testing.T) {
	ft := NewFileTable()
	id1 := ft.Insert("a.sysml")
	id2 := ft.Insert("b.sysml")
	assert.NotEqual(t, id1, id2)

	path, ok := ft.Path(id1)
	require.True(t, ok)
	assert.Equal(t, "a.sysml", path)

	ft.Remove(id1)
	_, ok = ft.Path(id1)
	assert.False(t, ok)

	id3 := ft.Insert("a.sysml")
	assert.NotEqual(t, id1, id3, "FileIds are never reused")
}

func TestTextRangeContains(t *testing.T) {
	outer := NewRange(0, 10)
	inner := NewRange(2, 5)
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
	assert.True(t, outer.ContainsOffset(0))
	assert.False(t, outer.ContainsOffset(10))
}
