package syntax

import "sysmlkit/pkg/token"

// GreenElement is either a *GreenNode or a GreenToken: one child slot in an
// immutable green tree.
type GreenElement interface {
	length() uint32
}

// GreenToken is a leaf of the green tree: one lexer token, kind and text
// verbatim (trivia included — the tree is lossless).
type GreenToken struct {
	Kind token.Kind
	Text string
}

func (t GreenToken) length() uint32 { return uint32(len(t.Text)) }

// GreenNode is an immutable, shareable interior node of the green tree.
// Its Len is cached at construction so red-tree offset computation never
// re-walks children.
type GreenNode struct {
	Kind     NodeKind
	Children []GreenElement
	Len      uint32
}

func (n *GreenNode) length() uint32 { return n.Len }

// newGreenNode computes Len from children and returns an immutable node.
func newGreenNode(kind NodeKind, children []GreenElement) *GreenNode {
	var total uint32
	for _, c := range children {
		total += c.length()
	}
	return &GreenNode{Kind: kind, Children: children, Len: total}
}

// Text reconstructs this green node's exact source text by concatenating
// every leaf in order. Used by the losslessness invariant tests and by
// hover/hover-adjacent hir queries that want a node's raw spelling.
func (n *GreenNode) Text() string {
	var b []byte
	appendGreenText(&b, n)
	return string(b)
}

func appendGreenText(b *[]byte, el GreenElement) {
	switch v := el.(type) {
	case GreenToken:
		*b = append(*b, v.Text...)
	case *GreenNode:
		for _, c := range v.Children {
			appendGreenText(b, c)
		}
	}
}

// builder assembles a GreenNode tree bottom-up via a stack of in-progress
// child slices, mirroring the teacher's pattern of an explicit
// open/close-scoped construction (cf. rowan::GreenNodeBuilder).
type builder struct {
	stack [][]GreenElement
}

func newBuilder() *builder {
	return &builder{stack: [][]GreenElement{nil}}
}

func (b *builder) startNode() {
	b.stack = append(b.stack, nil)
}

func (b *builder) token(kind token.Kind, text string) {
	top := len(b.stack) - 1
	b.stack[top] = append(b.stack[top], GreenToken{Kind: kind, Text: text})
}

func (b *builder) finishNode(kind NodeKind) {
	top := len(b.stack) - 1
	children := b.stack[top]
	b.stack = b.stack[:top]
	node := newGreenNode(kind, children)
	parent := len(b.stack) - 1
	b.stack[parent] = append(b.stack[parent], node)
}

// checkpoint marks a position in the current node's children so a later
// call can retroactively wrap everything since the checkpoint in a new
// node — used to build an ErrorNode around already-emitted trivia/tokens
// without having to look ahead before opening it.
type checkpoint int

func (b *builder) checkpointHere() checkpoint {
	top := len(b.stack) - 1
	return checkpoint(len(b.stack[top]))
}

func (b *builder) startNodeAt(cp checkpoint) {
	top := len(b.stack) - 1
	tail := append([]GreenElement(nil), b.stack[top][cp:]...)
	b.stack[top] = b.stack[top][:cp]
	b.stack = append(b.stack, tail)
}

func (b *builder) finish() *GreenNode {
	if len(b.stack) != 1 {
		panic("syntax: builder finished with unbalanced start/finish calls")
	}
	children := b.stack[0]
	if len(children) == 1 {
		if n, ok := children[0].(*GreenNode); ok {
			return n
		}
	}
	return newGreenNode(SourceFile, children)
}
