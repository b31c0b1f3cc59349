package syntax

import (
	"sysmlkit/pkg/ids"
	"sysmlkit/pkg/token"
)

// Node is a lightweight, cheap-to-clone view over a shared GreenNode. It
// additionally carries the node's absolute byte offset and a parent
// pointer, computed on construction, so callers can navigate upward and
// compute ranges without re-walking the tree from the root.
//
// Identity is by pointer into the shared green tree: two Node values
// wrapping the same GreenNode at the same offset are interchangeable.
type Node struct {
	green  *GreenNode
	offset uint32
	parent *Node
}

// NewRoot wraps a green tree's root in a Node view.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green, offset: 0, parent: nil}
}

// Kind returns the node's NodeKind.
func (n *Node) Kind() NodeKind { return n.green.Kind }

// Range returns the node's absolute byte range in the source file.
func (n *Node) Range() ids.TextRange {
	return ids.NewRange(n.offset, n.offset+n.green.Len)
}

// Parent returns the enclosing Node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Text reconstructs this node's exact source text.
func (n *Node) Text() string { return n.green.Text() }

// Element is either a *Node (interior) or a Token (leaf), yielded by
// ChildrenWithTokens in source order.
type Element struct {
	Node  *Node
	Token *token.Token
}

// IsNode reports whether this element is an interior node.
func (e Element) IsNode() bool { return e.Node != nil }

// ChildrenWithTokens returns every immediate child — nodes and tokens
// alike, trivia included — in source order with absolute ranges.
func (n *Node) ChildrenWithTokens() []Element {
	out := make([]Element, 0, len(n.green.Children))
	off := n.offset
	for _, c := range n.green.Children {
		switch v := c.(type) {
		case GreenToken:
			tk := token.Token{Kind: v.Kind, Range: ids.NewRange(off, off+uint32(len(v.Text))), Text: v.Text}
			out = append(out, Element{Token: &tk})
			off += uint32(len(v.Text))
		case *GreenNode:
			child := &Node{green: v, offset: off, parent: n}
			out = append(out, Element{Node: child})
			off += v.Len
		}
	}
	return out
}

// Children returns only the interior-node children, in source order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, el := range n.ChildrenWithTokens() {
		if el.IsNode() {
			out = append(out, el.Node)
		}
	}
	return out
}

// Tokens returns only the immediate token children (not tokens nested
// inside child nodes), in source order.
func (n *Node) Tokens() []token.Token {
	var out []token.Token
	for _, el := range n.ChildrenWithTokens() {
		if !el.IsNode() {
			out = append(out, *el.Token)
		}
	}
	return out
}

// NonTriviaTokens returns immediate token children that are not
// whitespace/comments.
func (n *Node) NonTriviaTokens() []token.Token {
	var out []token.Token
	for _, tk := range n.Tokens() {
		if !tk.IsTrivia() {
			out = append(out, tk)
		}
	}
	return out
}

// ChildOfKind returns the first immediate child node of the given kind.
func (n *Node) ChildOfKind(kind NodeKind) *Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// ChildrenOfKind returns all immediate child nodes of the given kind.
func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// FirstTokenOfKind returns the first immediate non-trivia token of one of
// the given kinds.
func (n *Node) FirstTokenOfKind(kinds ...token.Kind) (token.Token, bool) {
	for _, tk := range n.NonTriviaTokens() {
		for _, k := range kinds {
			if tk.Kind == k {
				return tk, true
			}
		}
	}
	return token.Token{}, false
}

// Walk visits n and every descendant node in pre-order (leaves excluded).
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// NodeAtOffset descends to the innermost node whose range contains off,
// preferring the last matching child at each level (so a zero-width
// boundary offset resolves to the following token's node, matching most
// editors' "what's under the cursor" convention).
func (n *Node) NodeAtOffset(off uint32) *Node {
	if !n.Range().ContainsOffset(off) && n.Range().End != off {
		return nil
	}
	best := n
	for _, c := range n.Children() {
		if c.Range().ContainsOffset(off) || c.Range().End == off && c.Range().Start <= off {
			if found := c.NodeAtOffset(off); found != nil {
				best = found
			}
		}
	}
	return best
}
