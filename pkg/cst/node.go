// Package cst provides the concrete syntax tree for deb822 documents.
//
// The tree is lossless and immutable:
//   - Tokens carry the exact source text; nodes carry none of their own.
//   - A node's text is the concatenation of its children's text.
//   - Nodes never point at their parents, so a subtree can be shared by any
//     number of trees. Edits build new trees that reuse untouched subtrees.
//
// Parent links, offsets and sibling navigation live in View, a cursor that
// is derived from a Tree and never stored inside it.
package cst

import (
	"slices"
	"strings"
)

// Element is either a *Token or a *Node.
type Element interface {
	// Len returns the length of the element's text in bytes.
	Len() int

	// Text returns the element's source text.
	Text() string

	writeText(sb *strings.Builder)
	isElement()
}

// Token is a leaf of the tree: a kind plus its exact source text.
type Token struct {
	kind TokenKind
	text string
}

// NewToken creates a token.
func NewToken(kind TokenKind, text string) *Token {
	return &Token{kind: kind, text: text}
}

// Kind returns the token kind.
func (t *Token) Kind() TokenKind { return t.kind }

// Text returns the token's source text.
func (t *Token) Text() string { return t.text }

// Len returns the length of the token text in bytes.
func (t *Token) Len() int { return len(t.text) }

func (t *Token) writeText(sb *strings.Builder) { sb.WriteString(t.text) }
func (t *Token) isElement()                    {}

// Node is an interior element. Its children are fixed at construction.
type Node struct {
	kind     NodeKind
	children []Element
	width    int
}

// NewNode creates a node owning a copy of children.
func NewNode(kind NodeKind, children ...Element) *Node {
	width := 0
	for _, c := range children {
		width += c.Len()
	}
	return &Node{
		kind:     kind,
		children: slices.Clone(children),
		width:    width,
	}
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Len returns the length of the node text in bytes.
func (n *Node) Len() int { return n.width }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) Element { return n.children[i] }

// Children returns a copy of the child list.
func (n *Node) Children() []Element { return slices.Clone(n.children) }

// Text reconstructs the node text from its tokens.
func (n *Node) Text() string {
	var sb strings.Builder
	sb.Grow(n.width)
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		c.writeText(sb)
	}
}

func (n *Node) isElement() {}

// Tokens returns every token below n in document order.
func (n *Node) Tokens() []*Token {
	var out []*Token
	var collect func(*Node)
	collect = func(node *Node) {
		for _, c := range node.children {
			switch e := c.(type) {
			case *Token:
				out = append(out, e)
			case *Node:
				collect(e)
			}
		}
	}
	collect(n)
	return out
}

// replace returns a copy of n whose children [start, end) are replaced by elems.
// Children outside the range are shared with n.
func (n *Node) replace(start, end int, elems []Element) *Node {
	children := make([]Element, 0, len(n.children)-(end-start)+len(elems))
	children = append(children, n.children[:start]...)
	children = append(children, elems...)
	children = append(children, n.children[end:]...)
	return NewNode(n.kind, children...)
}

// AsNode returns e as a *Node.
func AsNode(e Element) (*Node, bool) {
	n, ok := e.(*Node)
	return n, ok
}

// AsToken returns e as a *Token.
func AsToken(e Element) (*Token, bool) {
	t, ok := e.(*Token)
	return t, ok
}

// IsNodeKind reports whether e is a node of the given kind.
func IsNodeKind(e Element, kind NodeKind) bool {
	n, ok := e.(*Node)
	return ok && n.kind == kind
}

// IsTokenKind reports whether e is a token of the given kind.
func IsTokenKind(e Element, kind TokenKind) bool {
	t, ok := e.(*Token)
	return ok && t.kind == kind
}

// ValidateTokens reports whether tokens reproduce text exactly and no token is empty.
func ValidateTokens(tokens []*Token, text string) bool {
	pos := 0
	for _, tok := range tokens {
		if tok.Len() == 0 {
			return false
		}
		end := pos + tok.Len()
		if end > len(text) || text[pos:end] != tok.text {
			return false
		}
		pos = end
	}
	return pos == len(text)
}
