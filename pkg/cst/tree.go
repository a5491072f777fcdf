package cst

import (
	"errors"
	"fmt"
	"io"
)

// Errors returned by tree navigation and splicing.
var (
	// ErrDetachedNode reports a view or path that does not resolve in its tree.
	ErrDetachedNode = errors.New("detached node")

	// ErrNoParent reports an attempt to replace the root as if it were a child.
	ErrNoParent = errors.New("node has no parent")

	// ErrNotNode reports a token view used where an interior node is required.
	ErrNotNode = errors.New("element is not a node")

	// ErrRange reports a child range outside a node's children.
	ErrRange = errors.New("child range out of bounds")
)

// Tree is an immutable syntax tree rooted at a Document node.
// A Tree is safe for concurrent use by multiple readers.
type Tree struct {
	root *Node
}

// NewTree wraps root in a Tree. Root should be a NodeDocument node.
func NewTree(root *Node) *Tree {
	if root == nil {
		root = NewNode(NodeDocument)
	}
	return &Tree{root: root}
}

// RootNode returns the root node.
func (t *Tree) RootNode() *Node { return t.root }

// Root returns a view of the root node.
func (t *Tree) Root() View {
	return View{tree: t, elem: t.root}
}

// Len returns the length of the document in bytes.
func (t *Tree) Len() int { return t.root.Len() }

// Text reconstructs the full document text.
func (t *Tree) Text() string { return t.root.Text() }

// String implements fmt.Stringer.
func (t *Tree) String() string { return t.Text() }

// WriteTo writes the document text to w.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Text())
	return int64(n), err
}

// ViewAt resolves a child-index path from the root, as returned by View.Path.
func (t *Tree) ViewAt(path ...int) (View, error) {
	v := t.Root()
	for depth, idx := range path {
		child, ok := v.Child(idx)
		if !ok {
			return View{}, fmt.Errorf("path %v at depth %d: %w", path, depth, ErrDetachedNode)
		}
		v = child
	}
	return v, nil
}
