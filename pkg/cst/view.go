package cst

import (
	"iter"
	"slices"
)

// View is a cursor over one element of a Tree.
//
// A view knows its tree, its parent view, its index among the parent's
// children and its byte offset in the document, so parent, sibling and
// range queries are constant time. Views are values; they never modify the
// tree and stay valid for as long as the tree they were taken from.
type View struct {
	tree   *Tree
	parent *View
	elem   Element
	index  int
	offset int
}

// IsZero reports whether v is the zero View.
func (v View) IsZero() bool { return v.tree == nil }

// Tree returns the tree generation v belongs to.
func (v View) Tree() *Tree { return v.tree }

// Element returns the underlying token or node.
func (v View) Element() Element { return v.elem }

// Node returns the underlying node, if v is a node.
func (v View) Node() (*Node, bool) { return AsNode(v.elem) }

// Token returns the underlying token, if v is a token.
func (v View) Token() (*Token, bool) { return AsToken(v.elem) }

// IsNode reports whether v is a node of the given kind.
func (v View) IsNode(kind NodeKind) bool { return IsNodeKind(v.elem, kind) }

// IsToken reports whether v is a token of the given kind.
func (v View) IsToken(kind TokenKind) bool { return IsTokenKind(v.elem, kind) }

// Index returns v's position among its parent's children. The root has index 0.
func (v View) Index() int { return v.index }

// Offset returns the byte offset where v starts.
func (v View) Offset() int { return v.offset }

// Len returns the length of v's text in bytes.
func (v View) Len() int {
	if v.elem == nil {
		return 0
	}
	return v.elem.Len()
}

// Range returns the half-open byte range [start, end) covered by v.
func (v View) Range() (int, int) { return v.offset, v.offset + v.Len() }

// Text returns v's source text.
func (v View) Text() string {
	if v.elem == nil {
		return ""
	}
	return v.elem.Text()
}

// Parent returns the parent view. The root has no parent.
func (v View) Parent() (View, bool) {
	if v.parent == nil {
		return View{}, false
	}
	return *v.parent, true
}

// NumChildren returns the number of children of a node view, zero for tokens.
func (v View) NumChildren() int {
	if n, ok := v.Node(); ok {
		return n.NumChildren()
	}
	return 0
}

// Child returns the i-th child of a node view.
func (v View) Child(i int) (View, bool) {
	n, ok := v.Node()
	if !ok || i < 0 || i >= n.NumChildren() {
		return View{}, false
	}
	offset := v.offset
	for j := range i {
		offset += n.children[j].Len()
	}
	return v.child(n, i, offset), true
}

func (v View) child(n *Node, i, offset int) View {
	parent := v
	return View{
		tree:   v.tree,
		parent: &parent,
		elem:   n.children[i],
		index:  i,
		offset: offset,
	}
}

// All yields the children of a node view in order. The sequence is restartable.
func (v View) All() iter.Seq[View] {
	return func(yield func(View) bool) {
		n, ok := v.Node()
		if !ok {
			return
		}
		offset := v.offset
		for i, c := range n.children {
			if !yield(v.child(n, i, offset)) {
				return
			}
			offset += c.Len()
		}
	}
}

// Children returns the children of a node view.
func (v View) Children() []View {
	return slices.Collect(v.All())
}

// NextSibling returns the element following v in its parent.
func (v View) NextSibling() (View, bool) {
	if v.parent == nil {
		return View{}, false
	}
	n, _ := v.parent.Node()
	i := v.index + 1
	if i >= n.NumChildren() {
		return View{}, false
	}
	return v.parent.child(n, i, v.offset+v.Len()), true
}

// PrevSibling returns the element preceding v in its parent.
func (v View) PrevSibling() (View, bool) {
	if v.parent == nil || v.index == 0 {
		return View{}, false
	}
	n, _ := v.parent.Node()
	i := v.index - 1
	return v.parent.child(n, i, v.offset-n.children[i].Len()), true
}

// Path returns the child indexes leading from the root to v.
func (v View) Path() []int {
	var path []int
	for cur := &v; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.index)
	}
	slices.Reverse(path)
	return path
}

// Equal reports whether v and w denote the same element of the same tree
// generation at the same offset.
func (v View) Equal(w View) bool {
	return v.tree == w.tree && v.elem == w.elem && v.offset == w.offset && v.index == w.index
}

// Attached reports whether v still resolves to its element in its own tree.
func (v View) Attached() bool {
	if v.tree == nil {
		return false
	}
	got, err := v.tree.ViewAt(v.Path()...)
	return err == nil && got.elem == v.elem
}
