package cst

import "fmt"

// Splice replaces children [start, end) of the node at v with elems and
// returns a view of the rebuilt node in a new tree.
//
// Only the nodes on the path from v to the root are copied; every other
// subtree is shared with v's tree by pointer. The original tree is unchanged.
func Splice(v View, start, end int, elems ...Element) (View, error) {
	if v.IsZero() {
		return View{}, ErrDetachedNode
	}
	n, ok := v.Node()
	if !ok {
		return View{}, ErrNotNode
	}
	if start < 0 || end < start || end > n.NumChildren() {
		return View{}, fmt.Errorf("splice [%d, %d) of %d children: %w", start, end, n.NumChildren(), ErrRange)
	}
	for _, e := range elems {
		if e == nil {
			return View{}, fmt.Errorf("splice: nil element: %w", ErrDetachedNode)
		}
	}

	path := v.Path()
	tree := NewTree(rebuild(v, n.replace(start, end, elems)))
	return tree.ViewAt(path...)
}

// Replace substitutes elems for v in its parent and returns a view of the
// rebuilt parent in a new tree. Passing no elems removes v.
func Replace(v View, elems ...Element) (View, error) {
	if v.IsZero() {
		return View{}, ErrDetachedNode
	}
	parent, ok := v.Parent()
	if !ok {
		return View{}, ErrNoParent
	}
	return Splice(parent, v.index, v.index+1, elems...)
}

// rebuild copies the ancestors of v so that replacement takes v's place,
// returning the new root.
func rebuild(v View, replacement *Node) *Node {
	cur := replacement
	for at := v; at.parent != nil; at = *at.parent {
		pn, _ := at.parent.Node()
		cur = pn.replace(at.index, at.index+1, []Element{cur})
	}
	return cur
}
