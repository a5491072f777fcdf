package deb822

import (
	"errors"
	"slices"

	"github.com/yaklabco/deb822/pkg/cst"
)

// ErrEmptyParagraph reports an attempt to add a paragraph without fields.
var ErrEmptyParagraph = errors.New("paragraph has no fields")

// Edits are pure: each returns a handle into a new tree and leaves the tree
// the receiver belongs to untouched. Only the nodes between the edit and the
// root are rebuilt; everything else is shared.

// SetValue replaces the field's value. The key, the blanks around the colon,
// the continuation indent, the line terminators, an intentionally empty first
// line and a missing final terminator are all kept.
func (f Field) SetValue(value string) (Field, error) {
	const op = "set value"
	if err := f.check(); err != nil {
		return Field{}, structural(op, "", err)
	}

	l := f.layout()
	var around observed
	if p, ok := f.Paragraph(); ok {
		around = p.observe()
	}
	style := f.style.withDefaults()

	sep := style.Separator
	switch {
	case l.hasSep:
		sep = l.sep
	case around.hasSep:
		sep = around.sep
	}

	spec := renderSpec{
		head:       l.head,
		sep:        sep,
		indent:     firstNonEmpty(l.indent, around.indent, style.Indent),
		newline:    style.newlineFor(l.newline, around.newline, firstNewline(f.view.Tree().Root())),
		block:      l.block(),
		terminated: l.terminated(),
	}
	if l.block() {
		spec.trailing = l.trailing
	}

	// Comment lines between continuation lines are not part of the value;
	// they move out of the field and follow it.
	comments := f.comments()
	if len(comments) > 0 && !spec.terminated {
		spec.terminated = true
		comments[len(comments)-1] = withoutFinalNewline(comments[len(comments)-1].(*cst.Node))
	}
	elems := append([]cst.Element{cst.NewNode(cst.NodeField, spec.render(value)...)}, comments...)

	parent, err := cst.Replace(f.view, elems...)
	if err != nil {
		return Field{}, structural(op, f.Key(), err)
	}
	return f.at(parent, f.view.Index()), nil
}

// comments returns the comment lines inside the field.
func (f Field) comments() []cst.Element {
	var out []cst.Element
	for v := range f.view.All() {
		if v.IsNode(cst.NodeComment) {
			out = append(out, v.Element())
		}
	}
	return out
}

// Rename replaces the field's key, leaving the rest of the field as written.
func (f Field) Rename(newKey string) (Field, error) {
	const op = "rename"
	if err := f.check(); err != nil {
		return Field{}, structural(op, newKey, err)
	}
	if !ValidKey(newKey) {
		return Field{}, structural(op, newKey, ErrInvalidKey)
	}
	for v := range f.view.All() {
		if v.IsToken(cst.TokKey) {
			nv, err := cst.Splice(f.view, v.Index(), v.Index()+1, cst.NewToken(cst.TokKey, newKey))
			if err != nil {
				return Field{}, structural(op, newKey, err)
			}
			return Field{view: nv, style: f.style}, nil
		}
	}
	return Field{}, structural(op, newKey, ErrDetachedNode)
}

// Remove deletes the field and returns its paragraph in the new tree.
// Comment lines around the field stay.
func (f Field) Remove() (Paragraph, error) {
	if err := f.check(); err != nil {
		return Paragraph{}, structural("remove field", "", err)
	}
	p, ok := f.Paragraph()
	if !ok {
		return Paragraph{}, structural("remove field", f.Key(), ErrDetachedNode)
	}
	np, err := p.removeChild(f.view.Index())
	if err != nil {
		return Paragraph{}, structural("remove field", f.Key(), err)
	}
	return np, nil
}

// InsertField inserts a field so that it becomes the pos-th field, ahead of
// any comment lines directly above the field currently at pos. The new
// field copies the paragraph's separator, indent and line terminator.
func (p Paragraph) InsertField(pos int, key, value string) (Field, error) {
	const op = "insert field"
	if err := p.check(); err != nil {
		return Field{}, structural(op, key, err)
	}
	if !ValidKey(key) {
		return Field{}, structural(op, key, ErrInvalidKey)
	}

	var fieldIdx []int
	for f := range p.Fields() {
		fieldIdx = append(fieldIdx, f.view.Index())
	}
	if pos < 0 || pos > len(fieldIdx) {
		return Field{}, structural(op, key, ErrOutOfRange)
	}

	around := p.observe()
	style := p.style.withDefaults()
	sep := style.Separator
	if around.hasSep {
		sep = around.sep
	}
	nl := style.newlineFor(around.newline, firstNewline(p.view.Tree().Root()))
	spec := renderSpec{
		head: []cst.Element{
			cst.NewToken(cst.TokKey, key),
			cst.NewToken(cst.TokColon, ":"),
		},
		sep:        sep,
		indent:     firstNonEmpty(around.indent, style.Indent),
		newline:    nl,
		terminated: true,
	}

	n := p.view.NumChildren()
	at := n
	if pos < len(fieldIdx) {
		at = fieldIdx[pos]
		for at > 0 {
			prev, _ := p.view.Child(at - 1)
			if !prev.IsNode(cst.NodeComment) {
				break
			}
			at--
		}
	}

	start := at
	var elems []cst.Element
	if at == n && n > 0 {
		// The paragraph ends the document without a terminator: move the
		// missing terminator to the end of the new field.
		last, _ := p.view.Child(n - 1)
		if lastNode, ok := last.Node(); ok && !endsWithNewline(lastNode) {
			start = n - 1
			spec.terminated = false
			elems = append(elems, withFinalNewline(lastNode, nl))
		}
	}
	elems = append(elems, cst.NewNode(cst.NodeField, spec.render(value)...))

	nv, err := cst.Splice(p.view, start, at, elems...)
	if err != nil {
		return Field{}, structural(op, key, err)
	}
	return Paragraph{view: nv, style: p.style}.fieldAt(at), nil
}

// AppendField adds a field after the last one.
func (p Paragraph) AppendField(key, value string) (Field, error) {
	return p.InsertField(p.Len(), key, value)
}

// Set replaces the value of the first field named key, or appends a new
// field when there is none.
func (p Paragraph) Set(key, value string) (Field, error) {
	if f, ok := p.Field(key); ok {
		return f.SetValue(value)
	}
	return p.AppendField(key, value)
}

// Remove deletes every field named key. A paragraph without such a field is
// returned unchanged.
func (p Paragraph) Remove(key string) (Paragraph, error) {
	if err := p.check(); err != nil {
		return Paragraph{}, structural("remove field", key, err)
	}
	idx := make([]int, 0, 1)
	for _, f := range p.FieldsNamed(key) {
		idx = append(idx, f.view.Index())
	}
	slices.Reverse(idx)

	cur := p
	for _, i := range idx {
		next, err := cur.removeChild(i)
		if err != nil {
			return Paragraph{}, structural("remove field", key, err)
		}
		cur = next
	}
	return cur, nil
}

// Rename renames the first field named oldKey. It reports false when there
// is no such field.
func (p Paragraph) Rename(oldKey, newKey string) (Paragraph, bool, error) {
	f, ok := p.Field(oldKey)
	if !ok {
		return p, false, nil
	}
	nf, err := f.Rename(newKey)
	if err != nil {
		return Paragraph{}, false, err
	}
	np, _ := nf.Paragraph()
	return np, true, nil
}

// Delete removes the paragraph and the blank lines separating it from its
// neighbours, returning the new tree.
func (p Paragraph) Delete() (*cst.Tree, error) {
	if err := p.check(); err != nil {
		return nil, structural("remove paragraph", "", err)
	}
	tree, err := p.delete()
	if err != nil {
		return nil, structural("remove paragraph", "", err)
	}
	return tree, nil
}

// Move relocates the paragraph so that it becomes the pos-th paragraph.
func (p Paragraph) Move(pos int) (Paragraph, error) {
	const op = "move paragraph"
	if err := p.check(); err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	node, _ := p.view.Node()
	nl := p.style.newlineFor(firstNewline(p.view), firstNewline(p.view.Tree().Root()))
	tree, err := p.delete()
	if err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	np, err := insertParagraphNode(tree.Root(), pos, node, nl, p.style)
	if err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	return np, nil
}

// InsertParagraph inserts a paragraph built from pairs so that it becomes
// the pos-th paragraph of tree.
func InsertParagraph(tree *cst.Tree, pos int, pairs ...Pair) (Paragraph, error) {
	return insertParagraph(tree, pos, DefaultStyle(), pairs)
}

// InsertParagraphFrom inserts a copy of src so that it becomes the pos-th
// paragraph of tree. The copy shares src's nodes.
func InsertParagraphFrom(tree *cst.Tree, pos int, src Paragraph) (Paragraph, error) {
	return insertParagraphFrom(tree, pos, DefaultStyle(), src)
}

func insertParagraph(tree *cst.Tree, pos int, style Style, pairs []Pair) (Paragraph, error) {
	const op = "insert paragraph"
	if len(pairs) == 0 {
		return Paragraph{}, structural(op, "", ErrEmptyParagraph)
	}
	style.Newline = style.newlineFor(firstNewline(tree.Root()))

	p := NewParagraph().WithStyle(style)
	for _, pair := range pairs {
		f, err := p.AppendField(pair.Key, pair.Value)
		if err != nil {
			return Paragraph{}, err
		}
		p, _ = f.Paragraph()
	}
	node, _ := p.view.Node()
	np, err := insertParagraphNode(tree.Root(), pos, node, style.Newline, style)
	if err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	return np, nil
}

func insertParagraphFrom(tree *cst.Tree, pos int, style Style, src Paragraph) (Paragraph, error) {
	const op = "insert paragraph"
	if err := src.check(); err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	if src.Len() == 0 {
		return Paragraph{}, structural(op, "", ErrEmptyParagraph)
	}
	node, _ := src.view.Node()
	nl := style.newlineFor(firstNewline(tree.Root()), firstNewline(src.view))
	np, err := insertParagraphNode(tree.Root(), pos, node, nl, style)
	if err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	return np, nil
}

// insertParagraphNode places node so that it becomes the pos-th paragraph
// under root, adding the blank line that separates it from its neighbours.
func insertParagraphNode(root cst.View, pos int, node *cst.Node, nl string, style Style) (Paragraph, error) {
	var paraIdx []int
	for v := range root.All() {
		if v.IsNode(cst.NodeParagraph) {
			paraIdx = append(paraIdx, v.Index())
		}
	}
	if pos < 0 || pos > len(paraIdx) {
		return Paragraph{}, ErrOutOfRange
	}
	blank := cst.NewToken(cst.TokNewline, nl)

	if pos < len(paraIdx) {
		at := paraIdx[pos]
		for at > 0 {
			prev, _ := root.Child(at - 1)
			if !prev.IsNode(cst.NodeComment) {
				break
			}
			at--
		}
		nv, err := cst.Splice(root, at, at, withFinalNewline(node, nl), blank)
		if err != nil {
			return Paragraph{}, err
		}
		v, _ := nv.Child(at)
		return Paragraph{view: v, style: style}, nil
	}

	n := root.NumChildren()
	if n == 0 {
		nv, err := cst.Splice(root, 0, 0, node)
		if err != nil {
			return Paragraph{}, err
		}
		v, _ := nv.Child(0)
		return Paragraph{view: v, style: style}, nil
	}

	start := n
	var elems []cst.Element
	last, _ := root.Child(n - 1)
	unterminated := !endsWithNewline(last.Element())
	if unterminated {
		if lastNode, ok := last.Node(); ok {
			start = n - 1
			elems = append(elems, withFinalNewline(lastNode, nl))
		} else {
			elems = append(elems, cst.NewToken(cst.TokNewline, nl))
		}
	}
	if last.IsNode(cst.NodeParagraph) {
		elems = append(elems, blank)
	}
	if unterminated {
		node = withoutFinalNewline(node)
	} else {
		node = withFinalNewline(node, nl)
	}
	elems = append(elems, node)

	nv, err := cst.Splice(root, start, n, elems...)
	if err != nil {
		return Paragraph{}, err
	}
	v, _ := nv.Child(start + len(elems) - 1)
	return Paragraph{view: v, style: style}, nil
}

// delete removes p together with the blank lines after it, or before it when
// nothing but blank lines follows.
func (p Paragraph) delete() (*cst.Tree, error) {
	root, ok := p.view.Parent()
	if !ok {
		return nil, ErrDetachedNode
	}
	i, n := p.view.Index(), root.NumChildren()
	blankAt := func(j int) bool {
		v, _ := root.Child(j)
		return isBlankToken(v)
	}

	start, end := i, i+1
	for end < n && blankAt(end) {
		end++
	}
	var elems []cst.Element
	if end == n {
		end = i + 1
		for start > 0 && blankAt(start-1) {
			start--
		}
		node, _ := p.view.Node()
		if !endsWithNewline(node) && start > 0 {
			// Keep the document unterminated.
			prev, _ := root.Child(start - 1)
			if prevNode, ok := prev.Node(); ok {
				start--
				elems = append(elems, withoutFinalNewline(prevNode))
			}
		}
	}

	nv, err := cst.Splice(root, start, end, elems...)
	if err != nil {
		return nil, err
	}
	return nv.Tree(), nil
}

// removeChild deletes the child at index i, keeping a missing final
// terminator missing.
func (p Paragraph) removeChild(i int) (Paragraph, error) {
	n := p.view.NumChildren()
	child, ok := p.view.Child(i)
	if !ok {
		return Paragraph{}, ErrDetachedNode
	}
	start := i
	var elems []cst.Element
	if i == n-1 && i > 0 && !endsWithNewline(child.Element()) {
		prev, _ := p.view.Child(i - 1)
		if prevNode, ok := prev.Node(); ok {
			start = i - 1
			elems = append(elems, withoutFinalNewline(prevNode))
		}
	}
	nv, err := cst.Splice(p.view, start, i+1, elems...)
	if err != nil {
		return Paragraph{}, err
	}
	return Paragraph{view: nv, style: p.style}, nil
}

func (p Paragraph) fieldAt(childIndex int) Field {
	v, _ := p.view.Child(childIndex)
	return Field{view: v, style: p.style}
}

func (f Field) at(parent cst.View, childIndex int) Field {
	v, _ := parent.Child(childIndex)
	return Field{view: v, style: f.style}
}

func (f Field) check() error {
	if f.view.IsZero() || !f.view.IsNode(cst.NodeField) {
		return ErrDetachedNode
	}
	return nil
}

func (p Paragraph) check() error {
	if p.view.IsZero() || !p.view.IsNode(cst.NodeParagraph) {
		return ErrDetachedNode
	}
	return nil
}
