// Package deb822 reads and edits Debian control-style documents without
// disturbing the bytes it does not touch.
//
// A Document owns the current generation of a syntax tree. Paragraph and
// Field are handles into one generation: edits made through them return new
// handles into a new tree, and the Document edit methods commit that tree as
// the next generation. Handles from an older generation are rejected with
// ErrStaleView.
//
// A Document is not safe for concurrent mutation. Trees and handles are
// immutable and may be shared freely between goroutines.
package deb822

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
	"github.com/yaklabco/deb822/pkg/parser"
)

// Document is a parsed deb822 document.
type Document struct {
	tree  *cst.Tree
	style Style
}

// Parse parses text. It never fails: unparseable lines are kept as error
// nodes and reported by Errors.
func Parse(text string) *Document {
	return FromTree(parser.Parse(text))
}

// ParseStrict parses text and returns a *ParseError if any line could not be
// parsed. The document is returned either way.
func ParseStrict(text string) (*Document, error) {
	doc := Parse(text)
	if errs := doc.Errors(); len(errs) > 0 {
		return doc, &ParseError{Errors: errs}
	}
	return doc, nil
}

// Read parses everything r yields.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Parse(string(data)), nil
}

// New returns an empty document.
func New() *Document {
	return FromTree(cst.NewTree(nil))
}

// FromTree wraps an existing tree.
func FromTree(tree *cst.Tree) *Document {
	return &Document{tree: tree, style: DefaultStyle()}
}

// Tree returns the current generation.
func (d *Document) Tree() *cst.Tree { return d.tree }

// SetTree replaces the current generation, typically with a tree produced by
// the pure edit methods of Paragraph and Field. Handles into the previous
// generation become stale.
func (d *Document) SetTree(tree *cst.Tree) { d.tree = tree }

// Style returns the style used for synthesized text.
func (d *Document) Style() Style { return d.style }

// SetStyle sets the style used for synthesized text.
func (d *Document) SetStyle(s Style) { d.style = s }

// String returns the document text.
func (d *Document) String() string { return d.tree.Text() }

// WriteTo writes the document text to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) { return d.tree.WriteTo(w) }

// Paragraphs yields the paragraphs of the current generation in order.
// The sequence is lazy and restartable; each iteration reads the generation
// current when it starts.
func (d *Document) Paragraphs() iter.Seq[Paragraph] {
	return func(yield func(Paragraph) bool) {
		for v := range d.tree.Root().All() {
			if !v.IsNode(cst.NodeParagraph) {
				continue
			}
			if !yield(Paragraph{view: v, style: d.style}) {
				return
			}
		}
	}
}

// Paragraph returns the i-th paragraph.
func (d *Document) Paragraph(i int) (Paragraph, bool) {
	n := 0
	for p := range d.Paragraphs() {
		if n == i {
			return p, true
		}
		n++
	}
	return Paragraph{}, false
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	n := 0
	for range d.Paragraphs() {
		n++
	}
	return n
}

// Errors lists the lines that could not be parsed, in document order.
func (d *Document) Errors() []SyntaxError {
	nodes := cst.FindNodes(d.tree.Root(), cst.NodeError)
	if len(nodes) == 0 {
		return nil
	}
	lines := cst.NewLineIndex(d.tree.Text())
	out := make([]SyntaxError, 0, len(nodes))
	for _, v := range nodes {
		line, col := lines.Position(v.Offset())
		msg := "expected a field, comment or blank line"
		if first, ok := v.Child(0); ok && first.IsToken(cst.TokIndent) {
			msg = "continuation line outside a field"
		}
		out = append(out, SyntaxError{
			Offset:  v.Offset(),
			Line:    line,
			Column:  col,
			Text:    strings.TrimRight(v.Text(), "\r\n"),
			Message: msg,
		})
	}
	return out
}

// owns reports ErrStaleView for a handle from another generation.
func (d *Document) owns(op, key string, v cst.View) error {
	if v.IsZero() {
		return structural(op, key, ErrDetachedNode)
	}
	if v.Tree() != d.tree {
		return structural(op, key, ErrStaleView)
	}
	return nil
}

// SetValue replaces a field's value. See Field.SetValue.
func (d *Document) SetValue(f Field, value string) (Field, error) {
	if err := d.owns("set value", f.Key(), f.view); err != nil {
		return Field{}, err
	}
	f.style = d.style
	nf, err := f.SetValue(value)
	if err != nil {
		return Field{}, err
	}
	d.tree = nf.view.Tree()
	return nf, nil
}

// RenameKey renames a field. See Field.Rename.
func (d *Document) RenameKey(f Field, newKey string) (Field, error) {
	if err := d.owns("rename", newKey, f.view); err != nil {
		return Field{}, err
	}
	nf, err := f.Rename(newKey)
	if err != nil {
		return Field{}, err
	}
	d.tree = nf.view.Tree()
	return nf, nil
}

// RemoveField deletes a field. See Field.Remove.
func (d *Document) RemoveField(f Field) (Paragraph, error) {
	if err := d.owns("remove field", f.Key(), f.view); err != nil {
		return Paragraph{}, err
	}
	np, err := f.Remove()
	if err != nil {
		return Paragraph{}, err
	}
	d.tree = np.view.Tree()
	return np, nil
}

// InsertField inserts a field into a paragraph. See Paragraph.InsertField.
func (d *Document) InsertField(p Paragraph, pos int, key, value string) (Field, error) {
	if err := d.owns("insert field", key, p.view); err != nil {
		return Field{}, err
	}
	nf, err := p.WithStyle(d.style).InsertField(pos, key, value)
	if err != nil {
		return Field{}, err
	}
	d.tree = nf.view.Tree()
	return nf, nil
}

// AppendField adds a field at the end of a paragraph.
func (d *Document) AppendField(p Paragraph, key, value string) (Field, error) {
	return d.InsertField(p, p.Len(), key, value)
}

// Set replaces or appends a field. See Paragraph.Set.
func (d *Document) Set(p Paragraph, key, value string) (Field, error) {
	if err := d.owns("set", key, p.view); err != nil {
		return Field{}, err
	}
	nf, err := p.WithStyle(d.style).Set(key, value)
	if err != nil {
		return Field{}, err
	}
	d.tree = nf.view.Tree()
	return nf, nil
}

// RemoveKey deletes every field named key from a paragraph.
func (d *Document) RemoveKey(p Paragraph, key string) (Paragraph, error) {
	if err := d.owns("remove field", key, p.view); err != nil {
		return Paragraph{}, err
	}
	np, err := p.WithStyle(d.style).Remove(key)
	if err != nil {
		return Paragraph{}, err
	}
	d.tree = np.view.Tree()
	return np, nil
}

// InsertParagraph inserts a paragraph built from pairs so that it becomes
// the pos-th paragraph.
func (d *Document) InsertParagraph(pos int, pairs ...Pair) (Paragraph, error) {
	np, err := insertParagraph(d.tree, pos, d.style, pairs)
	if err != nil {
		return Paragraph{}, err
	}
	d.tree = np.view.Tree()
	return np, nil
}

// AppendParagraph adds a paragraph built from pairs after the last one.
func (d *Document) AppendParagraph(pairs ...Pair) (Paragraph, error) {
	return d.InsertParagraph(d.Len(), pairs...)
}

// InsertParagraphFrom inserts a copy of src, which may belong to any tree,
// so that it becomes the pos-th paragraph.
func (d *Document) InsertParagraphFrom(pos int, src Paragraph) (Paragraph, error) {
	np, err := insertParagraphFrom(d.tree, pos, d.style, src)
	if err != nil {
		return Paragraph{}, err
	}
	d.tree = np.view.Tree()
	return np, nil
}

// RemoveParagraph deletes a paragraph. See Paragraph.Delete.
func (d *Document) RemoveParagraph(p Paragraph) error {
	if err := d.owns("remove paragraph", "", p.view); err != nil {
		return err
	}
	tree, err := p.Delete()
	if err != nil {
		return err
	}
	d.tree = tree
	return nil
}

// MoveParagraph relocates a paragraph. See Paragraph.Move.
func (d *Document) MoveParagraph(p Paragraph, pos int) (Paragraph, error) {
	if err := d.owns("move paragraph", "", p.view); err != nil {
		return Paragraph{}, err
	}
	np, err := p.WithStyle(d.style).Move(pos)
	if err != nil {
		return Paragraph{}, err
	}
	d.tree = np.view.Tree()
	return np, nil
}
