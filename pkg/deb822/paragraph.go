package deb822

import (
	"iter"
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
)

// Pair is a key and its folded value.
type Pair struct {
	Key   string
	Value string
}

// Paragraph is a handle on one paragraph of a document. Like Field, it is a
// typed view into a single tree generation.
type Paragraph struct {
	view  cst.View
	style Style
}

// NewParagraph returns an empty paragraph in a tree of its own. Fields added
// to it use the default style.
func NewParagraph() Paragraph {
	tree := cst.NewTree(cst.NewNode(cst.NodeDocument, cst.NewNode(cst.NodeParagraph)))
	v, _ := tree.Root().Child(0)
	return Paragraph{view: v, style: DefaultStyle()}
}

// View returns the underlying syntax view.
func (p Paragraph) View() cst.View { return p.view }

// Text returns the paragraph's source text.
func (p Paragraph) Text() string { return p.view.Text() }

// WithStyle returns p with a different style for synthesized text.
func (p Paragraph) WithStyle(s Style) Paragraph {
	p.style = s
	return p
}

// Fields yields the paragraph's fields in document order.
// The sequence is lazy and may be iterated more than once.
func (p Paragraph) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for v := range p.view.All() {
			if !v.IsNode(cst.NodeField) {
				continue
			}
			if !yield(Field{view: v, style: p.style}) {
				return
			}
		}
	}
}

// Field returns the first field whose key matches key case-insensitively.
func (p Paragraph) Field(key string) (Field, bool) {
	for f := range p.Fields() {
		if f.Is(key) {
			return f, true
		}
	}
	return Field{}, false
}

// FieldsNamed returns every field whose key matches key, in order.
func (p Paragraph) FieldsNamed(key string) []Field {
	var out []Field
	for f := range p.Fields() {
		if f.Is(key) {
			out = append(out, f)
		}
	}
	return out
}

// FieldAt returns the i-th field.
func (p Paragraph) FieldAt(i int) (Field, bool) {
	n := 0
	for f := range p.Fields() {
		if n == i {
			return f, true
		}
		n++
	}
	return Field{}, false
}

// Get returns the folded value of the first field named key.
func (p Paragraph) Get(key string) (string, bool) {
	f, ok := p.Field(key)
	if !ok {
		return "", false
	}
	return f.Value(), true
}

// GetAll returns the folded values of every field named key.
func (p Paragraph) GetAll(key string) []string {
	var out []string
	for _, f := range p.FieldsNamed(key) {
		out = append(out, f.Value())
	}
	return out
}

// ContainsKey reports whether a field named key exists.
func (p Paragraph) ContainsKey(key string) bool {
	_, ok := p.Field(key)
	return ok
}

// Keys returns the keys of all fields, duplicates included, as written.
func (p Paragraph) Keys() []string {
	var out []string
	for f := range p.Fields() {
		out = append(out, f.Key())
	}
	return out
}

// Items yields every key and folded value in document order.
func (p Paragraph) Items() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for f := range p.Fields() {
			if !yield(f.Key(), f.Value()) {
				return
			}
		}
	}
}

// Pairs returns every key and folded value in document order.
func (p Paragraph) Pairs() []Pair {
	var out []Pair
	for k, v := range p.Items() {
		out = append(out, Pair{Key: k, Value: v})
	}
	return out
}

// Len returns the number of fields.
func (p Paragraph) Len() int {
	n := 0
	for range p.Fields() {
		n++
	}
	return n
}

// Map returns the fields as a map keyed by the casing of each key's first
// occurrence. Later duplicates, in any casing, are dropped. The map is a
// convenience snapshot: it loses order, duplicates and formatting, and
// writing it back is not a supported way to edit the paragraph.
func (p Paragraph) Map() map[string]string {
	out := make(map[string]string)
	seen := make(map[string]bool)
	for k, v := range p.Items() {
		folded := strings.ToLower(k)
		if seen[folded] {
			continue
		}
		seen[folded] = true
		out[k] = v
	}
	return out
}

// Index returns p's position among the document's paragraphs.
func (p Paragraph) Index() int {
	i := 0
	for v, ok := p.view.PrevSibling(); ok; v, ok = v.PrevSibling() {
		if v.IsNode(cst.NodeParagraph) {
			i++
		}
	}
	return i
}
