package deb822

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
)

// Indentation is the continuation indent written by WrapAndSort: a number
// of spaces, or FieldNameIndent.
type Indentation int

// FieldNameIndent indents continuation lines by the length of the field name.
const FieldNameIndent Indentation = -1

func (n Indentation) text(key string) string {
	switch {
	case n == FieldNameIndent && key != "":
		return strings.Repeat(" ", len(key))
	case n <= 0:
		return " "
	default:
		return strings.Repeat(" ", int(n))
	}
}

// WrapOptions controls WrapAndSort.
type WrapOptions struct {
	// Indent is the continuation indent. Zero means one space.
	Indent Indentation

	// ImmediateEmptyLine starts every multi-line value on the line after
	// the key.
	ImmediateEmptyLine bool

	// OneLinerWidth keeps the separator of a single-line field as written
	// when the whole line fits in this many bytes. Zero disables.
	OneLinerWidth int

	// SortFields orders the fields of each paragraph. Nil keeps their order.
	SortFields func(a, b Field) int

	// SortParagraphs orders the paragraphs of a document. Nil keeps their
	// order.
	SortParagraphs func(a, b Paragraph) int

	// FormatValue, when set, receives each folded value and returns the
	// value to write instead.
	FormatValue func(key, value string) string
}

// FieldOrder returns a SortFields comparator that puts the named keys first,
// in the order given. Other fields follow in their original order. Keys
// match case-insensitively.
func FieldOrder(keys ...string) func(a, b Field) int {
	rank := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, ok := rank[strings.ToLower(k)]; !ok {
			rank[strings.ToLower(k)] = i
		}
	}
	of := func(f Field) int {
		if r, ok := rank[strings.ToLower(f.Key())]; ok {
			return r
		}
		return len(keys)
	}
	return func(a, b Field) int { return cmp.Compare(of(a), of(b)) }
}

// ByFieldValue returns a SortParagraphs comparator ordering paragraphs by
// the value of key. Paragraphs without the key come first.
func ByFieldValue(key string) func(a, b Paragraph) int {
	return func(a, b Paragraph) int {
		va, okA := a.Get(key)
		vb, okB := b.Get(key)
		if okA != okB {
			if okA {
				return 1
			}
			return -1
		}
		return strings.Compare(va, vb)
	}
}

// WrapAndSort rewrites every field of the paragraph in canonical layout and
// optionally sorts them. Comment and error lines travel with the field that
// follows them; those after the last field stay at the end. Comment lines
// inside a field move in front of it.
//
// Each field is written as "Key: value" with continuation lines indented by
// opts.Indent. Indentation beyond the shallowest continuation line is kept,
// so verbatim description lines keep their shape. Trailing blanks and blanks
// before the colon are dropped.
func (p Paragraph) WrapAndSort(opts WrapOptions) (Paragraph, error) {
	const op = "wrap and sort"
	if err := p.check(); err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	nl := p.style.newlineFor(firstNewline(p.view), firstNewline(p.view.Tree().Root()))
	node := p.wrapped(opts, nl)
	if node.Text() == p.view.Text() {
		return p, nil
	}
	parent, err := cst.Replace(p.view, node)
	if err != nil {
		return Paragraph{}, structural(op, "", err)
	}
	v, _ := parent.Child(p.view.Index())
	return Paragraph{view: v, style: p.style}, nil
}

// WrapAndSort wraps and sorts every paragraph, then sorts the paragraphs
// when opts.SortParagraphs is set. Comment and error lines between
// paragraphs travel with the paragraph that follows them. Paragraphs are
// separated by exactly one blank line. It reports whether the text changed.
func (d *Document) WrapAndSort(opts WrapOptions) (bool, error) {
	root := d.tree.Root()
	nl := d.style.newlineFor(firstNewline(root))

	type group struct {
		pre  []cst.Element
		para Paragraph
	}
	var groups []group
	var pending []cst.Element
	for v := range root.All() {
		n, ok := v.Node()
		switch {
		case !ok:
			// Blank lines are rewritten below.
		case v.IsNode(cst.NodeParagraph):
			groups = append(groups, group{pre: pending, para: Paragraph{view: v, style: d.style}})
			pending = nil
		default:
			pending = append(pending, withFinalNewline(n, nl))
		}
	}
	if opts.SortParagraphs != nil {
		slices.SortStableFunc(groups, func(a, b group) int {
			return opts.SortParagraphs(a.para, b.para)
		})
	}

	var out []cst.Element
	for i, g := range groups {
		if i > 0 {
			out = append(out, cst.NewToken(cst.TokNewline, nl))
		}
		out = append(out, g.pre...)
		out = append(out, withFinalNewline(g.para.wrapped(opts, nl), nl))
	}
	if len(pending) > 0 {
		if len(groups) > 0 {
			out = append(out, cst.NewToken(cst.TokNewline, nl))
		}
		out = append(out, pending...)
	}

	if k := root.NumChildren(); k > 0 && len(out) > 0 {
		last, _ := root.Child(k - 1)
		if n, ok := last.Node(); ok && !endsWithNewline(n) {
			out[len(out)-1] = withoutFinalNewline(out[len(out)-1].(*cst.Node))
		}
	}

	tree := cst.NewTree(cst.NewNode(cst.NodeDocument, out...))
	if tree.Text() == d.tree.Text() {
		return false, nil
	}
	d.tree = tree
	return true, nil
}

// wrapped returns the rewritten paragraph node. Every line is terminated
// with nl unless the paragraph itself was unterminated.
func (p Paragraph) wrapped(opts WrapOptions, nl string) *cst.Node {
	type entry struct {
		pre   []cst.Element
		field Field
	}
	var entries []entry
	var pending []cst.Element
	for v := range p.view.All() {
		n, ok := v.Node()
		switch {
		case !ok:
		case v.IsNode(cst.NodeField):
			entries = append(entries, entry{pre: pending, field: Field{view: v, style: p.style}})
			pending = nil
		default:
			pending = append(pending, withFinalNewline(n, nl))
		}
	}
	if opts.SortFields != nil {
		slices.SortStableFunc(entries, func(a, b entry) int {
			return opts.SortFields(a.field, b.field)
		})
	}

	var out []cst.Element
	for _, e := range entries {
		out = append(out, e.pre...)
		comments, node := e.field.wrapped(opts, nl)
		out = append(out, comments...)
		out = append(out, node)
	}
	out = append(out, pending...)

	if len(out) > 0 && !endsWithNewline(p.view.Element()) {
		out[len(out)-1] = withoutFinalNewline(out[len(out)-1].(*cst.Node))
	}
	return cst.NewNode(cst.NodeParagraph, out...)
}

// wrapped returns the comment lines found inside f and the rewritten field.
func (f Field) wrapped(opts WrapOptions, nl string) ([]cst.Element, *cst.Node) {
	key := f.Key()
	n, _ := f.view.Node()

	type line struct{ indent, text string }
	var (
		comments     []cst.Element
		first, sep   string
		continuation []line
		indent       string
		afterColon   bool
		firstLine    = true
	)
	for _, c := range n.Children() {
		if cn, ok := cst.AsNode(c); ok {
			comments = append(comments, withFinalNewline(cn, nl))
			continue
		}
		tok, _ := cst.AsToken(c)
		switch tok.Kind() {
		case cst.TokColon:
			afterColon = true
		case cst.TokWhitespace:
			if afterColon && firstLine && first == "" {
				sep = tok.Text()
			}
		case cst.TokIndent:
			indent = tok.Text()
		case cst.TokValue:
			text := strings.TrimRight(tok.Text(), " \t")
			if firstLine {
				first = text
			} else {
				continuation = append(continuation, line{indent: indent, text: text})
			}
			indent = ""
		case cst.TokNewline:
			firstLine = false
		}
	}

	shallowest := -1
	for _, l := range continuation {
		if shallowest < 0 || len(l.indent) < shallowest {
			shallowest = len(l.indent)
		}
	}
	lines := []string{first}
	for _, l := range continuation {
		lines = append(lines, l.indent[shallowest:]+l.text)
	}

	if opts.FormatValue != nil {
		value := opts.FormatValue(key, Fold(lines[0], lines[1:]...))
		head, rest := Unfold(value)
		lines = append([]string{head}, rest...)
	}

	multiLine := len(lines) > 1
	body := lines
	if body[0] == "" {
		body = body[1:]
	}

	elems := []cst.Element{cst.NewToken(cst.TokKey, key), cst.NewToken(cst.TokColon, ":")}
	newline := cst.NewToken(cst.TokNewline, nl)
	pad := opts.Indent.text(key)

	switch {
	case len(body) == 0:
		elems = append(elems, newline)
	case opts.ImmediateEmptyLine && multiLine:
		elems = append(elems, newline)
		for _, l := range body {
			elems = append(elems, cst.NewToken(cst.TokIndent, pad), cst.NewToken(cst.TokValue, l), newline)
		}
	default:
		oneLiner := !multiLine && opts.OneLinerWidth > 0 && len(key)+2+len(body[0]) <= opts.OneLinerWidth
		if !oneLiner || first == "" {
			sep = " "
		}
		if sep != "" {
			elems = append(elems, cst.NewToken(cst.TokWhitespace, sep))
		}
		elems = append(elems, cst.NewToken(cst.TokValue, body[0]), newline)
		for _, l := range body[1:] {
			elems = append(elems, cst.NewToken(cst.TokIndent, pad), cst.NewToken(cst.TokValue, l), newline)
		}
	}
	return comments, cst.NewNode(cst.NodeField, elems...)
}
