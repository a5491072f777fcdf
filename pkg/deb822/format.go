package deb822

import (
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
)

// Reformat rewrites the field in canonical form: no blanks before the colon,
// the style's separator after it, and no trailing blanks on any line.
// Continuation indents are kept as written since they can carry meaning,
// as in verbatim description lines.
func (f Field) Reformat(style Style) (Field, error) {
	const op = "reformat"
	if err := f.check(); err != nil {
		return Field{}, structural(op, "", err)
	}
	n, _ := f.view.Node()
	children := n.Children()

	out := make([]cst.Element, 0, len(children)+1)
	for i, c := range children {
		tok, ok := cst.AsToken(c)
		if !ok {
			out = append(out, c)
			continue
		}
		switch tok.Kind() {
		case cst.TokWhitespace:
			// Only found around the colon; the separator is re-added below.
			continue
		case cst.TokColon:
			out = append(out, tok)
			if next := nextToken(children, i+1); next != nil && next.Kind() == cst.TokValue && style.Separator != "" {
				out = append(out, cst.NewToken(cst.TokWhitespace, style.Separator))
			}
			continue
		case cst.TokValue:
			if trimmed := strings.TrimRight(tok.Text(), " \t"); trimmed != tok.Text() {
				tok = cst.NewToken(cst.TokValue, trimmed)
			}
		}
		out = append(out, tok)
	}

	node := cst.NewNode(cst.NodeField, out...)
	if node.Text() == n.Text() {
		return f, nil
	}
	parent, err := cst.Replace(f.view, node)
	if err != nil {
		return Field{}, structural(op, f.Key(), err)
	}
	return f.at(parent, f.view.Index()), nil
}

// nextToken returns the first token at or after i, skipping whitespace.
func nextToken(children []cst.Element, i int) *cst.Token {
	for ; i < len(children); i++ {
		tok, ok := cst.AsToken(children[i])
		if !ok {
			return nil
		}
		if tok.Kind() != cst.TokWhitespace {
			return tok
		}
	}
	return nil
}

// Format reformats every field of d and reports whether anything changed.
func (d *Document) Format() (bool, error) {
	before := d.tree
	for i := 0; ; i++ {
		p, ok := d.Paragraph(i)
		if !ok {
			break
		}
		for j := 0; ; j++ {
			f, ok := p.FieldAt(j)
			if !ok {
				break
			}
			nf, err := f.Reformat(d.style)
			if err != nil {
				return false, err
			}
			p, _ = nf.Paragraph()
		}
		d.tree = p.view.Tree()
	}
	return d.tree != before, nil
}
