package deb822

import (
	"errors"
	"slices"
	"strings"
	"unicode"

	"github.com/yaklabco/deb822/pkg/cst"
)

var errStopWalk = errors.New("stop walk")

// renderSpec describes how to write a field's value.
type renderSpec struct {
	// head is the key, any blanks before the colon, and the colon.
	head []cst.Element

	sep        string
	trailing   string
	indent     string
	newline    string
	block      bool
	terminated bool
}

func (r renderSpec) render(value string) []cst.Element {
	elems := slices.Clone(r.head)
	first, continuation := unfold(value, r.block)

	switch {
	case first != "":
		if r.sep != "" {
			elems = append(elems, cst.NewToken(cst.TokWhitespace, r.sep))
		}
		elems = append(elems, cst.NewToken(cst.TokValue, first))
	case len(continuation) > 0 && r.trailing != "":
		elems = append(elems, cst.NewToken(cst.TokWhitespace, r.trailing))
	}
	elems = append(elems, cst.NewToken(cst.TokNewline, r.newline))

	for _, line := range continuation {
		elems = append(elems,
			cst.NewToken(cst.TokIndent, r.indent),
			cst.NewToken(cst.TokValue, line),
			cst.NewToken(cst.TokNewline, r.newline),
		)
	}

	if !r.terminated {
		elems = elems[:len(elems)-1]
	}
	return elems
}

// observed is the formatting seen in existing text around an edit.
type observed struct {
	indent  string
	sep     string
	hasSep  bool
	newline string
}

func (p Paragraph) observe() observed {
	var o observed
	for f := range p.Fields() {
		l := f.layout()
		if o.indent == "" {
			o.indent = l.indent
		}
		if !o.hasSep && l.hasSep {
			o.sep, o.hasSep = l.sep, true
		}
		if o.newline == "" {
			o.newline = l.newline
		}
	}
	return o
}

// firstNewline returns the first line terminator below v, or "".
func firstNewline(v cst.View) string {
	found := ""
	//nolint:errcheck // errStopWalk only ends the walk early
	cst.Walk(v, func(w cst.View) error {
		if w.IsToken(cst.TokNewline) {
			found = w.Text()
			return errStopWalk
		}
		return nil
	})
	return found
}

// newlineFor picks the first observed terminator, then the style's, then LF.
func (s Style) newlineFor(observed ...string) string {
	for _, nl := range observed {
		if nl != "" {
			return nl
		}
	}
	if s.Newline != "" {
		return s.Newline
	}
	return "\n"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ValidKey reports whether key can be written as a field name: non-empty,
// not starting with '#' or '-', and free of blanks, colons and control
// characters.
func ValidKey(key string) bool {
	if key == "" || key[0] == '#' || key[0] == '-' {
		return false
	}
	return !strings.ContainsFunc(key, func(r rune) bool {
		return r == ':' || unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

func endsWithNewline(e cst.Element) bool {
	switch e := e.(type) {
	case *cst.Token:
		return e.Kind() == cst.TokNewline
	case *cst.Node:
		if e.NumChildren() == 0 {
			return false
		}
		return endsWithNewline(e.Child(e.NumChildren() - 1))
	}
	return false
}

// withFinalNewline returns n with a terminator appended to its last line.
func withFinalNewline(n *cst.Node, nl string) *cst.Node {
	children := n.Children()
	if len(children) == 0 {
		return cst.NewNode(n.Kind(), cst.NewToken(cst.TokNewline, nl))
	}
	switch last := children[len(children)-1].(type) {
	case *cst.Token:
		if last.Kind() == cst.TokNewline {
			return n
		}
		children = append(children, cst.NewToken(cst.TokNewline, nl))
	case *cst.Node:
		children[len(children)-1] = withFinalNewline(last, nl)
	}
	return cst.NewNode(n.Kind(), children...)
}

// withoutFinalNewline returns n with the terminator of its last line removed.
func withoutFinalNewline(n *cst.Node) *cst.Node {
	children := n.Children()
	if len(children) == 0 {
		return n
	}
	switch last := children[len(children)-1].(type) {
	case *cst.Token:
		if last.Kind() != cst.TokNewline {
			return n
		}
		children = children[:len(children)-1]
	case *cst.Node:
		children[len(children)-1] = withoutFinalNewline(last)
	}
	return cst.NewNode(n.Kind(), children...)
}

func isBlankToken(v cst.View) bool {
	return v.IsToken(cst.TokNewline) || v.IsToken(cst.TokWhitespace)
}
