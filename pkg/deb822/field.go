package deb822

import (
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
)

// Field is a handle on one field of a paragraph. It is a typed view: it
// belongs to exactly one tree generation and never changes.
type Field struct {
	view  cst.View
	style Style
}

// View returns the underlying syntax view.
func (f Field) View() cst.View { return f.view }

// Key returns the field name as written.
func (f Field) Key() string {
	n, ok := f.view.Node()
	if !ok {
		return ""
	}
	for _, c := range n.Children() {
		if tok, ok := cst.AsToken(c); ok && tok.Kind() == cst.TokKey {
			return tok.Text()
		}
	}
	return ""
}

// Value returns the folded value.
func (f Field) Value() string {
	l := f.layout()
	return Fold(l.first, l.continuation...)
}

// Lines returns the folded value split into lines. An empty value has no lines.
func (f Field) Lines() []string {
	v := f.Value()
	if v == "" {
		return nil
	}
	return strings.Split(v, "\n")
}

// Text returns the field's source text, terminator included.
func (f Field) Text() string { return f.view.Text() }

// Range returns the byte range of the whole field.
func (f Field) Range() (int, int) { return f.view.Range() }

// ValueRange returns the byte range following the colon, up to but not
// including the field's final line terminator.
func (f Field) ValueRange() (int, int) {
	start, end := f.view.Range()
	n, ok := f.view.Node()
	if !ok {
		return start, end
	}
	l := f.layout()
	pos := start
	for i := range l.valueStart {
		pos += n.Child(i).Len()
	}
	if nl := l.lastNewline; nl != "" {
		end -= len(nl)
	}
	return pos, end
}

// Paragraph returns the paragraph containing f.
func (f Field) Paragraph() (Paragraph, bool) {
	parent, ok := f.view.Parent()
	if !ok || !parent.IsNode(cst.NodeParagraph) {
		return Paragraph{}, false
	}
	return Paragraph{view: parent, style: f.style}, true
}

// Is reports whether f's key matches key case-insensitively.
func (f Field) Is(key string) bool {
	return strings.EqualFold(f.Key(), key)
}

// fieldLayout is the token-level shape of a field.
type fieldLayout struct {
	// head is every child up to and including the colon.
	head []cst.Element

	// valueStart is the child index following the colon.
	valueStart int

	// sep is the whitespace between the colon and a first-line value.
	sep    string
	hasSep bool

	// trailing is whitespace after the colon on an otherwise empty first line.
	trailing string

	first        string
	continuation []string

	indent      string
	newline     string
	lastNewline string
}

// block reports whether the field starts its value on a continuation line.
func (l fieldLayout) block() bool {
	return l.first == "" && len(l.continuation) > 0
}

// terminated reports whether the field text ends with a line terminator.
func (l fieldLayout) terminated() bool { return l.lastNewline != "" }

func (f Field) layout() fieldLayout {
	var l fieldLayout
	n, ok := f.view.Node()
	if !ok {
		return l
	}

	children := n.Children()
	colon := -1
	for i, c := range children {
		if cst.IsTokenKind(c, cst.TokColon) {
			colon = i
			break
		}
	}
	l.head = children[:colon+1]
	l.valueStart = colon + 1

	firstLine := true
	pendingWS := ""
	for _, c := range children[colon+1:] {
		tok, ok := cst.AsToken(c)
		if !ok {
			// Comment lines between continuation lines carry no value.
			continue
		}
		switch tok.Kind() {
		case cst.TokWhitespace:
			pendingWS = tok.Text()
		case cst.TokValue:
			if firstLine {
				l.first = tok.Text()
				l.sep, l.hasSep = pendingWS, true
			} else {
				l.continuation = append(l.continuation, tok.Text())
			}
		case cst.TokIndent:
			if l.indent == "" {
				l.indent = tok.Text()
			}
		case cst.TokNewline:
			if firstLine && !l.hasSep {
				l.trailing = pendingWS
			}
			firstLine = false
			if l.newline == "" {
				l.newline = tok.Text()
			}
		}
	}
	if firstLine && !l.hasSep {
		l.trailing = pendingWS
	}
	if len(children) > 0 && cst.IsTokenKind(children[len(children)-1], cst.TokNewline) {
		l.lastNewline = children[len(children)-1].Text()
	}
	return l
}
