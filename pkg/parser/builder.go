package parser

import "github.com/yaklabco/deb822/pkg/cst"

// Parse tokenizes and builds text in one step.
func Parse(text string) *cst.Tree {
	return Build(Tokenize(text))
}

// Build assembles tokens, as produced by Tokenize, into a tree.
//
// A field is a key line plus the continuation lines that follow it. A
// paragraph is opened by a key line and closed by a blank line or the end of
// input. Blank lines, and comment or error lines outside a paragraph, become
// direct children of the document. A continuation line with no field to
// continue becomes an error node. Comment lines between continuation lines
// stay inside the field they interrupt.
func Build(tokens []*cst.Token) *cst.Tree {
	b := &builder{}
	for _, line := range splitLines(tokens) {
		b.line(line)
	}
	b.closeParagraph()
	return cst.NewTree(cst.NewNode(cst.NodeDocument, b.doc...))
}

type builder struct {
	doc   []cst.Element
	para  []cst.Element
	field []cst.Element

	// pending holds comment lines seen while a field was open; they join the
	// field if a continuation line follows and the paragraph otherwise.
	pending []cst.Element
}

func (b *builder) line(line []cst.Element) {
	switch lineKind(line) {
	case cst.TokKey:
		b.closeField()
		b.field = append(b.field, line...)

	case cst.TokIndent:
		if b.field == nil {
			b.flushPending()
			b.add(cst.NewNode(cst.NodeError, line...))
			return
		}
		b.field = append(b.field, b.pending...)
		b.pending = nil
		b.field = append(b.field, line...)

	case cst.TokComment:
		comment := cst.NewNode(cst.NodeComment, line...)
		if b.field != nil {
			b.pending = append(b.pending, comment)
			return
		}
		b.add(comment)

	case cst.TokError:
		b.closeField()
		b.add(cst.NewNode(cst.NodeError, line...))

	default:
		b.closeParagraph()
		b.doc = append(b.doc, line...)
	}
}

// add appends a comment or error node to the open paragraph, or to the
// document when no paragraph is open. Error nodes never open a paragraph.
func (b *builder) add(n *cst.Node) {
	if b.para != nil {
		b.para = append(b.para, n)
		return
	}
	b.doc = append(b.doc, n)
}

func (b *builder) closeField() {
	if b.field != nil {
		if b.para == nil {
			b.para = []cst.Element{}
		}
		b.para = append(b.para, cst.NewNode(cst.NodeField, b.field...))
		b.field = nil
	}
	b.flushPending()
}

func (b *builder) flushPending() {
	for _, c := range b.pending {
		b.add(c.(*cst.Node))
	}
	b.pending = nil
}

func (b *builder) closeParagraph() {
	b.closeField()
	if b.para != nil {
		b.doc = append(b.doc, cst.NewNode(cst.NodeParagraph, b.para...))
		b.para = nil
	}
}

// splitLines groups tokens into lines, each ending with its newline token
// except possibly the last.
func splitLines(tokens []*cst.Token) [][]cst.Element {
	var lines [][]cst.Element
	var cur []cst.Element
	for _, tok := range tokens {
		cur = append(cur, tok)
		if tok.Kind() == cst.TokNewline {
			lines = append(lines, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// lineKind classifies a line by its first token. Blank lines report TokNewline.
func lineKind(line []cst.Element) cst.TokenKind {
	tok, _ := cst.AsToken(line[0])
	switch tok.Kind() {
	case cst.TokKey, cst.TokIndent, cst.TokComment, cst.TokError:
		return tok.Kind()
	default:
		return cst.TokNewline
	}
}
