// Package parser turns deb822 text into a lossless syntax tree.
//
// Parsing is total: every input, however malformed, produces a tree whose
// text is byte-identical to the input. Lines that cannot be understood are
// kept as error tokens and error nodes.
package parser

import (
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
)

// Tokenize splits text into tokens. It never fails; the tokens always cover
// text exactly.
func Tokenize(text string) []*cst.Token {
	lx := &lexer{text: text}
	for lx.pos < len(lx.text) {
		lx.line()
	}
	return lx.tokens
}

type lexer struct {
	text   string
	pos    int
	tokens []*cst.Token
}

func (lx *lexer) emit(kind cst.TokenKind, text string) {
	if text != "" {
		lx.tokens = append(lx.tokens, cst.NewToken(kind, text))
	}
}

// line tokenizes one line, terminator included.
func (lx *lexer) line() {
	rest := lx.text[lx.pos:]
	content, terminator := rest, ""
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		content, terminator = rest[:nl], "\n"
		if strings.HasSuffix(content, "\r") {
			content, terminator = content[:len(content)-1], "\r\n"
		}
	}
	lx.pos += len(content) + len(terminator)

	lx.content(content)
	lx.emit(cst.TokNewline, terminator)
}

func (lx *lexer) content(line string) {
	switch {
	case isBlank(line):
		lx.emit(cst.TokWhitespace, line)

	case line[0] == '#':
		lx.emit(cst.TokComment, line)

	case isIndent(line[0]):
		value := strings.TrimLeft(line, " \t")
		lx.emit(cst.TokIndent, line[:len(line)-len(value)])
		lx.emit(cst.TokValue, value)

	default:
		colon := strings.IndexByte(line, ':')
		key := ""
		if colon > 0 {
			key = strings.TrimRight(line[:colon], " \t")
		}
		if key == "" {
			lx.emit(cst.TokError, line)
			return
		}
		lx.emit(cst.TokKey, key)
		lx.emit(cst.TokWhitespace, line[len(key):colon])
		lx.emit(cst.TokColon, ":")

		rest := line[colon+1:]
		value := strings.TrimLeft(rest, " \t")
		lx.emit(cst.TokWhitespace, rest[:len(rest)-len(value)])
		lx.emit(cst.TokValue, value)
	}
}

func isIndent(c byte) bool { return c == ' ' || c == '\t' }

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}
