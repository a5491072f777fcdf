package cst

// TokenKind classifies a leaf token of the syntax tree.
type TokenKind uint16

// Token kinds. Every byte of a document belongs to exactly one token.
const (
	TokWhitespace TokenKind = iota // blanks that are not a continuation indent
	TokComment                     // '#' up to, not including, the line terminator
	TokKey                         // field name
	TokColon                       // ':' separating key and value
	TokValue                       // value text on a key line or a continuation line
	TokNewline                     // "\n" or "\r\n"
	TokIndent                      // leading blanks of a continuation line
	TokError                       // unparseable line
)

var tokenKindNames = [...]string{
	TokWhitespace: "WHITESPACE",
	TokComment:    "COMMENT",
	TokKey:        "KEY",
	TokColon:      "COLON",
	TokValue:      "VALUE",
	TokNewline:    "NEWLINE",
	TokIndent:     "INDENT",
	TokError:      "ERROR",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// NodeKind classifies an interior node of the syntax tree.
type NodeKind uint16

// Node kinds.
const (
	NodeDocument NodeKind = iota
	NodeParagraph
	NodeField
	NodeComment
	NodeError
)

var nodeKindNames = [...]string{
	NodeDocument:  "DOCUMENT",
	NodeParagraph: "PARAGRAPH",
	NodeField:     "FIELD",
	NodeComment:   "COMMENT_LINE",
	NodeError:     "ERROR_LINE",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}
