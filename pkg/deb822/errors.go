package deb822

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
)

// Sentinel errors for structural edits. They are wrapped in *StructuralError.
var (
	// ErrInvalidKey reports a key that cannot be written as a field name.
	ErrInvalidKey = errors.New("invalid key")

	// ErrStaleView reports a paragraph or field taken from an older generation
	// of a Document.
	ErrStaleView = errors.New("stale view")

	// ErrDetachedNode reports a handle that no longer resolves in its tree.
	ErrDetachedNode = cst.ErrDetachedNode

	// ErrOutOfRange reports an insertion position outside the valid range.
	ErrOutOfRange = errors.New("position out of range")
)

// StructuralError describes a failed edit. The trees involved are unchanged.
type StructuralError struct {
	Op  string
	Key string
	Err error
}

func (e *StructuralError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("deb822: %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("deb822: %s: %v", e.Op, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

func structural(op, key string, err error) error {
	return &StructuralError{Op: op, Key: key, Err: err}
}

// SyntaxError locates one unparseable line.
type SyntaxError struct {
	// Offset is the byte offset of the line start.
	Offset int

	// Line and Column are 1-based; Column counts bytes.
	Line   int
	Column int

	// Text is the offending line without its terminator.
	Text string

	// Message explains what was expected.
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %q", e.Line, e.Column, e.Message, e.Text)
}

// ParseError is returned by ParseStrict when a document has syntax errors.
type ParseError struct {
	Errors []SyntaxError
}

func (e *ParseError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, se := range e.Errors {
		msgs = append(msgs, se.Error())
	}
	return "deb822: parse errors: " + strings.Join(msgs, "; ")
}
