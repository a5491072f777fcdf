// Package fix turns document edits into byte-level text edits and diffs.
//
// Structural edits produce a new syntax tree; TreeEdits recovers the minimal
// set of byte ranges that changed, which callers can apply to the original
// text, check for locality, or render as a unified diff.
package fix

import "fmt"

// TextEdit replaces the bytes [StartOffset, EndOffset) of a text.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}

// Delete returns an edit removing [start, end).
func Delete(start, end int) TextEdit {
	return Replace(start, end, "")
}

// Delta returns the change in text length caused by the edit.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.EndOffset - e.StartOffset)
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]=%q", e.StartOffset, e.EndOffset, e.NewText)
}
