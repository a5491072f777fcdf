package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the text.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits checks every edit range against a text of contentLen bytes.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.StartOffset, b.StartOffset), cmp.Compare(a.EndOffset, b.EndOffset))
	})
}

// DetectConflicts returns the first pair of overlapping edits in a sorted slice.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{Edit1: edits[i-1], Edit2: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates a copy of edits, sorts it and rejects overlaps.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	result := slices.Clone(edits)
	SortEdits(result)
	if err := DetectConflicts(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Span returns the smallest range of the original text covering every edit.
// It reports false when there are no edits.
func Span(edits []TextEdit) (int, int, bool) {
	if len(edits) == 0 {
		return 0, 0, false
	}
	start, end := edits[0].StartOffset, edits[0].EndOffset
	for _, e := range edits[1:] {
		start = min(start, e.StartOffset)
		end = max(end, e.EndOffset)
	}
	return start, end, true
}
