package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed conversion errors.
var (
	// ErrMissingField is matched by *MissingFieldError.
	ErrMissingField = errors.New("missing field")

	// ErrFieldParse is matched by *FieldParseError.
	ErrFieldParse = errors.New("cannot parse field")

	// ErrInvalidTable reports a table that cannot be built.
	ErrInvalidTable = errors.New("invalid field table")
)

// MissingFieldError reports a required field absent from the paragraph.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return "missing field: " + e.Key
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// FieldParseError reports a value the field's codec rejected.
type FieldParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("parsing field %s: %v", e.Key, e.Err)
}

// Unwrap returns the codec's error.
func (e *FieldParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFieldParse.
func (e *FieldParseError) Is(target error) bool {
	return target == ErrFieldParse
}
