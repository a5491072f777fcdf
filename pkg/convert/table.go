// Package convert maps paragraphs to Go records and back.
//
// A Table lists, for each member of a record type, the field key it is
// stored under, whether the field must be present, and the Codec that
// converts between the folded field value and the member's Go type. Tables
// are built from Required and Optional entries, or derived from struct tags
// with TableOf.
//
// Writing a record into an existing paragraph edits only the fields whose
// values differ in meaning, keeping the layout of everything else.
package convert

import (
	"fmt"
	"strings"

	"github.com/yaklabco/deb822/pkg/deb822"
)

// Getter looks up the folded value of a field by key.
// deb822.Paragraph implements it.
type Getter interface {
	Get(key string) (string, bool)
}

// Entry describes one member of a record of type R.
type Entry[R any] interface {
	// Key returns the field key.
	Key() string

	// Required reports whether the field must be present.
	Required() bool

	decode(r *R, value string) error
	encode(r *R) (string, bool)
	canonical(value string) (string, error)
	complete() bool
}

type requiredEntry[R, T any] struct {
	key    string
	codec  Codec[T]
	member func(*R) *T
}

// Required returns an entry for a member that must be present. member
// returns the address of the member within a record.
func Required[R, T any](key string, codec Codec[T], member func(*R) *T) Entry[R] {
	return requiredEntry[R, T]{key: key, codec: codec, member: member}
}

func (e requiredEntry[R, T]) Key() string    { return e.key }
func (e requiredEntry[R, T]) Required() bool { return true }

func (e requiredEntry[R, T]) complete() bool { return e.codec.valid() && e.member != nil }

func (e requiredEntry[R, T]) decode(r *R, value string) error {
	v, err := e.codec.Parse(value)
	if err != nil {
		return err
	}
	*e.member(r) = v
	return nil
}

func (e requiredEntry[R, T]) encode(r *R) (string, bool) {
	return e.codec.Format(*e.member(r)), true
}

func (e requiredEntry[R, T]) canonical(value string) (string, error) {
	return canonical(e.codec, value)
}

type optionalEntry[R, T any] struct {
	key    string
	codec  Codec[T]
	member func(*R) **T
}

// Optional returns an entry for a member that may be absent. The member is
// a pointer; nil stands for a missing field.
func Optional[R, T any](key string, codec Codec[T], member func(*R) **T) Entry[R] {
	return optionalEntry[R, T]{key: key, codec: codec, member: member}
}

func (e optionalEntry[R, T]) Key() string    { return e.key }
func (e optionalEntry[R, T]) Required() bool { return false }

func (e optionalEntry[R, T]) complete() bool { return e.codec.valid() && e.member != nil }

func (e optionalEntry[R, T]) decode(r *R, value string) error {
	v, err := e.codec.Parse(value)
	if err != nil {
		return err
	}
	*e.member(r) = &v
	return nil
}

func (e optionalEntry[R, T]) encode(r *R) (string, bool) {
	p := *e.member(r)
	if p == nil {
		return "", false
	}
	return e.codec.Format(*p), true
}

func (e optionalEntry[R, T]) canonical(value string) (string, error) {
	return canonical(e.codec, value)
}

func canonical[T any](c Codec[T], value string) (string, error) {
	v, err := c.Parse(value)
	if err != nil {
		return "", err
	}
	return c.Format(v), nil
}

// Table is the field table of a record type R.
// A Table is immutable and safe for concurrent use.
type Table[R any] struct {
	entries []Entry[R]
}

// NewTable builds a table from entries. Keys must be valid field names and
// unique, compared case-insensitively.
func NewTable[R any](entries ...Entry[R]) (*Table[R], error) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if err := checkEntry(e); err != nil {
			return nil, err
		}
		folded := strings.ToLower(e.Key())
		if seen[folded] {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidTable, e.Key())
		}
		seen[folded] = true
	}
	return &Table[R]{entries: entries}, nil
}

// Must returns t, panicking if err is non-nil. It is meant for tables
// declared in package variables.
func Must[R any](t *Table[R], err error) *Table[R] {
	if err != nil {
		panic(err)
	}
	return t
}

func checkEntry[R any](e Entry[R]) error {
	if !deb822.ValidKey(e.Key()) {
		return fmt.Errorf("%w: invalid key %q", ErrInvalidTable, e.Key())
	}
	if !e.complete() {
		return fmt.Errorf("%w: key %q needs a codec and a member", ErrInvalidTable, e.Key())
	}
	return nil
}

// Entries returns the table's entries in declaration order.
func (t *Table[R]) Entries() []Entry[R] {
	return append([]Entry[R](nil), t.entries...)
}

// Keys returns the field keys in declaration order.
func (t *Table[R]) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key()
	}
	return keys
}

// FromParagraph reads a record from g. It fails with *MissingFieldError for
// an absent required field and *FieldParseError when a codec rejects a
// value; the error names the first offending entry in table order.
func (t *Table[R]) FromParagraph(g Getter) (R, error) {
	var r R
	for _, e := range t.entries {
		value, ok := g.Get(e.Key())
		if !ok {
			if e.Required() {
				var zero R
				return zero, &MissingFieldError{Key: e.Key()}
			}
			continue
		}
		if err := e.decode(&r, value); err != nil {
			var zero R
			return zero, &FieldParseError{Key: e.Key(), Value: value, Err: err}
		}
	}
	return r, nil
}

// ToParagraph writes r into a new paragraph, one field per present member
// in table order.
func (t *Table[R]) ToParagraph(r R) (deb822.Paragraph, error) {
	return t.UpdateParagraph(r, deb822.NewParagraph())
}

// UpdateParagraph writes r into p and returns the edited paragraph. A
// member whose field exists replaces the first field's value in place,
// unless the existing value already parses to the same member; other
// present members are appended in table order. Absent optional members
// remove their field. p itself is not modified.
func (t *Table[R]) UpdateParagraph(r R, p deb822.Paragraph) (deb822.Paragraph, error) {
	cur := p
	for _, e := range t.entries {
		value, present := e.encode(&r)
		if !present {
			next, err := cur.Remove(e.Key())
			if err != nil {
				return deb822.Paragraph{}, err
			}
			cur = next
			continue
		}
		if old, ok := cur.Get(e.Key()); ok && same(e, old, value) {
			continue
		}
		f, err := cur.Set(e.Key(), value)
		if err != nil {
			return deb822.Paragraph{}, err
		}
		next, ok := f.Paragraph()
		if !ok {
			return deb822.Paragraph{}, fmt.Errorf("update %q: %w", e.Key(), deb822.ErrDetachedNode)
		}
		cur = next
	}
	return cur, nil
}

// same reports whether the existing value old already reads as value.
func same[R any](e Entry[R], old, value string) bool {
	if old == value {
		return true
	}
	c, err := e.canonical(old)
	return err == nil && c == value
}

// UpdateDocument writes r into p, a paragraph of doc, and makes the result
// the document's current generation. On error doc is left unchanged.
func (t *Table[R]) UpdateDocument(doc *deb822.Document, p deb822.Paragraph, r R) (deb822.Paragraph, error) {
	if p.View().Tree() != doc.Tree() {
		return deb822.Paragraph{}, &deb822.StructuralError{Op: "update paragraph", Err: deb822.ErrStaleView}
	}
	np, err := t.UpdateParagraph(r, p)
	if err != nil {
		return deb822.Paragraph{}, err
	}
	doc.SetTree(np.View().Tree())
	return np, nil
}
