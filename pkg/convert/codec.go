package convert

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"
)

// Codec converts a field value to and from a Go value.
// Parse receives the folded value as returned by Paragraph.Get.
type Codec[T any] struct {
	Parse  func(string) (T, error)
	Format func(T) string
}

func (c Codec[T]) valid() bool {
	return c.Parse != nil && c.Format != nil
}

// Stock codecs.
var (
	// String passes values through unchanged.
	String = Codec[string]{
		Parse:  func(s string) (string, error) { return s, nil },
		Format: func(s string) string { return s },
	}

	// Int reads a decimal integer, ignoring surrounding blanks.
	Int = Codec[int]{
		Parse:  func(s string) (int, error) { return strconv.Atoi(strings.TrimSpace(s)) },
		Format: strconv.Itoa,
	}

	// Uint reads an unsigned decimal integer, ignoring surrounding blanks.
	Uint = Codec[uint64]{
		Parse:  func(s string) (uint64, error) { return strconv.ParseUint(strings.TrimSpace(s), 10, 64) },
		Format: func(n uint64) string { return strconv.FormatUint(n, 10) },
	}

	// Bool reads yes/no as well as the forms accepted by strconv.ParseBool,
	// and writes yes or no.
	Bool = Codec[bool]{
		Parse:  parseBool,
		Format: formatBool,
	}

	// Words splits on blanks and joins with a single space. A blank value
	// reads as nil.
	Words = Codec[[]string]{
		Parse:  parseWords,
		Format: func(w []string) string { return strings.Join(w, " ") },
	}

	// CommaList splits on commas, trimming blanks and dropping empty items,
	// and joins with ", ".
	CommaList = Codec[[]string]{
		Parse:  parseCommaList,
		Format: func(items []string) string { return strings.Join(items, ", ") },
	}

	// Lines splits a multi-line value into its lines.
	Lines = Codec[[]string]{
		Parse:  parseLines,
		Format: func(lines []string) string { return strings.Join(lines, "\n") },
	}
)

// Text returns a codec for a type implementing encoding.TextMarshaler and
// encoding.TextUnmarshaler on its pointer.
func Text[T any, PT interface {
	*T
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}]() Codec[T] {
	return Codec[T]{
		Parse: func(s string) (T, error) {
			var v T
			err := PT(&v).UnmarshalText([]byte(s))
			return v, err
		},
		Format: func(v T) string {
			b, err := PT(&v).MarshalText()
			if err != nil {
				return ""
			}
			return string(b)
		},
	}
}

func parseBool(s string) (bool, error) {
	switch v := strings.TrimSpace(s); strings.ToLower(v) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean %q", v)
		}
		return b, nil
	}
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseWords(s string) ([]string, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil, nil
	}
	return words, nil
}

func parseCommaList(s string) ([]string, error) {
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

func parseLines(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}
