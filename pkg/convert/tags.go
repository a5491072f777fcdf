package convert

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// TableOf derives a table from the exported fields of the struct type R.
//
// The field tag `deb822:"Key,opt,..."` overrides the key and sets options;
// without a key the member name is passed through KeyFor. A tag of "-"
// skips the member. Options:
//
//	optional   the field may be absent; a zero member is written as absent,
//	           so UpdateParagraph removes the field. A bool member read from
//	           "no" is zero and loses its field on update; use a pointer
//	           member to tell an explicit zero from a missing field.
//	words      []string members split on blanks (the default)
//	comma      []string members split on commas
//	lines      []string members split into lines
//
// Pointer members are optional. Supported member types are string, bool,
// the integer kinds, []string and types whose pointer implements both
// encoding.TextMarshaler and encoding.TextUnmarshaler. Embedded structs
// are not descended into.
func TableOf[R any]() (*Table[R], error) {
	rt := reflect.TypeFor[R]()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidTable, rt)
	}

	var entries []Entry[R]
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		e, ok, err := reflectEntryFor[R](sf)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, e)
		}
	}
	return NewTable(entries...)
}

// KeyFor turns a Go member name into a field key by splitting it into words
// and joining them with '-': BuildDepends becomes Build-Depends, VcsURL
// becomes Vcs-URL and standards_version becomes standards-version. The
// casing of the member name is kept. Keys match case-insensitively, so the
// derived key reads any spelling, and written fields get the usual
// capitalized form.
func KeyFor(name string) string {
	var words []string
	for part := range strings.FieldsFuncSeq(name, func(r rune) bool { return r == '_' || r == '-' }) {
		words = append(words, splitCamel(part)...)
	}
	return strings.Join(words, "-")
}

func splitCamel(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		next := rune(0)
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		lowerToUpper := (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur)
		acronymEnd := unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(next)
		if lowerToUpper || acronymEnd {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

type reflectEntry[R any] struct {
	key      string
	required bool
	index    []int
	ptr      bool
	parse    func(string, reflect.Value) error
	format   func(reflect.Value) string
}

func (e reflectEntry[R]) Key() string    { return e.key }
func (e reflectEntry[R]) Required() bool { return e.required }
func (e reflectEntry[R]) complete() bool { return e.parse != nil && e.format != nil }

func (e reflectEntry[R]) decode(r *R, value string) error {
	fv := reflect.ValueOf(r).Elem().FieldByIndex(e.index)
	if e.ptr {
		target := reflect.New(fv.Type().Elem())
		if err := e.parse(value, target.Elem()); err != nil {
			return err
		}
		fv.Set(target)
		return nil
	}
	return e.parse(value, fv)
}

func (e reflectEntry[R]) encode(r *R) (string, bool) {
	fv := reflect.ValueOf(r).Elem().FieldByIndex(e.index)
	if e.ptr {
		if fv.IsNil() {
			return "", false
		}
		return e.format(fv.Elem()), true
	}
	if !e.required && fv.IsZero() {
		return "", false
	}
	return e.format(fv), true
}

func (e reflectEntry[R]) canonical(value string) (string, error) {
	var r R
	if err := e.decode(&r, value); err != nil {
		return "", err
	}
	s, _ := e.encode(&r)
	return s, nil
}

var (
	textMarshaler   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func reflectEntryFor[R any](sf reflect.StructField) (Entry[R], bool, error) {
	tag := sf.Tag.Get("deb822")
	if tag == "-" {
		return nil, false, nil
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = KeyFor(sf.Name)
	}

	e := reflectEntry[R]{key: name, required: true, index: sf.Index}
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		e.ptr, e.required = true, false
		t = t.Elem()
	}

	list := "words"
	for opt := range strings.SplitSeq(opts, ",") {
		switch opt {
		case "":
		case "optional":
			e.required = false
		case "words", "comma", "lines":
			list = opt
		default:
			return nil, false, fmt.Errorf("%w: field %s: unknown option %q", ErrInvalidTable, sf.Name, opt)
		}
	}

	var err error
	e.parse, e.format, err = reflectCodec(t, list)
	if err != nil {
		return nil, false, fmt.Errorf("%w: field %s: %w", ErrInvalidTable, sf.Name, err)
	}
	return e, true, nil
}

func reflectCodec(t reflect.Type, list string) (func(string, reflect.Value) error, func(reflect.Value) string, error) {
	if pt := reflect.PointerTo(t); pt.Implements(textUnmarshaler) && pt.Implements(textMarshaler) {
		parse := func(s string, v reflect.Value) error {
			return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
		}
		format := func(v reflect.Value) string {
			b, err := v.Addr().Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return ""
			}
			return string(b)
		}
		return parse, format, nil
	}

	switch t.Kind() {
	case reflect.String:
		return func(s string, v reflect.Value) error {
				v.SetString(s)
				return nil
			}, func(v reflect.Value) string {
				return v.String()
			}, nil

	case reflect.Bool:
		return func(s string, v reflect.Value) error {
				b, err := parseBool(s)
				v.SetBool(b)
				return err
			}, func(v reflect.Value) string {
				return formatBool(v.Bool())
			}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(s string, v reflect.Value) error {
				n, err := strconv.ParseInt(strings.TrimSpace(s), 10, t.Bits())
				v.SetInt(n)
				return err
			}, func(v reflect.Value) string {
				return strconv.FormatInt(v.Int(), 10)
			}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(s string, v reflect.Value) error {
				n, err := strconv.ParseUint(strings.TrimSpace(s), 10, t.Bits())
				v.SetUint(n)
				return err
			}, func(v reflect.Value) string {
				return strconv.FormatUint(v.Uint(), 10)
			}, nil

	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			break
		}
		codec := map[string]Codec[[]string]{"words": Words, "comma": CommaList, "lines": Lines}[list]
		return func(s string, v reflect.Value) error {
				items, err := codec.Parse(s)
				v.Set(reflect.ValueOf(items).Convert(t))
				return err
			}, func(v reflect.Value) string {
				return codec.Format(v.Convert(reflect.TypeFor[[]string]()).Interface().([]string))
			}, nil
	}
	return nil, nil, fmt.Errorf("unsupported type %s", t)
}
