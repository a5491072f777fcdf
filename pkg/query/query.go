// Package query selects paragraphs with boolean expressions.
//
// Expressions use the expr language (github.com/expr-lang/expr) evaluated
// against one paragraph at a time, with these names in scope:
//
//	field(key)   folded value of the first field named key, or ""
//	has(key)     whether a field named key exists
//	values(key)  values of every field named key
//	fields()     field keys in document order
//	index        position of the paragraph in its document
//
// Keys are matched case-insensitively. For example:
//
//	has("Essential") && field("Priority") in ["required", "important"]
//	field("Package") matches "^lib" && "arm64" in split(field("Architecture"), " ")
package query

import (
	"fmt"
	"iter"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/yaklabco/deb822/pkg/deb822"
)

// Filter is a compiled paragraph predicate. It is safe for concurrent use.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses and type-checks a filter expression, which must evaluate
// to a boolean.
func Compile(source string) (*Filter, error) {
	program, err := expr.Compile(source, expr.Env(scope(deb822.Paragraph{}, 0)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", source, err)
	}
	return &Filter{source: source, program: program}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) *Filter {
	f, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the filter's source expression.
func (f *Filter) String() string { return f.source }

// Match evaluates the filter against p, the index-th paragraph of its
// document.
func (f *Filter) Match(p deb822.Paragraph, index int) (bool, error) {
	out, err := expr.Run(f.program, scope(p, index))
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q on paragraph %d: %w", f.source, index, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("evaluate filter %q: result is %T, not bool", f.source, out)
	}
	return ok, nil
}

// Select returns the paragraphs of doc matching f, in document order.
// Evaluation stops at the first error.
func (f *Filter) Select(doc *deb822.Document) ([]deb822.Paragraph, error) {
	var out []deb822.Paragraph
	for i, p := range enumerate(doc.Paragraphs()) {
		ok, err := f.Match(p, i)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func scope(p deb822.Paragraph, index int) map[string]any {
	return map[string]any{
		"field": func(key string) string {
			v, _ := p.Get(key)
			return v
		},
		"has":    func(key string) bool { return p.ContainsKey(key) },
		"values": func(key string) []string { return p.GetAll(key) },
		"fields": func() []string { return p.Keys() },
		"index":  index,
	}
}

func enumerate[T any](seq iter.Seq[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for v := range seq {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}
