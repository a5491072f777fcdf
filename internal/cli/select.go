package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/query"
)

// ErrNoParagraph is returned when a paragraph index is out of range.
var ErrNoParagraph = errors.New("no such paragraph")

// selectFlags choose the paragraphs a command works on.
type selectFlags struct {
	paragraph int
	where     string
	all       bool
}

func addSelectFlags(cmd *cobra.Command, flags *selectFlags) {
	cmd.Flags().IntVarP(&flags.paragraph, "paragraph", "p", 0, "index of the paragraph to use (0-based)")
	cmd.Flags().StringVarP(&flags.where, "where", "w", "", `filter expression selecting paragraphs, e.g. field("Package") == "foo"`)
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "use every paragraph")
}

// selector resolves selectFlags against documents.
type selector struct {
	paragraph int
	all       bool
	filter    *query.Filter
}

func newSelector(cmd *cobra.Command, flags *selectFlags) (*selector, error) {
	given := 0
	for _, name := range []string{"paragraph", "where", "all"} {
		if cmd.Flags().Changed(name) {
			given++
		}
	}
	if given > 1 {
		return nil, fmt.Errorf("%w: --paragraph, --where and --all are mutually exclusive", ErrUsage)
	}
	if flags.paragraph < 0 {
		return nil, fmt.Errorf("%w: --paragraph must not be negative", ErrUsage)
	}

	s := &selector{paragraph: flags.paragraph, all: flags.all}
	if flags.where != "" {
		f, err := query.Compile(flags.where)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		logging.FromContext(commandContext(cmd)).Debug("compiled filter", logging.FieldFilter, f.String())
		s.filter = f
	}
	return s, nil
}

// indices returns the positions of the selected paragraphs in doc. Edits
// that keep the paragraph count stable can re-fetch them by position.
func (s *selector) indices(doc *deb822.Document) ([]int, error) {
	switch {
	case s.filter != nil:
		selected, err := s.filter.Select(doc)
		if err != nil {
			return nil, err
		}
		out := make([]int, 0, len(selected))
		for _, p := range selected {
			out = append(out, p.Index())
		}
		return out, nil
	case s.all:
		out := make([]int, doc.Len())
		for i := range out {
			out[i] = i
		}
		return out, nil
	default:
		if s.paragraph >= doc.Len() {
			return nil, fmt.Errorf("%w: %d (document has %d)", ErrNoParagraph, s.paragraph, doc.Len())
		}
		return []int{s.paragraph}, nil
	}
}

// paragraphs returns the selected paragraphs of doc.
func (s *selector) paragraphs(doc *deb822.Document) ([]deb822.Paragraph, error) {
	idx, err := s.indices(doc)
	if err != nil {
		return nil, err
	}
	out := make([]deb822.Paragraph, 0, len(idx))
	for _, i := range idx {
		p, _ := doc.Paragraph(i)
		out = append(out, p)
	}
	return out, nil
}

// each calls fn for every selected paragraph, re-fetching each one from the
// current generation of doc.
func (s *selector) each(doc *deb822.Document, fn func(p deb822.Paragraph) error) error {
	idx, err := s.indices(doc)
	if err != nil {
		return err
	}
	for _, i := range idx {
		p, ok := doc.Paragraph(i)
		if !ok {
			return fmt.Errorf("%w: %d", ErrNoParagraph, i)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}
