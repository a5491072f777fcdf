package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/reporter"
)

type fmtFlags struct {
	check bool
	diff  bool

	wrap               bool
	wrapIndent         string
	immediateEmptyLine bool
	oneLinerWidth      int
	sortFields         []string
	sortParagraphs     string
}

// wrapOptions reports whether wrap-and-sort was requested and with which
// options. Any wrap or sort flag implies --wrap.
func (f *fmtFlags) wrapOptions(cmd *cobra.Command) (deb822.WrapOptions, bool, error) {
	var opts deb822.WrapOptions
	enabled := f.wrap
	for _, name := range []string{"wrap-indent", "immediate-empty-line", "one-liner-width", "sort-fields", "sort-paragraphs"} {
		if cmd.Flags().Changed(name) {
			enabled = true
		}
	}
	if !enabled {
		return opts, false, nil
	}

	switch f.wrapIndent {
	case "":
	case "field":
		opts.Indent = deb822.FieldNameIndent
	default:
		n, err := strconv.Atoi(f.wrapIndent)
		if err != nil || n < 1 {
			return opts, false, fmt.Errorf("%w: --wrap-indent must be a positive number or \"field\", got %q", ErrUsage, f.wrapIndent)
		}
		opts.Indent = deb822.Indentation(n)
	}
	if f.oneLinerWidth < 0 {
		return opts, false, fmt.Errorf("%w: --one-liner-width must not be negative", ErrUsage)
	}

	opts.ImmediateEmptyLine = f.immediateEmptyLine
	opts.OneLinerWidth = f.oneLinerWidth
	if len(f.sortFields) > 0 {
		opts.SortFields = deb822.FieldOrder(f.sortFields...)
	}
	if f.sortParagraphs != "" {
		opts.SortParagraphs = deb822.ByFieldValue(f.sortParagraphs)
	}
	return opts, true, nil
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &runFlags{}
	fflags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Normalize field layout",
		Long: `Rewrite fields so that the colon is followed by the configured separator.
Values, continuation lines, comments and blank lines are left alone.

With --wrap, every field is rewritten in canonical layout instead:
"Key: value" with continuation lines re-indented, paragraphs separated by
a single blank line, and fields or paragraphs optionally sorted. Comment
lines move with the field or paragraph that follows them.`,
		Example: `  deb822 fmt debian/control         # Rewrite in place
  deb822 fmt --check .              # Exit 1 if any file would change
  deb822 fmt --diff .               # Print a diff instead of writing
  deb822 fmt --wrap --wrap-indent field debian/control
  deb822 fmt --sort-fields Source,Maintainer --sort-paragraphs Package debian/control`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wopts, wrap, err := fflags.wrapOptions(cmd)
			if err != nil {
				return err
			}
			plan := runPlan{
				task: func(doc *deb822.Document) error {
					if wrap {
						_, err := doc.WrapAndSort(wopts)
						return err
					}
					_, err := doc.Format()
					return err
				},
				exit: func(c *config.Config) ExitOptions {
					return ExitOptions{FailOnSyntaxErrors: c.Strict, FailOnChanges: fflags.check}
				},
			}
			if fflags.check || fflags.diff {
				cfg.DryRun = true
			}
			if fflags.diff {
				plan.format = reporter.FormatDiff
			}
			return runFiles(cmd, args, &cfg, flags, plan)
		},
	}

	addRunFlags(cmd, &cfg, flags, true)
	cmd.Flags().BoolVar(&fflags.check, "check", false, "report files that would change and exit 1 without writing")
	cmd.Flags().BoolVar(&fflags.diff, "diff", false, "print a unified diff without writing")
	cmd.Flags().BoolVar(&fflags.wrap, "wrap", false, "rewrite every field in canonical layout")
	cmd.Flags().StringVar(&fflags.wrapIndent, "wrap-indent", "", `continuation indent in spaces, or "field" to align with the field name (default 1)`)
	cmd.Flags().BoolVar(&fflags.immediateEmptyLine, "immediate-empty-line", false, "start multi-line values on the line after the key")
	cmd.Flags().IntVar(&fflags.oneLinerWidth, "one-liner-width", 0, "keep the separator of single-line fields that fit this width")
	cmd.Flags().StringSliceVar(&fflags.sortFields, "sort-fields", nil, "put these fields first, in this order")
	cmd.Flags().StringVar(&fflags.sortParagraphs, "sort-paragraphs", "", "sort paragraphs by the value of this field")

	return cmd
}
