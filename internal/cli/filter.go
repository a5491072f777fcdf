package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/query"
)

type filterFlags struct {
	keys    []string
	count   bool
	json    bool
	compact bool
	strict  bool
}

func newFilterCommand() *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "filter EXPR [files...]",
		Short: "Print the paragraphs matching an expression",
		Long: `Print every paragraph for which EXPR is true. Matching paragraphs are
printed exactly as they appear in the input, comments included. With
--keys, only the named fields are printed.

EXPR is evaluated for each paragraph with these functions:
  field(key)      folded value of the first field named key, or ""
  values(key)     every value of a repeated key
  has(key)        whether the paragraph has key
  fields()        the keys of the paragraph, in order
  split(s, sep)   strings.Split
and the variable index (0-based paragraph position). Key lookups ignore
case. Without files, standard input is read.

Exits with status 2 when nothing matches.`,
		Example: `  deb822 filter 'field("Architecture") == "all"' debian/control
  deb822 filter --keys Package,Version 'has("Essential")' /var/lib/dpkg/status
  deb822 filter --count 'field("Package") matches "^lib"' Packages`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.keys, "keys", "k", nil, "print only these fields")
	cmd.Flags().BoolVarP(&flags.count, "count", "c", false, "print the number of matching paragraphs")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on syntax errors")

	return cmd
}

func runFilter(cmd *cobra.Command, args []string, flags *filterFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	filter, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	cfg, err := loadReadConfig(cmd, flags.strict, flags.json)
	if err != nil {
		return err
	}

	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{stdinPath}
	}

	var (
		matches []jsonParagraph
		text    strings.Builder
		count   int
	)
	for _, path := range paths {
		doc, err := readDocument(cmd, path, cfg.Strict)
		if err != nil {
			return err
		}
		selected, err := filter.Select(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("filtered document",
			logging.FieldPath, path,
			logging.FieldFilter, filter.String(),
			logging.FieldParagraphs, len(selected),
		)

		for _, p := range selected {
			count++
			switch {
			case flags.count:
			case cfg.Format == config.FormatJSON:
				matches = append(matches, newJSONParagraph(path, p, flags.keys))
			default:
				if text.Len() > 0 {
					text.WriteByte('\n')
				}
				text.WriteString(paragraphText(p, flags.keys))
			}
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case flags.count:
		if _, err := fmt.Fprintln(out, count); err != nil {
			return fmt.Errorf("write count: %w", err)
		}
	case cfg.Format == config.FormatJSON:
		if matches == nil {
			matches = []jsonParagraph{}
		}
		if err := writeJSON(out, matches, flags.compact); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprint(out, text.String()); err != nil {
			return fmt.Errorf("write paragraphs: %w", err)
		}
	}

	if count == 0 {
		return fmt.Errorf("%w: no paragraph matches %s", ErrNoMatch, filter.String())
	}
	return nil
}

// paragraphText returns p verbatim, or a paragraph rebuilt from the named
// fields when keys is not empty. The result ends with a line terminator.
func paragraphText(p deb822.Paragraph, keys []string) string {
	text := p.Text()
	if len(keys) > 0 {
		pairs := pickPairs(p, keys)
		if len(pairs) == 0 {
			return ""
		}
		doc := deb822.New()
		if _, err := doc.AppendParagraph(pairs...); err != nil {
			return ""
		}
		text = doc.String()
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}
