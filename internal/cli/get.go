package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/internal/ui/pretty"
	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/deb822"
)

type getFlags struct {
	selectFlags
	every   bool
	json    bool
	compact bool
	strict  bool
}

func newGetCommand() *cobra.Command {
	flags := &getFlags{}

	cmd := &cobra.Command{
		Use:   "get FILE [KEY]",
		Short: "Print a field value, or every field of a paragraph",
		Long: `Print the value of KEY from the selected paragraphs of FILE. Without KEY,
print every field of the selected paragraphs.

Values are printed folded: continuation lines are joined with newlines and
a "." line becomes an empty line. Key lookup ignores case. FILE may be "-"
for standard input.

Exits with status 2 when no selected paragraph has KEY.`,
		Example: `  deb822 get debian/control Source
  deb822 get --all debian/control Package
  deb822 get --where 'field("Package") == "foo"' debian/control Depends
  deb822 get --paragraph 1 debian/control`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args, flags)
		},
	}

	addSelectFlags(cmd, &flags.selectFlags)
	cmd.Flags().BoolVarP(&flags.every, "every", "e", false, "print every value of a repeated KEY")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on syntax errors")

	return cmd
}

func runGet(cmd *cobra.Command, args []string, flags *getFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	sel, err := newSelector(cmd, &flags.selectFlags)
	if err != nil {
		return err
	}

	cfg, err := loadReadConfig(cmd, flags.strict, flags.json)
	if err != nil {
		return err
	}

	path := args[0]
	doc, err := readDocument(cmd, path, cfg.Strict)
	if err != nil {
		return err
	}

	paragraphs, err := sel.paragraphs(doc)
	if err != nil {
		return err
	}
	logger.Debug("selected paragraphs",
		logging.FieldPath, path,
		logging.FieldParagraphs, len(paragraphs),
	)

	out := cmd.OutOrStdout()
	asJSON := cfg.Format == config.FormatJSON

	if len(args) == 1 {
		if asJSON {
			list := make([]jsonParagraph, 0, len(paragraphs))
			for _, p := range paragraphs {
				list = append(list, newJSONParagraph("", p, nil))
			}
			return writeJSON(out, list, flags.compact)
		}
		return writeParagraphs(out, pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out)), paragraphs)
	}

	key := args[1]
	var values []jsonValue
	for _, p := range paragraphs {
		found := p.GetAll(key)
		if !flags.every && len(found) > 1 {
			found = found[:1]
		}
		for _, v := range found {
			values = append(values, jsonValue{Paragraph: p.Index(), Key: key, Value: v})
		}
	}

	if asJSON {
		if values == nil {
			values = []jsonValue{}
		}
		if err := writeJSON(out, values, flags.compact); err != nil {
			return err
		}
	} else {
		for _, v := range values {
			if _, err := fmt.Fprintln(out, v.Value); err != nil {
				return fmt.Errorf("write value: %w", err)
			}
		}
	}

	if len(values) == 0 {
		logger.Debug("key not found", logging.FieldPath, path, logging.FieldKey, key)
		return fmt.Errorf("%w: %s has no field %q", ErrNoMatch, path, key)
	}
	return nil
}

// writeParagraphs prints every field of paragraphs with styled keys,
// separating paragraphs with a blank line.
func writeParagraphs(w io.Writer, styles *pretty.Styles, paragraphs []deb822.Paragraph) error {
	var sb strings.Builder
	for i, p := range paragraphs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for k, v := range p.Items() {
			sb.WriteString(styles.FormatField(k, v))
		}
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write paragraphs: %w", err)
	}
	return nil
}

// loadReadConfig loads configuration for commands that only read.
func loadReadConfig(cmd *cobra.Command, strict, asJSON bool) (*config.Config, error) {
	flagCfg := &config.Config{Strict: strict}
	if asJSON {
		flagCfg.Format = config.FormatJSON
	}
	cfg, _, err := loadConfig(cmd, flagCfg)
	return cfg, err
}
