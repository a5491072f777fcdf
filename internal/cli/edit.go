package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/deb822"
	"github.com/yaklabco/deb822/pkg/runner"
)

// editBuilder turns positional arguments into a task and the remaining
// paths.
type editBuilder func(cmd *cobra.Command, args []string, sel *selector) (runner.Task, []string, error)

// editDef describes a multi-file editing command.
type editDef struct {
	use, short, long, example string
	minArgs                   int
	selectable                bool
	build                     editBuilder
}

func editCommand(def editDef) *cobra.Command {
	var cfg config.Config
	flags := &runFlags{}
	sflags := &selectFlags{}

	cmd := &cobra.Command{
		Use:     def.use,
		Short:   def.short,
		Long:    def.long,
		Example: def.example,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(def.minArgs)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var sel *selector
			if def.selectable {
				var err error
				if sel, err = newSelector(cmd, sflags); err != nil {
					return err
				}
			}
			task, paths, err := def.build(cmd, args, sel)
			if err != nil {
				return err
			}
			return runFiles(cmd, paths, &cfg, flags, runPlan{task: task})
		},
	}

	addRunFlags(cmd, &cfg, flags, true)
	if def.selectable {
		addSelectFlags(cmd, sflags)
	}

	return cmd
}

func newSetCommand() *cobra.Command {
	return editCommand(editDef{
		use:   "set KEY VALUE [paths...]",
		short: "Set a field, replacing its value or appending it",
		long: `Set KEY to VALUE in the selected paragraphs. An existing field keeps its
position and layout; a missing one is appended to the paragraph.

Multi-line values use newlines; an empty line inside a value is written as
a continuation line holding a single ".". A VALUE of "-" is read from
standard input.`,
		example: `  deb822 set Maintainer "Jane <jane@example.org>" debian/control
  deb822 set --where 'field("Package") == "foo"' Section utils debian/control
  deb822 set --all Architecture any debian/control
  printf 'line one\n\nline three\n' | deb822 set Description - control`,
		minArgs:    2,
		selectable: true,
		build: func(cmd *cobra.Command, args []string, sel *selector) (runner.Task, []string, error) {
			key := args[0]
			if !deb822.ValidKey(key) {
				return nil, nil, fmt.Errorf("%w: invalid key %q", ErrUsage, key)
			}
			value, err := readValue(cmd, args[1])
			if err != nil {
				return nil, nil, err
			}
			task := func(doc *deb822.Document) error {
				return sel.each(doc, func(p deb822.Paragraph) error {
					_, err := doc.Set(p, key, value)
					return err
				})
			}
			return task, args[2:], nil
		},
	})
}

func newRmCommand() *cobra.Command {
	return editCommand(editDef{
		use:   "rm KEY [paths...]",
		short: "Remove every field named KEY",
		long: `Remove every field named KEY from the selected paragraphs, including
its continuation lines. Paragraphs without the field are left alone.`,
		example: `  deb822 rm Homepage debian/control
  deb822 rm --all Vcs-Browser debian/control`,
		minArgs:    1,
		selectable: true,
		build: func(_ *cobra.Command, args []string, sel *selector) (runner.Task, []string, error) {
			key := args[0]
			task := func(doc *deb822.Document) error {
				return sel.each(doc, func(p deb822.Paragraph) error {
					_, err := doc.RemoveKey(p, key)
					return err
				})
			}
			return task, args[1:], nil
		},
	})
}

func newRenameCommand() *cobra.Command {
	return editCommand(editDef{
		use:   "rename OLD NEW [paths...]",
		short: "Rename a field, keeping its value and position",
		long: `Rename every field named OLD to NEW in the selected paragraphs. Only the
key text changes; the value keeps its bytes.`,
		example: `  deb822 rename XS-Testsuite Testsuite debian/control`,
		minArgs:    2,
		selectable: true,
		build: func(_ *cobra.Command, args []string, sel *selector) (runner.Task, []string, error) {
			oldKey, newKey := args[0], args[1]
			if !deb822.ValidKey(newKey) {
				return nil, nil, fmt.Errorf("%w: invalid key %q", ErrUsage, newKey)
			}
			task := func(doc *deb822.Document) error {
				return sel.each(doc, func(p deb822.Paragraph) error {
					return renameAll(doc, p.Index(), oldKey, newKey)
				})
			}
			return task, args[2:], nil
		},
	})
}

// renameAll renames every field named oldKey in the i-th paragraph.
func renameAll(doc *deb822.Document, i int, oldKey, newKey string) error {
	p, _ := doc.Paragraph(i)
	n := len(p.FieldsNamed(oldKey))
	sameName := strings.EqualFold(oldKey, newKey)
	for k := range n {
		p, _ = doc.Paragraph(i)
		fields := p.FieldsNamed(oldKey)
		f := fields[0]
		if sameName {
			f = fields[k]
		}
		if _, err := doc.RenameKey(f, newKey); err != nil {
			return err
		}
	}
	return nil
}

func newAppendCommand() *cobra.Command {
	return editCommand(editDef{
		use:   "append KEY=VALUE... -- [paths...]",
		short: "Append a new paragraph",
		long: `Append a paragraph built from KEY=VALUE pairs after the last paragraph.
Pairs come first; the remaining arguments after "--" are files.`,
		example: `  deb822 append Package=foo-doc Architecture=all -- debian/control`,
		minArgs:    1,
		selectable: false,
		build: func(cmd *cobra.Command, args []string, _ *selector) (runner.Task, []string, error) {
			pairArgs, paths := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				pairArgs, paths = args[:dash], args[dash:]
			}
			pairs, err := parsePairs(pairArgs)
			if err != nil {
				return nil, nil, err
			}
			task := func(doc *deb822.Document) error {
				_, err := doc.AppendParagraph(pairs...)
				return err
			}
			return task, paths, nil
		},
	})
}

// parsePairs reads KEY=VALUE arguments.
func parsePairs(args []string) ([]deb822.Pair, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: at least one KEY=VALUE pair is required", ErrUsage)
	}
	pairs := make([]deb822.Pair, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || !deb822.ValidKey(key) {
			return nil, fmt.Errorf("%w: expected KEY=VALUE, got %q", ErrUsage, arg)
		}
		pairs = append(pairs, deb822.Pair{Key: key, Value: value})
	}
	return pairs, nil
}
