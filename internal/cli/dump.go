package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/pkg/cst"
)

func newDumpCommand() *cobra.Command {
	var paragraph int

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the concrete syntax tree of a file",
		Long: `Print the concrete syntax tree of FILE, one node or token per line,
with byte ranges and quoted token text. FILE may be "-" for standard input.`,
		Example: `  deb822 dump debian/control
  deb822 dump --paragraph 1 debian/control`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0], false)
			if err != nil {
				return err
			}

			root := doc.Tree().Root()
			if cmd.Flags().Changed("paragraph") {
				p, ok := doc.Paragraph(paragraph)
				if !ok {
					return fmt.Errorf("%w: %d (document has %d)", ErrNoParagraph, paragraph, doc.Len())
				}
				root = p.View()
			}

			if err := cst.Dump(cmd.OutOrStdout(), root); err != nil {
				return fmt.Errorf("write tree: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&paragraph, "paragraph", "p", 0, "dump only this paragraph (0-based)")

	return cmd
}
