package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deb822/pkg/cst"
	"github.com/yaklabco/deb822/pkg/parser"
)

const controlFile = `Source: foo
Maintainer: Foo Bar <foo@example.com>
Section: net

# This is a comment

Package: foo
Architecture: all
Depends:
 bar,
 blah
Description: This is a description
 And it is
 .
 multiple
 lines
`

// shape lists the kinds of the root's children.
func shape(tree *cst.Tree) []string {
	var out []string
	for _, c := range tree.Root().Children() {
		if n, ok := c.Node(); ok {
			out = append(out, n.Kind().String())
			continue
		}
		tok, _ := c.Token()
		out = append(out, tok.Kind().String())
	}
	return out
}

func TestParseControlFile(t *testing.T) {
	t.Parallel()

	tree := parser.Parse(controlFile)
	require.Equal(t, controlFile, tree.Text())

	assert.Equal(t, []string{"PARAGRAPH", "NEWLINE", "COMMENT_LINE", "NEWLINE", "PARAGRAPH"}, shape(tree))

	root := tree.Root().Children()
	start, end := root[0].Range()
	assert.Equal(t, [2]int{0, 63}, [2]int{start, end})
	start, end = root[2].Range()
	assert.Equal(t, [2]int{64, 84}, [2]int{start, end})
	start, end = root[4].Range()
	assert.Equal(t, [2]int{85, 203}, [2]int{start, end})

	assert.Len(t, cst.FindNodes(root[0], cst.NodeField), 3)
	assert.Len(t, cst.FindNodes(root[4], cst.NodeField), 4)
	assert.Empty(t, cst.FindNodes(tree.Root(), cst.NodeError))
}

func TestBuildDump(t *testing.T) {
	t.Parallel()

	input := "Depends:\n bar,\n blah\n"
	want := `DOCUMENT@0..21
  PARAGRAPH@0..21
    FIELD@0..21
      KEY@0..7 "Depends"
      COLON@7..8 ":"
      NEWLINE@8..9 "\n"
      INDENT@9..10 " "
      VALUE@10..14 "bar,"
      NEWLINE@14..15 "\n"
      INDENT@15..16 " "
      VALUE@16..20 "blah"
      NEWLINE@20..21 "\n"
`
	assert.Equal(t, want, cst.DumpString(parser.Parse(input).Root()))
}

func TestBuildStructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty document",
			input: "",
			want:  "DOCUMENT@0..0\n",
		},
		{
			name:  "only blank lines",
			input: "\n\n",
			want:  "DOCUMENT@0..2\n  NEWLINE@0..1 \"\\n\"\n  NEWLINE@1..2 \"\\n\"\n",
		},
		{
			name:  "orphan continuation line",
			input: " orphan\n",
			want: `DOCUMENT@0..8
  ERROR_LINE@0..8
    INDENT@0..1 " "
    VALUE@1..7 "orphan"
    NEWLINE@7..8 "\n"
`,
		},
		{
			name:  "error line inside paragraph",
			input: "A: b\nbad\nC: d\n",
			want: `DOCUMENT@0..14
  PARAGRAPH@0..14
    FIELD@0..5
      KEY@0..1 "A"
      COLON@1..2 ":"
      WHITESPACE@2..3 " "
      VALUE@3..4 "b"
      NEWLINE@4..5 "\n"
    ERROR_LINE@5..9
      ERROR@5..8 "bad"
      NEWLINE@8..9 "\n"
    FIELD@9..14
      KEY@9..10 "C"
      COLON@10..11 ":"
      WHITESPACE@11..12 " "
      VALUE@12..13 "d"
      NEWLINE@13..14 "\n"
`,
		},
		{
			name:  "comment between fields",
			input: "A: b\n#c\nC: d",
			want: `DOCUMENT@0..12
  PARAGRAPH@0..12
    FIELD@0..5
      KEY@0..1 "A"
      COLON@1..2 ":"
      WHITESPACE@2..3 " "
      VALUE@3..4 "b"
      NEWLINE@4..5 "\n"
    COMMENT_LINE@5..8
      COMMENT@5..7 "#c"
      NEWLINE@7..8 "\n"
    FIELD@8..12
      KEY@8..9 "C"
      COLON@9..10 ":"
      WHITESPACE@10..11 " "
      VALUE@11..12 "d"
`,
		},
		{
			name:  "comment inside continuation",
			input: "A: b,\n# c,\n d\n",
			want: `DOCUMENT@0..14
  PARAGRAPH@0..14
    FIELD@0..14
      KEY@0..1 "A"
      COLON@1..2 ":"
      WHITESPACE@2..3 " "
      VALUE@3..5 "b,"
      NEWLINE@5..6 "\n"
      COMMENT_LINE@6..11
        COMMENT@6..10 "# c,"
        NEWLINE@10..11 "\n"
      INDENT@11..12 " "
      VALUE@12..13 "d"
      NEWLINE@13..14 "\n"
`,
		},
		{
			name:  "error line before any paragraph",
			input: "bad\nA:\n",
			want: `DOCUMENT@0..7
  ERROR_LINE@0..4
    ERROR@0..3 "bad"
    NEWLINE@3..4 "\n"
  PARAGRAPH@4..7
    FIELD@4..7
      KEY@4..5 "A"
      COLON@5..6 ":"
      NEWLINE@6..7 "\n"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := parser.Parse(tt.input)
			assert.Equal(t, tt.input, tree.Text())
			assert.Equal(t, tt.want, cst.DumpString(tree.Root()))
		})
	}
}

func TestBuildBlankLinesPreserved(t *testing.T) {
	t.Parallel()

	input := "A: b\n\n\n  \nC: d\n"
	tree := parser.Parse(input)
	assert.Equal(t, input, tree.Text())
	assert.Equal(t, []string{"PARAGRAPH", "NEWLINE", "NEWLINE", "WHITESPACE", "NEWLINE", "PARAGRAPH"}, shape(tree))
}

func TestErrorContainment(t *testing.T) {
	t.Parallel()

	good := "A: b\n\nC: d\n"
	bad := "A: b\n\n???\n\nC: d\n"

	goodTree, badTree := parser.Parse(good), parser.Parse(bad)
	goodParas := cst.FindNodes(goodTree.Root(), cst.NodeParagraph)
	badParas := cst.FindNodes(badTree.Root(), cst.NodeParagraph)
	require.Len(t, badParas, len(goodParas))
	for i := range goodParas {
		assert.Equal(t, goodParas[i].Text(), badParas[i].Text())
	}
	assert.Len(t, cst.FindNodes(badTree.Root(), cst.NodeError), 1)
}

func FuzzParseRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		controlFile,
		"A: b\n# c\n d\n\n\n",
		" x\ny\r\n:\n\tz",
		strings.Repeat("K: v\n", 4),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tree := parser.Parse(input)
		if got := tree.Text(); got != input {
			t.Fatalf("round trip mismatch: got %q, want %q", got, input)
		}
		again := parser.Parse(tree.Text())
		if diff := cmp.Diff(cst.DumpString(tree.Root()), cst.DumpString(again.Root())); diff != "" {
			t.Fatalf("re-parse changed tree (-first +second):\n%s", diff)
		}
	})
}
