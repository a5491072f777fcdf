package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/deb822/pkg/cst"
	"github.com/yaklabco/deb822/pkg/parser"
)

type tok struct {
	Kind cst.TokenKind
	Text string
}

func simplify(tokens []*cst.Token) []tok {
	out := make([]tok, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, tok{Kind: t.Kind(), Text: t.Text()})
	}
	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty",
			input: "",
			want:  []tok{},
		},
		{
			name:  "simple field",
			input: "Source: foo\n",
			want: []tok{
				{cst.TokKey, "Source"},
				{cst.TokColon, ":"},
				{cst.TokWhitespace, " "},
				{cst.TokValue, "foo"},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "blank before colon and trailing blanks kept in value",
			input: "Key \t:  value  \n",
			want: []tok{
				{cst.TokKey, "Key"},
				{cst.TokWhitespace, " \t"},
				{cst.TokColon, ":"},
				{cst.TokWhitespace, "  "},
				{cst.TokValue, "value  "},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "empty value",
			input: "Depends:\n",
			want: []tok{
				{cst.TokKey, "Depends"},
				{cst.TokColon, ":"},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "value containing colon",
			input: "Homepage: https://example.com",
			want: []tok{
				{cst.TokKey, "Homepage"},
				{cst.TokColon, ":"},
				{cst.TokWhitespace, " "},
				{cst.TokValue, "https://example.com"},
			},
		},
		{
			name:  "continuation line",
			input: " \tbar,\n",
			want: []tok{
				{cst.TokIndent, " \t"},
				{cst.TokValue, "bar,"},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "comment",
			input: "# note: this\n",
			want: []tok{
				{cst.TokComment, "# note: this"},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "blank lines",
			input: "\n  \n",
			want: []tok{
				{cst.TokNewline, "\n"},
				{cst.TokWhitespace, "  "},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "crlf",
			input: "A: b\r\n\r\n",
			want: []tok{
				{cst.TokKey, "A"},
				{cst.TokColon, ":"},
				{cst.TokWhitespace, " "},
				{cst.TokValue, "b"},
				{cst.TokNewline, "\r\n"},
				{cst.TokNewline, "\r\n"},
			},
		},
		{
			name:  "line without colon",
			input: "garbage\n",
			want: []tok{
				{cst.TokError, "garbage"},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "empty key",
			input: ": value\n",
			want: []tok{
				{cst.TokError, ": value"},
				{cst.TokNewline, "\n"},
			},
		},
		{
			name:  "lone carriage return is content",
			input: "\r",
			want: []tok{
				{cst.TokError, "\r"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := parser.Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, simplify(tokens)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			assert.True(t, cst.ValidateTokens(tokens, tt.input))
		})
	}
}

func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"Source: foo\n",
		"A: b\n c\n .\n\n# x\nB:\n",
		"bad line\n \tindent\n",
		"A: b\r\n\r\nC :\td\r",
		": :\n#\n\n\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tokens := parser.Tokenize(input)
		if !cst.ValidateTokens(tokens, input) {
			t.Errorf("tokens do not cover input %q", input)
		}
	})
}
