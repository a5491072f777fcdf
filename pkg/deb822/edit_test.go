package deb822_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deb822/pkg/deb822"
)

// firstField returns the first field named key in the first paragraph.
func firstField(t *testing.T, doc *deb822.Document, key string) deb822.Field {
	t.Helper()

	p, ok := doc.Paragraph(0)
	require.True(t, ok, "document has no paragraph")
	f, ok := p.Field(key)
	require.True(t, ok, "no field %q", key)
	return f
}

func TestFieldSetValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		key   string
		value string
		want  string
	}{
		{
			name:  "single line",
			input: "A: b\nC: d\n",
			key:   "A",
			value: "x",
			want:  "A: x\nC: d\n",
		},
		{
			name:  "collapse continuation lines",
			input: "Depends: bar,\n baz\nC: d\n",
			key:   "Depends",
			value: "qux",
			want:  "Depends: qux\nC: d\n",
		},
		{
			name:  "crlf kept",
			input: "A: b\r\nC: d\r\n",
			key:   "A",
			value: "x\ny",
			want:  "A: x\r\n y\r\nC: d\r\n",
		},
		{
			name:  "empty first line kept",
			input: "Depends:\n bar,\n blah\nX: y\n",
			key:   "Depends",
			value: "a,\nb",
			want:  "Depends:\n a,\n b\nX: y\n",
		},
		{
			name:  "field indent kept",
			input: "D: a\n   b\n",
			key:   "D",
			value: "x\ny\n\nz",
			want:  "D: x\n   y\n   .\n   z\n",
		},
		{
			name:  "paragraph indent used when field has none",
			input: "A: b\nD: a\n\tb\n",
			key:   "A",
			value: "1\n2",
			want:  "A: 1\n\t2\nD: a\n\tb\n",
		},
		{
			name:  "missing final newline kept",
			input: "A: b",
			key:   "A",
			value: "c\nd",
			want:  "A: c\n d",
		},
		{
			name:  "empty value",
			input: "A: b\nC: d\n",
			key:   "A",
			value: "",
			want:  "A:\nC: d\n",
		},
		{
			name:  "no separator kept",
			input: "A:b\n",
			key:   "A",
			value: "c",
			want:  "A:c\n",
		},
		{
			name:  "blank before colon kept",
			input: "A : b\n",
			key:   "A",
			value: "c",
			want:  "A : c\n",
		},
		{
			name:  "leading empty line forces block layout",
			input: "A: b\n",
			key:   "A",
			value: "\nc",
			want:  "A:\n .\n c\n",
		},
		{
			name:  "comment inside continuation moves after field",
			input: "A: x\n y\n# c2\n z\nB: 2\n",
			key:   "A",
			value: "new",
			want:  "A: new\n# c2\nB: 2\n",
		},
		{
			name:  "comment inside unterminated field keeps document unterminated",
			input: "A: x\n# c\n y",
			key:   "A",
			value: "v\nw",
			want:  "A: v\n w\n# c",
		},
		{
			name:  "key casing kept",
			input: "source: a\n",
			key:   "Source",
			value: "b",
			want:  "source: b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := deb822.Parse(tt.input)
			f := firstField(t, doc, tt.key)

			nf, err := f.SetValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, nf.View().Tree().Text())
			assert.Equal(t, tt.input, doc.String(), "original tree must be unchanged")

			reparsed := deb822.Parse(tt.want)
			assert.Equal(t, tt.value, firstField(t, reparsed, tt.key).Value())
		})
	}
}

func TestFoldingLaw(t *testing.T) {
	t.Parallel()

	values := []string{
		"single",
		"two\nlines",
		"with\n\nempty line",
		"\nleading empty line",
		"trailing empty line\n",
		"\n\n",
		"a\n\n\nb",
		"",
		"interior  spacing\nkept  here",
	}
	inputs := []string{"A: x\n", "A:\n x\n y\n", "A: x\r\n\tmore\r\n", "A: x"}

	for _, input := range inputs {
		for _, v := range values {
			doc := deb822.Parse(input)
			f := firstField(t, doc, "A")
			_, err := doc.SetValue(f, v)
			require.NoError(t, err)

			reparsed := deb822.Parse(doc.String())
			assert.Empty(t, reparsed.Errors())
			assert.Equal(t, v, firstField(t, reparsed, "A").Value(), "input %q value %q", input, v)
		}
	}
}

func TestInsertField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		pos   int
		key   string
		value string
		want  string
	}{
		{
			name:  "middle",
			input: "A: b\nC: d\n",
			pos:   1,
			key:   "X",
			value: "y",
			want:  "A: b\nX: y\nC: d\n",
		},
		{
			name:  "first",
			input: "A: b\n",
			pos:   0,
			key:   "X",
			value: "y",
			want:  "X: y\nA: b\n",
		},
		{
			name:  "ahead of comments above target",
			input: "A: b\n# about C\nC: d\n",
			pos:   1,
			key:   "X",
			value: "y",
			want:  "A: b\nX: y\n# about C\nC: d\n",
		},
		{
			name:  "end of unterminated document",
			input: "A: b",
			pos:   1,
			key:   "X",
			value: "y",
			want:  "A: b\nX: y",
		},
		{
			name:  "paragraph separator copied",
			input: "A:\tb\n",
			pos:   1,
			key:   "X",
			value: "y",
			want:  "A:\tb\nX:\ty\n",
		},
		{
			name:  "crlf and indent copied",
			input: "A: b\r\n   c\r\n",
			pos:   1,
			key:   "X",
			value: "1\n2",
			want:  "A: b\r\n   c\r\nX: 1\r\n   2\r\n",
		},
		{
			name:  "second paragraph untouched",
			input: "A: b\n\nC: d\n",
			pos:   1,
			key:   "X",
			value: "",
			want:  "A: b\nX:\n\nC: d\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := deb822.Parse(tt.input)
			p, _ := doc.Paragraph(0)

			f, err := doc.InsertField(p, tt.pos, tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.String())
			assert.Equal(t, tt.key, f.Key())
			assert.Equal(t, tt.value, f.Value())
		})
	}
}

func TestInsertFieldErrors(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("A: b\n")
	p, _ := doc.Paragraph(0)

	for _, key := range []string{"", "#x", "-x", "a b", "a:b", "a\nb", "tab\t"} {
		_, err := p.InsertField(0, key, "v")
		require.ErrorIs(t, err, deb822.ErrInvalidKey, "key %q", key)

		var serr *deb822.StructuralError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "insert field", serr.Op)
		assert.Equal(t, key, serr.Key)
	}

	_, err := p.InsertField(2, "X", "y")
	require.ErrorIs(t, err, deb822.ErrOutOfRange)
	_, err = p.InsertField(-1, "X", "y")
	require.ErrorIs(t, err, deb822.ErrOutOfRange)

	assert.Equal(t, "A: b\n", doc.String())
}

func TestParagraphSet(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("A: 1\nB: 2\n")
	p, _ := doc.Paragraph(0)

	_, err := doc.Set(p, "b", "20")
	require.NoError(t, err)
	assert.Equal(t, "A: 1\nB: 20\n", doc.String())

	p, _ = doc.Paragraph(0)
	_, err = doc.Set(p, "C", "3")
	require.NoError(t, err)
	assert.Equal(t, "A: 1\nB: 20\nC: 3\n", doc.String())
}

func TestFieldRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		key   string
		want  string
	}{
		{name: "middle", input: "A: b\nC: d\nE: f\n", key: "C", want: "A: b\nE: f\n"},
		{name: "first", input: "A: b\nC: d\n", key: "A", want: "C: d\n"},
		{name: "with continuation", input: "A: b\nC: d\n e\nE: f\n", key: "C", want: "A: b\nE: f\n"},
		{name: "last unterminated", input: "A: b\nC: d", key: "C", want: "A: b"},
		{name: "comment above kept", input: "A: b\n# c\nC: d\n", key: "C", want: "A: b\n# c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := deb822.Parse(tt.input)
			p, err := doc.RemoveField(firstField(t, doc, tt.key))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.String())
			assert.False(t, p.ContainsKey(tt.key))
		})
	}
}

func TestParagraphRemoveKey(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("A: 1\nB: 2\na: 3\n\nA: 4\n")
	p, _ := doc.Paragraph(0)

	np, err := doc.RemoveKey(p, "A")
	require.NoError(t, err)
	assert.Equal(t, "B: 2\n\nA: 4\n", doc.String())
	assert.Equal(t, []string{"B"}, np.Keys())

	same, err := np.Remove("missing")
	require.NoError(t, err)
	assert.Same(t, np.View().Tree(), same.View().Tree())
}

func TestRename(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("Source: foo\nSection : net\n")
	f := firstField(t, doc, "section")

	nf, err := doc.RenameKey(f, "Priority")
	require.NoError(t, err)
	assert.Equal(t, "Source: foo\nPriority : net\n", doc.String())
	assert.Equal(t, "net", nf.Value())

	_, err = doc.RenameKey(nf, "bad key")
	require.ErrorIs(t, err, deb822.ErrInvalidKey)

	p, _ := doc.Paragraph(0)
	np, ok, err := p.Rename("source", "Package")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Package: foo\nPriority : net\n", np.View().Tree().Text())

	_, ok, err = p.Rename("missing", "X")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertParagraph(t *testing.T) {
	t.Parallel()

	pair := deb822.Pair{Key: "X", Value: "y"}
	tests := []struct {
		name  string
		input string
		pos   int
		want  string
	}{
		{name: "empty document", input: "", pos: 0, want: "X: y\n"},
		{name: "end", input: "A: b\n", pos: 1, want: "A: b\n\nX: y\n"},
		{name: "end unterminated", input: "A: b", pos: 1, want: "A: b\n\nX: y"},
		{name: "end after blank line", input: "A: b\n\n", pos: 1, want: "A: b\n\nX: y\n"},
		{name: "start", input: "A: b\n", pos: 0, want: "X: y\n\nA: b\n"},
		{name: "ahead of comments", input: "A: b\n\n# c\nC: d\n", pos: 1, want: "A: b\n\nX: y\n\n# c\nC: d\n"},
		{name: "after comment only document", input: "# hi\n", pos: 0, want: "# hi\nX: y\n"},
		{name: "crlf", input: "A: b\r\n", pos: 1, want: "A: b\r\n\r\nX: y\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := deb822.Parse(tt.input)
			p, err := doc.InsertParagraph(tt.pos, pair)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.String())
			assert.Equal(t, tt.pos, p.Index())

			got, _ := p.Get("X")
			assert.Equal(t, "y", got)

			reparsed := deb822.Parse(doc.String())
			assert.Equal(t, doc.Len(), reparsed.Len())
		})
	}
}

func TestInsertParagraphErrors(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("A: b\n")

	_, err := doc.InsertParagraph(0)
	require.ErrorIs(t, err, deb822.ErrEmptyParagraph)

	_, err = doc.InsertParagraph(2, deb822.Pair{Key: "X", Value: "y"})
	require.ErrorIs(t, err, deb822.ErrOutOfRange)

	_, err = doc.InsertParagraph(0, deb822.Pair{Key: "bad key", Value: "y"})
	require.ErrorIs(t, err, deb822.ErrInvalidKey)

	_, err = doc.InsertParagraphFrom(0, deb822.NewParagraph())
	require.ErrorIs(t, err, deb822.ErrEmptyParagraph)

	assert.Equal(t, "A: b\n", doc.String())
}

func TestInsertParagraphFrom(t *testing.T) {
	t.Parallel()

	src := deb822.NewParagraph()
	f, err := src.AppendField("Package", "new")
	require.NoError(t, err)
	src, _ = f.Paragraph()

	doc := deb822.Parse("Package: old\n")
	p, err := doc.InsertParagraphFrom(1, src)
	require.NoError(t, err)
	assert.Equal(t, "Package: old\n\nPackage: new\n", doc.String())
	assert.Same(t, mustNode(t, src), mustNode(t, p), "the inserted paragraph shares the source node")

	first, err := deb822.InsertParagraph(doc.Tree(), 0, deb822.Pair{Key: "Source", Value: "s"})
	require.NoError(t, err)
	assert.Equal(t, "Source: s\n\nPackage: old\n\nPackage: new\n", first.View().Tree().Text())
}

func mustNode(t *testing.T, p deb822.Paragraph) any {
	t.Helper()

	n, ok := p.View().Node()
	require.True(t, ok)
	return n
}

func TestRemoveParagraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		index int
		want  string
	}{
		{name: "first", input: "A: b\n\nC: d\n", index: 0, want: "C: d\n"},
		{name: "last", input: "A: b\n\nC: d\n", index: 1, want: "A: b\n"},
		{name: "last unterminated", input: "A: b\n\nC: d", index: 1, want: "A: b"},
		{name: "middle keeps neighbours", input: "A: b\n\n\nC: d\n\nE: f\n", index: 1, want: "A: b\n\n\nE: f\n"},
		{name: "only", input: "A: b\n", index: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := deb822.Parse(tt.input)
			p, ok := doc.Paragraph(tt.index)
			require.True(t, ok)
			require.NoError(t, doc.RemoveParagraph(p))
			assert.Equal(t, tt.want, doc.String())
		})
	}
}

func TestMoveParagraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		from  int
		to    int
		want  string
	}{
		{name: "last to first", input: "A: 1\n\nB: 2\n\nC: 3\n", from: 2, to: 0, want: "C: 3\n\nA: 1\n\nB: 2\n"},
		{name: "first to last", input: "A: 1\n\nB: 2\n\nC: 3\n", from: 0, to: 2, want: "B: 2\n\nC: 3\n\nA: 1\n"},
		{name: "unterminated last to first", input: "A: 1\n\nB: 2", from: 1, to: 0, want: "B: 2\n\nA: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := deb822.Parse(tt.input)
			p, _ := doc.Paragraph(tt.from)
			moved, err := doc.MoveParagraph(p, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.String())
			assert.Equal(t, tt.to, moved.Index())
		})
	}

	doc := deb822.Parse("A: 1\n\nB: 2\n")
	p, _ := doc.Paragraph(0)
	_, err := doc.MoveParagraph(p, 2)
	require.ErrorIs(t, err, deb822.ErrOutOfRange)
	assert.Equal(t, "A: 1\n\nB: 2\n", doc.String())
}
