package deb822_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deb822/pkg/deb822"
)

func TestDocumentWrapAndSort(t *testing.T) {
	t.Parallel()

	splitDepends := func(key, value string) string {
		if key != "Depends" {
			return value
		}
		return strings.ReplaceAll(value, ", ", ",\n")
	}

	tests := []struct {
		name        string
		input       string
		opts        deb822.WrapOptions
		want        string
		wantChanged bool
	}{
		{
			name:  "canonical input",
			input: "A: b\n\nC: d\n e\n",
			want:  "A: b\n\nC: d\n e\n",
		},
		{
			name:        "layout normalized",
			input:       "A :b  \nDepends:\n  x,\n  y\n",
			want:        "A: b\nDepends: x,\n y\n",
			wantChanged: true,
		},
		{
			name:        "immediate empty line",
			input:       "Depends: x,\n y\nA: b\n",
			opts:        deb822.WrapOptions{ImmediateEmptyLine: true, Indent: 2},
			want:        "Depends:\n  x,\n  y\nA: b\n",
			wantChanged: true,
		},
		{
			name:        "field name indent",
			input:       "Depends: a,\n b\n",
			opts:        deb822.WrapOptions{Indent: deb822.FieldNameIndent},
			want:        "Depends: a,\n       b\n",
			wantChanged: true,
		},
		{
			name:        "verbatim lines keep relative indent",
			input:       "Description: short\n   long\n     verbatim\n   .\n   end\n",
			want:        "Description: short\n long\n   verbatim\n .\n end\n",
			wantChanged: true,
		},
		{
			name:        "comments travel with the following field",
			input:       "C: 3\n# about a\nA: 1\nB: 2\n# trailing\n",
			opts:        deb822.WrapOptions{SortFields: deb822.FieldOrder("A", "B")},
			want:        "# about a\nA: 1\nB: 2\nC: 3\n# trailing\n",
			wantChanged: true,
		},
		{
			name:        "errors travel with the following field",
			input:       "B: 2\nbad line\nA: 1\n",
			opts:        deb822.WrapOptions{SortFields: deb822.FieldOrder("a")},
			want:        "bad line\nA: 1\nB: 2\n",
			wantChanged: true,
		},
		{
			name:        "comment inside field moves before it",
			input:       "A: x\n# c\n y\n",
			want:        "# c\nA: x\n y\n",
			wantChanged: true,
		},
		{
			name:        "paragraphs sorted with their comments",
			input:       "Package: b\n\n# first\nPackage: a\n\nSource: s\n",
			opts:        deb822.WrapOptions{SortParagraphs: deb822.ByFieldValue("Package")},
			want:        "Source: s\n\n# first\nPackage: a\n\nPackage: b\n",
			wantChanged: true,
		},
		{
			name:        "blank lines collapsed",
			input:       "\n\nA: 1\n\n\n\nB: 2\n\n",
			want:        "A: 1\n\nB: 2\n",
			wantChanged: true,
		},
		{
			name:        "unterminated document stays unterminated",
			input:       "P: b\n\nP: a",
			opts:        deb822.WrapOptions{SortParagraphs: deb822.ByFieldValue("P")},
			want:        "P: a\n\nP: b",
			wantChanged: true,
		},
		{
			name:        "crlf kept",
			input:       "A:b\r\n c\r\n",
			want:        "A: b\r\n c\r\n",
			wantChanged: true,
		},
		{
			name:        "format value",
			input:       "Depends: a, b\nA: x, y\n",
			opts:        deb822.WrapOptions{FormatValue: splitDepends},
			want:        "Depends: a,\n b\nA: x, y\n",
			wantChanged: true,
		},
		{
			name:        "one-liner keeps its separator",
			input:       "A:\tb\nLong:\tvalue\n",
			opts:        deb822.WrapOptions{OneLinerWidth: 6},
			want:        "A:\tb\nLong: value\n",
			wantChanged: true,
		},
		{
			name:        "empty value",
			input:       "A:  \nB: 1\n",
			want:        "A:\nB: 1\n",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := deb822.Parse(tt.input)
			changed, err := doc.WrapAndSort(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, doc.String())

			changed, err = doc.WrapAndSort(tt.opts)
			require.NoError(t, err)
			assert.False(t, changed, "wrap and sort is idempotent")
		})
	}
}

func TestParagraphWrapAndSort(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("Z: 1\nA:  2\n  more\n\nB: 3\n")
	p, ok := doc.Paragraph(0)
	require.True(t, ok)

	np, err := p.WrapAndSort(deb822.WrapOptions{SortFields: deb822.FieldOrder("A")})
	require.NoError(t, err)
	assert.Equal(t, "A: 2\n more\nZ: 1\n", np.Text())
	assert.Equal(t, "A: 2\n more\nZ: 1\n\nB: 3\n", np.View().Tree().Text())
	assert.Equal(t, "Z: 1\nA:  2\n  more\n\nB: 3\n", doc.String(), "source tree untouched")

	same, err := np.WrapAndSort(deb822.WrapOptions{})
	require.NoError(t, err)
	assert.True(t, same.View().Equal(np.View()))
}

func TestFieldOrder(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("Homepage: h\nx-custom: c\nsource: s\nMaintainer: m\n")
	p, ok := doc.Paragraph(0)
	require.True(t, ok)

	np, err := p.WrapAndSort(deb822.WrapOptions{SortFields: deb822.FieldOrder("Source", "Maintainer", "Source")})
	require.NoError(t, err)
	assert.Equal(t, []string{"source", "Maintainer", "Homepage", "x-custom"}, np.Keys())
}

func TestByFieldValue(t *testing.T) {
	t.Parallel()

	doc := deb822.Parse("Package: b\n\nSource: s\n\nPackage: a\n")
	a, _ := doc.Paragraph(2)
	b, _ := doc.Paragraph(0)
	src, _ := doc.Paragraph(1)

	less := deb822.ByFieldValue("package")
	assert.Negative(t, less(a, b))
	assert.Positive(t, less(b, a))
	assert.Negative(t, less(src, a))
	assert.Zero(t, less(a, a))
}
