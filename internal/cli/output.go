package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/yaklabco/deb822/pkg/deb822"
)

// jsonField is one field in JSON output. Fields are kept as a list so
// duplicate keys and order survive.
type jsonField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// jsonParagraph is one paragraph in JSON output.
type jsonParagraph struct {
	Path   string      `json:"path,omitempty"`
	Index  int         `json:"index"`
	Fields []jsonField `json:"fields"`
}

// jsonValue is one looked-up value in JSON output.
type jsonValue struct {
	Paragraph int    `json:"paragraph"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

func newJSONParagraph(path string, p deb822.Paragraph, keys []string) jsonParagraph {
	out := jsonParagraph{Path: path, Index: p.Index(), Fields: []jsonField{}}
	for _, pair := range pickPairs(p, keys) {
		out.Fields = append(out.Fields, jsonField{Key: pair.Key, Value: pair.Value})
	}
	return out
}

// pickPairs returns the fields of p in order, limited to keys when keys is
// not empty.
func pickPairs(p deb822.Paragraph, keys []string) []deb822.Pair {
	pairs := p.Pairs()
	if len(keys) == 0 {
		return pairs
	}
	var out []deb822.Pair
	for _, pair := range pairs {
		if slices.ContainsFunc(keys, func(k string) bool { return strings.EqualFold(k, pair.Key) }) {
			out = append(out, pair)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any, compact bool) error {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}
