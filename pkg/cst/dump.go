package cst

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of the subtree at v, one element per line:
//
//	PARAGRAPH@0..14
//	  FIELD@0..14
//	    KEY@0..6 "Source"
func Dump(w io.Writer, v View) error {
	return Walk(v, func(cur View) error {
		depth := len(cur.Path()) - len(v.Path())
		start, end := cur.Range()
		indent := strings.Repeat("  ", depth)
		var err error
		if tok, ok := cur.Token(); ok {
			_, err = fmt.Fprintf(w, "%s%s@%d..%d %s\n", indent, tok.Kind(), start, end, strconv.Quote(tok.Text()))
		} else {
			n, _ := cur.Node()
			_, err = fmt.Fprintf(w, "%s%s@%d..%d\n", indent, n.Kind(), start, end)
		}
		return err
	})
}

// DumpString returns the Dump output for v.
func DumpString(v View) string {
	var sb strings.Builder
	_ = Dump(&sb, v)
	return sb.String()
}
