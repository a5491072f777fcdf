package fix

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff is a line-level unified diff between two versions of a document.
type Diff struct {
	// Path names the document in the diff header.
	Path string

	// Hunks holds the changed regions with their context.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk is one region of a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int

	// OriginalCount is the number of original lines in the hunk.
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the modified text.
	ModifiedStart int

	// ModifiedCount is the number of modified lines in the hunk.
	ModifiedCount int

	Lines []DiffLine
}

// DiffLine is a single line of a hunk.
type DiffLine struct {
	Kind DiffLineKind

	// Content is the line without its terminator or diff prefix.
	Content string
}

// DiffLineKind tells context, added and removed lines apart.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line only in the modified text.
	DiffLineAdd

	// DiffLineRemove is a line only in the original text.
	DiffLineRemove
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// GenerateDiff computes a line diff of original and modified.
// It returns nil when the texts are equal.
func GenerateDiff(path, original, modified string) *Diff {
	if original == modified {
		return nil
	}

	ops := lineOps(original, modified)
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, op := range ops {
		switch op.kind {
		case DiffLineAdd:
			d.Additions++
		case DiffLineRemove:
			d.Deletions++
		}
	}
	return d
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)
	for _, hunk := range d.Hunks {
		sb.WriteString(hunk.Header())
		sb.WriteByte('\n')
		for _, line := range hunk.Lines {
			sb.WriteByte(line.Kind.prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

type diffOp struct {
	kind    DiffLineKind
	content string
}

// lineOps diffs the texts line by line.
func lineOps(original, modified string) []diffOp {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []diffOp
	for _, d := range diffs {
		kind := DiffLineContext
		switch d.Type {
		case diffpatch.DiffInsert:
			kind = DiffLineAdd
		case diffpatch.DiffDelete:
			kind = DiffLineRemove
		case diffpatch.DiffEqual:
		}
		for _, line := range splitLines(d.Text) {
			ops = append(ops, diffOp{kind: kind, content: line})
		}
	}
	return ops
}

// splitLines splits text into lines without terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\n")
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// groupIntoHunks gathers changed lines into hunks, merging changes separated
// by no more than twice the context.
func groupIntoHunks(ops []diffOp) []DiffHunk {
	type span struct{ start, end int }

	var spans []span
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffLineContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].kind != DiffLineContext {
			i++
		}
		if n := len(spans); n > 0 && start-spans[n-1].end <= contextLines*2 {
			spans[n-1].end = i
			continue
		}
		spans = append(spans, span{start, i})
	}

	hunks := make([]DiffHunk, 0, len(spans))
	for _, s := range spans {
		hunks = append(hunks, buildHunk(ops, s.start, s.end))
	}
	return hunks
}

func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}
	return hunk
}
