package cst

import "sort"

// LineInfo describes one line of a document.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte index of the line terminator,
	// or EndOffset if the line has none.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// LineIndex maps byte offsets to line and column numbers.
type LineIndex struct {
	lines []LineInfo
	size  int
}

// NewLineIndex indexes text. Both LF and CRLF terminators are recognised.
func NewLineIndex(text string) *LineIndex {
	idx := &LineIndex{size: len(text)}
	lineStart := 0
	for i := range len(text) {
		if text[i] != '\n' {
			continue
		}
		newlineStart := i
		if i > lineStart && text[i-1] == '\r' {
			newlineStart = i - 1
		}
		idx.lines = append(idx.lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    i + 1,
		})
		lineStart = i + 1
	}
	if lineStart < len(text) || len(idx.lines) == 0 {
		idx.lines = append(idx.lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(text),
			EndOffset:    len(text),
		})
	}
	return idx
}

// LineCount returns the number of lines.
func (l *LineIndex) LineCount() int { return len(l.lines) }

// Line returns the 1-based line's metadata.
func (l *LineIndex) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(l.lines) {
		return LineInfo{}, false
	}
	return l.lines[line-1], true
}

// Position converts a byte offset to 1-based line and column numbers.
// Columns count bytes. An offset past the end maps to the end of the last line.
func (l *LineIndex) Position(offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset >= l.size {
		last := l.lines[len(l.lines)-1]
		if last.EndOffset > last.NewlineStart && l.size > 0 {
			// Text ends with a terminator: the end is the start of a new line.
			return len(l.lines) + 1, 1
		}
		return len(l.lines), offset - last.StartOffset + 1
	}
	i := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
	return i + 1, offset - l.lines[i].StartOffset + 1
}
