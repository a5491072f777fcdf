package deb822

import "strings"

// emptyLine is the continuation-line spelling of an empty value line.
const emptyLine = "."

// Fold joins a field's first-line fragment and its continuation lines, with
// indentation already stripped, into a logical value.
//
// The first-line fragment is trimmed of blanks and omitted when empty. A
// continuation line that is exactly "." stands for an empty line. Lines are
// joined with "\n".
func Fold(first string, continuation ...string) string {
	lines := make([]string, 0, len(continuation)+1)
	if first = strings.Trim(first, " \t"); first != "" {
		lines = append(lines, first)
	}
	for _, line := range continuation {
		if line == emptyLine {
			line = ""
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Unfold splits a logical value into a first-line fragment and continuation
// lines such that Fold reverses it. Empty lines become ".". A value whose
// first line is empty is written entirely on continuation lines.
//
// Lines with leading blanks, and lines that are exactly ".", cannot survive
// a round trip.
func Unfold(value string) (string, []string) {
	return unfold(value, false)
}

// unfold is Unfold with the option of moving every line onto continuation
// lines, as in a field whose first line is intentionally empty.
func unfold(value string, block bool) (string, []string) {
	if value == "" {
		return "", nil
	}
	lines := strings.Split(value, "\n")
	if lines[0] == "" {
		block = true
	}
	if !block {
		return lines[0], escapeLines(lines[1:])
	}
	return "", escapeLines(lines)
}

func escapeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			line = emptyLine
		}
		out[i] = line
	}
	return out
}
