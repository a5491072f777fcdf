package deb822

// Style controls the text synthesized for new or rewritten fields.
// Text copied from the surrounding document always takes precedence.
type Style struct {
	// Indent prefixes continuation lines when the field has none to copy.
	Indent string

	// Separator follows the colon when the paragraph has none to copy.
	Separator string

	// Newline terminates new lines. Empty means detect from the document,
	// falling back to "\n".
	Newline string
}

// DefaultStyle returns a one-space indent and separator with detected newlines.
func DefaultStyle() Style {
	return Style{Indent: " ", Separator: " "}
}

func (s Style) withDefaults() Style {
	if s.Indent == "" {
		s.Indent = " "
	}
	return s
}
