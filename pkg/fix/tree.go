package fix

import (
	"strings"

	"github.com/yaklabco/deb822/pkg/cst"
)

// TreeEdits returns sorted, non-overlapping edits that turn the text of
// before into the text of after.
//
// Subtrees shared by both trees are skipped without being read, so for two
// generations related by structural edits the cost is proportional to the
// rebuilt paths and the edits cover only the bytes that changed.
func TreeEdits(before, after *cst.Tree) []TextEdit {
	var edits []TextEdit
	diffElements(before.RootNode(), after.RootNode(), 0, &edits)
	return edits
}

func diffElements(a, b cst.Element, offset int, edits *[]TextEdit) {
	if a == b {
		return
	}
	an, aok := a.(*cst.Node)
	bn, bok := b.(*cst.Node)
	if !aok || !bok || an.Kind() != bn.Kind() {
		appendEdit(edits, offset, a.Text(), b.Text())
		return
	}

	ac, bc := an.Children(), bn.Children()
	pre := 0
	for pre < len(ac) && pre < len(bc) && ac[pre] == bc[pre] {
		offset += ac[pre].Len()
		pre++
	}
	suf := 0
	for suf < len(ac)-pre && suf < len(bc)-pre && ac[len(ac)-1-suf] == bc[len(bc)-1-suf] {
		suf++
	}
	midA, midB := ac[pre:len(ac)-suf], bc[pre:len(bc)-suf]

	if len(midA) == 1 && len(midB) == 1 {
		diffElements(midA[0], midB[0], offset, edits)
		return
	}

	var oldText, newText strings.Builder
	for _, e := range midA {
		oldText.WriteString(e.Text())
	}
	for _, e := range midB {
		newText.WriteString(e.Text())
	}
	appendEdit(edits, offset, oldText.String(), newText.String())
}

// appendEdit records the replacement of old at offset by text, narrowed to
// the bytes that actually differ.
func appendEdit(edits *[]TextEdit, offset int, old, text string) {
	if old == text {
		return
	}
	pre := 0
	for pre < len(old) && pre < len(text) && old[pre] == text[pre] {
		pre++
	}
	suf := 0
	for suf < len(old)-pre && suf < len(text)-pre && old[len(old)-1-suf] == text[len(text)-1-suf] {
		suf++
	}
	*edits = append(*edits, Replace(offset+pre, offset+len(old)-suf, text[pre:len(text)-suf]))
}
