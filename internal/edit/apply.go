package edit

import (
	"sort"
	"strings"
)

// Apply applies a batch of edits to text. Every range refers to the input
// snapshot, so the batch behaves as if all edits happened simultaneously;
// they are applied back to front so earlier replacements never shift the
// ranges of later ones. Ranges must not overlap.
func Apply(text string, edits []TextEdit) string {
	ordered := make([]TextEdit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Range.Start > ordered[j].Range.Start
	})

	var b strings.Builder
	for _, e := range ordered {
		b.Reset()
		b.Grow(len(text) - (e.Range.End - e.Range.Start) + len(e.NewText))
		b.WriteString(text[:e.Range.Start])
		b.WriteString(e.NewText)
		b.WriteString(text[e.Range.End:])
		text = b.String()
	}
	return text
}
