package markup

import (
	"sort"
	"strings"
)

// Edit replaces src[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Apply applies edits computed against src in a single pass. Offsets always
// refer to the unmodified src, so earlier edits never shift later ones.
// An edit overlapping a preceding one is dropped.
func Apply(src string, edits []Edit) string {
	if len(edits) == 0 {
		return src
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, e := range edits {
		if e.Start < last || e.End > len(src) || e.End < e.Start {
			continue
		}
		b.WriteString(src[last:e.Start])
		b.WriteString(e.Text)
		last = e.End
	}
	b.WriteString(src[last:])
	return b.String()
}
