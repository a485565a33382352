package rewrite

import (
	"strings"

	"github.com/dgallion1/a11yfix/internal/markup"
)

const defaultProgressLabel = "Progress"

// LabelProgressBars gives unlabeled progress-bar elements an aria-label of
// "<aria-valuenow>%", or "Progress" when there is no current value.
func LabelProgressBars(src string) (string, int) {
	var edits []markup.Edit
	for _, el := range markup.Scan(src) {
		if !el.HasClass("progress-bar") || el.Has("aria-label", "aria-labelledby") {
			continue
		}
		label := defaultProgressLabel
		if now, ok := el.Attr("aria-valuenow"); ok && strings.TrimSpace(now.Value) != "" {
			label = strings.TrimSpace(now.Value) + "%"
		}
		edits = append(edits, el.With("aria-label", label).Edit())
	}
	return markup.Apply(src, edits), len(edits)
}

type progressLabelRule struct{}

func (progressLabelRule) Name() string { return "progress-labels" }

func (progressLabelRule) Apply(doc Document) (string, int) {
	return LabelProgressBars(doc.Text)
}
