package rewrite

import (
	"fmt"

	"github.com/dgallion1/a11yfix/internal/markup"
)

const toggleIDPrefix = "navbarDropdown"

// Toggles and panels are recognized by class alone, whatever the tag.
func isToggle(e markup.Element) bool {
	return e.HasClass("dropdown-toggle")
}

func isPanel(e markup.Element) bool {
	return e.HasClass("dropdown-menu")
}

// ToggleID is the identifier given to the n-th (1-based) dropdown toggle of a file.
func ToggleID(base string, n int) string {
	return fmt.Sprintf("%s-%s-%d", toggleIDPrefix, base, n)
}

// AllocateToggleIDs gives every dropdown toggle in src a file-scoped id,
// replacing whatever id it had.
func AllocateToggleIDs(src, base string) (string, int) {
	var edits []markup.Edit
	n := 0
	for _, el := range markup.Scan(src) {
		if !isToggle(el) {
			continue
		}
		n++
		if upd := el.With("id", ToggleID(base, n)); upd.Raw != el.Raw {
			edits = append(edits, upd.Edit())
		}
	}
	return markup.Apply(src, edits), len(edits)
}

// LinkPanels points the first dropdown panel after each toggle back at the
// toggle through aria-labelledby. The search from one toggle does not stop at
// the next toggle, so two toggles can resolve to the same panel; the later
// toggle then wins, as if the links had been written one after another.
func LinkPanels(src string) (string, int) {
	elems := markup.Scan(src)
	links := make(map[int]string)
	for i, el := range elems {
		if !isToggle(el) {
			continue
		}
		id, ok := el.Attr("id")
		if !ok || id.Value == "" {
			continue
		}
		for j := i + 1; j < len(elems); j++ {
			if isPanel(elems[j]) {
				links[j] = id.Value
				break
			}
		}
	}

	var edits []markup.Edit
	for j, id := range links {
		if upd := elems[j].With("aria-labelledby", id); upd.Raw != elems[j].Raw {
			edits = append(edits, upd.Edit())
		}
	}
	return markup.Apply(src, edits), len(edits)
}

type toggleIDRule struct{}

func (toggleIDRule) Name() string { return "toggle-ids" }

func (toggleIDRule) Apply(doc Document) (string, int) {
	return AllocateToggleIDs(doc.Text, doc.Base())
}

type panelLinkRule struct{}

func (panelLinkRule) Name() string { return "panel-links" }

func (panelLinkRule) Apply(doc Document) (string, int) {
	return LinkPanels(doc.Text)
}
