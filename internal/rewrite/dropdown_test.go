package rewrite

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/a11yfix/internal/markup"
)

func toggleIDs(t *testing.T, src string) []string {
	t.Helper()
	var ids []string
	for _, el := range markup.Scan(src) {
		if isToggle(el) {
			a, _ := el.Attr("id")
			ids = append(ids, a.Value)
		}
	}
	return ids
}

func TestAllocateToggleIDs_UniqueInDocumentOrder(t *testing.T) {
	input := `<nav>
<a class="nav-link dropdown-toggle" href="#" id="navbarDropdown" data-toggle="dropdown">One</a>
<a class="nav-link dropdown-toggle" href="#" id="navbarDropdown">Two</a>
<button type="button" class="btn DROPDOWN-TOGGLE">Three</button>
<a class="nav-link" href="#">Plain</a>
</nav>`
	out, n := AllocateToggleIDs(input, "about")
	if n != 3 {
		t.Fatalf("expected 3 edits, got %d", n)
	}

	ids := toggleIDs(t, out)
	if len(ids) != 3 {
		t.Fatalf("expected 3 toggles, got %d", len(ids))
	}
	seen := make(map[string]bool)
	for i, id := range ids {
		want := fmt.Sprintf("navbarDropdown-about-%d", i+1)
		if id != want {
			t.Errorf("toggle %d: expected %q, got %q", i+1, want, id)
		}
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if !strings.Contains(out, `<button type="button" class="btn DROPDOWN-TOGGLE" id="navbarDropdown-about-3">`) {
		t.Errorf("expected id inserted before '>', got:\n%s", out)
	}
	if !strings.Contains(out, `<a class="nav-link" href="#">Plain</a>`) {
		t.Errorf("non-toggle anchor was modified:\n%s", out)
	}
}

func TestAllocateToggleIDs_NoToggles(t *testing.T) {
	input := `<p class="dropdown">nothing here</p>`
	out, n := AllocateToggleIDs(input, "x")
	if out != input || n != 0 {
		t.Errorf("expected unchanged output, got %q (%d edits)", out, n)
	}
}

func TestLinkPanels_SingleToggle(t *testing.T) {
	input := `<li class="nav-item dropdown">
  <a class="dropdown-toggle" id="navbarDropdown-index-1" href="#">Menu</a>
  <div class="dropdown-menu" aria-labelledby="navbarDropdown">
    <a class="dropdown-item" href="#">Item</a>
  </div>
</li>`
	out, n := LinkPanels(input)
	if n != 1 {
		t.Fatalf("expected 1 edit, got %d", n)
	}
	want := `<div class="dropdown-menu" aria-labelledby="navbarDropdown-index-1">`
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in output, got:\n%s", want, out)
	}
}

func TestLinkPanels_InsertsMissingAttribute(t *testing.T) {
	input := `<a class="dropdown-toggle" id="t1">A</a><ul class="dropdown-menu dropdown-menu-end"></ul>`
	out, _ := LinkPanels(input)
	want := `<ul class="dropdown-menu dropdown-menu-end" aria-labelledby="t1">`
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in output, got %q", want, out)
	}
}

func TestLinkPanels_UnboundedForwardSearch(t *testing.T) {
	// Both toggles precede the only panel; the later toggle's link is written last.
	input := `<a class="dropdown-toggle" id="t1">A</a>` +
		`<a class="dropdown-toggle" id="t2">B</a>` +
		`<div class="dropdown-menu"></div>` +
		`<div class="dropdown-menu"></div>`
	out, _ := LinkPanels(input)

	var refs []string
	for _, el := range markup.Scan(out) {
		if isPanel(el) {
			a, _ := el.Attr("aria-labelledby")
			refs = append(refs, a.Value)
		}
	}
	if len(refs) != 2 || refs[0] != "t2" || refs[1] != "" {
		t.Errorf("expected panels linked [t2, \"\"], got %q", refs)
	}
}

func TestLinkPanels_PanelBeforeToggleIsIgnored(t *testing.T) {
	input := `<div class="dropdown-menu"></div><a class="dropdown-toggle" id="t1">A</a>`
	out, n := LinkPanels(input)
	if out != input || n != 0 {
		t.Errorf("expected no change, got %q", out)
	}
}

func TestDropdown_ClassMarkerOnAnyTag(t *testing.T) {
	input := `<button class="btn dropdown-toggle">B</button>` +
		`<a class="nav-link dropdown-toggle" href="#">A</a>` +
		`<ul class="dropdown-menu"></ul>` +
		`<div class="dropdown-menu"></div>`
	out, changed := Rewrite("p.html", input)
	if !changed {
		t.Fatalf("expected document to change")
	}

	want := `<button class="btn dropdown-toggle" id="navbarDropdown-p-1">B</button>` +
		`<a class="nav-link dropdown-toggle" href="#" id="navbarDropdown-p-2">A</a>` +
		`<ul class="dropdown-menu" aria-labelledby="navbarDropdown-p-2"></ul>` +
		`<div class="dropdown-menu"></div>`
	if out != want {
		t.Errorf("expected\n%s\ngot\n%s", want, out)
	}
}
