package rewrite

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head><title>About</title>
<script>document.write('<img src="x.png" alt="">');</script>
</head>
<body>
<nav class="navbar">
  <li class="nav-item dropdown">
    <a class="nav-link dropdown-toggle" href="#" id="navbarDropdown" role="button" data-toggle="dropdown">Services</a>
    <div class="dropdown-menu" aria-labelledby="navbarDropdown">
      <a class="dropdown-item" href="/web">Web</a>
    </div>
  </li>
  <li class="nav-item dropdown">
    <a class="nav-link dropdown-toggle" href="#" role="button" data-toggle="dropdown">Company</a>
    <div class="dropdown-menu">
      <a class="dropdown-item" href="/team">Team</a>
    </div>
  </li>
</nav>
<img src="/assets/team-photo.jpg" alt="">
<div class="progress"><div class="progress-bar" role="progressbar" aria-valuenow="42"></div></div>
<div class="sosmed-icon primary">
  <a href="https://twitter.com/acme"><i class="fab fa-twitter-square"></i></a>
</div>
</body>
</html>
`

func TestRewriter_FullPipeline(t *testing.T) {
	rw := New(nil)
	res := rw.Rewrite("/site/pages/about.html", samplePage)
	if !res.Changed {
		t.Fatalf("expected document to change")
	}

	wants := []string{
		`id="navbarDropdown-about-1" role="button"`,
		`<div class="dropdown-menu" aria-labelledby="navbarDropdown-about-1">`,
		`data-toggle="dropdown" id="navbarDropdown-about-2">Company</a>`,
		`<div class="dropdown-menu" aria-labelledby="navbarDropdown-about-2">`,
		`<img src="/assets/team-photo.jpg" alt="Team photo">`,
		`aria-valuenow="42" aria-label="42%">`,
		`<a href="https://twitter.com/acme" aria-label="Twitter" title="Twitter">`,
		// script bodies are not markup
		`document.write('<img src="x.png" alt="">');`,
	}
	for _, w := range wants {
		if !strings.Contains(res.Text, w) {
			t.Errorf("expected output to contain %q", w)
		}
	}

	wantEdits := map[string]int{
		"toggle-ids":      2,
		"panel-links":     2,
		"social-labels":   1,
		"image-alt":       1,
		"progress-labels": 1,
	}
	for rule, n := range wantEdits {
		if res.Edits[rule] != n {
			t.Errorf("rule %s: expected %d edits, got %d", rule, n, res.Edits[rule])
		}
	}
}

func TestRewriter_Idempotent(t *testing.T) {
	first, changed := Rewrite("about.html", samplePage)
	if !changed {
		t.Fatalf("expected first pass to change the document")
	}
	second, changed := Rewrite("about.html", first)
	if changed {
		t.Errorf("expected second pass to report unchanged")
	}
	if second != first {
		t.Errorf("expected byte-identical output on second pass")
	}
}

func TestRewriter_UnchangedDocument(t *testing.T) {
	input := "<p>Nothing to fix.</p>\n<img src=\"a.png\" alt=\"A\">\n"
	out, changed := Rewrite("plain.html", input)
	if changed || out != input {
		t.Errorf("expected unchanged output, got %q", out)
	}
}

func TestRewriter_PreservesSurroundingText(t *testing.T) {
	prefix := "<p>  odd   spacing &nbsp; <b>kept</b>\r\n"
	suffix := "\n<!-- trailing comment --> tail"
	input := prefix + `<img src="/x/y_z.png" alt="">` + suffix
	out, _ := Rewrite("page.html", input)
	if !strings.HasPrefix(out, prefix) || !strings.HasSuffix(out, suffix) {
		t.Errorf("surrounding text changed: %q", out)
	}
	if out != prefix+`<img src="/x/y_z.png" alt="Y z">`+suffix {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRewriter_RuleOrder(t *testing.T) {
	want := []string{"toggle-ids", "panel-links", "social-labels", "image-alt", "progress-labels"}
	got := New(nil).Rules()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected rules %v, got %v", want, got)
	}
}

func TestDocumentBase(t *testing.T) {
	tests := map[string]string{
		"/site/index.html":  "index",
		"about.us.html":     "about.us",
		"pages/contact.htm": "contact",
		"README":            "README",
	}
	for path, want := range tests {
		if got := (Document{Path: path}).Base(); got != want {
			t.Errorf("Base(%q): expected %q, got %q", path, want, got)
		}
	}
}
