package rewrite

import (
	"strings"

	"github.com/dgallion1/a11yfix/internal/markup"
)

const defaultSocialLabel = "Social link"

// Checked in order; the first entry whose token occurs in the icon name wins.
var socialServices = []struct {
	token string
	exact string
	label string
}{
	{token: "facebook", label: "Facebook"},
	{token: "twitter", exact: "x", label: "Twitter"},
	{token: "linkedin", label: "LinkedIn"},
	{token: "instagram", label: "Instagram"},
	{token: "pinterest", label: "Pinterest"},
}

// ServiceLabel maps an icon brand token (the part after "fa-") to a service name.
func ServiceLabel(token string) (string, bool) {
	token = strings.ToLower(token)
	for _, s := range socialServices {
		if strings.Contains(token, s.token) || (s.exact != "" && token == s.exact) {
			return s.label, true
		}
	}
	return "", false
}

func iconTokens(glyph markup.Element) []string {
	var out []string
	for _, c := range glyph.ClassTokens() {
		c = strings.ToLower(c)
		if strings.HasPrefix(c, "fa-") && len(c) > len("fa-") {
			out = append(out, c[len("fa-"):])
		}
	}
	return out
}

// glyphLabel names the service behind an icon. Modifier tokens such as
// fa-lg or fa-brands match no service and are skipped.
func glyphLabel(glyph markup.Element) string {
	for _, tok := range iconTokens(glyph) {
		if label, ok := ServiceLabel(tok); ok {
			return label
		}
	}
	return defaultSocialLabel
}

// LabelSocialLinks adds aria-label and title to icon-only anchors inside
// sosmed-icon containers. Anchors that already have an aria-label are skipped.
func LabelSocialLinks(src string) (string, int) {
	toks := markup.Tokens(src)
	var edits []markup.Edit
	for i := 0; i < len(toks); i++ {
		if !toks[i].IsStart("") {
			continue
		}
		if box := toks[i].Element(); box.SelfClosing || !box.HasClass("sosmed-icon") {
			continue
		}
		end := containerEnd(toks, i)
		for k := i + 1; k < end; k++ {
			anchor, glyph, ok := iconAnchor(toks[k:end])
			if !ok || anchor.Has("aria-label") {
				continue
			}
			label := glyphLabel(glyph)
			upd := anchor.With("aria-label", label)
			if !upd.Has("title") {
				upd = upd.With("title", label)
			}
			edits = append(edits, upd.Edit())
		}
		i = end
	}
	return markup.Apply(src, edits), len(edits)
}

// containerEnd returns the index of the token closing toks[open], or
// len(toks) when the element is never closed.
func containerEnd(toks []markup.Token, open int) int {
	name := toks[open].Name
	depth := 1
	for k := open + 1; k < len(toks); k++ {
		switch {
		case toks[k].IsEnd(name):
			depth--
			if depth == 0 {
				return k
			}
		case toks[k].IsStart(name) && !toks[k].Element().SelfClosing:
			depth++
		}
	}
	return len(toks)
}

// iconAnchor matches <a ...> <i class="... fa-x ..."> </i> </a> at the start
// of toks, allowing only whitespace between the tags.
func iconAnchor(toks []markup.Token) (anchor, glyph markup.Element, ok bool) {
	if len(toks) == 0 || !toks[0].IsStart("a") {
		return
	}
	k := skipSpace(toks, 1)
	if k >= len(toks) || !toks[k].IsStart("i") {
		return
	}
	glyph = toks[k].Element()
	if len(iconTokens(glyph)) == 0 {
		return
	}
	k = skipSpace(toks, k+1)
	if k >= len(toks) || !toks[k].IsEnd("i") {
		return
	}
	k = skipSpace(toks, k+1)
	if k >= len(toks) || !toks[k].IsEnd("a") {
		return
	}
	return toks[0].Element(), glyph, true
}

func skipSpace(toks []markup.Token, k int) int {
	for k < len(toks) && toks[k].IsSpace() {
		k++
	}
	return k
}

type socialLabelRule struct{}

func (socialLabelRule) Name() string { return "social-labels" }

func (socialLabelRule) Apply(doc Document) (string, int) {
	return LabelSocialLinks(doc.Text)
}
