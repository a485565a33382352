package rewrite

import (
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/a11yfix/internal/markup"
)

const defaultAlt = "Image"

var altSeparators = strings.NewReplacer("-", " ", "_", " ")

// HumanizeSrc derives alt text from an image source: the file name with
// dashes and underscores turned into spaces, the extension dropped and the
// first letter capitalized. "/assets/team-photo.jpg" becomes "Team photo".
func HumanizeSrc(src string) string {
	src = strings.TrimSpace(src)
	u, err := url.Parse(src)
	if err != nil {
		return defaultAlt
	}
	p := u.Path
	if u.Opaque != "" && u.Host == "" && !strings.EqualFold(u.Scheme, "data") {
		// "my:photo.png" parses as scheme "my"; it is a relative file name.
		p = u.Scheme + ":" + u.Opaque
	}
	if p == "" {
		return defaultAlt
	}
	name := path.Base(p)
	if name == "/" || name == "." {
		return defaultAlt
	}
	name = altSeparators.Replace(name)
	name = strings.TrimSuffix(name, path.Ext(name))
	if strings.TrimSpace(name) == "" {
		return defaultAlt
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// FillEmptyAlt replaces alt="" on images with text derived from their src.
// Missing and non-empty alt attributes are left alone.
func FillEmptyAlt(src string) (string, int) {
	var edits []markup.Edit
	for _, el := range markup.Scan(src) {
		if el.Name != "img" {
			continue
		}
		alt, ok := el.Attr("alt")
		if !ok || !alt.HasValue || alt.Value != "" {
			continue
		}
		label := defaultAlt
		if s, ok := el.Attr("src"); ok {
			label = HumanizeSrc(s.Value)
		}
		edits = append(edits, el.With("alt", label).Edit())
	}
	return markup.Apply(src, edits), len(edits)
}

type imageAltRule struct{}

func (imageAltRule) Name() string { return "image-alt" }

func (imageAltRule) Apply(doc Document) (string, int) {
	return FillEmptyAlt(doc.Text)
}
