package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a tag located in raw document text. Start and End are byte
// offsets of the tag in the document it was scanned from.
type Element struct {
	Start       int
	End         int
	Name        string
	Raw         string
	Attrs       []Attr
	SelfClosing bool
}

// Attr is an attribute of a raw tag. Offsets are relative to Element.Raw.
type Attr struct {
	Name     string // lower-cased
	Value    string // entity-decoded
	HasValue bool
	Quote    byte // '"', '\'' or 0 when unquoted

	NameStart int
	NameEnd   int
	ValStart  int
	ValEnd    int
}

// Attr returns the first attribute called name.
func (e Element) Attr(name string) (Attr, bool) {
	name = strings.ToLower(name)
	for _, a := range e.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// Has reports whether any of the named attributes is present.
func (e Element) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := e.Attr(n); ok {
			return true
		}
	}
	return false
}

// ClassTokens returns the whitespace-separated tokens of the class attribute.
func (e Element) ClassTokens() []string {
	a, ok := e.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(a.Value)
}

// HasClass reports whether the class attribute contains token, ignoring case.
func (e Element) HasClass(token string) bool {
	for _, c := range e.ClassTokens() {
		if strings.EqualFold(c, token) {
			return true
		}
	}
	return false
}

// With returns a copy of e whose raw text sets attribute name to value.
// An existing value is overwritten in place; otherwise the attribute is
// inserted just before the closing '>' (or '/>'). Start and End still refer
// to the original tag so the result can be turned into an Edit.
func (e Element) With(name, value string) Element {
	v := html.EscapeString(value)
	var raw string
	if a, ok := e.Attr(name); ok {
		switch {
		case !a.HasValue:
			raw = e.Raw[:a.NameEnd] + `="` + v + `"` + e.Raw[a.NameEnd:]
		case a.Quote == 0:
			raw = e.Raw[:a.ValStart] + `"` + v + `"` + e.Raw[a.ValEnd:]
		default:
			raw = e.Raw[:a.ValStart] + v + e.Raw[a.ValEnd:]
		}
	} else {
		p := e.closeAt()
		raw = e.Raw[:p] + " " + name + `="` + v + `"` + e.Raw[p:]
	}
	out := e
	out.Raw = raw
	out.Attrs = lexAttrs(raw)
	return out
}

// Edit replaces the original span of e with its current raw text.
func (e Element) Edit() Edit {
	return Edit{Start: e.Start, End: e.End, Text: e.Raw}
}

func (e Element) closeAt() int {
	n := len(e.Raw)
	if n == 0 || e.Raw[n-1] != '>' {
		return n
	}
	if e.SelfClosing && n >= 2 && e.Raw[n-2] == '/' {
		// <a href=/x/> ends in "/>" but the slash belongs to the value.
		if len(e.Attrs) == 0 || e.Attrs[len(e.Attrs)-1].ValEnd <= n-2 {
			return n - 2
		}
	}
	return n - 1
}

func lexAttrs(raw string) []Attr {
	i := 1
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}

	var attrs []Attr
	for i < len(raw) {
		for i < len(raw) && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}

		ns := i
		i++ // a leading '=' belongs to the name
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		a := Attr{Name: strings.ToLower(raw[ns:i]), NameStart: ns, NameEnd: i, ValStart: i, ValEnd: i}

		j := i
		for j < len(raw) && isSpace(raw[j]) {
			j++
		}
		if j < len(raw) && raw[j] == '=' {
			j++
			for j < len(raw) && isSpace(raw[j]) {
				j++
			}
			a.HasValue = true
			if j < len(raw) && (raw[j] == '"' || raw[j] == '\'') {
				a.Quote = raw[j]
				a.ValStart = j + 1
				if k := strings.IndexByte(raw[j+1:], a.Quote); k >= 0 {
					a.ValEnd = j + 1 + k
					i = a.ValEnd + 1
				} else {
					a.ValEnd = len(raw)
					i = len(raw)
				}
			} else {
				a.ValStart = j
				for j < len(raw) && !isSpace(raw[j]) && raw[j] != '>' {
					j++
				}
				a.ValEnd = j
				i = j
			}
			a.Value = html.UnescapeString(raw[a.ValStart:a.ValEnd])
		}
		attrs = append(attrs, a)
	}
	return attrs
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
