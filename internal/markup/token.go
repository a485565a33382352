package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Token is one lexical piece of a document with its byte span.
// The Raw fields of consecutive tokens concatenate back to the source.
type Token struct {
	Kind  html.TokenType
	Start int
	End   int
	Name  string // lower-cased tag name; empty for text, comments and doctypes
	Raw   string
}

// Tokens splits src into tokens. Script, style and other raw-text element
// bodies come back as a single text token.
func Tokens(src string) []Token {
	z := html.NewTokenizer(strings.NewReader(src))
	var toks []Token
	off := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF, or a truncated construct at the end of the input.
			return toks
		}
		raw := string(z.Raw())
		tok := Token{Kind: tt, Start: off, End: off + len(raw), Raw: raw}
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tok.Name = string(name)
		}
		off = tok.End
		toks = append(toks, tok)
	}
}

// IsStart reports whether t opens an element named name (any name if empty).
func (t Token) IsStart(name string) bool {
	if t.Kind != html.StartTagToken && t.Kind != html.SelfClosingTagToken {
		return false
	}
	return name == "" || t.Name == name
}

// IsEnd reports whether t closes an element named name.
func (t Token) IsEnd(name string) bool {
	return t.Kind == html.EndTagToken && t.Name == name
}

// IsSpace reports whether t is a text token holding only whitespace.
func (t Token) IsSpace() bool {
	return t.Kind == html.TextToken && strings.TrimSpace(t.Raw) == ""
}

// Element parses the attributes of a start or self-closing tag token.
func (t Token) Element() Element {
	return Element{
		Start:       t.Start,
		End:         t.End,
		Name:        t.Name,
		Raw:         t.Raw,
		Attrs:       lexAttrs(t.Raw),
		SelfClosing: t.Kind == html.SelfClosingTagToken,
	}
}

// Scan returns every start and self-closing tag in document order.
func Scan(src string) []Element {
	var elems []Element
	for _, t := range Tokens(src) {
		if t.IsStart("") {
			elems = append(elems, t.Element())
		}
	}
	return elems
}
