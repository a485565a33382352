// Package rewrite applies accessibility fixes to raw HTML text. Every rule
// edits tag text in place and leaves all other bytes of the document alone.
package rewrite

import (
	"path/filepath"
	"strings"
)

// Document is the text of one file being rewritten.
type Document struct {
	Path string
	Text string
}

// Base returns the file name without directory and extension. It scopes
// generated identifiers to the file.
func (d Document) Base() string {
	name := filepath.Base(d.Path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Rule transforms a document's text and reports how many tags it edited.
// Rules never fail: content a rule cannot match is returned unchanged.
type Rule interface {
	Name() string
	Apply(doc Document) (string, int)
}

// Result is the outcome of rewriting one document.
type Result struct {
	Text    string
	Changed bool
	Edits   map[string]int // rule name -> tags edited
}

// Rewriter runs the rule pipeline over documents.
type Rewriter struct {
	rules []Rule
	stats *Stats
}

// DefaultRules returns the pipeline in the order it must run: panel linking
// depends on the identifiers allocated just before it.
func DefaultRules() []Rule {
	return []Rule{
		toggleIDRule{},
		panelLinkRule{},
		socialLabelRule{},
		imageAltRule{},
		progressLabelRule{},
	}
}

// New creates a Rewriter with the default rules. stats may be nil.
func New(stats *Stats) *Rewriter {
	return &Rewriter{rules: DefaultRules(), stats: stats}
}

// Rules returns the rule names in pipeline order.
func (r *Rewriter) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name()
	}
	return names
}

// Rewrite applies every rule in order, each one to the output of the last.
func (r *Rewriter) Rewrite(path, src string) Result {
	doc := Document{Path: path, Text: src}
	edits := make(map[string]int)
	for _, rule := range r.rules {
		text, n := rule.Apply(doc)
		doc.Text = text
		if n > 0 {
			edits[rule.Name()] += n
		}
	}

	res := Result{Text: doc.Text, Changed: doc.Text != src, Edits: edits}
	if r.stats != nil {
		r.stats.Record(res)
	}
	return res
}

// Rewrite runs the default pipeline over src and reports whether it changed.
func Rewrite(path, src string) (string, bool) {
	res := New(nil).Rewrite(path, src)
	return res.Text, res.Changed
}
