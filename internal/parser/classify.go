package parser

import (
	"git.home.luguber.info/inful/nmcr/internal/foundation/normalization"
	"git.home.luguber.info/inful/nmcr/internal/markdown"
)

type subhead int

const (
	subheadNone subhead = iota
	subheadArgs
	subheadTemplate
)

var subheads = normalization.New("subhead", map[string]subhead{
	"args":      subheadArgs,
	"arguments": subheadArgs,
	"template":  subheadTemplate,
})

func subheadOf(title string) subhead {
	kind, _ := subheads.Lookup(title)
	return kind
}

// IsSubhead reports whether title is one of the reserved marker headings.
func IsSubhead(title string) bool {
	return subheadOf(title) != subheadNone
}

// baseLevel returns the heading depth that anchors heading-based
// extraction, or ok=false when no subhead exists anywhere.
func baseLevel(outline *markdown.Outline) (level int, ok bool) {
	minLevel := 0
	outline.Walk(func(s *markdown.Section) {
		if IsSubhead(s.Title) && (minLevel == 0 || s.Level < minLevel) {
			minLevel = s.Level
		}
	})
	if minLevel == 0 {
		return 0, false
	}
	return max(1, minLevel-1), true
}

func hasSubheadChild(s *markdown.Section) bool {
	for _, c := range s.Children {
		if IsSubhead(c.Title) {
			return true
		}
	}
	return false
}

func childSubhead(s *markdown.Section, kind subhead) *markdown.Section {
	for _, c := range s.Children {
		if subheadOf(c.Title) == kind {
			return c
		}
	}
	return nil
}

// candidates lists the sections at base that have a subhead child, in document order.
func candidates(outline *markdown.Outline, base int) []*markdown.Section {
	var out []*markdown.Section
	outline.Walk(func(s *markdown.Section) {
		if s.Level == base && hasSubheadChild(s) {
			out = append(out, s)
		}
	})
	return out
}
