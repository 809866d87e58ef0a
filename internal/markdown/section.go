package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/nmcr/internal/model"
)

// Section is a heading plus every block that follows it up to the next
// heading of equal or shallower depth.
type Section struct {
	Level   int
	Title   string
	Heading *gmast.Heading
	// Body holds all nodes after the heading, nested headings included.
	Body []gmast.Node
	// Path is the title of every enclosing heading followed by Title.
	Path     []string
	Parent   *Section
	Children []*Section

	HeadingSpan model.Span
	Span        model.Span
}

// Own returns the body nodes that precede the first nested heading.
func (s *Section) Own() []gmast.Node {
	for i, n := range s.Body {
		if _, ok := n.(*gmast.Heading); ok {
			return s.Body[:i]
		}
	}
	return s.Body
}

// HasNestedHeadings reports whether any heading appears inside the section.
func (s *Section) HasNestedHeadings() bool {
	return len(s.Children) > 0
}

// Walk visits s and its descendants depth-first in document order.
func (s *Section) Walk(fn func(*Section)) {
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// Outline is the heading tree of one document.
type Outline struct {
	Source []byte
	Offset int
	// Preamble holds the nodes before the first heading.
	Preamble []gmast.Node
	Sections []*Section
}

// Walk visits every section in document order.
func (o *Outline) Walk(fn func(*Section)) {
	for _, s := range o.Sections {
		s.Walk(fn)
	}
}

// CodeBlocks collects the code blocks of nodes using the outline's source and offset.
func (o *Outline) CodeBlocks(nodes []gmast.Node) []CodeBlock {
	return CodeBlocks(nodes, o.Source, o.Offset)
}

// Text flattens the inline content of n.
func (o *Outline) Text(n gmast.Node) string {
	return FlattenText(n, o.Source)
}

// BuildOutline scans the top-level blocks of root once and links every
// heading to its enclosing heading. Spans are shifted by opts.Offset.
func BuildOutline(root gmast.Node, source []byte, opts Options) *Outline {
	out := &Outline{Source: source, Offset: opts.Offset}
	var open []*Section
	cursor := 0

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		span, ok := NodeSpan(n, source)
		if !ok {
			span = model.Span{Start: cursor, End: cursor}
		}
		span = span.Shift(opts.Offset)
		cursor = span.End - opts.Offset

		heading, isHeading := n.(*gmast.Heading)
		if isHeading {
			for len(open) > 0 && open[len(open)-1].Level >= heading.Level {
				open = open[:len(open)-1]
			}
		}

		for _, s := range open {
			s.Body = append(s.Body, n)
			s.Span = s.Span.Union(span)
		}

		if !isHeading {
			if len(open) == 0 {
				out.Preamble = append(out.Preamble, n)
			}
			continue
		}

		section := &Section{
			Level:       heading.Level,
			Title:       strings.TrimSpace(FlattenText(heading, source)),
			Heading:     heading,
			HeadingSpan: span,
			Span:        span,
		}
		if len(open) > 0 {
			parent := open[len(open)-1]
			section.Parent = parent
			section.Path = append(append([]string(nil), parent.Path...), section.Title)
			parent.Children = append(parent.Children, section)
		} else {
			section.Path = []string{section.Title}
			out.Sections = append(out.Sections, section)
		}
		open = append(open, section)
	}
	return out
}
