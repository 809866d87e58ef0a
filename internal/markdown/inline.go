package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
)

// FlattenText renders the inline content of n as plain text. Emphasis, links
// and code spans contribute their text; soft line breaks become spaces.
func FlattenText(n gmast.Node, source []byte) string {
	var b strings.Builder
	flattenInto(&b, n, source)
	return b.String()
}

// InlineText renders a single inline node as plain text.
func InlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	writeInline(&b, n, source)
	return b.String()
}

func flattenInto(b *strings.Builder, n gmast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeInline(b, c, source)
	}
}

func writeInline(b *strings.Builder, n gmast.Node, source []byte) {
	switch node := n.(type) {
	case *gmast.Text:
		b.Write(node.Value(source))
		switch {
		case node.HardLineBreak():
			b.WriteByte('\n')
		case node.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *gmast.String:
		b.Write(node.Value)
	case *gmast.AutoLink:
		b.Write(node.Label(source))
	case *gmast.RawHTML:
		// markup carries no description text
	default:
		flattenInto(b, n, source)
	}
}

// CodeSpans returns the text of every inline code span under n, in order.
func CodeSpans(n gmast.Node, source []byte) []string {
	var spans []string
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if _, ok := c.(*gmast.CodeSpan); ok {
			spans = append(spans, FlattenText(c, source))
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return spans
}

// FirstCodeSpan returns the first non-empty inline code value under n.
func FirstCodeSpan(n gmast.Node, source []byte) (string, bool) {
	for _, span := range CodeSpans(n, source) {
		if v := strings.TrimSpace(span); v != "" {
			return v, true
		}
	}
	return "", false
}

// IsParagraph reports whether n is a paragraph or the text block of a tight
// list item.
func IsParagraph(n gmast.Node) bool {
	switch n.(type) {
	case *gmast.Paragraph, *gmast.TextBlock:
		return true
	}
	return false
}
