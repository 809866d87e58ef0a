package parser

import (
	"strings"

	"git.home.luguber.info/inful/nmcr/internal/markdown"
)

// outputPath finds the declared output path of a section: a paragraph
// ending in ':' with inline code before the first code block, else inline
// code in the section's own heading.
func outputPath(section *markdown.Section, source []byte) string {
	for _, n := range section.Body {
		if markdown.IsCodeBlock(n) {
			break
		}
		if !markdown.IsParagraph(n) {
			continue
		}
		text := strings.TrimSpace(markdown.FlattenText(n, source))
		if !strings.HasSuffix(text, ":") {
			continue
		}
		if path, ok := markdown.FirstCodeSpan(n, source); ok {
			return path
		}
	}
	if path, ok := markdown.FirstCodeSpan(section.Heading, source); ok {
		return path
	}
	return ""
}
