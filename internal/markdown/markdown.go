package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Options controls how Markdown is parsed for template extraction.
//
// Offset is added to every span computed from the parsed body, so callers
// that strip frontmatter can keep positions relative to the original file.
type Options struct {
	Offset int
}

// ParseBody parses a Markdown body (frontmatter already removed) into a
// Goldmark AST. CommonMark parsing accepts any input, so there is no error.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Parse parses body and builds its section outline in one step.
func Parse(body []byte, opts Options) *Outline {
	return BuildOutline(ParseBody(body), body, opts)
}
