package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/nmcr/internal/model"
)

// CodeBlock is a fenced or indented code block lifted out of the AST.
type CodeBlock struct {
	Lang    string
	Content string
	Span    model.Span
}

// IsCodeBlock reports whether n is a fenced or indented code block.
func IsCodeBlock(n gmast.Node) bool {
	switch n.(type) {
	case *gmast.FencedCodeBlock, *gmast.CodeBlock:
		return true
	}
	return false
}

// CodeBlocks collects code blocks from nodes in document order, descending
// into lists and blockquotes.
func CodeBlocks(nodes []gmast.Node, source []byte, offset int) []CodeBlock {
	var blocks []CodeBlock
	for _, n := range nodes {
		_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
			if !entering {
				return gmast.WalkContinue, nil
			}
			if c.Type() == gmast.TypeInline {
				return gmast.WalkSkipChildren, nil
			}
			if IsCodeBlock(c) {
				blocks = append(blocks, newCodeBlock(c, source, offset))
				return gmast.WalkSkipChildren, nil
			}
			return gmast.WalkContinue, nil
		})
	}
	return blocks
}

func newCodeBlock(n gmast.Node, source []byte, offset int) CodeBlock {
	var content strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content.Write(seg.Value(source))
	}

	text := content.String()
	if trimmed, ok := strings.CutSuffix(text, "\r\n"); ok {
		text = trimmed
	} else {
		text = strings.TrimSuffix(text, "\n")
	}
	block := CodeBlock{Content: text}
	if fenced, ok := n.(*gmast.FencedCodeBlock); ok {
		block.Lang = strings.TrimSpace(string(fenced.Language(source)))
	}
	if span, ok := NodeSpan(n, source); ok {
		block.Span = span.Shift(offset)
	}
	return block
}
