package markdown

import (
	"bytes"

	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/nmcr/internal/model"
)

// NodeSpan returns the byte range of a block node in source, covering whole
// lines. Headings include setext underlines and fenced code blocks include
// both fences. Nodes without any source lines report ok=false.
func NodeSpan(n gmast.Node, source []byte) (model.Span, bool) {
	switch node := n.(type) {
	case *gmast.Heading:
		return headingSpan(node, source)
	case *gmast.FencedCodeBlock:
		return fencedSpan(node, source)
	}

	if n.Type() == gmast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		first, last := lines.At(0), lines.At(lines.Len()-1)
		return model.Span{Start: lineStart(source, first.Start), End: lineEnd(source, last.Stop)}, true
	}

	var (
		span  model.Span
		found bool
	)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != gmast.TypeBlock {
			continue
		}
		s, ok := NodeSpan(c, source)
		if !ok {
			continue
		}
		if !found {
			span, found = s, true
			continue
		}
		span = span.Union(s)
	}
	return span, found
}

func headingSpan(h *gmast.Heading, source []byte) (model.Span, bool) {
	lines := h.Lines()
	if lines.Len() == 0 {
		return model.Span{}, false
	}
	start := lineStart(source, lines.At(0).Start)
	end := lineEnd(source, lines.At(lines.Len()-1).Stop)
	if !isATXLine(source[start:]) && end < len(source) {
		// setext: the underline is the following line
		end = lineEnd(source, end+1)
	}
	return model.Span{Start: start, End: end}, true
}

func fencedSpan(b *gmast.FencedCodeBlock, source []byte) (model.Span, bool) {
	var start, cursor int
	switch {
	case b.Info != nil:
		start = lineStart(source, b.Info.Segment.Start)
		cursor = lineEnd(source, b.Info.Segment.Stop)
	case b.Lines().Len() > 0:
		first := lineStart(source, b.Lines().At(0).Start)
		if first == 0 {
			return model.Span{}, false
		}
		start = lineStart(source, first-1)
		cursor = first
	default:
		return model.Span{}, false
	}
	if n := b.Lines().Len(); n > 0 {
		cursor = lineEnd(source, b.Lines().At(n-1).Stop)
	}

	end := cursor
	if cursor < len(source) {
		next := lineEnd(source, cursor+1)
		if isFenceLine(source[cursor:next]) {
			end = next
		}
	}
	return model.Span{Start: start, End: end}, true
}

// lineStart returns the offset of the first byte of the line holding pos.
func lineStart(source []byte, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	if i := bytes.LastIndexByte(source[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// lineEnd returns the offset just past the newline ending the line that
// holds the byte before pos.
func lineEnd(source []byte, pos int) int {
	if pos > len(source) {
		return len(source)
	}
	if pos > 0 && source[pos-1] == '\n' {
		return pos
	}
	if i := bytes.IndexByte(source[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(source)
}

func isATXLine(line []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(line, " "), []byte("#"))
}

func isFenceLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " \t>")
	return bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~"))
}
