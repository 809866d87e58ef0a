package docmodel

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int
	Column int
}

// LineIndex maps byte offsets of a text to line/column positions.
type LineIndex struct {
	text   []byte
	starts []int
}

// NewLineIndex records the start offset of every line in text.
func NewLineIndex(text []byte) *LineIndex {
	starts := []int{0}
	for i := 0; ; {
		j := bytes.IndexByte(text[i:], '\n')
		if j < 0 {
			break
		}
		i += j + 1
		starts = append(starts, i)
	}
	return &LineIndex{text: text, starts: starts}
}

// Position converts a byte offset. Offsets outside the text are clamped.
func (x *LineIndex) Position(offset int) Position {
	offset = max(0, min(offset, len(x.text)))
	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	col := utf8.RuneCount(x.text[x.starts[line]:offset]) + 1
	return Position{Line: line + 1, Column: col}
}
