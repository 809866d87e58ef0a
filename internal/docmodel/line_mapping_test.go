package docmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineIndex_Position(t *testing.T) {
	idx := NewLineIndex([]byte("ab\ncd\n\nżx"))

	require.Equal(t, Position{Line: 1, Column: 1}, idx.Position(0))
	require.Equal(t, Position{Line: 1, Column: 3}, idx.Position(2))
	require.Equal(t, Position{Line: 2, Column: 1}, idx.Position(3))
	require.Equal(t, Position{Line: 3, Column: 1}, idx.Position(6))
	// ż is two bytes but one column
	require.Equal(t, Position{Line: 4, Column: 2}, idx.Position(9))
	require.Equal(t, Position{Line: 4, Column: 3}, idx.Position(100))
	require.Equal(t, Position{Line: 1, Column: 1}, idx.Position(-4))
}

func TestLineIndex_TrailingNewline(t *testing.T) {
	idx := NewLineIndex([]byte("a\nb\n"))
	require.Equal(t, Position{Line: 3, Column: 1}, idx.Position(4))
}

func TestParsedDoc_LinesCoverOriginal(t *testing.T) {
	doc, err := Parse([]byte("---\nname: x\n---\n# A\n"), Options{})
	require.NoError(t, err)
	require.Equal(t, Position{Line: 4, Column: 1}, doc.Lines().Position(doc.BodyOffset()))
}
