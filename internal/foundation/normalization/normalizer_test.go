package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color int

const (
	red color = iota + 1
	blue
)

func TestNormalizer(t *testing.T) {
	n := New("color", map[string]color{"Red": red, "blue": blue, "BLEU": blue})

	v, ok := n.Lookup("  RED ")
	require.True(t, ok)
	require.Equal(t, red, v)

	_, ok = n.Lookup("green")
	require.False(t, ok)

	v, err := n.Parse("Bleu")
	require.NoError(t, err)
	require.Equal(t, blue, v)

	_, err = n.Parse("green")
	require.EqualError(t, err, `unknown color "green", valid options: bleu, blue, red`)
	require.Equal(t, []string{"bleu", "blue", "red"}, n.Keys())
}

func TestNormalizer_FoldsUnicode(t *testing.T) {
	n := New("word", map[string]int{"straße": 1})
	_, ok := n.Lookup("STRASSE")
	require.True(t, ok)
}
