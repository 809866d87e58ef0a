package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_Empty_ReturnsEmpty(t *testing.T) {
	out, err := SerializeYAML(Metadata{}, Style{Newline: "\n"})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSerializeYAML_NameAndDescriptionFirst(t *testing.T) {
	meta := Metadata{
		Name:        "Rust",
		Description: "Crate scaffolding",
		Extra:       map[string]any{"owner": "platform", "area": "build"},
	}

	out, err := SerializeYAML(meta, Style{Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, "name: Rust\ndescription: Crate scaffolding\narea: build\nowner: platform\n", string(out))
}

func TestSerializeYAML_NewlineStyle_CRLF(t *testing.T) {
	out, err := SerializeYAML(Metadata{Name: "one"}, Style{Newline: "\r\n"})
	require.NoError(t, err)
	require.Equal(t, "name: one\r\n", string(out))
}

func TestDecodeMetadata(t *testing.T) {
	meta, err := DecodeMetadata([]byte("name: Rust\ndescription: Crates\nowner: platform\n"))
	require.NoError(t, err)
	require.Equal(t, "Rust", meta.Name)
	require.Equal(t, "Crates", meta.Description)
	require.Equal(t, map[string]any{"owner": "platform"}, meta.Extra)

	meta, err = DecodeMetadata(nil)
	require.NoError(t, err)
	require.True(t, meta.IsZero())

	_, err = DecodeMetadata([]byte("name: [unclosed"))
	require.Error(t, err)
}

func TestMetadata_RoundTripThroughJoin(t *testing.T) {
	meta := Metadata{Name: "Rust", Description: "Crates"}
	raw, err := SerializeYAML(meta, Style{Newline: "\n"})
	require.NoError(t, err)

	doc := Join(raw, []byte("# Crate\n"), true, Style{Newline: "\n"})
	fm, body, had, _, err := Split(doc)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "# Crate\n", string(body))

	decoded, err := DecodeMetadata(fm)
	require.NoError(t, err)
	require.Equal(t, meta.Name, decoded.Name)
	require.Equal(t, meta.Description, decoded.Description)
}
