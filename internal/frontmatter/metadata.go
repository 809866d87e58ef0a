package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Metadata is the frontmatter a template document may carry. Name and
// Description override the collection metadata derived from headings.
type Metadata struct {
	Name        string         `yaml:"name,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Extra       map[string]any `yaml:",inline"`
}

// IsZero reports whether no field is set.
func (m Metadata) IsZero() bool {
	return m.Name == "" && m.Description == "" && len(m.Extra) == 0
}

// DecodeMetadata parses raw frontmatter into Metadata.
func DecodeMetadata(frontmatter []byte) (Metadata, error) {
	var meta Metadata
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return meta, nil
	}
	if err := yaml.Unmarshal(frontmatter, &meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// SerializeYAML renders meta without delimiters: name and description first,
// then the remaining keys sorted. Output uses the newline of style.
func SerializeYAML(meta Metadata, style Style) ([]byte, error) {
	if meta.IsZero() {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if nl := style.Newline; nl != "" && nl != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(nl))
	}
	return out, nil
}
