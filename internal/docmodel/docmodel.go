// Package docmodel holds a template document split into frontmatter and body,
// with the offsets needed to report positions against the original file.
package docmodel

import (
	"os"

	"git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/frontmatter"
)

// Options controls parsing behavior for ParsedDoc.
type Options struct {
	// Path is recorded on the document for diagnostics; empty for in-memory input.
	Path string
}

// ParsedDoc is a Markdown document split into YAML frontmatter and body.
type ParsedDoc struct {
	path     string
	original []byte
	fmRaw    []byte
	body     []byte
	hadFM    bool
	style    frontmatter.Style
	lines    *LineIndex
}

// Parse parses raw file content into a ParsedDoc.
func Parse(content []byte, opts Options) (*ParsedDoc, error) {
	fmRaw, body, had, style, err := frontmatter.Split(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStructure, "failed to split frontmatter").
			WithContext("path", opts.Path).
			Build()
	}

	orig := append([]byte(nil), content...)
	doc := &ParsedDoc{
		path:     opts.Path,
		original: orig,
		body:     orig[len(orig)-len(body):],
		hadFM:    had,
		style:    style,
	}
	if had {
		doc.fmRaw = append([]byte{}, fmRaw...)
	}
	return doc, nil
}

// ParseFile reads a file from disk and parses it into a ParsedDoc.
func ParseFile(path string, opts Options) (*ParsedDoc, error) {
	// #nosec G304 -- paths come from discovery under the project root.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystemError("failed to read document").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	opts.Path = path
	return Parse(content, opts)
}

// Path returns the source path, empty for in-memory documents.
func (d *ParsedDoc) Path() string { return d.path }

// Original returns a copy of the original bytes.
func (d *ParsedDoc) Original() []byte {
	return append([]byte(nil), d.original...)
}

// Body returns the Markdown body bytes (frontmatter removed).
func (d *ParsedDoc) Body() []byte {
	return append([]byte(nil), d.body...)
}

// BodyOffset is the byte offset of the body inside the original text.
// Adding it to a body offset yields an offset into Original.
func (d *ParsedDoc) BodyOffset() int {
	return len(d.original) - len(d.body)
}

// Metadata decodes the frontmatter. Documents without frontmatter yield zero Metadata.
func (d *ParsedDoc) Metadata() (frontmatter.Metadata, error) {
	meta, err := frontmatter.DecodeMetadata(d.fmRaw)
	if err != nil {
		return frontmatter.Metadata{}, errors.WrapError(err, errors.CategoryStructure, "invalid frontmatter").
			WithContext("path", d.path).
			Build()
	}
	return meta, nil
}

// Bytes re-joins frontmatter and body into full document bytes.
func (d *ParsedDoc) Bytes() []byte {
	return frontmatter.Join(d.fmRaw, d.body, d.hadFM, d.style)
}

// Lines returns the line index of the original text, built on first use.
func (d *ParsedDoc) Lines() *LineIndex {
	if d.lines == nil {
		d.lines = NewLineIndex(d.original)
	}
	return d.lines
}
