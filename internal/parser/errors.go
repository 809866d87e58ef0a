package parser

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/nmcr/internal/model"
)

// ErrNoTemplatesFound is matched by NoTemplatesError.
var ErrNoTemplatesFound = errors.New("No templates found in markdown")

// NoTemplatesError reports a document where neither strategy found a template.
type NoTemplatesError struct {
	Location model.Location
}

func (e *NoTemplatesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoTemplatesFound, e.Location.DisplayPath())
}

func (e *NoTemplatesError) Unwrap() error { return ErrNoTemplatesFound }

// MissingIdentifierError reports a template section whose heading path
// normalizes to an empty id.
type MissingIdentifierError struct {
	HeadingPath []string
	Location    model.Location
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("Unable to derive template id from headings %q at %s",
		strings.Join(e.HeadingPath, " > "), e.Location)
}

// NestedTreeError reports a tree found inside the section of another tree.
type NestedTreeError struct {
	Outer    string
	Inner    string
	Location model.Location
}

func (e *NestedTreeError) Error() string {
	return fmt.Sprintf("tree %q is nested inside tree %q at %s", e.Inner, e.Outer, e.Location)
}

// StructuralError reports a document that could not be split or parsed.
type StructuralError struct {
	Location model.Location
	Err      error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed document %s: %v", e.Location.DisplayPath(), e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }
