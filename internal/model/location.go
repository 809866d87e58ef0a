package model

import "fmt"

// MemoryPath is printed in place of an empty Location path.
const MemoryPath = "<memory>"

// Span is a half-open byte range into a document's original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Shift moves both offsets by delta.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Location is the source provenance attached to every extracted entity.
//
// Path is empty for in-memory input.
type Location struct {
	Path string `json:"path"`
	Span Span   `json:"span"`
}

// DisplayPath returns Path, or MemoryPath when the location has no backing file.
func (l Location) DisplayPath() string {
	if l.Path == "" {
		return MemoryPath
	}
	return l.Path
}

// String formats the location as path:start-end.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d-%d", l.DisplayPath(), l.Span.Start, l.Span.End)
}
