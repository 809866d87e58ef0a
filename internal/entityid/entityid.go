// Package entityid derives deterministic identifiers from heading paths.
package entityid

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const separator = '_'

// FromSegments joins the normalized, non-empty segments with underscores.
//
//	FromSegments("Rust Crate", "Manifest") == "rust_crate_manifest"
func FromSegments(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if normalized := NormalizeSegment(segment); normalized != "" {
			parts = append(parts, normalized)
		}
	}
	return strings.Join(parts, string(separator))
}

// NormalizeSegment converts one heading title to a snake_case component.
//
// ASCII alphanumerics are lowercased, other letters and digits are lowercased
// with full Unicode case mapping, and every run of other characters becomes a
// single underscore. Leading and trailing separators are dropped, so a
// segment made only of punctuation normalizes to "".
func NormalizeSegment(input string) string {
	var out strings.Builder
	lastWasSeparator := false

	for _, r := range input {
		switch {
		case r < unicode.MaxASCII && isASCIIAlnum(byte(r)):
			out.WriteByte(toASCIILower(byte(r)))
			lastWasSeparator = false
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			// Casers are stateful, so one is built per rune rather than shared.
			out.WriteString(cases.Lower(language.Und).String(string(r)))
			lastWasSeparator = false
		case out.Len() > 0 && !lastWasSeparator:
			out.WriteRune(separator)
			lastWasSeparator = true
		}
	}

	return strings.TrimSuffix(out.String(), string(separator))
}

func isASCIIAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toASCIILower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
