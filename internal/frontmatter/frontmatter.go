// Package frontmatter splits and joins the optional YAML header of a
// template document.
package frontmatter

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

const delimiter = "---"

// Style records the newline convention of a document so a split document can
// be joined back byte for byte.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Split separates YAML frontmatter from the Markdown body.
//
// Documents that do not open with a delimiter line are returned whole as
// body with had=false. A closing delimiter on the last line without a
// trailing newline is accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)
	nl := []byte(style.Newline)

	open := append([]byte(delimiter), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}
	rest := content[len(open):]

	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, style, nil
	}
	if bytes.Equal(rest, []byte(delimiter)) {
		return []byte{}, []byte{}, true, style, nil
	}

	closing := append(append(append([]byte(nil), nl...), delimiter...), nl...)
	if idx := bytes.Index(rest, closing); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closing):], true, style, nil
	}

	tail := append(append([]byte(nil), nl...), delimiter...)
	if bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-len(delimiter)], []byte{}, true, style, nil
	}
	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Join reassembles a document from raw frontmatter and body. When had is
// false the body is returned unchanged.
func Join(frontmatter []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	var out bytes.Buffer
	out.Grow(2*(len(delimiter)+len(nl)) + len(frontmatter) + len(body))
	out.WriteString(delimiter + nl)
	out.Write(frontmatter)
	out.WriteString(delimiter + nl)
	out.Write(body)
	return out.Bytes()
}

func detectStyle(content []byte) Style {
	style := Style{
		Newline:            "\n",
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		style.Newline = "\r\n"
	}
	return style
}
