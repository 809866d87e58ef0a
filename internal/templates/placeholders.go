package templates

import (
	"strings"

	"git.home.luguber.info/inful/nmcr/internal/model"
	"git.home.luguber.info/inful/nmcr/internal/util/sets"
)

// Placeholders lists the variable names referenced by {{ }} tags in
// content, sorted and without duplicates. Helpers, partial names, comments,
// closing tags, @-variables and literals are not reported. The scan is
// lexical; content is never evaluated.
func Placeholders(content string) []string {
	seen := sets.New[string]()
	rest := content
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		rest = strings.TrimPrefix(rest[open+2:], "{")
		end := strings.Index(rest, "}}")
		if end < 0 {
			break
		}
		tag := strings.Trim(strings.TrimSpace(rest[:end]), "~")
		rest = strings.TrimPrefix(rest[end+2:], "}")
		seen.AddAll(tagNames(strings.TrimSpace(tag))...)
	}
	return sets.Sorted(seen)
}

func tagNames(tag string) []string {
	if tag == "" || tag == "else" || strings.HasPrefix(tag, "else ") {
		return nil
	}
	switch tag[0] {
	case '!', '/':
		return nil
	}

	fields := strings.Fields(tag)
	first, args := fields[0], fields[1:]
	var candidates []string
	switch first[0] {
	case '#', '^':
		candidates = args
		if len(args) == 0 {
			candidates = []string{first[1:]}
		}
	case '>':
		if len(args) > 1 {
			candidates = args[1:]
		}
	case '&':
		candidates = append([]string{first[1:]}, args...)
	default:
		if len(args) == 0 {
			candidates = []string{first}
		} else {
			candidates = args
		}
	}

	var names []string
	for _, c := range candidates {
		if name, ok := placeholderName(c); ok {
			names = append(names, name)
		}
	}
	return names
}

func placeholderName(token string) (string, bool) {
	if strings.Contains(token, "|") {
		return "", false
	}
	c := strings.Trim(strings.TrimSpace(token), ",()")
	for strings.HasPrefix(c, "../") {
		c = strings.TrimPrefix(c, "../")
	}
	if before, _, ok := strings.Cut(c, "="); ok {
		c = strings.TrimSpace(before)
	}
	if c == "" || c == "." || strings.EqualFold(c, "this") || c[0] == '@' {
		return "", false
	}
	switch strings.ToLower(c) {
	case "as", "in", "let":
		return "", false
	}
	for _, r := range c {
		if !(r == '_' || r == '.' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "", false
		}
	}
	return c, true
}

// Undeclared returns the placeholders of file whose first path segment is
// not a declared argument.
func Undeclared(file model.TemplateFile) []string {
	declared := sets.New[string]()
	for _, a := range file.Args {
		declared.Add(a.Name)
	}
	var out []string
	for _, p := range Placeholders(file.Content) {
		head, _, _ := strings.Cut(p, ".")
		if head == "this" {
			continue
		}
		if !declared.Has(head) {
			out = append(out, p)
		}
	}
	return out
}
