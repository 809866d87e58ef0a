package parser

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/nmcr/internal/markdown"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

var argSeparators = []string{":", "-", "–", "—"}

// parseArgs reads one Arg per list item found directly in the section body.
func parseArgs(section *markdown.Section, source []byte) []model.Arg {
	args := []model.Arg{}
	for _, n := range section.Own() {
		list, ok := n.(*gmast.List)
		if !ok {
			continue
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			if arg, ok := parseArgItem(item, source); ok {
				args = append(args, arg)
			}
		}
	}
	return args
}

// parseArgItem reads "`name?` [kind]: description". Text before the first
// code span is ignored; items without a code span are not arguments.
func parseArgItem(item gmast.Node, source []byte) (model.Arg, bool) {
	var (
		name  string
		found bool
		rest  strings.Builder
	)
	for block := item.FirstChild(); block != nil; block = block.NextSibling() {
		if !markdown.IsParagraph(block) {
			continue
		}
		if found && rest.Len() > 0 {
			rest.WriteByte(' ')
		}
		for c := block.FirstChild(); c != nil; c = c.NextSibling() {
			if !found {
				if _, ok := c.(*gmast.CodeSpan); ok {
					name = markdown.FlattenText(c, source)
					found = true
				}
				continue
			}
			rest.WriteString(markdown.InlineText(c, source))
		}
	}
	if !found {
		return model.Arg{}, false
	}

	arg := model.Arg{Kind: model.ArgKindAny, Required: true}
	name = strings.TrimSpace(name)
	if trimmed, optional := strings.CutSuffix(name, "?"); optional {
		name = strings.TrimSpace(trimmed)
		arg.Required = false
	}
	arg.Name = name

	desc := strings.TrimSpace(rest.String())
	if kind, remainder, ok := cutKindTag(desc); ok {
		arg.Kind = kind
		desc = strings.TrimSpace(remainder)
	}
	for _, sep := range argSeparators {
		if after, ok := strings.CutPrefix(desc, sep); ok {
			desc = after
			break
		}
	}
	arg.Description = strings.TrimSpace(desc)
	return arg, true
}

// cutKindTag splits a leading "[boolean]", "[string]" or "[number]" tag off s.
func cutKindTag(s string) (model.ArgKind, string, bool) {
	if !strings.HasPrefix(s, "[") {
		return "", s, false
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", s, false
	}
	kind, ok := model.ParseArgKind(s[1:end])
	if !ok {
		return "", s, false
	}
	return kind, s[end+1:], true
}
