package parser

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/nmcr/internal/entityid"
	"git.home.luguber.info/inful/nmcr/internal/markdown"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// extractor carries per-document state through either strategy.
type extractor struct {
	outline     *markdown.Outline
	path        string
	diagnostics []Diagnostic
}

// extraction is what a strategy found, before the cardinality rule picks
// the document shape.
type extraction struct {
	files []model.TemplateFile
	trees []assembled
	meta  *markdown.Section
}

func (x *extractor) location(span model.Span) model.Location {
	return model.Location{Path: x.path, Span: span}
}

func (x *extractor) id(s *markdown.Section) (string, error) {
	id := entityid.FromSegments(s.Path...)
	if id == "" {
		return "", &MissingIdentifierError{
			HeadingPath: append([]string(nil), s.Path...),
			Location:    x.location(s.Span),
		}
	}
	return id, nil
}

// description joins the paragraphs that precede the first heading or code block.
func (x *extractor) description(s *markdown.Section) string {
	var parts []string
	for _, n := range s.Body {
		if _, ok := n.(*gmast.Heading); ok || markdown.IsCodeBlock(n) {
			break
		}
		if _, ok := n.(*gmast.Paragraph); ok {
			parts = append(parts, x.outline.Text(n))
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// treeDescription joins the paragraphs that precede the first child heading.
func (x *extractor) treeDescription(s *markdown.Section) string {
	var parts []string
	for _, n := range s.Own() {
		if _, ok := n.(*gmast.Paragraph); ok {
			parts = append(parts, x.outline.Text(n))
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// templateBlock resolves content from the single code block of the
// "template" child, falling back to the single code block of the section.
// Empty blocks resolve nothing, so the section is skipped.
func (x *extractor) templateBlock(s *markdown.Section) (markdown.CodeBlock, bool) {
	if tpl := childSubhead(s, subheadTemplate); tpl != nil {
		if blocks := x.outline.CodeBlocks(tpl.Body); len(blocks) == 1 && blocks[0].Content != "" {
			return blocks[0], true
		}
	}
	if blocks := x.outline.CodeBlocks(s.Body); len(blocks) == 1 && blocks[0].Content != "" {
		return blocks[0], true
	}
	return markdown.CodeBlock{}, false
}

// fullTemplate extracts a section that owns args/template subheads.
// Sections without resolvable content are skipped, not rejected.
func (x *extractor) fullTemplate(s *markdown.Section) (model.TemplateFile, bool, error) {
	block, ok := x.templateBlock(s)
	if !ok {
		return model.TemplateFile{}, false, nil
	}
	file, err := x.newFile(s, block)
	if err != nil {
		return model.TemplateFile{}, false, err
	}
	if args := childSubhead(s, subheadArgs); args != nil {
		file.Args = parseArgs(args, x.outline.Source)
	}
	return file, true, nil
}

// inferredTemplate extracts a section with exactly one code block and no subheads.
func (x *extractor) inferredTemplate(s *markdown.Section) (model.TemplateFile, bool, error) {
	blocks := x.outline.CodeBlocks(s.Body)
	if len(blocks) != 1 {
		return model.TemplateFile{}, false, nil
	}
	file, err := x.newFile(s, blocks[0])
	if err != nil {
		return model.TemplateFile{}, false, err
	}
	return file, true, nil
}

func (x *extractor) newFile(s *markdown.Section, block markdown.CodeBlock) (model.TemplateFile, error) {
	id, err := x.id(s)
	if err != nil {
		return model.TemplateFile{}, err
	}
	return model.TemplateFile{
		ID:          id,
		Name:        s.Title,
		Description: x.description(s),
		Args:        []model.Arg{},
		Lang:        block.Lang,
		Content:     block.Content,
		Path:        outputPath(s, x.outline.Source),
		Location:    x.location(s.Span),
	}, nil
}

// byHeadings extracts candidates at base and their children at base+1.
func (x *extractor) byHeadings(base int) (*extraction, error) {
	out := &extraction{}
	x.outline.Walk(func(s *markdown.Section) {
		if out.meta == nil && s.Level < base {
			out.meta = s
		}
	})

	for _, candidate := range candidates(x.outline, base) {
		parent, ok, err := x.fullTemplate(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			out.files = append(out.files, parent)
		}

		g := group{parent: candidate}
		for _, child := range candidate.Children {
			if child.Level != base+1 || IsSubhead(child.Title) {
				continue
			}
			extract := x.inferredTemplate
			if hasSubheadChild(child) {
				extract = x.fullTemplate
			}
			file, ok, err := extract(child)
			if err != nil {
				return nil, err
			}
			if ok {
				g.files = append(g.files, file)
			}
		}

		tree, err := x.assembleTree(g)
		if err != nil {
			return nil, err
		}
		if tree != nil {
			out.trees = append(out.trees, *tree)
			continue
		}
		out.files = append(out.files, g.files...)
	}
	return out, nil
}

// byCodeBlocks treats every leaf section with exactly one code block as a
// template and groups siblings by their parent heading.
func (x *extractor) byCodeBlocks() (*extraction, error) {
	var leaves []*markdown.Section
	x.outline.Walk(func(s *markdown.Section) {
		if !s.HasNestedHeadings() {
			leaves = append(leaves, s)
		}
	})

	out := &extraction{}
	var groups []*group
	byParent := map[*markdown.Section]*group{}
	for _, leaf := range leaves {
		file, ok, err := x.inferredTemplate(leaf)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out.files = append(out.files, file)

		g, seen := byParent[leaf.Parent]
		if !seen {
			g = &group{parent: leaf.Parent}
			byParent[leaf.Parent] = g
			groups = append(groups, g)
		}
		g.files = append(g.files, file)
	}
	if len(out.files) < 2 {
		return out, nil
	}

	for _, g := range groups {
		tree, err := x.assembleTree(*g)
		if err != nil {
			return nil, err
		}
		if tree != nil {
			out.trees = append(out.trees, *tree)
		}
	}
	return out, nil
}
