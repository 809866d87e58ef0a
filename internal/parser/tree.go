package parser

import (
	"fmt"

	"git.home.luguber.info/inful/nmcr/internal/markdown"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// group is the set of templates extracted directly under one parent heading.
type group struct {
	parent *markdown.Section
	files  []model.TemplateFile
}

type assembled struct {
	tree    model.TemplateTree
	section *markdown.Section
}

// assembleTree promotes g to a tree iff every member declares an output
// path. A group where only some members do is recorded as a diagnostic.
func (x *extractor) assembleTree(g group) (*assembled, error) {
	if g.parent == nil || len(g.files) == 0 {
		return nil, nil
	}

	pathed := 0
	for _, f := range g.files {
		if f.HasPath() {
			pathed++
		}
	}
	if pathed < len(g.files) {
		if pathed > 0 {
			x.diagnostics = append(x.diagnostics, Diagnostic{
				Kind: DiagnosticDegradedTree,
				Message: fmt.Sprintf("%d of %d templates under %q declare no output path; kept as standalone templates",
					len(g.files)-pathed, len(g.files), g.parent.Title),
				Location: x.location(g.parent.Span),
			})
		}
		return nil, nil
	}

	id, err := x.id(g.parent)
	if err != nil {
		return nil, err
	}
	return &assembled{
		tree: model.TemplateTree{
			ID:          id,
			Name:        g.parent.Title,
			Description: x.treeDescription(g.parent),
			Files:       g.files,
			Location:    x.location(g.parent.Span),
		},
		section: g.parent,
	}, nil
}

// checkNesting rejects a tree whose heading lies inside another tree's section.
func checkNesting(trees []assembled) error {
	owner := make(map[*markdown.Section]string, len(trees))
	for _, t := range trees {
		owner[t.section] = t.tree.ID
	}
	for _, inner := range trees {
		for p := inner.section.Parent; p != nil; p = p.Parent {
			if outer, ok := owner[p]; ok {
				return &NestedTreeError{Outer: outer, Inner: inner.tree.ID, Location: inner.tree.Location}
			}
		}
	}
	return nil
}
