// Package catalog aggregates parsed template documents into one indexed,
// read-only set with globally unique ids.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/nmcr/internal/model"
	"git.home.luguber.info/inful/nmcr/internal/parser"
)

type refKind int

const (
	refFile refKind = iota
	refTree
	refTreeFile
)

type ref struct {
	kind refKind
	tree int
	file int
}

// FileRef is the result of a file lookup: either a StandaloneRef or a
// TreeMemberRef.
type FileRef interface {
	isFileRef()
	TemplateFile() model.TemplateFile
}

// StandaloneRef is a file listed directly in the catalog.
type StandaloneRef struct {
	File model.TemplateFile
}

// TreeMemberRef is a file reachable only through its tree.
type TreeMemberRef struct {
	Tree model.TemplateTree
	File model.TemplateFile
}

func (StandaloneRef) isFileRef()                         {}
func (r StandaloneRef) TemplateFile() model.TemplateFile { return r.File }
func (TreeMemberRef) isFileRef()                         {}
func (r TreeMemberRef) TemplateFile() model.TemplateFile { return r.File }

// Source describes one document that contributed to the catalog.
type Source struct {
	Path        string
	Kind        model.DocumentKind
	Strategy    parser.Strategy
	Fingerprint string
	Diagnostics []parser.Diagnostic
}

// Skip is a document left out of the catalog because it failed to parse.
type Skip struct {
	Path string
	Err  error
}

// Catalog is the read-only result of a build. It is safe for concurrent readers.
type Catalog struct {
	loadID  string
	files   []model.TemplateFile
	trees   []model.TemplateTree
	index   map[string]ref
	sources []Source
	skipped []Skip
}

// LoadID identifies the build that produced the catalog in log output.
func (c *Catalog) LoadID() string { return c.loadID }

func (c *Catalog) IsEmpty() bool {
	return len(c.files) == 0 && len(c.trees) == 0
}

// StandaloneFiles returns the files that are not members of any tree, in
// ingestion order.
func (c *Catalog) StandaloneFiles() []model.TemplateFile { return c.files }

// TreeTemplates returns the trees in ingestion order.
func (c *Catalog) TreeTemplates() []model.TemplateTree { return c.trees }

// Sources lists the documents that were ingested, in input order.
func (c *Catalog) Sources() []Source { return c.sources }

// Skipped lists documents dropped by a load with SkipInvalid set.
func (c *Catalog) Skipped() []Skip { return c.skipped }

// GetFile resolves a standalone file or a tree member by id.
func (c *Catalog) GetFile(id string) (FileRef, bool) {
	r, ok := c.index[id]
	if !ok {
		return nil, false
	}
	switch r.kind {
	case refFile:
		return StandaloneRef{File: c.files[r.file]}, true
	case refTreeFile:
		tree := c.trees[r.tree]
		return TreeMemberRef{Tree: tree, File: tree.Files[r.file]}, true
	}
	return nil, false
}

// GetTree resolves a tree by id. Member and file ids do not match.
func (c *Catalog) GetTree(id string) (model.TemplateTree, bool) {
	r, ok := c.index[id]
	if !ok || r.kind != refTree {
		return model.TemplateTree{}, false
	}
	return c.trees[r.tree], true
}

// Get resolves any id to the template it names. Tree members resolve to
// their file.
func (c *Catalog) Get(id string) (model.Template, bool) {
	if tree, ok := c.GetTree(id); ok {
		return tree, true
	}
	if f, ok := c.GetFile(id); ok {
		return f.TemplateFile(), true
	}
	return nil, false
}

// IDs returns every indexed id: standalone files, then each tree followed
// by its members.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.index))
	for _, f := range c.files {
		ids = append(ids, f.ID)
	}
	for _, t := range c.trees {
		ids = append(ids, t.ID)
		for _, f := range t.Files {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Instructions summarizes the catalog for a tool client. It is absent for
// an empty catalog.
func (c *Catalog) Instructions() (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	lines := []string{"Templates available via tools:"}
	for _, f := range c.files {
		line := fmt.Sprintf("- %s → %s", f.ID, f.Name)
		if d := strings.TrimSpace(f.Description); d != "" {
			line += " — " + d
		}
		if len(f.Args) > 0 {
			names := make([]string, len(f.Args))
			for i, a := range f.Args {
				names[i] = a.Name
			}
			line += fmt.Sprintf(" (args: %s)", strings.Join(names, ", "))
		}
		lines = append(lines, line)
	}
	for _, t := range c.trees {
		lines = append(lines, fmt.Sprintf("- %s → %s (tree)", t.ID, t.Name))
	}
	return strings.Join(lines, "\n"), true
}

// MarshalJSON encodes the catalog as its standalone files and trees.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	files := c.files
	if files == nil {
		files = []model.TemplateFile{}
	}
	trees := c.trees
	if trees == nil {
		trees = []model.TemplateTree{}
	}
	return json.Marshal(struct {
		Files []model.TemplateFile `json:"files"`
		Trees []model.TemplateTree `json:"trees"`
	}{files, trees})
}
