package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/nmcr/internal/docmodel"
	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/frontmatter"
	"git.home.luguber.info/inful/nmcr/internal/markdown"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// Strategy names how templates were recognized in a document.
type Strategy string

const (
	StrategyHeadings   Strategy = "headings"
	StrategyCodeBlocks Strategy = "code_blocks"
)

// DiagnosticKind classifies non-fatal findings.
type DiagnosticKind string

// DiagnosticDegradedTree marks a sibling group that was not promoted to a
// tree because some members declare no output path.
const DiagnosticDegradedTree DiagnosticKind = "degraded_tree"

// Diagnostic is a non-fatal finding recorded while parsing.
type Diagnostic struct {
	Kind     DiagnosticKind
	Message  string
	Location model.Location
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Location, d.Message, d.Kind)
}

// Options tunes a parse.
type Options struct {
	// Name is the collection name used when neither a heading above the
	// templates nor frontmatter provides one. ParseFile defaults it to the
	// file stem.
	Name string
}

// Result is the outcome of parsing one document.
type Result struct {
	Path        string
	Document    model.Document
	Strategy    Strategy
	Diagnostics []Diagnostic
	Fingerprint string
}

// ParseFile reads and parses the document at path.
func ParseFile(path string, opts Options) (*Result, error) {
	doc, err := docmodel.ParseFile(path, docmodel.Options{})
	if err != nil {
		if ferrors.HasCategory(err, ferrors.CategoryFileSystem) {
			return nil, err
		}
		return nil, wrap(&StructuralError{Location: model.Location{Path: filepath.ToSlash(path)}, Err: err}, path)
	}
	if opts.Name == "" {
		opts.Name = Stem(path)
	}
	return Parse(doc, opts)
}

// ParseString parses in-memory input. name is the collection fallback name.
func ParseString(name, input string) (*Result, error) {
	doc, err := docmodel.Parse([]byte(input), docmodel.Options{})
	if err != nil {
		return nil, wrap(&StructuralError{Err: err}, "")
	}
	return Parse(doc, Options{Name: name})
}

// Parse extracts the templates of an already split document. Errors are
// classified as structure errors carrying the document path.
func Parse(doc *docmodel.ParsedDoc, opts Options) (*Result, error) {
	res, err := parse(doc, opts)
	if err != nil {
		return nil, wrap(err, doc.Path())
	}
	return res, nil
}

func wrap(err error, path string) error {
	return ferrors.StructureError("failed to parse template document").
		WithCause(err).
		WithContext("path", model.Location{Path: filepath.ToSlash(path)}.DisplayPath()).
		Build()
}

func parse(doc *docmodel.ParsedDoc, opts Options) (*Result, error) {
	path := filepath.ToSlash(doc.Path())
	root := model.Location{Path: path, Span: model.Span{End: len(doc.Original())}}

	meta, err := doc.Metadata()
	if err != nil {
		return nil, &StructuralError{Location: root, Err: err}
	}
	outline := markdown.Parse(doc.Body(), markdown.Options{Offset: doc.BodyOffset()})

	x := &extractor{outline: outline, path: path}
	res := &Result{Path: path, Fingerprint: doc.Fingerprint()}

	var found *extraction
	if base, ok := baseLevel(outline); ok {
		res.Strategy = StrategyHeadings
		found, err = x.byHeadings(base)
	} else {
		res.Strategy = StrategyCodeBlocks
		found, err = x.byCodeBlocks()
	}
	if err != nil {
		return nil, err
	}
	if err := checkNesting(found.trees); err != nil {
		return nil, err
	}

	res.Document, err = x.document(found, root, meta, opts)
	if err != nil {
		return nil, err
	}
	res.Diagnostics = x.diagnostics
	return res, nil
}

// document applies the cardinality rule: one file alone is a bare
// template, one tree alone is a bare tree, anything else is a collection
// listing files first and trees after.
func (x *extractor) document(found *extraction, root model.Location, meta frontmatter.Metadata, opts Options) (model.Document, error) {
	switch {
	case len(found.files) == 0 && len(found.trees) == 0:
		return nil, &NoTemplatesError{Location: root}
	case len(found.files) == 1 && len(found.trees) == 0:
		return &model.TemplateDocument{Template: found.files[0]}, nil
	case len(found.files) == 0 && len(found.trees) == 1:
		return &model.TreeDocument{Tree: found.trees[0].tree}, nil
	}

	collection := model.TemplateCollection{
		Name:     opts.Name,
		Location: root,
	}
	if found.meta != nil {
		if found.meta.Title != "" {
			collection.Name = found.meta.Title
		}
		collection.Description = x.description(found.meta)
		collection.Location = x.location(found.meta.Span)
	}
	if collection.Name == "" {
		collection.Name = "Untitled"
	}
	if meta.Name != "" {
		collection.Name = meta.Name
	}
	if meta.Description != "" {
		collection.Description = meta.Description
	}

	collection.Templates = make([]model.Template, 0, len(found.files)+len(found.trees))
	for _, f := range found.files {
		collection.Templates = append(collection.Templates, f)
	}
	for _, t := range found.trees {
		collection.Templates = append(collection.Templates, t.tree)
	}
	return &model.CollectionDocument{Collection: collection}, nil
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
