package model

// DocumentKind names the shape a parsed document produced.
type DocumentKind string

const (
	DocumentTemplate   DocumentKind = "template"
	DocumentTree       DocumentKind = "tree"
	DocumentCollection DocumentKind = "collection"
)

// Document is the closed union of the three parse outcomes for one source
// document: a bare Template, a bare Tree, or a Collection.
type Document interface {
	Kind() DocumentKind
	// Templates lists every top-level entity in document order.
	Templates() []Template
	isDocument()
}

// TemplateDocument is a document that produced exactly one template.
type TemplateDocument struct {
	Template Template
}

func (*TemplateDocument) isDocument()             {}
func (*TemplateDocument) Kind() DocumentKind      { return DocumentTemplate }
func (d *TemplateDocument) Templates() []Template { return []Template{d.Template} }

// TreeDocument is a document that produced exactly one tree and nothing else.
type TreeDocument struct {
	Tree TemplateTree
}

func (*TreeDocument) isDocument()             {}
func (*TreeDocument) Kind() DocumentKind      { return DocumentTree }
func (d *TreeDocument) Templates() []Template { return []Template{d.Tree} }

// CollectionDocument is any other combination.
type CollectionDocument struct {
	Collection TemplateCollection
}

func (*CollectionDocument) isDocument()             {}
func (*CollectionDocument) Kind() DocumentKind      { return DocumentCollection }
func (d *CollectionDocument) Templates() []Template { return d.Collection.Templates }
