package catalog

import (
	"git.home.luguber.info/inful/nmcr/internal/model"
	"git.home.luguber.info/inful/nmcr/internal/util/sets"
)

// builder accumulates documents in order. It owns the registry, so the
// first claim of an id wins deterministically.
type builder struct {
	files []model.TemplateFile
	trees []model.TemplateTree
	index map[string]ref
	ids   *Registry
}

func newBuilder() *builder {
	return &builder{index: make(map[string]ref), ids: NewRegistry()}
}

// ingest adds the templates of one document. Trees and their members are
// claimed before loose files; a file whose id a tree already absorbed is
// dropped rather than reported as a duplicate.
func (b *builder) ingest(doc model.Document) error {
	switch d := doc.(type) {
	case *model.TemplateDocument:
		return b.addTemplate(d.Template)
	case *model.TreeDocument:
		_, err := b.addTree(d.Tree)
		return err
	case *model.CollectionDocument:
		trees, files := d.Collection.Split()
		absorbed := sets.New[string]()
		for _, t := range trees {
			members, err := b.addTree(t)
			if err != nil {
				return err
			}
			for _, id := range members {
				absorbed.Add(id)
			}
		}
		for _, f := range files {
			if absorbed.Has(f.ID) {
				continue
			}
			if err := b.addFile(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) addTemplate(t model.Template) error {
	switch t := t.(type) {
	case model.TemplateFile:
		return b.addFile(t)
	case model.TemplateTree:
		_, err := b.addTree(t)
		return err
	}
	return nil
}

func (b *builder) addFile(f model.TemplateFile) error {
	if err := b.ids.Claim(f.ID, f.Location); err != nil {
		return err
	}
	b.index[f.ID] = ref{kind: refFile, file: len(b.files)}
	b.files = append(b.files, f)
	return nil
}

func (b *builder) addTree(t model.TemplateTree) ([]string, error) {
	if err := b.ids.Claim(t.ID, t.Location); err != nil {
		return nil, err
	}
	ti := len(b.trees)
	members := make([]string, 0, len(t.Files))
	for fi, f := range t.Files {
		if err := b.ids.Claim(f.ID, f.Location); err != nil {
			return nil, err
		}
		b.index[f.ID] = ref{kind: refTreeFile, tree: ti, file: fi}
		members = append(members, f.ID)
	}
	b.index[t.ID] = ref{kind: refTree, tree: ti}
	b.trees = append(b.trees, t)
	return members, nil
}

func (b *builder) finish() *Catalog {
	return &Catalog{files: b.files, trees: b.trees, index: b.index}
}
