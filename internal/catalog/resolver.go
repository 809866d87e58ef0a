package catalog

import (
	"fmt"
	"os"
	"sync"

	"git.home.luguber.info/inful/nmcr/internal/docmodel"
	"git.home.luguber.info/inful/nmcr/internal/model"
)

// Resolver turns byte spans into 1-based line and column positions by
// reading, and caching, the documents they point into.
type Resolver struct {
	mu      sync.Mutex
	indexes map[string]*docmodel.LineIndex
	read    func(string) ([]byte, error)
}

func NewResolver() *Resolver {
	return &Resolver{indexes: make(map[string]*docmodel.LineIndex), read: os.ReadFile}
}

// Register supplies the text for path, which is how in-memory documents
// (empty path) become resolvable.
func (r *Resolver) Register(path string, text []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes[path] = docmodel.NewLineIndex(text)
}

func (r *Resolver) index(path string) (*docmodel.LineIndex, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, ok := r.indexes[path]; ok {
		return x, nil
	}
	if path == "" {
		return nil, fmt.Errorf("no text registered for %s", model.MemoryPath)
	}
	text, err := r.read(path)
	if err != nil {
		return nil, err
	}
	x := docmodel.NewLineIndex(text)
	r.indexes[path] = x
	return x, nil
}

// Resolve returns the position of loc's span start.
func (r *Resolver) Resolve(loc model.Location) (docmodel.Position, error) {
	x, err := r.index(loc.Path)
	if err != nil {
		return docmodel.Position{}, err
	}
	return x.Position(loc.Span.Start), nil
}

// Format renders loc as path:line:col, or as the raw span when the
// document cannot be read.
func (r *Resolver) Format(loc model.Location) string {
	pos, err := r.Resolve(loc)
	if err != nil {
		return loc.String()
	}
	return fmt.Sprintf("%s:%d:%d", loc.DisplayPath(), pos.Line, pos.Column)
}
