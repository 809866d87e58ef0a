package catalog

import (
	"fmt"

	"git.home.luguber.info/inful/nmcr/internal/model"
)

// DuplicateIDError reports an id claimed twice within one catalog.
type DuplicateIDError struct {
	ID        string
	First     model.Location
	Duplicate model.Location
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("first occurrence at %s: duplicate occurrence at %s: Duplicate template id: %s",
		e.First, e.Duplicate, e.ID)
}

// Registry records the location of every id claimed during one build.
// It is not safe for concurrent use.
type Registry struct {
	seen map[string]model.Location
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]model.Location)}
}

// Claim records id at loc, or returns a *DuplicateIDError naming both
// locations when id was already claimed.
func (r *Registry) Claim(id string, loc model.Location) error {
	if first, ok := r.seen[id]; ok {
		return &DuplicateIDError{ID: id, First: first, Duplicate: loc}
	}
	r.seen[id] = loc
	return nil
}
