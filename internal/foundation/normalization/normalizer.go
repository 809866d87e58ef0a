// Package normalization maps loosely written keywords onto closed sets of
// values, ignoring case and surrounding whitespace.
package normalization

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Normalizer looks up case-folded keywords.
type Normalizer[T comparable] struct {
	name   string
	values map[string]T
	keys   []string
}

// New builds a normalizer. name appears in error messages.
func New[T comparable](name string, values map[string]T) *Normalizer[T] {
	n := &Normalizer[T]{name: name, values: make(map[string]T, len(values))}
	for k, v := range values {
		key := fold(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Lookup returns the value for raw.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.values[fold(raw)]
	return v, ok
}

// Parse is Lookup with an error naming the valid keywords.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	if v, ok := n.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q, valid options: %s", n.name, raw, strings.Join(n.keys, ", "))
}

// Keys returns the folded keywords in sorted order.
func (n *Normalizer[T]) Keys() []string {
	return append([]string(nil), n.keys...)
}
