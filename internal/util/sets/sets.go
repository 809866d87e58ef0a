// Package sets provides a small generic set used for identifier and
// placeholder bookkeeping.
package sets

import (
	"cmp"
	"maps"
	"slices"
)

// Set is a hash set of comparable keys.
type Set[T comparable] map[T]struct{}

// New creates a set holding vals.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Add(v T) { s[v] = struct{}{} }

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// AddAll inserts every value and returns s.
func (s Set[T]) AddAll(vals ...T) Set[T] {
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Sorted returns the members of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	return slices.Sorted(maps.Keys(s))
}
