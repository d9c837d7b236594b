// Package set provides an immutable string set.
package set

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Set is an immutable string set.
type Set struct {
	items map[string]struct{}
}

// New constructs a new Set.
func New(items ...string) *Set {
	s := &Set{items: make(map[string]struct{}, len(items))}
	for _, item := range items {
		s.items[item] = struct{}{}
	}
	return s
}

// Collect constructs a new Set from a sequence.
func Collect(items iter.Seq[string]) *Set {
	s := &Set{items: make(map[string]struct{})}
	for item := range items {
		s.items[item] = struct{}{}
	}
	return s
}

// With returns a new Set with the provided items added.
func (s *Set) With(items ...string) *Set {
	m := maps.Clone(s.items)
	for _, item := range items {
		m[item] = struct{}{}
	}
	return &Set{items: m}
}

// Without returns a new Set with the provided items removed.
func (s *Set) Without(items ...string) *Set {
	m := maps.Clone(s.items)
	for _, item := range items {
		delete(m, item)
	}
	return &Set{items: m}
}

// Contains checks if the given item is in the set.
func (s *Set) Contains(item string) bool {
	_, ok := s.items[item]
	return ok
}

// Len returns the number of items in the set.
func (s *Set) Len() int {
	return len(s.items)
}

// Items returns the items in the set as a sorted slice. It's safe for the
// caller to mutate the returned slice.
func (s *Set) Items() []string {
	return slices.Sorted(maps.Keys(s.items))
}

// String implements Stringer.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteRune('{')
	for i, item := range s.Items() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item)
	}
	b.WriteRune('}')
	return b.String()
}
