package domain

import (
	"encoding/json"
	"slices"
)

// Set is an unordered collection of unique string-like values.
//
// It encodes as a sorted JSON array so that stored bytes are stable
// across saves of the same logical value.
type Set[T ~string] map[T]struct{}

// NewSet returns a set holding the given items.
func NewSet[T ~string](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts item. Adding an existing item is a no-op.
// Returns true if the item was not present before.
func (s Set[T]) Add(item T) bool {
	if _, ok := s[item]; ok {
		return false
	}
	s[item] = struct{}{}
	return true
}

// Remove deletes item. Returns true if it was present.
func (s Set[T]) Remove(item T) bool {
	if _, ok := s[item]; !ok {
		return false
	}
	delete(s, item)
	return true
}

// Has reports whether item is in the set.
func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of items.
func (s Set[T]) Len() int {
	return len(s)
}

// Sorted returns the items in ascending order.
func (s Set[T]) Sorted() []T {
	out := make([]T, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for item := range s {
		out[item] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same items.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for item := range s {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array, collapsing duplicates.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		*s = nil
		return nil
	}
	*s = NewSet(items...)
	return nil
}
