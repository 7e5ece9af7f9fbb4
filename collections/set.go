// Package collections provides containers that lenses can traverse and rebuild.
package collections

import (
	"encoding/json"
	"iter"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Set is a generic set that remembers insertion order, so enumerating it
// is deterministic. For Set[any] every element must be comparable at runtime.
type Set[T comparable] struct {
	items *orderedmap.OrderedMap[T, struct{}]
	mu    sync.RWMutex
}

// NewSet creates a new empty set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{items: orderedmap.New[T, struct{}]()}
}

// SetFrom creates a set from a slice.
func SetFrom[T comparable](items []T) *Set[T] {
	s := NewSet[T]()
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add adds an item to the set. Re-adding keeps the original position.
func (s *Set[T]) Add(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items.Get(item); ok {
		return
	}
	s.items.Set(item, struct{}{})
}

// Contains checks if item is in the set.
func (s *Set[T]) Contains(item T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items.Get(item)
	return ok
}

// Size returns the number of items.
func (s *Set[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Len()
}

// ToSlice returns items in insertion order.
func (s *Set[T]) ToSlice() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, 0, s.items.Len())
	for pair := s.items.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Key)
	}
	return result
}

// All returns an iterator over the items in insertion order.
func (s *Set[T]) All() iter.Seq[T] {
	items := s.ToSlice()
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// Clone returns an independent copy with the same order.
func (s *Set[T]) Clone() *Set[T] {
	return SetFrom(s.ToSlice())
}

// Equals checks if two sets hold the same items, ignoring order.
func (s *Set[T]) Equals(other *Set[T]) bool {
	if s.Size() != other.Size() {
		return false
	}
	for item := range s.All() {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a list in insertion order.
func (s *Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToSlice())
}
