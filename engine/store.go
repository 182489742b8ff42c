package engine

import "github.com/lixenwraith/invader/core"

// AnyStore provides type-erased operations for lifecycle management
// World uses it to strip a destroyed entity from every table without knowing component types
type AnyStore interface {
	Remove(e core.Entity) bool
	Has(e core.Entity) bool
	Len() int
	Clear()
}

// Store is a component table for type T keyed by entity
// Iteration follows insertion order so subsystems walking a table see a stable sequence
type Store[T any] struct {
	components map[core.Entity]*T
	entities   []core.Entity
}

// NewStore creates an empty component table
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]*T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// Set inserts or replaces the component of e
func (s *Store[T]) Set(e core.Entity, val T) *T {
	if ptr, exists := s.components[e]; exists {
		*ptr = val
		return ptr
	}
	ptr := &val
	s.components[e] = ptr
	s.entities = append(s.entities, e)
	return ptr
}

// Get returns a pointer to the component of e; mutation goes straight into the table
func (s *Store[T]) Get(e core.Entity) (*T, bool) {
	ptr, ok := s.components[e]
	return ptr, ok
}

// Has reports whether e carries this component
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component of e, preserving the order of the others
func (s *Store[T]) Remove(e core.Entity) bool {
	if _, exists := s.components[e]; !exists {
		return false
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entities with this component
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Entities returns a copy of the entity list in insertion order
func (s *Store[T]) Entities() []core.Entity {
	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Each visits every component in insertion order
func (s *Store[T]) Each(fn func(core.Entity, *T)) {
	for _, e := range s.entities {
		fn(e, s.components[e])
	}
}

// Clear removes all components from this table
func (s *Store[T]) Clear() {
	s.components = make(map[core.Entity]*T)
	s.entities = s.entities[:0]
}

// Each2 visits entities carrying both A and B, in A's insertion order
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(core.Entity, *A, *B)) {
	for _, e := range sa.entities {
		if b, ok := sb.components[e]; ok {
			fn(e, sa.components[e], b)
		}
	}
}
