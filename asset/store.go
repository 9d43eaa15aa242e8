package asset

import "sync"

// Store owns values of type T and hands out handles to them. Names are
// optional and let manifests refer to assets symbolically.
type Store[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	values map[uint64]*T
	names  map[string]uint64
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		values: make(map[uint64]*T),
		names:  make(map[string]uint64),
	}
}

// Add stores v and returns its handle. A non-empty name that is already taken
// is rebound to the new value.
func (s *Store[T]) Add(name string, v *T) Handle[T] {
	if s == nil || v == nil {
		return Handle[T]{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[uint64]*T)
		s.names = make(map[string]uint64)
	}
	if id, ok := s.names[name]; ok && name != "" {
		s.values[id] = v
		return Handle[T]{id: id}
	}
	s.nextID++
	id := s.nextID
	s.values[id] = v
	if name != "" {
		s.names[name] = id
	}
	return Handle[T]{id: id}
}

// Get returns the value behind h.
func (s *Store[T]) Get(h Handle[T]) (*T, bool) {
	if s == nil || !h.Valid() {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[h.id]
	return v, ok
}

// Lookup returns the handle registered under name.
func (s *Store[T]) Lookup(name string) (Handle[T], bool) {
	if s == nil || name == "" {
		return Handle[T]{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.names[name]
	return Handle[T]{id: id}, ok
}

// Len reports the number of stored values.
func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
