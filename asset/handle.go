// Package asset provides opaque, cheaply copied handles to values owned by a
// Store. Holders of a Handle never see the value unless they ask the store.
package asset

import "fmt"

// Handle references a value of type T held by a Store. The zero Handle is
// "absent".
type Handle[T any] struct {
	id uint64
}

// HandleOf builds a handle from a raw id. Id 0 yields the absent handle.
func HandleOf[T any](id uint64) Handle[T] {
	return Handle[T]{id: id}
}

// ID returns the raw id.
func (h Handle[T]) ID() uint64 {
	return h.id
}

// Valid reports whether the handle refers to anything.
func (h Handle[T]) Valid() bool {
	return h.id != 0
}

func (h Handle[T]) String() string {
	if !h.Valid() {
		return "none"
	}
	return fmt.Sprintf("#%d", h.id)
}
