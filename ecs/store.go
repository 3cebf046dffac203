package ecs

import (
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
)

const initialStoreCapacity = 64

// Store holds every component of type T, packed into a dense slice with an
// identity-to-index map on the side. Identities are partitioned into a
// "pending" set (attached since the last promotion, visible only to
// initialization queries) and an "active" set (promoted, visible to
// steady-state queries).
type Store[T any] struct {
	items   []T
	indexes *intmap.Map[EntityID, int]
	active  *intmap.Set[EntityID]
	pending *intmap.Set[EntityID]
}

// NewStore creates an empty component store for type T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		items:   make([]T, 0, initialStoreCapacity),
		indexes: intmap.New[EntityID, int](initialStoreCapacity),
		active:  intmap.NewSet[EntityID](initialStoreCapacity),
		pending: intmap.NewSet[EntityID](initialStoreCapacity),
	}
}

// Add attaches value to id. The new component lands in the pending set and
// stays invisible to Active until the next Promote. Returns
// ErrDuplicateComponent if id already has a T.
func (s *Store[T]) Add(id EntityID, value T) error {
	if _, dup := s.indexes.Get(id); dup {
		return fmt.Errorf("ecs: add component to entity %d: %w", id, ErrDuplicateComponent)
	}
	s.items = append(s.items, value)
	s.indexes.Put(id, len(s.items)-1)
	s.pending.Add(id)
	return nil
}

// Get returns a pointer to id's component. The pointer is valid until the
// next structural change (Add or Remove) on this store.
func (s *Store[T]) Get(id EntityID) (*T, error) {
	idx, ok := s.indexes.Get(id)
	if !ok {
		return nil, fmt.Errorf("ecs: get component for entity %d: %w", id, ErrNotFound)
	}
	return &s.items[idx], nil
}

// Has reports whether id currently holds a T.
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.indexes.Get(id)
	return ok
}

// Remove drops id's component, closing the gap in the dense slice by shifting
// every later element down one position. Survivors keep their relative
// insertion order; every shifted identity has its stored index decremented.
// The identity is scrubbed from both the active and pending sets. Returns
// ErrNotFound if id has no T.
func (s *Store[T]) Remove(id EntityID) error {
	idx, ok := s.indexes.Get(id)
	if !ok {
		return fmt.Errorf("ecs: remove component for entity %d: %w", id, ErrNotFound)
	}

	s.items = slices.Delete(s.items, idx, idx+1)
	s.indexes.Del(id)

	// Renumber outside ForEach: mutating the map mid-iteration is not safe.
	var shifted []EntityID
	s.indexes.ForEach(func(other EntityID, i int) bool {
		if i > idx {
			shifted = append(shifted, other)
		}
		return true
	})
	for _, other := range shifted {
		i, _ := s.indexes.Get(other)
		s.indexes.Put(other, i-1)
	}

	s.active.Del(id)
	s.pending.Del(id)
	return nil
}

// Promote moves every pending identity into the active set. Idempotent when
// nothing is pending.
func (s *Store[T]) Promote() {
	s.pending.ForEach(func(id EntityID) bool {
		s.active.Add(id)
		return true
	})
	s.pending.Clear()
}

// Active returns the identities whose component has been promoted. The result
// is a sorted snapshot: the caller may freely mutate the store while ranging
// over it, and should treat identities that no longer resolve as skips.
func (s *Store[T]) Active() []EntityID {
	return snapshotSet(s.active)
}

// Pending returns the identities attached since the last Promote, as a sorted
// snapshot with the same staleness contract as Active.
func (s *Store[T]) Pending() []EntityID {
	return snapshotSet(s.pending)
}

// Len returns the number of components currently stored.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// removeEntity implements storeEntry for the registry fan-out, where absence
// is a no-op rather than a failure.
func (s *Store[T]) removeEntity(id EntityID) bool {
	return s.Remove(id) == nil
}

func snapshotSet(set *intmap.Set[EntityID]) []EntityID {
	out := make([]EntityID, 0, set.Len())
	set.ForEach(func(id EntityID) bool {
		out = append(out, id)
		return true
	})
	slices.Sort(out)
	return out
}
