package ecs

import "reflect"

// TypeID is the process-unique key for a component type. IDs are assigned
// sequentially the first time a type is seen, so two distinct types can never
// collide the way type-name strings can.
type TypeID uint32

// storeEntry is the type-erased face a Store presents to the registry, just
// enough for destruction fan-out.
type storeEntry interface {
	removeEntity(EntityID) bool
}

// Registry lazily creates and owns one Store per distinct component type.
type Registry struct {
	typeIDs map[reflect.Type]TypeID
	stores  map[TypeID]storeEntry
	nextID  TypeID
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		typeIDs: make(map[reflect.Type]TypeID),
		stores:  make(map[TypeID]storeEntry),
	}
}

// StoreFor returns the store for component type T, creating it on first
// reference. It is a package-level function because Go methods cannot
// introduce type parameters.
func StoreFor[T any](r *Registry) *Store[T] {
	id := r.typeKey(reflect.TypeFor[T]())
	if entry, ok := r.stores[id]; ok {
		return entry.(*Store[T])
	}
	store := NewStore[T]()
	r.stores[id] = store
	return store
}

// RemoveEntity drops id's component from every store the registry has ever
// created. Stores that never held a component for id are silently skipped.
// Returns the number of components actually removed.
func (r *Registry) RemoveEntity(id EntityID) int {
	removed := 0
	for _, store := range r.stores {
		if store.removeEntity(id) {
			removed++
		}
	}
	return removed
}

// TypeCount returns the number of distinct component types seen so far.
func (r *Registry) TypeCount() int {
	return len(r.typeIDs)
}

func (r *Registry) typeKey(t reflect.Type) TypeID {
	if id, ok := r.typeIDs[t]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.typeIDs[t] = id
	return id
}
