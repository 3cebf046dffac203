package ecs

import "fmt"

// EntityTable owns the set of live entities and the identity allocator.
// Entities carry no data of their own; the table only tracks which identities
// are live so destruction and recycling stay consistent.
type EntityTable struct {
	alloc idAllocator
	live  map[EntityID]struct{}
}

// NewEntityTable creates an empty entity table.
func NewEntityTable() *EntityTable {
	return &EntityTable{
		live: make(map[EntityID]struct{}),
	}
}

// Create allocates an identity and registers it as live.
func (t *EntityTable) Create() EntityID {
	id := t.alloc.alloc()
	t.live[id] = struct{}{}
	return id
}

// Destroy removes id from the table, fans its components out of every store in
// registry, and recycles the identity. Destroying an identity that is not
// live returns ErrInvalidOperation; the table is left unchanged.
func (t *EntityTable) Destroy(id EntityID, registry *Registry) error {
	if _, ok := t.live[id]; !ok {
		return fmt.Errorf("ecs: destroy entity %d: not live: %w", id, ErrInvalidOperation)
	}
	registry.RemoveEntity(id)
	delete(t.live, id)
	t.alloc.recycle(id)
	return nil
}

// Live reports whether id currently names a live entity.
func (t *EntityTable) Live(id EntityID) bool {
	_, ok := t.live[id]
	return ok
}

// Len returns the number of live entities.
func (t *EntityTable) Len() int {
	return len(t.live)
}
