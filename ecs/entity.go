package ecs

// EntityID is an opaque identity naming a bundle of attached components.
// Identities are unique among live entities; once an entity is destroyed its
// identity goes back into the allocator pool and may later name a different
// entity. There is no generation tag, so an EntityID held across a
// destroy/create cycle silently aliases the new occupant.
type EntityID uint32

// idAllocator issues and recycles entity identities. Fresh identities count up
// from zero; recycled ones are handed back out most-recently-freed first.
type idAllocator struct {
	next EntityID
	free []EntityID
}

func (a *idAllocator) alloc() EntityID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		return id
	}
	id := a.next
	a.next++
	return id
}

// recycle returns id to the pool. The caller must guarantee id is not live.
func (a *idAllocator) recycle(id EntityID) {
	a.free = append(a.free, id)
}
