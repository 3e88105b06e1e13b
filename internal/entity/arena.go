package entity

// Spawner allows systems to queue new entities during a tick.
type Spawner interface {
	Spawn(e Entity) ID
}

// Arena stores all live entities in ID order. Spawns and despawns requested
// during a tick are deferred until Flush, so a system iterating the arena
// never sees the set change under it.
type Arena struct {
	live    []*Entity
	byID    map[ID]*Entity
	nextID  ID
	toSpawn []*Entity

	// Entities marked for removal (deferred compaction)
	toRemove map[ID]struct{}
}

// Compile-time check that Arena implements Spawner.
var _ Spawner = (*Arena)(nil)

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		byID:     make(map[ID]*Entity),
		nextID:   1,
		toRemove: make(map[ID]struct{}),
	}
}

// Spawn queues an entity to be added on the next Flush and returns the ID it
// will have. Any ID already set on e is overwritten.
func (a *Arena) Spawn(e Entity) ID {
	e.ID = a.nextID
	a.nextID++
	if e.Scale == (Scale{}) {
		e.Scale = UnitScale
	}
	a.toSpawn = append(a.toSpawn, &e)
	return e.ID
}

// Despawn marks a live entity for removal on the next Flush.
// Returns false if the entity does not exist or is already marked.
func (a *Arena) Despawn(id ID) bool {
	if _, ok := a.byID[id]; !ok {
		return false
	}
	if _, marked := a.toRemove[id]; marked {
		return false
	}
	a.toRemove[id] = struct{}{}
	return true
}

// IsDestroyed reports whether the entity is marked for removal or gone.
func (a *Arena) IsDestroyed(id ID) bool {
	if _, marked := a.toRemove[id]; marked {
		return true
	}
	_, ok := a.byID[id]
	return !ok
}

// Get returns a live entity by ID, including ones marked for removal.
func (a *Arena) Get(id ID) (*Entity, bool) {
	e, ok := a.byID[id]
	return e, ok
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return len(a.live)
}

// Collect appends every live, unmarked entity with the given role to dst[:0]
// and returns it. The result is a snapshot; later spawns and despawns do not
// change it.
func (a *Arena) Collect(dst []*Entity, role Role) []*Entity {
	dst = dst[:0]
	for _, e := range a.live {
		if e.Role != role {
			continue
		}
		if _, marked := a.toRemove[e.ID]; marked {
			continue
		}
		dst = append(dst, e)
	}
	return dst
}

// Each calls fn for every live, unmarked entity in ID order.
func (a *Arena) Each(fn func(e *Entity)) {
	for _, e := range a.live {
		if _, marked := a.toRemove[e.ID]; marked {
			continue
		}
		fn(e)
	}
}

// Count returns the number of live, unmarked entities with the given role.
func (a *Arena) Count(role Role) int {
	n := 0
	a.Each(func(e *Entity) {
		if e.Role == role {
			n++
		}
	})
	return n
}

// Flush removes marked entities and adds queued ones.
// Returns the entities that were removed.
func (a *Arena) Flush() (removed []*Entity) {
	if len(a.toRemove) > 0 {
		kept := a.live[:0]
		for _, e := range a.live {
			if _, remove := a.toRemove[e.ID]; remove {
				delete(a.byID, e.ID)
				removed = append(removed, e)
			} else {
				kept = append(kept, e)
			}
		}
		clear(a.live[len(kept):])
		a.live = kept
		clear(a.toRemove)
	}

	for _, e := range a.toSpawn {
		a.live = append(a.live, e)
		a.byID[e.ID] = e
	}
	clear(a.toSpawn)
	a.toSpawn = a.toSpawn[:0]

	return removed
}

// Reset drops every entity, live or pending. IDs keep increasing.
func (a *Arena) Reset() {
	clear(a.live)
	a.live = a.live[:0]
	clear(a.byID)
	clear(a.toSpawn)
	a.toSpawn = a.toSpawn[:0]
	clear(a.toRemove)
}
