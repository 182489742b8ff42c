package engine

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/lixenwraith/invader/core"
)

// World owns entities, component tables and resources
// Structural changes (create, destroy, attach to a new entity) are deferred until Commit
type World struct {
	Resources *ResourceStore

	mu       sync.Mutex // guards pool and commands; systems in one stage may spawn concurrently
	pool     entityPool
	commands commandBuffer

	tablesMu   sync.RWMutex
	tables     map[reflect.Type]AnyStore
	tableOrder []AnyStore
}

// CommitStats summarises one Commit
type CommitStats struct {
	Created   int
	Destroyed int
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		Resources: NewResourceStore(),
		commands:  newCommandBuffer(),
		tables:    make(map[reflect.Type]AnyStore),
	}
}

// RegisterTable returns the table for T, creating it on first call
// Tables are registered during setup, before the first dispatch
func RegisterTable[T any](w *World) *Store[T] {
	t := typeOf[T]()
	w.tablesMu.RLock()
	s, ok := w.tables[t]
	w.tablesMu.RUnlock()
	if ok {
		return s.(*Store[T])
	}

	w.tablesMu.Lock()
	defer w.tablesMu.Unlock()
	if s, ok := w.tables[t]; ok {
		return s.(*Store[T])
	}
	store := NewStore[T]()
	w.tables[t] = store
	w.tableOrder = append(w.tableOrder, store)
	return store
}

// TableOf returns the registered table for T
func TableOf[T any](w *World) (*Store[T], error) {
	w.tablesMu.RLock()
	s, ok := w.tables[typeOf[T]()]
	w.tablesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredTable, typeOf[T]())
	}
	return s.(*Store[T]), nil
}

// CreateEntity reserves an id; the entity becomes alive at the next Commit
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	e := w.pool.reserve()
	w.commands.create(e)
	return e
}

// DestroyEntity queues e for removal at the next Commit
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.commands.destroy(e)
}

// Alive reports whether e has been committed and not destroyed
func (w *World) Alive(e core.Entity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pool.isAlive(e)
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pool.count()
}

// Attach sets component c on e
// Live entities are written immediately; entities created this frame receive it at Commit
func Attach[T any](w *World, e core.Entity, c T) error {
	store := RegisterTable[T](w)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.pool.isAlive(e):
		store.Set(e, c)
	case w.commands.isPending(e):
		w.commands.attach(e, func() { store.Set(e, c) })
	default:
		return fmt.Errorf("%w: attach %s to %v", ErrStaleEntity, typeOf[T](), e)
	}
	return nil
}

// Detach removes component T from e immediately
func Detach[T any](w *World, e core.Entity) bool {
	s, err := TableOf[T](w)
	if err != nil {
		return false
	}
	return s.Remove(e)
}

// Commit applies queued creates, attaches and destroys in issue order
// Called by the loop between dispatches, never while systems run
func (w *World) Commit() CommitStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tablesMu.RLock()
	defer w.tablesMu.RUnlock()

	var stats CommitStats
	for _, op := range w.commands.ops {
		switch op.kind {
		case cmdCreate:
			if w.pool.activate(op.entity) {
				stats.Created++
			}
		case cmdAttach:
			if w.pool.isAlive(op.entity) {
				op.apply()
			}
		case cmdDestroy:
			if !w.pool.isAlive(op.entity) {
				continue
			}
			for _, t := range w.tableOrder {
				t.Remove(op.entity)
			}
			w.pool.release(op.entity)
			stats.Destroyed++
		}
	}
	w.commands.reset()
	return stats
}
