package core

import "fmt"

// Entity encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. The generation increments when the slot is freed so stale
// handles can be detected after destruction.
type Entity uint64

// NewEntity packs an index and generation into an Entity
func NewEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

func (e Entity) Index() uint32      { return uint32(e) }
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index(), e.Generation())
}
