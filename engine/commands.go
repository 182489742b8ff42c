package engine

import "github.com/lixenwraith/invader/core"

type commandKind uint8

const (
	cmdCreate commandKind = iota
	cmdAttach
	cmdDestroy
)

type command struct {
	kind   commandKind
	entity core.Entity
	apply  func() // cmdAttach only
}

// commandBuffer records structural changes issued during a dispatch
// Creates and their attaches land at commit, followed by destroys
type commandBuffer struct {
	ops     []command
	pending map[core.Entity]struct{}
}

func newCommandBuffer() commandBuffer {
	return commandBuffer{pending: make(map[core.Entity]struct{})}
}

func (b *commandBuffer) create(e core.Entity) {
	b.ops = append(b.ops, command{kind: cmdCreate, entity: e})
	b.pending[e] = struct{}{}
}

func (b *commandBuffer) attach(e core.Entity, apply func()) {
	b.ops = append(b.ops, command{kind: cmdAttach, entity: e, apply: apply})
}

func (b *commandBuffer) destroy(e core.Entity) {
	b.ops = append(b.ops, command{kind: cmdDestroy, entity: e})
}

func (b *commandBuffer) isPending(e core.Entity) bool {
	_, ok := b.pending[e]
	return ok
}

func (b *commandBuffer) reset() {
	b.ops = b.ops[:0]
	clear(b.pending)
}
