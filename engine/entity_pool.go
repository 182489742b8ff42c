package engine

import "github.com/lixenwraith/invader/core"

// entityPool manages entity allocation with generational indices and a free list
// A slot is reserved when an entity is requested and only becomes alive at commit
type entityPool struct {
	generations []uint32
	alive       []bool
	freeList    []uint32
}

func (p *entityPool) reserve() core.Entity {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return core.NewEntity(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 0)
	p.alive = append(p.alive, false)
	return core.NewEntity(idx, 0)
}

// current reports whether e refers to the live generation of its slot
func (p *entityPool) current(e core.Entity) bool {
	idx := e.Index()
	return int(idx) < len(p.generations) && p.generations[idx] == e.Generation()
}

func (p *entityPool) isAlive(e core.Entity) bool {
	return p.current(e) && p.alive[e.Index()]
}

func (p *entityPool) activate(e core.Entity) bool {
	if !p.current(e) {
		return false
	}
	p.alive[e.Index()] = true
	return true
}

// release bumps the slot generation so outstanding handles become stale
func (p *entityPool) release(e core.Entity) bool {
	if !p.current(e) {
		return false // already destroyed (stale reference)
	}
	idx := e.Index()
	p.alive[idx] = false
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	return true
}

func (p *entityPool) count() int {
	n := 0
	for _, a := range p.alive {
		if a {
			n++
		}
	}
	return n
}
