package engine

import (
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/invader/status"
)

type node struct {
	system System
	deps   []string
	stage  int
	view   *View
}

// Builder collects systems and their dependencies before validation
type Builder struct {
	world  *World
	nodes  []*node
	pinned []*node
}

// NewBuilder starts a schedule over w
func NewBuilder(w *World) *Builder {
	return &Builder{world: w}
}

// Add registers a system that may run in parallel after the named dependencies
func (b *Builder) Add(s System, deps ...string) *Builder {
	b.nodes = append(b.nodes, &node{system: s, deps: deps})
	return b
}

// AddPinned registers a system that runs on the calling goroutine after all parallel stages
// Pinned systems run in registration order
func (b *Builder) AddPinned(s System) *Builder {
	b.pinned = append(b.pinned, &node{system: s})
	return b
}

// Build validates the graph and assigns stages
// A system's stage is one past the deepest of its dependencies
func (b *Builder) Build() (*Dispatcher, error) {
	byName := make(map[string]*node, len(b.nodes))
	for _, n := range append(append([]*node{}, b.nodes...), b.pinned...) {
		name := n.system.Name()
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSystem, name)
		}
		byName[name] = n
	}
	for _, n := range b.pinned {
		delete(byName, n.system.Name())
	}
	for _, n := range b.nodes {
		for _, dep := range n.deps {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, n.system.Name(), dep)
			}
		}
	}

	// Kahn-style relaxation: resolve nodes whose deps are all staged
	resolved := make(map[string]bool, len(b.nodes))
	remaining := len(b.nodes)
	for remaining > 0 {
		progress := false
		for _, n := range b.nodes {
			name := n.system.Name()
			if resolved[name] {
				continue
			}
			stage, ready := 0, true
			for _, dep := range n.deps {
				if !resolved[dep] {
					ready = false
					break
				}
				stage = max(stage, byName[dep].stage+1)
			}
			if !ready {
				continue
			}
			n.stage = stage
			resolved[name] = true
			remaining--
			progress = true
		}
		if !progress {
			return nil, fmt.Errorf("%w among %d systems", ErrDependencyCycle, remaining)
		}
	}

	var stages [][]*node
	for _, n := range b.nodes {
		for len(stages) <= n.stage {
			stages = append(stages, nil)
		}
		stages[n.stage] = append(stages[n.stage], n)
	}
	for i, stage := range stages {
		for a := 0; a < len(stage); a++ {
			for c := a + 1; c < len(stage); c++ {
				if k, ok := stage[a].system.Access().Conflict(stage[c].system.Access()); ok {
					return nil, fmt.Errorf("%w in stage %d: %s and %s on %s",
						ErrAccessConflict, i, stage[a].system.Name(), stage[c].system.Name(), k)
				}
			}
		}
	}

	for _, n := range b.nodes {
		n.view = newView(b.world, n.system.Name(), n.system.Access())
	}
	for _, n := range b.pinned {
		n.view = newView(b.world, n.system.Name(), n.system.Access())
	}

	return &Dispatcher{world: b.world, stages: stages, pinned: b.pinned}, nil
}

// Dispatcher runs one frame of the schedule
type Dispatcher struct {
	world   *World
	stages  [][]*node
	pinned  []*node
	metrics *status.Registry
}

// SetMetrics enables per-system timing under system.<name>.us
func (d *Dispatcher) SetMetrics(r *status.Registry) {
	d.metrics = r
}

// Stages returns system names grouped by stage, parallel stages first
func (d *Dispatcher) Stages() [][]string {
	out := make([][]string, 0, len(d.stages))
	for _, stage := range d.stages {
		names := make([]string, len(stage))
		for i, n := range stage {
			names[i] = n.system.Name()
		}
		out = append(out, names)
	}
	return out
}

// Pinned returns pinned system names in run order
func (d *Dispatcher) Pinned() []string {
	names := make([]string, len(d.pinned))
	for i, n := range d.pinned {
		names[i] = n.system.Name()
	}
	return names
}

// Dispatch runs every stage then the pinned systems
// The first failing system aborts the frame; panics surface as *SystemPanic
func (d *Dispatcher) Dispatch() error {
	for _, stage := range d.stages {
		if len(stage) == 1 {
			if err := d.run(stage[0]); err != nil {
				return err
			}
			continue
		}
		var g errgroup.Group
		for _, n := range stage {
			g.Go(func() error { return d.run(n) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	for _, n := range d.pinned {
		if err := d.run(n); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) run(n *node) (err error) {
	name := n.system.Name()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &SystemPanic{System: name, Value: r, Stack: debug.Stack()}
		}
		if d.metrics != nil {
			d.metrics.Duration("system."+name+".us", time.Since(start))
		}
	}()
	if err := n.system.Run(n.view); err != nil {
		return fmt.Errorf("system %s: %w", name, err)
	}
	return nil
}
