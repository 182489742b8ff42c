package ui

import (
	"slices"

	"go.uber.org/zap"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/input"
	"github.com/lixenwraith/invader/render"
)

// System runs the layout pass once per frame inside the render bracket
// It clears the UI event queue at the start of its run; consumers read the
// previous frame's events before it runs
type System struct {
	backend render.Backend
	log     *zap.Logger
	items   []Item
	last    []Placement
}

// NewSystem creates the UI system drawing through backend
func NewSystem(backend render.Backend, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{backend: backend, log: log.Named("ui")}
}

func (s *System) Name() string { return "ui" }

func (s *System) Access() engine.Access {
	return engine.Access{
		Reads: []engine.Key{
			engine.ResourceKey[*event.Queue[input.Event]](),
			engine.ResourceKey[*input.KeysResource](),
			engine.ResourceKey[*render.CameraResource](),
		},
		Writes: []engine.Key{
			engine.ResourceKey[*event.Queue[Event]](),
			engine.TableKey[ElementComponent](),
		},
	}
}

func (s *System) Run(v *engine.View) error {
	out := engine.Write[*event.Queue[Event]](v)
	out.Clear()

	elements := engine.WriteTable[ElementComponent](v)
	s.items = s.items[:0]
	elements.Each(func(e core.Entity, el *ElementComponent) {
		s.items = append(s.items, Item{Entity: e, Element: el})
	})
	slices.SortStableFunc(s.items, func(a, b Item) int {
		if a.Element.Order != b.Element.Order {
			return a.Element.Order - b.Element.Order
		}
		return int(a.Entity.Index()) - int(b.Entity.Index())
	})

	frame := Frame{
		Screen: engine.Read[*render.CameraResource](v).Screen,
		Input:  engine.Read[*event.Queue[input.Event]](v).Events(),
		Shift:  engine.Read[*input.KeysResource](v).Pressed(input.KeyShift),
	}
	placements, err := Layout(s.items, frame, s.backend, out)
	s.last = placements
	if err != nil {
		s.log.Error("malformed ui document", zap.Error(err))
		return err
	}
	if n := out.Len(); n > 0 {
		s.log.Debug("ui events", zap.Int("count", n))
	}
	return nil
}

// Placements returns the rectangles resolved by the most recent run
func (s *System) Placements() []Placement {
	return slices.Clone(s.last)
}
