package physics

import (
	"github.com/lixenwraith/invader/component"
	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
)

// System steps the physics world and copies body placement into transforms
type System struct{}

func NewSystem() *System { return &System{} }

func (s *System) Name() string { return "physics" }

func (s *System) Access() engine.Access {
	return engine.Access{
		Reads: []engine.Key{
			engine.ResourceKey[*engine.TimeResource](),
			engine.TableKey[BodyComponent](),
		},
		Writes: []engine.Key{
			engine.ResourceKey[*World](),
			engine.TableKey[component.TransformComponent](),
		},
	}
}

func (s *System) Run(v *engine.View) error {
	dt := engine.Read[*engine.TimeResource](v).Seconds()
	if dt == 0 {
		return nil
	}
	pw := engine.Write[*World](v)
	pw.Step(dt)

	engine.Each2(engine.ReadTable[BodyComponent](v), engine.WriteTable[component.TransformComponent](v),
		func(_ core.Entity, bc *BodyComponent, tr *component.TransformComponent) {
			if b, ok := pw.ReadRigidBody(bc.Handle); ok {
				tr.Pos = b.Pos
				tr.Rotation = b.Rotation
			}
		})
	return nil
}
