package render

import (
	"github.com/lixenwraith/invader/component"
	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
)

// BeginSystem opens the frame bracket on the backend
type BeginSystem struct {
	backend Backend
}

func NewBeginSystem(b Backend) *BeginSystem { return &BeginSystem{backend: b} }

func (s *BeginSystem) Name() string          { return "render.begin" }
func (s *BeginSystem) Access() engine.Access { return engine.Access{} }

func (s *BeginSystem) Run(*engine.View) error {
	s.backend.BeginFrame()
	return nil
}

// PresentSystem closes the frame bracket and shows the frame
type PresentSystem struct {
	backend Backend
}

func NewPresentSystem(b Backend) *PresentSystem { return &PresentSystem{backend: b} }

func (s *PresentSystem) Name() string          { return "render.present" }
func (s *PresentSystem) Access() engine.Access { return engine.Access{} }

func (s *PresentSystem) Run(*engine.View) error {
	s.backend.EndFrame()
	return nil
}

// SceneSystem draws every entity with a transform and a sprite or text
// Sprites are drawn first, then text, each in table order
type SceneSystem struct {
	backend Backend
}

func NewSceneSystem(b Backend) *SceneSystem { return &SceneSystem{backend: b} }

func (s *SceneSystem) Name() string { return "scene" }

func (s *SceneSystem) Access() engine.Access {
	return engine.Access{Reads: []engine.Key{
		engine.ResourceKey[*CameraResource](),
		engine.TableKey[component.TransformComponent](),
		engine.TableKey[component.SpriteComponent](),
		engine.TableKey[component.TextComponent](),
	}}
}

func (s *SceneSystem) Run(v *engine.View) error {
	cam := engine.Read[*CameraResource](v)
	transforms := engine.ReadTable[component.TransformComponent](v)

	engine.Each2(engine.ReadTable[component.SpriteComponent](v), transforms,
		func(_ core.Entity, sp *component.SpriteComponent, tr *component.TransformComponent) {
			s.backend.DrawSprite(sp.Key, cam.Project(tr.Pos, sp.Dim))
		})

	// World-space text ignores overflow
	engine.Each2(engine.ReadTable[component.TextComponent](v), transforms,
		func(_ core.Entity, tx *component.TextComponent, tr *component.TransformComponent) {
			s.backend.DrawText(tx.Text, tx.Font, cam.Project(tr.Pos, tx.Dim))
		})
	return nil
}
