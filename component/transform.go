package component

import "github.com/lixenwraith/invader/core"

// TransformComponent places an entity in world space
// World y points up; the scene projection flips it for screen space
type TransformComponent struct {
	Pos      core.Vec2
	Rotation float64 // Radians
}
