package render

import (
	"math"

	"github.com/lixenwraith/invader/core"
)

// CameraResource is the view onto world space
// Pos is the world point shown at the screen centre
type CameraResource struct {
	Pos    core.Vec2
	Zoom   float64
	Screen core.Size
}

// NewCameraResource returns a camera at the origin with zoom 1
func NewCameraResource(screen core.Size) *CameraResource {
	if screen.W <= 0 || screen.H <= 0 {
		screen = core.Size{W: 800, H: 600}
	}
	return &CameraResource{Zoom: 1, Screen: screen}
}

// Project maps a world-space centre and extent to a screen rectangle
// Screen y grows downward so world y is flipped around the camera
func (c *CameraResource) Project(pos, dim core.Vec2) core.Rect {
	w := dim.X * c.Zoom
	h := dim.Y * c.Zoom
	cx := float64(c.Screen.W)/2 + (pos.X-c.Pos.X)*c.Zoom
	cy := float64(c.Screen.H)/2 - (pos.Y-c.Pos.Y)*c.Zoom
	return core.Rect{
		X: int(math.Round(cx - w/2)),
		Y: int(math.Round(cy - h/2)),
		W: int(math.Round(w)),
		H: int(math.Round(h)),
	}
}

// Bounds is the full screen rectangle
func (c *CameraResource) Bounds() core.Rect {
	return core.Rect{W: c.Screen.W, H: c.Screen.H}
}
