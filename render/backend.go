// Package render holds the render backend contract, the camera resource and the
// pinned systems that bracket a frame and draw world-space sprites and text.
package render

import "github.com/lixenwraith/invader/core"

// Backend is the drawing surface shared by the scene and UI passes
// All rectangles are screen-space; calls are only valid between BeginFrame and EndFrame
type Backend interface {
	BeginFrame()
	EndFrame()
	DrawSprite(key string, rect core.Rect)
	// DrawText reports whether the text did not fit the rectangle width
	DrawText(text, font string, rect core.Rect) bool
}

// SpriteStyle is a backend-neutral sprite appearance
// Colours are names or #rrggbb; a zero glyph leaves the backend default
type SpriteStyle struct {
	Glyph rune
	FG    string
	BG    string
}

// SpriteSheet is implemented by backends that take sprite registrations
type SpriteSheet interface {
	RegisterSprite(key string, style SpriteStyle)
}
