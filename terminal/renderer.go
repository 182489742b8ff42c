package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/render"
)

// Renderer is a render.Backend drawing into a tcell screen
type Renderer struct {
	screen  tcell.Screen
	palette *Palette
}

// NewRenderer draws into screen using palette; a nil palette uses hashed defaults
func NewRenderer(screen tcell.Screen, palette *Palette) *Renderer {
	if palette == nil {
		palette = NewPalette()
	}
	return &Renderer{screen: screen, palette: palette}
}

// RegisterSprite adds a sprite appearance to the palette
func (r *Renderer) RegisterSprite(key string, s render.SpriteStyle) {
	r.palette.SetSprite(key, s.Glyph, s.FG, s.BG)
}

func (r *Renderer) BeginFrame() {
	r.screen.Clear()
}

func (r *Renderer) EndFrame() {
	r.screen.Show()
}

// clip intersects rect with the screen
func (r *Renderer) clip(rect core.Rect) core.Rect {
	w, h := r.screen.Size()
	return rect.Intersect(core.Rect{W: w, H: h})
}

func (r *Renderer) DrawSprite(key string, rect core.Rect) {
	c := r.clip(rect)
	if c.Empty() {
		return
	}
	sp := r.palette.Sprite(key)
	for y := c.Y; y < c.Y+c.H; y++ {
		for x := c.X; x < c.X+c.W; x++ {
			r.screen.SetContent(x, y, sp.Glyph, nil, sp.Style)
		}
	}
}

// DrawText writes text on the first row of rect and reports whether it is wider than rect
func (r *Renderer) DrawText(text, font string, rect core.Rect) bool {
	overflow := runewidth.StringWidth(text) > rect.W

	c := r.clip(rect)
	if c.Empty() || rect.Y != c.Y {
		return overflow
	}
	st := r.palette.Font(font)
	x := rect.X
	end := rect.X + rect.W
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > end {
			break
		}
		if x >= c.X && x+w <= c.X+c.W {
			r.screen.SetContent(x, rect.Y, ch, nil, st)
		}
		x += w
	}
	return overflow
}
