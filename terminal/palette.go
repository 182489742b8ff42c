// Package terminal draws and polls through a tcell screen.
//
// One cell is one layout pixel. Sprites fill their rectangle with a glyph;
// text writes into the first row of its rectangle.
package terminal

import (
	"github.com/cespare/xxhash/v2"
	"github.com/gdamore/tcell/v2"
)

// defaultGlyph fills sprites without a configured glyph
const defaultGlyph = '█'

// SpriteStyle is how one sprite key appears on screen
type SpriteStyle struct {
	Glyph rune
	Style tcell.Style
}

// Palette maps sprite and font keys to terminal styles
// Unknown sprite keys get a stable colour derived from the key hash
type Palette struct {
	sprites map[string]SpriteStyle
	fonts   map[string]tcell.Style
}

func NewPalette() *Palette {
	return &Palette{
		sprites: make(map[string]SpriteStyle),
		fonts:   make(map[string]tcell.Style),
	}
}

// SetSprite registers a sprite appearance; colours accept names or #rrggbb
func (p *Palette) SetSprite(key string, glyph rune, fg, bg string) {
	if glyph == 0 {
		glyph = defaultGlyph
	}
	p.sprites[key] = SpriteStyle{Glyph: glyph, Style: style(fg, bg)}
}

// SetFont registers a font appearance
func (p *Palette) SetFont(key, fg, bg string, bold bool) {
	p.fonts[key] = style(fg, bg).Bold(bold)
}

// Sprite returns the appearance for key
func (p *Palette) Sprite(key string) SpriteStyle {
	if s, ok := p.sprites[key]; ok {
		return s
	}
	return SpriteStyle{Glyph: defaultGlyph, Style: tcell.StyleDefault.Foreground(hashColor(key))}
}

// Font returns the style for key, or the default style
func (p *Palette) Font(key string) tcell.Style {
	if s, ok := p.fonts[key]; ok {
		return s
	}
	return tcell.StyleDefault
}

func style(fg, bg string) tcell.Style {
	s := tcell.StyleDefault
	if fg != "" {
		s = s.Foreground(tcell.GetColor(fg))
	}
	if bg != "" {
		s = s.Background(tcell.GetColor(bg))
	}
	return s
}

// hashColor picks from the 6x6x6 xterm cube, skipping the darkest row
func hashColor(key string) tcell.Color {
	h := xxhash.Sum64String(key)
	return tcell.PaletteColor(16 + 36 + int(h%180))
}
