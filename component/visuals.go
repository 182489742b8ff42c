package component

import "github.com/lixenwraith/invader/core"

// SpriteComponent draws a sprite key at the entity transform
type SpriteComponent struct {
	Key string    `yaml:"key"`
	Dim core.Vec2 `yaml:"dim"` // World units, scaled by camera zoom
}

// TextComponent draws a text run at the entity transform
type TextComponent struct {
	Text string    `yaml:"text"`
	Font string    `yaml:"font"`
	Dim  core.Vec2 `yaml:"dim"`
}
