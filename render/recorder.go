package render

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/lixenwraith/invader/core"
)

// OpKind is the kind of a recorded draw call
type OpKind uint8

const (
	OpSprite OpKind = iota
	OpText
)

// Op is one recorded draw call
type Op struct {
	Kind     OpKind
	Key      string // Sprite key or font key
	Text     string
	Rect     core.Rect
	Overflow bool
}

func (o Op) String() string {
	if o.Kind == OpText {
		return fmt.Sprintf("text %q font=%s %v", o.Text, o.Key, o.Rect)
	}
	return fmt.Sprintf("sprite %s %v", o.Key, o.Rect)
}

// Recorder is a headless backend that keeps the draw calls of the last presented frame
// Text overflows when its rune count times GlyphWidth exceeds the rectangle width
type Recorder struct {
	mu         sync.Mutex
	GlyphWidth int
	current    []Op
	last       []Op
	frames     int
	inFrame    bool
	sprites    map[string]SpriteStyle
}

// NewRecorder creates a recorder with one unit per glyph
func NewRecorder() *Recorder {
	return &Recorder{GlyphWidth: 1, sprites: make(map[string]SpriteStyle)}
}

func (r *Recorder) RegisterSprite(key string, style SpriteStyle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites[key] = style
}

// Sprite returns the style registered for key
func (r *Recorder) Sprite(key string) (SpriteStyle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sprites[key]
	return s, ok
}

func (r *Recorder) BeginFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = r.current[:0]
	r.inFrame = true
}

func (r *Recorder) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = append(r.last[:0], r.current...)
	r.frames++
	r.inFrame = false
}

func (r *Recorder) DrawSprite(key string, rect core.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = append(r.current, Op{Kind: OpSprite, Key: key, Rect: rect})
}

func (r *Recorder) DrawText(text, font string, rect core.Rect) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	overflow := utf8.RuneCountInString(text)*r.GlyphWidth > rect.W
	r.current = append(r.current, Op{Kind: OpText, Key: font, Text: text, Rect: rect, Overflow: overflow})
	return overflow
}

// Ops returns the calls issued since the last BeginFrame
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.current))
	copy(out, r.current)
	return out
}

// LastFrame returns the calls of the most recently presented frame
func (r *Recorder) LastFrame() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.last))
	copy(out, r.last)
	return out
}

// Frames returns the number of presented frames
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// InFrame reports whether a frame bracket is open
func (r *Recorder) InFrame() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFrame
}
