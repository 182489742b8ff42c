package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/invader/core"
)

// SizeKind selects how an axis extent is derived from the container extent
type SizeKind uint8

const (
	SizeFill           SizeKind = iota // Space left after the container cursor
	SizeProportion                     // floor(fraction * container)
	SizePixels                         // Fixed extent
	SizeNegativePixels                 // Container extent minus pixels
)

// Size is a single-axis size constraint
type Size struct {
	Kind     SizeKind
	Fraction float64
	Pixels   int
}

func Fill() Size                { return Size{Kind: SizeFill} }
func Proportion(f float64) Size { return Size{Kind: SizeProportion, Fraction: f} }
func Pixels(n int) Size         { return Size{Kind: SizePixels, Pixels: n} }
func NegativePixels(n int) Size { return Size{Kind: SizeNegativePixels, Pixels: n} }

// Resolve computes the extent in a container of the given extent with remaining
// space left after its cursor; sizes larger than the container are not clamped
func (s Size) Resolve(container, remaining int) (int, error) {
	var n int
	switch s.Kind {
	case SizeFill:
		n = max(remaining, 0)
	case SizeProportion:
		n = int(math.Floor(s.Fraction * float64(container)))
	case SizePixels:
		n = s.Pixels
	case SizeNegativePixels:
		n = container - s.Pixels
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s in container %d resolves to %d", ErrNegativeSize, s, container, n)
	}
	return n, nil
}

func (s Size) String() string {
	switch s.Kind {
	case SizeProportion:
		return strconv.FormatFloat(s.Fraction*100, 'f', -1, 64) + "%"
	case SizePixels:
		return strconv.Itoa(s.Pixels)
	case SizeNegativePixels:
		return "-" + strconv.Itoa(s.Pixels)
	}
	return "fill"
}

// ParseSize reads "fill", "NN%", "N" or "-N"
func ParseSize(text string) (Size, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "" || text == "fill":
		return Fill(), nil
	case strings.HasSuffix(text, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
		if err != nil || pct < 0 {
			return Size{}, fmt.Errorf("invalid proportion %q", text)
		}
		return Proportion(pct / 100), nil
	case strings.HasPrefix(text, "-"):
		n, err := strconv.Atoi(text[1:])
		if err != nil {
			return Size{}, fmt.Errorf("invalid size %q", text)
		}
		return NegativePixels(n), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q", text)
	}
	return Pixels(n), nil
}

func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSize(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

// PositionKind selects where an element sits on an axis of its container
type PositionKind uint8

const (
	PosStart PositionKind = iota
	PosCenter
	PosEnd
	PosOffset
)

// Position is a single-axis position constraint
type Position struct {
	Kind   PositionKind
	Pixels int
}

func Start() Position       { return Position{Kind: PosStart} }
func Center() Position      { return Position{Kind: PosCenter} }
func End() Position         { return Position{Kind: PosEnd} }
func Offset(n int) Position { return Position{Kind: PosOffset, Pixels: n} }

// Resolve computes the local offset of an element of the given resolved size
// Center halves with integer division and can go negative for oversized elements
func (p Position) Resolve(size, container int) int {
	switch p.Kind {
	case PosCenter:
		return container/2 - size/2
	case PosEnd:
		return container - size
	case PosOffset:
		return p.Pixels
	}
	return 0
}

func (p Position) String() string {
	switch p.Kind {
	case PosCenter:
		return "center"
	case PosEnd:
		return "end"
	case PosOffset:
		return strconv.Itoa(p.Pixels)
	}
	return "start"
}

// ParsePosition reads "start", "center", "end" or a pixel offset
func ParsePosition(text string) (Position, error) {
	switch text = strings.TrimSpace(text); text {
	case "", "start":
		return Start(), nil
	case "center":
		return Center(), nil
	case "end":
		return End(), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q", text)
	}
	return Offset(n), nil
}

func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParsePosition(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}

// Constraint pairs independent size and position constraints per axis
type Constraint struct {
	Width  Size     `yaml:"width"`
	Height Size     `yaml:"height"`
	X      Position `yaml:"x"`
	Y      Position `yaml:"y"`
}

// Resolve sizes both axes, then positions them against the resolved size
func (c Constraint) Resolve(container, remaining core.Size) (core.Size, core.Point, error) {
	w, err := c.Width.Resolve(container.W, remaining.W)
	if err != nil {
		return core.Size{}, core.Point{}, fmt.Errorf("width: %w", err)
	}
	h, err := c.Height.Resolve(container.H, remaining.H)
	if err != nil {
		return core.Size{}, core.Point{}, fmt.Errorf("height: %w", err)
	}
	local := core.Point{
		X: c.X.Resolve(w, container.W),
		Y: c.Y.Resolve(h, container.H),
	}
	return core.Size{W: w, H: h}, local, nil
}
