package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/input"
	"github.com/lixenwraith/invader/render"
)

// container is one entry of the layout stack
type container struct {
	origin   core.Point
	extent   core.Size
	cursor   core.Point
	vertical bool
}

// advance moves the cursor past an element along the container axis
func (c *container) advance(size core.Size, local core.Point) {
	if c.vertical {
		c.cursor.Y += size.H + local.Y
	} else {
		c.cursor.X += size.W + local.X
	}
}

// remaining is the extent left after the cursor on the container axis
func (c *container) remaining() core.Size {
	if c.vertical {
		return core.Size{W: c.extent.W, H: c.extent.H - c.cursor.Y}
	}
	return core.Size{W: c.extent.W - c.cursor.X, H: c.extent.H}
}

// Item pairs an element with its entity for one pass
type Item struct {
	Entity  core.Entity
	Element *ElementComponent
}

// Placement is the resolved rectangle of one element
type Placement struct {
	Entity core.Entity
	Name   string
	Kind   Kind
	Rect   core.Rect
}

// Frame is the per-frame input to a layout pass
type Frame struct {
	Screen core.Size
	Input  []input.Event
	Shift  bool
}

// Layout runs the single document-order pass: resolve, draw, hit-test, emit
// Text fields are mutated in place; UI events are appended to out
func Layout(items []Item, f Frame, backend render.Backend, out *event.Queue[Event]) ([]Placement, error) {
	stack := []container{{extent: f.Screen, vertical: true}}
	placements := make([]Placement, 0, len(items))
	// Pointer-downs already taken by a text field; overlapping fields never share capture
	claimed := make([]bool, len(f.Input))

	for _, it := range items {
		el := it.Element
		if el.Kind == KindGroupEnd {
			if len(stack) == 1 {
				return placements, fmt.Errorf("%w: element %q", ErrUnbalancedGroup, el.Name)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		top := &stack[len(stack)-1]
		size, local, err := el.Constraint.Resolve(top.extent, top.remaining())
		if err != nil {
			return placements, fmt.Errorf("element %q: %w", el.Name, err)
		}
		rect := core.Rect{
			X: top.origin.X + top.cursor.X + local.X,
			Y: top.origin.Y + top.cursor.Y + local.Y,
			W: size.W,
			H: size.H,
		}
		placements = append(placements, Placement{Entity: it.Entity, Name: el.Name, Kind: el.Kind, Rect: rect})

		switch el.Kind {
		case KindVerticalGroup, KindHorizontalGroup:
			if el.Sprite != "" {
				backend.DrawSprite(el.Sprite, rect)
			}
			top.advance(size, local)
			stack = append(stack, container{
				origin:   rect.Origin(),
				extent:   size,
				vertical: el.Kind == KindVerticalGroup,
			})
			continue
		case KindLabel:
			backend.DrawText(el.Text, el.Font, rect)
		case KindButton:
			if pressed(rect, f.Input) {
				out.Push(ButtonPressed(el.Name))
				backend.DrawSprite(el.PressedSprite, rect)
			} else {
				backend.DrawSprite(el.Sprite, rect)
			}
		case KindTextField:
			updateField(el, rect, f, claimed, backend, out)
		}
		top.advance(size, local)
	}

	if open := len(stack) - 1; open > 0 {
		return placements, fmt.Errorf("%w: %d open at end of document", ErrUnclosedGroup, open)
	}
	return placements, nil
}

func pressed(rect core.Rect, events []input.Event) bool {
	for _, ev := range events {
		if ev.Type == input.EventPointerDown && rect.Contains(ev.Pos) {
			return true
		}
	}
	return false
}

// updateField draws a text field then applies this frame's input to it
// Overflow reported by the draw trims one rune, so an overlong edit shows for one frame
// A pointer-down inside several fields captures the first in document order
func updateField(el *ElementComponent, rect core.Rect, f Frame, claimed []bool, backend render.Backend, out *event.Queue[Event]) {
	if el.Sprite != "" {
		backend.DrawSprite(el.Sprite, rect)
	}
	if backend.DrawText(el.Text, el.Font, rect) {
		el.Text = dropLast(el.Text)
	}

	for i, ev := range f.Input {
		switch ev.Type {
		case input.EventPointerDown:
			el.Captured = !claimed[i] && rect.Contains(ev.Pos)
			if el.Captured {
				claimed[i] = true
			}
		case input.EventKeyDown:
			if !el.Captured {
				continue
			}
			if ev.Key == input.KeyBackspace {
				if el.Text == "" {
					continue
				}
				el.Text = dropLast(el.Text)
			} else {
				c, ok := ev.Key.ToChar(f.Shift)
				if !ok {
					continue
				}
				el.Text += string(c)
			}
			out.Push(TextChanged(el.Name, el.Text))
		}
	}
}

func dropLast(s string) string {
	_, n := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-n]
}
