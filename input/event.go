package input

import (
	"fmt"

	"github.com/lixenwraith/invader/core"
)

// EventType classifies an input event
type EventType uint8

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventPointerDown
	EventPointerUp
	EventResize
	EventQuit
)

// Event is one backend input record
// Key is set for key events, Pos for pointer events, Size for resize
type Event struct {
	Type EventType
	Key  Key
	Pos  core.Point
	Size core.Size
}

func KeyDown(k Key) Event        { return Event{Type: EventKeyDown, Key: k} }
func KeyUp(k Key) Event          { return Event{Type: EventKeyUp, Key: k} }
func PointerDown(x, y int) Event { return Event{Type: EventPointerDown, Pos: core.Point{X: x, Y: y}} }
func PointerUp(x, y int) Event   { return Event{Type: EventPointerUp, Pos: core.Point{X: x, Y: y}} }
func Resize(w, h int) Event      { return Event{Type: EventResize, Size: core.Size{W: w, H: h}} }
func Quit() Event                { return Event{Type: EventQuit} }

func (e Event) String() string {
	switch e.Type {
	case EventKeyDown:
		return fmt.Sprintf("KeyDown(%s)", e.Key)
	case EventKeyUp:
		return fmt.Sprintf("KeyUp(%s)", e.Key)
	case EventPointerDown:
		return fmt.Sprintf("PointerDown(%d,%d)", e.Pos.X, e.Pos.Y)
	case EventPointerUp:
		return fmt.Sprintf("PointerUp(%d,%d)", e.Pos.X, e.Pos.Y)
	case EventResize:
		return fmt.Sprintf("Resize(%dx%d)", e.Size.W, e.Size.H)
	case EventQuit:
		return "Quit"
	}
	return "Unknown"
}
