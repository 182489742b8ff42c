// Package ui is the immediate-mode layout and interaction engine.
//
// Elements are plain components walked in document order once per frame. Group
// markers open and close nested containers; every other element is sized and
// placed inside the innermost open container and advances its cursor. Buttons
// and text fields are hit-tested against the frame's pointer events and emit UI
// events that downstream systems read the next frame.
package ui

import "errors"

var (
	// ErrUnbalancedGroup marks a group end with no open group
	ErrUnbalancedGroup = errors.New("group end without matching start")
	// ErrUnclosedGroup marks a document that ends with groups still open
	ErrUnclosedGroup = errors.New("group start without matching end")
	// ErrNegativeSize marks a size constraint that resolves below zero
	ErrNegativeSize = errors.New("negative size")
)

// Kind is the closed set of element variants
type Kind uint8

const (
	KindLabel Kind = iota
	KindButton
	KindTextField
	KindVerticalGroup
	KindHorizontalGroup
	KindGroupEnd
)

var kindNames = [...]string{
	KindLabel:           "label",
	KindButton:          "button",
	KindTextField:       "field",
	KindVerticalGroup:   "vgroup",
	KindHorizontalGroup: "hgroup",
	KindGroupEnd:        "end",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind reads a kind name as written in UI documents
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsGroupStart reports whether the element opens a container
func (k Kind) IsGroupStart() bool {
	return k == KindVerticalGroup || k == KindHorizontalGroup
}

// ElementComponent is one UI element in the document
// Which fields matter depends on Kind:
//   - label: Text, Font
//   - button: Sprite, PressedSprite
//   - field: Sprite (background), Text, Font, Captured
//   - vgroup/hgroup: Sprite (background, optional)
type ElementComponent struct {
	Name       string
	Kind       Kind
	Order      int // Document position; ties fall back to entity index
	Constraint Constraint

	Sprite        string
	PressedSprite string
	Text          string
	Font          string
	Captured      bool
}

// EventType classifies a UI event
type EventType uint8

const (
	EventButtonPressed EventType = iota
	EventTextChanged
)

// Event is emitted by the layout pass for downstream systems
type Event struct {
	Type EventType
	ID   string // Element name
	Text string // Full text after the change; TextChanged only
}

func ButtonPressed(id string) Event     { return Event{Type: EventButtonPressed, ID: id} }
func TextChanged(id, text string) Event { return Event{Type: EventTextChanged, ID: id, Text: text} }
