package ui

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
)

// Document is an authored UI layout in document order
type Document struct {
	Elements []ElementSpec `yaml:"elements"`
}

// ElementSpec is the YAML form of one element
type ElementSpec struct {
	Type    string   `yaml:"type"`
	Name    string   `yaml:"name"`
	Sprite  string   `yaml:"sprite"`
	Pressed string   `yaml:"pressed"`
	Text    string   `yaml:"text"`
	Font    string   `yaml:"font"`
	Width   Size     `yaml:"width"`
	Height  Size     `yaml:"height"`
	X       Position `yaml:"x"`
	Y       Position `yaml:"y"`
}

// LoadDocument reads and validates a YAML UI document
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ui document: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument decodes and validates a YAML UI document
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ui document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks element types and group balance
func (d *Document) Validate() error {
	depth := 0
	for i, spec := range d.Elements {
		kind, ok := ParseKind(spec.Type)
		if !ok {
			return fmt.Errorf("element %d: unknown type %q", i, spec.Type)
		}
		switch {
		case kind.IsGroupStart():
			depth++
		case kind == KindGroupEnd:
			if depth == 0 {
				return fmt.Errorf("%w: element %d", ErrUnbalancedGroup, i)
			}
			depth--
		}
	}
	if depth > 0 {
		return fmt.Errorf("%w: %d open at end of document", ErrUnclosedGroup, depth)
	}
	return nil
}

// Components converts the document into element components ordered from base
func (d *Document) Components(base int) []ElementComponent {
	out := make([]ElementComponent, 0, len(d.Elements))
	for i, spec := range d.Elements {
		kind, _ := ParseKind(spec.Type)
		out = append(out, ElementComponent{
			Name:          spec.Name,
			Kind:          kind,
			Order:         base + i,
			Constraint:    Constraint{Width: spec.Width, Height: spec.Height, X: spec.X, Y: spec.Y},
			Sprite:        spec.Sprite,
			PressedSprite: spec.Pressed,
			Text:          spec.Text,
			Font:          spec.Font,
		})
	}
	return out
}

// Spawn creates one entity per element; they become visible at the next commit
func Spawn(w *engine.World, d *Document) ([]core.Entity, error) {
	comps := d.Components(0)
	entities := make([]core.Entity, 0, len(comps))
	for _, c := range comps {
		e := w.CreateEntity()
		if err := engine.Attach(w, e, c); err != nil {
			return entities, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
