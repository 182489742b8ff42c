package persist

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/invader/component"
	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/network"
	"github.com/lixenwraith/invader/physics"
)

const stageVersion = 1

// StageFile is the on-disk stage document
type StageFile struct {
	Version  int           `yaml:"version"`
	ID       string        `yaml:"id"`
	Saved    time.Time     `yaml:"saved"`
	Entities []StageEntity `yaml:"entities"`
}

// StageEntity is one stage entity; every part is optional
type StageEntity struct {
	Transform *component.TransformComponent `yaml:"transform,omitempty"`
	Sprite    *component.SpriteComponent    `yaml:"sprite,omitempty"`
	Text      *component.TextComponent      `yaml:"text,omitempty"`
	Body      *BodyRecord                   `yaml:"body,omitempty"`
	Collider  *ColliderRecord               `yaml:"collider,omitempty"`

	Replicated *network.ReplicatedComponent `yaml:"replicated,omitempty"`
}

// BodyRecord is a rigid body as stored in a stage file
type BodyRecord struct {
	Status   string    `yaml:"status"`
	Pos      core.Vec2 `yaml:"pos"`
	Rotation float64   `yaml:"rotation"`
	Vel      core.Vec2 `yaml:"vel"`
}

// ColliderRecord is a collider as stored in a stage file
type ColliderRecord struct {
	Shape       string      `yaml:"shape"` // cuboid or polygon
	HalfExtents core.Vec2   `yaml:"half_extents,omitempty"`
	Points      []core.Vec2 `yaml:"points,omitempty"`
	Offset      core.Vec2   `yaml:"offset"`
	Rotation    float64     `yaml:"rotation"`
}

func bodyRecord(b physics.RigidBody) *BodyRecord {
	return &BodyRecord{Status: b.Status.String(), Pos: b.Pos, Rotation: b.Rotation, Vel: b.Vel}
}

func (r *BodyRecord) body() (physics.RigidBody, error) {
	status, err := physics.ParseStatus(r.Status)
	if err != nil {
		return physics.RigidBody{}, err
	}
	return physics.RigidBody{Status: status, Pos: r.Pos, Rotation: r.Rotation, Vel: r.Vel}, nil
}

func colliderRecord(c physics.Collider) *ColliderRecord {
	rec := &ColliderRecord{Offset: c.Offset, Rotation: c.Rotation}
	switch c.Shape.Kind {
	case physics.ShapePolygon:
		rec.Shape = "polygon"
		rec.Points = c.Shape.Points
	default:
		rec.Shape = "cuboid"
		rec.HalfExtents = c.Shape.HalfExtents
	}
	return rec
}

func (r *ColliderRecord) collider(body physics.BodyHandle) (physics.Collider, error) {
	var shape physics.Shape
	switch r.Shape {
	case "cuboid":
		shape = physics.Cuboid(r.HalfExtents.X, r.HalfExtents.Y)
	case "polygon":
		shape = physics.Polygon(r.Points...)
	default:
		return physics.Collider{}, fmt.Errorf("unknown collider shape %q", r.Shape)
	}
	return physics.Collider{Shape: shape, Offset: r.Offset, Rotation: r.Rotation, Body: body}, nil
}

// WriteStage encodes a stage file to path
func WriteStage(path string, sf *StageFile) error {
	if sf.ID == "" {
		sf.ID = uuid.NewString()
	}
	sf.Version = stageVersion
	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("encode stage: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write stage: %w", err)
	}
	return nil
}

// ReadStage decodes a stage file from path
func ReadStage(path string) (*StageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage: %w", err)
	}
	var sf StageFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("decode stage %s: %w", path, err)
	}
	if sf.Version != stageVersion {
		return nil, fmt.Errorf("stage %s: unsupported version %d", path, sf.Version)
	}
	if _, err := uuid.Parse(sf.ID); err != nil {
		return nil, fmt.Errorf("stage %s: invalid id: %w", path, err)
	}
	return &sf, nil
}
