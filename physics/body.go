// Package physics is the rigid-body collaborator: an opaque-handle registry of
// bodies and colliders kept as a world resource, and the step system that
// integrates bodies and writes their placement back into transforms.
package physics

import (
	"fmt"

	"github.com/lixenwraith/invader/core"
)

// BodyHandle refers to a rigid body in World
type BodyHandle uint64

// ColliderHandle refers to a collider in World
type ColliderHandle uint64

// Status selects how a body is integrated
type Status uint8

const (
	StatusDisabled  Status = iota // Ignored by the step
	StatusStatic                  // Never moves
	StatusDynamic                 // Gravity and velocity
	StatusKinematic               // Velocity only
)

var statusNames = [...]string{"disabled", "static", "dynamic", "kinematic"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", s)
}

// ParseStatus reads a status name
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body status %q", name)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RigidBody is the simulated state of a body
type RigidBody struct {
	Status   Status
	Pos      core.Vec2
	Rotation float64
	Vel      core.Vec2
}

// ShapeKind is the collider geometry kind
type ShapeKind uint8

const (
	ShapeCuboid ShapeKind = iota
	ShapePolygon
)

// Shape is collider geometry in body-local space
type Shape struct {
	Kind        ShapeKind
	HalfExtents core.Vec2   // Cuboid
	Points      []core.Vec2 // Convex polygon
}

// Cuboid returns a box shape with the given half extents
func Cuboid(hx, hy float64) Shape {
	return Shape{Kind: ShapeCuboid, HalfExtents: core.Vec2{X: hx, Y: hy}}
}

// Polygon returns a convex polygon shape
func Polygon(points ...core.Vec2) Shape {
	return Shape{Kind: ShapePolygon, Points: points}
}

// Collider attaches a shape to a body at a local offset
type Collider struct {
	Shape    Shape
	Offset   core.Vec2
	Rotation float64
	Body     BodyHandle
}
