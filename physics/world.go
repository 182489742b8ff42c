package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/invader/core"
)

// ErrUnknownBody is returned when a collider names a body that is not registered
var ErrUnknownBody = errors.New("unknown body")

// DefaultGravity pulls dynamic bodies down in world space
var DefaultGravity = core.Vec2{Y: -9.81}

// World is the physics resource; callers only ever hold handles
type World struct {
	Gravity core.Vec2

	nextBody     BodyHandle
	nextCollider ColliderHandle
	bodies       map[BodyHandle]*RigidBody
	colliders    map[ColliderHandle]*Collider
}

// NewWorld creates an empty physics world with default gravity
func NewWorld() *World {
	return &World{
		Gravity:   DefaultGravity,
		bodies:    make(map[BodyHandle]*RigidBody),
		colliders: make(map[ColliderHandle]*Collider),
	}
}

// RegisterRigidBody stores a body and returns its handle
func (w *World) RegisterRigidBody(b RigidBody) BodyHandle {
	w.nextBody++
	w.bodies[w.nextBody] = &b
	return w.nextBody
}

// RegisterCollider stores a collider against a registered body
func (w *World) RegisterCollider(c Collider) (ColliderHandle, error) {
	if _, ok := w.bodies[c.Body]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBody, c.Body)
	}
	w.nextCollider++
	w.colliders[w.nextCollider] = &c
	return w.nextCollider, nil
}

// ReadRigidBody returns a copy of the body state
func (w *World) ReadRigidBody(h BodyHandle) (RigidBody, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return RigidBody{}, false
	}
	return *b, true
}

// ReadCollider returns a copy of the collider
func (w *World) ReadCollider(h ColliderHandle) (Collider, bool) {
	c, ok := w.colliders[h]
	if !ok {
		return Collider{}, false
	}
	return *c, true
}

// UpdateRigidBody applies fn to the stored body
func (w *World) UpdateRigidBody(h BodyHandle, fn func(*RigidBody)) bool {
	b, ok := w.bodies[h]
	if ok {
		fn(b)
	}
	return ok
}

// RemoveRigidBody deletes a body together with its colliders
func (w *World) RemoveRigidBody(h BodyHandle) bool {
	if _, ok := w.bodies[h]; !ok {
		return false
	}
	delete(w.bodies, h)
	for ch, c := range w.colliders {
		if c.Body == h {
			delete(w.colliders, ch)
		}
	}
	return true
}

// RemoveCollider deletes one collider
func (w *World) RemoveCollider(h ColliderHandle) bool {
	if _, ok := w.colliders[h]; !ok {
		return false
	}
	delete(w.colliders, h)
	return true
}

// BodyCount returns the number of registered bodies
func (w *World) BodyCount() int { return len(w.bodies) }

// ColliderCount returns the number of registered colliders
func (w *World) ColliderCount() int { return len(w.colliders) }

// Step integrates every body by dt seconds
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		switch b.Status {
		case StatusDynamic:
			Integrate(b, w.Gravity, dt)
		case StatusKinematic:
			Integrate(b, core.Vec2{}, dt)
		}
	}
}
