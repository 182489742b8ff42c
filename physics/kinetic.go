package physics

import "github.com/lixenwraith/invader/core"

// Integrate performs semi-implicit Euler: v = v + a*dt; p = p + v*dt
func Integrate(b *RigidBody, accel core.Vec2, dt float64) {
	b.Vel = b.Vel.Add(accel.Scale(dt))
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// ApplyImpulse adds velocity delta
func ApplyImpulse(b *RigidBody, dv core.Vec2) {
	b.Vel = b.Vel.Add(dv)
}
