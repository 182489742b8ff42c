package physics

// BodyComponent links an entity to its rigid body
type BodyComponent struct {
	Handle BodyHandle
}

// ColliderComponent links an entity to its collider
type ColliderComponent struct {
	Handle ColliderHandle
}
