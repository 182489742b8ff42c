package engine

import "fmt"

// System is a unit of per-frame work with a static access declaration
type System interface {
	Name() string
	Access() Access
	Run(v *View) error
}

// View is the gated window a system gets onto the world during its run
// Every accessor checks the owning system's declaration and panics on a violation
type View struct {
	world  *World
	system string
	access Access
}

func newView(w *World, name string, access Access) *View {
	return &View{world: w, system: name, access: access}
}

// World exposes entity lifecycle operations; structural changes stay deferred
func (v *View) World() *World {
	return v.world
}

// System returns the name of the system owning this view
func (v *View) System() string {
	return v.system
}

func (v *View) violation(op string, k Key) {
	panic(fmt.Errorf("%w: system %s %s %s", ErrUndeclaredAccess, v.system, op, k))
}

// Read returns a resource the system declared as read or write
func Read[T any](v *View) T {
	k := ResourceKey[T]()
	if !v.access.canRead(k) {
		v.violation("reads", k)
	}
	return MustGetResource[T](v.world.Resources)
}

// Write returns a resource the system declared as write
func Write[T any](v *View) T {
	k := ResourceKey[T]()
	if !v.access.canWrite(k) {
		v.violation("writes", k)
	}
	return MustGetResource[T](v.world.Resources)
}

// ReadTable returns a component table the system declared as read or write
func ReadTable[T any](v *View) *Store[T] {
	k := TableKey[T]()
	if !v.access.canRead(k) {
		v.violation("reads", k)
	}
	return RegisterTable[T](v.world)
}

// WriteTable returns a component table the system declared as write
func WriteTable[T any](v *View) *Store[T] {
	k := TableKey[T]()
	if !v.access.canWrite(k) {
		v.violation("writes", k)
	}
	return RegisterTable[T](v.world)
}

// SystemFunc adapts a function and declaration into a System
type SystemFunc struct {
	ID       string
	Declared Access
	Fn       func(v *View) error
}

func (s SystemFunc) Name() string      { return s.ID }
func (s SystemFunc) Access() Access    { return s.Declared }
func (s SystemFunc) Run(v *View) error { return s.Fn(v) }
