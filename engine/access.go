package engine

import (
	"fmt"
	"reflect"
	"slices"
)

// Key names one piece of world data a system touches: a resource or a component table
type Key struct {
	typ   reflect.Type
	table bool
}

// ResourceKey identifies the resource of type T
func ResourceKey[T any]() Key {
	return Key{typ: typeOf[T]()}
}

// TableKey identifies the component table for T
func TableKey[T any]() Key {
	return Key{typ: typeOf[T](), table: true}
}

func (k Key) String() string {
	if k.table {
		return fmt.Sprintf("table(%s)", k.typ)
	}
	return fmt.Sprintf("resource(%s)", k.typ)
}

// Access is the static declaration of what a system reads and writes
// A write implies read
type Access struct {
	Reads  []Key
	Writes []Key
}

func (a Access) canRead(k Key) bool {
	return slices.Contains(a.Reads, k) || slices.Contains(a.Writes, k)
}

func (a Access) canWrite(k Key) bool {
	return slices.Contains(a.Writes, k)
}

// Conflict returns the first key that a and b touch with at least one of them writing
func (a Access) Conflict(b Access) (Key, bool) {
	for _, k := range a.Writes {
		if b.canRead(k) {
			return k, true
		}
	}
	for _, k := range b.Writes {
		if a.canRead(k) {
			return k, true
		}
	}
	return Key{}, false
}
