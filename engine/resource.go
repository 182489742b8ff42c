package engine

import (
	"reflect"
	"sync"
)

// ResourceStore is a container for singleton resources keyed by their Go type
// Resources are usually pointer types so a write-declared system can mutate them in place
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or replaces the resource of type T
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.resources[typeOf[T]()] = resource
}

// GetResource retrieves the resource of type T
// Returns the zero value of T and false if not found
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	val, ok := rs.resources[typeOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGetResource retrieves a resource or panics if missing
// Used for resources the engine cannot run without (Time, AppState)
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		panic("required resource not found: " + typeOf[T]().String())
	}
	return res
}

// RemoveResource deletes the resource of type T
func RemoveResource[T any](rs *ResourceStore) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.resources, typeOf[T]())
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
