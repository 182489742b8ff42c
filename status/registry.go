package status

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Registry is the central metrics facade
// Systems cache pointers during construction; per-frame code writes directly to atomics
type Registry struct {
	mu     sync.RWMutex
	ints   map[string]*atomic.Int64
	floats map[string]*AtomicFloat
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   make(map[string]*atomic.Int64),
		floats: make(map[string]*AtomicFloat),
	}
}

// Int returns the counter for key, creating it on first use
func (r *Registry) Int(key string) *atomic.Int64 {
	return lookup(&r.mu, r.ints, key)
}

// Float returns the gauge for key, creating it on first use
func (r *Registry) Float(key string) *AtomicFloat {
	return lookup(&r.mu, r.floats, key)
}

// Duration stores d in microseconds under key
func (r *Registry) Duration(key string, d time.Duration) {
	r.Int(key).Store(d.Microseconds())
}

// Snapshot copies every metric into a plain map keyed by name
// Floats and ints share the namespace; a key registered as both reports the float
func (r *Registry) Snapshot() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]float64, len(r.ints)+len(r.floats))
	for k, v := range r.ints {
		out[k] = float64(v.Load())
	}
	for k, v := range r.floats {
		out[k] = v.Get()
	}
	return out
}

// Keys returns all registered metric names in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.ints)+len(r.floats))
	for k := range r.ints {
		keys = append(keys, k)
	}
	for k := range r.floats {
		if _, dup := r.ints[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func lookup[T any](mu *sync.RWMutex, items map[string]*T, key string) *T {
	// Fast path: RLock check
	mu.RLock()
	if ptr, ok := items[key]; ok {
		mu.RUnlock()
		return ptr
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok := items[key]; ok {
		return ptr
	}
	ptr := new(T)
	items[key] = ptr
	return ptr
}
