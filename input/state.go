package input

// KeysResource is the set of keys currently held
// The input system updates it from key-down and key-up events before the UI pass reads it
type KeysResource struct {
	held [keyCount]bool
}

// NewKeysResource returns an empty held-key set
func NewKeysResource() *KeysResource {
	return &KeysResource{}
}

// Press marks k held
func (r *KeysResource) Press(k Key) {
	if k < keyCount {
		r.held[k] = true
	}
}

// Release marks k released
func (r *KeysResource) Release(k Key) {
	if k < keyCount {
		r.held[k] = false
	}
}

// Pressed reports whether k is held
func (r *KeysResource) Pressed(k Key) bool {
	return k < keyCount && r.held[k]
}

// Reset releases every key
func (r *KeysResource) Reset() {
	r.held = [keyCount]bool{}
}
