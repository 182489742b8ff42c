// Package input defines the key set, held-key state and input events, and the
// pinned system that pulls events from a backend source into the input queue.
package input

// Key identifies a physical key independent of backend
// Left and right modifier variants collapse into one key
type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySpace
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeyComma
	KeyPeriod
	KeySlash
	KeyBackquote

	KeyBackspace
	KeyTab
	KeyReturn
	KeyEscape
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight

	KeyShift
	KeyControl
	KeyAlt

	keyCount
)

// keyChar is the unshifted and shifted character of a printable key (US layout)
type keyChar struct {
	plain   rune
	shifted rune
}

var printable = func() map[Key]keyChar {
	m := map[Key]keyChar{
		Key0: {'0', ')'}, Key1: {'1', '!'}, Key2: {'2', '@'}, Key3: {'3', '#'}, Key4: {'4', '$'},
		Key5: {'5', '%'}, Key6: {'6', '^'}, Key7: {'7', '&'}, Key8: {'8', '*'}, Key9: {'9', '('},

		KeySpace:        {' ', ' '},
		KeyMinus:        {'-', '_'},
		KeyEquals:       {'=', '+'},
		KeyLeftBracket:  {'[', '{'},
		KeyRightBracket: {']', '}'},
		KeyBackslash:    {'\\', '|'},
		KeySemicolon:    {';', ':'},
		KeyApostrophe:   {'\'', '"'},
		KeyComma:        {',', '<'},
		KeyPeriod:       {'.', '>'},
		KeySlash:        {'/', '?'},
		KeyBackquote:    {'`', '~'},
	}
	for k := KeyA; k <= KeyZ; k++ {
		off := rune(k - KeyA)
		m[k] = keyChar{'a' + off, 'A' + off}
	}
	return m
}()

type runeKey struct {
	key   Key
	shift bool
}

// runeKeys is the inverse of printable: character to key and shift state
var runeKeys = func() map[rune]runeKey {
	m := make(map[rune]runeKey, 2*len(printable))
	for k, c := range printable {
		if _, ok := m[c.plain]; !ok {
			m[c.plain] = runeKey{k, false}
		}
		if c.shifted != c.plain {
			m[c.shifted] = runeKey{k, true}
		}
	}
	return m
}()

// ToChar returns the character a key types with the given shift state
// Non-printable keys report false
func (k Key) ToChar(shift bool) (rune, bool) {
	c, ok := printable[k]
	if !ok {
		return 0, false
	}
	if shift {
		return c.shifted, true
	}
	return c.plain, true
}

// KeyForRune maps a typed character back to its key and whether shift produced it
func KeyForRune(r rune) (Key, bool, bool) {
	e, ok := runeKeys[r]
	if !ok {
		return KeyUnknown, false, false
	}
	return e.key, e.shift, true
}

var keyNames = map[Key]string{
	KeyBackspace: "Backspace", KeyTab: "Tab", KeyReturn: "Return", KeyEscape: "Escape",
	KeyArrowUp: "Up", KeyArrowDown: "Down", KeyArrowLeft: "Left", KeyArrowRight: "Right",
	KeyShift: "Shift", KeyControl: "Control", KeyAlt: "Alt", KeySpace: "Space",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if c, ok := k.ToChar(false); ok {
		return string(c)
	}
	return "Unknown"
}
