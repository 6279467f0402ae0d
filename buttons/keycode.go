package buttons

// Host keycodes are PC set-1 scancodes: bit 7 flags a release, bits 0-6 pick
// the key. Arrow keys arrive as two codes, the 0xE0 prefix then the key.
const (
	ReleaseBit   = 0x80
	EscapePrefix = 224

	ScanQ = 16
	ScanW = 17
	ScanS = 31
	ScanX = 45

	ScanArrowUp    = 72
	ScanArrowLeft  = 75
	ScanArrowRight = 77
	ScanArrowDown  = 80
)

var letterKeys = map[int]Button{
	ScanQ: Back,
	ScanW: Up,
	ScanS: Select,
	ScanX: Down,
}

var arrowKeys = map[int]Button{
	ScanArrowUp:    Up,
	ScanArrowDown:  Down,
	ScanArrowLeft:  Back,
	ScanArrowRight: Select,
}

// only the low 7 bits pick the key
const codeMask = 0x7F

// Translate maps one raw keycode to a button and direction. prev is the raw
// code seen just before this one; arrows only count behind the escape prefix.
// Keys that are not buttons come back as None.
func Translate(raw, prev int) (Button, bool) {
	pressed := raw&ReleaseBit == 0
	code := raw & codeMask

	if b, ok := letterKeys[code]; ok {
		return b, pressed
	}
	if b, ok := arrowKeys[code]; ok && prev == EscapePrefix {
		return b, pressed
	}
	return None, pressed
}

// KeyMapper is Translate plus the one-code history it needs.
type KeyMapper struct {
	prev int
}

// Map translates raw against the previous code, then remembers raw whether
// or not it was a button.
func (km *KeyMapper) Map(raw int) (Button, bool) {
	b, pressed := Translate(raw, km.prev)
	km.prev = raw
	return b, pressed
}

// Prev returns the last code seen.
func (km *KeyMapper) Prev() int {
	return km.prev
}

// Keycodes returns the raw codes a keyboard sends for b using its letter
// key. Release codes carry ReleaseBit.
func Keycodes(b Button, pressed bool) []int {
	for code, lb := range letterKeys {
		if lb == b {
			if !pressed {
				code |= ReleaseBit
			}
			return []int{code}
		}
	}
	return nil
}

// ArrowKeycodes is Keycodes for the arrow key bound to b, prefix included.
func ArrowKeycodes(b Button, pressed bool) []int {
	for code, lb := range arrowKeys {
		if lb == b {
			if !pressed {
				code |= ReleaseBit
			}
			return []int{EscapePrefix, code}
		}
	}
	return nil
}
