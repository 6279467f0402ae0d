// Package buttons turns host key events into the interrupt line activity a
// watch MCU sees from its four physical buttons.
package buttons

import "strings"

// Button is a logical watch button, independent of the pin it is wired to.
type Button int

const (
	None Button = iota - 1 // no button, never a real line
	Back
	Up
	Select
	Down
)

// All lists the real buttons in wiring table order.
var All = []Button{Back, Up, Select, Down}

var buttonNames = map[Button]string{
	None:   "none",
	Back:   "back",
	Up:     "up",
	Select: "select",
	Down:   "down",
}

func (b Button) String() string {
	if s, ok := buttonNames[b]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether b is one of the four real buttons.
func (b Button) Valid() bool {
	return b >= Back && b <= Down
}

// ParseButton is the inverse of String, case insensitive.
func ParseButton(s string) (Button, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for b, name := range buttonNames {
		if name == s {
			return b, true
		}
	}
	return None, false
}
