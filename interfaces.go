package main

import (
	"dscheirer.com/pblbuttons/buttons"
)

// keySource produces raw host keycodes (set-1 scancodes, bit 7 = release)
type keySource interface {
	initKeys(rt runtimeConfig) error
	readKeys(rt runtimeConfig) ([]int, error)
	closeKeys()
}

// lineMirror copies emulated button line levels somewhere outside the
// emulator
type lineMirror interface {
	init(rt runtimeConfig) error
	set(b buttons.Button, high bool)
	close()
}

// clicker gives audible feedback for a button press
type clicker interface {
	click(rt runtimeConfig)
}

// controlService runs the HTTP side of the control API
type controlService interface {
	launch(handler *apiHandler, addr string)
	stop()
}
