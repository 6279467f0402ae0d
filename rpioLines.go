package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"

	"dscheirer.com/pblbuttons/buttons"
)

// rpioLines drives real Pi output pins with the emulated button line levels,
// for putting a scope or a logic analyser on them
type rpioLines struct {
	pins map[buttons.Button]rpio.Pin
}

func (rl *rpioLines) init(rt runtimeConfig) error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "open gpio")
	}

	rl.pins = make(map[buttons.Button]rpio.Pin)
	for _, b := range buttons.All {
		pm, ok := rt.settings.GetPinMap(sMirrorPrefix, b)
		if !ok {
			continue
		}
		pin := rpio.Pin(pm.pinNum)
		pin.Output()
		// released
		pin.High()
		rl.pins[b] = pin
	}
	return nil
}

func (rl *rpioLines) set(b buttons.Button, high bool) {
	pin, ok := rl.pins[b]
	if !ok {
		return
	}
	if high {
		pin.High()
	} else {
		pin.Low()
	}
}

func (rl *rpioLines) close() {
	rpio.Close()
}
