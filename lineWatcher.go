package main

import (
	"dscheirer.com/pblbuttons/buttons"
	"dscheirer.com/pblbuttons/gpio"
)

// watchLines hooks the mirror and the clicker onto the board's button pins
func watchLines(rt runtimeConfig) error {
	if err := rt.mirror.init(rt); err != nil {
		return err
	}

	byLine := make(map[buttons.LineID]buttons.Button)
	for _, l := range rt.machine.Input.Lines() {
		byLine[l.ID] = l.Button
	}

	rt.gpio.OnChange(func(e gpio.Edge) {
		b, ok := byLine[e.Line]
		if !ok {
			return
		}
		rt.mirror.set(b, e.High)
		// buttons pull their line low
		if !e.High {
			rt.clicker.click(rt)
		}
	})
	return nil
}
