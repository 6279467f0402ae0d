package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"

	"dscheirer.com/pblbuttons/buttons"
)

// physical watch buttons wired to a Raspberry Pi, turned into keycodes so
// they go through the same path as a keyboard

// press state of one physical button
type pressState struct {
	pressed    bool      // is it pressed?
	start      time.Time // when did this state start?
	lastRepeat time.Time // last time we re-sent the press
	changed    bool      // did it change on the last check?
}

type button struct {
	button buttons.Button
	pin    pinMap
	state  pressState
}

const (
	btnDown = 0
	btnUp   = 1
)

type pinReader interface {
	open() error
	setup(pm pinMap)
	read(pm pinMap) rpio.State
	close()
}

type rpioPins struct {
}

func (rp *rpioPins) open() error {
	return rpio.Open()
}

func (rp *rpioPins) setup(pm pinMap) {
	pin := rpio.Pin(pm.pinNum)
	pin.Input() // Input mode
	if pm.pullup {
		pin.PullUp() // GND => button press
	} else {
		pin.PullDown() // +V -> button press
	}
}

func (rp *rpioPins) read(pm pinMap) rpio.State {
	return rpio.Pin(pm.pinNum).Read()
}

func (rp *rpioPins) close() {
	rpio.Close()
}

type physicalKeys struct {
	pins    pinReader
	buttons []button
}

func (pk *physicalKeys) initKeys(rt runtimeConfig) error {
	if err := pk.pins.open(); err != nil {
		return errors.Wrap(err, "open gpio")
	}

	now := rt.wall.Now()
	pk.buttons = nil
	for _, b := range buttons.All {
		pm, ok := rt.settings.GetPinMap(sRpioPrefix, b)
		if !ok {
			continue
		}
		pk.pins.setup(pm)
		pk.buttons = append(pk.buttons, button{
			button: b,
			pin:    pm,
			state:  pressState{pressed: false, start: now},
		})
	}
	if len(pk.buttons) == 0 {
		return errors.New("no physical buttons configured")
	}
	return nil
}

func (pk *physicalKeys) readKeys(rt runtimeConfig) ([]int, error) {
	rt.wall.Sleep(rt.settings.GetDuration(sRpioPoll))
	return pk.checkButtons(rt), nil
}

func (pk *physicalKeys) closeKeys() {
	pk.pins.close()
}

// checkButtons samples every pin once and returns the keycodes for what
// changed. A button held down re-sends its press every rpioRepeatTime, the
// way keyboard auto repeat does, so the watch keeps seeing it held.
func (pk *physicalKeys) checkButtons(rt runtimeConfig) []int {
	now := rt.wall.Now()
	repeat := rt.settings.GetDuration(sRpioRepeat)
	var codes []int

	for i := range pk.buttons {
		btn := &pk.buttons[i]
		btn.state.changed = false

		// interpret the high/low state into btnUp or btnDown
		// based on the pullup value
		res := pk.pins.read(btn.pin)
		btnState := btnUp
		if btn.pin.pullup == (res == rpio.Low) {
			btnState = btnDown
		}

		if btnState == btnDown {
			if !btn.state.pressed {
				// just noticed it was pressed
				btn.state = pressState{pressed: true, start: now, lastRepeat: now, changed: true}
				codes = append(codes, buttons.Keycodes(btn.button, true)...)
			} else if repeat > 0 && now.Sub(btn.state.lastRepeat) >= repeat {
				btn.state.lastRepeat = now
				codes = append(codes, buttons.Keycodes(btn.button, true)...)
			}
		} else if btn.state.pressed {
			// just noticed the release
			btn.state = pressState{pressed: false, start: now, changed: true}
			codes = append(codes, buttons.Keycodes(btn.button, false)...)
		}

		if btn.state.changed {
			rt.logger.Printf("button changed state: %v %+v", btn.button, btn.state)
		}
	}
	return codes
}
