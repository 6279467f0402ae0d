//go:build linux

package main

import (
	"path/filepath"
	"strings"

	"github.com/bendahl/uinput"
	evdev "github.com/gvalkov/golang-evdev"
	"github.com/pkg/errors"

	"dscheirer.com/pblbuttons/buttons"
)

// linux keycodes below this are the same numbers as set-1 scancodes
const evdevScancodeLimit = 89

var evdevArrows = map[uint16]int{
	evdev.KEY_UP:    buttons.ScanArrowUp,
	evdev.KEY_DOWN:  buttons.ScanArrowDown,
	evdev.KEY_LEFT:  buttons.ScanArrowLeft,
	evdev.KEY_RIGHT: buttons.ScanArrowRight,
}

// evdevKeycodes turns one EV_KEY event into keycodes. Auto repeat (value 2)
// is sent as another press.
func evdevKeycodes(code uint16, value int32) []int {
	rel := 0
	if value == 0 {
		rel = buttons.ReleaseBit
	}
	if sc, ok := evdevArrows[code]; ok {
		return []int{buttons.EscapePrefix, sc | rel}
	}
	if code == 0 || code >= evdevScancodeLimit {
		return nil
	}
	return []int{int(code) | rel}
}

// isButtonKey reports whether the keycodes for one event drive a button
func isButtonKey(codes []int) bool {
	if len(codes) == 0 {
		return false
	}
	prev := 0
	if len(codes) > 1 {
		prev = codes[len(codes)-2]
	}
	b, _ := buttons.Translate(codes[len(codes)-1], prev)
	return b != buttons.None
}

type evdevKeys struct {
	device *evdev.InputDevice
	grab   bool
	// re-emits keys we grabbed but do not use
	passthru uinput.Keyboard
}

func newEvdevKeys() keySource {
	return &evdevKeys{}
}

// findKeyboard picks the first input device that calls itself a keyboard
func findKeyboard() (*evdev.InputDevice, error) {
	devFiles, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, errors.Wrap(err, "list input devices")
	}
	for _, path := range devFiles {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(dev.Name), "keyboard") {
			return dev, nil
		}
		dev.File.Close()
	}
	return nil, errors.New("no keyboard input device found")
}

func (ek *evdevKeys) initKeys(rt runtimeConfig) error {
	var err error
	path := rt.settings.GetString(sEvdevDevice)
	if path == "" {
		ek.device, err = findKeyboard()
	} else {
		ek.device, err = evdev.Open(path)
	}
	if err != nil {
		return errors.Wrap(err, "open keyboard")
	}
	rt.logger.Printf("reading keys from %s (%s)", ek.device.Name, ek.device.Fn)

	// Read blocks until the next key, closing the device is what wakes it
	go func(dev *evdev.InputDevice) {
		<-rt.comms.quit
		dev.File.Close()
	}(ek.device)

	if !rt.settings.GetBool(sEvdevGrab) {
		return nil
	}

	ek.passthru, err = uinput.CreateKeyboard("/dev/uinput", []byte("pblbuttons passthrough"))
	if err != nil {
		return errors.Wrap(err, "create passthrough keyboard")
	}
	if err := ek.device.Grab(); err != nil {
		return errors.Wrapf(err, "grab %s", ek.device.Name)
	}
	ek.grab = true
	return nil
}

func (ek *evdevKeys) readKeys(rt runtimeConfig) ([]int, error) {
	events, err := ek.device.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", ek.device.Name)
	}

	var ret []int
	for _, ev := range events {
		if ev.Type != evdev.EV_KEY {
			continue
		}
		codes := evdevKeycodes(ev.Code, ev.Value)
		if isButtonKey(codes) {
			ret = append(ret, codes...)
			continue
		}
		if ek.grab {
			ek.passThrough(rt, ev.Code, ev.Value)
		}
	}
	return ret, nil
}

func (ek *evdevKeys) passThrough(rt runtimeConfig, code uint16, value int32) {
	var err error
	switch value {
	case 0:
		err = ek.passthru.KeyUp(int(code))
	case 1:
		err = ek.passthru.KeyDown(int(code))
	}
	if err != nil {
		rt.logger.Printf("passthrough key %d: %v", code, err)
	}
}

func (ek *evdevKeys) closeKeys() {
	if ek.grab {
		ek.device.Release()
	}
	if ek.passthru != nil {
		ek.passthru.Close()
	}
	if ek.device != nil {
		ek.device.File.Close()
	}
}
