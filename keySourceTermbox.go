package main

import (
	"errors"
	"unicode"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"

	"dscheirer.com/pblbuttons/buttons"
)

// set-1 scancodes for the keys termbox hands us as runes
var runeScancodes = map[rune]int{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
	'-': 12, '=': 13,
	'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20, 'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
	'[': 26, ']': 27,
	'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34, 'h': 35, 'j': 36, 'k': 37, 'l': 38,
	';': 39, '\'': 40, '`': 41, '\\': 43,
	'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48, 'n': 49, 'm': 50,
	',': 51, '.': 52, '/': 53,
}

var termboxScancodes = map[termbox.Key]int{
	termbox.KeyEsc:       1,
	termbox.KeyBackspace: 14,
	termbox.KeyTab:       15,
	termbox.KeyEnter:     28,
	termbox.KeySpace:     57,
}

var termboxArrows = map[termbox.Key]int{
	termbox.KeyArrowUp:    buttons.ScanArrowUp,
	termbox.KeyArrowDown:  buttons.ScanArrowDown,
	termbox.KeyArrowLeft:  buttons.ScanArrowLeft,
	termbox.KeyArrowRight: buttons.ScanArrowRight,
}

// termboxKeycodes turns one terminal key event into keycodes. A terminal
// only reports key presses, so each press is followed by its release the
// way a VNC client sends them.
func termboxKeycodes(ev termbox.Event) []int {
	if ev.Type != termbox.EventKey {
		return nil
	}
	if code, ok := termboxArrows[ev.Key]; ok {
		return []int{buttons.EscapePrefix, code, buttons.EscapePrefix, code | buttons.ReleaseBit}
	}
	code, ok := termboxScancodes[ev.Key]
	if ev.Ch != 0 {
		code, ok = runeScancodes[unicode.ToLower(ev.Ch)]
	}
	if !ok {
		return nil
	}
	return []int{code, code | buttons.ReleaseBit}
}

type termboxKeys struct {
}

func (tk *termboxKeys) initKeys(rt runtimeConfig) error {
	err := termbox.Init()
	if err != nil {
		return err
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()

	// close it later
	return nil
}

func (tk *termboxKeys) readKeys(rt runtimeConfig) ([]int, error) {
	var ret []int

	// poll with quick timeout
	// no key means "no change"
	go func() {
		rt.wall.Sleep(dKeySleep)
		termbox.Interrupt()
	}()

	waitForInterrupt := true
	for waitForInterrupt {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			// add an exit key
			if ev.Key == termbox.KeyCtrlC {
				return ret, errors.New("exit termbox loop")
			}
			ret = append(ret, termboxKeycodes(ev)...)
		case termbox.EventError:
			return ret, ev.Err
		// wait for the interrupt to fire
		default:
			waitForInterrupt = false
		}
	}

	return ret, nil
}

func (tk *termboxKeys) closeKeys() {
	termbox.Close()
}
