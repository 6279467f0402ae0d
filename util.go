// utility functions
package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"dscheirer.com/pblbuttons/board"
	"dscheirer.com/pblbuttons/buttons"
	"dscheirer.com/pblbuttons/gpio"
)

var wg sync.WaitGroup

type commChannels struct {
	quit    chan struct{}
	keys    chan int // raw host keycodes
	control chan controlMsg

	quitOnce *sync.Once
}

type runtimeConfig struct {
	settings configSettings
	clock    clockwork.Clock // emulated time, drives button releases
	wall     clockwork.Clock // host time, for polling host devices
	comms    commChannels
	logger   flogger

	machine *board.Machine
	gpio    *gpio.Controller
	vclock  *virtualClock // nil on a wall clock

	keys    keySource
	mirror  lineMirror
	clicker clicker
	control controlService
}

// wait times for the polling workers
const (
	dKeySleep     = 100 * time.Millisecond
	dControlSleep = 100 * time.Millisecond
)

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}, 1),
		keys:     make(chan int, 16),
		control:  make(chan controlMsg, 1),
		quitOnce: &sync.Once{},
	}
}

func initRuntime(settings configSettings, clock clockwork.Clock) runtimeConfig {
	return runtimeConfig{
		settings: settings,
		clock:    clock,
		wall:     clock,
		comms:    initCommChannels(),
		logger:   &ThreadLogger{name: "Main"},
	}
}

// assembleMachine builds the board named in the settings on top of a fresh
// set of GPIO ports
func assembleMachine(rt *runtimeConfig) error {
	cfg, err := board.Lookup(rt.settings.GetString(sBoard))
	if err != nil {
		return err
	}

	rt.gpio = gpio.NewController(buttons.BankI)

	var inputLog buttons.Logger
	if rt.settings.GetBool(sDebug) {
		inputLog = &ThreadLogger{name: "Input"}
	}

	rt.machine, err = board.Assemble(cfg, rt.settings.GetString(sKernel), rt.gpio, rt.clock, inputLog)
	return err
}

// quitting reports whether the quit channel has been closed
func quitting(comms commChannels) bool {
	select {
	case <-comms.quit:
		return true
	default:
		return false
	}
}

// stop everything, safe to call from more than one worker
func signalQuit(comms commChannels) {
	comms.quitOnce.Do(func() { close(comms.quit) })
}
