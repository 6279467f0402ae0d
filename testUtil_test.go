package main

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
	"gotest.tools/poll"

	"dscheirer.com/pblbuttons/buttons"
)

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

func initTestRuntime(settings configSettings) runtimeConfig {
	settings.Set(sKernel, "test.bin")
	settings.Set(sControlPass, "s3cret")
	rt := initRuntime(settings, clockwork.NewFakeClock())
	rt.logger = &ThreadLogger{name: "Test"}

	if err := assembleMachine(&rt); err != nil {
		panic(err)
	}

	rt.keys = &noKeys{}
	rt.mirror = &logLines{}
	rt.clicker = &noClicks{}
	rt.control = &testControlService{}
	return rt
}

func testRuntime() (runtimeConfig, clockwork.FakeClock, commChannels) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))
	rt := initTestRuntime(defaultSettings())
	return rt, rt.clock.(clockwork.FakeClock), rt.comms
}

// testQuit stops every worker, nudging the host clock along so sleepers
// get to notice
func testQuit(rt runtimeConfig) {
	signalQuit(rt.comms)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	fc, _ := rt.wall.(clockwork.FakeClock)
	for {
		select {
		case <-done:
			return
		case <-time.After(time.Millisecond):
			if fc != nil {
				fc.Advance(dKeySleep)
			}
		}
	}
}

func lineOf(rt runtimeConfig, b buttons.Button) buttons.LineID {
	for _, l := range rt.machine.Input.Lines() {
		if l.Button == b {
			return l.ID
		}
	}
	panic(fmt.Sprintf("no line for %v", b))
}

func waitOn(t *testing.T, check func(poll.LogT) poll.Result) {
	t.Helper()
	poll.WaitOn(t, check, poll.WithDelay(time.Millisecond), poll.WithTimeout(5*time.Second))
}

// waitLevel waits for a button's GPIO pin to reach a level
func waitLevel(t *testing.T, rt runtimeConfig, b buttons.Button, high bool) {
	t.Helper()
	id := lineOf(rt, b)
	waitOn(t, func(poll.LogT) poll.Result {
		if rt.gpio.Level(id) == high {
			return poll.Success()
		}
		return poll.Continue("%v line is not %v yet", b, high)
	})
}

func testStatus(t *testing.T, comms commChannels) inputStatus {
	t.Helper()
	st, ok := queryStatus(comms)
	assert.Assert(t, ok, "no status from runKeyInput")
	return st
}
