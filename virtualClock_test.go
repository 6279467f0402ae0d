package main

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
	"gotest.tools/poll"

	"dscheirer.com/pblbuttons/buttons"
)

func TestVirtualClockTicks(t *testing.T) {
	rt, _, _ := testRuntime()
	wall := clockwork.NewFakeClock()
	rt.wall = wall
	rt.vclock = newVirtualClock(10 * time.Millisecond)
	start := rt.vclock.Now()

	waitFor := func(want time.Duration) {
		waitOn(t, func(poll.LogT) poll.Result {
			if got := rt.vclock.Now().Sub(start); got != want {
				return poll.Continue("virtual clock at %v, want %v", got, want)
			}
			return poll.Success()
		})
	}

	startVirtualClock(rt)
	wall.BlockUntil(1)
	wall.Advance(10 * time.Millisecond)
	waitFor(10 * time.Millisecond)

	rt.vclock.setPaused(true)
	wall.BlockUntil(1)
	wall.Advance(10 * time.Millisecond)
	// back asleep means the tick was looked at and skipped
	wall.BlockUntil(1)
	assert.Equal(t, rt.vclock.Now().Sub(start), 10*time.Millisecond)

	rt.vclock.setPaused(false)
	wall.Advance(10 * time.Millisecond)
	waitFor(20 * time.Millisecond)

	testQuit(rt)
}

func TestVirtualClockReleasesButtons(t *testing.T) {
	settings := defaultSettings()
	vc := newVirtualClock(50 * time.Millisecond)
	rt := initTestRuntime(settings)
	// rebuild the board on emulated time
	rt.clock = vc
	rt.vclock = vc
	assert.NilError(t, assembleMachine(&rt))
	wall := clockwork.NewFakeClock()
	rt.wall = wall

	startKeyInput(rt)
	startVirtualClock(rt)

	rt.comms.keys <- buttons.ScanW
	waitLevel(t, rt, buttons.Up, false)

	// five ticks of host time is 250ms of emulated time
	for i := 0; i < 5; i++ {
		wall.BlockUntil(1)
		wall.Advance(50 * time.Millisecond)
	}
	waitLevel(t, rt, buttons.Up, true)

	testQuit(rt)
}
