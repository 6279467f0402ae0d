package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// virtualClock is emulated time: a fake clock moved forward in ticks by
// runVirtualClock, and frozen while paused
type virtualClock struct {
	clockwork.FakeClock
	tick time.Duration

	mu     sync.Mutex
	paused bool
}

func newVirtualClock(tick time.Duration) *virtualClock {
	return &virtualClock{FakeClock: clockwork.NewFakeClock(), tick: tick}
}

func (vc *virtualClock) setPaused(paused bool) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.paused = paused
}

func (vc *virtualClock) isPaused() bool {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.paused
}

func startVirtualClock(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "VirtualClock"}
	wg.Add(1)
	go runVirtualClock(rt)
}

// runVirtualClock advances emulated time by one tick per tick of host time
func runVirtualClock(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runVirtualClock")
	}()

	vc := rt.vclock
	for {
		if quitting(rt.comms) {
			rt.logger.Println("quit from runVirtualClock")
			return
		}
		rt.wall.Sleep(vc.tick)
		if !vc.isPaused() {
			vc.Advance(vc.tick)
		}
	}
}
