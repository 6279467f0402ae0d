package buttons

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// ReleaseDelay is how long a press holds its line before it is let go.
//
// Some host transports (VNC in particular) send a key up right behind every
// key down even while the key is still held, so host releases are never
// trusted. A press holds the line for ReleaseDelay, a repeat of the same key
// extends it and a different key releases it early.
const ReleaseDelay = 250 * time.Millisecond

// releaseTask is the one deferred release a tracker may have in flight.
type releaseTask struct {
	clock    clockwork.Clock
	timer    clockwork.Timer
	deadline time.Time
}

// schedule (re)arms the task to fire d from now, replacing any earlier
// deadline.
func (rt *releaseTask) schedule(d time.Duration) {
	rt.deadline = rt.clock.Now().Add(d)
	if rt.timer == nil {
		rt.timer = rt.clock.NewTimer(d)
		return
	}
	rt.cancel()
	rt.timer.Reset(d)
}

// cancel stops the timer and throws away an expiry nobody has read yet.
func (rt *releaseTask) cancel() {
	if rt.timer == nil {
		return
	}
	if !rt.timer.Stop() {
		select {
		case <-rt.timer.Chan():
		default:
		}
	}
}

// Tracker decides which single button the watch currently sees as pressed.
//
// A Tracker is not safe for concurrent use: key events and release expiries
// must be fed from one goroutine, normally a select over the host key channel
// and ReleaseC.
type Tracker struct {
	signal Signaler
	clock  clockwork.Clock
	lines  map[Button]*ButtonLine

	outstanding Button
	pending     *releaseTask // non-nil iff outstanding != None
	task        releaseTask

	// set while line writes are in flight; events arriving from a sink
	// callback are dropped
	signaling bool
}

// NewTracker builds an idle tracker over lines. logger may be nil.
func NewTracker(lines map[Button]*ButtonLine, clock clockwork.Clock, logger Logger) *Tracker {
	return &Tracker{
		signal:      Signaler{logger: logger},
		clock:       clock,
		lines:       lines,
		outstanding: None,
		task:        releaseTask{clock: clock},
	}
}

// HandleEvent applies one translated key event. Events fed back from a
// sink while the tracker is driving lines are ignored.
func (t *Tracker) HandleEvent(b Button, pressed bool) {
	if t.signaling || !pressed || !b.Valid() {
		return
	}
	line, ok := t.lines[b]
	if !ok {
		return
	}

	prev := t.outstanding
	if prev == b {
		// still held, push the release out
		t.pending.schedule(ReleaseDelay)
		return
	}

	t.outstanding = b
	t.task.schedule(ReleaseDelay)
	t.pending = &t.task

	t.signaling = true
	defer func() { t.signaling = false }()
	if prev != None {
		t.signal.SetLine(t.lines[prev], false)
	}
	t.signal.SetLine(line, true)
}

// ReleaseC delivers the pending release expiry. It is nil while idle, so a
// select on it blocks until a press is outstanding.
func (t *Tracker) ReleaseC() <-chan time.Time {
	if t.pending == nil {
		return nil
	}
	return t.pending.timer.Chan()
}

// ReleaseTimeout lets go of the outstanding button. Expiries that arrive
// with nothing held, or ahead of the current deadline, are stale and ignored.
func (t *Tracker) ReleaseTimeout() {
	if t.signaling || t.outstanding == None || t.pending == nil {
		return
	}
	if t.clock.Now().Before(t.pending.deadline) {
		return
	}
	t.release()
}

func (t *Tracker) release() {
	b := t.outstanding
	t.outstanding = None
	if t.pending != nil {
		t.pending.cancel()
		t.pending = nil
	}

	t.signaling = true
	defer func() { t.signaling = false }()
	t.signal.SetLine(t.lines[b], false)
}

// Outstanding is the button currently held, or None.
func (t *Tracker) Outstanding() Button {
	return t.outstanding
}

// Deadline reports when the held button will be released.
func (t *Tracker) Deadline() (time.Time, bool) {
	if t.pending == nil {
		return time.Time{}, false
	}
	return t.pending.deadline, true
}
