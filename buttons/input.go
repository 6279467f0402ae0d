package buttons

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Input is the button path of one emulated board: host keycodes in,
// interrupt line levels out.
type Input struct {
	mapper  KeyMapper
	tracker *Tracker
	lines   []*ButtonLine
}

// NewInput wires lines (one per real button) to a fresh mapper and tracker
// running on clock. logger may be nil.
func NewInput(lines []*ButtonLine, clock clockwork.Clock, logger Logger) *Input {
	byButton := make(map[Button]*ButtonLine, len(lines))
	for _, l := range lines {
		byButton[l.Button] = l
	}
	return &Input{
		tracker: NewTracker(byButton, clock, logger),
		lines:   lines,
	}
}

// HandleKeycode is the keyboard event callback.
func (in *Input) HandleKeycode(code int) {
	b, pressed := in.mapper.Map(code)
	in.tracker.HandleEvent(b, pressed)
}

// ReleaseC see Tracker.ReleaseC.
func (in *Input) ReleaseC() <-chan time.Time {
	return in.tracker.ReleaseC()
}

// ReleaseTimeout see Tracker.ReleaseTimeout.
func (in *Input) ReleaseTimeout() {
	in.tracker.ReleaseTimeout()
}

// Outstanding is the button currently held, or None.
func (in *Input) Outstanding() Button {
	return in.tracker.Outstanding()
}

// Deadline see Tracker.Deadline.
func (in *Input) Deadline() (time.Time, bool) {
	return in.tracker.Deadline()
}

// Lines returns the board's button lines in wiring order.
func (in *Input) Lines() []*ButtonLine {
	return in.lines
}
