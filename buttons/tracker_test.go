package buttons

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestPressAssertsOnce(t *testing.T) {
	in, _, el, sinks := testInput()

	press(in, ScanQ)

	assert.Equal(t, in.Outstanding(), Back)
	assert.DeepEqual(t, el.edges, []string{"back=false"})
	assert.Equal(t, sinks[Back].high, false)
	assert.Assert(t, in.Lines()[0].Asserted)
}

func TestReleaseAfterTimeout(t *testing.T) {
	in, clock, el, sinks := testInput()

	press(in, ScanQ)
	advance(in, clock, ReleaseDelay-time.Millisecond)
	assert.Equal(t, in.Outstanding(), Back)

	advance(in, clock, time.Millisecond)
	checkIdle(t, in)
	assert.DeepEqual(t, el.edges, []string{"back=false", "back=true"})
	assert.Equal(t, sinks[Back].high, true)

	// nothing else happens later on
	advanceBy(in, clock, 50*time.Millisecond, time.Second)
	assert.Equal(t, len(el.edges), 2)
}

func TestDifferentButtonReleasesFirst(t *testing.T) {
	in, clock, el, _ := testInput()

	press(in, ScanW)
	advance(in, clock, 100*time.Millisecond)
	press(in, ScanS)

	assert.Equal(t, in.Outstanding(), Select)
	assert.DeepEqual(t, el.edges, []string{"up=false", "up=true", "select=false"})

	// the release deadline belongs to the new press
	deadline, ok := in.Deadline()
	assert.Assert(t, ok)
	assert.Equal(t, deadline, clock.Now().Add(ReleaseDelay))

	advance(in, clock, 150*time.Millisecond)
	assert.Equal(t, in.Outstanding(), Select)

	advance(in, clock, 100*time.Millisecond)
	checkIdle(t, in)
	assert.DeepEqual(t, el.edges, []string{"up=false", "up=true", "select=false", "select=true"})
}

func TestRepeatedPressHoldsWithoutFlicker(t *testing.T) {
	in, clock, el, sinks := testInput()

	var last time.Time
	for i := 0; i < 10; i++ {
		press(in, ScanQ)
		last = clock.Now()
		assert.Equal(t, sinks[Back].high, false)
		advance(in, clock, 100*time.Millisecond)
	}
	assert.DeepEqual(t, el.edges, []string{"back=false"})

	// last press was 100ms ago; release lands 250ms after it
	advance(in, clock, 149*time.Millisecond)
	assert.Equal(t, in.Outstanding(), Back)
	advance(in, clock, time.Millisecond)
	checkIdle(t, in)
	assert.Equal(t, clock.Now().Sub(last), ReleaseDelay)
	assert.DeepEqual(t, el.edges, []string{"back=false", "back=true"})
}

func TestVNCStylePressReleasePairs(t *testing.T) {
	in, clock, el, _ := testInput()

	// a held key over VNC: down/up pairs every 50ms
	for i := 0; i < 6; i++ {
		press(in, ScanX, ScanX|ReleaseBit)
		advance(in, clock, 50*time.Millisecond)
	}
	assert.Equal(t, in.Outstanding(), Down)
	assert.DeepEqual(t, el.edges, []string{"down=false"})

	advanceBy(in, clock, 50*time.Millisecond, ReleaseDelay)
	checkIdle(t, in)
	assert.DeepEqual(t, el.edges, []string{"down=false", "down=true"})
}

func TestArrowKeysNeedPrefix(t *testing.T) {
	in, clock, el, _ := testInput()

	press(in, ScanArrowRight)
	checkIdle(t, in)
	assert.Equal(t, len(el.edges), 0)

	press(in, EscapePrefix, ScanArrowRight)
	assert.Equal(t, in.Outstanding(), Select)
	assert.DeepEqual(t, el.edges, []string{"select=false"})

	advance(in, clock, ReleaseDelay)
	checkIdle(t, in)
	assert.DeepEqual(t, el.edges, []string{"select=false", "select=true"})
}

func TestReleaseCodesIgnored(t *testing.T) {
	in, clock, el, _ := testInput()

	// idle
	for _, b := range All {
		press(in, Keycodes(b, false)...)
		press(in, ArrowKeycodes(b, false)...)
	}
	checkIdle(t, in)
	assert.Equal(t, len(el.edges), 0)

	// holding
	press(in, ScanW)
	deadline, _ := in.Deadline()
	advance(in, clock, 10*time.Millisecond)
	for _, b := range All {
		press(in, Keycodes(b, false)...)
	}
	assert.Equal(t, in.Outstanding(), Up)
	got, _ := in.Deadline()
	assert.Equal(t, got, deadline)
	assert.DeepEqual(t, el.edges, []string{"up=false"})
}

func TestUnknownKeysLeaveStateAlone(t *testing.T) {
	in, clock, el, _ := testInput()

	press(in, ScanS)
	deadline, _ := in.Deadline()
	advance(in, clock, 10*time.Millisecond)

	for _, code := range []int{1, 2, 30, 57, 96, ScanArrowUp, ScanArrowDown} {
		press(in, code)
	}
	assert.Equal(t, in.Outstanding(), Select)
	got, _ := in.Deadline()
	assert.Equal(t, got, deadline)
	assert.Equal(t, len(el.edges), 1)
}

func TestStaleReleaseIsNoop(t *testing.T) {
	in, clock, el, _ := testInput()

	// no press at all
	in.ReleaseTimeout()
	checkIdle(t, in)
	assert.Assert(t, in.ReleaseC() == nil)

	// a release that is not yet due must not cut a press short
	press(in, ScanQ)
	in.ReleaseTimeout()
	assert.Equal(t, in.Outstanding(), Back)

	advance(in, clock, ReleaseDelay)
	checkIdle(t, in)
	in.ReleaseTimeout()
	assert.DeepEqual(t, el.edges, []string{"back=false", "back=true"})
}

func TestSwitchDropsOldTimer(t *testing.T) {
	in, clock, el, _ := testInput()

	press(in, ScanW)
	advance(in, clock, 200*time.Millisecond)
	press(in, ScanX)

	// the first press's deadline passes without effect
	advance(in, clock, 60*time.Millisecond)
	assert.Equal(t, in.Outstanding(), Down)

	advance(in, clock, 190*time.Millisecond)
	checkIdle(t, in)
	assert.DeepEqual(t, el.edges, []string{"up=false", "up=true", "down=false", "down=true"})
}

func TestPressAfterRelease(t *testing.T) {
	in, clock, el, _ := testInput()

	press(in, ScanQ)
	advance(in, clock, ReleaseDelay)
	checkIdle(t, in)

	press(in, ScanQ)
	assert.Equal(t, in.Outstanding(), Back)
	advance(in, clock, ReleaseDelay)
	checkIdle(t, in)
	assert.DeepEqual(t, el.edges, []string{"back=false", "back=true", "back=false", "back=true"})
}

type reentrantSink struct {
	tracker *Tracker
	seen    []Button
}

func (s *reentrantSink) SetLevel(high bool) {
	// observe the tracker from inside the line callback
	s.seen = append(s.seen, s.tracker.Outstanding())
}

func TestStateSettledBeforeLineChange(t *testing.T) {
	in, clock, _, _ := testInput()
	rs := &reentrantSink{tracker: in.tracker}
	for _, l := range in.Lines() {
		l.Sink = rs
	}

	press(in, ScanW)
	press(in, ScanS)
	advance(in, clock, ReleaseDelay)

	// both writes of the switch see the final state
	assert.DeepEqual(t, rs.seen, []Button{Up, Select, Select, None})
}

// pressSink presses another key from inside its own line change
type pressSink struct {
	logSink
	in   *Input
	code int
}

func (s *pressSink) SetLevel(high bool) {
	s.logSink.SetLevel(high)
	if high {
		s.in.HandleKeycode(s.code)
		s.in.ReleaseTimeout()
	}
}

func TestLineCallbackCannotReenter(t *testing.T) {
	in, clock, el, sinks := testInput()
	for _, l := range in.Lines() {
		if l.Button == Up {
			ps := &pressSink{logSink: *sinks[Up], in: in, code: ScanX}
			l.Sink = ps
		}
	}

	press(in, ScanW)
	press(in, ScanS)

	assert.Equal(t, in.Outstanding(), Select)
	assert.DeepEqual(t, el.edges, []string{"up=false", "up=true", "select=false"})
	var asserted []Button
	for _, l := range in.Lines() {
		if l.Asserted {
			asserted = append(asserted, l.Button)
		}
	}
	assert.DeepEqual(t, asserted, []Button{Select})

	advance(in, clock, ReleaseDelay)
	checkIdle(t, in)
	assert.DeepEqual(t, el.edges, []string{"up=false", "up=true", "select=false", "select=true"})
	assert.Equal(t, sinks[Down].high, true)
}
