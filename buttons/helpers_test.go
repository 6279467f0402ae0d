package buttons

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// edgeLog records every level driven onto any line, in order.
type edgeLog struct {
	edges []string
}

type logSink struct {
	name string
	log  *edgeLog
	high bool
}

func (s *logSink) SetLevel(high bool) {
	s.high = high
	s.log.edges = append(s.log.edges, fmt.Sprintf("%s=%v", s.name, high))
}

func testInput() (*Input, clockwork.FakeClock, *edgeLog, map[Button]*logSink) {
	clock := clockwork.NewFakeClock()
	el := &edgeLog{}
	sinks := make(map[Button]*logSink)
	m, _ := MapFor(VariantBB2)

	var lines []*ButtonLine
	for _, b := range All {
		s := &logSink{name: b.String(), log: el, high: true}
		sinks[b] = s
		lines = append(lines, &ButtonLine{Button: b, ID: m[b], Sink: s})
	}
	return NewInput(lines, clock, nil), clock, el, sinks
}

// advance moves the clock on and, like the key input loop, runs a release
// that came due.
func advance(in *Input, clock clockwork.FakeClock, d time.Duration) {
	clock.Advance(d)
	select {
	case <-in.ReleaseC():
		in.ReleaseTimeout()
	default:
	}
}

// advanceBy walks the clock forward in steps.
func advanceBy(in *Input, clock clockwork.FakeClock, step, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		advance(in, clock, step)
	}
}

func press(in *Input, codes ...int) {
	for _, c := range codes {
		in.HandleKeycode(c)
	}
}

func checkIdle(t *testing.T, in *Input) {
	t.Helper()
	if in.Outstanding() != None {
		t.Fatalf("expected idle, holding %v", in.Outstanding())
	}
	if _, ok := in.Deadline(); ok {
		t.Fatalf("idle tracker has a pending release")
	}
}
