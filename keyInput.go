package main

import (
	"time"

	"dscheirer.com/pblbuttons/buttons"
)

const (
	msgStatus = iota
)

// controlMsg is a request answered on the key input loop, the only goroutine
// allowed to look at the button state
type controlMsg struct {
	id    int
	reply chan inputStatus
}

type lineStatus struct {
	Button   string `json:"button"`
	Line     string `json:"line"`
	Asserted bool   `json:"asserted"`
}

type inputStatus struct {
	Held      string        `json:"held"`
	ReleaseIn time.Duration `json:"releaseIn"`
	Lines     []lineStatus  `json:"lines"`
}

func startKeyInput(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "KeyInput"}
	wg.Add(1)
	go runKeyInput(rt)
}

func currentStatus(rt runtimeConfig) inputStatus {
	in := rt.machine.Input
	st := inputStatus{Held: in.Outstanding().String()}
	if deadline, ok := in.Deadline(); ok {
		st.ReleaseIn = deadline.Sub(rt.clock.Now())
	}
	for _, l := range in.Lines() {
		st.Lines = append(st.Lines, lineStatus{
			Button:   l.Button.String(),
			Line:     l.ID.String(),
			Asserted: l.Asserted,
		})
	}
	return st
}

// runKeyInput owns the board's button input: host keycodes and release
// expiries are all handled here, one at a time
func runKeyInput(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runKeyInput")
	}()

	comms := rt.comms
	in := rt.machine.Input

	for {
		select {
		case <-comms.quit:
			rt.logger.Println("quit from runKeyInput")
			return
		case code := <-comms.keys:
			before := in.Outstanding()
			in.HandleKeycode(code)
			if after := in.Outstanding(); after != before && after != buttons.None {
				rt.logger.Printf("holding %v", after)
			}
		case <-in.ReleaseC():
			in.ReleaseTimeout()
		case msg := <-comms.control:
			switch msg.id {
			case msgStatus:
				msg.reply <- currentStatus(rt)
			default:
				rt.logger.Printf("unhandled control message %d", msg.id)
				close(msg.reply)
			}
		}
	}
}

// queryStatus asks runKeyInput for a snapshot, giving up on quit
func queryStatus(comms commChannels) (inputStatus, bool) {
	reply := make(chan inputStatus, 1)
	select {
	case comms.control <- controlMsg{id: msgStatus, reply: reply}:
	case <-comms.quit:
		return inputStatus{}, false
	}
	select {
	case st, ok := <-reply:
		return st, ok
	case <-comms.quit:
		return inputStatus{}, false
	}
}
