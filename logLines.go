package main

import (
	"fmt"
	"sync"

	"dscheirer.com/pblbuttons/buttons"
)

// logLines is the line mirror when there is no hardware to mirror onto
type logLines struct {
	mu         sync.Mutex
	levels     map[buttons.Button]bool
	audit      []string
	disableLog bool
	logger     flogger
}

func (ll *logLines) init(rt runtimeConfig) error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.levels = make(map[buttons.Button]bool)
	for _, b := range buttons.All {
		ll.levels[b] = true
	}
	ll.audit = make([]string, 0)
	ll.logger = &ThreadLogger{name: "Lines"}
	return nil
}

func (ll *logLines) set(b buttons.Button, high bool) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.levels[b] = high
	msg := fmt.Sprintf("Set %v line to %v", b, high)
	if !ll.disableLog {
		ll.logger.Println(msg)
	}
	ll.audit = append(ll.audit, msg)
}

func (ll *logLines) close() {
}

func (ll *logLines) getAudit() []string {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return append([]string(nil), ll.audit...)
}
