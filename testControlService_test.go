package main

import "sync"

type testControlService struct {
	mu      sync.Mutex
	handler *apiHandler
	addr    string
	stopped bool
}

func (t *testControlService) launch(handler *apiHandler, addr string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
	t.addr = addr
}

func (t *testControlService) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *testControlService) state() (*apiHandler, string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler, t.addr, t.stopped
}
