package main

import "sync"

// noKeys is a key source with nothing attached; tests push codes into it
type noKeys struct {
	mu      sync.Mutex
	pending [][]int
	inits   int
	closed  bool
}

func (nk *noKeys) initKeys(rt runtimeConfig) error {
	nk.mu.Lock()
	defer nk.mu.Unlock()
	nk.inits++
	return nil
}

func (nk *noKeys) readKeys(rt runtimeConfig) ([]int, error) {
	rt.wall.Sleep(dKeySleep)

	nk.mu.Lock()
	defer nk.mu.Unlock()
	if len(nk.pending) == 0 {
		return nil, nil
	}
	codes := nk.pending[0]
	nk.pending = nk.pending[1:]
	return codes, nil
}

func (nk *noKeys) closeKeys() {
	nk.mu.Lock()
	defer nk.mu.Unlock()
	nk.closed = true
}

func (nk *noKeys) push(codes ...int) {
	nk.mu.Lock()
	defer nk.mu.Unlock()
	nk.pending = append(nk.pending, codes)
}

func (nk *noKeys) isClosed() bool {
	nk.mu.Lock()
	defer nk.mu.Unlock()
	return nk.closed
}
