package main

import "sync"

type noClicks struct {
	mu     sync.Mutex
	clicks int
}

func (nc *noClicks) click(rt runtimeConfig) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	// pretend we did this
	nc.clicks++
}

func (nc *noClicks) count() int {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.clicks
}
