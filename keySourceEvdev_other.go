//go:build !linux

package main

import "github.com/pkg/errors"

type evdevKeys struct{}

func newEvdevKeys() keySource {
	return &evdevKeys{}
}

func (ek *evdevKeys) initKeys(rt runtimeConfig) error {
	return errors.New("evdev key source is only available on linux")
}

func (ek *evdevKeys) readKeys(rt runtimeConfig) ([]int, error) {
	return nil, errors.New("evdev key source is only available on linux")
}

func (ek *evdevKeys) closeKeys() {
}
