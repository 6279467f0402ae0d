//go:build noaudio

package main

func init() {
	features = append(features, "noaudio")
}

func newClicker(rt runtimeConfig) clicker {
	rt.logger.Println("STUB: built without audio, no clicks")
	return &noClicks{}
}
