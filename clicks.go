//go:build !noaudio

package main

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/bobertlo/go-mpg123/mpg123"
	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

func init() {
	features = append(features, "audio")
}

const sampleRate = 44100

// the click played when there is no sample file
const (
	clickFreq     = 2000.0
	clickDuration = 15 * time.Millisecond
	clickRampDown = 5 * time.Millisecond
	clickLevel    = 0.4
)

func newClicker(rt runtimeConfig) clicker {
	rc := &realClicks{rate: sampleRate, samples: toneSamples(clickFreq, clickDuration, clickRampDown, clickLevel)}

	if fName := rt.settings.GetString(sClickSound); fName != "" {
		samples, rate, err := loadMP3Samples(fName)
		if err != nil {
			rt.logger.Printf("click sound: %v, using a tone", err)
		} else {
			rc.samples, rc.rate = samples, rate
		}
	}
	return rc
}

// toneSamples renders a sine burst that fades out over its last rampDown
func toneSamples(freq float64, duration, rampDown time.Duration, level float64) []float32 {
	steps := int(duration * time.Duration(sampleRate) / time.Second)
	ramp := int(rampDown * time.Duration(sampleRate) / time.Second)
	step := freq / sampleRate

	out := make([]float32, steps)
	phase := 0.0
	for i := range out {
		l := level
		if left := steps - i; left < ramp {
			l = level * float64(left) / float64(ramp)
		}
		out[i] = float32(math.Sin(2*math.Pi*phase) * l)
		_, phase = math.Modf(phase + step)
	}
	return out
}

// loadMP3Samples decodes a whole mp3 file to mono float samples
func loadMP3Samples(fName string) ([]float32, float64, error) {
	decoder, err := mpg123.NewDecoder("")
	if err != nil {
		return nil, 0, errors.Wrap(err, "mpg123 decoder")
	}
	defer decoder.Delete()

	if err = decoder.Open(fName); err != nil {
		return nil, 0, errors.Wrapf(err, "open %s", fName)
	}
	defer decoder.Close()

	// get audio format information
	rate, channels, _ := decoder.GetFormat()
	if channels < 1 {
		return nil, 0, errors.Errorf("%s: no audio channels", fName)
	}

	// make sure output format does not change
	decoder.FormatNone()
	decoder.Format(rate, channels, mpg123.ENC_SIGNED_16)

	var pcm []byte
	buf := make([]byte, 8192)
	for {
		n, err := decoder.Read(buf)
		pcm = append(pcm, buf[:n]...)
		if err != nil || n == 0 {
			break
		}
	}

	frame := 2 * channels
	samples := make([]float32, 0, len(pcm)/frame)
	for i := 0; i+frame <= len(pcm); i += frame {
		// left channel only
		v := int16(binary.LittleEndian.Uint16(pcm[i:]))
		samples = append(samples, float32(v)/math.MaxInt16)
	}
	if len(samples) == 0 {
		return nil, 0, errors.Errorf("%s: no samples decoded", fName)
	}
	return samples, float64(rate), nil
}

type realClicks struct {
	mu      sync.Mutex
	playing bool
	samples []float32
	rate    float64
}

// click plays the sample in the background; clicks that land while one is
// still playing are dropped
func (rc *realClicks) click(rt runtimeConfig) {
	rc.mu.Lock()
	if rc.playing {
		rc.mu.Unlock()
		return
	}
	rc.playing = true
	rc.mu.Unlock()

	go func() {
		defer func() {
			rc.mu.Lock()
			rc.playing = false
			rc.mu.Unlock()
		}()
		if err := rc.play(); err != nil {
			rt.logger.Printf("click: %v", err)
		}
	}()
}

type clickPlayback struct {
	samples []float32
	pos     int
	done    chan struct{}
}

func (cp *clickPlayback) processAudio(out [][]float32) {
	for i := range out[0] {
		var val float32
		if cp.pos < len(cp.samples) {
			val = cp.samples[cp.pos]
			cp.pos++
		} else if cp.pos == len(cp.samples) {
			cp.pos++
			close(cp.done)
		}
		out[0][i] = val // L
		out[1][i] = val // R
	}
}

func (rc *realClicks) play() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	cp := &clickPlayback{samples: rc.samples, done: make(chan struct{})}
	stream, err := portaudio.OpenDefaultStream(0, 2, rc.rate, 0, cp.processAudio)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	<-cp.done
	return stream.Stop()
}
