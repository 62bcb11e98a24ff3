package game

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"powergrid/internal/config"
)

// hum is an endless sine streamer used as the hover cue. The speaker
// goroutine reads gain while the game loop writes it, hence the mutex.
type hum struct {
	freq  float64
	rate  beep.SampleRate
	phase float64

	mu   sync.RWMutex
	gain float64
}

func newHum(freq float64, rate beep.SampleRate) *hum {
	return &hum{freq: freq, rate: rate}
}

func (h *hum) Stream(samples [][2]float64) (int, bool) {
	h.mu.RLock()
	gain := h.gain
	h.mu.RUnlock()

	for i := range samples {
		v := math.Sin(2*math.Pi*h.phase) * gain * config.HumVolume
		samples[i][0] = v
		samples[i][1] = v
		h.phase += h.freq / float64(h.rate)
		h.phase -= math.Floor(h.phase) // keep in [0, 1)
	}
	return len(samples), true
}

func (h *hum) Err() error { return nil }

// setGain sets the hum loudness; the game loop feeds it the current
// intensity so the hum swells and fades with the wave.
func (h *hum) setGain(g float64) {
	h.mu.Lock()
	h.gain = g
	h.mu.Unlock()
}

// startHum initializes the speaker and starts the hover hum at zero gain.
func startHum() (*hum, error) {
	rate := beep.SampleRate(config.HumSampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, err
	}
	h := newHum(config.HumFrequency, rate)
	speaker.Play(h)
	return h, nil
}
