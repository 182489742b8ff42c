package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
)

// maxVoices bounds concurrently playing sounds; extra plays are dropped
const maxVoices = 16

// Mixer is the single output streamer; Play may be called from any goroutine
// while the speaker streams it from its own
type Mixer struct {
	mu    sync.Mutex
	mixer beep.Mixer
	cfg   *Config

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewMixer creates a mixer that streams silence when idle
func NewMixer(cfg *Config) *Mixer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Mixer{cfg: cfg}
}

// SampleRate returns the rate every sound is synthesized at
func (m *Mixer) SampleRate() beep.SampleRate {
	return beep.SampleRate(m.cfg.SampleRate)
}

// Play synthesizes s and adds it to the mix
func (m *Mixer) Play(s Sound) bool {
	st := SoundEffect(s, m.cfg)
	if st == nil {
		m.dropped.Add(1)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mixer.Len() >= maxVoices {
		m.dropped.Add(1)
		return false
	}
	m.mixer.Add(st)
	m.played.Add(1)
	return true
}

// Active returns the number of sounds still playing
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Stream(samples)
}

func (m *Mixer) Err() error { return nil }

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	return m.played.Load(), m.dropped.Load()
}
