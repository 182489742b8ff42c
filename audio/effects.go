package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	clickDuration = 40 * time.Millisecond
	clickAttack   = 2 * time.Millisecond
	clickRelease  = 30 * time.Millisecond

	tickDuration = 15 * time.Millisecond
	tickAttack   = 1 * time.Millisecond
	tickRelease  = 10 * time.Millisecond

	errorDuration = 120 * time.Millisecond
	errorAttack   = 5 * time.Millisecond
	errorRelease  = 60 * time.Millisecond
)

// oscillator generates one waveform for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a mono-duplicated oscillator lasting duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1.0
			if o.phase < 0.5 {
				val = 1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with linear attack and release ramps
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	sustain  int
	total    int
}

// NewEnvelope wraps s in an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer: s,
		attack:   att,
		release:  rel,
		sustain:  max(total-att-rel, 0),
		total:    total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= e.attack+e.sustain {
			vol = max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; zero and below is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// ClickSound is a short square blip followed by its octave
func ClickSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	low := NewEnvelope(NewOscillator(660, clickDuration/2, WaveSquare, rate), clickDuration/2, clickAttack, clickRelease/2, rate)
	high := NewEnvelope(NewOscillator(1320, clickDuration/2, WaveSquare, rate), clickDuration/2, clickAttack, clickRelease/2, rate)

	return newVolume(beep.Seq(low, high), 0.6*cfg.Volume)
}

// TickSound is a faint sine tick for typing
func TickSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(2000, tickDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, tickDuration, tickAttack, tickRelease, rate)
	return newVolume(shaped, 0.3*cfg.Volume)
}

// ErrorSound is a low saw buzz mixed with noise
func ErrorSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	saw := NewEnvelope(NewOscillator(110, errorDuration, WaveSaw, rate), errorDuration, errorAttack, errorRelease, rate)
	noise := NewEnvelope(NewOscillator(0, errorDuration, WaveNoise, rate), errorDuration, errorAttack, errorRelease, rate)

	mixed := beep.Mix(newVolume(saw, 0.8), newVolume(noise, 0.2))
	return newVolume(mixed, cfg.Volume)
}

// SoundEffect returns a fresh streamer for s, or nil for an unknown sound
func SoundEffect(s Sound, cfg *Config) beep.Streamer {
	switch s {
	case SoundClick:
		return ClickSound(cfg)
	case SoundTick:
		return TickSound(cfg)
	case SoundError:
		return ErrorSound(cfg)
	default:
		return nil
	}
}
