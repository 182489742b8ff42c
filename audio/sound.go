// Package audio synthesizes short feedback sounds and mixes them into one beep stream.
//
// The mixer is the single output streamer. The executable hands it to the speaker;
// tests stream it directly.
package audio

import "fmt"

// Sound identifies a synthesized effect
type Sound int

const (
	SoundClick Sound = iota // Button pressed
	SoundTick               // Text changed
	SoundError              // Rejected request
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundClick:
		return "click"
	case SoundTick:
		return "tick"
	case SoundError:
		return "error"
	default:
		return fmt.Sprintf("sound(%d)", int(s))
	}
}

// Request asks the audio system to play a sound this frame
type Request struct {
	Sound Sound
}

// Play builds a request for s
func Play(s Sound) Request {
	return Request{Sound: s}
}

// Config holds synthesis parameters
type Config struct {
	SampleRate int
	Volume     float64 // Master volume in [0, 1]
}

// DefaultConfig returns 44.1kHz at half volume
func DefaultConfig() *Config {
	return &Config{SampleRate: 44100, Volume: 0.5}
}
