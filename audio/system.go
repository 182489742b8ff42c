package audio

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/invader/engine"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/ui"
)

// System turns sound requests and UI feedback into mixer voices
// It runs before the UI pass, so UI events seen here belong to the previous frame
type System struct {
	mixer *Mixer
	log   *zap.Logger
}

// NewSystem creates the audio system; a nil mixer discards all sounds
func NewSystem(mixer *Mixer, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{mixer: mixer, log: log.Named("audio")}
}

func (s *System) Name() string { return "audio" }

func (s *System) Access() engine.Access {
	return engine.Access{
		Reads: []engine.Key{
			engine.ResourceKey[*event.Queue[ui.Event]](),
		},
		Writes: []engine.Key{
			engine.ResourceKey[*event.Queue[Request]](),
		},
	}
}

func (s *System) Run(v *engine.View) error {
	requests := engine.Write[*event.Queue[Request]](v).Drain()
	if s.mixer == nil {
		return nil
	}

	for _, ev := range engine.Read[*event.Queue[ui.Event]](v).Events() {
		switch ev.Type {
		case ui.EventButtonPressed:
			s.play(SoundClick)
		case ui.EventTextChanged:
			s.play(SoundTick)
		}
	}
	for _, r := range requests {
		s.play(r.Sound)
	}
	return nil
}

func (s *System) play(snd Sound) {
	if !s.mixer.Play(snd) {
		s.log.Debug("sound dropped", zap.Stringer("sound", snd))
	}
}
