package input

// Source is a backend that yields the input events observed since the last poll
// Poll never blocks
type Source interface {
	Poll() []Event
}

// ScriptedSource replays a fixed per-frame event script
// Frames past the end of the script yield nothing
type ScriptedSource struct {
	frames [][]Event
	next   int
}

// NewScriptedSource creates a source that yields frames[i] on the i-th poll
func NewScriptedSource(frames ...[]Event) *ScriptedSource {
	return &ScriptedSource{frames: frames}
}

func (s *ScriptedSource) Poll() []Event {
	if s.next >= len(s.frames) {
		return nil
	}
	evs := s.frames[s.next]
	s.next++
	return evs
}
