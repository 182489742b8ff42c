package input

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/render"
)

// System pulls backend events into the input queue each frame
// It is the only producer and the clearer of the input queue
type System struct {
	source Source
	log    *zap.Logger
}

// NewSystem creates the input polling system
func NewSystem(source Source, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{source: source, log: log.Named("input")}
}

func (s *System) Name() string { return "input" }

func (s *System) Access() engine.Access {
	return engine.Access{Writes: []engine.Key{
		engine.ResourceKey[*event.Queue[Event]](),
		engine.ResourceKey[*KeysResource](),
		engine.ResourceKey[*engine.AppState](),
		engine.ResourceKey[*render.CameraResource](),
	}}
}

func (s *System) Run(v *engine.View) error {
	queue := engine.Write[*event.Queue[Event]](v)
	keys := engine.Write[*KeysResource](v)
	state := engine.Write[*engine.AppState](v)
	cam := engine.Write[*render.CameraResource](v)

	queue.Clear()
	for _, ev := range s.source.Poll() {
		queue.Push(ev)
		switch ev.Type {
		case EventKeyDown:
			keys.Press(ev.Key)
		case EventKeyUp:
			keys.Release(ev.Key)
		case EventResize:
			cam.Screen = core.Size{W: ev.Size.W, H: ev.Size.H}
			s.log.Debug("screen resized", zap.Int("w", ev.Size.W), zap.Int("h", ev.Size.H))
		case EventQuit:
			s.log.Info("quit requested")
			state.Stop()
		}
	}
	return nil
}
