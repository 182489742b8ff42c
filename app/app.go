// Package app wires the world, its resources and the subsystem graph into a runnable loop.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/invader/audio"
	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/input"
	"github.com/lixenwraith/invader/network"
	"github.com/lixenwraith/invader/persist"
	"github.com/lixenwraith/invader/physics"
	"github.com/lixenwraith/invader/render"
	"github.com/lixenwraith/invader/status"
	"github.com/lixenwraith/invader/ui"
)

// Deps are the collaborators an App runs against
// Nil fields fall back to headless implementations
type Deps struct {
	Backend   render.Backend
	Input     input.Source
	Transport network.Transport
	Mixer     *audio.Mixer
	Clock     engine.Clock
	Logger    *zap.Logger
	Metrics   *status.Registry
}

// Builder collects startup content before the world is built
type Builder struct {
	screen    core.Size
	target    time.Duration
	frames    int64
	sendEvery int
	stage     string
	document  *ui.Document
	docPath   string
	sprites   []sprite
}

type sprite struct {
	key   string
	style render.SpriteStyle
}

func NewBuilder() *Builder {
	return &Builder{
		screen:    core.Size{W: 800, H: 600},
		target:    time.Second / 60,
		sendEvery: 1,
	}
}

// Screen sets the initial camera screen size
func (b *Builder) Screen(w, h int) *Builder {
	b.screen = core.Size{W: w, H: h}
	return b
}

// Target sets the frame period
func (b *Builder) Target(d time.Duration) *Builder {
	b.target = d
	return b
}

// Frames stops the loop after n frames; zero runs until quit
func (b *Builder) Frames(n int64) *Builder {
	b.frames = n
	return b
}

// SendEvery sets the frames between outbound replication snapshots
func (b *Builder) SendEvery(n int) *Builder {
	b.sendEvery = n
	return b
}

// Stage queues a load of the stage file for the first frame
func (b *Builder) Stage(path string) *Builder {
	b.stage = path
	return b
}

// Sprite registers a sprite appearance with the backend at build
// A later registration of the same key wins
func (b *Builder) Sprite(key string, style render.SpriteStyle) *Builder {
	b.sprites = append(b.sprites, sprite{key: key, style: style})
	return b
}

// Document spawns the UI document at path
func (b *Builder) Document(path string) *Builder {
	b.docPath = path
	return b
}

// DocumentData spawns an already parsed UI document
func (b *Builder) DocumentData(d *ui.Document) *Builder {
	b.document = d
	return b
}

// App is a built world ready to run
type App struct {
	World      *engine.World
	Dispatcher *engine.Dispatcher
	Loop       *engine.Loop
	UI         *ui.System
	Metrics    *status.Registry

	transport network.Transport
	log       *zap.Logger
}

// Build creates the world, installs resources, spawns startup content and
// resolves the subsystem graph; graph conflicts fail here, before any frame runs
func (b *Builder) Build(deps Deps) (*App, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Backend == nil {
		deps.Backend = render.NewRecorder()
	}
	if deps.Input == nil {
		deps.Input = input.NewScriptedSource()
	}
	if deps.Metrics == nil {
		deps.Metrics = status.NewRegistry()
	}
	if len(b.sprites) > 0 {
		sheet, ok := deps.Backend.(render.SpriteSheet)
		if !ok {
			return nil, fmt.Errorf("backend %T takes no sprite registrations", deps.Backend)
		}
		for _, s := range b.sprites {
			sheet.RegisterSprite(s.key, s.style)
		}
	}

	w := engine.NewWorld()
	installResources(w, b.screen, deps.Metrics)

	doc := b.document
	if b.docPath != "" {
		d, err := ui.LoadDocument(b.docPath)
		if err != nil {
			return nil, fmt.Errorf("ui document: %w", err)
		}
		doc = d
	}
	if doc != nil {
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("ui document: %w", err)
		}
		if _, err := ui.Spawn(w, doc); err != nil {
			return nil, fmt.Errorf("spawn ui: %w", err)
		}
	}
	if b.stage != "" {
		engine.MustGetResource[*event.Queue[persist.Request]](w.Resources).Push(persist.LoadStage(b.stage))
	}
	w.Commit()

	uiSys := ui.NewSystem(deps.Backend, log)
	d, err := engine.NewBuilder(w).
		Add(persist.NewSystem(log)).
		Add(network.NewSystem(deps.Transport, b.sendEvery, log), "persist").
		Add(physics.NewSystem(), "netsync").
		AddPinned(input.NewSystem(deps.Input, log)).
		AddPinned(audio.NewSystem(deps.Mixer, log)).
		AddPinned(render.NewBeginSystem(deps.Backend)).
		AddPinned(render.NewSceneSystem(deps.Backend)).
		AddPinned(uiSys).
		AddPinned(render.NewPresentSystem(deps.Backend)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build systems: %w", err)
	}

	loop := engine.NewLoop(w, d, engine.LoopConfig{
		Target:    b.target,
		Clock:     deps.Clock,
		Logger:    log,
		Metrics:   deps.Metrics,
		MaxFrames: b.frames,
	})

	log.Info("app built",
		zap.Strings("pinned", d.Pinned()),
		zap.Int("stages", len(d.Stages())),
		zap.Int("entities", w.EntityCount()))

	return &App{
		World:      w,
		Dispatcher: d,
		Loop:       loop,
		UI:         uiSys,
		Metrics:    deps.Metrics,
		transport:  deps.Transport,
		log:        log,
	}, nil
}

func installResources(w *engine.World, screen core.Size, metrics *status.Registry) {
	rs := w.Resources
	engine.AddResource(rs, &engine.TimeResource{})
	engine.AddResource(rs, engine.NewAppState())
	engine.AddResource(rs, render.NewCameraResource(screen))
	engine.AddResource(rs, input.NewKeysResource())
	engine.AddResource(rs, event.NewQueue[input.Event]())
	engine.AddResource(rs, event.NewQueue[ui.Event]())
	engine.AddResource(rs, event.NewQueue[persist.Request]())
	engine.AddResource(rs, event.NewQueue[audio.Request]())
	engine.AddResource(rs, physics.NewWorld())
	engine.AddResource(rs, metrics)
}

// Run drives the loop until quit, ctx cancellation, the frame limit or a system failure
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if a.transport != nil {
			if err := a.transport.Close(); err != nil {
				a.log.Warn("transport close failed", zap.Error(err))
			}
		}
	}()
	return a.Loop.Run(ctx)
}

// Stop requests loop termination after the current frame
func (a *App) Stop() {
	engine.MustGetResource[*engine.AppState](a.World.Resources).Stop()
}
