package engine

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/invader/status"
)

// ClampDelta returns elapsed, or zero once the frame ran past twice its target
// A zero delta keeps time-integrating systems from jumping after a stall
func ClampDelta(elapsed, target time.Duration) time.Duration {
	if elapsed > 2*target {
		return 0
	}
	return elapsed
}

// LoopConfig configures the fixed-rate frame loop
type LoopConfig struct {
	Target    time.Duration // Frame budget, 1/60 s by default
	Clock     Clock
	Logger    *zap.Logger
	Metrics   *status.Registry
	MaxFrames int64 // Zero runs until AppState stops
}

// Loop drives dispatch and commit at a fixed target rate
type Loop struct {
	world      *World
	dispatcher *Dispatcher
	cfg        LoopConfig
	log        *zap.Logger

	time  *TimeResource
	state *AppState
	last  time.Time

	frames  *atomic.Int64
	clamped *atomic.Int64
	deltaMs *status.AtomicFloat
}

// NewLoop prepares a loop; Time and AppState resources are installed if missing
func NewLoop(w *World, d *Dispatcher, cfg LoopConfig) *Loop {
	if cfg.Target <= 0 {
		cfg.Target = time.Second / 60
	}
	if cfg.Clock == nil {
		cfg.Clock = NewTimeProvider()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = status.NewRegistry()
	}

	tr, ok := GetResource[*TimeResource](w.Resources)
	if !ok {
		tr = &TimeResource{}
		AddResource(w.Resources, tr)
	}
	st, ok := GetResource[*AppState](w.Resources)
	if !ok {
		st = NewAppState()
		AddResource(w.Resources, st)
	}
	d.SetMetrics(cfg.Metrics)

	return &Loop{
		world:      w,
		dispatcher: d,
		cfg:        cfg,
		log:        cfg.Logger.Named("loop"),
		time:       tr,
		state:      st,
		frames:     cfg.Metrics.Int("engine.frames"),
		clamped:    cfg.Metrics.Int("engine.clamped"),
		deltaMs:    cfg.Metrics.Float("engine.delta_ms"),
	}
}

// Run iterates until AppState stops, ctx is cancelled or a system fails
// Cancellation is folded into AppState so the frame in progress always completes
func (l *Loop) Run(ctx context.Context) error {
	l.last = l.cfg.Clock.Now()
	l.log.Info("loop started", zap.Duration("target", l.cfg.Target))
	for {
		if ctx.Err() != nil {
			l.state.Stop()
		}
		if !l.state.Running() {
			l.log.Info("loop stopped", zap.Int64("frames", l.frames.Load()))
			return nil
		}
		if err := l.Step(); err != nil {
			l.log.Error("frame failed", zap.Int64("frame", l.time.Frame), zap.Error(err))
			return err
		}
		if l.cfg.MaxFrames > 0 && l.frames.Load() >= l.cfg.MaxFrames {
			l.state.Stop()
		}
	}
}

// Step waits out the frame budget, publishes the delta, dispatches and commits
func (l *Loop) Step() error {
	if l.last.IsZero() {
		l.last = l.cfg.Clock.Now()
	}
	now := l.cfg.Clock.Now()
	elapsed := now.Sub(l.last)
	for elapsed < l.cfg.Target {
		runtime.Gosched()
		now = l.cfg.Clock.Now()
		elapsed = now.Sub(l.last)
	}
	l.last = now

	delta := ClampDelta(elapsed, l.cfg.Target)
	if delta == 0 {
		l.clamped.Add(1)
		l.log.Debug("frame overrun, delta clamped", zap.Duration("elapsed", elapsed))
	}
	l.time.advance(delta)
	l.deltaMs.Set(float64(delta) / float64(time.Millisecond))

	if err := l.dispatcher.Dispatch(); err != nil {
		return err
	}
	l.world.Commit()
	l.frames.Add(1)
	return nil
}
