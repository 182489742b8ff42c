package network

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/invader/component"
	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
)

// System exchanges replicated entity placement with a transport
// A nil transport makes the step a no-op
type System struct {
	transport Transport
	sendEvery int64
	log       *zap.Logger

	// Last applied frame per ID, older snapshots are ignored
	seen map[uuid.UUID]int64
}

// NewSystem creates the netsync step; sendEvery below 1 sends every frame
func NewSystem(t Transport, sendEvery int, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	if sendEvery < 1 {
		sendEvery = 1
	}
	return &System{
		transport: t,
		sendEvery: int64(sendEvery),
		log:       log.Named("netsync"),
		seen:      make(map[uuid.UUID]int64),
	}
}

func (s *System) Name() string { return "netsync" }

func (s *System) Access() engine.Access {
	return engine.Access{
		Reads: []engine.Key{
			engine.ResourceKey[*engine.TimeResource](),
			engine.TableKey[ReplicatedComponent](),
		},
		Writes: []engine.Key{
			engine.TableKey[component.TransformComponent](),
		},
	}
}

func (s *System) Run(v *engine.View) error {
	if s.transport == nil {
		return nil
	}
	frame := engine.Read[*engine.TimeResource](v).Frame
	replicated := engine.ReadTable[ReplicatedComponent](v)
	transforms := engine.WriteTable[component.TransformComponent](v)

	if inbound := s.transport.Receive(); len(inbound) > 0 {
		s.apply(inbound, replicated, transforms)
	}

	if frame%s.sendEvery != 0 {
		return nil
	}
	snap := Snapshot{Frame: frame}
	engine.Each2(replicated, transforms, func(_ core.Entity, r *ReplicatedComponent, tr *component.TransformComponent) {
		if !r.Owner {
			return
		}
		snap.Entities = append(snap.Entities, EntityState{
			ID:       r.ID,
			X:        tr.Pos.X,
			Y:        tr.Pos.Y,
			Rotation: tr.Rotation,
		})
	})
	if len(snap.Entities) == 0 {
		return nil
	}
	if err := s.transport.Send(snap); err != nil {
		s.log.Warn("snapshot send failed", zap.Int64("frame", frame), zap.Error(err))
	}
	return nil
}

// apply writes inbound states into non-owned copies, ignoring stale frames
func (s *System) apply(inbound []Snapshot, replicated *engine.Store[ReplicatedComponent], transforms *engine.Store[component.TransformComponent]) {
	latest := make(map[uuid.UUID]EntityState)
	for _, snap := range inbound {
		for _, st := range snap.Entities {
			if last, ok := s.seen[st.ID]; ok && snap.Frame < last {
				continue
			}
			s.seen[st.ID] = snap.Frame
			latest[st.ID] = st
		}
	}

	replicated.Each(func(e core.Entity, r *ReplicatedComponent) {
		if r.Owner {
			return
		}
		st, ok := latest[r.ID]
		if !ok {
			return
		}
		tr, ok := transforms.Get(e)
		if !ok {
			return
		}
		tr.Pos = core.Vec2{X: st.X, Y: st.Y}
		tr.Rotation = st.Rotation
	})
}
