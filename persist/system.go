package persist

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/invader/component"
	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/network"
	"github.com/lixenwraith/invader/physics"
)

// System drains the persistence request queue once per frame
// I/O failures are logged and the request is skipped. Requests queued after a
// successful load are pushed back for the next frame
type System struct {
	log     *zap.Logger
	stageID string // Identity of the stage last loaded or saved
}

// NewSystem creates the persist system
func NewSystem(log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{log: log.Named("persist")}
}

func (s *System) Name() string { return "persist" }

func (s *System) Access() engine.Access {
	return engine.Access{Writes: []engine.Key{
		engine.ResourceKey[*event.Queue[Request]](),
		engine.ResourceKey[*physics.World](),
		engine.TableKey[component.StageComponent](),
		engine.TableKey[component.TransformComponent](),
		engine.TableKey[component.SpriteComponent](),
		engine.TableKey[component.TextComponent](),
		engine.TableKey[physics.BodyComponent](),
		engine.TableKey[physics.ColliderComponent](),
		engine.TableKey[network.ReplicatedComponent](),
	}}
}

// tables groups the component tables a stage touches
type tables struct {
	stage      *engine.Store[component.StageComponent]
	transforms *engine.Store[component.TransformComponent]
	sprites    *engine.Store[component.SpriteComponent]
	texts      *engine.Store[component.TextComponent]
	bodies     *engine.Store[physics.BodyComponent]
	colliders  *engine.Store[physics.ColliderComponent]
	replicated *engine.Store[network.ReplicatedComponent]
}

func (s *System) Run(v *engine.View) error {
	queue := engine.Write[*event.Queue[Request]](v)
	requests := queue.Drain()
	if len(requests) == 0 {
		return nil
	}
	pw := engine.Write[*physics.World](v)
	t := tables{
		stage:      engine.WriteTable[component.StageComponent](v),
		transforms: engine.WriteTable[component.TransformComponent](v),
		sprites:    engine.WriteTable[component.SpriteComponent](v),
		texts:      engine.WriteTable[component.TextComponent](v),
		bodies:     engine.WriteTable[physics.BodyComponent](v),
		colliders:  engine.WriteTable[physics.ColliderComponent](v),
		replicated: engine.WriteTable[network.ReplicatedComponent](v),
	}

	for i, req := range requests {
		var err error
		switch req.Kind {
		case RequestSave:
			err = s.save(req.Path, pw, &t)
		case RequestLoad:
			err = s.load(req.Path, v.World(), pw, &t)
		}
		if err != nil {
			s.log.Warn("persist request skipped", zap.Stringer("request", req), zap.Error(err))
			continue
		}
		// A loaded stage only becomes visible at commit; later requests wait a frame
		if req.Kind == RequestLoad && i+1 < len(requests) {
			for _, rest := range requests[i+1:] {
				queue.Push(rest)
			}
			s.log.Debug("persist requests deferred", zap.Int("count", len(requests)-i-1))
			return nil
		}
	}
	return nil
}

func (s *System) save(path string, pw *physics.World, t *tables) error {
	sf := &StageFile{ID: s.stageID, Saved: time.Now().UTC()}
	t.stage.Each(func(e core.Entity, _ *component.StageComponent) {
		var rec StageEntity
		if c, ok := t.transforms.Get(e); ok {
			tr := *c
			rec.Transform = &tr
		}
		if c, ok := t.sprites.Get(e); ok {
			sp := *c
			rec.Sprite = &sp
		}
		if c, ok := t.texts.Get(e); ok {
			tx := *c
			rec.Text = &tx
		}
		if c, ok := t.replicated.Get(e); ok {
			r := *c
			rec.Replicated = &r
		}
		if c, ok := t.bodies.Get(e); ok {
			if b, ok := pw.ReadRigidBody(c.Handle); ok {
				rec.Body = bodyRecord(b)
			}
		}
		if c, ok := t.colliders.Get(e); ok {
			if col, ok := pw.ReadCollider(c.Handle); ok {
				rec.Collider = colliderRecord(col)
			}
		}
		sf.Entities = append(sf.Entities, rec)
	})

	if err := WriteStage(path, sf); err != nil {
		return err
	}
	s.stageID = sf.ID
	s.log.Info("stage saved", zap.String("path", path), zap.String("id", sf.ID), zap.Int("entities", len(sf.Entities)))
	return nil
}

// load replaces every stage entity with the file contents
// Old entities are destroyed at commit; new ones appear at the same commit
func (s *System) load(path string, w *engine.World, pw *physics.World, t *tables) error {
	sf, err := ReadStage(path)
	if err != nil {
		return err
	}

	for _, e := range t.stage.Entities() {
		if c, ok := t.bodies.Get(e); ok {
			pw.RemoveRigidBody(c.Handle)
		}
		if c, ok := t.colliders.Get(e); ok {
			pw.RemoveCollider(c.Handle)
		}
		w.DestroyEntity(e)
	}

	for i, rec := range sf.Entities {
		e := w.CreateEntity()
		if err := s.spawn(w, pw, e, rec); err != nil {
			s.log.Warn("stage entity incomplete", zap.Int("index", i), zap.Error(err))
		}
	}

	s.stageID = sf.ID
	s.log.Info("stage loaded", zap.String("path", path), zap.String("id", sf.ID), zap.Int("entities", len(sf.Entities)))
	return nil
}

func (s *System) spawn(w *engine.World, pw *physics.World, e core.Entity, rec StageEntity) error {
	if err := engine.Attach(w, e, component.StageComponent{}); err != nil {
		return err
	}
	if rec.Transform != nil {
		if err := engine.Attach(w, e, *rec.Transform); err != nil {
			return err
		}
	}
	if rec.Sprite != nil {
		if err := engine.Attach(w, e, *rec.Sprite); err != nil {
			return err
		}
	}
	if rec.Text != nil {
		if err := engine.Attach(w, e, *rec.Text); err != nil {
			return err
		}
	}
	if rec.Replicated != nil {
		if err := engine.Attach(w, e, *rec.Replicated); err != nil {
			return err
		}
	}

	// Colliders need the body registered first; a collider without a body is dropped
	if rec.Body == nil {
		return nil
	}
	body, err := rec.Body.body()
	if err != nil {
		return err
	}
	bh := pw.RegisterRigidBody(body)
	if err := engine.Attach(w, e, physics.BodyComponent{Handle: bh}); err != nil {
		return err
	}
	if rec.Collider == nil {
		return nil
	}
	col, err := rec.Collider.collider(bh)
	if err != nil {
		return err
	}
	ch, err := pw.RegisterCollider(col)
	if err != nil {
		return err
	}
	return engine.Attach(w, e, physics.ColliderComponent{Handle: ch})
}
