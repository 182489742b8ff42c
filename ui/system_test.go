package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/engine"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/input"
	"github.com/lixenwraith/invader/render"
)

const menuDoc = `
elements:
  - type: vgroup
    name: menu
    sprite: panel
    width: 50%
    height: fill
    x: center
  - type: label
    name: title
    text: INVADER
    font: big
    height: 1
  - type: field
    name: nick
    sprite: box
    font: mono
    height: 1
  - type: button
    name: start
    sprite: btn
    pressed: btn_down
    width: 10
    height: 3
    x: center
  - type: end
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(menuDoc))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 5)

	comps := doc.Components(0)
	assert.Equal(t, KindVerticalGroup, comps[0].Kind)
	assert.Equal(t, Constraint{Width: Proportion(0.5), Height: Fill(), X: Center(), Y: Start()}, comps[0].Constraint)
	assert.Equal(t, "btn_down", comps[3].PressedSprite)
	assert.Equal(t, KindGroupEnd, comps[4].Kind)
	for i, c := range comps {
		assert.Equal(t, i, c.Order)
	}
}

func TestParseDocumentRejectsMalformed(t *testing.T) {
	_, err := ParseDocument([]byte("elements:\n  - type: end\n"))
	assert.ErrorIs(t, err, ErrUnbalancedGroup)

	_, err = ParseDocument([]byte("elements:\n  - type: hgroup\n"))
	assert.ErrorIs(t, err, ErrUnclosedGroup)

	_, err = ParseDocument([]byte("elements:\n  - type: slider\n"))
	assert.ErrorContains(t, err, "slider")

	_, err = ParseDocument([]byte("elements:\n  - type: label\n    width: huge\n"))
	assert.Error(t, err)
}

type uiHarness struct {
	world  *engine.World
	disp   *engine.Dispatcher
	system *System
	rec    *render.Recorder
	source *input.ScriptedSource
	events *event.Queue[Event]
}

func newHarness(t *testing.T, doc string, frames ...[]input.Event) *uiHarness {
	t.Helper()
	w := engine.NewWorld()
	events := event.NewQueue[Event]()
	engine.AddResource(w.Resources, event.NewQueue[input.Event]())
	engine.AddResource(w.Resources, events)
	engine.AddResource(w.Resources, input.NewKeysResource())
	engine.AddResource(w.Resources, engine.NewAppState())
	engine.AddResource(w.Resources, render.NewCameraResource(core.Size{W: 80, H: 24}))

	d, err := ParseDocument([]byte(doc))
	require.NoError(t, err)
	_, err = Spawn(w, d)
	require.NoError(t, err)
	w.Commit()

	rec := render.NewRecorder()
	src := input.NewScriptedSource(frames...)
	sys := NewSystem(rec, nil)
	disp, err := engine.NewBuilder(w).
		AddPinned(input.NewSystem(src, nil)).
		AddPinned(render.NewBeginSystem(rec)).
		AddPinned(sys).
		AddPinned(render.NewPresentSystem(rec)).
		Build()
	require.NoError(t, err)
	return &uiHarness{world: w, disp: disp, system: sys, rec: rec, source: src, events: events}
}

func TestSystemRunsDocumentEachFrame(t *testing.T) {
	h := newHarness(t, menuDoc,
		[]input.Event{input.PointerDown(20, 1), input.KeyDown(input.KeyShift), input.KeyDown(input.KeyA)},
		[]input.Event{input.KeyUp(input.KeyShift), input.KeyDown(input.KeyB), input.PointerDown(39, 3)},
		nil,
	)

	require.NoError(t, h.disp.Dispatch())
	ps := h.system.Placements()
	require.Len(t, ps, 4)
	assert.Equal(t, core.Rect{X: 20, Y: 0, W: 40, H: 24}, ps[0].Rect)
	assert.Equal(t, core.Rect{X: 20, Y: 1, W: 40, H: 1}, ps[2].Rect)
	assert.Equal(t, core.Rect{X: 35, Y: 2, W: 10, H: 3}, ps[3].Rect)
	assert.Equal(t, []Event{TextChanged("nick", "A")}, h.events.Events())

	require.NoError(t, h.disp.Dispatch())
	assert.Equal(t, []Event{TextChanged("nick", "Ab"), ButtonPressed("start")}, h.events.Events(),
		"previous frame's events are cleared before the pass")
	assert.Equal(t, "btn_down", h.rec.LastFrame()[4].Key)

	require.NoError(t, h.disp.Dispatch())
	assert.Equal(t, 0, h.events.Len())
	assert.Equal(t, uint64(3), h.events.Clears())

	nick := findElement(t, h.world, "nick")
	assert.Equal(t, "Ab", nick.Text)
	assert.False(t, nick.Captured, "the pointer-down on the button released the field")
}

func TestSystemFollowsOrderNotInsertion(t *testing.T) {
	w := engine.NewWorld()
	engine.AddResource(w.Resources, event.NewQueue[input.Event]())
	engine.AddResource(w.Resources, event.NewQueue[Event]())
	engine.AddResource(w.Resources, input.NewKeysResource())
	engine.AddResource(w.Resources, render.NewCameraResource(core.Size{W: 10, H: 10}))

	second := w.CreateEntity()
	require.NoError(t, engine.Attach(w, second, ElementComponent{Name: "second", Kind: KindLabel, Order: 1, Constraint: box(Fill(), Pixels(2))}))
	first := w.CreateEntity()
	require.NoError(t, engine.Attach(w, first, ElementComponent{Name: "first", Kind: KindLabel, Order: 0, Constraint: box(Fill(), Pixels(2))}))
	w.Commit()

	rec := render.NewRecorder()
	sys := NewSystem(rec, nil)
	d, err := engine.NewBuilder(w).AddPinned(sys).Build()
	require.NoError(t, err)
	require.NoError(t, d.Dispatch())

	ps := sys.Placements()
	require.Len(t, ps, 2)
	assert.Equal(t, "first", ps[0].Name)
	assert.Equal(t, 0, ps[0].Rect.Y)
	assert.Equal(t, 2, ps[1].Rect.Y)
}

func TestSystemFailsOnMalformedWorld(t *testing.T) {
	h := newHarness(t, "elements: []\n")
	e := h.world.CreateEntity()
	require.NoError(t, engine.Attach(h.world, e, ElementComponent{Kind: KindGroupEnd}))
	h.world.Commit()

	err := h.disp.Dispatch()
	assert.ErrorIs(t, err, ErrUnbalancedGroup)
}

func findElement(t *testing.T, w *engine.World, name string) *ElementComponent {
	t.Helper()
	table, err := engine.TableOf[ElementComponent](w)
	require.NoError(t, err)
	var found *ElementComponent
	table.Each(func(_ core.Entity, el *ElementComponent) {
		if el.Name == name {
			found = el
		}
	})
	require.NotNil(t, found, name)
	return found
}
