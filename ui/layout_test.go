package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/input"
	"github.com/lixenwraith/invader/render"
)

var screen = core.Size{W: 80, H: 24}

func items(els ...ElementComponent) []Item {
	out := make([]Item, len(els))
	for i := range els {
		el := els[i]
		out[i] = Item{Entity: core.NewEntity(uint32(i), 0), Element: &el}
	}
	return out
}

func rects(ps []Placement) []core.Rect {
	out := make([]core.Rect, len(ps))
	for i, p := range ps {
		out[i] = p.Rect
	}
	return out
}

func box(w, h Size) Constraint {
	return Constraint{Width: w, Height: h}
}

func run(t *testing.T, its []Item, in ...input.Event) ([]Placement, []Event, *render.Recorder) {
	t.Helper()
	rec := render.NewRecorder()
	out := event.NewQueue[Event]()
	rec.BeginFrame()
	ps, err := Layout(its, Frame{Screen: screen, Input: in}, rec, out)
	require.NoError(t, err)
	rec.EndFrame()
	return ps, out.Drain(), rec
}

func TestVerticalGroupWithTwoFillButtons(t *testing.T) {
	its := items(
		ElementComponent{Name: "menu", Kind: KindVerticalGroup, Constraint: box(Pixels(30), Pixels(10))},
		ElementComponent{Name: "a", Kind: KindButton, Sprite: "btn", Constraint: box(Fill(), Fill())},
		ElementComponent{Name: "b", Kind: KindButton, Sprite: "btn", Constraint: box(Fill(), Fill())},
		ElementComponent{Kind: KindGroupEnd},
	)
	ps, _, _ := run(t, its)
	require.Len(t, ps, 3)

	group, a, b := ps[0].Rect, ps[1].Rect, ps[2].Rect
	assert.Equal(t, a.Y+a.H, b.Y, "stacked with zero gap")
	assert.Equal(t, group.H, a.H+b.H)
	assert.Equal(t, group.W, a.W)
	assert.Equal(t, group.W, b.W)
	assert.Equal(t, group.Origin(), a.Origin())
}

func TestFillTakesWhatIsLeftOnTheAxis(t *testing.T) {
	its := items(
		ElementComponent{Name: "header", Kind: KindLabel, Constraint: box(Fill(), Pixels(3))},
		ElementComponent{Name: "body", Kind: KindLabel, Constraint: box(Fill(), Fill())},
	)
	ps, _, _ := run(t, its)
	assert.Equal(t, []core.Rect{
		{X: 0, Y: 0, W: 80, H: 3},
		{X: 0, Y: 3, W: 80, H: 21},
	}, rects(ps))
}

func TestHorizontalGroupAdvancesAlongX(t *testing.T) {
	its := items(
		ElementComponent{Name: "bar", Kind: KindHorizontalGroup, Sprite: "panel",
			Constraint: Constraint{Width: Fill(), Height: Pixels(3), Y: Offset(2)}},
		ElementComponent{Name: "l1", Kind: KindLabel, Text: "a", Constraint: box(Pixels(10), Fill())},
		ElementComponent{Name: "l2", Kind: KindLabel, Text: "b", Constraint: Constraint{Width: Pixels(5), Height: Pixels(1), X: Offset(2), Y: End()}},
		ElementComponent{Name: "l3", Kind: KindLabel, Text: "c", Constraint: box(Fill(), Fill())},
		ElementComponent{Kind: KindGroupEnd},
		ElementComponent{Name: "below", Kind: KindLabel, Constraint: box(Pixels(4), Pixels(1))},
	)
	ps, _, rec := run(t, its)
	assert.Equal(t, []core.Rect{
		{X: 0, Y: 2, W: 80, H: 3},  // group, offset 2 down from root cursor
		{X: 0, Y: 2, W: 10, H: 3},  // cursor x 0
		{X: 12, Y: 4, W: 5, H: 1},  // cursor x 10 + offset 2; end of height 3
		{X: 17, Y: 2, W: 63, H: 3}, // cursor x 10+5+2
		{X: 0, Y: 5, W: 4, H: 1},   // root cursor advanced by 3 + offset 2
	}, rects(ps))

	ops := rec.LastFrame()
	require.NotEmpty(t, ops)
	assert.Equal(t, render.Op{Kind: render.OpSprite, Key: "panel", Rect: core.Rect{X: 0, Y: 2, W: 80, H: 3}}, ops[0])
}

func TestNestedGroupsUseTheirOrigin(t *testing.T) {
	its := items(
		ElementComponent{Kind: KindVerticalGroup, Constraint: Constraint{Width: Pixels(40), Height: Pixels(20), X: Center(), Y: Center()}},
		ElementComponent{Kind: KindHorizontalGroup, Constraint: Constraint{Width: Fill(), Height: Pixels(4), Y: Offset(1)}},
		ElementComponent{Name: "x", Kind: KindLabel, Constraint: Constraint{Width: Pixels(6), Height: Pixels(2), X: End()}},
		ElementComponent{Kind: KindGroupEnd},
		ElementComponent{Name: "y", Kind: KindLabel, Constraint: box(Proportion(0.5), Pixels(1))},
		ElementComponent{Kind: KindGroupEnd},
	)
	ps, _, _ := run(t, its)
	assert.Equal(t, []core.Rect{
		{X: 20, Y: 2, W: 40, H: 20},
		{X: 20, Y: 3, W: 40, H: 4},
		{X: 54, Y: 3, W: 6, H: 2},
		{X: 20, Y: 7, W: 20, H: 1},
	}, rects(ps))
}

func TestButtonHitTestIsInclusiveExclusive(t *testing.T) {
	mk := func() []Item {
		return items(ElementComponent{Name: "ok", Kind: KindButton, Sprite: "up", PressedSprite: "down",
			Constraint: Constraint{Width: Pixels(10), Height: Pixels(2), X: Offset(5), Y: Offset(5)}})
	}

	for _, p := range []core.Point{{X: 5, Y: 5}, {X: 14, Y: 6}, {X: 9, Y: 5}} {
		_, evs, rec := run(t, mk(), input.PointerDown(p.X, p.Y))
		assert.Equal(t, []Event{ButtonPressed("ok")}, evs, "point %v", p)
		assert.Equal(t, "down", rec.LastFrame()[0].Key)
	}
	for _, p := range []core.Point{{X: 15, Y: 5}, {X: 5, Y: 7}, {X: 4, Y: 5}, {X: 15, Y: 7}} {
		_, evs, rec := run(t, mk(), input.PointerDown(p.X, p.Y))
		assert.Empty(t, evs, "point %v", p)
		assert.Equal(t, "up", rec.LastFrame()[0].Key)
	}

	// Pointer-up and repeated downs inside emit a single event
	_, evs, _ := run(t, mk(), input.PointerUp(6, 6), input.PointerDown(6, 6), input.PointerDown(7, 6))
	assert.Equal(t, []Event{ButtonPressed("ok")}, evs)
}

func TestTextFieldTypingAndBackspace(t *testing.T) {
	its := items(ElementComponent{Name: "nick", Kind: KindTextField, Captured: true, Font: "mono",
		Constraint: box(Pixels(20), Pixels(1))})

	// Every mutation emits, so h, i, Backspace yields three events rather than two
	_, evs, _ := run(t, its, input.KeyDown(input.KeyH), input.KeyDown(input.KeyI), input.KeyDown(input.KeyBackspace))
	el := its[0].Element
	assert.Equal(t, "h", el.Text)
	require.NotEmpty(t, evs)
	assert.Equal(t, TextChanged("nick", "h"), evs[len(evs)-1])
	assert.Equal(t, []Event{TextChanged("nick", "h"), TextChanged("nick", "hi"), TextChanged("nick", "h")}, evs)
}

func TestTextFieldIgnoresNonMutatingKeys(t *testing.T) {
	its := items(ElementComponent{Name: "f", Kind: KindTextField, Captured: true, Constraint: box(Pixels(20), Pixels(1))})

	_, evs, _ := run(t, its, input.KeyDown(input.KeyBackspace), input.KeyDown(input.KeyReturn), input.KeyUp(input.KeyA))
	assert.Empty(t, evs)
	assert.Equal(t, "", its[0].Element.Text)
}

func TestTextFieldShiftUppercases(t *testing.T) {
	its := items(ElementComponent{Name: "f", Kind: KindTextField, Captured: true, Constraint: box(Pixels(20), Pixels(1))})
	rec := render.NewRecorder()
	out := event.NewQueue[Event]()

	_, err := Layout(its, Frame{Screen: screen, Shift: true, Input: []input.Event{input.KeyDown(input.KeyQ), input.KeyDown(input.Key1)}}, rec, out)
	require.NoError(t, err)
	assert.Equal(t, "Q!", its[0].Element.Text)
}

func TestPointerDownOutsideReleasesEveryField(t *testing.T) {
	its := items(
		ElementComponent{Name: "a", Kind: KindTextField, Captured: true, Constraint: Constraint{Width: Pixels(10), Height: Pixels(1), Y: Offset(10)}},
		ElementComponent{Name: "b", Kind: KindTextField, Captured: true, Constraint: box(Pixels(10), Pixels(1))},
	)
	_, evs, _ := run(t, its, input.PointerDown(5, 5), input.KeyDown(input.KeyX))
	assert.False(t, its[0].Element.Captured)
	assert.False(t, its[1].Element.Captured)
	assert.Empty(t, evs)
}

func TestPointerDownMovesCapture(t *testing.T) {
	its := items(
		ElementComponent{Name: "a", Kind: KindTextField, Constraint: box(Pixels(10), Pixels(1))},
		ElementComponent{Name: "b", Kind: KindTextField, Constraint: box(Pixels(10), Pixels(1))},
	)
	// a at y=0, b at y=1
	_, evs, _ := run(t, its, input.PointerDown(2, 1), input.KeyDown(input.KeyZ))
	assert.False(t, its[0].Element.Captured)
	assert.True(t, its[1].Element.Captured)
	assert.Equal(t, []Event{TextChanged("b", "z")}, evs)

	// Last pointer-down wins within one frame
	_, _, _ = run(t, its, input.PointerDown(2, 0), input.PointerDown(2, 1))
	assert.False(t, its[0].Element.Captured)
	assert.True(t, its[1].Element.Captured)
}

func TestOverlappingFieldsShareNoCapture(t *testing.T) {
	its := items(
		ElementComponent{Name: "a", Kind: KindTextField, Constraint: box(Pixels(10), Pixels(2))},
		ElementComponent{Name: "b", Kind: KindTextField, Constraint: Constraint{Width: Pixels(10), Height: Pixels(1), Y: Offset(-1)}},
	)
	// a covers y 0..1, b is pulled back onto y 1
	ps, evs, _ := run(t, its, input.PointerDown(3, 1), input.KeyDown(input.KeyK))
	require.True(t, ps[0].Rect.Contains(core.Point{X: 3, Y: 1}))
	require.True(t, ps[1].Rect.Contains(core.Point{X: 3, Y: 1}))

	assert.True(t, its[0].Element.Captured)
	assert.False(t, its[1].Element.Captured)
	assert.Equal(t, []Event{TextChanged("a", "k")}, evs)
	assert.Equal(t, "", its[1].Element.Text)
}

func TestTextFieldOverflowTrimsOneFrameLate(t *testing.T) {
	its := items(ElementComponent{Name: "f", Kind: KindTextField, Captured: true, Text: "abc", Font: "mono",
		Constraint: box(Pixels(3), Pixels(1))})

	_, evs, rec := run(t, its, input.KeyDown(input.KeyD))
	assert.Equal(t, []Event{TextChanged("f", "abcd")}, evs)
	assert.Equal(t, "abcd", its[0].Element.Text, "overlong text survives the frame it was typed in")
	assert.Equal(t, "abc", rec.LastFrame()[0].Text)

	_, evs, rec = run(t, its)
	assert.Empty(t, evs)
	assert.Equal(t, "abc", its[0].Element.Text)
	assert.True(t, rec.LastFrame()[0].Overflow)

	_, _, rec = run(t, its)
	assert.False(t, rec.LastFrame()[0].Overflow)
}

func TestTextFieldDrawsBackgroundThenText(t *testing.T) {
	its := items(ElementComponent{Name: "f", Kind: KindTextField, Sprite: "box", Text: "hi", Font: "mono",
		Constraint: box(Pixels(8), Pixels(1))})
	_, _, rec := run(t, its)
	ops := rec.LastFrame()
	require.Len(t, ops, 2)
	assert.Equal(t, render.OpSprite, ops[0].Kind)
	assert.Equal(t, render.OpText, ops[1].Kind)
	assert.Equal(t, ops[0].Rect, ops[1].Rect)
}

func TestLayoutIsIdempotentWithoutInput(t *testing.T) {
	its := items(
		ElementComponent{Kind: KindVerticalGroup, Constraint: box(Proportion(0.5), Fill())},
		ElementComponent{Name: "t", Kind: KindLabel, Text: "title", Constraint: box(Fill(), Pixels(1))},
		ElementComponent{Name: "go", Kind: KindButton, Sprite: "btn", Constraint: Constraint{Width: Pixels(6), Height: Pixels(3), X: Center()}},
		ElementComponent{Name: "f", Kind: KindTextField, Text: "x", Constraint: box(Fill(), Pixels(1))},
		ElementComponent{Kind: KindGroupEnd},
	)
	ps1, ev1, rec1 := run(t, its)
	ps2, ev2, rec2 := run(t, its)
	assert.Equal(t, ps1, ps2)
	assert.Empty(t, ev1)
	assert.Empty(t, ev2)
	assert.Equal(t, rec1.LastFrame(), rec2.LastFrame())
}

func TestMalformedDocuments(t *testing.T) {
	rec := render.NewRecorder()
	out := event.NewQueue[Event]()

	_, err := Layout(items(ElementComponent{Kind: KindGroupEnd}), Frame{Screen: screen}, rec, out)
	assert.ErrorIs(t, err, ErrUnbalancedGroup)

	_, err = Layout(items(
		ElementComponent{Kind: KindVerticalGroup},
		ElementComponent{Kind: KindHorizontalGroup},
		ElementComponent{Kind: KindGroupEnd},
	), Frame{Screen: screen}, rec, out)
	assert.ErrorIs(t, err, ErrUnclosedGroup)

	_, err = Layout(items(ElementComponent{Name: "neg", Kind: KindLabel, Constraint: box(NegativePixels(100), Fill())}),
		Frame{Screen: screen}, rec, out)
	assert.ErrorIs(t, err, ErrNegativeSize)
	assert.Contains(t, err.Error(), "neg")
}
