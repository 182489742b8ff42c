package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/event"
	"github.com/lixenwraith/invader/input"
	"github.com/lixenwraith/invader/render"
	"github.com/lixenwraith/invader/ui"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cell(s tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, st, _ := s.GetContent(x, y)
	return r, st
}

func TestPaletteConfiguredAndFallback(t *testing.T) {
	p := NewPalette()
	p.SetSprite("wall", '#', "red", "black")
	p.SetFont("title", "#ffffff", "", true)

	wall := p.Sprite("wall")
	assert.Equal(t, '#', wall.Glyph)
	fg, bg, _ := wall.Style.Decompose()
	assert.Equal(t, tcell.GetColor("red"), fg)
	assert.Equal(t, tcell.GetColor("black"), bg)

	_, _, attrs := p.Font("title").Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
	assert.Equal(t, tcell.StyleDefault, p.Font("missing"))

	a, b := p.Sprite("enemy"), p.Sprite("enemy")
	assert.Equal(t, a, b, "fallback is stable")
	assert.Equal(t, defaultGlyph, a.Glyph)
}

func TestRendererRegisterSpriteReachesPalette(t *testing.T) {
	p := NewPalette()
	var sheet render.SpriteSheet = NewRenderer(newScreen(t, 4, 4), p)
	sheet.RegisterSprite("ship", render.SpriteStyle{Glyph: 'A', FG: "green"})

	ship := p.Sprite("ship")
	assert.Equal(t, 'A', ship.Glyph)
	fg, _, _ := ship.Style.Decompose()
	assert.Equal(t, tcell.GetColor("green"), fg)
}

func TestRendererSpriteFillsClippedRect(t *testing.T) {
	s := newScreen(t, 10, 5)
	p := NewPalette()
	p.SetSprite("box", '#', "", "")
	r := NewRenderer(s, p)

	r.BeginFrame()
	r.DrawSprite("box", core.Rect{X: 8, Y: 3, W: 4, H: 4})
	r.EndFrame()

	ch, _ := cell(s, 8, 3)
	assert.Equal(t, '#', ch)
	ch, _ = cell(s, 9, 4)
	assert.Equal(t, '#', ch)
	ch, _ = cell(s, 7, 3)
	assert.Equal(t, ' ', ch)

	r.DrawSprite("box", core.Rect{X: -5, Y: -5, W: 2, H: 2})
	ch, _ = cell(s, 0, 0)
	assert.Equal(t, ' ', ch, "offscreen sprite draws nothing")
}

func TestRendererTextOverflow(t *testing.T) {
	s := newScreen(t, 20, 3)
	r := NewRenderer(s, nil)
	r.BeginFrame()

	assert.False(t, r.DrawText("hi", "", core.Rect{X: 1, Y: 1, W: 5, H: 1}))
	ch, _ := cell(s, 1, 1)
	assert.Equal(t, 'h', ch)
	ch, _ = cell(s, 2, 1)
	assert.Equal(t, 'i', ch)

	assert.True(t, r.DrawText("abcdef", "", core.Rect{X: 0, Y: 2, W: 3, H: 1}))
	ch, _ = cell(s, 2, 2)
	assert.Equal(t, 'c', ch)
	ch, _ = cell(s, 3, 2)
	assert.Equal(t, ' ', ch, "clipped to rect")

	assert.True(t, r.DrawText("日本", "", core.Rect{X: 0, Y: 0, W: 3, H: 1}), "wide runes count double")
}

func TestRendererClearsEachFrame(t *testing.T) {
	s := newScreen(t, 5, 1)
	r := NewRenderer(s, nil)
	r.BeginFrame()
	r.DrawText("x", "", core.Rect{W: 5, H: 1})
	r.EndFrame()

	r.BeginFrame()
	r.EndFrame()
	ch, _ := cell(s, 0, 0)
	assert.Equal(t, ' ', ch)
}

// feed translates events that must all be accepted in one poll
func feed(t *testing.T, tr *translator, evs ...tcell.Event) []input.Event {
	t.Helper()
	var out []input.Event
	for _, ev := range evs {
		var ok bool
		out, ok = tr.translate(ev, out)
		require.True(t, ok, "event %v held back", ev)
	}
	return out
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTranslateRunesAndShift(t *testing.T) {
	var tr translator
	out := feed(t, &tr, runeKey('H'), runeKey('I'), tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

	assert.Equal(t, []input.Event{
		input.KeyDown(input.KeyShift),
		input.KeyDown(input.KeyH),
		input.KeyDown(input.KeyI),
		input.KeyDown(input.KeyBackspace),
	}, out)

	released := tr.release(nil)
	assert.Equal(t, []input.Event{
		input.KeyUp(input.KeyShift),
		input.KeyUp(input.KeyH),
		input.KeyUp(input.KeyI),
		input.KeyUp(input.KeyBackspace),
	}, released)
	assert.Empty(t, tr.release(nil))
}

func TestTranslateHoldsBackCaseChange(t *testing.T) {
	var tr translator
	out := feed(t, &tr, runeKey('a'))
	out, ok := tr.translate(runeKey('B'), out)
	assert.False(t, ok)
	assert.Equal(t, []input.Event{input.KeyDown(input.KeyA)}, out)

	out = tr.release(nil)
	out = append(out, feed(t, &tr, runeKey('B'))...)
	assert.Equal(t, []input.Event{
		input.KeyUp(input.KeyA),
		input.KeyDown(input.KeyShift),
		input.KeyDown(input.KeyB),
	}, out)
}

func TestTranslateQuitAndUnknown(t *testing.T) {
	var tr translator
	assert.Equal(t, []input.Event{input.Quit()}, feed(t, &tr, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.Equal(t, []input.Event{input.Quit()}, feed(t, &tr, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.Empty(t, feed(t, &tr, runeKey('é')))
	assert.Empty(t, feed(t, &tr, tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)))
}

func TestTranslateArrowMouseAndResize(t *testing.T) {
	var tr translator
	out := feed(t, &tr,
		tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
		tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(6, 4, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventResize(80, 24),
	)

	assert.Equal(t, []input.Event{
		input.KeyDown(input.KeyArrowUp),
		input.PointerDown(3, 4),
		input.PointerUp(6, 4),
		input.Resize(80, 24),
	}, out)
}

func TestPollKeepsCaseOfMixedRunes(t *testing.T) {
	src := NewInputSource(newScreen(t, 10, 10))
	src.events <- runeKey('H')
	src.events <- runeKey('i')

	field := ui.ElementComponent{Name: "nick", Kind: ui.KindTextField, Captured: true,
		Constraint: ui.Constraint{Width: ui.Pixels(10), Height: ui.Pixels(1)}}
	items := []ui.Item{{Entity: core.NewEntity(0, 0), Element: &field}}
	keys := input.NewKeysResource()

	for range 3 {
		evs := src.Poll()
		for _, ev := range evs {
			switch ev.Type {
			case input.EventKeyDown:
				keys.Press(ev.Key)
			case input.EventKeyUp:
				keys.Release(ev.Key)
			}
		}
		frame := ui.Frame{Screen: core.Size{W: 10, H: 10}, Input: evs, Shift: keys.Pressed(input.KeyShift)}
		_, err := ui.Layout(items, frame, render.NewRecorder(), event.NewQueue[ui.Event]())
		require.NoError(t, err)
	}
	assert.Equal(t, "Hi", field.Text)
	assert.False(t, keys.Pressed(input.KeyShift))
}

func TestInputSourcePumpsScreenEvents(t *testing.T) {
	s := newScreen(t, 10, 10)
	src := NewInputSource(s)
	src.Start()
	defer src.Stop()

	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	s.InjectMouse(2, 3, tcell.Button1, tcell.ModNone)

	var got, released []input.Event
	require.Eventually(t, func() bool {
		for _, ev := range src.Poll() {
			switch ev.Type {
			case input.EventResize:
			case input.EventKeyUp:
				released = append(released, ev)
			default:
				got = append(got, ev)
			}
		}
		return len(got) >= 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, input.KeyDown(input.KeyA), got[0])
	assert.Equal(t, input.PointerDown(2, 3), got[1])

	released = append(released, src.Poll()...)
	assert.Contains(t, released, input.KeyUp(input.KeyA))
}
