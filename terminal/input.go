package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/input"
)

// eventBuffer bounds tcell events queued between polls
const eventBuffer = 256

// InputSource is an input.Source fed by a goroutine pumping tcell events
// Terminals report no key releases, so every key pressed in one poll is
// released at the start of the next. Shift is synthesized from rune case and
// holds one state per poll; a rune needing the other state waits for the next poll
type InputSource struct {
	screen tcell.Screen
	events chan tcell.Event
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	running bool

	tr      translator
	pending tcell.Event // Held back by the previous poll
}

func NewInputSource(screen tcell.Screen) *InputSource {
	return &InputSource{
		screen: screen,
		events: make(chan tcell.Event, eventBuffer),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start launches the polling goroutine
func (s *InputSource) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	core.Go(s.pump)
}

func (s *InputSource) pump() {
	defer close(s.doneCh)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			select {
			case <-s.stopCh:
				return
			default:
				continue
			}
		}
		select {
		case s.events <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Stop ends the polling goroutine; the screen stays open
func (s *InputSource) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	// Unblock PollEvent
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-s.doneCh
}

// Poll drains queued events without blocking
func (s *InputSource) Poll() []input.Event {
	out := s.tr.release(nil)
	for {
		ev := s.pending
		s.pending = nil
		if ev == nil {
			select {
			case ev = <-s.events:
			default:
				return out
			}
		}
		var ok bool
		if out, ok = s.tr.translate(ev, out); !ok {
			s.pending = ev
			return out
		}
	}
}

// translator converts tcell events and tracks synthetic key state
type translator struct {
	held      []input.Key
	shift     bool
	typed     bool // A rune was pressed since the last release, fixing shift
	mouseDown bool
}

// release emits key-ups for everything pressed during the previous poll
func (t *translator) release(out []input.Event) []input.Event {
	for _, k := range t.held {
		out = append(out, input.KeyUp(k))
	}
	t.held = t.held[:0]
	t.shift = false
	t.typed = false
	return out
}

func (t *translator) press(k input.Key, out []input.Event) []input.Event {
	t.held = append(t.held, k)
	return append(out, input.KeyDown(k))
}

// translate appends the events for ev
// It reports false, consuming nothing, when ev needs a shift state this poll has already fixed
func (t *translator) translate(ev tcell.Event, out []input.Event) ([]input.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.key(ev, out)
	case *tcell.EventMouse:
		x, y := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		if down == t.mouseDown {
			return out, true
		}
		t.mouseDown = down
		if down {
			return append(out, input.PointerDown(x, y)), true
		}
		return append(out, input.PointerUp(x, y)), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return append(out, input.Resize(w, h)), true
	}
	return out, true
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyEnter:      input.KeyReturn,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyUp:         input.KeyArrowUp,
	tcell.KeyDown:       input.KeyArrowDown,
	tcell.KeyLeft:       input.KeyArrowLeft,
	tcell.KeyRight:      input.KeyArrowRight,
}

func (t *translator) key(ev *tcell.EventKey, out []input.Event) ([]input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return append(out, input.Quit()), true
	case tcell.KeyRune:
		k, shift, ok := input.KeyForRune(ev.Rune())
		if !ok {
			return out, true
		}
		if t.typed && shift != t.shift {
			return out, false
		}
		if shift && !t.shift {
			t.shift = true
			out = t.press(input.KeyShift, out)
		}
		t.typed = true
		return t.press(k, out), true
	}
	if k, ok := specialKeys[ev.Key()]; ok {
		return t.press(k, out), true
	}
	return out, true
}
