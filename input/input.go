// Package input turns polled ebiten frames into an ordered stream of pointer,
// wheel and key events and routes them to the widget under the pointer.
package input

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ClickSlop is how far (in pixels) the pointer may travel between press and
// release for the release to still count as a click.
const ClickSlop = 4

type Key int

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	case KeyEscape:
		return "Escape"
	}
	return "Unknown"
}

type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	PointerLeave
	Wheel
	Click
	KeyDown
)

// Event is one input occurrence. DeltaY follows the browser convention:
// positive scrolls down, which zooms out.
type Event struct {
	Type   EventType
	Pos    image.Point
	DeltaY float64
	Key    Key
}

// Handler receives events in dispatch order.
type Handler interface {
	OnPointerDown(pos image.Point)
	OnPointerMove(pos image.Point)
	OnPointerUp(pos image.Point)
	OnPointerLeave()
	OnWheel(deltaY float64, pos image.Point)
	OnClick(pos image.Point)
	OnKeyDown(key Key)
}

// Frame is the raw input state sampled once per tick.
type Frame struct {
	Cursor  image.Point
	Inside  bool
	Pressed bool
	// WheelY is ebiten's wheel delta: positive when scrolling up.
	WheelY float64
	// Keys holds the navigation keys pressed this tick, in order.
	Keys []Key
}

// Poll samples ebiten's input state.
func Poll() Frame {
	mx, my := ebiten.CursorPosition()
	w, h := ebiten.WindowSize()
	_, wy := ebiten.Wheel()
	f := Frame{
		Cursor:  image.Pt(mx, my),
		Inside:  mx >= 0 && my >= 0 && (w == 0 || mx < w) && (h == 0 || my < h),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  wy,
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		f.Keys = append(f.Keys, KeyArrowLeft)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		f.Keys = append(f.Keys, KeyArrowRight)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		f.Keys = append(f.Keys, KeyEscape)
	}
	return f
}

// Tracker converts successive frames into events. It remembers where the
// current press started so a release can be classified as a click.
type Tracker struct {
	prev     Frame
	started  bool
	pressPos image.Point
	slipped  bool
}

// Next returns the events between the previous frame and cur.
func (t *Tracker) Next(cur Frame) []Event {
	var events []Event
	prev := t.prev
	if !t.started {
		prev = Frame{Cursor: cur.Cursor, Inside: cur.Inside}
		t.started = true
	}
	t.prev = Frame{Cursor: cur.Cursor, Inside: cur.Inside, Pressed: cur.Pressed}

	if prev.Inside && !cur.Inside {
		events = append(events, Event{Type: PointerLeave, Pos: cur.Cursor})
	}
	if cur.Inside && (cur.Cursor != prev.Cursor || !prev.Inside) {
		events = append(events, Event{Type: PointerMove, Pos: cur.Cursor})
		if cur.Pressed && t.outOfSlop(cur.Cursor) {
			t.slipped = true
		}
	}

	switch {
	case cur.Pressed && !prev.Pressed && cur.Inside:
		t.pressPos = cur.Cursor
		t.slipped = false
		events = append(events, Event{Type: PointerDown, Pos: cur.Cursor})
	case !cur.Pressed && prev.Pressed:
		events = append(events, Event{Type: PointerUp, Pos: cur.Cursor})
		if cur.Inside && !t.slipped && !t.outOfSlop(cur.Cursor) {
			events = append(events, Event{Type: Click, Pos: cur.Cursor})
		}
	}

	if cur.WheelY != 0 && cur.Inside {
		events = append(events, Event{Type: Wheel, Pos: cur.Cursor, DeltaY: -cur.WheelY})
	}
	for _, k := range cur.Keys {
		events = append(events, Event{Type: KeyDown, Key: k})
	}
	return events
}

func (t *Tracker) outOfSlop(p image.Point) bool {
	d := p.Sub(t.pressPos)
	return d.X*d.X+d.Y*d.Y > ClickSlop*ClickSlop
}

// Dispatch delivers events to h in order.
func Dispatch(events []Event, h Handler) {
	for _, ev := range events {
		deliver(ev, h)
	}
}

func deliver(ev Event, h Handler) {
	if h == nil {
		return
	}
	switch ev.Type {
	case PointerDown:
		h.OnPointerDown(ev.Pos)
	case PointerMove:
		h.OnPointerMove(ev.Pos)
	case PointerUp:
		h.OnPointerUp(ev.Pos)
	case PointerLeave:
		h.OnPointerLeave()
	case Wheel:
		h.OnWheel(ev.DeltaY, ev.Pos)
	case Click:
		h.OnClick(ev.Pos)
	case KeyDown:
		h.OnKeyDown(ev.Key)
	}
}

// Router sends pointer events to the handler under the pointer. A handler
// that received PointerDown keeps receiving pointer events until the
// matching PointerUp, and the handler the pointer moves off gets
// OnPointerLeave.
type Router struct {
	// Pick returns the handler at pos, or nil.
	Pick func(pos image.Point) Handler
	// Keys receives key events; nil drops them.
	Keys Handler

	hover   Handler
	capture Handler
	lastUp  Handler
}

// Route dispatches events.
func (r *Router) Route(events []Event) {
	for _, ev := range events {
		switch ev.Type {
		case KeyDown:
			deliver(ev, r.Keys)
		case PointerLeave:
			if r.capture != nil && r.capture != r.hover {
				r.capture.OnPointerLeave()
			}
			if r.hover != nil {
				r.hover.OnPointerLeave()
			}
			r.hover, r.capture = nil, nil
		case PointerMove:
			target := r.capture
			if target == nil {
				target = r.pick(ev.Pos)
				if target != r.hover && r.hover != nil {
					r.hover.OnPointerLeave()
				}
				r.hover = target
			}
			deliver(ev, target)
		case PointerDown:
			r.capture = r.pick(ev.Pos)
			r.hover = r.capture
			deliver(ev, r.capture)
		case PointerUp:
			target := r.capture
			if target == nil {
				target = r.pick(ev.Pos)
			}
			r.capture = nil
			r.lastUp = target
			deliver(ev, target)
		case Click:
			deliver(ev, r.lastUp)
		case Wheel:
			deliver(ev, r.pick(ev.Pos))
		}
	}
}

// Reset forgets hover and capture, e.g. when the widget layout changes.
func (r *Router) Reset() {
	r.hover, r.capture, r.lastUp = nil, nil, nil
}

func (r *Router) pick(pos image.Point) Handler {
	if r.Pick == nil {
		return nil
	}
	return r.Pick(pos)
}
