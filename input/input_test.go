package input

import (
	"fmt"
	"image"
	"strings"
	"testing"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) add(s string) { *r.log = append(*r.log, r.name+":"+s) }

func (r *recorder) OnPointerDown(p image.Point)       { r.add(fmt.Sprintf("down%v", p)) }
func (r *recorder) OnPointerMove(p image.Point)       { r.add(fmt.Sprintf("move%v", p)) }
func (r *recorder) OnPointerUp(p image.Point)         { r.add(fmt.Sprintf("up%v", p)) }
func (r *recorder) OnPointerLeave()                   { r.add("leave") }
func (r *recorder) OnWheel(dy float64, p image.Point) { r.add(fmt.Sprintf("wheel(%g)%v", dy, p)) }
func (r *recorder) OnClick(p image.Point)             { r.add(fmt.Sprintf("click%v", p)) }
func (r *recorder) OnKeyDown(k Key)                   { r.add(k.String()) }

func types(events []Event) string {
	names := map[EventType]string{
		PointerDown: "down", PointerMove: "move", PointerUp: "up",
		PointerLeave: "leave", Wheel: "wheel", Click: "click", KeyDown: "key",
	}
	parts := make([]string, len(events))
	for i, ev := range events {
		parts[i] = names[ev.Type]
	}
	return strings.Join(parts, ",")
}

func TestTrackerClick(t *testing.T) {
	var tr Tracker
	tr.Next(Frame{Cursor: image.Pt(10, 10), Inside: true})

	if got := types(tr.Next(Frame{Cursor: image.Pt(10, 10), Inside: true, Pressed: true})); got != "down" {
		t.Errorf("Expected down, got %s", got)
	}
	if got := types(tr.Next(Frame{Cursor: image.Pt(12, 11), Inside: true, Pressed: true})); got != "move" {
		t.Errorf("Expected move, got %s", got)
	}
	if got := types(tr.Next(Frame{Cursor: image.Pt(12, 11), Inside: true})); got != "up,click" {
		t.Errorf("Expected up,click, got %s", got)
	}
}

func TestTrackerDragIsNotClick(t *testing.T) {
	var tr Tracker
	tr.Next(Frame{Cursor: image.Pt(0, 0), Inside: true, Pressed: true})
	tr.Next(Frame{Cursor: image.Pt(0, 0), Inside: true, Pressed: false})
	tr.Next(Frame{Cursor: image.Pt(0, 0), Inside: true, Pressed: true})
	tr.Next(Frame{Cursor: image.Pt(20, 0), Inside: true, Pressed: true})

	// Back within slop of the press, but the press already travelled.
	if got := types(tr.Next(Frame{Cursor: image.Pt(1, 0), Inside: true})); got != "move,up" {
		t.Errorf("Expected move,up, got %s", got)
	}
}

func TestTrackerWheelAndKeys(t *testing.T) {
	var tr Tracker
	events := tr.Next(Frame{Cursor: image.Pt(5, 5), Inside: true, WheelY: 1, Keys: []Key{KeyEscape}})

	if got := types(events); got != "wheel,key" {
		t.Fatalf("Expected wheel,key, got %s", got)
	}
	if events[0].DeltaY != -1 {
		t.Errorf("Expected scroll up to become deltaY -1, got %g", events[0].DeltaY)
	}
	if events[1].Key != KeyEscape {
		t.Errorf("Expected Escape, got %v", events[1].Key)
	}
}

func TestTrackerLeave(t *testing.T) {
	var tr Tracker
	tr.Next(Frame{Cursor: image.Pt(5, 5), Inside: true})
	if got := types(tr.Next(Frame{Cursor: image.Pt(-1, 5)})); got != "leave" {
		t.Errorf("Expected leave, got %s", got)
	}
	if got := types(tr.Next(Frame{Cursor: image.Pt(3, 3), Inside: true})); got != "move" {
		t.Errorf("Expected move on re-entry, got %s", got)
	}
}

func TestDispatchOrder(t *testing.T) {
	var log []string
	h := &recorder{name: "h", log: &log}
	Dispatch([]Event{
		{Type: PointerDown, Pos: image.Pt(1, 2)},
		{Type: PointerUp, Pos: image.Pt(1, 2)},
		{Type: Click, Pos: image.Pt(1, 2)},
		{Type: KeyDown, Key: KeyArrowRight},
	}, h)

	want := "h:down(1,2) h:up(1,2) h:click(1,2) h:ArrowRight"
	if got := strings.Join(log, " "); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRouterHoverCaptureAndClick(t *testing.T) {
	var log []string
	left := &recorder{name: "L", log: &log}
	right := &recorder{name: "R", log: &log}
	keys := &recorder{name: "K", log: &log}

	r := Router{
		Pick: func(p image.Point) Handler {
			if p.X < 100 {
				return left
			}
			return right
		},
		Keys: keys,
	}

	r.Route([]Event{
		{Type: PointerMove, Pos: image.Pt(10, 0)},
		{Type: PointerMove, Pos: image.Pt(150, 0)},
		{Type: PointerDown, Pos: image.Pt(150, 0)},
		// Dragging back over the left widget stays captured.
		{Type: PointerMove, Pos: image.Pt(50, 0)},
		{Type: PointerUp, Pos: image.Pt(50, 0)},
		{Type: Click, Pos: image.Pt(50, 0)},
		{Type: Wheel, Pos: image.Pt(50, 0), DeltaY: 1},
		{Type: KeyDown, Key: KeyEscape},
	})

	want := []string{
		"L:move(10,0)",
		"L:leave",
		"R:move(150,0)",
		"R:down(150,0)",
		"R:move(50,0)",
		"R:up(50,0)",
		"R:click(50,0)",
		"L:wheel(1)(50,0)",
		"K:Escape",
	}
	if strings.Join(log, " ") != strings.Join(want, " ") {
		t.Errorf("Expected %v, got %v", want, log)
	}
}

func TestRouterLeaveNotifiesHover(t *testing.T) {
	var log []string
	h := &recorder{name: "h", log: &log}
	r := Router{Pick: func(image.Point) Handler { return h }}

	r.Route([]Event{
		{Type: PointerMove, Pos: image.Pt(1, 1)},
		{Type: PointerLeave},
		{Type: PointerLeave},
	})

	if got := strings.Join(log, " "); got != "h:move(1,1) h:leave" {
		t.Errorf("Expected a single leave, got %q", got)
	}
}
