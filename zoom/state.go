package zoom

import "fmt"

// Point is a viewport-local coordinate in pixels.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point   { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point   { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }
func (p Point) IsZero() bool        { return p.X == 0 && p.Y == 0 }

func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Mode is the coarse interaction state derived from the scale.
type Mode int

const (
	Resting Mode = iota // scale == MinScale
	Zoomed              // scale > MinScale
)

func (m Mode) String() string {
	if m == Zoomed {
		return "zoomed"
	}
	return "resting"
}

// Cursor is the pointer affordance the view should show.
type Cursor string

const (
	CursorZoomIn   Cursor = "zoom-in"
	CursorGrab     Cursor = "grab"
	CursorGrabbing Cursor = "grabbing"
)

// State describes how the image is currently rendered.
type State struct {
	Scale       float64 `yaml:"scale"`
	Offset      Point   `yaml:"offset"`
	Dragging    bool    `yaml:"-"`
	LastPointer Point   `yaml:"-"`
}

// Mode reports whether s is resting or zoomed under c.
func (c Config) Mode(s State) Mode {
	if s.Scale > c.MinScale {
		return Zoomed
	}
	return Resting
}

// Cursor returns grabbing while dragging, grab when zoomed and zoom-in when
// resting.
func (c Config) Cursor(s State) Cursor {
	switch {
	case s.Dragging:
		return CursorGrabbing
	case c.Mode(s) == Zoomed:
		return CursorGrab
	default:
		return CursorZoomIn
	}
}

// Label returns the zoom relative to the resting scale as a percentage and
// whether it should be shown at all; it is hidden at rest.
func (c Config) Label(s State) (string, bool) {
	if c.Mode(s) == Resting {
		return "", false
	}
	return fmt.Sprintf("%.0f%%", s.Scale/c.MinScale*100), true
}

// CanZoomIn, CanZoomOut and CanReset drive the enabled state of the viewer's
// control buttons.
func (c Config) CanZoomIn(s State) bool  { return s.Scale < c.MaxScale }
func (c Config) CanZoomOut(s State) bool { return s.Scale > c.MinScale }
func (c Config) CanReset(s State) bool {
	return s.Scale > c.MinScale || !s.Offset.IsZero()
}

// Project maps a layout point of the unscaled image to its rendered screen
// position, where center is the viewport center the image is laid out
// around. It is the scale(S) translate(X/S, Y/S) composition: C + S*(p-C) + O.
func (s State) Project(p, center Point) Point {
	return center.Add(p.Sub(center).Mul(s.Scale)).Add(s.Offset)
}

// Unproject is the inverse of Project.
func (s State) Unproject(screen, center Point) Point {
	return center.Add(screen.Sub(center).Sub(s.Offset).Div(s.Scale))
}
