package zoom

import "math"

// Initial returns the state a viewer starts with for a new image.
func (c Config) Initial() State {
	return State{Scale: c.MinScale}
}

// ApplyZoom moves s to target (clamped). With a focal point the offset is
// adjusted so that the point under the cursor stays put:
//
//	offset' = offset - (focal - center) * (target/scale - 1)
//
// Landing on MinScale snaps the offset to zero and ends any drag.
func (c Config) ApplyZoom(s State, target float64, focal *Point, center Point) State {
	target = c.Clamp(target)
	if target == c.MinScale {
		s.Scale = target
		s.Offset = Point{}
		s.Dragging = false
		return s
	}
	if focal != nil && s.Scale > 0 {
		s.Offset = s.Offset.Sub(focal.Sub(center).Mul(target/s.Scale - 1))
	}
	s.Scale = target
	return s
}

// ZoomIn steps the scale up. It is a no-op at MaxScale.
func (c Config) ZoomIn(s State, focal *Point, center Point) State {
	if s.Scale >= c.MaxScale {
		return s
	}
	return c.ApplyZoom(s, s.Scale+c.ZoomStep, focal, center)
}

// ZoomOut steps the scale down about the viewport center.
func (c Config) ZoomOut(s State) State {
	return c.ApplyZoom(s, s.Scale-c.ZoomStep, nil, Point{})
}

// Reset returns to the resting scale with no offset.
func (c Config) Reset(s State) State {
	return c.Initial()
}

// WheelZoom steps in the direction of the wheel (+1 in, -1 out) anchored at
// the pointer. If the clamped scale would not change nothing happens.
func (c Config) WheelZoom(s State, direction int, pointer, center Point) State {
	if direction == 0 {
		return s
	}
	step := c.ZoomStep
	if direction < 0 {
		step = -step
	}
	target := c.Clamp(s.Scale + step)
	if target == s.Scale {
		return s
	}
	return c.ApplyZoom(s, target, &pointer, center)
}

// DragStart begins a pan. Panning is disabled at the resting scale.
func (c Config) DragStart(s State, p Point) State {
	if s.Scale <= c.MinScale {
		return s
	}
	s.Dragging = true
	s.LastPointer = p
	return s
}

// DragMove pans by the pointer delta since the last observed position. The
// offset is not clamped; clipping is the view's business.
func (c Config) DragMove(s State, p Point) State {
	if !s.Dragging {
		return s
	}
	s.Offset = s.Offset.Add(p.Sub(s.LastPointer))
	s.LastPointer = p
	return s
}

// DragEnd ends a pan.
func (c Config) DragEnd(s State) State {
	s.Dragging = false
	return s
}

// Controller holds one viewer's State and applies the transitions of its
// Config in place. It is not safe for concurrent use; input handlers run on
// the UI goroutine.
type Controller struct {
	cfg   Config
	state State
}

// NewController validates cfg and returns a controller at the resting state.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg, state: cfg.Initial()}, nil
}

func (z *Controller) Config() Config { return z.cfg }
func (z *Controller) State() State   { return z.state }
func (z *Controller) Mode() Mode     { return z.cfg.Mode(z.state) }
func (z *Controller) Cursor() Cursor { return z.cfg.Cursor(z.state) }

// Label returns the zoom label and whether it is visible.
func (z *Controller) Label() (string, bool) { return z.cfg.Label(z.state) }

// Restore replaces the state, clamping the scale into range. A restored
// resting state never carries an offset.
func (z *Controller) Restore(s State) {
	s.Dragging = false
	if math.IsNaN(s.Scale) {
		s.Scale = z.cfg.MinScale
	}
	s.Scale = z.cfg.Clamp(s.Scale)
	if s.Scale == z.cfg.MinScale {
		s.Offset = Point{}
	}
	z.state = s
}

func (z *Controller) ZoomIn(focal *Point, center Point) {
	z.state = z.cfg.ZoomIn(z.state, focal, center)
}

func (z *Controller) ZoomOut() { z.state = z.cfg.ZoomOut(z.state) }
func (z *Controller) Reset()   { z.state = z.cfg.Reset(z.state) }

func (z *Controller) WheelZoom(direction int, pointer, center Point) {
	z.state = z.cfg.WheelZoom(z.state, direction, pointer, center)
}

func (z *Controller) DragStart(p Point) { z.state = z.cfg.DragStart(z.state, p) }
func (z *Controller) DragMove(p Point)  { z.state = z.cfg.DragMove(z.state, p) }
func (z *Controller) DragEnd()          { z.state = z.cfg.DragEnd(z.state) }
