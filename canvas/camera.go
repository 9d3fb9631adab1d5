package canvas

import "math"

const (
	MinLevel = 1.0
	MaxLevel = 18.0

	// flyEase is the fraction of the remaining distance covered per tick.
	flyEase = 0.2
)

// Camera controls the viewport of the overview map. X and Y are the world
// position (zoom-level-0 Mercator pixels) shown at the center of the view;
// Level is the map zoom level, each level doubling the scale.
type Camera struct {
	X, Y  float64
	Level float64

	flying          bool
	toX, toY, toLvl float64
}

// Scale is the number of screen pixels per world pixel.
func (c *Camera) Scale() float64 {
	return math.Exp2(c.Level)
}

// WorldToScreen maps a world position to the screen; cw, ch is the screen
// position of the view center.
func (c *Camera) WorldToScreen(wx, wy, cw, ch float64) (float64, float64) {
	s := c.Scale()
	sx := (wx-c.X)*s + cw
	sy := (wy-c.Y)*s + ch
	return sx, sy
}

func (c *Camera) ScreenToWorld(sx, sy, cw, ch float64) (float64, float64) {
	s := c.Scale()
	wx := (sx-cw)/s + c.X
	wy := (sy-ch)/s + c.Y
	return wx, wy
}

// Pan moves the view by a screen-space drag delta.
func (c *Camera) Pan(dx, dy float64) {
	c.flying = false
	s := c.Scale()
	c.X -= dx / s
	c.Y -= dy / s
}

// ZoomAt changes the level by delta while keeping the world point under
// (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(sx, sy, cw, ch, delta float64) {
	c.flying = false
	wx, wy := c.ScreenToWorld(sx, sy, cw, ch)
	c.Level = clampLevel(c.Level + delta)
	s := c.Scale()
	c.X = wx - (sx-cw)/s
	c.Y = wy - (sy-ch)/s
}

// FitBounds centers the world box (x0, y0)-(x1, y1) in a w by h view with
// padding pixels on every side, using the largest whole level that fits.
// A degenerate box (a single point) is shown at singleLevel.
func (c *Camera) FitBounds(x0, y0, x1, y1, w, h, padding, singleLevel float64) {
	c.flying = false
	c.X = (x0 + x1) / 2
	c.Y = (y0 + y1) / 2

	dx, dy := math.Abs(x1-x0), math.Abs(y1-y0)
	if dx == 0 && dy == 0 {
		c.Level = clampLevel(singleLevel)
		return
	}
	availW := math.Max(w-2*padding, 1)
	availH := math.Max(h-2*padding, 1)
	scale := math.Inf(1)
	if dx > 0 {
		scale = availW / dx
	}
	if dy > 0 {
		scale = math.Min(scale, availH/dy)
	}
	c.Level = clampLevel(math.Floor(math.Log2(scale)))
}

// FlyTo starts an eased move to (wx, wy), zooming in to at least minLevel.
// The camera never zooms out to fly.
func (c *Camera) FlyTo(wx, wy, minLevel float64) {
	c.flying = true
	c.toX, c.toY = wx, wy
	c.toLvl = clampLevel(math.Max(c.Level, minLevel))
}

// Flying reports whether a FlyTo is in progress.
func (c *Camera) Flying() bool {
	return c.flying
}

// Step advances a running FlyTo by one tick.
func (c *Camera) Step() {
	if !c.flying {
		return
	}
	c.X += (c.toX - c.X) * flyEase
	c.Y += (c.toY - c.Y) * flyEase
	c.Level += (c.toLvl - c.Level) * flyEase

	// Within a hundredth of a screen pixel and level: land.
	s := c.Scale()
	if math.Abs(c.toX-c.X)*s < 0.01 && math.Abs(c.toY-c.Y)*s < 0.01 && math.Abs(c.toLvl-c.Level) < 0.01 {
		c.X, c.Y, c.Level = c.toX, c.toY, c.toLvl
		c.flying = false
	}
}

func clampLevel(l float64) float64 {
	return math.Max(MinLevel, math.Min(MaxLevel, l))
}
