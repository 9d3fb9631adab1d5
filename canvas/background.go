package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GraticuleSpacing returns the degree spacing between grid lines at level,
// keeping lines roughly 100 screen pixels apart.
func GraticuleSpacing(level float64) float64 {
	degPerPixel := 360 / (WorldSize * math.Exp2(level))
	want := degPerPixel * 100
	for _, step := range []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30} {
		if step >= want {
			return step
		}
	}
	return 30
}

// DrawGraticule renders latitude and longitude lines for the part of the
// world visible through cam inside view, plus the equator and prime
// meridian in a stronger color.
func DrawGraticule(cam *Camera, screen *ebiten.Image, view image.Rectangle, gridColor, axisColor, outside color.Color) {
	c := Center(view)
	cw, ch := c.X, c.Y
	x0, y0, x1, y1 := float32(view.Min.X), float32(view.Min.Y), float32(view.Max.X), float32(view.Max.Y)

	left, top := cam.ScreenToWorld(float64(view.Min.X), float64(view.Min.Y), cw, ch)
	right, bottom := cam.ScreenToWorld(float64(view.Max.X), float64(view.Max.Y), cw, ch)

	// Outside the Mercator square there is no map.
	wx0, wy0 := cam.WorldToScreen(0, 0, cw, ch)
	wx1, wy1 := cam.WorldToScreen(WorldSize, WorldSize, cw, ch)
	if float32(wy0) > y0 {
		vector.DrawFilledRect(screen, x0, y0, x1-x0, float32(wy0)-y0, outside, false)
	}
	if float32(wy1) < y1 {
		vector.DrawFilledRect(screen, x0, float32(wy1), x1-x0, y1-float32(wy1), outside, false)
	}
	if float32(wx0) > x0 {
		vector.DrawFilledRect(screen, x0, y0, float32(wx0)-x0, y1-y0, outside, false)
	}
	if float32(wx1) < x1 {
		vector.DrawFilledRect(screen, float32(wx1), y0, x1-float32(wx1), y1-y0, outside, false)
	}

	step := GraticuleSpacing(cam.Level)

	// Meridians are straight vertical lines in Mercator.
	_, lngLeft := Unproject(math.Max(left, 0), 0)
	_, lngRight := Unproject(math.Min(right, WorldSize), 0)
	for lng := math.Ceil(lngLeft/step) * step; lng <= lngRight; lng += step {
		wx, _ := Project(0, lng)
		sx, _ := cam.WorldToScreen(wx, 0, cw, ch)
		clr := gridColor
		if math.Abs(lng) < step/2 {
			clr = axisColor
		}
		vector.StrokeLine(screen, float32(sx), y0, float32(sx), y1, 1, clr, false)
	}

	// Parallels are horizontal but unevenly spaced.
	latTop, _ := Unproject(0, math.Max(top, 0))
	latBottom, _ := Unproject(0, math.Min(bottom, WorldSize))
	for lat := math.Floor(latTop/step) * step; lat >= latBottom; lat -= step {
		_, wy := Project(lat, 0)
		_, sy := cam.WorldToScreen(0, wy, cw, ch)
		clr := gridColor
		if math.Abs(lat) < step/2 {
			clr = axisColor
		}
		vector.StrokeLine(screen, x0, float32(sy), x1, float32(sy), 1, clr, false)
	}
}
