package canvas

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"drone-gallery/zoom"
)

// FitScale is the scale at which a w by h image fits inside the viewport
// without being enlarged.
func FitScale(w, h int, viewport image.Rectangle) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	vw, vh := float64(viewport.Dx()), float64(viewport.Dy())
	return math.Min(1, math.Min(vw/float64(w), vh/float64(h)))
}

// ImageGeoM positions a w by h image inside viewport for the given zoom
// state. The image is fitted and centered, then scaled by s.Scale about the
// viewport center and shifted by s.Offset in screen pixels, so a point p of
// the fitted image lands at center + Scale*(p-center) + Offset.
func ImageGeoM(s zoom.State, w, h int, viewport image.Rectangle) ebiten.GeoM {
	fit := FitScale(w, h, viewport)
	c := Center(viewport)

	var geo ebiten.GeoM
	geo.Translate(-float64(w)/2, -float64(h)/2)
	geo.Scale(fit*s.Scale, fit*s.Scale)
	geo.Translate(c.X+s.Offset.X, c.Y+s.Offset.Y)
	return geo
}

// Center returns the midpoint of r in screen coordinates.
func Center(r image.Rectangle) zoom.Point {
	return zoom.Pt(float64(r.Min.X)+float64(r.Dx())/2, float64(r.Min.Y)+float64(r.Dy())/2)
}

// Local converts a screen position to viewport-local coordinates.
func Local(p image.Point, viewport image.Rectangle) zoom.Point {
	return zoom.Pt(float64(p.X-viewport.Min.X), float64(p.Y-viewport.Min.Y))
}
