package main

import (
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"drone-gallery/viewer"
)

// handleControlKeys covers the shortcuts outside the widget event surface.
func (g *Game) handleControlKeys() {
	// --- Screenshot ---
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.screenshotRequested = true
	}

	// --- Save State ---
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		path := g.opts.State
		if path == "" {
			path = DefaultStateFile
		}
		if err := SaveState(g, path); err != nil {
			log.Println("save state:", err)
			g.report(err)
		} else {
			log.Println("State saved as", path)
		}
	}

	// --- Map ---
	if !g.gallery.IsOpen() && inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.mapView.Fit()
	}

	// --- Keyboard Zooming ---
	if g.gallery.IsOpen() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
			g.lightbox.ZoomIn()
		case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
			g.lightbox.ZoomOut()
		case inpututil.IsKeyJustPressed(ebiten.Key0), inpututil.IsKeyJustPressed(ebiten.KeyKP0):
			g.lightbox.Reset()
		}
	}
}

// cursorShape picks the mouse cursor for the widget under p.
func (g *Game) cursorShape(p image.Point) ebiten.CursorShapeType {
	if g.gallery.IsOpen() {
		switch {
		case g.ui.ButtonAt(p.X, p.Y) != nil:
			return ebiten.CursorShapePointer
		case p.In(g.lightbox.Viewport()):
			return viewer.CursorShape(g.lightbox.Zoom().Cursor())
		}
		return ebiten.CursorShapeDefault
	}
	if g.thumbs.IndexAt(p) >= 0 {
		return ebiten.CursorShapePointer
	}
	if p.In(g.mapView.Bounds()) {
		if _, ok := g.mapView.MarkerAt(p); ok {
			return ebiten.CursorShapePointer
		}
		return ebiten.CursorShapeMove
	}
	return ebiten.CursorShapeDefault
}

func (g *Game) updateCursor(p image.Point) {
	ebiten.SetCursorShape(g.cursorShape(p))
}
