// Package viewer is the lightbox: a modal pan/zoom view of the open
// gallery item.
package viewer

import (
	"image"

	"drone-gallery/canvas"
	"drone-gallery/gallery"
	"drone-gallery/input"
	"drone-gallery/zoom"
)

// Lightbox forwards input to a zoom.Controller for the image viewport and
// drives gallery navigation from the keyboard. All positions it receives
// are screen coordinates; the zoom state is kept viewport-local.
type Lightbox struct {
	gallery  *gallery.Gallery
	zoom     *zoom.Controller
	viewport image.Rectangle

	// OnClose runs after Escape or a backdrop click closes the lightbox.
	OnClose func()
}

// NewLightbox builds a lightbox over g. Any item change in g (open or
// navigation) resets the zoom.
func NewLightbox(g *gallery.Gallery, cfg zoom.Config) (*Lightbox, error) {
	z, err := zoom.NewController(cfg)
	if err != nil {
		return nil, err
	}
	lb := &Lightbox{gallery: g, zoom: z}
	g.OnChange(func(gallery.Item) { lb.zoom.Reset() })
	return lb, nil
}

func (lb *Lightbox) Zoom() *zoom.Controller { return lb.zoom }
func (lb *Lightbox) IsOpen() bool           { return lb.gallery.IsOpen() }

// SetViewport sets the screen rectangle the image is laid out in.
func (lb *Lightbox) SetViewport(r image.Rectangle) {
	lb.viewport = r
}

func (lb *Lightbox) Viewport() image.Rectangle {
	return lb.viewport
}

func (lb *Lightbox) center() zoom.Point {
	return zoom.Pt(float64(lb.viewport.Dx())/2, float64(lb.viewport.Dy())/2)
}

func (lb *Lightbox) local(p image.Point) zoom.Point {
	return canvas.Local(p, lb.viewport)
}

func (lb *Lightbox) inside(p image.Point) bool {
	return p.In(lb.viewport)
}

// Button actions. Zooming from the buttons anchors on the viewport center.

func (lb *Lightbox) ZoomIn() {
	c := lb.center()
	lb.zoom.ZoomIn(&c, c)
}

func (lb *Lightbox) ZoomOut() { lb.zoom.ZoomOut() }
func (lb *Lightbox) Reset()   { lb.zoom.Reset() }

// Previous and Next reset the zoom before moving so the new item opens at
// rest.
func (lb *Lightbox) Previous() {
	lb.zoom.Reset()
	lb.gallery.Previous()
}

func (lb *Lightbox) Next() {
	lb.zoom.Reset()
	lb.gallery.Next()
}

// Close hides the lightbox.
func (lb *Lightbox) Close() {
	if !lb.gallery.IsOpen() {
		return
	}
	lb.zoom.Reset()
	lb.gallery.Close()
	if lb.OnClose != nil {
		lb.OnClose()
	}
}

// input.Handler

func (lb *Lightbox) OnPointerDown(p image.Point) {
	if !lb.IsOpen() || !lb.inside(p) {
		return
	}
	lb.zoom.DragStart(lb.local(p))
}

func (lb *Lightbox) OnPointerMove(p image.Point) {
	if !lb.IsOpen() {
		return
	}
	lb.zoom.DragMove(lb.local(p))
}

func (lb *Lightbox) OnPointerUp(image.Point) {
	lb.zoom.DragEnd()
}

func (lb *Lightbox) OnPointerLeave() {
	lb.zoom.DragEnd()
}

// OnWheel zooms at the pointer: deltaY < 0 zooms in, deltaY > 0 out.
func (lb *Lightbox) OnWheel(deltaY float64, p image.Point) {
	if !lb.IsOpen() || !lb.inside(p) || deltaY == 0 {
		return
	}
	dir := 1
	if deltaY > 0 {
		dir = -1
	}
	lb.zoom.WheelZoom(dir, lb.local(p), lb.center())
}

// OnClick zooms in at the click when resting. A click outside the viewport
// closes the lightbox.
func (lb *Lightbox) OnClick(p image.Point) {
	if !lb.IsOpen() {
		return
	}
	if !lb.inside(p) {
		lb.Close()
		return
	}
	if lb.zoom.Mode() == zoom.Resting {
		focal := lb.local(p)
		lb.zoom.ZoomIn(&focal, lb.center())
	}
}

func (lb *Lightbox) OnKeyDown(k input.Key) {
	if !lb.IsOpen() {
		return
	}
	switch k {
	case input.KeyArrowLeft:
		lb.Previous()
	case input.KeyArrowRight:
		lb.Next()
	case input.KeyEscape:
		lb.Close()
	}
}
