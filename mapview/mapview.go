// Package mapview is the overview map: one pin per geotagged item over a
// Mercator graticule, cross-highlighted with the thumbnail grid.
package mapview

import (
	"image"
	"math"

	"drone-gallery/canvas"
	"drone-gallery/gallery"
	"drone-gallery/highlight"
	"drone-gallery/input"
)

const (
	// Source tags the map's writes to the highlight signal.
	Source = "map"

	FitPadding     = 60.0
	SingleLevel    = 5.0
	FocusLevel     = 8.0
	PinRadius      = 8.0
	HighlightScale = 1.4
	// WheelLevels is how many zoom levels one wheel notch moves.
	WheelLevels = 0.5

	popupWidth  = 220
	popupHeight = 64
)

// Marker is a pin at an item's capture position, in world pixels.
type Marker struct {
	Item gallery.Item
	X, Y float64
}

// Map is the overview map widget.
type Map struct {
	cam     canvas.Camera
	markers []Marker
	bounds  image.Rectangle

	signal      *highlight.Signal
	unsubscribe func()
	active      string
	hovered     string // set by this map's own pointer

	popup string

	dragging bool
	last     image.Point

	// OnOpen runs when the popup is clicked.
	OnOpen func(id string)
}

// New returns a map listening to sig.
func New(sig *highlight.Signal) *Map {
	m := &Map{signal: sig}
	m.unsubscribe = sig.Subscribe(m.onSignal)
	return m
}

// Close stops listening to the signal.
func (m *Map) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Map) Camera() *canvas.Camera  { return &m.cam }
func (m *Map) Markers() []Marker       { return m.markers }
func (m *Map) Popup() string           { return m.popup }
func (m *Map) Active() string          { return m.active }
func (m *Map) Bounds() image.Rectangle { return m.bounds }

// SetBounds sets the screen rectangle the map occupies.
func (m *Map) SetBounds(r image.Rectangle) {
	m.bounds = r
}

// SetItems replaces the pins with one per item that has coordinates and
// fits the view to them.
func (m *Map) SetItems(items []gallery.Item) {
	m.markers = m.markers[:0]
	for _, it := range items {
		if it.Metadata == nil || !it.Metadata.Location.HasCoordinates() {
			continue
		}
		x, y := canvas.Project(it.Metadata.Location.Lat, it.Metadata.Location.Lng)
		m.markers = append(m.markers, Marker{Item: it, X: x, Y: y})
	}
	if m.popup != "" && m.marker(m.popup) == nil {
		m.popup = ""
	}
	m.Fit()
}

// Fit frames all pins. Without pins the whole world is shown.
func (m *Map) Fit() {
	w, h := float64(m.bounds.Dx()), float64(m.bounds.Dy())
	if len(m.markers) == 0 {
		m.cam.FitBounds(0, 0, canvas.WorldSize, canvas.WorldSize, w, h, 0, canvas.MinLevel)
		return
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, mk := range m.markers {
		x0, y0 = math.Min(x0, mk.X), math.Min(y0, mk.Y)
		x1, y1 = math.Max(x1, mk.X), math.Max(y1, mk.Y)
	}
	m.cam.FitBounds(x0, y0, x1, y1, w, h, FitPadding, SingleLevel)
}

func (m *Map) marker(id string) *Marker {
	for i := range m.markers {
		if m.markers[i].Item.ID == id {
			return &m.markers[i]
		}
	}
	return nil
}

func (m *Map) center() (float64, float64) {
	c := canvas.Center(m.bounds)
	return c.X, c.Y
}

// PinPosition returns the screen position of a marker.
func (m *Map) PinPosition(mk Marker) (float64, float64) {
	cw, ch := m.center()
	return m.cam.WorldToScreen(mk.X, mk.Y, cw, ch)
}

// PinRadiusFor is the drawn and hit-tested radius of the pin for id.
func (m *Map) PinRadiusFor(id string) float64 {
	if id != "" && id == m.active {
		return PinRadius * HighlightScale
	}
	return PinRadius
}

// MarkerAt returns the id of the top-most pin under p.
func (m *Map) MarkerAt(p image.Point) (string, bool) {
	for i := len(m.markers) - 1; i >= 0; i-- {
		mk := m.markers[i]
		sx, sy := m.PinPosition(mk)
		r := m.PinRadiusFor(mk.Item.ID)
		dx, dy := float64(p.X)-sx, float64(p.Y)-sy
		if dx*dx+dy*dy <= r*r {
			return mk.Item.ID, true
		}
	}
	return "", false
}

// PopupRect is the screen rectangle of the open popup, anchored above its
// pin.
func (m *Map) PopupRect() (image.Rectangle, bool) {
	mk := m.marker(m.popup)
	if mk == nil {
		return image.Rectangle{}, false
	}
	sx, sy := m.PinPosition(*mk)
	x := int(sx) - popupWidth/2
	y := int(sy) - int(PinRadius*HighlightScale) - 8 - popupHeight
	return image.Rect(x, y, x+popupWidth, y+popupHeight), true
}

// Update advances camera animation.
func (m *Map) Update() {
	m.cam.Step()
}

func (m *Map) onSignal(ev highlight.Event) {
	m.active = ev.ID
	if ev.Kind != highlight.Focus || ev.ID == "" {
		return
	}
	if mk := m.marker(ev.ID); mk != nil {
		m.cam.FlyTo(mk.X, mk.Y, FocusLevel)
		m.popup = ev.ID
	}
}

// input.Handler

func (m *Map) OnPointerDown(p image.Point) {
	m.dragging = true
	m.last = p
}

func (m *Map) OnPointerMove(p image.Point) {
	if m.dragging {
		m.cam.Pan(float64(p.X-m.last.X), float64(p.Y-m.last.Y))
		m.last = p
		return
	}
	id, _ := m.MarkerAt(p)
	if id == m.hovered {
		return
	}
	m.hovered = id
	m.signal.Set(id, Source)
}

func (m *Map) OnPointerUp(image.Point) {
	m.dragging = false
}

func (m *Map) OnPointerLeave() {
	m.dragging = false
	if m.hovered != "" {
		m.hovered = ""
		if m.signal.Last().Source == Source {
			m.signal.Clear(Source)
		}
	}
}

// OnWheel zooms the map about the pointer.
func (m *Map) OnWheel(deltaY float64, p image.Point) {
	if deltaY == 0 {
		return
	}
	delta := WheelLevels
	if deltaY > 0 {
		delta = -delta
	}
	cw, ch := m.center()
	m.cam.ZoomAt(float64(p.X), float64(p.Y), cw, ch, delta)
}

// OnClick opens the lightbox from the popup, or opens the popup of the pin
// under the pointer. Clicking empty map closes the popup.
func (m *Map) OnClick(p image.Point) {
	if r, ok := m.PopupRect(); ok && p.In(r) {
		if m.OnOpen != nil {
			m.OnOpen(m.popup)
		}
		return
	}
	if id, ok := m.MarkerAt(p); ok {
		m.popup = id
		return
	}
	m.popup = ""
}

func (m *Map) OnKeyDown(input.Key) {}
