package mapview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"drone-gallery/canvas"
)

var (
	colorBackground = color.RGBA{24, 34, 44, 255}
	colorGrid       = color.RGBA{255, 255, 255, 24}
	colorAxis       = color.RGBA{255, 255, 255, 60}
	colorOutside    = color.RGBA{16, 16, 20, 255}
	colorPinBorder  = color.RGBA{255, 255, 255, 255}
	colorPopup      = color.RGBA{250, 250, 250, 240}
	colorPopupText  = color.RGBA{33, 33, 33, 255}
)

// Draw renders the graticule, the pins and the popup, clipped to the map
// bounds.
func (m *Map) Draw(screen *ebiten.Image, face font.Face, drawText func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)) {
	if m.bounds.Empty() {
		return
	}
	dst := screen.SubImage(m.bounds).(*ebiten.Image)
	dst.Fill(colorBackground)
	canvas.DrawGraticule(&m.cam, dst, m.bounds, colorGrid, colorAxis, colorOutside)

	// The highlighted pin is drawn last so it sits on top.
	var top *Marker
	for i := range m.markers {
		mk := &m.markers[i]
		if mk.Item.ID == m.active {
			top = mk
			continue
		}
		m.drawPin(dst, *mk)
	}
	if top != nil {
		m.drawPin(dst, *top)
	}

	if r, ok := m.PopupRect(); ok && drawText != nil {
		mk := m.marker(m.popup)
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), colorPopup, true)
		st := mk.Item.Status()
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), 4, float32(r.Dy()), st.Color(), false)
		label := mk.Item.Title
		if loc := mk.Item.Metadata.Location; loc.Name != "" {
			label += "\n" + loc.Name
		}
		label += fmt.Sprintf("\n%s  (click to open)", st.Label())
		drawText(dst, face, label, r.Min.X+10, r.Min.Y+6, colorPopupText)
	}
}

func (m *Map) drawPin(dst *ebiten.Image, mk Marker) {
	sx, sy := m.PinPosition(mk)
	r := float32(m.PinRadiusFor(mk.Item.ID))
	vector.DrawFilledCircle(dst, float32(sx), float32(sy), r+2, colorPinBorder, true)
	vector.DrawFilledCircle(dst, float32(sx), float32(sy), r, mk.Item.Status().Color(), true)
}
