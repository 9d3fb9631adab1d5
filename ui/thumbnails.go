package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"drone-gallery/gallery"
	"drone-gallery/highlight"
	"drone-gallery/input"
	"drone-gallery/viewer"
)

const (
	// ThumbSource tags the grid's writes to the highlight signal.
	ThumbSource = "thumbnails"

	thumbWidth   = 180
	thumbHeight  = 120
	thumbSpacing = 12
	captionSpace = 22
	cellHeight   = thumbHeight + captionSpace + thumbSpacing
	scrollSpeed  = 40.0
)

var (
	colorThumbBg     = color.RGBA{40, 40, 46, 255}
	colorThumbActive = color.RGBA{0xff, 0xff, 0, 0xff}
)

// Thumbnails is the scrollable grid of item thumbnails. Hovering a
// thumbnail highlights it on the map; clicking opens the lightbox.
type Thumbnails struct {
	items  []gallery.Item
	loader *viewer.Loader
	bounds image.Rectangle
	scroll float64

	signal      *highlight.Signal
	unsubscribe func()
	active      string
	hovered     string

	// OnOpen runs with the index of a clicked thumbnail.
	OnOpen func(index int)
}

// NewThumbnails returns a grid drawing through loader and listening to sig.
func NewThumbnails(loader *viewer.Loader, sig *highlight.Signal) *Thumbnails {
	t := &Thumbnails{loader: loader, signal: sig}
	t.unsubscribe = sig.Subscribe(t.onSignal)
	return t
}

func (t *Thumbnails) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *Thumbnails) SetItems(items []gallery.Item) {
	t.items = items
	t.scroll = t.clampScroll(t.scroll)
}

func (t *Thumbnails) SetBounds(r image.Rectangle) {
	t.bounds = r
	t.scroll = t.clampScroll(t.scroll)
}

func (t *Thumbnails) Bounds() image.Rectangle { return t.bounds }
func (t *Thumbnails) Scroll() float64         { return t.scroll }
func (t *Thumbnails) Active() string          { return t.active }

// Columns is how many thumbnails fit side by side.
func (t *Thumbnails) Columns() int {
	n := (t.bounds.Dx() - thumbSpacing) / (thumbWidth + thumbSpacing)
	if n < 1 {
		return 1
	}
	return n
}

// CellRect is the screen rectangle of the thumbnail image at index i,
// scroll applied.
func (t *Thumbnails) CellRect(i int) image.Rectangle {
	cols := t.Columns()
	col, row := i%cols, i/cols
	x := t.bounds.Min.X + thumbSpacing + col*(thumbWidth+thumbSpacing)
	y := t.bounds.Min.Y + thumbSpacing + row*cellHeight - int(t.scroll)
	return image.Rect(x, y, x+thumbWidth, y+thumbHeight)
}

// IndexAt returns the thumbnail under p, or -1.
func (t *Thumbnails) IndexAt(p image.Point) int {
	if !p.In(t.bounds) {
		return -1
	}
	for i := range t.items {
		if p.In(t.CellRect(i)) {
			return i
		}
	}
	return -1
}

func (t *Thumbnails) contentHeight() int {
	rows := (len(t.items) + t.Columns() - 1) / t.Columns()
	return thumbSpacing + rows*cellHeight
}

func (t *Thumbnails) clampScroll(s float64) float64 {
	maxScroll := float64(t.contentHeight() - t.bounds.Dy())
	return math.Max(0, math.Min(s, maxScroll))
}

// ScrollIntoView scrolls the least amount needed to show thumbnail i.
func (t *Thumbnails) ScrollIntoView(i int) {
	if i < 0 || i >= len(t.items) {
		return
	}
	r := t.CellRect(i)
	switch {
	case r.Min.Y < t.bounds.Min.Y:
		t.scroll -= float64(t.bounds.Min.Y - r.Min.Y + thumbSpacing)
	case r.Max.Y+captionSpace > t.bounds.Max.Y:
		t.scroll += float64(r.Max.Y + captionSpace - t.bounds.Max.Y)
	}
	t.scroll = t.clampScroll(t.scroll)
}

func (t *Thumbnails) indexOf(id string) int {
	for i, it := range t.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (t *Thumbnails) onSignal(ev highlight.Event) {
	t.active = ev.ID
	if ev.Source != ThumbSource {
		t.ScrollIntoView(t.indexOf(ev.ID))
	}
}

// input.Handler

func (t *Thumbnails) OnPointerDown(image.Point) {}
func (t *Thumbnails) OnPointerUp(image.Point)   {}

func (t *Thumbnails) OnPointerMove(p image.Point) {
	id := ""
	if i := t.IndexAt(p); i >= 0 {
		id = t.items[i].ID
	}
	if id == t.hovered {
		return
	}
	t.hovered = id
	t.signal.Set(id, ThumbSource)
}

func (t *Thumbnails) OnPointerLeave() {
	if t.hovered == "" {
		return
	}
	t.hovered = ""
	if t.signal.Last().Source == ThumbSource {
		t.signal.Clear(ThumbSource)
	}
}

func (t *Thumbnails) OnWheel(deltaY float64, _ image.Point) {
	t.scroll = t.clampScroll(t.scroll + deltaY*scrollSpeed)
}

func (t *Thumbnails) OnClick(p image.Point) {
	if i := t.IndexAt(p); i >= 0 && t.OnOpen != nil {
		t.OnOpen(i)
	}
}

func (t *Thumbnails) OnKeyDown(input.Key) {}

// Draw renders the visible thumbnails, requesting missing images.
func (t *Thumbnails) Draw(screen *ebiten.Image, face font.Face, drawText func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)) {
	if t.bounds.Empty() {
		return
	}
	dst := screen.SubImage(t.bounds).(*ebiten.Image)
	for i, it := range t.items {
		r := t.CellRect(i)
		if r.Max.Y+captionSpace < t.bounds.Min.Y || r.Min.Y > t.bounds.Max.Y {
			continue
		}
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), colorThumbBg, false)

		img, _ := t.loader.Image(it.ThumbnailPath())
		if img != nil {
			b := img.Bounds()
			s := math.Min(float64(r.Dx())/float64(b.Dx()), float64(r.Dy())/float64(b.Dy()))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(s, s)
			op.GeoM.Translate(
				float64(r.Min.X)+(float64(r.Dx())-float64(b.Dx())*s)/2,
				float64(r.Min.Y)+(float64(r.Dy())-float64(b.Dy())*s)/2,
			)
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(img, op)
		} else {
			ebitenutil.DebugPrintAt(dst, "...", r.Min.X+r.Dx()/2-8, r.Min.Y+r.Dy()/2-8)
		}

		// Status badge in the top-right corner.
		st := it.Status()
		vector.DrawFilledCircle(dst, float32(r.Max.X-10), float32(r.Min.Y+10), 6, st.Color(), true)

		if it.ID == t.active {
			vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 3, colorThumbActive, false)
		}
		if drawText != nil {
			drawText(dst, face, it.Title, r.Min.X, r.Max.Y+3, color.White)
		}
	}
}
