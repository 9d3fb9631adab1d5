package viewer

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"drone-gallery/canvas"
	"drone-gallery/gallery"
	"drone-gallery/zoom"
)

// DrawTextFunc draws s with its top-left corner at (x, y).
type DrawTextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

var (
	colorBackdrop  = color.RGBA{0, 0, 0, 220}
	colorViewport  = color.RGBA{18, 18, 20, 255}
	colorLabelBg   = color.RGBA{0, 0, 0, 160}
	colorChipText  = color.RGBA{255, 255, 255, 255}
	colorChipPlain = color.RGBA{66, 66, 72, 255}
)

// Chip is one metadata badge under the image.
type Chip struct {
	Text  string
	Color color.RGBA
}

// Chips lists the metadata badges for it: date, location, resolution,
// drone, status and tags.
func Chips(it gallery.Item) []Chip {
	m := it.Metadata
	if m == nil {
		return nil
	}
	var chips []Chip
	if !m.CaptureDate.IsZero() {
		chips = append(chips, Chip{Text: m.CaptureDate.Format("2006-01-02 15:04"), Color: colorChipPlain})
	}
	if m.Location.Name != "" {
		chips = append(chips, Chip{Text: m.Location.Name, Color: colorChipPlain})
	}
	if m.Resolution != "" {
		chips = append(chips, Chip{Text: m.Resolution, Color: colorChipPlain})
	}
	if m.DroneModel != "" {
		chips = append(chips, Chip{Text: m.DroneModel, Color: colorChipPlain})
	}
	chips = append(chips, Chip{Text: it.Status().Label(), Color: it.Status().Color()})
	for _, t := range m.Tags {
		chips = append(chips, Chip{Text: t.Label, Color: t.RGBA()})
	}
	return chips
}

// CursorShape maps the controller's cursor onto the shapes ebiten offers.
func CursorShape(c zoom.Cursor) ebiten.CursorShapeType {
	switch c {
	case zoom.CursorGrab, zoom.CursorGrabbing:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeCrosshair
	}
}

// Draw renders the backdrop, the image in its viewport under the current
// zoom transform, the zoom label and the metadata chips.
func (lb *Lightbox) Draw(screen *ebiten.Image, loader *Loader, face font.Face, drawText DrawTextFunc) {
	it, ok := lb.gallery.Current()
	if !ok {
		return
	}
	sb := screen.Bounds()
	vector.DrawFilledRect(screen, float32(sb.Min.X), float32(sb.Min.Y), float32(sb.Dx()), float32(sb.Dy()), colorBackdrop, false)

	vp := lb.viewport
	vector.DrawFilledRect(screen, float32(vp.Min.X), float32(vp.Min.Y), float32(vp.Dx()), float32(vp.Dy()), colorViewport, false)

	img, st := loader.Image(it.URL)
	dst := screen.SubImage(vp).(*ebiten.Image)
	switch {
	case img != nil:
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		op := &ebiten.DrawImageOptions{}
		op.GeoM = canvas.ImageGeoM(lb.zoom.State(), w, h, vp)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
		if st == Failed {
			ebitenutil.DebugPrintAt(dst, "Could not load "+it.URL, vp.Min.X+8, vp.Max.Y-20)
		}
	default:
		ebitenutil.DebugPrintAt(dst, "Loading...", vp.Min.X+vp.Dx()/2-30, vp.Min.Y+vp.Dy()/2)
	}

	if label, show := lb.zoom.Label(); show {
		x, y := vp.Max.X-70, vp.Min.Y+10
		vector.DrawFilledRect(screen, float32(x), float32(y), 60, 24, colorLabelBg, false)
		if drawText != nil {
			drawText(screen, face, label, x+8, y+4, color.White)
		}
	}

	lb.drawChips(screen, it, face, drawText)
}

func (lb *Lightbox) drawChips(screen *ebiten.Image, it gallery.Item, face font.Face, drawText DrawTextFunc) {
	if drawText == nil {
		return
	}
	x, y := lb.viewport.Min.X, lb.viewport.Max.Y+10
	for _, c := range Chips(it) {
		w := textWidth(face, c.Text) + 16
		if x+w > lb.viewport.Max.X {
			x = lb.viewport.Min.X
			y += 28
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), 22, c.Color, true)
		drawText(screen, face, c.Text, x+8, y+3, colorChipText)
		x += w + 6
	}
	if it.Caption != "" {
		drawText(screen, face, it.Caption, lb.viewport.Min.X, y+30, color.White)
	}
}

func textWidth(face font.Face, s string) int {
	if face == nil {
		return 7 * len(s)
	}
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := font.MeasureString(face, line).Ceil(); lw > w {
			w = lw
		}
	}
	return w
}

// ChromeHeight is the space reserved below the viewport for chips.
const ChromeHeight = 70

// LayoutViewport places the image viewport inside the screen, leaving room
// for the title bar above and the chips below.
func LayoutViewport(screen image.Rectangle, titleBar int) image.Rectangle {
	const margin = 24
	return image.Rect(
		screen.Min.X+margin,
		screen.Min.Y+titleBar,
		screen.Max.X-margin,
		screen.Max.Y-ChromeHeight,
	)
}
