package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"drone-gallery/input"
)

// Actions are the lightbox commands the toolbar triggers. The Can* funcs
// drive the disabled state of the zoom buttons.
type Actions struct {
	Close, Previous, Next           func()
	ZoomIn, ZoomOut, Reset          func()
	CanZoomIn, CanZoomOut, CanReset func() bool

	// Title returns the text shown at the left of the toolbar.
	Title func() string
}

// TitleBarHeight is the height of the lightbox toolbar.
const TitleBarHeight = 50

// UISystem is the lightbox toolbar plus the debug panel. Buttons are laid
// out right-aligned along the top edge of the screen.
type UISystem struct {
	buttons       []*Button
	actions       Actions
	getFontFace   func() font.Face
	getScreenSize func() (int, int)
	drawText      func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)
	Debug         *DebugPanel

	// Visible reports whether the toolbar is shown (the lightbox is open).
	Visible func() bool
}

func NewUISystem(getFontFace func() font.Face, getScreenSize func() (int, int), actions Actions, drawText func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)) *UISystem {
	ui := &UISystem{
		actions:       actions,
		getFontFace:   getFontFace,
		getScreenSize: getScreenSize,
		drawText:      drawText,
		Debug:         &DebugPanel{},
	}
	ui.initButtons()
	return ui
}

func (ui *UISystem) initButtons() {
	a := ui.actions
	// Right to left.
	ui.buttons = []*Button{
		{Label: "x", W: 30, H: 30, OnClick: a.Close},
		{Label: "1:1", W: 44, H: 30, OnClick: a.Reset, Enabled: a.CanReset},
		{Label: "+", W: 30, H: 30, OnClick: a.ZoomIn, Enabled: a.CanZoomIn},
		{Label: "-", W: 30, H: 30, OnClick: a.ZoomOut, Enabled: a.CanZoomOut},
		{Label: ">", W: 30, H: 30, OnClick: a.Next},
		{Label: "<", W: 30, H: 30, OnClick: a.Previous},
	}
	ui.updateButtonPositions()
}

func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	x := float32(w) - 10
	for _, b := range ui.buttons {
		x -= b.W
		b.X = x
		b.Y = 10
		x -= 10
	}
}

func (ui *UISystem) visible() bool {
	return ui.Visible == nil || ui.Visible()
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	if !ui.visible() {
		return false
	}
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// ButtonAt returns the button under (mx, my).
func (ui *UISystem) ButtonAt(mx, my int) *Button {
	if !ui.visible() {
		return nil
	}
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return b
		}
	}
	return nil
}

// input.Handler: only clicks matter to the toolbar.

func (ui *UISystem) OnPointerDown(image.Point)    {}
func (ui *UISystem) OnPointerMove(image.Point)    {}
func (ui *UISystem) OnPointerUp(image.Point)      {}
func (ui *UISystem) OnPointerLeave()              {}
func (ui *UISystem) OnWheel(float64, image.Point) {}
func (ui *UISystem) OnKeyDown(input.Key)          {}

func (ui *UISystem) OnClick(p image.Point) {
	if b := ui.ButtonAt(p.X, p.Y); b != nil {
		b.Click()
	}
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	if ui.visible() {
		ui.updateButtonPositions()
		if ui.actions.Title != nil && ui.drawText != nil && ui.getFontFace != nil {
			ui.drawText(screen, ui.getFontFace(), ui.actions.Title(), 24, 16, color.White)
		}
		for _, b := range ui.buttons {
			b.Draw(screen, ui.getFontFace, ui.drawText)
		}
	}
	if ui.Debug != nil {
		ui.Debug.Draw(screen, ui.getScreenSize, ui.getFontFace, ui.drawText)
	}
}
