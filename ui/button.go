package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	colorButton         = color.RGBA{60, 60, 70, 200}
	colorButtonDisabled = color.RGBA{45, 45, 50, 140}
	colorLabelDisabled  = color.RGBA{130, 130, 130, 255}
)

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()
	// Enabled, when set, greys the button out and ignores clicks while it
	// returns false.
	Enabled func() bool
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

func (b *Button) IsEnabled() bool {
	return b.Enabled == nil || b.Enabled()
}

// Click runs OnClick if the button is enabled.
func (b *Button) Click() bool {
	if !b.IsEnabled() || b.OnClick == nil {
		return false
	}
	b.OnClick()
	return true
}

// Draw renders the button. It uses the provided font.Face via getter.
func (b *Button) Draw(screen *ebiten.Image, getFace func() font.Face, drawText func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)) {
	bg, fg := colorButton, color.Color(color.White)
	if !b.IsEnabled() {
		bg, fg = colorButtonDisabled, colorLabelDisabled
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, bg, false)
	if getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	drawText(screen, face, b.Label, int(b.X)+10, int(b.Y)+8, fg)
}
