package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// maxDebugLines is how many recent messages the panel keeps.
const maxDebugLines = 5

// DebugPanel shows recent load and filter errors in the bottom-right corner.
type DebugPanel struct {
	lines []string
}

// SetError replaces all messages with msg.
func (d *DebugPanel) SetError(msg string) {
	d.lines = d.lines[:0]
	d.Add(msg)
}

// Add appends msg, dropping the oldest message beyond maxDebugLines.
func (d *DebugPanel) Add(msg string) {
	if msg == "" {
		return
	}
	d.lines = append(d.lines, msg)
	if n := len(d.lines); n > maxDebugLines {
		d.lines = append(d.lines[:0], d.lines[n-maxDebugLines:]...)
	}
}

func (d *DebugPanel) Clear() {
	d.lines = nil
}

// Text is the panel content, oldest first.
func (d *DebugPanel) Text() string {
	return strings.Join(d.lines, "\n")
}

func (d *DebugPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)) {
	if d == nil || len(d.lines) == 0 {
		return
	}
	w, h := getScreenSize()
	pw, ph := 420, 16*len(d.lines)+16
	x := w - pw - 10
	y := h - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), color.RGBA{40, 40, 40, 220}, false)
	if getFace != nil && drawText != nil {
		if face := getFace(); face != nil {
			drawText(screen, face, d.Text(), x+8, y+8, color.RGBA{255, 200, 50, 255})
		}
	}
}
