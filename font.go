package main

import (
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// LoadUIFont attempts to load the TrueType font at path. If it fails, returns basicfont.Face7x13.
func LoadUIFont(path string, size float64) font.Face {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("LoadUIFont: %s not found, using basic font: %v", path, err)
		return basicfont.Face7x13
	}
	f, err := opentype.Parse(data)
	if err != nil {
		log.Println("LoadUIFont: parse error, using basic font:", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Println("LoadUIFont: new face error, using basic font:", err)
		return basicfont.Face7x13
	}
	return face
}

// DrawTextLines draws multiline text with the provided font.Face and color starting at (x,y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	// y is the top of the first line; text.Draw wants the baseline.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+i*lineHeight, clr)
	}
}

// Ellipsize shortens s to at most max runes.
func Ellipsize(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 2 {
		return s
	}
	return string(r[:max-1]) + "…"
}
