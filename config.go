package main

import (
	"image/color"
	"time"
)

const (
	// --- Window ---
	WindowWidth  = 1280
	WindowHeight = 800
	WindowTitle  = "Drone Inspection Gallery"

	// --- Lightbox zoom ---
	GalleryMinZoom  = 1.0
	GalleryMaxZoom  = 4.0
	GalleryZoomStep = 0.5

	// --- Layout ---
	HeaderHeight     = 36
	ThumbnailsShare  = 0.55 // fraction of the width given to the grid
	DividerThickness = 2

	// --- Loading ---
	LoaderWorkers = 2
	WatchDebounce = 250 * time.Millisecond

	// --- Files ---
	DefaultStateFile = "state.yaml"
	ScreenshotFile   = "screenshot.png"
	FontFile         = "fonts/Roboto-Regular.ttf"
	FontSize         = 14

	// Sources for the active-id signal besides the widgets' own.
	SourceLightbox = "lightbox"
	SourceState    = "state"
)

var (
	// --- Colors ---
	ColorBackground = color.RGBA{30, 30, 35, 255}
	ColorHeader     = color.RGBA{22, 22, 26, 255}
	ColorHeaderText = color.RGBA{220, 220, 220, 255}
	ColorDivider    = color.RGBA{0, 0, 0, 120}
)
