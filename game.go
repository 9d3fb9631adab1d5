package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"drone-gallery/gallery"
	"drone-gallery/highlight"
	"drone-gallery/input"
	"drone-gallery/mapview"
	"drone-gallery/ui"
	"drone-gallery/viewer"
	"drone-gallery/zoom"
)

type Game struct {
	opts     Options
	title    string
	all      []gallery.Item
	criteria gallery.FilterCriteria

	gallery  *gallery.Gallery
	signal   *highlight.Signal
	loader   *viewer.Loader
	lightbox *viewer.Lightbox
	mapView  *mapview.Map
	thumbs   *ui.Thumbnails
	ui       *ui.UISystem
	face     font.Face

	tracker input.Tracker
	router  input.Router

	reloads     <-chan gallery.Reload
	cancelWatch context.CancelFunc

	screenWidth  int
	screenHeight int
	mapFitted    bool

	screenshotRequested bool
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := zoom.NewConfig(opts.MinZoom, opts.MaxZoom, opts.ZoomStep)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:         opts,
		gallery:      gallery.New(nil),
		signal:       highlight.New(),
		loader:       viewer.NewLoader(LoaderWorkers),
		face:         LoadUIFont(FontFile, FontSize),
		screenWidth:  WindowWidth,
		screenHeight: WindowHeight,
	}

	g.lightbox, err = viewer.NewLightbox(g.gallery, cfg)
	if err != nil {
		return nil, err
	}
	g.mapView = mapview.New(g.signal)
	g.thumbs = ui.NewThumbnails(g.loader, g.signal)
	g.ui = ui.NewUISystem(g.getFace, g.getScreenSize, ui.Actions{
		Close:      g.lightbox.Close,
		Previous:   g.lightbox.Previous,
		Next:       g.lightbox.Next,
		ZoomIn:     g.lightbox.ZoomIn,
		ZoomOut:    g.lightbox.ZoomOut,
		Reset:      g.lightbox.Reset,
		CanZoomIn:  func() bool { return cfg.CanZoomIn(g.lightbox.Zoom().State()) },
		CanZoomOut: func() bool { return cfg.CanZoomOut(g.lightbox.Zoom().State()) },
		CanReset:   func() bool { return cfg.CanReset(g.lightbox.Zoom().State()) },
		Title:      g.lightboxTitle,
	}, DrawTextLines)
	g.ui.Visible = g.gallery.IsOpen

	g.thumbs.OnOpen = g.open
	g.mapView.OnOpen = func(id string) {
		if err := g.gallery.OpenID(id); err != nil {
			g.report(err)
		}
	}
	// Whatever the lightbox shows is focused on the map.
	g.gallery.OnChange(func(it gallery.Item) {
		g.signal.Focus(it.ID, SourceLightbox)
	})

	g.router.Pick = g.pick

	if err := g.loadItems(); err != nil {
		return nil, err
	}
	if g.criteria, err = opts.Criteria(); err != nil {
		return nil, err
	}
	g.applyItems()

	g.layout()

	if opts.State != "" {
		if err := LoadState(g, opts.State); err != nil {
			log.Println("load state:", err)
			g.report(err)
		}
	}

	if opts.Watch && opts.Items != "" {
		ctx, cancel := context.WithCancel(context.Background())
		reloads, err := gallery.Watch(ctx, opts.Items, WatchDebounce)
		if err != nil {
			cancel()
			log.Println("watch:", err)
			g.report(err)
		} else {
			g.reloads = reloads
			g.cancelWatch = cancel
		}
	}
	return g, nil
}

// Close stops the manifest watcher.
func (g *Game) Close() {
	if g.cancelWatch != nil {
		g.cancelWatch()
	}
	g.mapView.Close()
	g.thumbs.Close()
}

func (g *Game) loadItems() error {
	if g.opts.Items == "" {
		g.title = "Sample inspection"
		g.all = gallery.SampleItems()
	} else {
		m, err := gallery.LoadManifest(g.opts.Items)
		if err != nil {
			return err
		}
		g.setManifest(m)
	}
	g.enrich()
	return nil
}

// enrich fills missing metadata from EXIF when --exif is set.
func (g *Game) enrich() {
	if !g.opts.EXIF {
		return
	}
	for _, err := range gallery.EnrichAll(g.all) {
		log.Println("exif:", err)
		g.report(err)
	}
}

func (g *Game) setManifest(m *gallery.Manifest) {
	g.title = m.Title
	if g.title == "" {
		g.title = g.opts.Items
	}
	g.all = m.Items
}

// applyItems filters the full item list and hands the result to every
// widget. A failing filter shows everything.
func (g *Game) applyItems() {
	items, err := gallery.Filter(g.all, g.criteria)
	if err != nil {
		log.Println("filter:", err)
		g.report(err)
		items = g.all
	}
	g.gallery.Replace(items)
	g.mapView.SetItems(items)
	g.thumbs.SetItems(items)
	g.mapFitted = !g.mapView.Bounds().Empty()
	g.router.Reset()
}

// SetCriteria replaces the active filter.
func (g *Game) SetCriteria(c gallery.FilterCriteria) {
	g.criteria = c
	g.applyItems()
}

func (g *Game) open(index int) {
	if err := g.gallery.Open(index); err != nil {
		g.report(err)
	}
}

func (g *Game) report(err error) {
	g.ui.Debug.Add(err.Error())
}

func (g *Game) getFace() font.Face        { return g.face }
func (g *Game) getScreenSize() (int, int) { return g.screenWidth, g.screenHeight }

func (g *Game) lightboxTitle() string {
	it, ok := g.gallery.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s  (%d / %d)", Ellipsize(it.Title, 60), g.gallery.Index()+1, g.gallery.Len())
}

// layout sizes the widgets for the current screen.
func (g *Game) layout() {
	w, h := g.screenWidth, g.screenHeight
	split := int(float64(w) * ThumbnailsShare)
	g.thumbs.SetBounds(image.Rect(0, HeaderHeight, split, h))
	mapBounds := image.Rect(split+DividerThickness, HeaderHeight, w, h)
	if mapBounds != g.mapView.Bounds() {
		g.mapView.SetBounds(mapBounds)
		if !g.mapFitted {
			g.mapView.Fit()
			g.mapFitted = true
		}
	}
	g.lightbox.SetViewport(viewer.LayoutViewport(image.Rect(0, 0, w, h), ui.TitleBarHeight))
}

// pick returns the widget under p.
func (g *Game) pick(p image.Point) input.Handler {
	if g.gallery.IsOpen() {
		if g.ui.IsMouseOver(p.X, p.Y) {
			return g.ui
		}
		return g.lightbox
	}
	switch {
	case p.In(g.thumbs.Bounds()):
		return g.thumbs
	case p.In(g.mapView.Bounds()):
		return g.mapView
	}
	return nil
}

func (g *Game) Update() error {
	g.pollReload()
	g.loader.Poll()
	g.mapView.Update()
	g.layout()

	g.handleControlKeys()

	frame := input.Poll()
	g.HandleEvents(g.tracker.Next(frame))
	g.updateCursor(frame.Cursor)
	return nil
}

// HandleEvents routes one tick's events. Keys go to the lightbox while it
// is open.
func (g *Game) HandleEvents(events []input.Event) {
	wasOpen := g.gallery.IsOpen()
	if wasOpen {
		g.router.Keys = g.lightbox
	} else {
		g.router.Keys = nil
	}
	g.router.Route(events)
	if g.gallery.IsOpen() != wasOpen {
		// The widget stack changed under the pointer.
		g.router.Reset()
	}
}

func (g *Game) pollReload() {
	if g.reloads == nil {
		return
	}
	select {
	case r := <-g.reloads:
		if r.Err != nil {
			log.Println("reload:", r.Err)
			g.report(r.Err)
			return
		}
		log.Printf("reloaded %s: %d items", g.opts.Items, len(r.Manifest.Items))
		g.setManifest(r.Manifest)
		g.enrich()
		g.applyItems()
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	g.drawHeader(screen)
	g.thumbs.Draw(screen, g.face, DrawTextLines)
	g.mapView.Draw(screen, g.face, DrawTextLines)
	split := g.thumbs.Bounds().Max.X
	vector.DrawFilledRect(screen, float32(split), HeaderHeight, DividerThickness, float32(g.screenHeight-HeaderHeight), ColorDivider, false)

	if g.gallery.IsOpen() {
		g.lightbox.Draw(screen, g.loader, g.face, DrawTextLines)
	}
	g.ui.Draw(screen)

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		f, err := os.Create(ScreenshotFile)
		if err != nil {
			log.Println("screenshot error:", err)
		} else {
			defer f.Close()
			if err := png.Encode(f, screen); err != nil {
				log.Println("screenshot error:", err)
			} else {
				log.Println("Screenshot saved as", ScreenshotFile)
			}
		}
	}
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.screenWidth), HeaderHeight, ColorHeader, false)
	summary := fmt.Sprintf("%s  -  %d of %d items", g.title, g.gallery.Len(), len(g.all))
	if !g.criteria.IsEmpty() {
		summary += "  (filtered)"
	}
	DrawTextLines(screen, g.face, summary, 12, 10, ColorHeaderText)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenWidth = outsideWidth
	g.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}
