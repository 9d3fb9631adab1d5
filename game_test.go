package main

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"drone-gallery/gallery"
	"drone-gallery/input"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(defaultOptions())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

// click builds the events of a press and release at p.
func click(p image.Point) []input.Event {
	return []input.Event{
		{Type: input.PointerMove, Pos: p},
		{Type: input.PointerDown, Pos: p},
		{Type: input.PointerUp, Pos: p},
		{Type: input.Click, Pos: p},
	}
}

func TestNewGameSamples(t *testing.T) {
	g := newTestGame(t)

	if g.gallery.Len() != 3 {
		t.Fatalf("expected 3 sample items, got %d", g.gallery.Len())
	}
	if g.gallery.IsOpen() {
		t.Error("lightbox should start closed")
	}
	if len(g.mapView.Markers()) != 3 {
		t.Errorf("expected 3 map markers, got %d", len(g.mapView.Markers()))
	}
	if g.thumbs.Bounds().Empty() || g.mapView.Bounds().Empty() {
		t.Error("widgets should be laid out")
	}
	if g.thumbs.Bounds().Max.X >= g.mapView.Bounds().Min.X {
		t.Error("thumbnails should sit left of the map")
	}
}

func TestNewGameBadZoomConfig(t *testing.T) {
	opts := defaultOptions()
	opts.MaxZoom = 0.5
	if _, err := NewGame(opts); err == nil {
		t.Error("expected an error for max zoom below min zoom")
	}
}

func TestNewGameMissingManifest(t *testing.T) {
	opts := defaultOptions()
	opts.Items = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewGame(opts); err == nil {
		t.Error("expected an error for a missing manifest")
	}
}

func TestOptionsCriteria(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "filter.star")
	if err := os.WriteFile(script, []byte("year == 2023"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := defaultOptions()
	opts.Statuses = []string{"attention", "repair-needed"}
	opts.From = "2023-06-16"
	opts.To = "2023-06-18"
	opts.Filter = "@" + script

	c, err := opts.Criteria()
	if err != nil {
		t.Fatalf("Criteria: %v", err)
	}
	if len(c.Statuses) != 2 || c.Statuses[0] != gallery.StatusAttention || c.Statuses[1] != gallery.StatusRepairNeeded {
		t.Errorf("unexpected statuses %v", c.Statuses)
	}
	if !c.From.Equal(time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected from %v", c.From)
	}
	if !c.To.After(time.Date(2023, 6, 18, 23, 59, 0, 0, time.UTC)) {
		t.Errorf("a bare --to date should include the whole day, got %v", c.To)
	}
	if c.Script != "year == 2023" {
		t.Errorf("expected the script file contents, got %q", c.Script)
	}

	opts.From = "June"
	if _, err := opts.Criteria(); err == nil {
		t.Error("expected an error for an unparsable date")
	}
}

func TestThumbnailClickOpensLightbox(t *testing.T) {
	g := newTestGame(t)

	p := g.thumbs.CellRect(1).Min.Add(image.Pt(20, 20))
	g.HandleEvents(click(p))

	if !g.gallery.IsOpen() {
		t.Fatal("clicking a thumbnail should open the lightbox")
	}
	it, _ := g.gallery.Current()
	if it.ID != "2" {
		t.Errorf("expected item 2, got %q", it.ID)
	}
	if g.signal.Current() != "2" || g.signal.Last().Source != SourceLightbox {
		t.Errorf("the open item should be focused, got %+v", g.signal.Last())
	}
	if !g.mapView.Camera().Flying() {
		t.Error("the map should fly to the opened item")
	}

	g.HandleEvents([]input.Event{{Type: input.KeyDown, Key: input.KeyArrowRight}})
	it, _ = g.gallery.Current()
	if it.ID != "3" {
		t.Errorf("arrow right should show item 3, got %q", it.ID)
	}

	g.HandleEvents([]input.Event{{Type: input.KeyDown, Key: input.KeyEscape}})
	if g.gallery.IsOpen() {
		t.Error("escape should close the lightbox")
	}
}

func TestKeysIgnoredWhileClosed(t *testing.T) {
	g := newTestGame(t)
	g.HandleEvents([]input.Event{{Type: input.KeyDown, Key: input.KeyArrowRight}})
	if g.gallery.IsOpen() || g.gallery.Index() != 0 {
		t.Error("arrow keys should do nothing while the lightbox is closed")
	}
}

func TestThumbnailHoverHighlightsMap(t *testing.T) {
	g := newTestGame(t)

	p := g.thumbs.CellRect(2).Min.Add(image.Pt(5, 5))
	g.HandleEvents([]input.Event{{Type: input.PointerMove, Pos: p}})
	if g.mapView.Active() != "3" {
		t.Errorf("expected map highlight 3, got %q", g.mapView.Active())
	}

	// Moving onto the map leaves the grid and clears its highlight.
	g.HandleEvents([]input.Event{{Type: input.PointerMove, Pos: g.mapView.Bounds().Min.Add(image.Pt(1, 1))}})
	if g.mapView.Active() != "" {
		t.Errorf("expected the highlight to clear, got %q", g.mapView.Active())
	}
}

func TestToolbarButtons(t *testing.T) {
	g := newTestGame(t)
	if err := g.gallery.Open(0); err != nil {
		t.Fatal(err)
	}

	// With a 1280 wide screen the buttons run right to left: x, 1:1, +, -.
	g.HandleEvents(click(image.Pt(1160, 25)))
	if s := g.lightbox.Zoom().State().Scale; s != 1.5 {
		t.Errorf("expected scale 1.5 after +, got %v", s)
	}
	g.HandleEvents(click(image.Pt(1200, 25)))
	if s := g.lightbox.Zoom().State().Scale; s != 1 {
		t.Errorf("expected scale 1 after 1:1, got %v", s)
	}
	g.HandleEvents(click(image.Pt(1255, 25)))
	if g.gallery.IsOpen() {
		t.Error("x should close the lightbox")
	}
}

func TestSetCriteria(t *testing.T) {
	g := newTestGame(t)

	g.SetCriteria(gallery.FilterCriteria{Statuses: []gallery.Status{gallery.StatusAttention}})
	if g.gallery.Len() != 1 || len(g.mapView.Markers()) != 1 {
		t.Fatalf("expected one item left, got %d (%d markers)", g.gallery.Len(), len(g.mapView.Markers()))
	}
	if len(g.all) != 3 {
		t.Error("filtering must keep the full item list")
	}

	g.SetCriteria(gallery.FilterCriteria{Script: "lng >"})
	if g.gallery.Len() != 3 {
		t.Errorf("a broken script should show everything, got %d", g.gallery.Len())
	}
	if len(g.ui.Debug.Text()) == 0 {
		t.Error("the script error should be reported")
	}

	g.SetCriteria(gallery.FilterCriteria{})
	if g.gallery.Len() != 3 {
		t.Errorf("expected all items back, got %d", g.gallery.Len())
	}
}

func TestManifestGame(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "gallery.yaml")
	data := `title: Roof survey
items:
  - id: a
    url: a.jpg
    metadata:
      location: {lat: 48.85, lng: 2.35}
      status: attention
  - id: b
    url: b.jpg
`
	if err := os.WriteFile(manifest, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := defaultOptions()
	opts.Items = manifest
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	if g.title != "Roof survey" || g.gallery.Len() != 2 {
		t.Errorf("unexpected game %q with %d items", g.title, g.gallery.Len())
	}
	if len(g.mapView.Markers()) != 1 {
		t.Errorf("only placed items get markers, got %d", len(g.mapView.Markers()))
	}
}

func TestReloadReportsEXIFErrors(t *testing.T) {
	g := newTestGame(t)
	g.opts.EXIF = true
	reloads := make(chan gallery.Reload, 1)
	g.reloads = reloads

	missing := filepath.Join(t.TempDir(), "gone.jpg")
	reloads <- gallery.Reload{Manifest: &gallery.Manifest{
		Title: "Reloaded",
		Items: []gallery.Item{{ID: "x", URL: missing}},
	}}
	g.pollReload()

	if g.title != "Reloaded" || g.gallery.Len() != 1 {
		t.Errorf("expected the reloaded manifest, got %q with %d items", g.title, g.gallery.Len())
	}
	if !strings.Contains(g.ui.Debug.Text(), "x:") {
		t.Errorf("expected the exif error in the debug panel, got %q", g.ui.Debug.Text())
	}
}
