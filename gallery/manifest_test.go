package gallery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testManifest = `
title: Bridge survey
items:
  - id: a
    url: photos/a.jpg
    title: Pier 1
    metadata:
      capture_date: 2024-03-01T09:15:00Z
      location: {name: North pier, lat: 35.1, lng: 139.2}
      status: attention
      tags:
        - {id: crack, label: Crack, color: "#ff5722"}
  - url: /abs/b.jpg
  - id: a
    url: https://example.com/c.jpg
    metadata:
      status: Broken
`

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "gallery.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadManifest(writeManifest(t, dir, testManifest))
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}

	if m.Title != "Bridge survey" || len(m.Items) != 3 {
		t.Fatalf("Unexpected manifest %q with %d items", m.Title, len(m.Items))
	}

	a := m.Items[0]
	if a.URL != filepath.Join(dir, "photos", "a.jpg") {
		t.Errorf("Expected relative path resolved, got %s", a.URL)
	}
	if a.Type != MediaImage {
		t.Errorf("Expected default type image, got %s", a.Type)
	}
	if a.Metadata.Status != StatusAttention || !a.HasTag("crack") {
		t.Errorf("Unexpected metadata %+v", a.Metadata)
	}
	if a.Metadata.CaptureDate.Year() != 2024 {
		t.Errorf("Expected capture year 2024, got %d", a.Metadata.CaptureDate.Year())
	}

	b := m.Items[1]
	if b.ID == "" || b.Title != "b" || b.URL != "/abs/b.jpg" {
		t.Errorf("Unexpected defaults for item b: %+v", b)
	}

	c := m.Items[2]
	if c.ID == "a" {
		t.Errorf("Expected duplicate id to be replaced")
	}
	if c.IsLocal() || c.URL != "https://example.com/c.jpg" {
		t.Errorf("Expected remote url kept, got %s", c.URL)
	}
	if c.Metadata.Status != StatusNormal {
		t.Errorf("Expected unknown status to become normal, got %s", c.Metadata.Status)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
	if _, err := LoadManifest(writeManifest(t, dir, "items: []\n")); !errors.Is(err, ErrNoItems) {
		t.Errorf("Expected ErrNoItems, got %v", err)
	}
	if _, err := LoadManifest(writeManifest(t, dir, "items: [\n")); err == nil {
		t.Errorf("Expected parse error")
	}
}

func TestLoadManifestStableIDs(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "items:\n  - url: a.jpg\n  - url: b.jpg\n  - url: a.jpg\n")

	first, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}
	second, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("Failed to reload manifest: %v", err)
	}

	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Errorf("Expected item %d to keep its id, got %s then %s", i, first.Items[i].ID, second.Items[i].ID)
		}
	}
	if first.Items[0].ID == first.Items[2].ID {
		t.Errorf("Expected the same image listed twice to get distinct ids")
	}

	// An unchanged reload keeps the open item open.
	g := New(first.Items)
	if err := g.Open(1); err != nil {
		t.Fatal(err)
	}
	g.Replace(second.Items)
	if !g.IsOpen() || g.Index() != 1 {
		t.Errorf("Expected open item to survive an unchanged reload, open=%v index=%d", g.IsOpen(), g.Index())
	}
	if err := g.OpenID(first.Items[1].ID); err != nil {
		t.Errorf("Expected first load id to resolve after reload: %v", err)
	}
}

func TestEnrichSkipsRemoteItems(t *testing.T) {
	it := SampleItems()[0]
	before := *it.Metadata
	if err := EnrichFromEXIF(&it); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if it.Metadata.DroneModel != before.DroneModel {
		t.Errorf("Expected remote item untouched")
	}
}

func TestEnrichMissingFile(t *testing.T) {
	it := Item{ID: "x", URL: filepath.Join(t.TempDir(), "nope.jpg")}
	if err := EnrichFromEXIF(&it); err == nil {
		t.Errorf("Expected error for missing file")
	}
	if errs := EnrichAll([]Item{it}); len(errs) != 1 {
		t.Errorf("Expected 1 collected error, got %d", len(errs))
	}
}

func TestWatchDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, testManifest)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := Watch(ctx, path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("items:\n  - id: z\n    url: z.jpg\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if r.Err != nil {
			t.Fatalf("Unexpected reload error: %v", r.Err)
		}
		if len(r.Manifest.Items) != 1 || r.Manifest.Items[0].ID != "z" {
			t.Errorf("Unexpected reloaded items: %+v", r.Manifest.Items)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	calls := make(chan int, 10)
	for i := 0; i < 5; i++ {
		n := i
		d.Trigger(func() { calls <- n })
	}

	select {
	case n := <-calls:
		if n != 4 {
			t.Errorf("Expected last callback (4), got %d", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for debounced callback")
	}

	select {
	case n := <-calls:
		t.Errorf("Expected a single callback, got extra %d", n)
	case <-time.After(100 * time.Millisecond):
	}
}
