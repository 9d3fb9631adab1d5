package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"drone-gallery/gallery"
	"drone-gallery/zoom"
)

type CameraState struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Level float64 `yaml:"level"`
}

// AppState is the session saved with Ctrl+S.
type AppState struct {
	Items    string                 `yaml:"items,omitempty"`
	OpenID   string                 `yaml:"open_id,omitempty"`
	Zoom     zoom.State             `yaml:"zoom"`
	Camera   CameraState            `yaml:"camera"`
	ActiveID string                 `yaml:"active_id,omitempty"`
	Filter   gallery.FilterCriteria `yaml:"filter,omitempty"`
}

func SaveState(g *Game, filename string) error {
	cam := g.mapView.Camera()
	state := AppState{
		Items:    g.opts.Items,
		Zoom:     g.lightbox.Zoom().State(),
		Camera:   CameraState{X: cam.X, Y: cam.Y, Level: cam.Level},
		ActiveID: g.signal.Current(),
		Filter:   g.criteria,
	}
	if it, ok := g.gallery.Current(); ok {
		state.OpenID = it.ID
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	err = enc.Encode(&state)
	if err != nil {
		return err
	}
	return enc.Close()
}

// LoadState restores a saved session. Filter flags given on the command
// line win over the saved filter. An open item that no longer exists is
// skipped.
func LoadState(g *Game, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var state AppState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse state %s: %w", filename, err)
	}

	if g.criteria.IsEmpty() && !state.Filter.IsEmpty() {
		g.SetCriteria(state.Filter)
	}

	cam := g.mapView.Camera()
	if state.Camera.Level > 0 {
		cam.X = state.Camera.X
		cam.Y = state.Camera.Y
		cam.Level = state.Camera.Level
		g.mapFitted = true
	}

	if state.OpenID != "" {
		if err := g.gallery.OpenID(state.OpenID); err != nil {
			return err
		}
		g.lightbox.Zoom().Restore(state.Zoom)
	}

	if state.ActiveID != "" {
		g.signal.Set(state.ActiveID, SourceState)
	}
	return nil
}
