// Package gallery holds the inspection photo collection: items and their
// metadata, navigation of the open item, filtering and manifest loading.
package gallery

import (
	"image/color"
	"strings"
	"time"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Status is the inspection verdict for a photographed asset.
type Status string

const (
	StatusNormal       Status = "normal"
	StatusAttention    Status = "attention"
	StatusRepairNeeded Status = "repair_needed"
	StatusRepaired     Status = "repaired"
)

var (
	colorStatusNormal       = color.RGBA{0x21, 0x96, 0xf3, 0xff}
	colorStatusAttention    = color.RGBA{0xff, 0x98, 0x00, 0xff}
	colorStatusRepairNeeded = color.RGBA{0xd3, 0x2f, 0x2f, 0xff}
	colorStatusRepaired     = color.RGBA{0x4c, 0xaf, 0x50, 0xff}
)

// Color is the chip and map pin color for s.
func (s Status) Color() color.RGBA {
	switch s {
	case StatusRepairNeeded:
		return colorStatusRepairNeeded
	case StatusAttention:
		return colorStatusAttention
	case StatusRepaired:
		return colorStatusRepaired
	default:
		return colorStatusNormal
	}
}

// Label is the human readable status.
func (s Status) Label() string {
	switch s {
	case StatusRepairNeeded:
		return "Repair needed"
	case StatusAttention:
		return "Attention"
	case StatusRepaired:
		return "Repaired"
	default:
		return "Normal"
	}
}

// ParseStatus accepts the manifest spelling of a status. Unknown values map
// to normal.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAttention:
		return StatusAttention
	case StatusRepairNeeded, "repair-needed":
		return StatusRepairNeeded
	case StatusRepaired:
		return StatusRepaired
	default:
		return StatusNormal
	}
}

type Location struct {
	Name     string  `yaml:"name"`
	Lat      float64 `yaml:"lat"`
	Lng      float64 `yaml:"lng"`
	Altitude float64 `yaml:"altitude,omitempty"`
}

// HasCoordinates reports whether the location can be placed on the map.
// (0, 0) is treated as unset, as the manifest format has no null.
func (l Location) HasCoordinates() bool {
	return l.Lat != 0 && l.Lng != 0
}

type Tag struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// RGBA parses the tag's "#rrggbb" color, falling back to grey.
func (t Tag) RGBA() color.RGBA {
	c, ok := parseHexColor(t.Color)
	if !ok {
		return color.RGBA{0x75, 0x75, 0x75, 0xff}
	}
	return c
}

type Metadata struct {
	CaptureDate  time.Time      `yaml:"capture_date"`
	Location     Location       `yaml:"location"`
	Resolution   string         `yaml:"resolution"`
	DroneModel   string         `yaml:"drone_model"`
	Tags         []Tag          `yaml:"tags"`
	Status       Status         `yaml:"status"`
	CustomFields map[string]any `yaml:"custom_fields,omitempty"`
}

// Item is one photo (or video) in the gallery.
type Item struct {
	ID        string    `yaml:"id"`
	Type      MediaType `yaml:"type"`
	URL       string    `yaml:"url"`
	Thumbnail string    `yaml:"thumbnail"`
	Title     string    `yaml:"title"`
	Alt       string    `yaml:"alt,omitempty"`
	Caption   string    `yaml:"caption,omitempty"`
	Width     int       `yaml:"width,omitempty"`
	Height    int       `yaml:"height,omitempty"`
	Duration  float64   `yaml:"duration,omitempty"`
	Metadata  *Metadata `yaml:"metadata,omitempty"`
}

// ThumbnailPath returns the thumbnail source, falling back to the full image.
func (it Item) ThumbnailPath() string {
	if it.Thumbnail != "" {
		return it.Thumbnail
	}
	return it.URL
}

// Status returns the item's status, normal when it has no metadata.
func (it Item) Status() Status {
	if it.Metadata == nil || it.Metadata.Status == "" {
		return StatusNormal
	}
	return it.Metadata.Status
}

// HasTag reports whether the item carries a tag with the given id or label.
func (it Item) HasTag(tag string) bool {
	if it.Metadata == nil {
		return false
	}
	for _, t := range it.Metadata.Tags {
		if strings.EqualFold(t.ID, tag) || strings.EqualFold(t.Label, tag) {
			return true
		}
	}
	return false
}

// SearchText is the text the free-text query matches against.
func (it Item) SearchText() string {
	parts := []string{it.Title, it.Caption}
	if m := it.Metadata; m != nil {
		parts = append(parts, m.Location.Name, m.DroneModel, string(m.Status))
		for _, t := range m.Tags {
			parts = append(parts, t.Label)
		}
	}
	return strings.Join(parts, " ")
}

func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, false
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{v[0], v[1], v[2], 0xff}, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
