package gallery

import (
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"drone-gallery/engine"
)

// Bounds is a latitude/longitude box.
type Bounds struct {
	North float64 `yaml:"north"`
	South float64 `yaml:"south"`
	East  float64 `yaml:"east"`
	West  float64 `yaml:"west"`
}

// Contains reports whether (lat, lng) lies in b, edges included.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat <= b.North && lat >= b.South && lng <= b.East && lng >= b.West
}

// FilterCriteria narrows the item list. Zero-valued fields do not filter.
// All set criteria must hold (AND); within Tags and Statuses any one value
// is enough (OR).
type FilterCriteria struct {
	From      time.Time `yaml:"from,omitempty"`
	To        time.Time `yaml:"to,omitempty"`
	Bounds    *Bounds   `yaml:"bounds,omitempty"`
	Tags      []string  `yaml:"tags,omitempty"`
	Statuses  []Status  `yaml:"statuses,omitempty"`
	TextQuery string    `yaml:"query,omitempty"`
	// Script is a Starlark predicate evaluated with the fields of
	// ScriptFields bound as globals.
	Script string `yaml:"script,omitempty"`
}

// IsEmpty reports whether c filters nothing.
func (c FilterCriteria) IsEmpty() bool {
	return c.From.IsZero() && c.To.IsZero() && c.Bounds == nil &&
		len(c.Tags) == 0 && len(c.Statuses) == 0 && c.TextQuery == "" && c.Script == ""
}

// itemSource adapts an item slice to fuzzy.Source.
type itemSource []Item

func (s itemSource) String(i int) string { return s[i].SearchText() }
func (s itemSource) Len() int            { return len(s) }

// Filter returns the items matching c in their original order.
func Filter(items []Item, c FilterCriteria) ([]Item, error) {
	if c.IsEmpty() {
		return items, nil
	}

	var pred *engine.Predicate
	if c.Script != "" {
		var err error
		pred, err = engine.NewPredicate("filter", c.Script)
		if err != nil {
			return nil, err
		}
	}

	var queryHits map[int]bool
	if c.TextQuery != "" {
		queryHits = make(map[int]bool)
		for _, m := range fuzzy.FindFrom(c.TextQuery, itemSource(items)) {
			queryHits[m.Index] = true
		}
	}

	out := make([]Item, 0, len(items))
	for i, it := range items {
		if queryHits != nil && !queryHits[i] {
			continue
		}
		if !c.matchMetadata(it) {
			continue
		}
		if pred != nil {
			ok, err := pred.Match(ScriptFields(it))
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", it.ID, err)
			}
			if !ok {
				continue
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func (c FilterCriteria) matchMetadata(it Item) bool {
	m := it.Metadata
	needsMeta := !c.From.IsZero() || !c.To.IsZero() || c.Bounds != nil || len(c.Tags) > 0
	if m == nil {
		if needsMeta {
			return false
		}
		return c.matchStatus(it.Status())
	}
	if !c.From.IsZero() && m.CaptureDate.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && m.CaptureDate.After(c.To) {
		return false
	}
	if c.Bounds != nil {
		if !m.Location.HasCoordinates() || !c.Bounds.Contains(m.Location.Lat, m.Location.Lng) {
			return false
		}
	}
	if len(c.Tags) > 0 {
		found := false
		for _, tag := range c.Tags {
			if it.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return c.matchStatus(it.Status())
}

func (c FilterCriteria) matchStatus(s Status) bool {
	if len(c.Statuses) == 0 {
		return true
	}
	for _, want := range c.Statuses {
		if want == s {
			return true
		}
	}
	return false
}

// ScriptFields are the globals a filter script sees for it.
func ScriptFields(it Item) map[string]interface{} {
	fields := map[string]interface{}{
		"id":           it.ID,
		"title":        it.Title,
		"type":         string(it.Type),
		"status":       string(it.Status()),
		"tags":         []string{},
		"location":     "",
		"lat":          0.0,
		"lng":          0.0,
		"altitude":     0.0,
		"drone_model":  "",
		"resolution":   "",
		"capture_date": "",
		"year":         0,
		"custom":       map[string]interface{}{},
	}
	m := it.Metadata
	if m == nil {
		return fields
	}
	tags := make([]string, 0, 2*len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, t.ID, t.Label)
	}
	fields["tags"] = tags
	fields["location"] = m.Location.Name
	fields["lat"] = m.Location.Lat
	fields["lng"] = m.Location.Lng
	fields["altitude"] = m.Location.Altitude
	fields["drone_model"] = m.DroneModel
	fields["resolution"] = m.Resolution
	if !m.CaptureDate.IsZero() {
		fields["capture_date"] = m.CaptureDate
		fields["year"] = m.CaptureDate.Year()
	}
	if m.CustomFields != nil {
		fields["custom"] = m.CustomFields
	}
	return fields
}
