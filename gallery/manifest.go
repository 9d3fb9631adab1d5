package gallery

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk description of a gallery.
type Manifest struct {
	Title string `yaml:"title"`
	Items []Item `yaml:"items"`
}

// LoadManifest reads a YAML manifest. Relative image paths are resolved
// against the manifest's directory, missing ids are derived from the image
// path and position and unknown statuses become normal. Loading the same
// file twice yields the same ids.
func LoadManifest(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", filename, err)
	}
	if len(m.Items) == 0 {
		return nil, fmt.Errorf("manifest %s: %w", filename, ErrNoItems)
	}

	dir := filepath.Dir(filename)
	seen := make(map[string]bool, len(m.Items))
	for i := range m.Items {
		it := &m.Items[i]
		if it.Type == "" {
			it.Type = MediaImage
		}
		if it.Title == "" {
			it.Title = strings.TrimSuffix(filepath.Base(it.URL), filepath.Ext(it.URL))
		}
		it.URL = resolvePath(dir, it.URL)
		it.Thumbnail = resolvePath(dir, it.Thumbnail)
		if it.ID == "" || seen[it.ID] {
			it.ID = ItemID(it.URL, i)
		}
		seen[it.ID] = true
		if it.Metadata != nil {
			it.Metadata.Status = ParseStatus(string(it.Metadata.Status))
		}
	}
	return &m, nil
}

func resolvePath(dir, p string) string {
	if p == "" || isRemote(p) || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// isRemote reports whether p is a URL rather than a local file.
func isRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// IsLocal reports whether the item's image can be read from disk.
func (it Item) IsLocal() bool {
	return it.URL != "" && !isRemote(it.URL)
}

// ItemID derives a stable id for the item at index i with image path url.
func ItemID(url string, i int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", i, url)))
	return hex.EncodeToString(sum[:8])
}
