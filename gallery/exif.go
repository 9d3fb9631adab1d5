package gallery

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// EnrichFromEXIF fills metadata the manifest left empty from the image's
// EXIF block: capture time, GPS position and altitude, camera model and
// pixel dimensions. Existing values are never overwritten. Remote items are
// skipped.
func EnrichFromEXIF(it *Item) error {
	if !it.IsLocal() {
		return nil
	}
	file, err := os.Open(it.URL)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	if it.Width == 0 || it.Height == 0 {
		if config, _, err := image.DecodeConfig(file); err == nil {
			it.Width, it.Height = config.Width, config.Height
		}
		if _, err := file.Seek(0, 0); err != nil {
			return fmt.Errorf("seeking file for exif: %w", err)
		}
	}

	x, err := exif.Decode(file)
	if err != nil {
		// No EXIF is common for screenshots and exports.
		return nil
	}

	if it.Metadata == nil {
		it.Metadata = &Metadata{Status: StatusNormal}
	}
	m := it.Metadata

	if m.CaptureDate.IsZero() {
		if t, err := x.DateTime(); err == nil {
			m.CaptureDate = t
		}
	}
	if !m.Location.HasCoordinates() {
		if lat, lng, err := x.LatLong(); err == nil {
			m.Location.Lat, m.Location.Lng = lat, lng
		}
	}
	if m.Location.Altitude == 0 {
		if alt, err := x.Get(exif.GPSAltitude); err == nil {
			if numer, denom, err := alt.Rat2(0); err == nil && denom != 0 {
				m.Location.Altitude = float64(numer) / float64(denom)
			}
		}
	}
	if m.DroneModel == "" {
		if model, err := x.Get(exif.Model); err == nil {
			if s, err := model.StringVal(); err == nil {
				m.DroneModel = s
			}
		}
	}
	if m.Resolution == "" && it.Width > 0 && it.Height > 0 {
		m.Resolution = fmt.Sprintf("%dx%d", it.Width, it.Height)
	}
	return nil
}

// EnrichAll runs EnrichFromEXIF over items, collecting per-item failures
// without stopping.
func EnrichAll(items []Item) []error {
	var errs []error
	for i := range items {
		if err := EnrichFromEXIF(&items[i]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", items[i].ID, err))
		}
	}
	return errs
}
