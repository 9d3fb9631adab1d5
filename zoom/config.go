// Package zoom implements the pan/zoom transform engine behind the image
// viewer. It has no dependency on any UI toolkit: the view layer forwards
// pointer and wheel input and renders the resulting State.
package zoom

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMinScale = 1.0
	DefaultMaxScale = 3.0
	DefaultZoomStep = 0.5

	// scaleEpsilon absorbs float drift from repeated step arithmetic so that
	// stepping back down always lands exactly on MinScale.
	scaleEpsilon = 1e-9
)

// ErrInvalidConfig is returned for configurations that cannot describe a
// usable zoom range.
var ErrInvalidConfig = errors.New("invalid zoom config")

// Config is immutable per viewer instance.
type Config struct {
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
	ZoomStep float64 `yaml:"zoom_step"`
}

// DefaultConfig returns {1, 3, 0.5}.
func DefaultConfig() Config {
	return Config{
		MinScale: DefaultMinScale,
		MaxScale: DefaultMaxScale,
		ZoomStep: DefaultZoomStep,
	}
}

// NewConfig builds and validates a Config.
func NewConfig(minScale, maxScale, zoomStep float64) (Config, error) {
	c := Config{MinScale: minScale, MaxScale: maxScale, ZoomStep: zoomStep}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects non-finite values, non-positive scales or step, and an
// empty range.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"min scale": c.MinScale,
		"max scale": c.MaxScale,
		"zoom step": c.ZoomStep,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	if c.MinScale <= 0 {
		return fmt.Errorf("%w: min scale %g must be positive", ErrInvalidConfig, c.MinScale)
	}
	if c.MaxScale <= c.MinScale {
		return fmt.Errorf("%w: max scale %g must exceed min scale %g", ErrInvalidConfig, c.MaxScale, c.MinScale)
	}
	if c.ZoomStep <= 0 {
		return fmt.Errorf("%w: zoom step %g must be positive", ErrInvalidConfig, c.ZoomStep)
	}
	return nil
}

// Clamp restricts scale to [MinScale, MaxScale], snapping values within
// scaleEpsilon of a bound onto it.
func (c Config) Clamp(scale float64) float64 {
	if scale-c.MinScale < scaleEpsilon {
		return c.MinScale
	}
	if c.MaxScale-scale < scaleEpsilon {
		return c.MaxScale
	}
	return scale
}
