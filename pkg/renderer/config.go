package renderer

import (
	"fmt"

	"github.com/df07/go-octree-raytracer/pkg/integrator"
)

// Config controls a single render
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int   // passes; each pixel is shaded once per pass
	MaxDepth        int   // recursion budget handed to the integrator
	NumWorkers      int   // 0 = one per logical CPU
	Seed            int64 // seed for the master RNG when the caller builds one

	// Integrator shades each primary ray. nil selects Whitted.
	Integrator integrator.Integrator
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 4,
		MaxDepth:        5,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidResolution, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.NumWorkers)
	}
	return nil
}
