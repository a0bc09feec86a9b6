package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along the ray. depth is the
	// remaining recursion budget; zero yields black.
	RayColor(ray core.Ray, sc scene.Scene, sampler core.Sampler, depth int) core.Vec3
}

// ErrUnknownIntegrator is returned by New for names it does not know
var ErrUnknownIntegrator = errors.New("integrator: unknown integrator")

// Names lists the integrators New accepts
func Names() []string {
	return []string{"whitted", "path"}
}

// New returns the integrator registered under name
func New(name string) (Integrator, error) {
	switch name {
	case "whitted", "":
		return NewWhittedIntegrator(), nil
	case "path":
		return NewPathTracingIntegrator(), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownIntegrator, name)
}
