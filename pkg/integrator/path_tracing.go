package integrator

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// DefaultRussianRouletteMinBounces is how many bounces a path survives unconditionally
const DefaultRussianRouletteMinBounces = 3

// PathTracingIntegrator extends the Whitted model with one cosine-weighted
// diffuse bounce per hit, so surfaces pick up light reflected by their
// surroundings. Direct light uses the same shadow test as Whitted; emission
// reached through a diffuse bounce is not counted again.
type PathTracingIntegrator struct {
	ShadowEpsilon             float64
	RussianRouletteMinBounces int
	whitted                   *WhittedIntegrator
}

// NewPathTracingIntegrator creates a path tracer with default settings
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{
		ShadowEpsilon:             DefaultShadowEpsilon,
		RussianRouletteMinBounces: DefaultRussianRouletteMinBounces,
		whitted:                   NewWhittedIntegrator(),
	}
}

// RayColor implements Integrator
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	return pt.trace(ray, sc, sampler, depth, 0, core.NewVec3(1, 1, 1), true)
}

func (pt *PathTracingIntegrator) trace(ray core.Ray, sc scene.Scene, sampler core.Sampler, depth, bounce int, throughput core.Vec3, countEmission bool) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	shouldTerminate, rrCompensation := pt.applyRussianRoulette(bounce, throughput, sampler)
	if shouldTerminate {
		return core.Vec3{}
	}

	hit, ok := sc.FindIntersection(ray)
	if !ok {
		return core.Vec3{}
	}
	mat := hit.Material

	facing := hit.FacingNormal(ray.Direction)
	above := hit.Coordinate.Add(facing.Multiply(pt.ShadowEpsilon))
	below := hit.Coordinate.Subtract(facing.Multiply(pt.ShadowEpsilon))

	if mat.Transparent {
		direction, crosses := transmit(ray, hit)
		origin := above
		if crosses {
			origin = below
		}
		return pt.trace(core.NewRay(origin, direction), sc, sampler, depth-1, bounce+1, throughput, true).Multiply(rrCompensation)
	}

	var reflected core.Vec3
	if mat.Reflectivity > 0 {
		direction := core.Reflect(ray.Direction, hit.Normal)
		reflected = pt.trace(core.NewRay(above, direction), sc, sampler, depth-1, bounce+1, throughput.Multiply(mat.Reflectivity), true)
	}

	var emission core.Vec3
	if countEmission {
		emission = mat.Emission
	}

	diffuse := mat.SampleDiffuse(hit.TexCoord)
	incoming := pt.whitted.directLight(sc, above, sampler)
	if mat.Reflectivity < 1 && !diffuse.IsZero() {
		// Cosine-weighted sampling cancels the Lambertian cosine/pi term
		direction := core.SampleCosineHemisphere(facing, sampler.Get2D())
		bounced := throughput.MultiplyVec(diffuse).Multiply(1 - mat.Reflectivity)
		incoming = incoming.Add(pt.trace(core.NewRay(above, direction), sc, sampler, depth-1, bounce+1, bounced, false))
	}
	local := emission.Add(diffuse.MultiplyVec(incoming))

	return core.Lerp(local, reflected, mat.Reflectivity).Multiply(rrCompensation)
}

// applyRussianRoulette determines if a path should be terminated and returns the compensation factor
func (pt *PathTracingIntegrator) applyRussianRoulette(bounce int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	if bounce < pt.RussianRouletteMinBounces {
		return false, 1.0
	}

	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if sampler.Get1D() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
