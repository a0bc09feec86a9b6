package integrator

import (
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// DefaultShadowEpsilon is how far spawned rays start from the surface they leave
const DefaultShadowEpsilon = 1e-4

// WhittedIntegrator is a recursive ray tracer: emission, shadow-tested
// direct light from every emissive entity, mirror reflection and dielectric
// refraction. There is no indirect diffuse bounce.
type WhittedIntegrator struct {
	ShadowEpsilon float64
}

// NewWhittedIntegrator creates an integrator with the default surface offset
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{ShadowEpsilon: DefaultShadowEpsilon}
}

// RayColor implements Integrator
func (w *WhittedIntegrator) RayColor(ray core.Ray, sc scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	return w.Shade(sc, ray, depth, sampler)
}

// Shade computes the radiance along ray. Misses and an exhausted depth budget
// are black.
func (w *WhittedIntegrator) Shade(sc scene.Scene, ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, ok := sc.FindIntersection(ray)
	if !ok {
		return core.Vec3{}
	}
	mat := hit.Material

	// Offset along the normal facing the incoming ray. above stays on the
	// arrival side, below crosses into the surface.
	facing := hit.FacingNormal(ray.Direction)
	above := hit.Coordinate.Add(facing.Multiply(w.ShadowEpsilon))
	below := hit.Coordinate.Subtract(facing.Multiply(w.ShadowEpsilon))

	if mat.Transparent {
		return w.shadeTransparent(sc, ray, hit, depth, sampler, above, below)
	}

	var reflected core.Vec3
	if mat.Reflectivity > 0 {
		direction := core.Reflect(ray.Direction, hit.Normal)
		reflected = w.Shade(sc, core.NewRay(above, direction), depth-1, sampler)
	}

	direct := w.directLight(sc, above, sampler)
	diffuse := mat.SampleDiffuse(hit.TexCoord)
	local := mat.Emission.Add(diffuse.MultiplyVec(direct))

	return core.Lerp(local, reflected, mat.Reflectivity)
}

// shadeTransparent follows the refracted ray only
func (w *WhittedIntegrator) shadeTransparent(sc scene.Scene, ray core.Ray, hit *geometry.Intersection, depth int, sampler core.Sampler, above, below core.Vec3) core.Vec3 {
	direction, crosses := transmit(ray, hit)
	origin := above
	if crosses {
		origin = below
	}
	return w.Shade(sc, core.NewRay(origin, direction), depth-1, sampler)
}

// transmit returns the direction a ray continues in after meeting a
// transparent surface. Entering or exiting is decided by the geometric
// normal. crosses is false on total internal reflection, when the ray is
// mirrored back into the medium instead.
func transmit(ray core.Ray, hit *geometry.Intersection) (core.Vec3, bool) {
	etaRatio := 1.0 / hit.Material.RefractiveIndex
	if ray.Direction.Dot(hit.Normal) > 0 {
		// Exiting: swap the indices
		etaRatio = hit.Material.RefractiveIndex
	}

	facing := hit.FacingNormal(ray.Direction)
	if direction, ok := core.Refract(ray.Direction, facing, etaRatio); ok {
		return direction, true
	}
	return core.Reflect(ray.Direction, facing), false
}

// directLight sums the emission of every light whose sampled surface point is
// visible from origin. Visibility only checks that the shadow ray's nearest
// hit is the light entity itself.
func (w *WhittedIntegrator) directLight(sc scene.Scene, origin core.Vec3, sampler core.Sampler) core.Vec3 {
	var total core.Vec3
	for _, light := range sc.EmissiveEntities() {
		sample := light.SampleEmissiveSurface(sampler)

		toLight := sample.Coordinate.Subtract(origin)
		if toLight.LengthSquared() == 0 {
			continue
		}

		occluder, ok := sc.FindIntersection(core.NewRay(origin, toLight))
		if ok && occluder.EntityID == sample.EntityID {
			total = total.Add(sample.Emission)
		}
	}
	return total
}
