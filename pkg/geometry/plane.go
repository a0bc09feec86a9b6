package geometry

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// planeThickness is the depth of the box that confines a finite plane
const planeThickness = 0.1

// Plane passes through the object-space origin. U and V span the surface
// and, together with Normal, form an orthonormal basis.
type Plane struct {
	Normal core.Vec3
	U      core.Vec3
	V      core.Vec3
	Extent float64 // half-width of the square along U and V
	Finite bool
}

func newPlane(normal core.Vec3, extent float64, finite bool) *Plane {
	normal = normal.Normalize()

	helper := core.NewVec3(0, 1, 0)
	if math.Abs(normal.Y) > 1-1e-9 {
		helper = core.NewVec3(1, 0, 0)
	}
	u := helper.Cross(normal).Normalize()
	v := u.Cross(normal).Normalize()

	return &Plane{Normal: normal, U: u, V: v, Extent: extent, Finite: finite}
}

func (p *Plane) intersect(ray core.Ray) (localHit, bool) {
	t, ok := core.RayPlaneIntersect(ray, core.Vec3{}, p.Normal)
	if !ok {
		return localHit{}, false
	}

	point := ray.At(t)
	su := point.Dot(p.U)
	sv := point.Dot(p.V)
	if p.Finite && (math.Abs(su) > p.Extent || math.Abs(sv) > p.Extent) {
		return localHit{}, false
	}

	return localHit{point: point, normal: p.Normal, texCoord: p.uv(su, sv)}, true
}

// uv maps surface coordinates to texture space. Finite planes stretch the
// texture once over the square; infinite planes tile it every unit.
func (p *Plane) uv(su, sv float64) core.Vec2 {
	if p.Finite && p.Extent > 0 {
		return core.NewVec2((su/p.Extent+1)/2, (sv/p.Extent+1)/2)
	}
	return core.NewVec2(su, sv)
}

func (p *Plane) localBounds() core.AABB {
	return core.NewAABBFromPlane(core.Vec3{}, p.Normal, p.U, p.V, p.Extent, planeThickness)
}

func (p *Plane) sample(sampler core.Sampler) (core.Vec3, core.Vec3) {
	s := sampler.Get2D()
	point := p.U.Multiply(p.Extent * (2*s.X - 1)).Add(p.V.Multiply(p.Extent * (2*s.Y - 1)))
	return point, p.Normal
}
