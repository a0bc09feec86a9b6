package geometry

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// Sphere is a sphere centred on the object-space origin
type Sphere struct {
	Radius float64
}

func (s *Sphere) intersect(ray core.Ray) (localHit, bool) {
	t, ok := core.RaySphereIntersect(ray, core.Vec3{}, s.Radius)
	if !ok {
		return localHit{}, false
	}

	point := ray.At(t)
	normal := point.Multiply(1.0 / s.Radius)
	return localHit{point: point, normal: normal, texCoord: sphereUV(normal)}, true
}

func (s *Sphere) localBounds() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(r.Negate(), r)
}

// sample projects a random point of the enclosing cube onto the surface
func (s *Sphere) sample(sampler core.Sampler) (core.Vec3, core.Vec3) {
	normal := core.SampleOnUnitSphere(sampler.Get3D())
	return normal.Multiply(s.Radius), normal
}

// sphereUV maps a unit normal to longitude/latitude texture coordinates
func sphereUV(normal core.Vec3) core.Vec2 {
	u := 0.5 + math.Atan2(normal.Z, normal.X)/(2*math.Pi)
	v := 0.5 + math.Asin(max(-1, min(1, normal.Y)))/math.Pi
	return core.NewVec2(u, v)
}
