package core

import "math"

const (
	// parallelEpsilon is the direction component below which a ray is treated
	// as parallel to an AABB slab
	parallelEpsilon = 1e-8
	// triangleEpsilon bounds both the Möller–Trumbore determinant and the
	// smallest accepted hit distance
	triangleEpsilon = 1e-7
	// planeEpsilon is the smallest |n·d| for which a ray is not parallel to a plane
	planeEpsilon = 1e-6
)

// RayAABBIntersect tests a ray against a box using the slab method.
// Rays starting inside the box hit; boxes entirely behind the origin miss.
func RayAABBIntersect(ray Ray, box AABB) bool {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		min := box.Min.Axis(axis)
		max := box.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Parallel to this slab: the origin has to lie between the planes
		if math.Abs(direction) < parallelEpsilon {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)

		if tNear > tFar || tFar < 0 {
			return false
		}
	}

	return true
}

// RayTriangleIntersect implements the Möller–Trumbore algorithm without
// backface culling. It returns the hit distance and the barycentric (u, v)
// weights of v1 and v2.
func RayTriangleIntersect(ray Ray, v0, v1, v2 Vec3) (t, u, v float64, ok bool) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Ray parallel to the triangle plane
	if math.Abs(det) < triangleEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(v0)
	u = invDet * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = invDet * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = invDet * edge2.Dot(q)
	if t <= triangleEpsilon {
		return 0, 0, 0, false
	}

	return t, u, v, true
}

// RaySphereIntersect solves the ray/sphere intersection geometrically through
// the point of closest approach. The nearer non-negative root wins; a ray
// starting inside the sphere returns the far root.
func RaySphereIntersect(ray Ray, center Vec3, radius float64) (float64, bool) {
	toCenter := center.Subtract(ray.Origin)
	tca := toCenter.Dot(ray.Direction)
	d2 := toCenter.LengthSquared() - tca*tca
	radius2 := radius * radius
	if d2 > radius2 {
		return 0, false
	}

	thc := math.Sqrt(radius2 - d2)
	t0 := tca - thc
	t1 := tca + thc

	if t0 >= 0 {
		return t0, true
	}
	if t1 >= 0 {
		return t1, true
	}
	return 0, false
}

// RayPlaneIntersect intersects a ray with the infinite plane through origin
// with the given normal
func RayPlaneIntersect(ray Ray, origin, normal Vec3) (float64, bool) {
	denominator := normal.Dot(ray.Direction)
	if math.Abs(denominator) < planeEpsilon {
		return 0, false
	}

	t := origin.Subtract(ray.Origin).Dot(normal) / denominator
	if t < 0 {
		return 0, false
	}
	return t, true
}
