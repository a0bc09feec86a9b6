package geometry

import (
	"fmt"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Kind identifies which shape an Entity carries
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindMesh
)

// String returns the lowercase shape name
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindMesh:
		return "mesh"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Entity is a renderable object: a shape placed in the world by a transform
// and shaded with a material. Exactly one of the shape pointers is set,
// matching Kind. Entities are immutable once handed to a scene.
type Entity struct {
	id        uint32
	kind      Kind
	transform core.Transform
	material  *material.Material

	sphere *Sphere
	plane  *Plane
	mesh   *MeshInstance
}

// localHit is an intersection expressed in object space
type localHit struct {
	point    core.Vec3
	normal   core.Vec3
	texCoord core.Vec2
}

// NewSphereEntity places a sphere of the given object-space radius
func NewSphereEntity(id uint32, transform core.Transform, mat *material.Material, radius float64) Entity {
	return Entity{id: id, kind: KindSphere, transform: transform, material: mat, sphere: &Sphere{Radius: radius}}
}

// NewPlaneEntity places a finite square plane of half-width extent through the
// object-space origin
func NewPlaneEntity(id uint32, transform core.Transform, mat *material.Material, normal core.Vec3, extent float64) Entity {
	return Entity{id: id, kind: KindPlane, transform: transform, material: mat, plane: newPlane(normal, extent, true)}
}

// NewInfinitePlaneEntity places an unbounded plane. It reports no bounds, so
// spatial indexes test it against every ray. Extent is only used when
// sampling the plane as a light.
func NewInfinitePlaneEntity(id uint32, transform core.Transform, mat *material.Material, normal core.Vec3, extent float64) Entity {
	return Entity{id: id, kind: KindPlane, transform: transform, material: mat, plane: newPlane(normal, extent, false)}
}

// NewMeshEntity places an instance of a model
func NewMeshEntity(id uint32, transform core.Transform, mat *material.Material, model *Model) Entity {
	return Entity{id: id, kind: KindMesh, transform: transform, material: mat, mesh: &MeshInstance{Model: model}}
}

// ID returns the entity's unique identifier
func (e *Entity) ID() uint32 { return e.id }

// Kind returns which shape the entity carries
func (e *Entity) Kind() Kind { return e.kind }

// Transform returns the object-to-world placement
func (e *Entity) Transform() core.Transform { return e.transform }

// Material returns the surface material
func (e *Entity) Material() *material.Material { return e.material }

// IsEmissive reports whether the entity is a light source
func (e *Entity) IsEmissive() bool {
	return e.material != nil && e.material.IsEmissive()
}

// Bounds returns the world-space AABB, or false for unbounded entities
func (e *Entity) Bounds() (core.AABB, bool) {
	switch e.kind {
	case KindSphere:
		return e.sphere.localBounds().Transform(e.transform.World()), true
	case KindPlane:
		if !e.plane.Finite {
			return core.AABB{}, false
		}
		return e.plane.localBounds().Transform(e.transform.World()), true
	case KindMesh:
		return e.mesh.Model.Bounds().Transform(e.transform.World()), true
	}
	panic(fmt.Sprintf("geometry: unknown entity kind %v", e.kind))
}

// Intersect finds where a world-space ray meets the entity. The ray is moved
// into object space, solved there, and the hit is mapped back. The returned
// distance is measured in world space from the original ray origin.
func (e *Entity) Intersect(ray core.Ray) (*Intersection, bool) {
	if e.kind == KindPlane && e.plane.Finite {
		// Thin-box pre-test confines the infinite plane solve to the square
		bounds, _ := e.Bounds()
		if !core.RayAABBIntersect(ray, bounds) {
			return nil, false
		}
	}

	local := e.transform.ToLocal(ray)

	var hit localHit
	var ok bool
	switch e.kind {
	case KindSphere:
		hit, ok = e.sphere.intersect(local)
	case KindPlane:
		hit, ok = e.plane.intersect(local)
	case KindMesh:
		hit, ok = e.mesh.intersect(local)
	default:
		panic(fmt.Sprintf("geometry: unknown entity kind %v", e.kind))
	}
	if !ok {
		return nil, false
	}

	coordinate := e.transform.ToWorld(hit.point)
	distance := coordinate.Subtract(ray.Origin).Length()
	if distance <= 0 {
		return nil, false
	}

	return &Intersection{
		Coordinate: coordinate,
		Normal:     e.transform.NormalToWorld(hit.normal),
		TexCoord:   hit.texCoord,
		Material:   e.material,
		Distance:   distance,
		EntityID:   e.id,
	}, true
}

// SampleEmissiveSurface draws a world-space point on the entity's surface for
// direct lighting
func (e *Entity) SampleEmissiveSurface(sampler core.Sampler) SurfaceSample {
	var point, normal core.Vec3
	switch e.kind {
	case KindSphere:
		point, normal = e.sphere.sample(sampler)
	case KindPlane:
		point, normal = e.plane.sample(sampler)
	case KindMesh:
		point, normal = e.mesh.sample(sampler)
	default:
		panic(fmt.Sprintf("geometry: unknown entity kind %v", e.kind))
	}

	var emission core.Vec3
	if e.material != nil {
		emission = e.material.Emission
	}

	return SurfaceSample{
		Coordinate: e.transform.ToWorld(point),
		Normal:     e.transform.NormalToWorld(normal),
		Emission:   emission,
		EntityID:   e.id,
	}
}

// String identifies the entity by shape and id
func (e *Entity) String() string {
	return fmt.Sprintf("%v#%d", e.kind, e.id)
}
