package geometry

import (
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Intersection records where a ray met an entity. Everything is in world space.
type Intersection struct {
	Coordinate core.Vec3
	Normal     core.Vec3 // unit, geometric outward normal (not flipped toward the ray)
	TexCoord   core.Vec2
	Material   *material.Material
	Distance   float64 // from the ray origin, > 0
	EntityID   uint32
}

// FacingNormal returns the normal flipped to oppose the ray direction
func (i *Intersection) FacingNormal(direction core.Vec3) core.Vec3 {
	if direction.Dot(i.Normal) > 0 {
		return i.Normal.Negate()
	}
	return i.Normal
}

// Closer returns whichever of a and b is nearer, treating nil as a miss
func Closer(a, b *Intersection) *Intersection {
	if a == nil {
		return b
	}
	if b == nil || a.Distance <= b.Distance {
		return a
	}
	return b
}

// SurfaceSample is a point drawn from an emissive entity's surface
type SurfaceSample struct {
	Coordinate core.Vec3
	Normal     core.Vec3
	Emission   core.Vec3
	EntityID   uint32
}
