package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points.
// Bounding an empty point set is a programming error and panics.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		panic("core: cannot build an AABB from zero points")
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// NewAABBFromPlane bounds the square of half-width extent centred on origin and
// spanned by the u/v tangents, thickened by thickness along the normal.
func NewAABBFromPlane(origin, normal, u, v Vec3, extent, thickness float64) AABB {
	du := u.Multiply(extent)
	dv := v.Multiply(extent)
	dn := normal.Multiply(thickness / 2)

	points := make([]Vec3, 0, 8)
	for _, su := range []float64{-1, 1} {
		for _, sv := range []float64{-1, 1} {
			for _, sn := range []float64{-1, 1} {
				points = append(points, origin.Add(du.Multiply(su)).Add(dv.Multiply(sv)).Add(dn.Multiply(sn)))
			}
		}
	}
	return NewAABBFromPoints(points...)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Intersects reports whether two boxes overlap. Touching faces count as overlap.
func (aabb AABB) Intersects(other AABB) bool {
	return aabb.Min.X <= other.Max.X && aabb.Max.X >= other.Min.X &&
		aabb.Min.Y <= other.Max.Y && aabb.Max.Y >= other.Min.Y &&
		aabb.Min.Z <= other.Max.Z && aabb.Max.Z >= other.Min.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Corners returns the eight corner points of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		corner := aabb.Min
		if i&1 != 0 {
			corner.X = aabb.Max.X
		}
		if i&2 != 0 {
			corner.Y = aabb.Max.Y
		}
		if i&4 != 0 {
			corner.Z = aabb.Max.Z
		}
		corners[i] = corner
	}
	return corners
}

// Octant returns one of the eight equal sub-boxes. Bit 0 of index selects the
// upper half along X, bit 1 along Y and bit 2 along Z.
func (aabb AABB) Octant(index int) AABB {
	center := aabb.Center()
	child := AABB{Min: aabb.Min, Max: center}
	if index&1 != 0 {
		child.Min.X, child.Max.X = center.X, aabb.Max.X
	}
	if index&2 != 0 {
		child.Min.Y, child.Max.Y = center.Y, aabb.Max.Y
	}
	if index&4 != 0 {
		child.Min.Z, child.Max.Z = center.Z, aabb.Max.Z
	}
	return child
}

// Transform returns the axis-aligned bounds of this box after applying m
func (aabb AABB) Transform(m mgl64.Mat4) AABB {
	corners := aabb.Corners()
	points := make([]Vec3, len(corners))
	for i, corner := range corners {
		points[i] = TransformPoint(m, corner)
	}
	return NewAABBFromPoints(points...)
}

// String returns a string representation for debugging
func (aabb AABB) String() string {
	return fmt.Sprintf("AABB{min=%v max=%v}", aabb.Min, aabb.Max)
}
