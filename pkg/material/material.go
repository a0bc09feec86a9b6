package material

import "github.com/df07/go-octree-raytracer/pkg/core"

// Material describes how a surface responds to light in the Whitted model.
// Transparent surfaces ignore Reflectivity and every other term when shaded.
type Material struct {
	DiffuseMap      *Texture // optional, overrides Diffuse when set
	Diffuse         core.Vec3
	Emission        core.Vec3
	Reflectivity    float64 // [0, 1]
	Transparent     bool
	RefractiveIndex float64
}

// IsEmissive reports whether the surface emits light
func (m *Material) IsEmissive() bool {
	return !m.Emission.IsZero()
}

// SampleDiffuse returns the diffuse albedo at the given texture coordinates
func (m *Material) SampleDiffuse(uv core.Vec2) core.Vec3 {
	if m.DiffuseMap != nil {
		return m.DiffuseMap.Sample(uv)
	}
	return m.Diffuse
}
