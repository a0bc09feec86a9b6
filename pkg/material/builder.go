package material

import "github.com/df07/go-octree-raytracer/pkg/core"

// DefaultRefractiveIndex is the index of refraction of glass
const DefaultRefractiveIndex = 1.5

// Builder assembles a Material with chained setters
type Builder struct {
	material Material
}

// NewBuilder starts from a white, non-emissive, opaque material
func NewBuilder() *Builder {
	return &Builder{material: Material{
		Diffuse:         core.NewVec3(1, 1, 1),
		RefractiveIndex: 1.0,
	}}
}

// WithDiffuseColor sets a flat diffuse albedo and clears any diffuse map
func (b *Builder) WithDiffuseColor(color core.Vec3) *Builder {
	b.material.Diffuse = color
	b.material.DiffuseMap = nil
	return b
}

// WithDiffuseMap samples the diffuse albedo from a texture
func (b *Builder) WithDiffuseMap(texture *Texture) *Builder {
	b.material.DiffuseMap = texture
	return b
}

// WithEmission makes the surface a light source
func (b *Builder) WithEmission(emission core.Vec3) *Builder {
	b.material.Emission = emission
	return b
}

// WithReflectivity sets the mirror blend factor, clamped to [0, 1]
func (b *Builder) WithReflectivity(reflectivity float64) *Builder {
	b.material.Reflectivity = max(0, min(1, reflectivity))
	return b
}

// WithTransparency makes the surface a refractive dielectric
func (b *Builder) WithTransparency(refractiveIndex float64) *Builder {
	b.material.Transparent = true
	b.material.RefractiveIndex = refractiveIndex
	return b
}

// Build returns the assembled material
func (b *Builder) Build() *Material {
	m := b.material
	return &m
}

// NewDiffuse is shorthand for a flat-coloured opaque material
func NewDiffuse(color core.Vec3) *Material {
	return NewBuilder().WithDiffuseColor(color).Build()
}

// NewEmissive is shorthand for a light source
func NewEmissive(emission core.Vec3) *Material {
	return NewBuilder().WithDiffuseColor(core.Vec3{}).WithEmission(emission).Build()
}

// NewMirror is shorthand for a tinted reflector
func NewMirror(color core.Vec3, reflectivity float64) *Material {
	return NewBuilder().WithDiffuseColor(color).WithReflectivity(reflectivity).Build()
}

// NewGlass is shorthand for a clear dielectric
func NewGlass(refractiveIndex float64) *Material {
	return NewBuilder().WithTransparency(refractiveIndex).Build()
}
