package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SamplePointInCube maps a [0,1)³ sample onto the cube [-1,1]³
func SamplePointInCube(sample Vec3) Vec3 {
	return NewVec3(2*sample.X-1, 2*sample.Y-1, 2*sample.Z-1)
}

// SampleOnUnitSphere projects a point of the [-1,1]³ cube onto the unit sphere.
// The distribution is not uniform; it favours the cube's corner directions.
// A sample landing on the exact center falls back to +Y.
func SampleOnUnitSphere(sample Vec3) Vec3 {
	p := SamplePointInCube(sample)
	if p.LengthSquared() == 0 {
		return NewVec3(0, 1, 0)
	}
	return p.Normalize()
}

// SampleBarycentric maps a [0,1)² sample to uniformly distributed barycentric
// coordinates (u, v) with u+v <= 1
func SampleBarycentric(sample Vec2) (float64, float64) {
	su := math.Sqrt(sample.X)
	return 1 - su, sample.Y * su
}

// SampleCosineHemisphere maps a [0,1)² sample to a direction in the
// hemisphere around normal with density proportional to the cosine
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	r := math.Sqrt(sample.X)
	phi := 2 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	z := math.Sqrt(math.Max(0, 1-sample.X))

	// Orthonormal basis around the normal
	helper := NewVec3(1, 0, 0)
	if math.Abs(normal.X) > 0.9 {
		helper = NewVec3(0, 1, 0)
	}
	tangent := normal.Cross(helper).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(z))
}
