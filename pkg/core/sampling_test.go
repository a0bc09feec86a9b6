package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSamplePointInCube(t *testing.T) {
	tests := []struct {
		sample   Vec3
		expected Vec3
	}{
		{NewVec3(0, 0, 0), NewVec3(-1, -1, -1)},
		{NewVec3(0.5, 0.5, 0.5), NewVec3(0, 0, 0)},
		{NewVec3(1, 0.25, 0.75), NewVec3(1, -0.5, 0.5)},
	}

	for _, tt := range tests {
		if got := SamplePointInCube(tt.sample); got != tt.expected {
			t.Errorf("Expected %v for %v, got %v", tt.expected, tt.sample, got)
		}
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	if got := SampleOnUnitSphere(NewVec3(0.5, 0.5, 0.5)); got != NewVec3(0, 1, 0) {
		t.Errorf("Expected +Y fallback for the cube center, got %v", got)
	}

	sampler := NewRandomSampler(rand.New(rand.NewSource(3)))
	for i := 0; i < 100; i++ {
		p := SampleOnUnitSphere(sampler.Get3D())
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit length, got %f", p.Length())
		}
	}
}

func TestSampleBarycentric(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(5)))
	for i := 0; i < 1000; i++ {
		u, v := SampleBarycentric(sampler.Get2D())
		if u < 0 || v < 0 || u+v > 1+1e-12 {
			t.Fatalf("Expected point inside the triangle, got u=%f v=%f", u, v)
		}
	}
}

func TestSampleCosineHemisphere(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}
	sampler := NewRandomSampler(rand.New(rand.NewSource(9)))

	for _, normal := range normals {
		meanCos := 0.0
		const n = 2000
		for i := 0; i < n; i++ {
			d := SampleCosineHemisphere(normal, sampler.Get2D())
			if math.Abs(d.Length()-1) > 1e-9 {
				t.Fatalf("Expected unit direction, got length %f", d.Length())
			}
			cos := d.Dot(normal)
			if cos < -1e-12 {
				t.Fatalf("Expected direction in the hemisphere of %v, got %v", normal, d)
			}
			meanCos += cos / n
		}

		// E[cos] under a cosine-weighted density is 2/3
		if math.Abs(meanCos-2.0/3.0) > 0.03 {
			t.Errorf("Expected mean cosine near 2/3 around %v, got %f", normal, meanCos)
		}
	}

	if d := SampleCosineHemisphere(NewVec3(0, 0, 1), NewVec2(0, 0)); d != NewVec3(0, 0, 1) {
		t.Errorf("Expected the pole for a zero sample, got %v", d)
	}
}
