package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Add(b); got != NewVec3(5, -3, 9) {
		t.Errorf("Expected (5,-3,9), got %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, 7, -3) {
		t.Errorf("Expected (-3,7,-3), got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, -10, 18) {
		t.Errorf("Expected (4,-10,18), got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %f", got)
	}
	if got := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected X cross Y = Z, got %v", got)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("Expected zero vector to normalize to zero, got %v", got)
	}
}

func TestLerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, 6)

	tests := []struct {
		name     string
		t        float64
		expected Vec3
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"middle", 0.5, NewVec3(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(a, b, tt.t); got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	incident := NewVec3(1, -1, 0).Normalize()
	got := Reflect(incident, NewVec3(0, 1, 0))
	expected := NewVec3(1, 1, 0).Normalize()
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRefract(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	// Head-on rays pass straight through
	straight, ok := Refract(NewVec3(0, -1, 0), normal, 1/1.5)
	if !ok {
		t.Fatal("Expected head-on refraction to succeed")
	}
	if straight.Subtract(NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Expected unchanged direction, got %v", straight)
	}

	// Snell's law: n1 sin(i) = n2 sin(t)
	incident := NewVec3(1, -1, 0).Normalize()
	refracted, ok := Refract(incident, normal, 1/1.5)
	if !ok {
		t.Fatal("Expected refraction into glass to succeed")
	}
	sinI := math.Sqrt(0.5)
	sinT := math.Abs(refracted.X)
	if math.Abs(sinI-1.5*sinT) > 1e-9 {
		t.Errorf("Snell's law violated: sinI=%f, 1.5*sinT=%f", sinI, 1.5*sinT)
	}
	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Expected unit refracted direction, got length %f", refracted.Length())
	}

	// Leaving glass at a grazing angle is totally internally reflected
	grazing := NewVec3(1, -0.2, 0).Normalize()
	if _, ok := Refract(grazing, normal, 1.5); ok {
		t.Error("Expected total internal reflection")
	}
}

func TestNewRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -10))
	if ray.Direction != NewVec3(0, 0, -1) {
		t.Errorf("Expected normalized direction (0,0,-1), got %v", ray.Direction)
	}
	if got := ray.At(2); got != NewVec3(1, 2, 1) {
		t.Errorf("Expected At(2) = (1,2,1), got %v", got)
	}
}

func TestNewRay_ZeroDirectionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected NewRay with a zero direction to panic")
		}
	}()
	NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 0))
}
