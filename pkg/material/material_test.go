package material

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

func TestTexture_Sample(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	texture := NewTexture(2, 2, []core.Vec3{white, black, black, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), black},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"top left", core.NewVec2(0.1, 0.9), white},
		{"top right", core.NewVec2(0.9, 0.9), black},
		{"wraps positive", core.NewVec2(1.1, 1.9), white},
		{"wraps negative", core.NewVec2(-0.1, -0.9), white},
		{"upper edge clamps", core.NewVec2(0.999999, 0), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Sample(tt.uv); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})

	texture := NewTextureFromImage(img)
	if texture.Width != 2 || texture.Height != 1 {
		t.Fatalf("Expected 2x1 texture, got %dx%d", texture.Width, texture.Height)
	}
	if texture.Pixels[0] != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red first texel, got %v", texture.Pixels[0])
	}
	if texture.Pixels[1] != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected blue second texel, got %v", texture.Pixels[1])
	}
}

func TestMaterial_SampleDiffuse(t *testing.T) {
	flat := NewDiffuse(core.NewVec3(0.2, 0.4, 0.6))
	if got := flat.SampleDiffuse(core.NewVec2(0.5, 0.5)); got != core.NewVec3(0.2, 0.4, 0.6) {
		t.Errorf("Expected flat diffuse color, got %v", got)
	}

	checker := NewCheckerTexture(4, 4, 2, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	mapped := NewBuilder().WithDiffuseColor(core.NewVec3(0, 0, 1)).WithDiffuseMap(checker).Build()
	if got := mapped.SampleDiffuse(core.NewVec2(0.1, 0.9)); got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected texture to override flat color, got %v", got)
	}
}

func TestBuilder(t *testing.T) {
	m := NewBuilder().
		WithDiffuseColor(core.NewVec3(0.5, 0.5, 0.5)).
		WithReflectivity(1.7).
		WithEmission(core.NewVec3(4, 4, 4)).
		Build()

	if m.Reflectivity != 1 {
		t.Errorf("Expected reflectivity clamped to 1, got %f", m.Reflectivity)
	}
	if !m.IsEmissive() {
		t.Error("Expected emissive material")
	}
	if m.Transparent {
		t.Error("Expected opaque material")
	}

	glass := NewGlass(DefaultRefractiveIndex)
	if !glass.Transparent || glass.RefractiveIndex != 1.5 {
		t.Errorf("Expected transparent glass with index 1.5, got %+v", glass)
	}
	if glass.IsEmissive() {
		t.Error("Expected glass not to be emissive")
	}
}
