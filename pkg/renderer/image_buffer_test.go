package renderer

import (
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

func TestImageBuffer_AddRowAccumulates(t *testing.T) {
	buffer := NewImageBuffer(2, 2)
	row := []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}

	buffer.AddRow(1, row, 0.5)
	buffer.AddRow(1, row, 0.5)

	if got := buffer.Pixel(0, 1); got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected (1,0,0), got %v", got)
	}
	if got := buffer.Pixel(1, 1); got != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected (0,1,0), got %v", got)
	}
	if got := buffer.Pixel(0, 0); !got.IsZero() {
		t.Errorf("Expected untouched row to stay black, got %v", got)
	}
	if len(buffer.Pixels()) != 12 {
		t.Errorf("Expected 12 floats, got %d", len(buffer.Pixels()))
	}
}

func TestImageBuffer_PixelsAsBytesClamps(t *testing.T) {
	buffer := NewImageBuffer(3, 1)
	buffer.AddRow(0, []core.Vec3{
		core.NewVec3(-1, 0, 0.5),
		core.NewVec3(1, 2, 100),
		core.NewVec3(0.25, 0.75, 1),
	}, 1)

	expected := []byte{0, 0, 127, 255, 255, 255, 63, 191, 255}
	got := buffer.PixelsAsBytes()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d bytes, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected byte %d to be %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestImageBuffer_Image(t *testing.T) {
	buffer := NewImageBuffer(2, 1)
	buffer.AddRow(0, []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 2)}, 1)

	img := buffer.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 2x1 image, got %v", img.Bounds())
	}
	if c := img.RGBAAt(0, 0); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("Expected opaque red, got %v", c)
	}
	if c := img.RGBAAt(1, 0); c.B != 255 {
		t.Errorf("Expected clamped blue, got %v", c)
	}
}

func TestImageBuffer_AddRowOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a row outside the image")
		}
	}()
	NewImageBuffer(1, 1).AddRow(1, []core.Vec3{{}}, 1)
}
