package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// ImageBuffer accumulates linear RGB radiance, three floats per pixel,
// rows stored top to bottom
type ImageBuffer struct {
	width, height int
	pixels        []float64
}

// NewImageBuffer allocates a black buffer
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{
		width:  width,
		height: height,
		pixels: make([]float64, width*height*3),
	}
}

// Width returns the image width in pixels
func (b *ImageBuffer) Width() int { return b.width }

// Height returns the image height in pixels
func (b *ImageBuffer) Height() int { return b.height }

// Pixels returns the raw accumulator
func (b *ImageBuffer) Pixels() []float64 {
	return b.pixels
}

// AddRow accumulates colors*weight into row y
func (b *ImageBuffer) AddRow(y int, colors []core.Vec3, weight float64) {
	if y < 0 || y >= b.height {
		panic(fmt.Sprintf("image buffer: row %d out of range [0,%d)", y, b.height))
	}
	if len(colors) != b.width {
		panic(fmt.Sprintf("image buffer: row has %d pixels, want %d", len(colors), b.width))
	}

	offset := y * b.width * 3
	for x, c := range colors {
		i := offset + x*3
		b.pixels[i] += c.X * weight
		b.pixels[i+1] += c.Y * weight
		b.pixels[i+2] += c.Z * weight
	}
}

// Pixel returns the accumulated color at (x, y)
func (b *ImageBuffer) Pixel(x, y int) core.Vec3 {
	i := (y*b.width + x) * 3
	return core.NewVec3(b.pixels[i], b.pixels[i+1], b.pixels[i+2])
}

// PixelsAsBytes converts the buffer to 8-bit RGB, clamping every channel to [0,1]
func (b *ImageBuffer) PixelsAsBytes() []byte {
	out := make([]byte, len(b.pixels))
	for i, value := range b.pixels {
		out[i] = toByte(value)
	}
	return out
}

// Image converts the buffer to an opaque RGBA image for encoding
func (b *ImageBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.Pixel(x, y)
			img.SetRGBA(x, y, color.RGBA{R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: 255})
		}
	}
	return img
}

func toByte(value float64) byte {
	if math.IsNaN(value) {
		return 0
	}
	return byte(math.Min(1, math.Max(0, value)) * 255)
}
