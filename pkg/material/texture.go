package material

import (
	"image"
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// Texture is a 2D grid of linear RGB texels
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewTexture creates a texture over the given texels
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{Width: width, Height: height, Pixels: pixels}
}

// NewTextureFromImage converts a decoded image into a texture.
// Decoding the file is the caller's job.
func NewTextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return NewTexture(width, height, pixels)
}

// NewCheckerTexture builds a procedural checkerboard with squares of checkSize texels
func NewCheckerTexture(width, height, checkSize int, color1, color2 core.Vec3) *Texture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}
	return NewTexture(width, height, pixels)
}

// Sample returns the nearest texel at the given coordinates. Coordinates wrap,
// so (1.25, -0.5) samples the same texel as (0.25, 0.5). V=0 is the bottom row.
func (t *Texture) Sample(uv core.Vec2) core.Vec3 {
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1.0-v)*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
