package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-octree-raytracer/pkg/material"
)

// LoadTexture decodes a PNG or JPEG file into a diffuse texture
func LoadTexture(filename string) (*material.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	texture := material.NewTextureFromImage(img)
	logger.Infof("loaded %s texture %s: %dx%d", format, filename, texture.Width, texture.Height)
	return texture, nil
}
