package cmd

import (
	"errors"
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/integrator"
	"github.com/df07/go-octree-raytracer/pkg/loaders"
	"github.com/df07/go-octree-raytracer/pkg/material"
	"github.com/df07/go-octree-raytracer/pkg/renderer"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// ErrTextureNeedsMesh is returned when --texture is given without --mesh
var ErrTextureNeedsMesh = errors.New("--texture requires --mesh")

// RenderFlags are the options of the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "default",
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 400,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 225,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 4,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: 5,
		Usage: "maximum recursion depth for reflection and refraction",
	},
	cli.StringFlag{
		Name:  "integrator, i",
		Value: "whitted",
		Usage: "light transport: whitted or path",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "number of render workers (0 = one per logical CPU)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 42,
		Usage: "random seed",
	},
	cli.IntFlag{
		Name:  "octree-depth",
		Value: scene.DefaultOctreeDepth,
		Usage: "maximum octree subdivision depth",
	},
	cli.StringFlag{
		Name:  "mesh, m",
		Usage: "render a PLY model on a lit ground plane instead of a built-in scene",
	},
	cli.StringFlag{
		Name:  "texture, t",
		Usage: "PNG or JPEG diffuse map for the --mesh model",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "frame.png",
		Usage: "image filename for the rendered frame",
	},
}

// renderOptions collects the render command flags
type renderOptions struct {
	scene       string
	mesh        string
	texture     string
	octreeDepth int
	out         string
	config      renderer.Config
}

func parseRenderOptions(ctx *cli.Context) (renderOptions, error) {
	opts := renderOptions{
		scene:       ctx.String("scene"),
		mesh:        ctx.String("mesh"),
		texture:     ctx.String("texture"),
		octreeDepth: ctx.Int("octree-depth"),
		out:         ctx.String("out"),
		config: renderer.Config{
			Width:           ctx.Int("width"),
			Height:          ctx.Int("height"),
			SamplesPerPixel: ctx.Int("spp"),
			MaxDepth:        ctx.Int("depth"),
			NumWorkers:      ctx.Int("workers"),
			Seed:            ctx.Int64("seed"),
		},
	}
	if err := opts.config.Validate(); err != nil {
		return opts, err
	}
	shader, err := integrator.New(ctx.String("integrator"))
	if err != nil {
		return opts, err
	}
	opts.config.Integrator = shader
	if opts.octreeDepth < 0 {
		return opts, fmt.Errorf("octree depth must not be negative, got %d", opts.octreeDepth)
	}
	if opts.texture != "" && opts.mesh == "" {
		return opts, ErrTextureNeedsMesh
	}
	if opts.out == "" {
		return opts, fmt.Errorf("missing output filename")
	}
	return opts, nil
}

// RenderFrame renders a still frame of a built-in scene to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := parseRenderOptions(ctx)
	if err != nil {
		return err
	}

	description, err := loadDescription(opts)
	if err != nil {
		return err
	}

	buildStart := time.Now()
	octree := scene.NewOctree(description.Entities, opts.octreeDepth)
	logger.Infof("built octree for %q in %s", description.Name, time.Since(buildStart))
	logger.Debugf("octree: %s", octree.Stats())

	camera := renderer.NewCameraFromSetup(description.Camera, opts.config.Width, opts.config.Height)
	buffer, stats := renderer.Render(octree, camera, opts.config, rand.New(rand.NewSource(opts.config.Seed)))

	if err := writePNG(opts.out, buffer); err != nil {
		return err
	}

	logger.Noticef("frame statistics\n%s", stats.Table())
	logger.Noticef("wrote %s", opts.out)
	return nil
}

// loadDescription builds the requested preset, or frames a PLY model when --mesh is set.
// --texture replaces the model's grey diffuse colour with an image.
func loadDescription(opts renderOptions) (*scene.Description, error) {
	if opts.mesh == "" {
		return scene.Lookup(opts.scene)
	}

	data, err := loaders.LoadPLY(opts.mesh)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(opts.mesh), filepath.Ext(opts.mesh))
	model := geometry.NewModel(data.Mesh())

	builder := material.NewBuilder().WithDiffuseColor(core.NewVec3(0.75, 0.75, 0.75))
	if opts.texture != "" {
		texture, err := loaders.LoadTexture(opts.texture)
		if err != nil {
			return nil, err
		}
		builder.WithDiffuseMap(texture)
	}
	return scene.NewModelScene(name, model, builder.Build()), nil
}

func writePNG(filename string, buffer *renderer.ImageBuffer) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, buffer.Image()); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return nil
}
