package server

import (
	"bytes"
	"image/png"
	"math/rand"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-octree-raytracer/pkg/integrator"
	"github.com/df07/go-octree-raytracer/pkg/renderer"
)

// handleRender renders one frame and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	values := c.QueryParams()
	req, err := parseFrameRequest(values)
	if err != nil {
		return badRequest(err)
	}

	config := renderer.DefaultConfig()
	config.Width, config.Height = req.Width, req.Height
	config.NumWorkers = s.numWorkers
	if config.SamplesPerPixel, err = parseIntParam(values, "samples", 1, 1, 256); err != nil {
		return badRequest(err)
	}
	if config.MaxDepth, err = parseIntParam(values, "depth", config.MaxDepth, 0, 50); err != nil {
		return badRequest(err)
	}
	seed, err := parseIntParam(values, "seed", int(config.Seed), 0, 1<<31-1)
	if err != nil {
		return badRequest(err)
	}
	config.Seed = int64(seed)
	if config.Integrator, err = integrator.New(values.Get("integrator")); err != nil {
		return badRequest(err)
	}

	description, octree, err := loadScene(req.Scene)
	if err != nil {
		return err
	}

	buffer, stats := renderer.Render(octree, s.camera(description, req), config, rand.New(rand.NewSource(config.Seed)))
	logger.Infof("rendered %s %dx%d spp=%d in %s", req.Scene, req.Width, req.Height, config.SamplesPerPixel, stats.Duration)

	var buf bytes.Buffer
	if err := png.Encode(&buf, buffer.Image()); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
