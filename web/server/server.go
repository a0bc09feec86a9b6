// Package server exposes the built-in scenes over HTTP: a scene listing, a
// PNG render endpoint and a pixel inspector.
package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-octree-raytracer/pkg/log"
	"github.com/df07/go-octree-raytracer/pkg/renderer"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

var logger = log.New("server")

// Server handles web requests for the ray tracer
type Server struct {
	port       int
	numWorkers int
	echo       *echo.Echo
}

// NewServer creates a server listening on port once started. numWorkers
// bounds each render's worker pool; 0 uses every logical CPU.
func NewServer(port, numWorkers int) *Server {
	s := &Server{port: port, numWorkers: numWorkers, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	return s
}

// ServeHTTP lets the server be mounted or driven by httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks serving requests
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("serving on http://localhost%s", addr)
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.Presets())
}

// frameRequest is the scene and framing shared by render and inspect
type frameRequest struct {
	Scene  string
	Width  int
	Height int
}

func parseFrameRequest(values url.Values) (frameRequest, error) {
	req := frameRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 320, 1, 2000); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(values, "height", 180, 1, 2000); err != nil {
		return req, err
	}
	return req, nil
}

// loadScene builds and indexes the requested preset, mapping an unknown name to 404
func loadScene(name string) (*scene.Description, *scene.Octree, error) {
	description, err := scene.Lookup(name)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return description, scene.NewOctree(description.Entities, scene.DefaultOctreeDepth), nil
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func (s *Server) camera(description *scene.Description, req frameRequest) renderer.Camera {
	return renderer.NewCameraFromSetup(description.Camera, req.Width, req.Height)
}
