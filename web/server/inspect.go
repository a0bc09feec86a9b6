package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// InspectResponse describes what the primary ray through one pixel hits
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	EntityID   uint32                 `json:"entityId,omitempty"`
	Kind       string                 `json:"kind,omitempty"`
	Point      [3]float64             `json:"point"`
	Normal     [3]float64             `json:"normal"`
	Distance   float64                `json:"distance"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Transform  *TransformInfo         `json:"transform,omitempty"`
}

// TransformInfo is the placement of the entity that was hit
type TransformInfo struct {
	Translation [3]float64 `json:"translation"`
	Rotation    [3]float64 `json:"rotation"` // Euler angles in radians
	Scale       [3]float64 `json:"scale"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func transformInfo(transform core.Transform) *TransformInfo {
	return &TransformInfo{
		Translation: toArray(transform.Translation()),
		Rotation:    toArray(transform.Rotation()),
		Scale:       toArray(transform.Scale()),
	}
}

// materialProperties flattens a material for JSON
func materialProperties(mat *material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"diffuse":      toArray(mat.Diffuse),
		"emission":     toArray(mat.Emission),
		"reflectivity": mat.Reflectivity,
		"textured":     mat.DiffuseMap != nil,
	}
	if mat.Transparent {
		properties["refractiveIndex"] = mat.RefractiveIndex
	}
	return properties
}

func findEntity(entities []geometry.Entity, id uint32) *geometry.Entity {
	for i := range entities {
		if entities[i].ID() == id {
			return &entities[i]
		}
	}
	return nil
}

// handleInspect casts the camera ray through pixel (x, y) and reports the hit
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req, err := parseFrameRequest(values)
	if err != nil {
		return badRequest(err)
	}
	x, err := parseIntParam(values, "x", 0, 0, req.Width-1)
	if err != nil {
		return badRequest(err)
	}
	y, err := parseIntParam(values, "y", 0, 0, req.Height-1)
	if err != nil {
		return badRequest(err)
	}

	description, octree, err := loadScene(req.Scene)
	if err != nil {
		return err
	}

	camera := s.camera(description, req)
	hit, ok := octree.FindIntersection(camera.CastRay(x, y))
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	response := InspectResponse{
		Hit:        true,
		EntityID:   hit.EntityID,
		Point:      toArray(hit.Coordinate),
		Normal:     toArray(hit.Normal),
		Distance:   hit.Distance,
		Properties: materialProperties(hit.Material),
	}
	if entity := findEntity(description.Entities, hit.EntityID); entity != nil {
		response.Kind = entity.Kind().String()
		response.Transform = transformInfo(entity.Transform())
	}
	return c.JSON(http.StatusOK, response)
}
