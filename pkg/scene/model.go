package scene

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// modelFitSize is the largest extent a loaded model is scaled to
const modelFitSize = 2.0

// NewModelScene frames an arbitrary model: it is scaled to fit a 2-unit box,
// set on a ground plane and lit by a panel light from above
func NewModelScene(name string, model *geometry.Model, mat *material.Material) *Description {
	var b entityBuilder

	bounds := model.Bounds()
	size := bounds.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	scale := 1.0
	if extent > 0 {
		scale = modelFitSize / extent
	}

	target := core.NewVec3(0, 0, -5)
	transform := core.NewTransformBuilder().
		WithTranslation(target.Subtract(bounds.Center().Multiply(scale))).
		WithUniformScale(scale).
		Build()
	b.add(geometry.NewMeshEntity(b.nextID(), transform, mat, model))

	floor := target.Y - size.Y*scale/2
	b.add(geometry.NewInfinitePlaneEntity(b.nextID(), translate(0, floor, 0),
		material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6)), core.NewVec3(0, 1, 0), 20))

	b.add(geometry.NewPlaneEntity(b.nextID(), core.NewTransformBuilder().
		WithTranslation(core.NewVec3(0, floor+5, -4)).
		WithRotation(core.NewVec3(math.Pi, 0, 0)).
		Build(), material.NewEmissive(core.NewVec3(4, 4, 4)), core.NewVec3(0, 1, 0), 1.5))

	return &Description{
		Name:     name,
		Entities: b.entities,
		Camera: CameraSetup{
			Position:    core.NewVec3(0, 1, 0),
			Direction:   core.NewVec3(0, -0.2, -1),
			Up:          core.NewVec3(0, 1, 0),
			FieldOfView: 1.22173048,
		},
	}
}
