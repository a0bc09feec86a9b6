package scene

import (
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
)

// Scene answers nearest-hit queries over a frozen set of entities.
// Implementations are read-only after construction and safe for concurrent use.
type Scene interface {
	// FindIntersection returns the nearest intersection along the ray
	FindIntersection(ray core.Ray) (*geometry.Intersection, bool)
	// EmissiveEntities returns every light source in the scene
	EmissiveEntities() []*geometry.Entity
}

// CameraSetup is the framing a built-in scene asks for
type CameraSetup struct {
	Position    core.Vec3
	Direction   core.Vec3
	Up          core.Vec3
	FieldOfView float64 // radians
}

// Description is a scene before indexing: the entities for one frame and
// the camera that frames them
type Description struct {
	Name     string
	Entities []geometry.Entity
	Camera   CameraSetup
}

// entityBuilder hands out sequential ids while a scene is assembled
type entityBuilder struct {
	entities []geometry.Entity
}

func (b *entityBuilder) nextID() uint32 {
	return uint32(len(b.entities) + 1)
}

func (b *entityBuilder) add(entity geometry.Entity) {
	b.entities = append(b.entities, entity)
}

func emissiveOf(entities []geometry.Entity) []*geometry.Entity {
	var lights []*geometry.Entity
	for i := range entities {
		if entities[i].IsEmissive() {
			lights = append(lights, &entities[i])
		}
	}
	return lights
}
