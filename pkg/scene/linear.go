package scene

import (
	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
)

// LinearScene tests every entity against every ray. It is the reference
// answer the octree is checked against, and fast enough for tiny scenes.
type LinearScene struct {
	entities []geometry.Entity
	emissive []*geometry.Entity
}

// NewLinearScene wraps the entities without building any index
func NewLinearScene(entities []geometry.Entity) *LinearScene {
	return &LinearScene{entities: entities, emissive: emissiveOf(entities)}
}

// FindIntersection returns the nearest hit across all entities
func (s *LinearScene) FindIntersection(ray core.Ray) (*geometry.Intersection, bool) {
	var closest *geometry.Intersection
	for i := range s.entities {
		if hit, ok := s.entities[i].Intersect(ray); ok {
			closest = geometry.Closer(closest, hit)
		}
	}
	return closest, closest != nil
}

// EmissiveEntities returns every light source
func (s *LinearScene) EmissiveEntities() []*geometry.Entity {
	return s.emissive
}
