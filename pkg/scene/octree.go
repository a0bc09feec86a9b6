package scene

import (
	"fmt"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
)

const (
	// SplitThreshold is the entity count above which an octant splits
	SplitThreshold = 4
	// DefaultOctreeDepth is the split budget used when none is configured.
	// Overlapping entities are copied into every child they touch, so each
	// extra level can multiply the octant count by eight.
	DefaultOctreeDepth = 5
)

// octant is a node of the scene octree. A leaf lists indices into the
// octree's entity slice; once split it lists only children.
type octant struct {
	bounds   core.AABB
	entities []int
	children []int
}

// Octree is a Scene that partitions bounded entities into a loose octree.
// Nodes are stored in one slice and refer to each other by index. An entity
// overlapping several children is referenced from each of them, so memory
// grows with the amount of overlap. Entities without bounds (infinite planes)
// sit in a separate list tested against every ray.
type Octree struct {
	entities  []geometry.Entity
	octants   []octant
	unbounded []int
	emissive  []*geometry.Entity
}

// OctreeStats summarises the shape of a built octree
type OctreeStats struct {
	Entities      int
	Unbounded     int
	Octants       int
	Leaves        int
	MaxDepth      int
	EntityRefs    int // entity references across all leaves, counts duplicates
	MaxLeafLength int
}

// String formats the stats on one line for logging
func (s OctreeStats) String() string {
	return fmt.Sprintf("entities=%d unbounded=%d octants=%d leaves=%d depth=%d refs=%d maxLeaf=%d",
		s.Entities, s.Unbounded, s.Octants, s.Leaves, s.MaxDepth, s.EntityRefs, s.MaxLeafLength)
}

// NewOctree indexes the entities. The octree takes ownership of the slice.
// An octant holding more than SplitThreshold entities splits into eight
// equal children while depthLimit allows.
func NewOctree(entities []geometry.Entity, depthLimit int) *Octree {
	tree := &Octree{entities: entities}

	var bounded []int
	var rootBounds core.AABB
	for i := range entities {
		bounds, ok := entities[i].Bounds()
		if !ok {
			tree.unbounded = append(tree.unbounded, i)
			continue
		}
		if len(bounded) == 0 {
			rootBounds = bounds
		} else {
			rootBounds = rootBounds.Union(bounds)
		}
		bounded = append(bounded, i)
	}

	if len(bounded) > 0 {
		root := tree.insertOctant(rootBounds, bounded)
		tree.split(root, depthLimit)
	}

	tree.emissive = emissiveOf(entities)
	return tree
}

func (t *Octree) insertOctant(bounds core.AABB, entities []int) int {
	t.octants = append(t.octants, octant{bounds: bounds, entities: entities})
	return len(t.octants) - 1
}

func (t *Octree) split(id, depthLimit int) {
	if len(t.octants[id].entities) <= SplitThreshold || depthLimit <= 0 {
		return
	}

	bounds := t.octants[id].bounds
	members := t.octants[id].entities
	t.octants[id].entities = nil

	for i := 0; i < 8; i++ {
		childBounds := bounds.Octant(i)

		var overlapping []int
		for _, index := range members {
			entityBounds, _ := t.entities[index].Bounds()
			if entityBounds.Intersects(childBounds) {
				overlapping = append(overlapping, index)
			}
		}

		child := t.insertOctant(childBounds, overlapping)
		t.octants[id].children = append(t.octants[id].children, child)
		t.split(child, depthLimit-1)
	}
}

// FindIntersection returns the nearest hit over the tree and the unbounded list
func (t *Octree) FindIntersection(ray core.Ray) (*geometry.Intersection, bool) {
	var closest *geometry.Intersection
	if len(t.octants) > 0 {
		closest = t.traceOctant(0, ray)
	}

	for _, index := range t.unbounded {
		if hit, ok := t.entities[index].Intersect(ray); ok {
			closest = geometry.Closer(closest, hit)
		}
	}

	return closest, closest != nil
}

func (t *Octree) traceOctant(id int, ray core.Ray) *geometry.Intersection {
	node := &t.octants[id]
	if !core.RayAABBIntersect(ray, node.bounds) {
		return nil
	}

	var closest *geometry.Intersection
	for _, index := range node.entities {
		if hit, ok := t.entities[index].Intersect(ray); ok {
			closest = geometry.Closer(closest, hit)
		}
	}
	for _, child := range node.children {
		closest = geometry.Closer(closest, t.traceOctant(child, ray))
	}
	return closest
}

// EmissiveEntities returns every light source, bounded or not
func (t *Octree) EmissiveEntities() []*geometry.Entity {
	return t.emissive
}

// Stats walks the tree and reports its shape
func (t *Octree) Stats() OctreeStats {
	stats := OctreeStats{
		Entities:  len(t.entities),
		Unbounded: len(t.unbounded),
		Octants:   len(t.octants),
	}
	if len(t.octants) > 0 {
		t.collectStats(0, 0, &stats)
	}
	return stats
}

func (t *Octree) collectStats(id, depth int, stats *OctreeStats) {
	node := &t.octants[id]
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	if len(node.children) == 0 {
		stats.Leaves++
		stats.EntityRefs += len(node.entities)
		stats.MaxLeafLength = max(stats.MaxLeafLength, len(node.entities))
		return
	}
	for _, child := range node.children {
		t.collectStats(child, depth+1, stats)
	}
}
