package geometry

import "github.com/df07/go-octree-raytracer/pkg/core"

const (
	// meshSplitThreshold is the face count above which a mesh octant splits
	meshSplitThreshold = 500
	// meshDepthLimit caps how many times a mesh octant may split
	meshDepthLimit = 5
)

// triangleOctant is a node of the per-mesh octree. Leaves list face indices,
// internal nodes list child octant indices.
type triangleOctant struct {
	bounds    core.AABB
	triangles []int
	children  []int
}

// triangleOctree indexes a mesh's faces in object space. Nodes live in one
// slice and refer to each other by index. A face overlapping several
// children is stored in each of them.
type triangleOctree struct {
	mesh     *Mesh
	octants  []triangleOctant
	maxDepth int
}

func newTriangleOctree(mesh *Mesh) *triangleOctree {
	tree := &triangleOctree{mesh: mesh}

	all := make([]int, mesh.TriangleCount())
	for i := range all {
		all[i] = i
	}
	root := tree.insertOctant(mesh.Bounds(), all)
	tree.split(root, meshDepthLimit, 0)
	return tree
}

func (t *triangleOctree) insertOctant(bounds core.AABB, triangles []int) int {
	t.octants = append(t.octants, triangleOctant{bounds: bounds, triangles: triangles})
	return len(t.octants) - 1
}

func (t *triangleOctree) split(id, budget, depth int) {
	if depth > t.maxDepth {
		t.maxDepth = depth
	}
	if len(t.octants[id].triangles) <= meshSplitThreshold || budget <= 0 {
		return
	}

	bounds := t.octants[id].bounds
	triangles := t.octants[id].triangles
	t.octants[id].triangles = nil

	for i := 0; i < 8; i++ {
		childBounds := bounds.Octant(i)

		var members []int
		for _, triangle := range triangles {
			if t.mesh.triangleBounds(triangle).Intersects(childBounds) {
				members = append(members, triangle)
			}
		}

		child := t.insertOctant(childBounds, members)
		t.octants[id].children = append(t.octants[id].children, child)
		t.split(child, budget-1, depth+1)
	}
}

func (t *triangleOctree) intersect(ray core.Ray) (float64, localHit, bool) {
	var closest localHit
	closestT := 0.0
	found := false

	stack := []int{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		octant := &t.octants[id]
		if !core.RayAABBIntersect(ray, octant.bounds) {
			continue
		}

		for _, triangle := range octant.triangles {
			if dist, hit, ok := t.mesh.intersectTriangle(ray, triangle); ok && (!found || dist < closestT) {
				closest, closestT, found = hit, dist, true
			}
		}
		stack = append(stack, octant.children...)
	}

	return closestT, closest, found
}
