package geometry

import (
	"fmt"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// MeshOptions carries optional per-vertex attributes
type MeshOptions struct {
	Normals   []core.Vec3 // one per vertex, interpolated across faces
	TexCoords []core.Vec2 // one per vertex, interpolated across faces
}

// Mesh is an indexed triangle list in object space with its own octree
type Mesh struct {
	vertices  []core.Vec3
	normals   []core.Vec3
	texCoords []core.Vec2
	faces     []int // three vertex indices per triangle
	bounds    core.AABB
	tree      *triangleOctree
}

// NewMesh builds a mesh from vertices and face indices. Every group of three
// indices forms a triangle. Malformed input panics.
func NewMesh(vertices []core.Vec3, faces []int, options *MeshOptions) *Mesh {
	if len(faces) == 0 {
		panic("geometry: cannot create a mesh with no triangles")
	}
	if len(faces)%3 != 0 {
		panic("geometry: face indices must be a multiple of 3")
	}
	for _, index := range faces {
		if index < 0 || index >= len(vertices) {
			panic(fmt.Sprintf("geometry: face index %d out of bounds for %d vertices", index, len(vertices)))
		}
	}

	m := &Mesh{
		vertices: vertices,
		faces:    faces,
		bounds:   core.NewAABBFromPoints(vertices...),
	}
	if options != nil {
		if options.Normals != nil && len(options.Normals) != len(vertices) {
			panic("geometry: number of normals must match number of vertices")
		}
		if options.TexCoords != nil && len(options.TexCoords) != len(vertices) {
			panic("geometry: number of texture coordinates must match number of vertices")
		}
		m.normals = options.Normals
		m.texCoords = options.TexCoords
	}

	m.tree = newTriangleOctree(m)
	return m
}

// TriangleCount returns the number of faces
func (m *Mesh) TriangleCount() int {
	return len(m.faces) / 3
}

// Bounds returns the object-space AABB
func (m *Mesh) Bounds() core.AABB {
	return m.bounds
}

func (m *Mesh) triangle(index int) (core.Vec3, core.Vec3, core.Vec3) {
	return m.vertices[m.faces[index*3]], m.vertices[m.faces[index*3+1]], m.vertices[m.faces[index*3+2]]
}

func (m *Mesh) triangleBounds(index int) core.AABB {
	v0, v1, v2 := m.triangle(index)
	return core.NewAABBFromPoints(v0, v1, v2)
}

// intersectTriangle solves one face and fills in the interpolated attributes
func (m *Mesh) intersectTriangle(ray core.Ray, index int) (float64, localHit, bool) {
	v0, v1, v2 := m.triangle(index)
	t, u, v, ok := core.RayTriangleIntersect(ray, v0, v1, v2)
	if !ok {
		return 0, localHit{}, false
	}
	return t, m.surface(index, ray.At(t), u, v), true
}

// surface evaluates the normal and texture coordinate at barycentric (u, v)
func (m *Mesh) surface(index int, point core.Vec3, u, v float64) localHit {
	w := 1 - u - v
	i0, i1, i2 := m.faces[index*3], m.faces[index*3+1], m.faces[index*3+2]

	var normal core.Vec3
	if m.normals != nil {
		normal = m.normals[i0].Multiply(w).Add(m.normals[i1].Multiply(u)).Add(m.normals[i2].Multiply(v)).Normalize()
	} else {
		v0, v1, v2 := m.triangle(index)
		normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	}

	texCoord := core.NewVec2(u, v)
	if m.texCoords != nil {
		texCoord = m.texCoords[i0].Multiply(w).Add(m.texCoords[i1].Multiply(u)).Add(m.texCoords[i2].Multiply(v))
	}

	return localHit{point: point, normal: normal, texCoord: texCoord}
}

// intersect returns the nearest face hit along the ray
func (m *Mesh) intersect(ray core.Ray) (float64, localHit, bool) {
	return m.tree.intersect(ray)
}

// Model groups the meshes loaded from one asset
type Model struct {
	Meshes []*Mesh
	bounds core.AABB
}

// NewModel groups meshes into a model. A model without meshes panics.
func NewModel(meshes ...*Mesh) *Model {
	if len(meshes) == 0 {
		panic("geometry: cannot create a model with no meshes")
	}

	bounds := meshes[0].Bounds()
	for _, mesh := range meshes[1:] {
		bounds = bounds.Union(mesh.Bounds())
	}
	return &Model{Meshes: meshes, bounds: bounds}
}

// Bounds returns the object-space AABB over every mesh
func (m *Model) Bounds() core.AABB {
	return m.bounds
}

// TriangleCount returns the number of faces across all meshes
func (m *Model) TriangleCount() int {
	count := 0
	for _, mesh := range m.Meshes {
		count += mesh.TriangleCount()
	}
	return count
}

// MeshInstance is a placement of a shared model
type MeshInstance struct {
	Model *Model
}

func (mi *MeshInstance) intersect(ray core.Ray) (localHit, bool) {
	var closest localHit
	closestT := 0.0
	found := false

	for _, mesh := range mi.Model.Meshes {
		if !core.RayAABBIntersect(ray, mesh.Bounds()) {
			continue
		}
		if t, hit, ok := mesh.intersect(ray); ok && (!found || t < closestT) {
			closest, closestT, found = hit, t, true
		}
	}
	return closest, found
}

// sample picks a mesh, a face and a point on it uniformly by index
func (mi *MeshInstance) sample(sampler core.Sampler) (core.Vec3, core.Vec3) {
	meshes := mi.Model.Meshes
	mesh := meshes[min(int(sampler.Get1D()*float64(len(meshes))), len(meshes)-1)]
	index := min(int(sampler.Get1D()*float64(mesh.TriangleCount())), mesh.TriangleCount()-1)

	u, v := core.SampleBarycentric(sampler.Get2D())
	v0, v1, v2 := mesh.triangle(index)
	point := v0.Multiply(1 - u - v).Add(v1.Multiply(u)).Add(v2.Multiply(v))
	return point, mesh.surface(index, point, u, v).normal
}
