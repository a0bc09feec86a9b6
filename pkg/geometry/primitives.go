package geometry

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// NewCubeMesh returns the unit cube centred on the origin. Each face has its
// own four vertices so normals stay flat.
func NewCubeMesh() *Mesh {
	type face struct {
		normal, u, v core.Vec3
	}
	faces := []face{
		{core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)},
		{core.NewVec3(-1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1)},
		{core.NewVec3(0, -1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)},
		{core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 0, -1), core.NewVec3(-1, 0, 0), core.NewVec3(0, 1, 0)},
	}

	var vertices, normals []core.Vec3
	var texCoords []core.Vec2
	var indices []int
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range faces {
		base := len(vertices)
		center := f.normal.Multiply(0.5)
		for _, c := range corners {
			vertices = append(vertices, center.Add(f.u.Multiply(c[0]*0.5)).Add(f.v.Multiply(c[1]*0.5)))
			normals = append(normals, f.normal)
			texCoords = append(texCoords, core.NewVec2((c[0]+1)/2, (c[1]+1)/2))
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewMesh(vertices, indices, &MeshOptions{Normals: normals, TexCoords: texCoords})
}

// NewIcosphereMesh returns a unit sphere approximated by a subdivided
// icosahedron. Each subdivision quadruples the face count from 20.
func NewIcosphereMesh(subdivisions int) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	vertices := []core.Vec3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for i := range vertices {
		vertices[i] = vertices[i].Normalize()
	}

	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for s := 0; s < subdivisions; s++ {
		midpoints := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if index, ok := midpoints[key]; ok {
				return index
			}
			vertices = append(vertices, vertices[a].Add(vertices[b]).Normalize())
			midpoints[key] = len(vertices) - 1
			return len(vertices) - 1
		}

		next := make([]int, 0, len(faces)*4)
		for i := 0; i < len(faces); i += 3 {
			a, b, c := faces[i], faces[i+1], faces[i+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next, a, ab, ca, b, bc, ab, c, ca, bc, ab, bc, ca)
		}
		faces = next
	}

	normals := make([]core.Vec3, len(vertices))
	texCoords := make([]core.Vec2, len(vertices))
	for i, vertex := range vertices {
		normals[i] = vertex
		texCoords[i] = sphereUV(vertex)
	}

	return NewMesh(vertices, faces, &MeshOptions{Normals: normals, TexCoords: texCoords})
}
