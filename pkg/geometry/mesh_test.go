package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

func TestMesh_SingleTriangle(t *testing.T) {
	mesh := NewMesh([]core.Vec3{
		core.NewVec3(-1, -1, -5),
		core.NewVec3(1, -1, -5),
		core.NewVec3(0, 1, -5),
	}, []int{0, 1, 2}, nil)
	instance := NewMeshEntity(1, core.NewTransform(), newTestMaterial(), NewModel(mesh))

	hit, ok := instance.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit on triangle")
	}
	if math.Abs(hit.Distance-5) > 1e-4 {
		t.Errorf("Expected distance 5, got %f", hit.Distance)
	}
	if math.Abs(math.Abs(hit.Normal.Z)-1) > 1e-9 {
		t.Errorf("Expected face normal along Z, got %v", hit.Normal)
	}
}

func TestMesh_InterpolatedAttributes(t *testing.T) {
	mesh := NewMesh(
		[]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		[]int{0, 1, 2},
		&MeshOptions{
			Normals:   []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
			TexCoords: []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)},
		},
	)

	_, hit, ok := mesh.intersect(core.NewRay(core.NewVec3(0.25, 0.5, 1), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.texCoord.X-0.25) > 1e-9 || math.Abs(hit.texCoord.Y-0.5) > 1e-9 {
		t.Errorf("Expected texcoord (0.25, 0.5), got %v", hit.texCoord)
	}
}

func TestNewModel_NoMeshesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected NewModel without meshes to panic")
		}
	}()
	NewModel()
}

func TestNewMesh_BadIndicesPanic(t *testing.T) {
	tests := []struct {
		name  string
		faces []int
	}{
		{"empty", nil},
		{"not a multiple of three", []int{0, 1}},
		{"out of range", []int{0, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic")
				}
			}()
			NewMesh([]core.Vec3{{}, {X: 1}, {Y: 1}}, tt.faces, nil)
		})
	}
}

func TestIcosphere_OctreeSplits(t *testing.T) {
	mesh := NewIcosphereMesh(3)
	if mesh.TriangleCount() != 20*64 {
		t.Fatalf("Expected %d faces, got %d", 20*64, mesh.TriangleCount())
	}
	if len(mesh.tree.octants) <= 1 {
		t.Errorf("Expected the mesh octree to split above %d faces", meshSplitThreshold)
	}
	if mesh.tree.maxDepth > meshDepthLimit {
		t.Errorf("Expected depth at most %d, got %d", meshDepthLimit, mesh.tree.maxDepth)
	}
	if len(mesh.tree.octants[0].triangles) != 0 {
		t.Error("Expected the split root to hold no faces")
	}
}

// The octree must return the same nearest face as scanning every face
func TestMeshOctree_MatchesBruteForce(t *testing.T) {
	mesh := NewIcosphereMesh(3)
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		origin := core.SampleOnUnitSphere(core.NewVec3(random.Float64(), random.Float64(), random.Float64())).Multiply(3)
		target := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5)
		ray := core.NewRay(origin, target.Subtract(origin))

		treeT, _, treeOK := mesh.intersect(ray)

		bruteT, bruteOK := 0.0, false
		for face := 0; face < mesh.TriangleCount(); face++ {
			if dist, _, ok := mesh.intersectTriangle(ray, face); ok && (!bruteOK || dist < bruteT) {
				bruteT, bruteOK = dist, true
			}
		}

		if treeOK != bruteOK {
			t.Fatalf("Ray %d: octree hit=%v, brute force hit=%v", i, treeOK, bruteOK)
		}
		if treeOK && math.Abs(treeT-bruteT) > 1e-9 {
			t.Errorf("Ray %d: octree distance %f, brute force %f", i, treeT, bruteT)
		}
	}
}

func TestCubeMesh_Instance(t *testing.T) {
	transform := core.NewTransformBuilder().
		WithTranslation(core.NewVec3(0, 0, -4)).
		WithUniformScale(2).
		Build()
	cube := NewMeshEntity(6, transform, newTestMaterial(), NewModel(NewCubeMesh()))

	hit, ok := cube.Intersect(core.NewRay(core.NewVec3(0.3, 0.2, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit on cube")
	}
	// Front face sits at z = -4 + 1
	if math.Abs(hit.Distance-3) > 1e-9 {
		t.Errorf("Expected distance 3, got %f", hit.Distance)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected front face normal, got %v", hit.Normal)
	}

	sample := cube.SampleEmissiveSurface(fixedSampler{value: 0.3})
	bounds, _ := cube.Bounds()
	for axis := 0; axis < 3; axis++ {
		value := sample.Coordinate.Axis(axis)
		if value < bounds.Min.Axis(axis)-1e-9 || value > bounds.Max.Axis(axis)+1e-9 {
			t.Errorf("Expected surface sample inside the cube bounds, got %v", sample.Coordinate)
		}
	}
}
