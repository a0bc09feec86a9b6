package integrator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

func at(x, y, z float64) core.Transform {
	return core.NewTransformBuilder().WithTranslation(core.NewVec3(x, y, z)).Build()
}

func newSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func assertColor(t *testing.T, expected, got core.Vec3) {
	t.Helper()
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// litFloorScene is a grey floor under a single sphere light, optionally with
// a blocker between them
func litFloorScene(blocked bool) scene.Scene {
	entities := []geometry.Entity{
		geometry.NewInfinitePlaneEntity(1, core.NewTransform(), material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)), core.NewVec3(0, 1, 0), 10),
		geometry.NewSphereEntity(2, at(0, 5, 0), material.NewEmissive(core.NewVec3(2, 2, 2)), 0.5),
	}
	if blocked {
		entities = append(entities, geometry.NewSphereEntity(3, at(0, 2.5, 0), material.NewDiffuse(core.NewVec3(1, 1, 1)), 1))
	}
	return scene.NewOctree(entities, scene.DefaultOctreeDepth)
}

func TestShade_ZeroDepthIsBlack(t *testing.T) {
	w := NewWhittedIntegrator()
	sc := litFloorScene(false)
	random := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		direction := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
		if direction.LengthSquared() == 0 {
			continue
		}
		ray := core.NewRay(core.NewVec3(0, 1, 3), direction)
		if got := w.Shade(sc, ray, 0, newSampler()); !got.IsZero() {
			t.Fatalf("Expected black at depth 0, got %v", got)
		}
	}
}

func TestShade_MissIsBlack(t *testing.T) {
	w := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0.1))
	sc := scene.NewLinearScene([]geometry.Entity{
		geometry.NewSphereEntity(1, at(0, 0, -5), material.NewDiffuse(core.NewVec3(1, 1, 1)), 1),
	})
	assertColor(t, core.Vec3{}, w.Shade(sc, ray, 5, newSampler()))
}

func TestShade_DirectLight(t *testing.T) {
	w := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, -1, -3))

	// diffuse 0.5 * light 2
	assertColor(t, core.NewVec3(1, 1, 1), w.Shade(litFloorScene(false), ray, 3, newSampler()))
}

func TestShade_ShadowedByOtherEntity(t *testing.T) {
	w := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, -1, -3))

	assertColor(t, core.Vec3{}, w.Shade(litFloorScene(true), ray, 3, newSampler()))
}

func TestShade_EmissiveSurfaceSeenDirectly(t *testing.T) {
	w := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 5, 3), core.NewVec3(0, 0, -1))

	assertColor(t, core.NewVec3(2, 2, 2), w.Shade(litFloorScene(false), ray, 1, newSampler()))
}

func TestShade_PerfectMirror(t *testing.T) {
	w := NewWhittedIntegrator()
	sc := scene.NewLinearScene([]geometry.Entity{
		geometry.NewInfinitePlaneEntity(1, core.NewTransform(), material.NewMirror(core.Vec3{}, 1), core.NewVec3(0, 1, 0), 10),
		geometry.NewSphereEntity(2, at(3, 3, 0), material.NewEmissive(core.NewVec3(3, 3, 3)), 1),
	})
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	assertColor(t, core.NewVec3(3, 3, 3), w.Shade(sc, ray, 2, newSampler()))

	// No budget left for the bounce
	assertColor(t, core.Vec3{}, w.Shade(sc, ray, 1, newSampler()))
}

func TestShade_PartialReflectivityBlends(t *testing.T) {
	w := NewWhittedIntegrator()
	mirror := material.NewBuilder().
		WithDiffuseColor(core.Vec3{}).
		WithEmission(core.NewVec3(1, 1, 1)).
		WithReflectivity(0.25).
		Build()
	sc := scene.NewLinearScene([]geometry.Entity{
		geometry.NewInfinitePlaneEntity(1, core.NewTransform(), mirror, core.NewVec3(0, 1, 0), 10),
		geometry.NewSphereEntity(2, at(3, 3, 0), material.NewEmissive(core.NewVec3(5, 5, 5)), 1),
	})
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	// lerp(emission 1, reflected 5, 0.25)
	assertColor(t, core.NewVec3(2, 2, 2), w.Shade(sc, ray, 2, newSampler()))
}

func TestShade_RefractionReplacesOtherTerms(t *testing.T) {
	w := NewWhittedIntegrator()
	glass := material.NewBuilder().
		WithDiffuseColor(core.NewVec3(1, 0, 0)).
		WithEmission(core.NewVec3(9, 9, 9)).
		WithReflectivity(1).
		WithTransparency(material.DefaultRefractiveIndex).
		Build()
	backdrop := core.NewTransformBuilder().WithTranslation(core.NewVec3(0, 0, -10)).WithRotation(core.NewVec3(math.Pi/2, 0, 0)).Build()
	sc := scene.NewOctree([]geometry.Entity{
		geometry.NewSphereEntity(1, at(0, 0, -5), glass, 1),
		geometry.NewInfinitePlaneEntity(2, backdrop, material.NewEmissive(core.NewVec3(1, 2, 3)), core.NewVec3(0, 1, 0), 10),
	}, scene.DefaultOctreeDepth)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// In, out, backdrop
	assertColor(t, core.NewVec3(1, 2, 3), w.Shade(sc, ray, 3, newSampler()))
	// Budget runs out inside the glass
	assertColor(t, core.Vec3{}, w.Shade(sc, ray, 2, newSampler()))
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		if _, err := New(name); err != nil {
			t.Errorf("Expected %s to be known, got %v", name, err)
		}
	}
	if _, ok := mustNew(t, "").(*WhittedIntegrator); !ok {
		t.Error("Expected Whitted as the default")
	}
	if _, ok := mustNew(t, "path").(*PathTracingIntegrator); !ok {
		t.Error("Expected path to select the path tracer")
	}
	if _, err := New("bdpt"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("Expected ErrUnknownIntegrator, got %v", err)
	}
}

func mustNew(t *testing.T, name string) Integrator {
	t.Helper()
	i, err := New(name)
	if err != nil {
		t.Fatal(err)
	}
	return i
}

func TestWhittedIntegrator_ImplementsIntegrator(t *testing.T) {
	var integrator Integrator = NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, -1, -3))
	assertColor(t, core.NewVec3(1, 1, 1), integrator.RayColor(ray, litFloorScene(false), newSampler(), 3))
}

func assertDirection(t *testing.T, expected, got core.Vec3) {
	t.Helper()
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, got)
	}
}

func TestTransmit_ObliqueThroughSlab(t *testing.T) {
	glass := material.NewGlass(1.5)
	incoming := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	// Entering through the top face bends toward the normal
	top := &geometry.Intersection{Normal: core.NewVec3(0, 1, 0), Material: glass}
	inside, crosses := transmit(incoming, top)
	if !crosses {
		t.Fatal("Expected the ray to enter the glass")
	}
	sinT := math.Sqrt(inside.X*inside.X + inside.Z*inside.Z)
	if want := math.Sin(math.Pi/4) / 1.5; math.Abs(sinT-want) > 1e-9 {
		t.Errorf("Expected sin of the refracted angle %f, got %f", want, sinT)
	}
	if inside.Y >= 0 {
		t.Errorf("Expected the refracted ray to keep heading down, got %v", inside)
	}

	// Leaving through the parallel bottom face swaps the indices back
	bottom := &geometry.Intersection{Normal: core.NewVec3(0, -1, 0), Material: glass}
	outside, crosses := transmit(core.NewRay(core.NewVec3(0, -1, 0), inside), bottom)
	if !crosses {
		t.Fatal("Expected the ray to leave the glass")
	}
	assertDirection(t, incoming.Direction, outside)
}

func TestTransmit_TotalInternalReflection(t *testing.T) {
	glass := material.NewGlass(1.5)
	bottom := &geometry.Intersection{Normal: core.NewVec3(0, -1, 0), Material: glass}

	// 60 degrees from the normal is past the critical angle of about 41.8
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0))
	direction, crosses := transmit(ray, bottom)
	if crosses {
		t.Fatal("Expected total internal reflection")
	}
	assertDirection(t, core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0), direction)
}
