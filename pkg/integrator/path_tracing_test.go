package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// constSampler returns the same value for every dimension
type constSampler struct {
	value float64
}

func (c constSampler) Get1D() float64 { return c.value }
func (c constSampler) Get2D() core.Vec2 {
	return core.NewVec2(c.value, c.value)
}
func (c constSampler) Get3D() core.Vec3 {
	return core.NewVec3(c.value, c.value, c.value)
}

func TestPathTracing_ZeroDepthIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator()
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, -1, -3))
	assertColor(t, core.Vec3{}, pt.RayColor(ray, litFloorScene(false), newSampler(), 0))
}

// With nothing for a bounce to pick up, the path tracer agrees with Whitted
func TestPathTracing_MatchesWhittedWithoutIndirectLight(t *testing.T) {
	pt := NewPathTracingIntegrator()
	w := NewWhittedIntegrator()
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, -1, -3))
	sc := litFloorScene(false)

	for i := 0; i < 20; i++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(int64(i))))
		assertColor(t, w.Shade(sc, ray, 3, newSampler()), pt.RayColor(ray, sc, sampler, 3))
	}
}

func TestPathTracing_ShadowedPointReceivesBouncedLight(t *testing.T) {
	entities := []geometry.Entity{
		geometry.NewInfinitePlaneEntity(1, core.NewTransform(), material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)), core.NewVec3(0, 1, 0), 10),
		geometry.NewSphereEntity(2, at(0, 5, 0), material.NewEmissive(core.NewVec3(2, 2, 2)), 0.5),
		geometry.NewSphereEntity(3, at(0, 2.5, 0), material.NewDiffuse(core.NewVec3(1, 1, 1)), 1),
		// White room around everything
		geometry.NewSphereEntity(4, core.NewTransform(), material.NewDiffuse(core.NewVec3(1, 1, 1)), 20),
	}
	sc := scene.NewOctree(entities, scene.DefaultOctreeDepth)
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, -1, -3))

	if got := NewWhittedIntegrator().Shade(sc, ray, 4, newSampler()); !got.IsZero() {
		t.Fatalf("Expected Whitted to leave the shadowed point black, got %v", got)
	}

	pt := NewPathTracingIntegrator()
	sampler := newSampler()
	var total core.Vec3
	for i := 0; i < 200; i++ {
		total = total.Add(pt.RayColor(ray, sc, sampler, 4))
	}
	if total.Luminance() <= 0 {
		t.Error("Expected light bounced off the room to reach the shadowed point")
	}
}

func TestPathTracing_RussianRoulette(t *testing.T) {
	pt := NewPathTracingIntegrator()
	white := core.NewVec3(1, 1, 1)

	if stop, comp := pt.applyRussianRoulette(0, white, constSampler{0.99}); stop || comp != 1 {
		t.Errorf("Expected early bounces to survive uncompensated, got stop=%v comp=%f", stop, comp)
	}

	bounce := pt.RussianRouletteMinBounces
	if stop, _ := pt.applyRussianRoulette(bounce, white, constSampler{0.99}); !stop {
		t.Error("Expected termination when the draw exceeds the survival probability")
	}

	stop, comp := pt.applyRussianRoulette(bounce, white, constSampler{0.1})
	if stop {
		t.Fatal("Expected survival for a low draw")
	}
	if math.Abs(comp-1/0.95) > 1e-12 {
		t.Errorf("Expected compensation %f, got %f", 1/0.95, comp)
	}

	// Dark throughput is clamped to a 0.5 survival probability
	if _, comp := pt.applyRussianRoulette(bounce, core.Vec3{}, constSampler{0.1}); math.Abs(comp-2) > 1e-12 {
		t.Errorf("Expected compensation 2 for black throughput, got %f", comp)
	}
}
