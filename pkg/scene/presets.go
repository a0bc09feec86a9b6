package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/geometry"
	"github.com/df07/go-octree-raytracer/pkg/material"
)

// Preset is a named built-in scene
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	build       func() *Description
}

var presets = map[string]Preset{
	"default": {
		Name:        "default",
		Description: "Spheres on an infinite ground with a mirror, a glass ball and one sphere light",
		build:       NewDefaultScene,
	},
	"cornell": {
		Name:        "cornell",
		Description: "Closed box of finite planes with a ceiling panel light and a cube mesh",
		build:       NewCornellScene,
	},
	"spheregrid": {
		Name:        "spheregrid",
		Description: "10x10 grid of coloured spheres, many bounded entities for the octree",
		build:       NewSphereGridScene,
	},
	"mesh": {
		Name:        "mesh",
		Description: "Textured icosphere instances sharing one model",
		build:       NewMeshScene,
	},
}

// Presets lists the built-in scenes sorted by name
func Presets() []Preset {
	list := make([]Preset, 0, len(presets))
	for _, p := range presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// ErrUnknownScene is returned by Lookup for names without a preset
var ErrUnknownScene = errors.New("scene: unknown scene")

// Lookup builds the named preset
func Lookup(name string) (*Description, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	return p.build(), nil
}

func translate(x, y, z float64) core.Transform {
	return core.NewTransformBuilder().WithTranslation(core.NewVec3(x, y, z)).Build()
}

// NewDefaultScene is a ground plane with a few spheres of each material kind
func NewDefaultScene() *Description {
	var b entityBuilder

	ground := material.NewBuilder().
		WithDiffuseMap(material.NewCheckerTexture(64, 64, 8, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.3, 0.3, 0.35))).
		Build()
	b.add(geometry.NewInfinitePlaneEntity(b.nextID(), translate(0, -1, 0), ground, core.NewVec3(0, 1, 0), 20))

	b.add(geometry.NewSphereEntity(b.nextID(), translate(0, 0, -6), material.NewDiffuse(core.NewVec3(0.7, 0.3, 0.3)), 1))
	b.add(geometry.NewSphereEntity(b.nextID(), translate(-2.2, 0, -6.5), material.NewMirror(core.NewVec3(0.8, 0.8, 0.8), 0.8), 1))
	b.add(geometry.NewSphereEntity(b.nextID(), translate(2.2, 0, -5.5), material.NewGlass(material.DefaultRefractiveIndex), 1))
	b.add(geometry.NewSphereEntity(b.nextID(), translate(0.8, -0.6, -3.8), material.NewDiffuse(core.NewVec3(0.2, 0.5, 0.8)), 0.4))

	b.add(geometry.NewSphereEntity(b.nextID(), translate(-3, 5, -2), material.NewEmissive(core.NewVec3(1, 0.95, 0.85)), 0.75))

	return &Description{
		Name:     "default",
		Entities: b.entities,
		Camera: CameraSetup{
			Position:    core.NewVec3(0, 0.5, 2),
			Direction:   core.NewVec3(0, -0.1, -1),
			Up:          core.NewVec3(0, 1, 0),
			FieldOfView: 1.22173048,
		},
	}
}

// NewCornellScene is a closed box built from finite planes
func NewCornellScene() *Description {
	var b entityBuilder

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	const half = 2.5

	// Each wall is the floor plane rotated into place so its normal faces inward
	walls := []struct {
		position core.Vec3
		rotation core.Vec3
		material *material.Material
	}{
		{core.NewVec3(0, -half, 0), core.Vec3{}, white},
		{core.NewVec3(0, half, 0), core.NewVec3(math.Pi, 0, 0), white},
		{core.NewVec3(0, 0, -half), core.NewVec3(math.Pi/2, 0, 0), white},
		{core.NewVec3(-half, 0, 0), core.NewVec3(0, 0, -math.Pi/2), red},
		{core.NewVec3(half, 0, 0), core.NewVec3(0, 0, math.Pi/2), green},
	}
	for _, w := range walls {
		transform := core.NewTransformBuilder().WithTranslation(w.position).WithRotation(w.rotation).Build()
		b.add(geometry.NewPlaneEntity(b.nextID(), transform, w.material, core.NewVec3(0, 1, 0), half))
	}

	panel := core.NewTransformBuilder().
		WithTranslation(core.NewVec3(0, half-0.01, 0)).
		WithRotation(core.NewVec3(math.Pi, 0, 0)).
		Build()
	b.add(geometry.NewPlaneEntity(b.nextID(), panel, material.NewEmissive(core.NewVec3(4, 4, 4)), core.NewVec3(0, 1, 0), 0.6))

	cube := core.NewTransformBuilder().
		WithTranslation(core.NewVec3(-0.8, -half+0.75, -0.6)).
		WithRotation(core.NewVec3(0, 0.3, 0)).
		WithScale(core.NewVec3(1.5, 1.5, 1.5)).
		Build()
	b.add(geometry.NewMeshEntity(b.nextID(), cube, white, geometry.NewModel(geometry.NewCubeMesh())))

	b.add(geometry.NewSphereEntity(b.nextID(), translate(0.9, -half+0.7, 0.5), material.NewGlass(material.DefaultRefractiveIndex), 0.7))

	return &Description{
		Name:     "cornell",
		Entities: b.entities,
		Camera: CameraSetup{
			Position:    core.NewVec3(0, 0, 9),
			Direction:   core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			FieldOfView: 40 * math.Pi / 180,
		},
	}
}

// NewSphereGridScene lays out a 10x10 grid of spheres with hues sweeping
// across the grid
func NewSphereGridScene() *Description {
	var b entityBuilder

	b.add(geometry.NewInfinitePlaneEntity(b.nextID(), translate(0, -0.5, 0),
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)), core.NewVec3(0, 1, 0), 20))

	const gridSize = 10
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := float64(i*gridSize+j) / float64(gridSize*gridSize) * 360
			color := oklchToRGB(0.7, 0.15, hue)

			mat := material.NewDiffuse(color)
			if (i+j)%7 == 0 {
				mat = material.NewMirror(color, 0.6)
			}
			b.add(geometry.NewSphereEntity(b.nextID(), translate(float64(i), 0, float64(j)), mat, 0.4))
		}
	}

	b.add(geometry.NewSphereEntity(b.nextID(), translate(4.5, 8, 12), material.NewEmissive(core.NewVec3(3, 3, 3)), 1.5))

	return &Description{
		Name:     "spheregrid",
		Entities: b.entities,
		Camera: CameraSetup{
			Position:    core.NewVec3(4.5, 6, 18),
			Direction:   core.NewVec3(0, -5.2, -13.5),
			Up:          core.NewVec3(0, 1, 0),
			FieldOfView: 40 * math.Pi / 180,
		},
	}
}

// NewMeshScene instances one textured icosphere model several times
func NewMeshScene() *Description {
	var b entityBuilder

	b.add(geometry.NewInfinitePlaneEntity(b.nextID(), translate(0, -1, 0),
		material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6)), core.NewVec3(0, 1, 0), 20))

	model := geometry.NewModel(geometry.NewIcosphereMesh(3))
	checker := material.NewBuilder().
		WithDiffuseMap(material.NewCheckerTexture(128, 64, 8, core.NewVec3(0.9, 0.6, 0.1), core.NewVec3(0.1, 0.2, 0.6))).
		Build()

	for i, x := range []float64{-2.5, 0, 2.5} {
		transform := core.NewTransformBuilder().
			WithTranslation(core.NewVec3(x, 0, -6)).
			WithRotation(core.NewVec3(0, float64(i)*0.7, 0.2)).
			Build()
		b.add(geometry.NewMeshEntity(b.nextID(), transform, checker, model))
	}

	b.add(geometry.NewPlaneEntity(b.nextID(), core.NewTransformBuilder().
		WithTranslation(core.NewVec3(0, 5, -4)).
		WithRotation(core.NewVec3(math.Pi, 0, 0)).
		Build(), material.NewEmissive(core.NewVec3(5, 5, 5)), core.NewVec3(0, 1, 0), 1.5))

	return &Description{
		Name:     "mesh",
		Entities: b.entities,
		Camera: CameraSetup{
			Position:    core.NewVec3(0, 1, 2),
			Direction:   core.NewVec3(0, -0.15, -1),
			Up:          core.NewVec3(0, 1, 0),
			FieldOfView: 1.22173048,
		},
	}
}

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}
