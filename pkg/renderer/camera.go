package renderer

import (
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/scene"
)

// Distance from the eye to the image plane. Only the ratio to the plane
// size matters for the rays produced.
const imagePlaneDistance = 10.0

// DefaultFieldOfView is 70 degrees in radians
const DefaultFieldOfView = 1.22173048

// imagePlane is the world-space rectangle primary rays pass through
type imagePlane struct {
	u, v        core.Vec3 // right and up axes
	origin      core.Vec3 // top-left corner
	pixelWidth  float64
	pixelHeight float64
}

// Camera generates primary rays through a pinhole. Any setter marks the
// image plane stale; it is rebuilt by Update or lazily by the next CastRay.
// Camera is a value type so each render worker can hold its own copy.
type Camera struct {
	position    core.Vec3
	direction   core.Vec3
	up          core.Vec3
	fieldOfView float64
	width       int
	height      int

	plane imagePlane
	dirty bool
}

// NewCamera creates a camera at the origin looking down -Z with +Y up
func NewCamera() Camera {
	return Camera{
		direction:   core.NewVec3(0, 0, -1),
		up:          core.NewVec3(0, 1, 0),
		fieldOfView: DefaultFieldOfView,
		width:       256,
		height:      256,
		dirty:       true,
	}
}

// NewCameraFromSetup applies a scene's framing to a camera of the given resolution
func NewCameraFromSetup(setup scene.CameraSetup, width, height int) Camera {
	camera := NewCamera()
	camera.SetPosition(setup.Position)
	camera.SetDirection(setup.Direction)
	if !setup.Up.IsZero() {
		camera.SetUp(setup.Up)
	}
	if setup.FieldOfView > 0 {
		camera.SetFieldOfView(setup.FieldOfView)
	}
	camera.SetResolution(width, height)
	return camera
}

// SetPosition moves the camera's eye point
func (c *Camera) SetPosition(position core.Vec3) {
	c.position = position
	c.dirty = true
}

// SetDirection sets the viewing direction; it is stored normalized
func (c *Camera) SetDirection(direction core.Vec3) {
	c.direction = direction.Normalize()
	c.dirty = true
}

// SetUp sets the up hint used to orient the image plane
func (c *Camera) SetUp(up core.Vec3) {
	c.up = up
	c.dirty = true
}

// SetFieldOfView sets the horizontal field of view in radians
func (c *Camera) SetFieldOfView(fov float64) {
	c.fieldOfView = fov
	c.dirty = true
}

// SetResolution sets the image size in pixels
func (c *Camera) SetResolution(width, height int) {
	c.width = width
	c.height = height
	c.dirty = true
}

// Position returns the eye point
func (c *Camera) Position() core.Vec3 { return c.position }

// Direction returns the normalized viewing direction
func (c *Camera) Direction() core.Vec3 { return c.direction }

// Resolution returns the image width and height in pixels
func (c *Camera) Resolution() (int, int) {
	return c.width, c.height
}

// Dirty reports whether the image plane needs rebuilding
func (c *Camera) Dirty() bool {
	return c.dirty
}

// Update rebuilds the image plane if any parameter changed since the last build
func (c *Camera) Update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	planeWidth := 2 * imagePlaneDistance * math.Tan(c.fieldOfView/2)
	planeHeight := planeWidth * float64(c.height) / float64(c.width)

	n := c.direction.Negate().Normalize()
	u := c.up.Cross(n).Normalize()
	v := n.Cross(u).Normalize()

	center := c.position.Subtract(n.Multiply(imagePlaneDistance))
	c.plane = imagePlane{
		u:           u,
		v:           v,
		origin:      center.Subtract(u.Multiply(planeWidth / 2)).Add(v.Multiply(planeHeight / 2)),
		pixelWidth:  planeWidth / float64(c.width),
		pixelHeight: planeHeight / float64(c.height),
	}
}

// CastRay returns the ray through the center of pixel (x, y), with y = 0 the top row
func (c *Camera) CastRay(x, y int) core.Ray {
	return c.CastRayOffset(x, y, 0.5, 0.5)
}

// CastRayOffset returns the ray through pixel (x, y) at the sub-pixel offset (dx, dy) in [0,1)
func (c *Camera) CastRayOffset(x, y int, dx, dy float64) core.Ray {
	c.Update()

	point := c.plane.origin.
		Add(c.plane.u.Multiply(c.plane.pixelWidth * (float64(x) + dx))).
		Subtract(c.plane.v.Multiply(c.plane.pixelHeight * (float64(y) + dy)))

	return core.NewRay(c.position, point.Subtract(c.position))
}
