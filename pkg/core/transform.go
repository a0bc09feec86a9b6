package core

import "github.com/go-gl/mathgl/mgl64"

// Transform is a translation/rotation/scale triple together with the cached
// world matrix it produces and that matrix's inverse. Every setter rebuilds
// both matrices before returning, so the pair is never stale.
//
// Rotation is given as Euler angles in radians and applied to the scaled
// object in Z, Y, X order: world = T · Rx · Ry · Rz · S.
type Transform struct {
	translation Vec3
	rotation    Vec3
	scale       Vec3

	world        mgl64.Mat4
	inverseWorld mgl64.Mat4
}

// NewTransform returns the identity transform
func NewTransform() Transform {
	return Transform{
		scale:        NewVec3(1, 1, 1),
		world:        mgl64.Ident4(),
		inverseWorld: mgl64.Ident4(),
	}
}

func (t *Transform) rebuild() {
	scale := mgl64.Scale3D(t.scale.X, t.scale.Y, t.scale.Z)
	rotZ := mgl64.HomogRotate3DZ(t.rotation.Z)
	rotY := mgl64.HomogRotate3DY(t.rotation.Y)
	rotX := mgl64.HomogRotate3DX(t.rotation.X)
	translate := mgl64.Translate3D(t.translation.X, t.translation.Y, t.translation.Z)

	t.world = translate.Mul4(rotX).Mul4(rotY).Mul4(rotZ).Mul4(scale)
	t.inverseWorld = t.world.Inv()
}

// Translation returns the translation component
func (t Transform) Translation() Vec3 { return t.translation }

// Rotation returns the Euler rotation in radians
func (t Transform) Rotation() Vec3 { return t.rotation }

// Scale returns the per-axis scale
func (t Transform) Scale() Vec3 { return t.scale }

// World returns the object-to-world matrix
func (t Transform) World() mgl64.Mat4 { return t.world }

// InverseWorld returns the world-to-object matrix
func (t Transform) InverseWorld() mgl64.Mat4 { return t.inverseWorld }

// SetTranslation replaces the translation and rebuilds the matrices
func (t *Transform) SetTranslation(translation Vec3) {
	t.translation = translation
	t.rebuild()
}

// SetRotation replaces the rotation and rebuilds the matrices
func (t *Transform) SetRotation(rotation Vec3) {
	t.rotation = rotation
	t.rebuild()
}

// SetScale replaces the scale and rebuilds the matrices
func (t *Transform) SetScale(scale Vec3) {
	t.scale = scale
	t.rebuild()
}

// ToWorld maps a point from object space to world space
func (t Transform) ToWorld(point Vec3) Vec3 {
	return TransformPoint(t.world, point)
}

// ToLocal maps a world-space ray into object space
func (t Transform) ToLocal(ray Ray) Ray {
	return ray.Transform(t.inverseWorld)
}

// NormalToWorld maps an object-space normal to a unit world-space direction.
// The normal is transformed as a direction (w=0) and renormalized.
func (t Transform) NormalToWorld(normal Vec3) Vec3 {
	return TransformDirection(t.world, normal).Normalize()
}

// TransformBuilder assembles a Transform with chained setters
type TransformBuilder struct {
	transform Transform
}

// NewTransformBuilder starts from the identity transform
func NewTransformBuilder() *TransformBuilder {
	return &TransformBuilder{transform: NewTransform()}
}

// WithTranslation sets the translation
func (b *TransformBuilder) WithTranslation(translation Vec3) *TransformBuilder {
	b.transform.translation = translation
	return b
}

// WithRotation sets the Euler rotation in radians
func (b *TransformBuilder) WithRotation(rotation Vec3) *TransformBuilder {
	b.transform.rotation = rotation
	return b
}

// WithScale sets the per-axis scale
func (b *TransformBuilder) WithScale(scale Vec3) *TransformBuilder {
	b.transform.scale = scale
	return b
}

// WithUniformScale sets the same scale on every axis
func (b *TransformBuilder) WithUniformScale(scale float64) *TransformBuilder {
	return b.WithScale(NewVec3(scale, scale, scale))
}

// Build computes the matrices and returns the transform
func (b *TransformBuilder) Build() Transform {
	t := b.transform
	t.rebuild()
	return t
}

// TransformPoint applies m to a point (w=1)
func TransformPoint(m mgl64.Mat4, point Vec3) Vec3 {
	return fromVec4(m.Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1}))
}

// TransformDirection applies m to a direction (w=0), ignoring translation
func TransformDirection(m mgl64.Mat4, direction Vec3) Vec3 {
	return fromVec4(m.Mul4x1(mgl64.Vec4{direction.X, direction.Y, direction.Z, 0}))
}

func fromVec4(v mgl64.Vec4) Vec3 {
	return NewVec3(v[0], v[1], v[2])
}

// Transform maps the ray through m. The origin is treated as a point, the
// direction as a vector, and the result is renormalized.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	return NewRay(TransformPoint(m, r.Origin), TransformDirection(m, r.Direction))
}
