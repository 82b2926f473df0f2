package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine local-to-world transform backed by a 4x4 matrix.
// The zero value is the identity.
type Transform struct {
	m   mgl64.Mat4
	set bool
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{m: mgl64.Ident4(), set: true}
}

// NewTransform wraps a column-major mgl64 matrix
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{m: m, set: true}
}

// Translation returns a transform that moves points by offset
func Translation(offset Vector3) Transform {
	return NewTransform(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
}

// Scaling returns a (possibly non-uniform) scale transform
func Scaling(factors Vector3) Transform {
	return NewTransform(mgl64.Scale3D(factors.X, factors.Y, factors.Z))
}

// Rotation returns a rotation of angle radians about axis
func Rotation(axis Vector3, angle float64) Transform {
	a := axis.Normalize()
	return NewTransform(mgl64.HomogRotate3D(angle, mgl64.Vec3{a.X, a.Y, a.Z}))
}

// Matrix returns the underlying matrix
func (t Transform) Matrix() mgl64.Mat4 {
	if !t.set {
		return mgl64.Ident4()
	}
	return t.m
}

// Then returns the transform that applies t first and next afterwards
func (t Transform) Then(next Transform) Transform {
	return NewTransform(next.Matrix().Mul4(t.Matrix()))
}

// IsIdentity reports whether the transform leaves every point unchanged
func (t Transform) IsIdentity() bool {
	return t.Matrix().ApproxEqual(mgl64.Ident4())
}

// ApplyPoint maps a local point into world space
func (t Transform) ApplyPoint(p Vector3) Vector3 {
	r := mgl64.TransformCoordinate(mgl64.Vec3{p.X, p.Y, p.Z}, t.Matrix())
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}

// ApplyDirection maps a local direction into world space, ignoring translation
func (t Transform) ApplyDirection(d Vector3) Vector3 {
	r := mgl64.TransformNormal(mgl64.Vec3{d.X, d.Y, d.Z}, t.Matrix())
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}

// ApplyNormal maps a local surface normal into world space using the
// inverse-transpose of the linear part, so non-uniform scales keep normals
// perpendicular to the transformed surface. The result is unit length, or
// zero when n is zero.
func (t Transform) ApplyNormal(n Vector3) Vector3 {
	if n.IsZero() {
		return Vector3{}
	}
	linear := t.Matrix().Mat3()
	if math.Abs(linear.Det()) < Epsilon {
		return t.ApplyDirection(n).Normalize()
	}
	r := linear.Inv().Transpose().Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z})
	return Vector3{X: r[0], Y: r[1], Z: r[2]}.Normalize()
}
