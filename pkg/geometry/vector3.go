package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the length below which a vector is treated as zero
const Epsilon = 1e-9

var (
	// Up is the global up axis
	Up = Vector3{X: 0, Y: 1, Z: 0}
	// Right is the global horizontal axis used when no better direction exists
	Right = Vector3{X: 1, Y: 0, Z: 0}
)

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Negate returns the vector pointing the opposite way
func (v Vector3) Negate() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return v.Mul(1.0 / length)
}

// NormalizeOr returns the unit vector of v, or fallback when v is too short to have a direction
func (v Vector3) NormalizeOr(fallback Vector3) Vector3 {
	if v.Length() < Epsilon {
		return fallback
	}
	return v.Normalize()
}

// Lerp interpolates linearly between v (t=0) and other (t=1)
func (v Vector3) Lerp(other Vector3, t float64) Vector3 {
	return v.Add(other.Sub(v).Mul(t))
}

// Midpoint returns the point halfway between v and other
func (v Vector3) Midpoint(other Vector3) Vector3 {
	return v.Lerp(other, 0.5)
}

// AngleTo returns the non-reflex angle between two directions in radians (0..π)
func (v Vector3) AngleTo(other Vector3) float64 {
	a := v.Normalize()
	b := other.Normalize()
	return math.Acos(clamp(a.Dot(b), -1, 1))
}

// ProjectOnto returns the component of v along the unit direction dir
func (v Vector3) ProjectOnto(dir Vector3) Vector3 {
	return dir.Mul(v.Dot(dir))
}

// IsZero reports whether the vector is shorter than Epsilon
func (v Vector3) IsZero() bool {
	return v.Length() < Epsilon
}

// ApproxEqual compares two vectors component-wise within tol
func (v Vector3) ApproxEqual(other Vector3, tol float64) bool {
	return scalar.EqualWithinAbs(v.X, other.X, tol) &&
		scalar.EqualWithinAbs(v.Y, other.Y, tol) &&
		scalar.EqualWithinAbs(v.Z, other.Z, tol)
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// Rotate rotates v around the unit axis by angle radians (Rodrigues' formula)
func (v Vector3) Rotate(axis Vector3, angle float64) Vector3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return v.Mul(cos).
		Add(axis.Cross(v).Mul(sin)).
		Add(axis.Mul(axis.Dot(v) * (1 - cos)))
}

// Perpendicular returns some unit vector perpendicular to v
func (v Vector3) Perpendicular() Vector3 {
	candidate := Up
	if math.Abs(v.Normalize().Dot(Up)) > 0.9 {
		candidate = Right
	}
	return v.Cross(candidate).Normalize()
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
