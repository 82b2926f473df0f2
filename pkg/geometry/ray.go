package geometry

import "math"

// Ray is a half-line with a unit direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// RayThrough returns the ray starting at origin passing through target
func RayThrough(origin, target Vector3) Ray {
	return NewRay(origin, target.Sub(origin))
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps the ray into the space of m
func (r Ray) Transform(m Transform) Ray {
	return NewRay(m.ApplyPoint(r.Origin), m.ApplyDirection(r.Direction))
}

// IntersectTriangle intersects the ray with a triangle from either side
// (Möller-Trumbore). It returns the ray parameter of the hit.
func (r Ray) IntersectTriangle(tri Triangle) (float64, bool) {
	edge1 := tri.V2.Sub(tri.V1)
	edge2 := tri.V3.Sub(tri.V1)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < Epsilon {
		return 0, false
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(tri.V1)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * invDet
	if t < Epsilon {
		return 0, false
	}
	return t, true
}

// IntersectPlane intersects the ray with the plane through origin with the
// given normal. Parallel rays and planes behind the ray origin miss.
func (r Ray) IntersectPlane(origin, normal Vector3) (float64, bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}
	t := origin.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectBox reports whether the ray touches the box (slab test)
func (r Ray) IntersectBox(b BoundingBox) bool {
	if b.IsEmpty() {
		return false
	}
	tMin := 0.0
	tMax := math.MaxFloat64

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < Epsilon {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
