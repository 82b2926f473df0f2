package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the normal vector for the triangle from its winding
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// FaceNormal returns the stored normal, or the winding normal when none was stored
func (t Triangle) FaceNormal() Vector3 {
	if t.Normal.IsZero() {
		return t.CalculateNormal()
	}
	return t.Normal.Normalize()
}

// Vertices returns the corners in winding order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// Edges returns the three edges V1-V2, V2-V3, V3-V1
func (t Triangle) Edges() [3][2]Vector3 {
	return [3][2]Vector3{
		{t.V1, t.V2},
		{t.V2, t.V3},
		{t.V3, t.V1},
	}
}

// EdgeMidpoints returns the midpoints of the edges in Edges order
func (t Triangle) EdgeMidpoints() [3]Vector3 {
	edges := t.Edges()
	return [3]Vector3{
		edges[0][0].Midpoint(edges[0][1]),
		edges[1][0].Midpoint(edges[1][1]),
		edges[2][0].Midpoint(edges[2][1]),
	}
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Transform returns the triangle with its corners mapped to world space.
// The stored normal is carried through the inverse-transpose.
func (t Triangle) Transform(m Transform) Triangle {
	return Triangle{
		Normal: m.ApplyNormal(t.Normal),
		V1:     m.ApplyPoint(t.V1),
		V2:     m.ApplyPoint(t.V2),
		V3:     m.ApplyPoint(t.V3),
	}
}

// ClosestPointOnSegment returns the point on segment a-b nearest to p
func ClosestPointOnSegment(p, a, b Vector3) Vector3 {
	ab := b.Sub(a)
	lengthSq := ab.Dot(ab)
	if lengthSq < Epsilon*Epsilon {
		return a
	}
	t := clamp(p.Sub(a).Dot(ab)/lengthSq, 0, 1)
	return a.Add(ab.Mul(t))
}
