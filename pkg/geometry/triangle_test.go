package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	lengths := tri.EdgeLengths()

	// Expected lengths: 3, 5, 4 (Pythagorean triple)
	if math.Abs(lengths[0]-3.0) > 1e-10 {
		t.Errorf("Edge 0 length failed: expected 3.0, got %v", lengths[0])
	}
	if math.Abs(lengths[1]-5.0) > 1e-10 {
		t.Errorf("Edge 1 length failed: expected 5.0, got %v", lengths[1])
	}
	if math.Abs(lengths[2]-4.0) > 1e-10 {
		t.Errorf("Edge 2 length failed: expected 4.0, got %v", lengths[2])
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleEdgeMidpoints(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(2, 0, 0), NewVector3(0, 2, 0))

	mids := tri.EdgeMidpoints()
	expected := [3]Vector3{NewVector3(1, 0, 0), NewVector3(1, 1, 0), NewVector3(0, 1, 0)}

	if mids != expected {
		t.Errorf("EdgeMidpoints failed: expected %v, got %v", expected, mids)
	}
}

func TestTriangleFaceNormal(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))

	normal := tri.FaceNormal()
	if normal != NewVector3(0, 0, 1) {
		t.Errorf("FaceNormal failed: expected winding normal (0,0,1), got %v", normal)
	}

	tri.Normal = NewVector3(0, 0, -3)
	normal = tri.FaceNormal()
	if normal != NewVector3(0, 0, -1) {
		t.Errorf("FaceNormal failed: expected stored normal (0,0,-1), got %v", normal)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(4, 0, 0)

	if got := ClosestPointOnSegment(NewVector3(1, 3, 0), a, b); got != NewVector3(1, 0, 0) {
		t.Errorf("ClosestPointOnSegment failed: expected (1,0,0), got %v", got)
	}
	if got := ClosestPointOnSegment(NewVector3(-2, 1, 0), a, b); got != a {
		t.Errorf("ClosestPointOnSegment should clamp to start, got %v", got)
	}
	if got := ClosestPointOnSegment(NewVector3(9, 1, 0), a, b); got != b {
		t.Errorf("ClosestPointOnSegment should clamp to end, got %v", got)
	}
	if got := ClosestPointOnSegment(NewVector3(9, 1, 0), a, a); got != a {
		t.Errorf("ClosestPointOnSegment on a degenerate segment should return its start, got %v", got)
	}
}
