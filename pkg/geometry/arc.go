package geometry

// Arc is a circular arc around Center in the plane with unit normal Normal.
// It starts in the unit direction Start and sweeps Sweep radians
// counter-clockwise about Normal.
type Arc struct {
	Center Vector3
	Normal Vector3
	Start  Vector3
	Radius float64
	Sweep  float64
}

// PointAt returns the point at fraction t (0..1) of the sweep
func (a Arc) PointAt(t float64) Vector3 {
	dir := a.Start.Rotate(a.Normal, a.Sweep*t)
	return a.Center.Add(dir.Mul(a.Radius))
}

// Sample returns segments+1 points evenly spaced along the arc, both ends included
func (a Arc) Sample(segments int) []Vector3 {
	if segments < 1 {
		segments = 1
	}
	points := make([]Vector3, segments+1)
	for i := 0; i <= segments; i++ {
		points[i] = a.PointAt(float64(i) / float64(segments))
	}
	return points
}
