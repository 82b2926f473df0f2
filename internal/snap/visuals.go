package snap

import "github.com/philipparndt/godim/pkg/geometry"

// Visuals is an Indicator that remembers what should currently be shown
type Visuals struct {
	MarkerVisible bool
	Marker        geometry.Vector3
	MarkerKind    Kind

	EdgeVisible bool
	EdgeStart   geometry.Vector3
	EdgeEnd     geometry.Vector3
}

func (v *Visuals) ShowMarker(point geometry.Vector3, kind Kind) {
	v.MarkerVisible = true
	v.Marker = point
	v.MarkerKind = kind
}

func (v *Visuals) HideMarker() {
	v.MarkerVisible = false
}

func (v *Visuals) ShowEdge(a, b geometry.Vector3) {
	v.EdgeVisible = true
	v.EdgeStart = a
	v.EdgeEnd = b
}

func (v *Visuals) HideEdge() {
	v.EdgeVisible = false
}

// Indicators fans feedback out to several indicators
type Indicators []Indicator

func (list Indicators) ShowMarker(point geometry.Vector3, kind Kind) {
	for _, ind := range list {
		ind.ShowMarker(point, kind)
	}
}

func (list Indicators) HideMarker() {
	for _, ind := range list {
		ind.HideMarker()
	}
}

func (list Indicators) ShowEdge(a, b geometry.Vector3) {
	for _, ind := range list {
		ind.ShowEdge(a, b)
	}
}

func (list Indicators) HideEdge() {
	for _, ind := range list {
		ind.HideEdge()
	}
}
