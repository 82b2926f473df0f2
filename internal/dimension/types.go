// Package dimension builds the drawable geometry of linear, aligned, angle
// and leader annotations and keeps the collection of created dimensions.
package dimension

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/philipparndt/godim/pkg/geometry"
)

// Type is the kind of annotation
type Type int

const (
	Linear Type = iota
	Aligned
	Angle
	Leader
)

var typeNames = [...]string{"linear", "aligned", "angle", "leader"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// ParseType maps a name such as "angle" to a Type
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown dimension type %q", name)
}

// Record is a created dimension. Its anchors are copies of the points
// captured at creation time and never change afterwards.
//
// Linear and aligned: AnchorA and AnchorB are the measured points, Aux the offset point.
// Angle: AnchorA is the center, AnchorB the first arm, SecondArm the second arm, Aux the radius point.
// Leader: AnchorA is the arrow tip, AnchorB the elbow, Aux the text extension.
type Record struct {
	ID        int
	Type      Type
	AnchorA   geometry.Vector3
	AnchorB   geometry.Vector3
	Aux       geometry.Vector3
	SecondArm *geometry.Vector3
	Label     string
}

// NewLinear describes a linear dimension from a to b offset through o
func NewLinear(a, b, o geometry.Vector3) Record {
	return Record{Type: Linear, AnchorA: a, AnchorB: b, Aux: o}
}

// NewAligned describes an aligned dimension from a to b offset through o
func NewAligned(a, b, o geometry.Vector3) Record {
	return Record{Type: Aligned, AnchorA: a, AnchorB: b, Aux: o}
}

// NewAngle describes the angle at center between arms p1 and p2, drawn at the distance of r
func NewAngle(center, p1, p2, r geometry.Vector3) Record {
	arm := p2
	return Record{Type: Angle, AnchorA: center, AnchorB: p1, SecondArm: &arm, Aux: r}
}

// NewLeader describes a call-out with its arrow at tip
func NewLeader(tip, elbow, extension geometry.Vector3, text string) Record {
	return Record{Type: Leader, AnchorA: tip, AnchorB: elbow, Aux: extension, Label: text}
}

// clone copies the record so callers cannot reach the stored SecondArm
func (r Record) clone() Record {
	if r.SecondArm != nil {
		arm := *r.SecondArm
		r.SecondArm = &arm
	}
	return r
}

// SegmentKind tells renderers what a segment belongs to
type SegmentKind int

const (
	DimensionLine SegmentKind = iota
	WitnessLine
	Tick
	Arm
	LeaderLine
)

// Segment is a straight line piece
type Segment struct {
	Start geometry.Vector3
	End   geometry.Vector3
	Kind  SegmentKind
}

// Arrow is a cone with its point at Tip, pointing along the unit Direction
type Arrow struct {
	Tip       geometry.Vector3
	Direction geometry.Vector3
	Length    float64
}

// Label is a text sprite anchored at Position
type Label struct {
	Text       string
	Position   geometry.Vector3
	Color      color.RGBA
	Background color.RGBA
	Scale      float64
}

// Marker is a point highlight, used for snap feedback
type Marker struct {
	Position geometry.Vector3
	Label    string
}

// PrimitiveSet is everything a renderer needs to draw one dimension
type PrimitiveSet struct {
	RecordID  int
	Type      Type
	Segments  []Segment
	Polylines [][]geometry.Vector3
	Arrows    []Arrow
	Labels    []Label
	Markers   []Marker
	Color     color.RGBA
	Opacity   float64
	Preview   bool
	DepthTest bool
	// Value is the measured length in scene units or the angle in radians
	Value float64
}

// SegmentsOf returns the segments of the given kind
func (p PrimitiveSet) SegmentsOf(kind SegmentKind) []Segment {
	var out []Segment
	for _, s := range p.Segments {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
