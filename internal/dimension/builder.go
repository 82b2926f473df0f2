package dimension

import (
	"github.com/philipparndt/godim/pkg/geometry"
)

const (
	// MinLength is the shortest baseline or radius that can be measured
	MinLength = 0.001
	// ArcSegments is the number of segments an angle arc is sampled with
	ArcSegments = 24

	witnessExtension = 0.05
	tickHalfLength   = 0.05
	labelOffset      = 0.1
	angleLabelOffset = 0.15
	arrowLength      = 0.08
	previewOpacity   = 0.5
)

// Build produces the primitives of rec drawn with style. It returns false
// when the record is degenerate. Preview sets are faded and carry no record id.
func Build(rec Record, style *Style, preview bool) (PrimitiveSet, bool) {
	if style == nil {
		def := DefaultStyle()
		style = &def
	}

	var set PrimitiveSet
	var ok bool
	switch rec.Type {
	case Linear, Aligned:
		set, ok = BuildLinear(rec.AnchorA, rec.AnchorB, rec.Aux, style)
	case Angle:
		if rec.SecondArm == nil {
			return PrimitiveSet{}, false
		}
		set, ok = BuildAngle(rec.AnchorA, rec.AnchorB, *rec.SecondArm, rec.Aux, style)
	case Leader:
		set, ok = BuildLeader(rec.AnchorA, rec.AnchorB, rec.Aux, rec.Label, style), true
	}
	if !ok {
		return PrimitiveSet{}, false
	}

	set.Type = rec.Type
	if preview {
		set.applyPreview()
	} else {
		set.RecordID = rec.ID
	}
	return set, true
}

func newSet(style *Style) PrimitiveSet {
	return PrimitiveSet{
		Color:     style.LineColor,
		Opacity:   1,
		DepthTest: style.DepthTest,
	}
}

func (p *PrimitiveSet) label(text string, pos geometry.Vector3, style *Style) {
	p.Labels = append(p.Labels, Label{
		Text:       text,
		Position:   pos,
		Color:      style.LabelColor,
		Background: style.LabelBackground,
		Scale:      style.Scale,
	})
}

func (p *PrimitiveSet) segment(kind SegmentKind, start, end geometry.Vector3) {
	p.Segments = append(p.Segments, Segment{Start: start, End: end, Kind: kind})
}

func (p *PrimitiveSet) applyPreview() {
	p.Preview = true
	p.RecordID = 0
	p.Opacity = previewOpacity
	p.Color = desaturate(p.Color)
	for i := range p.Labels {
		p.Labels[i].Color = desaturate(p.Labels[i].Color)
		p.Labels[i].Background = desaturate(p.Labels[i].Background)
	}
}

// BuildLinear measures a to b. The dimension line is the baseline moved by
// the component of (o - a) perpendicular to it.
func BuildLinear(a, b, o geometry.Vector3, style *Style) (PrimitiveSet, bool) {
	baseline := b.Sub(a)
	length := baseline.Length()
	if length < MinLength {
		return PrimitiveSet{}, false
	}
	dir := baseline.Mul(1 / length)

	rel := o.Sub(a)
	offset := rel.Sub(dir.Mul(rel.Dot(dir)))
	witness := offset.NormalizeOr(defaultWitness(dir))

	start := a.Add(offset)
	end := b.Add(offset)
	ext := witness.Mul(witnessExtension * style.Scale)

	set := newSet(style)
	set.Value = length
	set.segment(DimensionLine, start, end)
	set.segment(WitnessLine, a, start.Add(ext))
	set.segment(WitnessLine, b, end.Add(ext))

	tick := dir.Add(witness).Normalize().Mul(tickHalfLength * style.Scale)
	set.segment(Tick, start.Sub(tick), start.Add(tick))
	set.segment(Tick, end.Sub(tick), end.Add(tick))

	mid := start.Midpoint(end).Add(witness.Mul(labelOffset * style.Scale))
	set.label(style.Units.FormatLength(length), mid, style)
	return set, true
}

// defaultWitness is global up made perpendicular to dir, or +X when dir is vertical
func defaultWitness(dir geometry.Vector3) geometry.Vector3 {
	up := geometry.Up.Sub(dir.Mul(geometry.Up.Dot(dir)))
	if up.Length() > 1e-6 {
		return up.Normalize()
	}
	return geometry.Right.Sub(dir.Mul(geometry.Right.Dot(dir))).NormalizeOr(geometry.Right)
}

// BuildAngle measures the non-reflex angle at center between the arms
// toward p1 and p2, drawn as an arc through the distance of r.
func BuildAngle(center, p1, p2, r geometry.Vector3, style *Style) (PrimitiveSet, bool) {
	radius := center.Distance(r)
	if radius < MinLength {
		return PrimitiveSet{}, false
	}
	d1 := p1.Sub(center)
	d2 := p2.Sub(center)
	if d1.Length() < MinLength || d2.Length() < MinLength {
		return PrimitiveSet{}, false
	}
	d1 = d1.Normalize()
	d2 = d2.Normalize()

	angle := d1.AngleTo(d2)
	normal := d1.Cross(d2)
	if normal.Length() > 1e-9 {
		normal = normal.Normalize()
	} else {
		normal = arcFallbackNormal(d1)
	}

	arc := geometry.Arc{Center: center, Normal: normal, Start: d1, Radius: radius, Sweep: angle}
	points := arc.Sample(ArcSegments)

	set := newSet(style)
	set.Value = angle
	set.Polylines = append(set.Polylines, points)
	set.segment(Arm, center, points[0])
	set.segment(Arm, center, points[len(points)-1])

	mid := d1.Rotate(normal, angle/2)
	pos := center.Add(mid.Mul(radius + angleLabelOffset*style.Scale))
	set.label(FormatAngle(angle), pos, style)
	return set, true
}

// arcFallbackNormal is global up made perpendicular to the arm, so a straight
// angle still sweeps in a plane containing both arms.
func arcFallbackNormal(arm geometry.Vector3) geometry.Vector3 {
	up := geometry.Up.Sub(arm.Mul(geometry.Up.Dot(arm)))
	if up.Length() > 1e-6 {
		return up.Normalize()
	}
	return arm.Perpendicular()
}

// BuildLeader draws tip-elbow-extension with an arrow at tip and text beyond the extension
func BuildLeader(tip, elbow, extension geometry.Vector3, text string, style *Style) PrimitiveSet {
	set := newSet(style)
	set.segment(LeaderLine, tip, elbow)
	set.segment(LeaderLine, elbow, extension)

	set.Arrows = append(set.Arrows, Arrow{
		Tip:       tip,
		Direction: tip.Sub(elbow).NormalizeOr(geometry.Up),
		Length:    arrowLength * style.Scale,
	})

	dir := extension.Sub(elbow).NormalizeOr(geometry.Right)
	set.label(text, extension.Add(dir.Mul(labelOffset*style.Scale)), style)
	set.Value = tip.Distance(elbow) + elbow.Distance(extension)
	return set
}
