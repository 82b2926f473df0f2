package dimension

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/godim/pkg/geometry"
)

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

func distanceToLine(p, a, b geometry.Vector3) float64 {
	dir := b.Sub(a).Normalize()
	rel := p.Sub(a)
	return rel.Sub(dir.Mul(rel.Dot(dir))).Length()
}

func randomPoint(rng *rand.Rand) geometry.Vector3 {
	return v(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
}

func TestBuildLinearScenario(t *testing.T) {
	style := DefaultStyle()
	set, ok := BuildLinear(v(0, 0, 0), v(2, 0, 0), v(1, 1, 0), &style)
	require.True(t, ok)

	lines := set.SegmentsOf(DimensionLine)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Start.ApproxEqual(v(0, 1, 0), 1e-12))
	assert.True(t, lines[0].End.ApproxEqual(v(2, 1, 0), 1e-12))

	require.Len(t, set.Labels, 1)
	assert.Equal(t, "2.00m", set.Labels[0].Text)
	assert.True(t, set.Labels[0].Position.ApproxEqual(v(1, 1.1, 0), 1e-12))
	assert.Equal(t, 2.0, set.Value)
}

func TestBuildLinearWitnessAndTicks(t *testing.T) {
	style := DefaultStyle()
	set, ok := BuildLinear(v(0, 0, 0), v(2, 0, 0), v(1, 1, 0), &style)
	require.True(t, ok)

	witness := set.SegmentsOf(WitnessLine)
	require.Len(t, witness, 2)
	assert.Equal(t, v(0, 0, 0), witness[0].Start)
	assert.True(t, witness[0].End.ApproxEqual(v(0, 1.05, 0), 1e-12))
	assert.Equal(t, v(2, 0, 0), witness[1].Start)
	assert.True(t, witness[1].End.ApproxEqual(v(2, 1.05, 0), 1e-12))

	ticks := set.SegmentsOf(Tick)
	require.Len(t, ticks, 2)
	for _, tick := range ticks {
		dir := tick.End.Sub(tick.Start).Normalize()
		assert.True(t, dir.ApproxEqual(v(1, 1, 0).Normalize(), 1e-12), "tick direction %v", dir)
		assert.InDelta(t, 0.1, tick.Start.Distance(tick.End), 1e-12)
	}
}

func TestBuildLinearDegenerate(t *testing.T) {
	style := DefaultStyle()
	_, ok := BuildLinear(v(1, 1, 1), v(1.0005, 1, 1), v(0, 5, 0), &style)
	assert.False(t, ok)
}

func TestBuildLinearZeroOffsetUsesUp(t *testing.T) {
	style := DefaultStyle()
	set, ok := BuildLinear(v(0, 0, 0), v(3, 0, 0), v(5, 0, 0), &style)
	require.True(t, ok)

	line := set.SegmentsOf(DimensionLine)[0]
	assert.Equal(t, v(0, 0, 0), line.Start)
	assert.Equal(t, v(3, 0, 0), line.End)

	witness := set.SegmentsOf(WitnessLine)[0]
	assert.True(t, witness.End.ApproxEqual(v(0, 0.05, 0), 1e-12), "witness end %v", witness.End)
	assert.False(t, math.IsNaN(set.Labels[0].Position.X))
}

func TestBuildLinearVerticalZeroOffset(t *testing.T) {
	style := DefaultStyle()
	set, ok := BuildLinear(v(0, 0, 0), v(0, 2, 0), v(0, 1, 0), &style)
	require.True(t, ok)

	witness := set.SegmentsOf(WitnessLine)[0]
	assert.True(t, witness.End.ApproxEqual(v(0.05, 0, 0), 1e-12), "witness end %v", witness.End)
}

func TestBuildLinearUnits(t *testing.T) {
	style := DefaultStyle()

	style.Units = Millimeter
	set, _ := BuildLinear(v(0, 0, 0), v(1.2346, 0, 0), v(0, 1, 0), &style)
	assert.Equal(t, "1235mm", set.Labels[0].Text)

	style.Units = Foot
	set, _ = BuildLinear(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0), &style)
	assert.Equal(t, "3.28'", set.Labels[0].Text)
}

func TestBuildLinearScale(t *testing.T) {
	style := DefaultStyle()
	style.Scale = 2
	set, ok := BuildLinear(v(0, 0, 0), v(2, 0, 0), v(1, 1, 0), &style)
	require.True(t, ok)

	assert.True(t, set.SegmentsOf(WitnessLine)[0].End.ApproxEqual(v(0, 1.1, 0), 1e-12))
	assert.True(t, set.Labels[0].Position.ApproxEqual(v(1, 1.2, 0), 1e-12))
	assert.Equal(t, 2.0, set.Labels[0].Scale)
}

func TestBuildLinearKeepsOffsetDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	style := DefaultStyle()

	for i := 0; i < 500; i++ {
		a, b, o := randomPoint(rng), randomPoint(rng), randomPoint(rng)
		if a.Distance(b) < MinLength {
			continue
		}
		set, ok := BuildLinear(a, b, o, &style)
		require.True(t, ok)

		want := distanceToLine(o, a, b)
		line := set.SegmentsOf(DimensionLine)[0]
		assert.InDelta(t, want, distanceToLine(line.Start, a, b), 1e-9)
		assert.InDelta(t, want, distanceToLine(line.End, a, b), 1e-9)
		assert.InDelta(t, a.Distance(b), line.Start.Distance(line.End), 1e-9)
	}
}

func TestBuildAngleScenario(t *testing.T) {
	style := DefaultStyle()
	set, ok := BuildAngle(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0), v(0.5, 0, 0), &style)
	require.True(t, ok)

	assert.InDelta(t, math.Pi/2, set.Value, 1e-12)
	require.Len(t, set.Labels, 1)
	assert.Equal(t, "90.0°", set.Labels[0].Text)

	require.Len(t, set.Polylines, 1)
	arc := set.Polylines[0]
	require.Len(t, arc, ArcSegments+1)
	for _, p := range arc {
		assert.InDelta(t, 0.5, p.Length(), 1e-12)
	}
	assert.True(t, arc[0].ApproxEqual(v(0.5, 0, 0), 1e-12))
	assert.True(t, arc[ArcSegments].ApproxEqual(v(0, 0.5, 0), 1e-12))

	arms := set.SegmentsOf(Arm)
	require.Len(t, arms, 2)
	assert.Equal(t, arc[0], arms[0].End)
	assert.Equal(t, arc[ArcSegments], arms[1].End)

	expected := v(1, 1, 0).Normalize().Mul(0.65)
	assert.True(t, set.Labels[0].Position.ApproxEqual(expected, 1e-12), "label at %v", set.Labels[0].Position)
}

func TestBuildAngleMatchesAnalyticAngle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	style := DefaultStyle()

	for i := 0; i < 500; i++ {
		c, p1, p2, r := randomPoint(rng), randomPoint(rng), randomPoint(rng), randomPoint(rng)
		d1, d2 := p1.Sub(c), p2.Sub(c)
		if d1.Cross(d2).Length() < 1e-3*d1.Length()*d2.Length() {
			continue
		}
		set, ok := BuildAngle(c, p1, p2, r, &style)
		require.True(t, ok)

		want := math.Acos(d1.Dot(d2) / (d1.Length() * d2.Length()))
		assert.InDelta(t, want, set.Value, 1e-9)
		assert.GreaterOrEqual(t, set.Value, 0.0)
		assert.LessOrEqual(t, set.Value, math.Pi)

		// the arc ends on the second arm
		end := set.Polylines[0][ArcSegments].Sub(c).Normalize()
		assert.True(t, end.ApproxEqual(d2.Normalize(), 1e-9))
	}
}

func TestBuildAngleDegenerate(t *testing.T) {
	style := DefaultStyle()

	_, ok := BuildAngle(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0), v(0.0001, 0, 0), &style)
	assert.False(t, ok, "zero radius")

	_, ok = BuildAngle(v(0, 0, 0), v(0, 0, 0), v(0, 1, 0), v(1, 0, 0), &style)
	assert.False(t, ok, "coincident arm")
}

func TestBuildAngleParallelArms(t *testing.T) {
	style := DefaultStyle()

	set, ok := BuildAngle(v(0, 0, 0), v(1, 0, 0), v(-2, 0, 0), v(1, 0, 0), &style)
	require.True(t, ok)
	assert.InDelta(t, math.Pi, set.Value, 1e-12)
	assert.Equal(t, "180.0°", set.Labels[0].Text)
	assert.True(t, set.Polylines[0][ArcSegments].ApproxEqual(v(-1, 0, 0), 1e-9))

	// tilted straight angle: the arc must still end on the second arm
	set, ok = BuildAngle(v(0, 0, 0), v(1, 1, 0), v(-1, -1, 0), v(1, 0, 0), &style)
	require.True(t, ok)
	assert.InDelta(t, math.Pi, set.Value, 1e-12)
	arc := set.Polylines[0]
	assert.True(t, arc[ArcSegments].ApproxEqual(v(-1, -1, 0).Normalize(), 1e-9))
	arms := set.SegmentsOf(Arm)
	require.Len(t, arms, 2)
	assert.True(t, arms[1].End.ApproxEqual(v(-1, -1, 0).Normalize(), 1e-9))
	for _, p := range arc {
		assert.InDelta(t, 1, p.Length(), 1e-9)
	}
	// the arc bends through the plane closest to horizontal
	assert.InDelta(t, 0, arc[ArcSegments/2].Y, 1e-9)
	assert.InDelta(t, 1, math.Abs(arc[ArcSegments/2].Z), 1e-9)

	set, ok = BuildAngle(v(0, 0, 0), v(0, 1, 0), v(0, 3, 0), v(1, 0, 0), &style)
	require.True(t, ok)
	assert.InDelta(t, 0, set.Value, 1e-12)
	for _, p := range set.Polylines[0] {
		assert.False(t, math.IsNaN(p.X))
	}
}

func TestBuildLeader(t *testing.T) {
	style := DefaultStyle()
	set := BuildLeader(v(0, 0, 0), v(1, 1, 0), v(2, 1, 0), "Beam", &style)

	leaders := set.SegmentsOf(LeaderLine)
	require.Len(t, leaders, 2)
	assert.Equal(t, v(0, 0, 0), leaders[0].Start)
	assert.Equal(t, v(2, 1, 0), leaders[1].End)

	require.Len(t, set.Arrows, 1)
	assert.True(t, set.Arrows[0].Direction.ApproxEqual(v(-1, -1, 0).Normalize(), 1e-12))
	assert.InDelta(t, 0.08, set.Arrows[0].Length, 1e-12)

	require.Len(t, set.Labels, 1)
	assert.Equal(t, "Beam", set.Labels[0].Text)
	assert.True(t, set.Labels[0].Position.ApproxEqual(v(2.1, 1, 0), 1e-12))
}

func TestBuildLeaderDegenerateDirections(t *testing.T) {
	style := DefaultStyle()
	set := BuildLeader(v(1, 1, 1), v(1, 1, 1), v(1, 1, 1), "x", &style)

	assert.Equal(t, geometry.Up, set.Arrows[0].Direction)
	assert.True(t, set.Labels[0].Position.ApproxEqual(v(1.1, 1, 1), 1e-12))
}

func TestBuildPreview(t *testing.T) {
	style := DefaultStyle()
	rec := NewLinear(v(0, 0, 0), v(2, 0, 0), v(1, 1, 0))
	rec.ID = 7

	final, ok := Build(rec, &style, false)
	require.True(t, ok)
	assert.Equal(t, 7, final.RecordID)
	assert.Equal(t, 1.0, final.Opacity)
	assert.False(t, final.Preview)
	assert.Equal(t, style.LineColor, final.Color)

	preview, ok := Build(rec, &style, true)
	require.True(t, ok)
	assert.Equal(t, 0, preview.RecordID)
	assert.Equal(t, 0.5, preview.Opacity)
	assert.True(t, preview.Preview)
	assert.NotEqual(t, style.LineColor, preview.Color)
	assert.Equal(t, final.Segments, preview.Segments)
}

func TestBuildDispatch(t *testing.T) {
	set, ok := Build(NewAngle(v(0, 0, 0), v(1, 0, 0), v(0, 0, 1), v(2, 0, 0)), nil, false)
	require.True(t, ok)
	assert.Equal(t, Angle, set.Type)

	_, ok = Build(Record{Type: Angle}, nil, false)
	assert.False(t, ok, "angle without a second arm")

	set, ok = Build(NewLeader(v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), "note"), nil, false)
	require.True(t, ok)
	assert.Equal(t, Leader, set.Type)

	set, ok = Build(NewAligned(v(0, 0, 0), v(1, 1, 1), v(0, 1, 0)), nil, false)
	require.True(t, ok)
	assert.Equal(t, Aligned, set.Type)
}
