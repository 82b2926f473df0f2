package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

func triangleSurface() *scene.Surface {
	return scene.NewSurface("tri", []geometry.Triangle{
		geometry.NewTriangle(geometry.Vector3{},
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(3, 0, 0),
			geometry.NewVector3(0, 4, 0)),
	})
}

func TestAnalyzeSurface(t *testing.T) {
	stats := AnalyzeSurface(triangleSurface())

	assert.Equal(t, 1, stats.TriangleCount)
	assert.Equal(t, 3, stats.EdgeCount)
	assert.InDelta(t, 6, stats.SurfaceArea, 1e-12)
	assert.InDelta(t, 3, stats.MinEdgeLength, 1e-12)
	assert.InDelta(t, 5, stats.MaxEdgeLength, 1e-12)
	assert.InDelta(t, 4, stats.AvgEdgeLength, 1e-12)
	assert.Equal(t, geometry.NewVector3(3, 4, 0), stats.Dimensions)

	assert.Equal(t, 0.2, stats.SuggestedThreshold(0.2))
	assert.Equal(t, 0.75, stats.SuggestedThreshold(1))
}

func TestAnalyzeTransformedSurface(t *testing.T) {
	s := triangleSurface()
	s.SetTransform(geometry.Scaling(geometry.NewVector3(2, 2, 2)))

	stats := AnalyzeSurface(s)
	assert.InDelta(t, 24, stats.SurfaceArea, 1e-9)
	assert.InDelta(t, 10, stats.MaxEdgeLength, 1e-9)
}

func TestEdgeQueries(t *testing.T) {
	stats := AnalyzeSurface(triangleSurface())

	longest := stats.FindLongestEdges(1)
	require.Len(t, longest, 1)
	assert.InDelta(t, 5, longest[0].Length, 1e-12)

	shortest := stats.FindShortestEdges(10)
	require.Len(t, shortest, 3)
	assert.InDelta(t, 3, shortest[0].Length, 1e-12)

	assert.Len(t, stats.FindEdgesByLength(3.5, 4.5), 1)
}

func TestFindNearestVertex(t *testing.T) {
	s := triangleSurface()
	s.SetTransform(geometry.Translation(geometry.NewVector3(0, 0, 1)))

	vertex, distance := FindNearestVertex(s, geometry.NewVector3(2.9, 0.1, 1))
	assert.Equal(t, geometry.NewVector3(3, 0, 1), vertex)
	assert.InDelta(t, 0.1414, distance, 1e-4)
}

func TestReport(t *testing.T) {
	records := []dimension.Record{
		dimension.NewLinear(geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 0, 0), geometry.NewVector3(1, 1, 0)),
		dimension.NewAngle(geometry.Vector3{}, geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0), geometry.NewVector3(0.5, 0, 0)),
		dimension.NewLeader(geometry.Vector3{}, geometry.NewVector3(1, 1, 0), geometry.NewVector3(2, 1, 0), "Beam"),
	}
	for i := range records {
		records[i].ID = i + 1
	}

	rows := Report(records, dimension.DefaultStyle())
	require.Len(t, rows, 3)
	assert.Equal(t, "2.00m", rows[0].Value)
	assert.Equal(t, "90.0°", rows[1].Value)
	assert.Len(t, rows[1].Anchors, 4)
	assert.Equal(t, "Beam", rows[2].Value)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "linear")
	assert.Contains(t, lines[1], "(2.000, 0.000, 0.000)")
}
