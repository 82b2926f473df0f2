package snap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// floor is a single triangle in the y=0 plane
func floor() *scene.Surface {
	return scene.NewSurface("floor", []geometry.Triangle{
		geometry.NewTriangle(geometry.Up,
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(2, 0, 0),
			geometry.NewVector3(0, 0, 2)),
	})
}

func downAt(x, z float64) geometry.Ray {
	return geometry.NewRay(geometry.NewVector3(x, 5, z), geometry.NewVector3(0, -1, 0))
}

type countingRaycaster struct {
	calls int
}

func (c *countingRaycaster) Raycast(ray geometry.Ray, surfaces []*scene.Surface) (scene.Hit, bool) {
	c.calls++
	return scene.MeshRaycaster{}.Raycast(ray, surfaces)
}

func TestQuerySnapsToVertex(t *testing.T) {
	opts := Options{Vertices: true, Threshold: DefaultThreshold}
	visuals := &Visuals{}
	engine := NewEngine(nil, opts, visuals)

	result, ok := engine.Query(downAt(0.1, 0.1), []*scene.Surface{floor()})

	require.True(t, ok)
	assert.Equal(t, Vertex, result.Kind)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), result.Point)
	assert.InDelta(t, 0.1414, result.Distance, 1e-4)
	assert.Equal(t, "floor", result.Surface.Name)
	assert.Nil(t, result.Edge)

	assert.True(t, visuals.MarkerVisible)
	assert.Equal(t, result.Point, visuals.Marker)
	assert.False(t, visuals.EdgeVisible)
}

func TestQueryHitWithoutFeature(t *testing.T) {
	visuals := &Visuals{MarkerVisible: true, EdgeVisible: true}
	engine := NewEngine(nil, Options{Vertices: true, Threshold: DefaultThreshold}, visuals)

	_, ok := engine.Query(downAt(0.6, 0.6), []*scene.Surface{floor()})

	assert.False(t, ok)
	assert.False(t, visuals.MarkerVisible)
	assert.False(t, visuals.EdgeVisible)
}

func TestQueryMiss(t *testing.T) {
	engine := NewEngine(nil, DefaultOptions(), nil)

	_, ok := engine.Query(downAt(5, 5), []*scene.Surface{floor()})
	assert.False(t, ok)

	_, ok = engine.Query(downAt(0, 0), nil)
	assert.False(t, ok)
}

func TestQueryDisabledSkipsRaycast(t *testing.T) {
	caster := &countingRaycaster{}
	visuals := &Visuals{}
	engine := NewEngine(caster, DefaultOptions(), visuals)

	_, ok := engine.Query(downAt(0.05, 0.05), []*scene.Surface{floor()})
	require.True(t, ok)
	require.Equal(t, 1, caster.calls)
	require.True(t, visuals.MarkerVisible)

	engine.SetEnabled(false)
	assert.False(t, visuals.MarkerVisible)

	_, ok = engine.Query(downAt(0.05, 0.05), []*scene.Surface{floor()})
	assert.False(t, ok)
	assert.Equal(t, 1, caster.calls)
	assert.False(t, engine.Enabled())
}

func TestQueryNearestWinsAcrossCategories(t *testing.T) {
	engine := NewEngine(nil, DefaultOptions(), nil)

	// The edge point (0.05,0,0) is nearer than the vertex at the origin
	result, ok := engine.Query(downAt(0.05, 0.05), []*scene.Surface{floor()})

	require.True(t, ok)
	assert.Equal(t, Edge, result.Kind)
	assert.True(t, result.Point.ApproxEqual(geometry.NewVector3(0.05, 0, 0), 1e-9))
	require.NotNil(t, result.Edge)
}

func TestQueryTieKeepsFirstCandidate(t *testing.T) {
	visuals := &Visuals{}
	engine := NewEngine(nil, DefaultOptions(), visuals)

	// Exactly on the midpoint of the first edge: midpoint and edge point coincide
	result, ok := engine.Query(downAt(1, 0), []*scene.Surface{floor()})

	require.True(t, ok)
	assert.Equal(t, Midpoint, result.Kind)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), result.Point)
	require.NotNil(t, result.Edge)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), result.Edge[0])
	assert.Equal(t, geometry.NewVector3(2, 0, 0), result.Edge[1])

	assert.True(t, visuals.EdgeVisible)
	assert.Equal(t, geometry.NewVector3(2, 0, 0), visuals.EdgeEnd)
}

func TestQueryCentroid(t *testing.T) {
	engine := NewEngine(nil, Options{Centroids: true, Threshold: DefaultThreshold}, nil)

	result, ok := engine.Query(downAt(0.7, 0.6), []*scene.Surface{floor()})

	require.True(t, ok)
	assert.Equal(t, Centroid, result.Kind)
	assert.True(t, result.Point.ApproxEqual(geometry.NewVector3(2.0/3, 0, 2.0/3), 1e-9))
}

func TestQueryTransformedSurface(t *testing.T) {
	surface := floor()
	surface.SetTransform(geometry.Translation(geometry.NewVector3(10, 1, 0)))
	engine := NewEngine(nil, Options{Vertices: true, Threshold: DefaultThreshold}, nil)

	result, ok := engine.Query(downAt(11.9, 0.05), []*scene.Surface{surface})

	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(12, 1, 0), result.Point)
}

func TestQueryNeverExceedsThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	surfaces := []*scene.Surface{floor()}

	for mask := 1; mask < 16; mask++ {
		opts := Options{
			Vertices:  mask&1 != 0,
			Midpoints: mask&2 != 0,
			Centroids: mask&4 != 0,
			Edges:     mask&8 != 0,
			Threshold: DefaultThreshold,
		}
		engine := NewEngine(nil, opts, nil)

		for i := 0; i < 200; i++ {
			x := rng.Float64() * 2
			z := rng.Float64() * (2 - x)
			result, ok := engine.Query(downAt(x, z), surfaces)
			if !ok {
				continue
			}
			hitPoint := geometry.NewVector3(x, 0, z)
			if result.Distance >= opts.Threshold || hitPoint.Distance(result.Point) >= opts.Threshold+1e-9 {
				t.Fatalf("mask %04b: result %v is %.4f from hit %v", mask, result.Point, result.Distance, hitPoint)
			}
		}
	}
}

func TestSetOptions(t *testing.T) {
	engine := NewEngine(nil, DefaultOptions(), nil)
	engine.SetOptions(Options{Vertices: true, Threshold: 0.01})

	assert.Equal(t, 0.01, engine.Options().Threshold)
	_, ok := engine.Query(downAt(0.1, 0.1), []*scene.Surface{floor()})
	assert.False(t, ok)
}

func TestIndicatorsFanOut(t *testing.T) {
	a, b := &Visuals{}, &Visuals{}
	engine := NewEngine(nil, DefaultOptions(), Indicators{a, b})

	_, ok := engine.Query(downAt(1, 0), []*scene.Surface{floor()})

	require.True(t, ok)
	assert.True(t, a.MarkerVisible)
	assert.True(t, b.EdgeVisible)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "vertex", Vertex.String())
	assert.Equal(t, "edge", Edge.String())
	assert.Equal(t, "midpoint", Midpoint.String())
	assert.Equal(t, "centroid", Centroid.String())
}
