package workplane

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

type fixedCamera struct {
	pos, look geometry.Vector3
}

func (c fixedCamera) Position() geometry.Vector3      { return c.pos }
func (c fixedCamera) LookDirection() geometry.Vector3 { return c.look }

func TestDefaultPlane(t *testing.T) {
	p := Default()
	assert.Equal(t, geometry.Vector3{}, p.Origin)
	assert.Equal(t, geometry.Up, p.Normal)
}

func TestResolveIntersects(t *testing.T) {
	p := Default()
	ray := geometry.RayThrough(geometry.NewVector3(1, 4, 2), geometry.NewVector3(1, 0, 2))

	got := p.Resolve(ray, nil)
	assert.True(t, got.ApproxEqual(geometry.NewVector3(1, 0, 2), 1e-9), "got %v", got)
}

func TestResolveUsesReference(t *testing.T) {
	p := Default()
	ref := geometry.NewVector3(0, 1.5, 0)
	ray := geometry.RayThrough(geometry.NewVector3(3, 4, 0), geometry.NewVector3(3, 0, 0))

	got := p.Resolve(ray, &ref)
	assert.True(t, got.ApproxEqual(geometry.NewVector3(3, 1.5, 0), 1e-9), "got %v", got)
}

func TestResolveParallelFallsBack(t *testing.T) {
	p := Default()
	ray := geometry.NewRay(geometry.NewVector3(0, 1, 0), geometry.NewVector3(1, 0, 0))

	got := p.Resolve(ray, nil)
	assert.True(t, got.ApproxEqual(geometry.NewVector3(FallbackDistance, 1, 0), 1e-9), "got %v", got)
}

func TestResolveBehindFallsBack(t *testing.T) {
	p := Default()
	ray := geometry.NewRay(geometry.NewVector3(0, 1, 0), geometry.NewVector3(0, 1, 0))

	got := p.Resolve(ray, nil)
	assert.True(t, got.ApproxEqual(geometry.NewVector3(0, 11, 0), 1e-9), "got %v", got)
}

func TestToView(t *testing.T) {
	p := Default()
	p.ToView(fixedCamera{pos: geometry.NewVector3(0, 0, 20), look: geometry.NewVector3(0, 0, -2)})

	assert.Equal(t, geometry.NewVector3(0, 0, 1), p.Normal)
	assert.Equal(t, geometry.NewVector3(0, 0, 10), p.Origin)

	p.ToWorld()
	assert.Equal(t, Default(), p)
}

func TestDefineFromPoints(t *testing.T) {
	p := Default()
	err := p.DefineFromPoints(
		geometry.NewVector3(1, 1, 1),
		geometry.NewVector3(2, 1, 1),
		geometry.NewVector3(1, 2, 1),
	)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(1, 1, 1), p.Origin)
	assert.True(t, p.Normal.ApproxEqual(geometry.NewVector3(0, 0, 1), 1e-12))
}

func TestDefineFromCollinearPointsKeepsPlane(t *testing.T) {
	p := New(geometry.NewVector3(0, 2, 0), geometry.NewVector3(0, 3, 0))
	before := p

	err := p.DefineFromPoints(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(3, 0, 0),
	)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCollinear))
	assert.Equal(t, before, p)

	// Free points still resolve against the previous plane
	ray := geometry.RayThrough(geometry.NewVector3(4, 9, 4), geometry.NewVector3(4, 0, 4))
	got := p.Resolve(ray, nil)
	assert.True(t, got.ApproxEqual(geometry.NewVector3(4, 2, 4), 1e-9), "got %v", got)
}

func TestFromFaceUsesInverseTranspose(t *testing.T) {
	// A 45° slope x = y, stretched along x
	surface := scene.NewSurface("ramp", []geometry.Triangle{
		geometry.NewTriangle(geometry.NewVector3(1, -1, 0).Normalize(),
			geometry.NewVector3(-5, -5, -5),
			geometry.NewVector3(5, 5, -5),
			geometry.NewVector3(0, 0, 5)),
	})
	surface.SetTransform(geometry.Scaling(geometry.NewVector3(2, 1, 1)))

	p := Default()
	ray := geometry.NewRay(geometry.NewVector3(6, 0, 0), geometry.NewVector3(-1, 0, 0))
	require.NoError(t, p.FromFace(scene.MeshRaycaster{}, ray, []*scene.Surface{surface}))

	// The world face is x = 2y; its normal is (1,-2,0) normalized
	expected := geometry.NewVector3(1, -2, 0).Normalize()
	assert.True(t, p.Normal.ApproxEqual(expected, 1e-9), "got %v", p.Normal)
	assert.InDelta(t, 1.0, p.Normal.Length(), 1e-12)
	assert.True(t, p.Origin.ApproxEqual(geometry.Vector3{}, 1e-9), "got %v", p.Origin)
}

func TestFromFaceMissKeepsPlane(t *testing.T) {
	p := Default()
	ray := geometry.NewRay(geometry.NewVector3(0, 5, 0), geometry.NewVector3(0, 1, 0))

	err := p.FromFace(scene.MeshRaycaster{}, ray, nil)

	assert.True(t, errors.Is(err, ErrNoHit))
	assert.Equal(t, Default(), p)
}

func TestTranslateKeepsNormal(t *testing.T) {
	p := New(geometry.Vector3{}, geometry.NewVector3(1, 1, 0))
	p.Translate(geometry.NewVector3(3, 3, 3))

	assert.Equal(t, geometry.NewVector3(3, 3, 3), p.Origin)
	assert.InDelta(t, 1/math.Sqrt2, p.Normal.X, 1e-12)
	assert.True(t, p.Contains(geometry.NewVector3(2, 4, 9), 1e-9))
}
