package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/snap"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

func TestRecorderGroups(t *testing.T) {
	rec := NewRecorder()
	rec.SetGroup(GroupPreview, []dimension.PrimitiveSet{{Preview: true}})
	rec.SetGroup(GroupDimensions, []dimension.PrimitiveSet{{RecordID: 1}, {RecordID: 2}})

	assert.Equal(t, []string{GroupDimensions, GroupPreview}, rec.Names())

	all := rec.All()
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].RecordID)
	assert.True(t, all[2].Preview)

	rec.RemoveGroup(GroupPreview)
	assert.Empty(t, rec.Group(GroupPreview))

	rec.SetGroup(GroupDimensions, nil)
	assert.Empty(t, rec.Names())

	before := rec.Version()
	rec.Clear()
	assert.Greater(t, rec.Version(), before)
}

func TestRecorderCopiesInput(t *testing.T) {
	rec := NewRecorder()
	sets := []dimension.PrimitiveSet{{RecordID: 1}}
	rec.SetGroup(GroupDimensions, sets)
	sets[0].RecordID = 99

	assert.Equal(t, 1, rec.Group(GroupDimensions)[0].RecordID)
}

func TestMultiSink(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	multi := Multi{a, b}

	multi.SetGroup(GroupPreview, []dimension.PrimitiveSet{{}})
	assert.Len(t, b.Group(GroupPreview), 1)

	multi.Clear()
	assert.Empty(t, a.Names())
}

func TestIndicatorSinkFollowsSnapEngine(t *testing.T) {
	rec := NewRecorder()
	indicator := NewIndicatorSink(rec)
	floor := scene.NewSurface("floor", []geometry.Triangle{
		geometry.NewTriangle(geometry.Up,
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(2, 0, 0),
			geometry.NewVector3(0, 0, 2)),
	})
	engine := snap.NewEngine(nil, snap.DefaultOptions(), indicator)

	ray := geometry.NewRay(geometry.NewVector3(1, 3, 0), geometry.NewVector3(0, -1, 0))
	result, ok := engine.Query(ray, []*scene.Surface{floor})
	require.True(t, ok)
	require.Equal(t, snap.Midpoint, result.Kind)

	sets := rec.Group(GroupSnap)
	require.Len(t, sets, 2)
	assert.Equal(t, geometry.NewVector3(2, 0, 0), sets[0].Segments[0].End)
	assert.Equal(t, result.Point, sets[1].Markers[0].Position)
	assert.Equal(t, "midpoint", sets[1].Markers[0].Label)
	assert.True(t, indicator.Visuals().MarkerVisible)

	engine.SetEnabled(false)
	assert.Empty(t, rec.Group(GroupSnap))
	assert.False(t, indicator.Visuals().EdgeVisible)
}
