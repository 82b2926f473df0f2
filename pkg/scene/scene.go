// Package scene holds the triangulated surfaces that can be measured and the
// ray-cast query used to pick them.
package scene

import (
	"math"

	"github.com/philipparndt/godim/pkg/geometry"
)

// Surface is a named triangle mesh placed in the world by Transform.
// Triangles are in local coordinates. Replace them with SetTriangles so the
// cached world bounds follow.
type Surface struct {
	Name      string
	Triangles []geometry.Triangle
	Transform geometry.Transform

	bounds      geometry.BoundingBox
	boundsValid bool
}

// NewSurface creates a surface with an identity transform
func NewSurface(name string, triangles []geometry.Triangle) *Surface {
	return &Surface{Name: name, Triangles: triangles, Transform: geometry.Identity()}
}

// SetTransform places the surface in the world
func (s *Surface) SetTransform(t geometry.Transform) {
	s.Transform = t
	s.boundsValid = false
}

// SetTriangles replaces the mesh
func (s *Surface) SetTriangles(triangles []geometry.Triangle) {
	s.Triangles = triangles
	s.boundsValid = false
}

// WorldBounds returns the world-space bounding box of the surface
func (s *Surface) WorldBounds() geometry.BoundingBox {
	if s.boundsValid {
		return s.bounds
	}
	bbox := geometry.NewBoundingBox()
	for _, tri := range s.Triangles {
		for _, v := range tri.Vertices() {
			bbox.Extend(s.Transform.ApplyPoint(v))
		}
	}
	s.bounds = bbox
	s.boundsValid = true
	return bbox
}

// Hit is the nearest intersection of a ray with a surface
type Hit struct {
	Point    geometry.Vector3
	Distance float64
	Surface  *Surface
	// Face holds the hit triangle's corners in world space
	Face geometry.Triangle
	// FaceNormal is the hit triangle's normal in local space
	FaceNormal geometry.Vector3
	Transform  geometry.Transform
}

// WorldNormal returns the face normal in world space
func (h Hit) WorldNormal() geometry.Vector3 {
	return h.Transform.ApplyNormal(h.FaceNormal)
}

// Raycaster answers nearest-hit queries against candidate surfaces
type Raycaster interface {
	Raycast(ray geometry.Ray, surfaces []*Surface) (Hit, bool)
}

// Camera provides the viewer position and look direction
type Camera interface {
	Position() geometry.Vector3
	LookDirection() geometry.Vector3
}

// MeshRaycaster tests every triangle of every candidate surface, skipping
// surfaces whose world bounds the ray misses.
type MeshRaycaster struct{}

// Raycast returns the nearest hit along the ray
func (MeshRaycaster) Raycast(ray geometry.Ray, surfaces []*Surface) (Hit, bool) {
	best := Hit{Distance: math.MaxFloat64}
	found := false

	for _, surface := range surfaces {
		if surface == nil || !ray.IntersectBox(surface.WorldBounds().Pad(geometry.Epsilon)) {
			continue
		}
		for _, local := range surface.Triangles {
			world := local.Transform(surface.Transform)
			t, ok := ray.IntersectTriangle(world)
			if !ok || t >= best.Distance {
				continue
			}
			best = Hit{
				Point:      ray.At(t),
				Distance:   t,
				Surface:    surface,
				Face:       world,
				FaceNormal: local.FaceNormal(),
				Transform:  surface.Transform,
			}
			found = true
		}
	}

	return best, found
}
