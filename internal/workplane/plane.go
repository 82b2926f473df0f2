// Package workplane implements the movable construction plane used to turn a
// pointer ray into a 3D point when no snap feature is under the cursor.
package workplane

import (
	"errors"
	"fmt"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

const (
	// FallbackDistance is how far along the ray Resolve lands when the ray misses the plane
	FallbackDistance = 10.0
	// ViewDistance is how far in front of the camera ToView places the origin
	ViewDistance = 10.0

	collinearTolerance = 1e-6
)

var (
	// ErrCollinear is returned when three points do not span a plane
	ErrCollinear = errors.New("points are collinear")
	// ErrNoHit is returned when no face lies under the pointer
	ErrNoHit = errors.New("no face under pointer")
)

// Plane is a reference plane. Normal is always unit length.
type Plane struct {
	Origin geometry.Vector3
	Normal geometry.Vector3
}

// Default returns the world ground plane through the origin facing up
func Default() Plane {
	return Plane{Normal: geometry.Up}
}

// New creates a plane, normalizing the normal. A zero normal becomes global up.
func New(origin, normal geometry.Vector3) Plane {
	return Plane{Origin: origin, Normal: normal.NormalizeOr(geometry.Up)}
}

// Resolve intersects the ray with the plane through ref (or the plane's own
// origin when ref is nil). Rays that are parallel to the plane or point away
// from it land FallbackDistance along the ray instead, so a point is always returned.
func (p Plane) Resolve(ray geometry.Ray, ref *geometry.Vector3) geometry.Vector3 {
	origin := p.Origin
	if ref != nil {
		origin = *ref
	}
	t, ok := ray.IntersectPlane(origin, p.Normal)
	if !ok {
		return ray.At(FallbackDistance)
	}
	return ray.At(t)
}

// Contains reports whether point lies on the plane within tol
func (p Plane) Contains(point geometry.Vector3, tol float64) bool {
	d := point.Sub(p.Origin).Dot(p.Normal)
	return d <= tol && d >= -tol
}

// ToWorld resets the plane to the world ground plane
func (p *Plane) ToWorld() {
	*p = Default()
}

// ToView makes the plane face the camera, ViewDistance in front of it
func (p *Plane) ToView(cam scene.Camera) {
	look := cam.LookDirection().NormalizeOr(geometry.Up.Negate())
	p.Normal = look.Negate()
	p.Origin = cam.Position().Add(look.Mul(ViewDistance))
}

// DefineFromPoints sets the plane through p1 with the normal of the triangle
// p1, p2, p3. Collinear points leave the plane unchanged and return ErrCollinear.
func (p *Plane) DefineFromPoints(p1, p2, p3 geometry.Vector3) error {
	xAxis := p2.Sub(p1).Normalize()
	inPlane := p3.Sub(p1).Normalize()
	cross := xAxis.Cross(inPlane)
	if cross.Length() < collinearTolerance {
		return fmt.Errorf("define plane from %v, %v, %v: %w", p1, p2, p3, ErrCollinear)
	}
	p.Origin = p1
	p.Normal = cross.Normalize()
	return nil
}

// FromFace aligns the plane with the face hit by ray. The face normal is
// carried to world space with the inverse-transpose of the surface transform.
func (p *Plane) FromFace(raycaster scene.Raycaster, ray geometry.Ray, surfaces []*scene.Surface) error {
	hit, ok := raycaster.Raycast(ray, surfaces)
	if !ok {
		return ErrNoHit
	}
	normal := hit.WorldNormal()
	if normal.IsZero() {
		normal = hit.Face.CalculateNormal()
	}
	if normal.IsZero() {
		return fmt.Errorf("face on %s is degenerate: %w", hit.Surface.Name, ErrNoHit)
	}
	p.Origin = hit.Point
	p.Normal = normal.Normalize()
	return nil
}

// Translate moves the origin to point, keeping the orientation
func (p *Plane) Translate(point geometry.Vector3) {
	p.Origin = point
}

func (p Plane) String() string {
	return fmt.Sprintf("plane(origin=%.3f,%.3f,%.3f normal=%.3f,%.3f,%.3f)",
		p.Origin.X, p.Origin.Y, p.Origin.Z, p.Normal.X, p.Normal.Y, p.Normal.Z)
}
