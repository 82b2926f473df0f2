package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/godim/pkg/geometry"
)

// Camera is an orbiting perspective camera
type Camera struct {
	Eye       geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // vertical field of view in radians
	Near      float64
	Far       float64
	Distance  float64
	RotationX float64 // elevation
	RotationY float64 // azimuth
}

// NewCamera creates a camera in front of the bounding box, looking at its center
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance < 1 {
		distance = 1
	}

	c := &Camera{
		Target:   center,
		Up:       geometry.Up,
		FOV:      math.Pi / 4,
		Near:     0.01,
		Far:      distance * 100,
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// LookAt creates a camera at eye looking at target
func LookAt(eye, target geometry.Vector3, fov float64) *Camera {
	offset := eye.Sub(target)
	distance := offset.Length()
	c := &Camera{
		Eye:      eye,
		Target:   target,
		Up:       geometry.Up,
		FOV:      fov,
		Near:     0.01,
		Far:      math.Max(distance*100, 1000),
		Distance: distance,
	}
	if distance > 0 {
		c.RotationX = math.Asin(offset.Y / distance)
		c.RotationY = math.Atan2(offset.X, offset.Z)
	}
	return c
}

// Position returns the eye position
func (c *Camera) Position() geometry.Vector3 {
	return c.Eye
}

// LookDirection returns the unit view direction
func (c *Camera) LookDirection() geometry.Vector3 {
	return c.Target.Sub(c.Eye).Normalize()
}

// UpdatePosition places the eye from distance and rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Eye = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// keep away from the poles where the up vector degenerates
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))

	c.UpdatePosition()
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

func vec(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl64.Vec3) geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(vec(c.Eye), vec(c.Target), vec(c.Up))
}

// Projection returns the perspective matrix for the viewport
func (c *Camera) Projection(width, height int) mgl64.Mat4 {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return mgl64.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Project maps a world point to pixel coordinates (origin top left) and
// returns its distance in front of the camera. ok is false behind the near plane.
func (c *Camera) Project(point geometry.Vector3, width, height int) (x, y, depth float64, ok bool) {
	depth = point.Sub(c.Eye).Dot(c.LookDirection())
	if depth < c.Near {
		return 0, 0, depth, false
	}
	win := mgl64.Project(vec(point), c.View(), c.Projection(width, height), 0, 0, width, height)
	return win[0], float64(height) - win[1], depth, true
}

// Ray returns the pick ray through pixel (x, y), origin top left
func (c *Camera) Ray(x, y float64, width, height int) geometry.Ray {
	view := c.View()
	proj := c.Projection(width, height)
	winY := float64(height) - y

	far, err := mgl64.UnProject(mgl64.Vec3{x, winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return geometry.NewRay(c.Eye, c.LookDirection())
	}
	return geometry.RayThrough(c.Eye, fromVec(far))
}
