package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/pkg/geometry"
)

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Model.center
}

// setCameraTopView looks straight down
func (app *App) setCameraTopView() {
	app.Camera.angleX = math.Pi / 2
	app.Camera.angleY = 0
	app.Camera.target = app.Model.center
}

// setCameraFrontView looks along -Z
func (app *App) setCameraFrontView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
	app.Camera.target = app.Model.center
}

// setCameraSideView looks along -X
func (app *App) setCameraSideView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi / 2
	app.Camera.target = app.Model.center
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Sin(float64(c.angleY)))
	y := c.distance * float32(math.Sin(float64(c.angleX)))
	z := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Cos(float64(c.angleY)))

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	c := &app.Camera
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.target, c.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	panSpeed := c.distance * 0.001

	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(right, -delta.X*panSpeed))
	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(up, delta.Y*panSpeed))
}

// orbit rotates the camera around its target
func (app *App) orbit(delta rl.Vector2) {
	c := &app.Camera
	c.angleY -= delta.X * 0.01
	c.angleX += delta.Y * 0.01

	limit := float32(math.Pi/2 - 0.01)
	if c.angleX > limit {
		c.angleX = limit
	}
	if c.angleX < -limit {
		c.angleX = -limit
	}
}

// zoom scales the camera distance by the wheel movement
func (app *App) zoom(wheel float32) {
	c := &app.Camera
	c.distance *= 1 - wheel*0.1
	if minDist := app.Model.size * 0.05; c.distance < minDist {
		c.distance = minDist
	}
}

// pickRay is the world-space ray under the mouse
func (app *App) pickRay(mouse rl.Vector2) geometry.Ray {
	ray := rl.GetMouseRay(mouse, app.Camera.camera)
	return geometry.NewRay(fromRL(ray.Position), fromRL(ray.Direction))
}

// viewCamera adapts the raylib camera for plane-to-view
type viewCamera struct {
	camera *rl.Camera3D
}

func (v viewCamera) Position() geometry.Vector3 {
	return fromRL(v.camera.Position)
}

func (v viewCamera) LookDirection() geometry.Vector3 {
	return fromRL(v.camera.Target).Sub(fromRL(v.camera.Position)).Normalize()
}

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRL(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
