package interaction

import (
	"github.com/philipparndt/godim/internal/workplane"
	"github.com/philipparndt/godim/pkg/geometry"
)

// BeginPlaneDefinition starts the 3-point plane definition: origin, a point
// on the x-axis and a point in the plane, each of which must snap.
func (m *Machine) BeginPlaneDefinition() {
	m.reset()
	m.capture = &planeCapture{}
	m.state = DefiningPlaneOrigin
}

// BeginPlaneFromFace aligns the plane with the face under the next click
func (m *Machine) BeginPlaneFromFace() {
	m.reset()
	m.state = DefiningPlaneFromFace
}

// BeginPlaneTranslate moves the plane origin to the next clicked point
func (m *Machine) BeginPlaneTranslate() {
	m.reset()
	m.state = TranslatingPlane
}

// PlaneToWorld resets the construction plane to the ground plane
func (m *Machine) PlaneToWorld() {
	m.plane.ToWorld()
	m.log.Info("plane reset to world")
}

// PlaneToView makes the construction plane face the camera
func (m *Machine) PlaneToView() {
	if m.cfg.Camera == nil {
		m.log.Warn("no camera to align the plane with")
		return
	}
	m.plane.ToView(m.cfg.Camera)
	m.log.Info("plane aligned to view: %s", m.plane)
}

// SetPlane replaces the construction plane
func (m *Machine) SetPlane(p workplane.Plane) {
	m.plane = workplane.New(p.Origin, p.Normal)
}

func (m *Machine) clickPlanePoint(point geometry.Vector3) {
	c, ok := m.capture.(*planeCapture)
	if !ok {
		m.reset()
		return
	}

	switch m.state {
	case DefiningPlaneOrigin:
		c.origin = ptr(point)
		m.state = DefiningPlaneXAxis
	case DefiningPlaneXAxis:
		c.xAxis = ptr(point)
		m.state = DefiningPlaneInPlanePoint
	case DefiningPlaneInPlanePoint:
		if err := m.plane.DefineFromPoints(*c.origin, *c.xAxis, point); err != nil {
			m.log.Info("plane not changed: %v", err)
		} else {
			m.log.Info("plane defined: %s", m.plane)
		}
		m.reset()
	}
}

func (m *Machine) clickFace(ray geometry.Ray) {
	if err := m.plane.FromFace(m.cfg.Raycaster, ray, m.cfg.Surfaces()); err != nil {
		m.log.Debug("plane from face: %v", err)
		return
	}
	m.log.Info("plane aligned to face: %s", m.plane)
	m.reset()
}
