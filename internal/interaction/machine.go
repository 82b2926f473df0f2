// Package interaction turns pointer moves and clicks into dimensions and
// construction plane changes. Everything runs synchronously on the caller's
// event thread.
package interaction

import (
	"errors"
	"strings"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/internal/snap"
	"github.com/philipparndt/godim/internal/workplane"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// Snapper finds feature points under the pointer
type Snapper interface {
	Query(ray geometry.Ray, surfaces []*scene.Surface) (snap.Result, bool)
}

// Config wires the machine to its collaborators
type Config struct {
	Snapper   Snapper
	Raycaster scene.Raycaster
	Camera    scene.Camera
	// Surfaces returns the current candidate surfaces for each event
	Surfaces func() []*scene.Surface
	Store    *dimension.Store
	// Sink receives the preview group; may be nil
	Sink   render.Sink
	Labels LabelSource
	Plane  workplane.Plane
	Logger *logger.Logger
}

// Machine is the interaction state machine
type Machine struct {
	cfg     Config
	mode    dimension.Type
	state   State
	capture capture
	plane   workplane.Plane
	log     *logger.Logger
}

// New creates an idle machine in linear mode. A zero Config.Plane is
// replaced by the world plane.
func New(cfg Config) *Machine {
	if cfg.Raycaster == nil {
		cfg.Raycaster = scene.MeshRaycaster{}
	}
	if cfg.Snapper == nil {
		cfg.Snapper = snap.NewEngine(cfg.Raycaster, snap.DefaultOptions(), nil)
	}
	if cfg.Store == nil {
		cfg.Store = dimension.NewStore(dimension.DefaultStyle(), cfg.Sink)
	}
	if cfg.Surfaces == nil {
		cfg.Surfaces = func() []*scene.Surface { return nil }
	}
	plane := cfg.Plane
	if plane.Normal.IsZero() {
		plane = workplane.Default()
	}
	return &Machine{
		cfg:   cfg,
		mode:  dimension.Linear,
		plane: plane,
		log:   cfg.Logger.WithPrefix("interaction"),
	}
}

// Mode returns the active dimension mode
func (m *Machine) Mode() dimension.Type { return m.mode }

// State returns the current state
func (m *Machine) State() State { return m.state }

// Plane returns the construction plane
func (m *Machine) Plane() workplane.Plane { return m.plane }

// Store returns the dimension collection
func (m *Machine) Store() *dimension.Store { return m.cfg.Store }

// Captured returns the points captured so far for the current dimension or plane
func (m *Machine) Captured() []geometry.Vector3 {
	if m.capture == nil {
		return nil
	}
	return m.capture.points()
}

// SetMode switches the dimension mode, abandoning any capture in progress
func (m *Machine) SetMode(mode dimension.Type) {
	if m.state != Idle {
		m.Cancel()
	}
	m.mode = mode
	m.log.Debug("mode %s", mode)
}

// SetLabelSource replaces the leader text prompt
func (m *Machine) SetLabelSource(labels LabelSource) {
	m.cfg.Labels = labels
}

// Cancel drops the capture and preview and returns to idle
func (m *Machine) Cancel() {
	if m.state != Idle {
		m.log.Debug("cancel in %s", m.state)
	}
	m.reset()
}

func (m *Machine) reset() {
	m.state = Idle
	m.capture = nil
	m.clearPreview()
}

// PointerMove updates snap feedback and the preview of the dimension in progress
func (m *Machine) PointerMove(ray geometry.Ray) {
	result, snapped := m.snap(ray)

	switch m.state {
	case CapturingPoint2, CapturingAngleArm2, PlacingOffset:
		live := m.resolve(ray, result, snapped)
		m.preview(live)
	}
}

// Click advances the state machine with the point under ray
func (m *Machine) Click(ray geometry.Ray) {
	result, snapped := m.snap(ray)

	switch m.state {
	case Idle:
		if snapped {
			m.begin(result.Point)
		}
	case CapturingPoint2:
		m.clickSecond(ray, result, snapped)
	case CapturingAngleArm2:
		m.clickAngleArm2(m.resolve(ray, result, snapped))
	case PlacingOffset:
		m.finish(m.resolve(ray, result, snapped))
	case DefiningPlaneOrigin, DefiningPlaneXAxis, DefiningPlaneInPlanePoint:
		if snapped {
			m.clickPlanePoint(result.Point)
		}
	case DefiningPlaneFromFace:
		m.clickFace(ray)
	case TranslatingPlane:
		point := m.plane.Resolve(ray, nil)
		if snapped {
			point = result.Point
		}
		m.plane.Translate(point)
		m.log.Info("moved %s", m.plane)
		m.reset()
	}
}

func (m *Machine) snap(ray geometry.Ray) (snap.Result, bool) {
	return m.cfg.Snapper.Query(ray, m.cfg.Surfaces())
}

// resolve returns the snapped point, or the construction plane point through
// the first captured point
func (m *Machine) resolve(ray geometry.Ray, result snap.Result, snapped bool) geometry.Vector3 {
	if snapped {
		return result.Point
	}
	if m.capture != nil {
		ref := m.capture.first()
		return m.plane.Resolve(ray, &ref)
	}
	return m.plane.Resolve(ray, nil)
}

func (m *Machine) begin(point geometry.Vector3) {
	switch m.mode {
	case dimension.Linear, dimension.Aligned:
		m.capture = &linearCapture{aligned: m.mode == dimension.Aligned, a: point}
	case dimension.Angle:
		m.capture = &angleCapture{center: point}
	case dimension.Leader:
		m.capture = &leaderCapture{tip: point}
	default:
		return
	}
	m.state = CapturingPoint2
	m.log.Debug("%s: first point %v", m.mode, point)
}

func (m *Machine) clickSecond(ray geometry.Ray, result snap.Result, snapped bool) {
	switch c := m.capture.(type) {
	case *linearCapture:
		if !snapped || c.a.Distance(result.Point) < dimension.MinLength {
			return
		}
		c.b = ptr(result.Point)
		m.state = PlacingOffset
	case *angleCapture:
		if !snapped || c.center.Distance(result.Point) < dimension.MinLength {
			return
		}
		c.arm1 = ptr(result.Point)
		m.state = CapturingAngleArm2
	case *leaderCapture:
		c.elbow = ptr(m.resolve(ray, result, snapped))
		m.state = PlacingOffset
	}
}

func (m *Machine) clickAngleArm2(point geometry.Vector3) {
	c, ok := m.capture.(*angleCapture)
	if !ok || c.center.Distance(point) < dimension.MinLength {
		return
	}
	c.arm2 = ptr(point)
	m.state = PlacingOffset
}

// pending builds the record the capture would produce with last as its final point
func (m *Machine) pending(last geometry.Vector3) (dimension.Record, bool) {
	switch c := m.capture.(type) {
	case *linearCapture:
		if c.b == nil {
			return c.record(last, last), true
		}
		return c.record(*c.b, last), true
	case *angleCapture:
		switch {
		case c.arm1 == nil:
			return dimension.NewAngle(c.center, last, last, last), true
		case c.arm2 == nil:
			return dimension.NewAngle(c.center, *c.arm1, last, *c.arm1), true
		default:
			return dimension.NewAngle(c.center, *c.arm1, *c.arm2, last), true
		}
	case *leaderCapture:
		if c.elbow == nil {
			return dimension.NewLeader(c.tip, last, last, ""), true
		}
		return dimension.NewLeader(c.tip, *c.elbow, last, ""), true
	}
	return dimension.Record{}, false
}

func (m *Machine) finish(last geometry.Vector3) {
	rec, ok := m.pending(last)
	if !ok {
		m.reset()
		return
	}

	if rec.Type == dimension.Leader {
		text, ok := m.promptLabel()
		if !ok {
			m.log.Debug("leader label cancelled")
			m.reset()
			return
		}
		rec.Label = text
	}

	if _, err := m.cfg.Store.Create(rec); err != nil {
		if errors.Is(err, dimension.ErrDegenerate) {
			m.log.Debug("%v, waiting for another point", err)
			return
		}
		m.log.Warn("%v", err)
		return
	}
	m.reset()
}

func (m *Machine) promptLabel() (string, bool) {
	if m.cfg.Labels == nil {
		return "", false
	}
	text, ok := m.cfg.Labels.Prompt()
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

func (m *Machine) preview(live geometry.Vector3) {
	if m.cfg.Sink == nil {
		return
	}
	rec, ok := m.pending(live)
	if !ok {
		m.clearPreview()
		return
	}
	set, ok := m.cfg.Store.Preview(rec)
	if !ok {
		m.clearPreview()
		return
	}
	m.cfg.Sink.SetGroup(render.GroupPreview, []dimension.PrimitiveSet{set})
}

func (m *Machine) clearPreview() {
	if m.cfg.Sink != nil {
		m.cfg.Sink.RemoveGroup(render.GroupPreview)
	}
}
