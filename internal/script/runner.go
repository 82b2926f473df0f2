package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/internal/session"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/viewer"
)

// Queue answers label prompts from a fixed list, then cancels
type Queue struct {
	labels []string
}

// NewQueue creates a queue of label answers
func NewQueue(labels []string) *Queue {
	return &Queue{labels: append([]string(nil), labels...)}
}

// Prompt returns the next label
func (q *Queue) Prompt() (string, bool) {
	if len(q.labels) == 0 {
		return "", false
	}
	next := q.labels[0]
	q.labels = q.labels[1:]
	return next, true
}

// Remaining returns the number of unused answers
func (q *Queue) Remaining() int {
	return len(q.labels)
}

// BuildCamera builds the script camera, framing bounds when no position is given
func (s *Script) BuildCamera(bounds geometry.BoundingBox) *viewer.Camera {
	fov := s.Camera.FOV * math.Pi / 180
	if s.Camera.Position == nil {
		if bounds.IsEmpty() {
			bounds.Extend(geometry.NewVector3(-1, -1, -1))
			bounds.Extend(geometry.NewVector3(1, 1, 1))
		}
		cam := viewer.NewCamera(bounds)
		cam.FOV = fov
		return cam
	}

	target := bounds.Center()
	if bounds.IsEmpty() {
		target = geometry.Vector3{}
	}
	if s.Camera.Target != nil {
		target = toVector(s.Camera.Target)
	}
	return viewer.LookAt(toVector(s.Camera.Position), target, fov)
}

func toVector(v []float64) geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

// Runner feeds script steps into a session
type Runner struct {
	Session *session.Session
	Camera  *viewer.Camera
	Width   int
	Height  int
	Log     *logger.Logger
}

// Run executes every step. Steps never fail on missed snaps; errors are
// reserved for steps that cannot be interpreted.
func (r *Runner) Run(s *Script) error {
	if r.Width == 0 || r.Height == 0 {
		r.Width, r.Height = s.Viewport.Width, s.Viewport.Height
	}
	r.Session.Machine.SetLabelSource(NewQueue(s.Labels))

	for i, step := range s.Steps {
		if err := r.apply(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		r.Log.Debug("step %d -> %s", i+1, r.Session.Machine.State())
	}
	return nil
}

func (r *Runner) pixelRay(p []float64) geometry.Ray {
	return r.Camera.Ray(p[0], p[1], r.Width, r.Height)
}

func (r *Runner) worldRay(p []float64) geometry.Ray {
	return geometry.RayThrough(r.Camera.Position(), toVector(p))
}

func (r *Runner) apply(step Step) error {
	m := r.Session.Machine

	switch {
	case step.Mode != "":
		mode, err := dimension.ParseType(step.Mode)
		if err != nil {
			return err
		}
		m.SetMode(mode)
	case step.Click != nil:
		m.Click(r.pixelRay(step.Click))
	case step.Move != nil:
		m.PointerMove(r.pixelRay(step.Move))
	case step.ClickAt != nil:
		m.Click(r.worldRay(step.ClickAt))
	case step.MoveAt != nil:
		m.PointerMove(r.worldRay(step.MoveAt))
	case step.Plane != "":
		return r.plane(step.Plane)
	case step.Cancel:
		m.Cancel()
	case step.Undo:
		r.Session.Store.RemoveLast()
	case step.Clear:
		r.Session.Store.Clear()
	case step.Units != "":
		unit, err := dimension.ParseUnit(step.Units)
		if err != nil {
			return err
		}
		r.Session.SetUnits(unit)
	case step.Scale != 0:
		r.Session.SetScale(step.Scale)
	case step.Snap != nil:
		r.Session.Snap.SetEnabled(*step.Snap)
	}
	return nil
}

func (r *Runner) plane(action string) error {
	m := r.Session.Machine
	switch strings.ToLower(action) {
	case "world":
		m.PlaneToWorld()
	case "view":
		m.PlaneToView()
	case "define", "three_points":
		m.BeginPlaneDefinition()
	case "face":
		m.BeginPlaneFromFace()
	case "translate", "move":
		m.BeginPlaneTranslate()
	default:
		return fmt.Errorf("unknown plane action %q", action)
	}
	return nil
}
