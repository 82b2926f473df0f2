// Package snap turns a pointer ray into a nearby geometric feature point
// (vertex, edge midpoint, face centroid or closest edge point) on the
// triangle under the cursor.
package snap

import (
	"math"

	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// DefaultThreshold is the world-space distance within which a feature is accepted
const DefaultThreshold = 0.2

// Kind identifies the feature category of a snap result
type Kind int

const (
	Vertex Kind = iota
	Edge
	Midpoint
	Centroid
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Edge:
		return "edge"
	case Midpoint:
		return "midpoint"
	case Centroid:
		return "centroid"
	default:
		return "unknown"
	}
}

// Result is a snapped feature point
type Result struct {
	Point    geometry.Vector3
	Kind     Kind
	Distance float64
	Surface  *scene.Surface
	// Edge is set for edge and midpoint results
	Edge *[2]geometry.Vector3
}

// Options toggles the feature categories and sets the acceptance threshold
type Options struct {
	Vertices  bool    `toml:"vertices"`
	Midpoints bool    `toml:"midpoints"`
	Centroids bool    `toml:"centroids"`
	Edges     bool    `toml:"edges"`
	Threshold float64 `toml:"threshold"`
}

// DefaultOptions enables every category with the default threshold
func DefaultOptions() Options {
	return Options{
		Vertices:  true,
		Midpoints: true,
		Centroids: true,
		Edges:     true,
		Threshold: DefaultThreshold,
	}
}

// Indicator displays the current snap feedback
type Indicator interface {
	ShowMarker(point geometry.Vector3, kind Kind)
	HideMarker()
	ShowEdge(a, b geometry.Vector3)
	HideEdge()
}

type candidate struct {
	kind  Kind
	point geometry.Vector3
	edge  *[2]geometry.Vector3
}

// Engine answers snap queries. It is not safe for concurrent use.
type Engine struct {
	raycaster scene.Raycaster
	options   Options
	indicator Indicator
	enabled   bool
	log       *logger.Logger
}

// NewEngine creates an enabled engine. indicator may be nil.
func NewEngine(raycaster scene.Raycaster, opts Options, indicator Indicator) *Engine {
	if raycaster == nil {
		raycaster = scene.MeshRaycaster{}
	}
	return &Engine{
		raycaster: raycaster,
		options:   opts,
		indicator: indicator,
		enabled:   true,
	}
}

// SetLogger attaches a logger for debug output
func (e *Engine) SetLogger(log *logger.Logger) {
	e.log = log.WithPrefix("snap")
}

// SetEnabled turns snapping on or off. Disabling clears the visuals.
func (e *Engine) SetEnabled(enabled bool) {
	e.enabled = enabled
	if !enabled {
		e.clear()
	}
}

// Enabled reports whether snapping is on
func (e *Engine) Enabled() bool {
	return e.enabled
}

// SetOptions replaces the category toggles and threshold
func (e *Engine) SetOptions(opts Options) {
	e.options = opts
}

// Options returns the current category toggles and threshold
func (e *Engine) Options() Options {
	return e.options
}

// Query ray-casts against surfaces and returns the nearest enabled feature of
// the hit triangle, provided it lies within the threshold of the hit point.
func (e *Engine) Query(ray geometry.Ray, surfaces []*scene.Surface) (Result, bool) {
	if !e.enabled {
		e.clear()
		return Result{}, false
	}

	hit, ok := e.raycaster.Raycast(ray, surfaces)
	if !ok {
		e.clear()
		return Result{}, false
	}

	best, ok := e.nearest(hit.Point, hit.Face)
	if !ok {
		e.log.Debug("hit %s at %v, no feature within %.3f", hit.Surface.Name, hit.Point, e.options.Threshold)
		e.clear()
		return Result{}, false
	}

	best.Surface = hit.Surface
	e.show(best)
	return best, true
}

// nearest folds the enabled candidates of face with a running strict minimum,
// so the first candidate at the minimum distance wins.
func (e *Engine) nearest(point geometry.Vector3, face geometry.Triangle) (Result, bool) {
	best := Result{Distance: math.Inf(1)}
	found := false

	for _, c := range e.candidates(point, face) {
		d := point.Distance(c.point)
		if d < best.Distance {
			best = Result{Point: c.point, Kind: c.kind, Distance: d, Edge: c.edge}
			found = true
		}
	}

	if !found || best.Distance >= e.options.Threshold {
		return Result{}, false
	}
	return best, true
}

// candidates lists features in priority order: vertices, midpoints, centroid, edges
func (e *Engine) candidates(point geometry.Vector3, face geometry.Triangle) []candidate {
	list := make([]candidate, 0, 10)
	edges := face.Edges()

	if e.options.Vertices {
		for _, v := range face.Vertices() {
			list = append(list, candidate{kind: Vertex, point: v})
		}
	}
	if e.options.Midpoints {
		for i, m := range face.EdgeMidpoints() {
			edge := edges[i]
			list = append(list, candidate{kind: Midpoint, point: m, edge: &edge})
		}
	}
	if e.options.Centroids {
		list = append(list, candidate{kind: Centroid, point: face.Center()})
	}
	if e.options.Edges {
		for i := range edges {
			edge := edges[i]
			closest := geometry.ClosestPointOnSegment(point, edge[0], edge[1])
			list = append(list, candidate{kind: Edge, point: closest, edge: &edge})
		}
	}
	return list
}

func (e *Engine) show(r Result) {
	if e.indicator == nil {
		return
	}
	e.indicator.ShowMarker(r.Point, r.Kind)
	if r.Edge != nil {
		e.indicator.ShowEdge(r.Edge[0], r.Edge[1])
	} else {
		e.indicator.HideEdge()
	}
}

func (e *Engine) clear() {
	if e.indicator == nil {
		return
	}
	e.indicator.HideMarker()
	e.indicator.HideEdge()
}
