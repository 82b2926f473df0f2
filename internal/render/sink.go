// Package render is the boundary between the annotation core and whatever
// displays it. Primitives are published in named groups that replace their
// previous contents.
package render

import (
	"image/color"
	"sort"
	"sync"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/snap"
	"github.com/philipparndt/godim/pkg/geometry"
)

// Group names used by the core
const (
	GroupDimensions = dimension.GroupName
	GroupPreview    = "preview"
	GroupSnap       = "snap"
)

// Sink displays groups of primitive sets
type Sink interface {
	SetGroup(name string, sets []dimension.PrimitiveSet)
	RemoveGroup(name string)
	Clear()
}

// Recorder is an in-memory Sink. Front ends read it when drawing a frame.
type Recorder struct {
	mu      sync.RWMutex
	groups  map[string][]dimension.PrimitiveSet
	version uint64
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{groups: make(map[string][]dimension.PrimitiveSet)}
}

func (r *Recorder) SetGroup(name string, sets []dimension.PrimitiveSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(sets) == 0 {
		delete(r.groups, name)
	} else {
		r.groups[name] = append([]dimension.PrimitiveSet(nil), sets...)
	}
	r.version++
}

func (r *Recorder) RemoveGroup(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.groups, name)
	r.version++
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = make(map[string][]dimension.PrimitiveSet)
	r.version++
}

// Group returns a copy of the sets in a group
func (r *Recorder) Group(name string) []dimension.PrimitiveSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]dimension.PrimitiveSet(nil), r.groups[name]...)
}

// Names returns the non-empty group names in sorted order
func (r *Recorder) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every set, persisted dimensions first so previews and snap
// feedback draw on top
func (r *Recorder) All() []dimension.PrimitiveSet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []dimension.PrimitiveSet
	out = append(out, r.groups[GroupDimensions]...)
	for _, name := range r.sortedOthers() {
		out = append(out, r.groups[name]...)
	}
	return out
}

func (r *Recorder) sortedOthers() []string {
	var names []string
	for name := range r.groups {
		if name != GroupDimensions {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Version increases on every change
func (r *Recorder) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Multi publishes to several sinks
type Multi []Sink

func (m Multi) SetGroup(name string, sets []dimension.PrimitiveSet) {
	for _, s := range m {
		s.SetGroup(name, sets)
	}
}

func (m Multi) RemoveGroup(name string) {
	for _, s := range m {
		s.RemoveGroup(name)
	}
}

func (m Multi) Clear() {
	for _, s := range m {
		s.Clear()
	}
}

// Snap feedback colors
var (
	MarkerColor = color.RGBA{R: 0, G: 220, B: 255, A: 255}
	EdgeColor   = color.RGBA{R: 255, G: 80, B: 200, A: 255}
)

// IndicatorSink shows snap feedback as the group "snap" of a Sink
type IndicatorSink struct {
	sink    Sink
	visuals snap.Visuals
}

// NewIndicatorSink creates a snap indicator publishing to sink
func NewIndicatorSink(sink Sink) *IndicatorSink {
	return &IndicatorSink{sink: sink}
}

func (s *IndicatorSink) ShowMarker(point geometry.Vector3, kind snap.Kind) {
	s.visuals.ShowMarker(point, kind)
	s.publish()
}

func (s *IndicatorSink) HideMarker() {
	s.visuals.HideMarker()
	s.publish()
}

func (s *IndicatorSink) ShowEdge(a, b geometry.Vector3) {
	s.visuals.ShowEdge(a, b)
	s.publish()
}

func (s *IndicatorSink) HideEdge() {
	s.visuals.HideEdge()
	s.publish()
}

// Visuals returns the current snap feedback state
func (s *IndicatorSink) Visuals() snap.Visuals {
	return s.visuals
}

func (s *IndicatorSink) publish() {
	var sets []dimension.PrimitiveSet
	if s.visuals.EdgeVisible {
		sets = append(sets, dimension.PrimitiveSet{
			Segments: []dimension.Segment{{Start: s.visuals.EdgeStart, End: s.visuals.EdgeEnd, Kind: dimension.DimensionLine}},
			Color:    EdgeColor,
			Opacity:  1,
		})
	}
	if s.visuals.MarkerVisible {
		sets = append(sets, dimension.PrimitiveSet{
			Markers: []dimension.Marker{{Position: s.visuals.Marker, Label: s.visuals.MarkerKind.String()}},
			Color:   MarkerColor,
			Opacity: 1,
		})
	}
	if len(sets) == 0 {
		s.sink.RemoveGroup(GroupSnap)
		return
	}
	s.sink.SetGroup(GroupSnap, sets)
}
