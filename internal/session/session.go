// Package session wires the snapping engine, construction plane, dimension
// store and interaction machine for one loaded scene.
package session

import (
	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/interaction"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/internal/snap"
	"github.com/philipparndt/godim/pkg/scene"
)

// Session is one annotation session over a fixed set of surfaces
type Session struct {
	Surfaces  []*scene.Surface
	Snap      *snap.Engine
	Store     *dimension.Store
	Machine   *interaction.Machine
	Sink      render.Sink
	Indicator *render.IndicatorSink
}

// Options configures New
type Options struct {
	Config   config.Config
	Surfaces []*scene.Surface
	Sink     render.Sink
	Camera   scene.Camera
	Labels   interaction.LabelSource
	Logger   *logger.Logger
}

// New builds a session from the configuration
func New(opts Options) (*Session, error) {
	style, err := opts.Config.DimensionStyle()
	if err != nil {
		return nil, err
	}

	sink := opts.Sink
	if sink == nil {
		sink = render.NewRecorder()
	}

	raycaster := scene.MeshRaycaster{}
	indicator := render.NewIndicatorSink(sink)
	engine := snap.NewEngine(raycaster, opts.Config.SnapOptions(), indicator)
	engine.SetLogger(opts.Logger)
	engine.SetEnabled(opts.Config.Snap.Enabled)

	store := dimension.NewStore(style, sink)
	store.SetLogger(opts.Logger)

	s := &Session{
		Surfaces:  opts.Surfaces,
		Snap:      engine,
		Store:     store,
		Sink:      sink,
		Indicator: indicator,
	}
	s.Machine = interaction.New(interaction.Config{
		Snapper:   engine,
		Raycaster: raycaster,
		Camera:    opts.Camera,
		Surfaces:  func() []*scene.Surface { return s.Surfaces },
		Store:     store,
		Sink:      sink,
		Labels:    opts.Labels,
		Logger:    opts.Logger,
	})
	return s, nil
}

// SetUnits rebuilds every dimension in the given unit
func (s *Session) SetUnits(unit dimension.Unit) {
	style := s.Store.Style()
	style.Units = unit
	s.Store.SetStyle(style)
}

// SetScale rebuilds every dimension at the given size
func (s *Session) SetScale(scale float64) {
	style := s.Store.Style()
	style.Scale = scale
	s.Store.SetStyle(style)
}
