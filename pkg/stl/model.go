package stl

import (
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Surface wraps the model as a snappable scene surface placed by transform
func (m *Model) Surface(transform geometry.Transform) *scene.Surface {
	name := m.Name
	if name == "" {
		name = "model"
	}
	s := scene.NewSurface(name, m.Triangles)
	s.SetTransform(transform)
	return s
}
