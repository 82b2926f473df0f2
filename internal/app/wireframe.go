package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

type edgeKey [2]geometry.Vector3

// uniqueEdges returns each world-space triangle edge once, whatever its winding
func uniqueEdges(s *scene.Surface) [][2]geometry.Vector3 {
	seen := make(map[edgeKey]bool)
	var edges [][2]geometry.Vector3

	for _, local := range s.Triangles {
		for _, edge := range local.Transform(s.Transform).Edges() {
			key := edgeKey(edge)
			if less(edge[1], edge[0]) {
				key = edgeKey{edge[1], edge[0]}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, edge)
		}
	}
	return edges
}

func less(a, b geometry.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// drawWireframe renders the model edges
func (app *App) drawWireframe(edges [][2]geometry.Vector3) {
	wireframeColor := rl.NewColor(100, 100, 100, 200)
	for _, edge := range edges {
		rl.DrawLine3D(toRL(edge[0]), toRL(edge[1]), wireframeColor)
	}
}
