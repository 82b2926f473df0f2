// Package analysis summarizes surfaces and created dimensions for the CLI.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// EdgeInfo describes one triangle edge in world space
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
}

// SurfaceStats contains measurements of a surface
type SurfaceStats struct {
	Name          string
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// AnalyzeSurface measures a surface in world space
func AnalyzeSurface(s *scene.Surface) *SurfaceStats {
	result := &SurfaceStats{
		Name:          s.Name,
		BoundingBox:   s.WorldBounds(),
		TriangleCount: len(s.Triangles),
	}
	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
	}

	lengths := make([]float64, 0, 3*len(s.Triangles))
	for i, local := range s.Triangles {
		tri := local.Transform(s.Transform)
		result.SurfaceArea += tri.Area()

		for _, edge := range tri.Edges() {
			length := edge[0].Distance(edge[1])
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:      edge[0],
				End:        edge[1],
				Length:     length,
				TriangleID: i,
			})
			lengths = append(lengths, length)
		}
	}

	result.EdgeCount = len(lengths)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = floats.Min(lengths)
		result.MaxEdgeLength = floats.Max(lengths)
		result.AvgEdgeLength = floats.Sum(lengths) / float64(len(lengths))
	}
	return result
}

// SuggestedThreshold is a snap threshold that keeps neighbouring features
// apart: a quarter of the shortest edge, capped at max.
func (s *SurfaceStats) SuggestedThreshold(max float64) float64 {
	if s.EdgeCount == 0 || s.MinEdgeLength <= 0 {
		return max
	}
	return floats.Min([]float64{s.MinEdgeLength / 4, max})
}

// FindEdgesByLength finds all edges within a length range
func (s *SurfaceStats) FindEdgesByLength(minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range s.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func (s *SurfaceStats) FindLongestEdges(count int) []EdgeInfo {
	return s.sortedEdges(count, func(a, b float64) bool { return a > b })
}

// FindShortestEdges returns the N shortest edges
func (s *SurfaceStats) FindShortestEdges(count int) []EdgeInfo {
	return s.sortedEdges(count, func(a, b float64) bool { return a < b })
}

func (s *SurfaceStats) sortedEdges(count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(s.AllEdges))
	copy(edges, s.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex finds the world-space vertex nearest to point
func FindNearestVertex(s *scene.Surface, point geometry.Vector3) (geometry.Vector3, float64) {
	var nearest geometry.Vector3
	minDistance := -1.0

	for _, local := range s.Triangles {
		for _, v := range local.Vertices() {
			vertex := s.Transform.ApplyPoint(v)
			distance := point.Distance(vertex)
			if minDistance < 0 || distance < minDistance {
				minDistance = distance
				nearest = vertex
			}
		}
	}
	return nearest, minDistance
}
