package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// lightDir is the direction of the baked diffuse light
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// shade returns the baked colour of a face with the given world normal
func shade(normal geometry.Vector3) (r, g, b uint8) {
	intensity := math.Max(0.3, -normal.Dot(lightDir))
	base := 200.0
	return uint8(base * intensity * 0.5), uint8(base * intensity * 0.6), uint8(base * intensity)
}

// meshData flattens a surface into raylib vertex arrays in world space
func meshData(s *scene.Surface) (vertices, normals, texcoords []float32, colors []uint8) {
	vertexCount := len(s.Triangles) * 3
	vertices = make([]float32, 0, vertexCount*3)
	normals = make([]float32, 0, vertexCount*3)
	texcoords = make([]float32, 0, vertexCount*2)
	colors = make([]uint8, 0, vertexCount*4)

	uv := [3][2]float32{{0, 0}, {1, 0}, {0, 1}}
	for _, local := range s.Triangles {
		tri := local.Transform(s.Transform)
		normal := tri.CalculateNormal()
		r, g, b := shade(normal)

		for i, v := range tri.Vertices() {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			texcoords = append(texcoords, uv[i][0], uv[i][1])
			colors = append(colors, r, g, b, 255)
		}
	}
	return vertices, normals, texcoords, colors
}

// surfaceToRaylibMesh uploads a surface as a mesh with baked lighting
func surfaceToRaylibMesh(s *scene.Surface) rl.Mesh {
	vertices, normals, texcoords, colors := meshData(s)

	mesh := rl.Mesh{
		VertexCount:   int32(len(vertices) / 3),
		TriangleCount: int32(len(s.Triangles)),
	}
	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}
