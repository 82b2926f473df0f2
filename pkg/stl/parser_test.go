package stl

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/philipparndt/godim/pkg/geometry"
)

const asciiCube = `solid plate
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 2 0 0
      vertex 2 2 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 2 2 0
      vertex 0 2 0
    endloop
  endfacet
endsolid plate
`

func TestParseASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiCube))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if model.Name != "plate" {
		t.Errorf("Name failed: expected plate, got %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("TriangleCount failed: expected 2, got %d", model.TriangleCount())
	}
	if model.Triangles[0].V2 != geometry.NewVector3(2, 0, 0) {
		t.Errorf("Vertex failed: got %v", model.Triangles[0].V2)
	}
	area := model.Triangles[0].Area() + model.Triangles[1].Area()
	if area != 4 {
		t.Errorf("Area failed: expected 4, got %v", area)
	}
}

func TestParseASCIIBadVertex(t *testing.T) {
	_, err := ParseReader(strings.NewReader("solid x\nfacet normal 0 0 1\nvertex a b c\nendfacet\nendsolid x\n"))
	if err == nil {
		t.Errorf("expected an error for a malformed vertex")
	}
}

func TestParseBinary(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, binaryHeaderSize)
	copy(header, "binary part")
	buf.Write(header)
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, binaryFacet{
		Normal: [3]float32{0, 0, 1},
		V1:     [3]float32{0, 0, 0},
		V2:     [3]float32{1, 0, 0},
		V3:     [3]float32{0, 1, 0},
	})

	model, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if model.Name != "binary part" {
		t.Errorf("Name failed: got %q", model.Name)
	}
	if model.TriangleCount() != 1 {
		t.Fatalf("TriangleCount failed: expected 1, got %d", model.TriangleCount())
	}
	if model.Triangles[0].Normal != geometry.NewVector3(0, 0, 1) {
		t.Errorf("Normal failed: got %v", model.Triangles[0].Normal)
	}
}

func TestParseBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, binaryHeaderSize))
	binary.Write(&buf, binary.LittleEndian, uint32(3))

	if _, err := ParseReader(&buf); err == nil {
		t.Errorf("expected an error for a truncated binary file")
	}
}

func TestModelSurface(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiCube))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	surface := model.Surface(geometry.Translation(geometry.NewVector3(0, 0, 5)))
	bounds := surface.WorldBounds()
	if bounds.Min.Z != 5 || bounds.Max.Z != 5 {
		t.Errorf("Surface transform failed: bounds %v", bounds)
	}
}
