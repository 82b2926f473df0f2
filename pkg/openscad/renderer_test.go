package openscad

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.scad"), `use <lib/shapes.scad>
// include <ignored.scad>
include <./params.scad>
cube(size);
`)
	write(t, filepath.Join(dir, "lib", "shapes.scad"), "include <../params.scad>\n")
	write(t, filepath.Join(dir, "params.scad"), "size = 2;\n")

	deps, err := NewRenderer(dir, nil).ResolveDependencies("main.scad")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "main.scad"),
		filepath.Join(dir, "lib", "shapes.scad"),
		filepath.Join(dir, "params.scad"),
	}, deps)
}

func TestResolveMissingDependency(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.scad"), "use <missing.scad>\n")

	_, err := NewRenderer(dir, nil).ResolveDependencies(filepath.Join(dir, "main.scad"))
	assert.ErrorContains(t, err, "missing.scad")
}

func TestRenderWithoutBinary(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.scad"), "cube(1);\n")

	r := NewRenderer(dir, nil)
	r.Binary = "openscad-not-installed-here"
	_, err := r.Render(context.Background(), "main.scad")
	assert.ErrorContains(t, err, "not found in PATH")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.stl")
	write(t, path, `solid tri
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid tri
`)
	model, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, model.TriangleCount())

	_, err = Load(context.Background(), filepath.Join(dir, "model.obj"), nil)
	assert.ErrorContains(t, err, "unsupported file type")

	files, err := WatchFiles(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
	assert.True(t, IsSource("a/B.SCAD"))
}
