package openscad

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/pkg/stl"
)

// IsSource reports whether path is an OpenSCAD source
func IsSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Load reads an STL model, rendering OpenSCAD sources first
func Load(ctx context.Context, path string, log *logger.Logger) (*stl.Model, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return model, nil
	case ".scad":
		return NewRenderer(filepath.Dir(path), log).Render(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
	}
}

// WatchFiles returns the files whose change should reload path
func WatchFiles(path string, log *logger.Logger) ([]string, error) {
	if !IsSource(path) {
		return []string{path}, nil
	}
	return NewRenderer(filepath.Dir(path), log).ResolveDependencies(path)
}
