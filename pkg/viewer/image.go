package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// ImageRenderer draws surfaces and dimension primitives into an image
type ImageRenderer struct {
	Camera     *Camera
	Width      int
	Height     int
	Background color.RGBA
	ModelColor color.RGBA
}

// NewImageRenderer creates a renderer with the default palette
func NewImageRenderer(cam *Camera, width, height int) *ImageRenderer {
	return &ImageRenderer{
		Camera:     cam,
		Width:      width,
		Height:     height,
		Background: color.RGBA{R: 30, G: 30, B: 36, A: 255},
		ModelColor: color.RGBA{R: 150, G: 170, B: 200, A: 255},
	}
}

// Render draws the surfaces shaded and the primitive sets on top
func (r *ImageRenderer) Render(surfaces []*scene.Surface, sets []dimension.PrimitiveSet) *image.RGBA {
	canvas := NewCanvas(r.Width, r.Height, r.Background)
	r.drawSurfaces(canvas, surfaces)
	for _, set := range sets {
		r.drawSet(canvas, set)
	}
	return canvas.Image
}

func (r *ImageRenderer) drawSurfaces(canvas *Canvas, surfaces []*scene.Surface) {
	look := r.Camera.LookDirection()
	for _, s := range surfaces {
		if s == nil {
			continue
		}
		for _, local := range s.Triangles {
			tri := local.Transform(s.Transform)
			a, okA := r.point(tri.V1)
			b, okB := r.point(tri.V2)
			c, okC := r.point(tri.V3)
			if !okA || !okB || !okC {
				continue
			}
			shade := 0.25 + 0.75*math.Abs(tri.CalculateNormal().Dot(look))
			canvas.FillTriangle(a, b, c, scale(r.ModelColor, shade))
		}
	}
}

func (r *ImageRenderer) drawSet(canvas *Canvas, set dimension.PrimitiveSet) {
	alpha := set.Opacity
	if alpha <= 0 {
		alpha = 1
	}

	line := func(from, to geometry.Vector3) {
		a, okA := r.point(from)
		b, okB := r.point(to)
		if okA && okB {
			canvas.Line(a, b, set.Color, alpha, set.DepthTest)
		}
	}

	for _, seg := range set.Segments {
		line(seg.Start, seg.End)
	}
	for _, poly := range set.Polylines {
		for i := 1; i < len(poly); i++ {
			line(poly[i-1], poly[i])
		}
	}
	for _, arrow := range set.Arrows {
		base := arrow.Tip.Sub(arrow.Direction.Mul(arrow.Length))
		side := arrow.Direction.Perpendicular().Mul(arrow.Length * 0.35)
		other := arrow.Direction.Cross(side)
		for _, off := range []geometry.Vector3{side, side.Negate(), other, other.Negate()} {
			line(arrow.Tip, base.Add(off))
		}
	}
	for _, marker := range set.Markers {
		if p, ok := r.point(marker.Position); ok {
			canvas.Square(p, 4, set.Color)
		}
	}
	for _, label := range set.Labels {
		if p, ok := r.point(label.Position); ok {
			canvas.Text(p.x, p.y, label.Text, label.Color, label.Background, alpha)
		}
	}
}

func (r *ImageRenderer) point(v geometry.Vector3) (point, bool) {
	x, y, z, ok := r.Camera.Project(v, r.Width, r.Height)
	return point{x, y, z}, ok
}

func scale(c color.RGBA, f float64) color.RGBA {
	mul := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// ImageSink records published groups and renders them on demand
type ImageSink struct {
	*render.Recorder
	Renderer *ImageRenderer
}

// NewImageSink creates a sink drawing with renderer
func NewImageSink(renderer *ImageRenderer) *ImageSink {
	return &ImageSink{Recorder: render.NewRecorder(), Renderer: renderer}
}

// Snapshot renders the surfaces with every recorded group
func (s *ImageSink) Snapshot(surfaces []*scene.Surface) *image.RGBA {
	return s.Renderer.Render(surfaces, s.All())
}

// WritePNG encodes a snapshot as PNG
func (s *ImageSink) WritePNG(w io.Writer, surfaces []*scene.Surface) error {
	if err := png.Encode(w, s.Snapshot(surfaces)); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes a snapshot to path
func (s *ImageSink) SavePNG(path string, surfaces []*scene.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := s.WritePNG(f, surfaces); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
