package app

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/pkg/geometry"
)

const (
	labelFontSize = float32(16)
	labelPadding  = float32(4)
)

// rlColor converts a colour and applies the set opacity
func rlColor(c color.RGBA, opacity float64) rl.Color {
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	return rl.NewColor(c.R, c.G, c.B, uint8(float64(c.A)*opacity))
}

// arrowWings returns the two base corners of an arrow head in the plane of side
func arrowWings(a dimension.Arrow, side geometry.Vector3) (geometry.Vector3, geometry.Vector3) {
	base := a.Tip.Sub(a.Direction.Mul(a.Length))
	off := side.Mul(a.Length * 0.35)
	return base.Add(off), base.Sub(off)
}

// drawAnnotations3D draws the depth-tested sets inside 3D mode
func (app *App) drawAnnotations3D(sets []dimension.PrimitiveSet) {
	for _, set := range sets {
		if !set.DepthTest {
			continue
		}
		col := rlColor(set.Color, set.Opacity)

		for _, seg := range set.Segments {
			rl.DrawLine3D(toRL(seg.Start), toRL(seg.End), col)
		}
		for _, poly := range set.Polylines {
			for i := 1; i < len(poly); i++ {
				rl.DrawLine3D(toRL(poly[i-1]), toRL(poly[i]), col)
			}
		}
		for _, arrow := range set.Arrows {
			base := arrow.Tip.Sub(arrow.Direction.Mul(arrow.Length))
			rl.DrawCylinderEx(toRL(base), toRL(arrow.Tip), float32(arrow.Length*0.35), 0, 8, col)
		}
		for _, marker := range set.Markers {
			rl.DrawSphere(toRL(marker.Position), app.Model.size*0.006, col)
		}
	}
}

// drawAnnotationsOverlay draws the remaining sets and every label in screen
// space so they stay visible through the model
func (app *App) drawAnnotationsOverlay(sets []dimension.PrimitiveSet) {
	cam := app.Camera.camera
	screen := func(v geometry.Vector3) rl.Vector2 {
		return rl.GetWorldToScreen(toRL(v), cam)
	}
	look := fromRL(cam.Target).Sub(fromRL(cam.Position)).Normalize()

	for _, set := range sets {
		col := rlColor(set.Color, set.Opacity)

		if !set.DepthTest {
			for _, seg := range set.Segments {
				rl.DrawLineEx(screen(seg.Start), screen(seg.End), 2, col)
			}
			for _, poly := range set.Polylines {
				for i := 1; i < len(poly); i++ {
					rl.DrawLineEx(screen(poly[i-1]), screen(poly[i]), 2, col)
				}
			}
			for _, arrow := range set.Arrows {
				side := arrow.Direction.Cross(look).NormalizeOr(arrow.Direction.Perpendicular())
				w1, w2 := arrowWings(arrow, side)
				tip := screen(arrow.Tip)
				rl.DrawLineEx(tip, screen(w1), 2, col)
				rl.DrawLineEx(tip, screen(w2), 2, col)
				rl.DrawLineEx(screen(w1), screen(w2), 2, col)
			}
			for _, marker := range set.Markers {
				p := screen(marker.Position)
				rl.DrawCircle(int32(p.X), int32(p.Y), 5, col)
				rl.DrawCircleLines(int32(p.X), int32(p.Y), 7, rl.White)
			}
		}

		for _, label := range set.Labels {
			app.drawLabel(screen(label.Position), label, set.Opacity)
		}
	}
}

// drawLabel draws text centred on p over its background box
func (app *App) drawLabel(p rl.Vector2, label dimension.Label, opacity float64) {
	size := labelFontSize * float32(max(label.Scale, 0.5))
	textSize := rl.MeasureTextEx(app.UI.font, label.Text, size, 1)

	box := rl.Rectangle{
		X:      p.X - textSize.X/2 - labelPadding,
		Y:      p.Y - textSize.Y/2 - labelPadding,
		Width:  textSize.X + labelPadding*2,
		Height: textSize.Y + labelPadding*2,
	}
	rl.DrawRectangleRec(box, rlColor(label.Background, opacity))
	rl.DrawTextEx(app.UI.font, label.Text,
		rl.Vector2{X: box.X + labelPadding, Y: box.Y + labelPadding},
		size, 1, rlColor(label.Color, opacity))
}
