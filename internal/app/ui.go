package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/interaction"
	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/philipparndt/godim/version"
)

const messageDuration = 3 * time.Second

var helpLines = []string{
	"L linear   A aligned   G angle   E leader",
	"T edit leader text (Enter to finish)",
	"P plane from 3 points   F plane from face",
	"V plane to view   W world plane   M move plane",
	"N toggle snapping   U cycle units   X wireframe",
	"Esc / right click cancel   Ctrl+Z undo   Del clear",
	"Drag orbit   Shift+drag pan   Wheel zoom",
	"Home reset   1 front   2 side   3 top",
}

// notify shows a short message and logs it
func (app *App) notify(format string, args ...any) {
	app.UI.message = fmt.Sprintf(format, args...)
	app.UI.msgTime = time.Now()
	app.log.Info("%s", app.UI.message)
}

// prompt describes what the next click does
func prompt(mode dimension.Type, state interaction.State) string {
	switch state {
	case interaction.Idle:
		switch mode {
		case dimension.Angle:
			return "click the angle vertex"
		case dimension.Leader:
			return "click the arrow tip"
		}
		return "click the first point"
	case interaction.CapturingPoint2:
		switch mode {
		case dimension.Angle:
			return "click a point on the first arm"
		case dimension.Leader:
			return "click the elbow"
		}
		return "click the second point"
	case interaction.CapturingAngleArm2:
		return "click a point on the second arm"
	case interaction.PlacingOffset:
		switch mode {
		case dimension.Angle:
			return "click to set the arc radius"
		case dimension.Leader:
			return "click the text position"
		}
		return "click to place the dimension line"
	case interaction.DefiningPlaneOrigin:
		return "click the plane origin"
	case interaction.DefiningPlaneXAxis:
		return "click a point on the plane x axis"
	case interaction.DefiningPlaneInPlanePoint:
		return "click a third point on the plane"
	case interaction.DefiningPlaneFromFace:
		return "click a face"
	case interaction.TranslatingPlane:
		return "click the new plane origin"
	}
	return ""
}

// drawUI draws the heads-up display
func (app *App) drawUI() {
	fontSize := float32(16)
	lineHeight := float32(20)
	x, y := float32(10), float32(10)
	m := app.session.Machine

	text := func(s string, col rl.Color) {
		rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, fontSize, 1, col)
		y += lineHeight
	}

	text(fmt.Sprintf("Mode: %s", m.Mode()), rl.Yellow)
	text(fmt.Sprintf("%s: %s", m.State(), prompt(m.Mode(), m.State())), rl.White)
	text(fmt.Sprintf("Plane: %s", m.Plane()), rl.LightGray)
	text(fmt.Sprintf("Snapping: %s   Units: %s", onOff(app.session.Snap.Enabled()), app.session.Store.Style().Units), rl.LightGray)

	leader := string(app.Interaction.leaderText)
	if app.Interaction.editingLabel {
		text(fmt.Sprintf("Leader text: %s_", leader), rl.Yellow)
	} else if leader != "" {
		text(fmt.Sprintf("Leader text: %s", leader), rl.LightGray)
	}

	y += lineHeight / 2
	rows := analysis.Report(app.session.Store.Records(), app.session.Store.Style())
	text(fmt.Sprintf("Dimensions (%d)", len(rows)), rl.White)
	for _, row := range rows {
		text(fmt.Sprintf("  #%d %-7s %s", row.ID, row.Type, row.Value), rl.LightGray)
	}

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	if app.View.showHelp {
		y = screenHeight - lineHeight*float32(len(helpLines)+2)
		for _, line := range helpLines {
			text(line, rl.LightGray)
		}
	} else {
		y = screenHeight - lineHeight*2
		text("H for help", rl.Gray)
	}

	if app.UI.message != "" && time.Since(app.UI.msgTime) < messageDuration {
		size := rl.MeasureTextEx(app.UI.font, app.UI.message, fontSize, 1)
		box := rl.Rectangle{X: screenWidth - size.X - 40, Y: 20, Width: size.X + 20, Height: size.Y + 20}
		rl.DrawRectangleRec(box, rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLinesEx(box, 1, rl.Yellow)
		rl.DrawTextEx(app.UI.font, app.UI.message, rl.Vector2{X: box.X + 10, Y: box.Y + 10}, fontSize, 1, rl.Yellow)
	}

	if app.FileWatch.isLoading.Load() {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("Loading... (%.1fs)", elapsed),
			rl.Vector2{X: screenWidth - 200, Y: screenHeight - 30}, fontSize, 1, rl.Yellow)
	}

	v := fmt.Sprintf("godim %s  %d FPS", version.GetVersion(), rl.GetFPS())
	size := rl.MeasureTextEx(app.UI.font, v, 12, 1)
	rl.DrawTextEx(app.UI.font, v, rl.Vector2{X: screenWidth - size.X - 10, Y: screenHeight - size.Y - 10}, 12, 1, rl.Gray)
}
