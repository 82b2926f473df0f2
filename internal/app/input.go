package app

import (
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/internal/dimension"
)

type command int

const (
	cmdNone command = iota
	cmdLinear
	cmdAligned
	cmdAngle
	cmdLeader
	cmdEditLabel
	cmdPlaneDefine
	cmdPlaneFace
	cmdPlaneView
	cmdPlaneWorld
	cmdPlaneMove
	cmdToggleSnap
	cmdCycleUnits
	cmdToggleWireframe
	cmdToggleHelp
)

// commandFor maps typed characters to commands. Characters are used instead
// of physical keys to work across keyboard layouts.
func commandFor(r rune) command {
	switch unicode.ToLower(r) {
	case 'l':
		return cmdLinear
	case 'a':
		return cmdAligned
	case 'g':
		return cmdAngle
	case 'e':
		return cmdLeader
	case 't':
		return cmdEditLabel
	case 'p':
		return cmdPlaneDefine
	case 'f':
		return cmdPlaneFace
	case 'v':
		return cmdPlaneView
	case 'w':
		return cmdPlaneWorld
	case 'm':
		return cmdPlaneMove
	case 'n':
		return cmdToggleSnap
	case 'u':
		return cmdCycleUnits
	case 'x':
		return cmdToggleWireframe
	case 'h', '?':
		return cmdToggleHelp
	}
	return cmdNone
}

// nextUnit cycles meter, millimeter, foot
func nextUnit(u dimension.Unit) dimension.Unit {
	switch u {
	case dimension.Meter:
		return dimension.Millimeter
	case dimension.Millimeter:
		return dimension.Foot
	default:
		return dimension.Meter
	}
}

// handleInput processes user input
func (app *App) handleInput() {
	if app.Interaction.editingLabel {
		app.handleLabelInput()
		return
	}

	m := app.session.Machine
	mouse := rl.GetMousePosition()

	// Camera view presets
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraSideView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraTopView()
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		m.Cancel()
	}
	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrlPressed && rl.IsKeyPressed(rl.KeyZ) {
		if rec, ok := app.session.Store.RemoveLast(); ok {
			app.notify("removed %s #%d", rec.Type, rec.ID)
		}
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		app.session.Store.Clear()
		app.notify("cleared all dimensions")
	}

	for char := rl.GetCharPressed(); char != 0; char = rl.GetCharPressed() {
		if ctrlPressed {
			continue
		}
		app.apply(commandFor(rune(char)))
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = mouse
		app.Interaction.mouseMoved = false
		app.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if rl.Vector2Distance(mouse, app.Interaction.mouseDownPos) > 3 {
			app.Interaction.mouseMoved = true
		}
		if app.Interaction.mouseMoved && (delta.X != 0 || delta.Y != 0) {
			if app.Interaction.isPanning || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
				app.doPan(delta)
			} else {
				app.orbit(delta)
			}
		}
	} else if mouse != app.Interaction.lastMousePos {
		m.PointerMove(app.pickRay(mouse))
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && !app.Interaction.mouseMoved {
		m.Click(app.pickRay(mouse))
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		m.Cancel()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.zoom(wheel)
	}

	app.Interaction.lastMousePos = mouse
}

func (app *App) apply(cmd command) {
	m := app.session.Machine
	switch cmd {
	case cmdLinear:
		m.SetMode(dimension.Linear)
	case cmdAligned:
		m.SetMode(dimension.Aligned)
	case cmdAngle:
		m.SetMode(dimension.Angle)
	case cmdLeader:
		m.SetMode(dimension.Leader)
	case cmdEditLabel:
		app.Interaction.editingLabel = true
	case cmdPlaneDefine:
		m.BeginPlaneDefinition()
	case cmdPlaneFace:
		m.BeginPlaneFromFace()
	case cmdPlaneView:
		m.PlaneToView()
	case cmdPlaneWorld:
		m.PlaneToWorld()
	case cmdPlaneMove:
		m.BeginPlaneTranslate()
	case cmdToggleSnap:
		enabled := !app.session.Snap.Enabled()
		app.session.Snap.SetEnabled(enabled)
		app.notify("snapping %s", onOff(enabled))
	case cmdCycleUnits:
		unit := nextUnit(app.session.Store.Style().Units)
		app.session.SetUnits(unit)
		app.notify("units: %s", unit)
	case cmdToggleWireframe:
		app.View.showWireframe = !app.View.showWireframe
	case cmdToggleHelp:
		app.View.showHelp = !app.View.showHelp
	}
}

// handleLabelInput edits the leader text until Enter or Escape
func (app *App) handleLabelInput() {
	for char := rl.GetCharPressed(); char != 0; char = rl.GetCharPressed() {
		app.Interaction.leaderText = append(app.Interaction.leaderText, rune(char))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(app.Interaction.leaderText) > 0 {
		app.Interaction.leaderText = app.Interaction.leaderText[:len(app.Interaction.leaderText)-1]
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyEscape) {
		app.Interaction.editingLabel = false
	}
}

// leaderLabel answers the leader prompt with the edited text; empty cancels
func (app *App) leaderLabel() (string, bool) {
	text := string(app.Interaction.leaderText)
	return text, text != ""
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
