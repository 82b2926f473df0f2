package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/internal/dimension"
	"github.com/philipparndt/godim/internal/interaction"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/internal/session"
	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/openscad"
	"github.com/philipparndt/godim/pkg/scene"
	"github.com/philipparndt/godim/pkg/stl"
	"github.com/philipparndt/godim/pkg/viewer"
)

type App struct {
	window   fyne.Window
	cfg      config.Config
	log      *logger.Logger
	model    *stl.Model
	session  *session.Session
	recorder *render.Recorder
	view     *viewer.Widget

	stateLabel *widget.Label
	planeLabel *widget.Label
	leaderText *widget.Entry
	list       *widget.Label
}

func main() {
	log := logger.Default().WithPrefix("gui")
	cfg, err := config.Load("")
	if err != nil {
		log.Warn("using default config: %v", err)
		cfg = config.Default()
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	a := app.New()
	w := a.NewWindow("godim - Dimensioning")

	appInstance := &App{
		window: w,
		cfg:    cfg,
		log:    log,
	}

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to godim")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open an STL file to start placing dimensions")

	openButton := widget.NewButton("Open STL File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	model, err := openscad.Load(context.Background(), filename, a.log)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load model: %w", err), a.window)
		return
	}
	a.model = model

	surfaces := []*scene.Surface{model.Surface(geometry.Identity())}
	camera := viewer.NewCamera(surfaces[0].WorldBounds())
	a.recorder = render.NewRecorder()

	sess, err := session.New(session.Options{
		Config:   a.cfg,
		Surfaces: surfaces,
		Sink:     a.recorder,
		Camera:   camera,
		Logger:   a.log,
	})
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.session = sess
	a.view = viewer.NewWidget(surfaces, camera, a.recorder)
	a.setupMainUI()
}

func (a *App) setupMainUI() {
	m := a.session.Machine

	a.stateLabel = widget.NewLabel("")
	a.stateLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.planeLabel = widget.NewLabel("")
	a.list = widget.NewLabel("")

	a.leaderText = widget.NewEntry()
	a.leaderText.SetPlaceHolder("Leader text")
	// Leaders take the entry text when their third point is placed; an empty
	// entry cancels the leader.
	m.SetLabelSource(interaction.LabelFunc(func() (string, bool) {
		text := a.leaderText.Text
		return text, text != ""
	}))

	a.view.OnClick = func(ray geometry.Ray) {
		m.Click(ray)
		a.refresh()
	}
	a.view.OnMove = func(ray geometry.Ray) {
		m.PointerMove(ray)
	}
	a.view.OnCancel = func() {
		m.Cancel()
		a.refresh()
	}

	modes := widget.NewRadioGroup([]string{"linear", "aligned", "angle", "leader"}, func(selected string) {
		mode, err := dimension.ParseType(selected)
		if err != nil {
			return
		}
		m.SetMode(mode)
		a.refresh()
	})
	modes.SetSelected(m.Mode().String())

	units := widget.NewSelect([]string{"meter", "millimeter", "foot"}, func(selected string) {
		unit, err := dimension.ParseUnit(selected)
		if err != nil {
			return
		}
		a.session.SetUnits(unit)
		a.refresh()
	})
	units.SetSelected(a.session.Store.Style().Units.String())

	snapCheck := widget.NewCheck("Snapping", func(checked bool) {
		a.session.Snap.SetEnabled(checked)
		a.refresh()
	})
	snapCheck.SetChecked(a.session.Snap.Enabled())

	planeButtons := container.NewGridWithColumns(2,
		widget.NewButton("World", func() { m.PlaneToWorld(); a.refresh() }),
		widget.NewButton("View", func() { m.PlaneToView(); a.refresh() }),
		widget.NewButton("3 Points", func() { m.BeginPlaneDefinition(); a.refresh() }),
		widget.NewButton("From Face", func() { m.BeginPlaneFromFace(); a.refresh() }),
		widget.NewButton("Move", func() { m.BeginPlaneTranslate(); a.refresh() }),
	)

	undoButton := widget.NewButton("Undo", func() {
		a.session.Store.RemoveLast()
		a.refresh()
	})
	clearButton := widget.NewButton("Clear All", func() {
		a.session.Store.Clear()
		a.refresh()
	})
	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	stats := analysis.AnalyzeSurface(a.session.Surfaces[0])
	modelInfo := widget.NewLabel(fmt.Sprintf(
		"Model: %s\nTriangles: %d\nSurface Area: %.2f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		a.model.Name,
		stats.TriangleCount,
		stats.SurfaceArea,
		stats.Dimensions.X,
		stats.Dimensions.Y,
		stats.Dimensions.Z,
	))

	sidebar := container.NewVBox(
		openButton,
		widget.NewSeparator(),
		widget.NewLabel("Mode"),
		modes,
		a.leaderText,
		widget.NewSeparator(),
		widget.NewLabel("Construction Plane"),
		planeButtons,
		a.planeLabel,
		widget.NewSeparator(),
		snapCheck,
		units,
		container.NewGridWithColumns(2, undoButton, clearButton),
		widget.NewSeparator(),
		a.stateLabel,
		a.list,
		layout.NewSpacer(),
		modelInfo,
	)

	split := container.NewHSplit(a.view, container.NewVScroll(sidebar))
	split.Offset = 0.75
	a.window.SetContent(split)
	a.refresh()
}

func (a *App) refresh() {
	m := a.session.Machine
	a.stateLabel.SetText(fmt.Sprintf("%s: %s", m.Mode(), m.State()))
	a.planeLabel.SetText(m.Plane().String())

	rows := analysis.Report(a.session.Store.Records(), a.session.Store.Style())
	text := ""
	for _, row := range rows {
		text += fmt.Sprintf("#%d %s %s\n", row.ID, row.Type, row.Value)
	}
	if text == "" {
		text = "No dimensions"
	}
	a.list.SetText(text)
	a.view.Redraw()
}
