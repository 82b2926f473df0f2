// Package app is the interactive raylib viewer for placing dimensions.
package app

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/internal/interaction"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/internal/session"
	"github.com/philipparndt/godim/pkg/openscad"
)

// Options configures the viewer
type Options struct {
	ModelPath string
	Config    config.Config
	Logger    *logger.Logger
	Watch     bool
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	log := opts.Logger.WithPrefix("viewer")

	model, err := openscad.Load(context.Background(), opts.ModelPath, log)
	if err != nil {
		return err
	}

	app := &App{
		View: ViewSettings{
			showWireframe: true,
			showFilled:    true,
		},
		FileWatch: FileWatchState{sourceFile: opts.ModelPath},
		cfg:       opts.Config,
		log:       log,
		recorder:  render.NewRecorder(),
	}
	app.Camera.camera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	sess, err := session.New(session.Options{
		Config: opts.Config,
		Sink:   app.recorder,
		Camera: viewCamera{camera: &app.Camera.camera},
		Labels: interaction.LabelFunc(app.leaderLabel),
		Logger: log,
	})
	if err != nil {
		return err
	}
	app.session = sess

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1400, 900, fmt.Sprintf("godim - %s", opts.ModelPath))
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app.UI.font = rl.GetFontDefault()
	app.Model.material = rl.LoadMaterialDefault()
	app.setModel(model, true)
	defer func() { rl.UnloadMesh(&app.Model.mesh) }()
	app.updateCamera()

	if opts.Watch {
		if err := app.setupFileWatcher(); err != nil {
			log.Warn("auto-reload not available: %v", err)
		} else {
			defer app.FileWatch.stop()
		}
	}

	for {
		// Escape cancels the current capture instead of closing the window
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}

		if app.FileWatch.needsReload.CompareAndSwap(true, false) {
			app.reloadModel()
		}
		app.applyLoadedModel()

		app.handleInput()
		app.updateCamera()

		sets := app.recorder.All()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		if app.View.showFilled {
			rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
		}
		if app.View.showWireframe {
			app.drawWireframe(app.Model.edges)
		}
		app.drawAnnotations3D(sets)
		rl.EndMode3D()

		app.drawAnnotationsOverlay(sets)
		app.drawUI()

		rl.EndDrawing()
	}
	return nil
}
