package app

import (
	"context"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/openscad"
	"github.com/philipparndt/godim/pkg/scene"
	"github.com/philipparndt/godim/pkg/stl"
	"github.com/philipparndt/godim/pkg/watcher"
)

// setupFileWatcher reloads the model when its file, or any OpenSCAD file it
// uses, changes
func (app *App) setupFileWatcher() error {
	files, err := openscad.WatchFiles(app.FileWatch.sourceFile, app.log)
	if err != nil {
		return err
	}
	fw, err := watcher.New(500*time.Millisecond, app.log)
	if err != nil {
		return err
	}
	if err := fw.Add(files...); err != nil {
		fw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = fw.Run(ctx, func([]string) {
			app.FileWatch.needsReload.Store(true)
		})
	}()

	app.FileWatch.fileWatcher = fw
	app.FileWatch.stop = func() {
		cancel()
		fw.Close()
	}
	app.log.Info("watching %d file(s) for changes", len(files))
	return nil
}

// reloadModel parses the source file in the background
func (app *App) reloadModel() {
	if !app.FileWatch.isLoading.CompareAndSwap(false, true) {
		return
	}
	app.FileWatch.loadingStartTime = time.Now()
	app.log.Info("reloading model")

	go func() {
		model, err := openscad.Load(context.Background(), app.FileWatch.sourceFile, app.log)
		if err != nil {
			app.log.Error("reloading model: %v", err)
			app.FileWatch.isLoading.Store(false)
			return
		}
		app.FileWatch.loaded.Store(model)
	}()
}

// applyLoadedModel swaps in a reloaded model. Mesh uploads must happen on the
// main thread. Existing dimensions keep their anchors.
func (app *App) applyLoadedModel() {
	model := app.FileWatch.loaded.Swap(nil)
	if model == nil {
		return
	}

	oldMesh := app.Model.mesh
	app.setModel(model, false)
	rl.UnloadMesh(&oldMesh)

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	app.notify("model reloaded in %.2fs", elapsed.Seconds())
	app.FileWatch.isLoading.Store(false)
}

// setModel makes model the measured surface. The camera is framed on the
// model only when frame is set.
func (app *App) setModel(model *stl.Model, frame bool) {
	surface := app.Model.surface
	if surface != nil && !frame {
		// reload keeps the surface placement
		surface.SetTriangles(model.Triangles)
	} else {
		surface = model.Surface(geometry.Identity())
	}

	app.Model.model = model
	app.Model.surface = surface
	app.Model.mesh = surfaceToRaylibMesh(surface)
	app.Model.edges = uniqueEdges(surface)
	app.session.Surfaces = []*scene.Surface{surface}

	bbox := surface.WorldBounds()
	if bbox.IsEmpty() {
		bbox = geometry.NewBoundingBox()
		bbox.Extend(geometry.NewVector3(-1, -1, -1))
		bbox.Extend(geometry.NewVector3(1, 1, 1))
	}
	size := bbox.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	app.Model.center = toRL(bbox.Center())
	app.Model.size = float32(maxDim)

	if frame {
		distance := float32(maxDim * 2.0)
		app.Camera.target = app.Model.center
		app.Camera.distance = distance
		app.Camera.angleX = 0.3
		app.Camera.angleY = 0.3
		app.Camera.defaultDist = distance
		app.Camera.defaultAngleX = 0.3
		app.Camera.defaultAngleY = 0.3
	}
}
