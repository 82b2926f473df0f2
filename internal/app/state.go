package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/internal/logger"
	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/internal/session"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
	"github.com/philipparndt/godim/pkg/stl"
	"github.com/philipparndt/godim/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // can be panned
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// ModelData holds all model-related data
type ModelData struct {
	model    *stl.Model
	surface  *scene.Surface
	edges    [][2]geometry.Vector3
	mesh     rl.Mesh
	material rl.Material
	center   rl.Vector3
	size     float32 // max dimension
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showHelp      bool
}

// InteractionState holds mouse and keyboard state
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	lastMousePos rl.Vector2

	// editingLabel is set while keys go to the leader text
	editingLabel bool
	leaderText   []rune
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string
	fileWatcher      *watcher.Watcher
	stop             func()
	needsReload      atomic.Bool
	isLoading        atomic.Bool
	loadingStartTime time.Time
	loaded           atomic.Pointer[stl.Model]
}

// UIState holds UI-related state
type UIState struct {
	font    rl.Font
	message string
	msgTime time.Time
}

// App is the interactive dimensioning viewer
type App struct {
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState

	cfg      config.Config
	log      *logger.Logger
	session  *session.Session
	recorder *render.Recorder
}
