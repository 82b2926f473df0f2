package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
)

// Widget is a fyne widget showing surfaces and recorded annotations. Pointer
// events are turned into pick rays and handed to the callbacks.
type Widget struct {
	widget.BaseWidget

	camera     *Camera
	surfaces   []*scene.Surface
	sink       *render.Recorder
	image      *canvas.Image
	size       fyne.Size
	dragStart  *fyne.Position
	isDragging bool

	OnClick  func(ray geometry.Ray)
	OnMove   func(ray geometry.Ray)
	OnCancel func()
}

// NewWidget creates a widget drawing surfaces and the groups recorded in sink
func NewWidget(surfaces []*scene.Surface, camera *Camera, sink *render.Recorder) *Widget {
	w := &Widget{
		camera:   camera,
		surfaces: surfaces,
		sink:     sink,
		image:    canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
	}
	w.image.FillMode = canvas.ImageFillStretch
	w.image.ScaleMode = canvas.ImageScalePixels
	w.ExtendBaseWidget(w)
	return w
}

// Camera returns the widget camera
func (w *Widget) Camera() *Camera {
	return w.camera
}

// Redraw renders a new frame at the current size
func (w *Widget) Redraw() {
	width, height := int(w.size.Width), int(w.size.Height)
	if width <= 0 || height <= 0 {
		return
	}
	renderer := NewImageRenderer(w.camera, width, height)
	w.image.Image = renderer.Render(w.surfaces, w.sink.All())
	canvas.Refresh(w.image)
}

func (w *Widget) ray(pos fyne.Position) geometry.Ray {
	return w.camera.Ray(float64(pos.X), float64(pos.Y), int(w.size.Width), int(w.size.Height))
}

// CreateRenderer creates the renderer for the widget
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	return &widgetRenderer{widget: w}
}

// Tapped forwards a click
func (w *Widget) Tapped(event *fyne.PointEvent) {
	if w.isDragging {
		return
	}
	if w.OnClick != nil {
		w.OnClick(w.ray(event.Position))
	}
	w.Redraw()
}

// TappedSecondary cancels the current capture
func (w *Widget) TappedSecondary(*fyne.PointEvent) {
	if w.OnCancel != nil {
		w.OnCancel()
	}
	w.Redraw()
}

// MouseIn is part of desktop.Hoverable
func (w *Widget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved forwards the pointer position
func (w *Widget) MouseMoved(event *desktop.MouseEvent) {
	if w.OnMove != nil {
		w.OnMove(w.ray(event.Position))
		w.Redraw()
	}
}

// MouseOut is part of desktop.Hoverable
func (w *Widget) MouseOut() {}

// Dragged orbits the camera
func (w *Widget) Dragged(event *fyne.DragEvent) {
	if w.dragStart != nil {
		deltaX := event.Position.X - w.dragStart.X
		deltaY := event.Position.Y - w.dragStart.Y

		w.camera.Rotate(float64(deltaY)*0.01, float64(-deltaX)*0.01)
		w.Redraw()
	}
	pos := event.Position
	w.dragStart = &pos
	w.isDragging = true
}

// DragEnd handles the end of a drag event
func (w *Widget) DragEnd() {
	w.dragStart = nil
	w.isDragging = false
}

// Scrolled zooms the camera
func (w *Widget) Scrolled(event *fyne.ScrollEvent) {
	w.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	w.Redraw()
}

type widgetRenderer struct {
	widget *Widget
}

func (r *widgetRenderer) Layout(size fyne.Size) {
	r.widget.size = size
	r.widget.image.Resize(size)
	r.widget.Redraw()
}

func (r *widgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *widgetRenderer) Refresh() {
	r.widget.Redraw()
}

func (r *widgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.image}
}

func (r *widgetRenderer) Destroy() {}
