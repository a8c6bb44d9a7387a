// Package canvas provides the fyne widget that hosts a viewer.
package canvas

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"image-view/internal/viewer"
	"image-view/pkg/geometry"
)

// Ensure ViewerCanvas implements the following interfaces.
var (
	_ fyne.Widget       = (*ViewerCanvas)(nil)
	_ fyne.Draggable    = (*ViewerCanvas)(nil)
	_ desktop.Mouseable = (*ViewerCanvas)(nil)
	_ desktop.Hoverable = (*ViewerCanvas)(nil)
)

// ViewerCanvas paints a viewer into a raster and routes mouse and resize
// events to it.
type ViewerCanvas struct {
	widget.BaseWidget

	viewer *viewer.Viewer
	raster *fynecanvas.Raster

	mu       sync.Mutex
	pixelW   int // raster size in pixels at the last draw
	pixelH   int
	lastSize fyne.Size
	lastDrag fyne.Position
	dragging bool
	onHover  func(p geometry.PointF, inside bool)

	refresh func()
}

// NewViewerCanvas creates a canvas showing v.
func NewViewerCanvas(v *viewer.Viewer) *ViewerCanvas {
	vc := &ViewerCanvas{viewer: v}
	vc.raster = fynecanvas.NewRaster(vc.draw)
	vc.raster.ScaleMode = fynecanvas.ImageScalePixels
	vc.raster.SetMinSize(fyne.NewSize(200, 150))
	vc.refresh = vc.raster.Refresh

	v.On(viewer.EventRepaint, func(interface{}) {
		vc.mu.Lock()
		refresh := vc.refresh
		vc.mu.Unlock()
		refresh()
	})

	vc.ExtendBaseWidget(vc)
	return vc
}

// Viewer returns the hosted viewer.
func (vc *ViewerCanvas) Viewer() *viewer.Viewer {
	return vc.viewer
}

// OnHover sets a callback that receives the image coordinates under the
// pointer, or inside=false when the pointer leaves.
func (vc *ViewerCanvas) OnHover(callback func(p geometry.PointF, inside bool)) {
	vc.mu.Lock()
	vc.onHover = callback
	vc.mu.Unlock()
}

// Resize notifies the viewer that a resize is in progress.
func (vc *ViewerCanvas) Resize(size fyne.Size) {
	vc.mu.Lock()
	changed := size != vc.lastSize && !vc.lastSize.IsZero()
	vc.lastSize = size
	vc.mu.Unlock()

	if changed {
		if vc.viewer.Resizing() {
			vc.viewer.ResizeTick()
		} else {
			vc.viewer.ResizeStarted()
		}
	}
	vc.BaseWidget.Resize(size)
	vc.raster.Resize(size)
}

// draw is the raster drawing function.
func (vc *ViewerCanvas) draw(w, h int) image.Image {
	vc.mu.Lock()
	vc.pixelW, vc.pixelH = w, h
	vc.mu.Unlock()

	// Painting happens below, so the size change needs no repaint of its own.
	vc.viewer.SyncViewportSize(w, h)

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	vc.viewer.Paint(output)
	return output
}

// PosToPixel converts a fyne position to raster pixels.
func (vc *ViewerCanvas) PosToPixel(pos fyne.Position) geometry.Point {
	vc.mu.Lock()
	pixelW, pixelH := vc.pixelW, vc.pixelH
	vc.mu.Unlock()

	size := vc.Size()
	if pixelW == 0 || pixelH == 0 || size.Width == 0 || size.Height == 0 {
		scale := float32(1)
		if app := fyne.CurrentApp(); app != nil {
			if c := app.Driver().CanvasForObject(vc); c != nil {
				scale = c.Scale()
			}
		}
		return geometry.Pt(int(pos.X*scale+0.5), int(pos.Y*scale+0.5))
	}
	return geometry.Pt(
		int((pos.X/size.Width)*float32(pixelW)+0.5),
		int((pos.Y/size.Height)*float32(pixelH)+0.5),
	)
}

func button(b desktop.MouseButton) viewer.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return viewer.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return viewer.ButtonTertiary
	default:
		return viewer.ButtonPrimary
	}
}

// MouseDown implements desktop.Mouseable.
func (vc *ViewerCanvas) MouseDown(ev *desktop.MouseEvent) {
	vc.viewer.PointerDown(vc.PosToPixel(ev.Position), button(ev.Button))
}

// MouseUp implements desktop.Mouseable.
func (vc *ViewerCanvas) MouseUp(ev *desktop.MouseEvent) {
	vc.mu.Lock()
	vc.dragging = false
	vc.mu.Unlock()
	vc.viewer.PointerUp(vc.PosToPixel(ev.Position), button(ev.Button))
}

// Dragged implements fyne.Draggable. While a button is held fyne reports
// motion here instead of MouseMoved.
func (vc *ViewerCanvas) Dragged(ev *fyne.DragEvent) {
	vc.mu.Lock()
	vc.dragging = true
	vc.lastDrag = ev.Position
	vc.mu.Unlock()

	vc.viewer.PointerMove(vc.PosToPixel(ev.Position))
	vc.hover(ev.Position)
}

// DragEnd implements fyne.Draggable. Some drivers deliver it without a
// matching MouseUp, so the drag is finished here too; a second release is
// ignored by the viewer.
func (vc *ViewerCanvas) DragEnd() {
	vc.mu.Lock()
	wasDragging, pos := vc.dragging, vc.lastDrag
	vc.dragging = false
	vc.mu.Unlock()

	if wasDragging {
		vc.viewer.PointerUp(vc.PosToPixel(pos), viewer.ButtonPrimary)
	}
}

// MouseIn implements desktop.Hoverable.
func (vc *ViewerCanvas) MouseIn(ev *desktop.MouseEvent) {
	vc.hover(ev.Position)
}

// MouseMoved implements desktop.Hoverable.
func (vc *ViewerCanvas) MouseMoved(ev *desktop.MouseEvent) {
	vc.viewer.PointerMove(vc.PosToPixel(ev.Position))
	vc.hover(ev.Position)
}

// MouseOut implements desktop.Hoverable.
func (vc *ViewerCanvas) MouseOut() {
	vc.mu.Lock()
	cb := vc.onHover
	vc.mu.Unlock()
	if cb != nil {
		cb(geometry.PointF{}, false)
	}
}

func (vc *ViewerCanvas) hover(pos fyne.Position) {
	vc.mu.Lock()
	cb := vc.onHover
	vc.mu.Unlock()
	if cb == nil {
		return
	}

	p := vc.PosToPixel(pos)
	fit, ok := vc.viewer.Fit()
	if !ok || !fit.Display.Contains(p) {
		cb(geometry.PointF{}, false)
		return
	}
	ip, _ := vc.viewer.ImagePoint(p)
	cb(ip, true)
}

// CreateRenderer implements fyne.Widget.
func (vc *ViewerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(vc.raster)
}
