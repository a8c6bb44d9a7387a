// Package viewer is the image viewport component: it fits an image into the
// host's viewport, turns pointer drags into crops, applies rotations, mirrors
// and grayscale, and keeps a cached frame for painting.
//
// All methods are safe to call from the host's event goroutine while the
// resize settle timer fires on its own. Listeners run after the viewer's
// lock is released and may call back into it.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"
	"time"

	"image-view/internal/crop"
	viewimage "image-view/internal/image"
	"image-view/internal/render"
	"image-view/internal/selection"
	"image-view/pkg/geometry"
)

// Button identifies a pointer button.
type Button = selection.Button

// Pointer buttons.
const (
	ButtonPrimary   = selection.ButtonPrimary
	ButtonSecondary = selection.ButtonSecondary
	ButtonTertiary  = selection.ButtonTertiary
)

// Viewer is the viewport component.
type Viewer struct {
	mu sync.Mutex

	img      image.Image
	gen      uint64
	viewport geometry.Size
	crop     crop.Model
	drag     selection.Machine
	orient   *geometry.Orientation
	cache    render.Cache
	policy   render.Policy
	settler  *render.Settler
	grid     bool

	background  color.Color
	settleDelay time.Duration
	after       render.AfterFunc
	logger      *slog.Logger

	lmu       sync.RWMutex
	listeners map[EventType][]Listener
}

// New creates a viewer with no image.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		orient:     geometry.NewOrientation(),
		background: viewimage.DefaultBackground,
		listeners:  make(map[EventType][]Listener),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.New(slog.DiscardHandler)
	}
	v.settler = render.NewSettler(v.settleDelay, v.after, v.settled)
	return v
}

// SetImage replaces the image and clears crop, drag and orientation. Images
// without a packed RGBA buffer are converted. nil unloads the image.
func (v *Viewer) SetImage(img image.Image) {
	if img != nil {
		img = viewimage.Addressable(img)
	}

	v.mu.Lock()
	v.img = img
	v.gen++
	v.crop.Reset()
	v.drag.Cancel()
	v.orient.Reset()
	v.cache.Invalidate()
	size := v.imageSizeLocked()
	v.mu.Unlock()

	v.logger.Debug("image set", "size", size)
	v.emit(
		event{EventImageChanged, size},
		event{EventCropChanged, crop.None()},
		event{EventRepaint, nil},
	)
}

// Image returns the current image, or nil.
func (v *Viewer) Image() image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.img
}

// ImageSize returns the current image dimensions.
func (v *Viewer) ImageSize() geometry.Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.imageSizeLocked()
}

func (v *Viewer) imageSizeLocked() geometry.Size {
	if v.img == nil {
		return geometry.Size{}
	}
	b := v.img.Bounds()
	return geometry.NewSize(b.Dx(), b.Dy())
}

// SetViewportSize records the host surface size and requests a repaint when
// it changed.
func (v *Viewer) SetViewportSize(width, height int) {
	if v.SyncViewportSize(width, height) {
		v.emit(event{EventRepaint, nil})
	}
}

// SyncViewportSize records the host surface size without requesting a
// repaint, for hosts that are about to Paint at that size. Reports whether the
// size changed.
func (v *Viewer) SyncViewportSize(width, height int) bool {
	size := geometry.NewSize(width, height)

	v.mu.Lock()
	defer v.mu.Unlock()
	if size == v.viewport {
		return false
	}
	v.viewport = size
	v.drag.Cancel()
	return true
}

// ViewportSize returns the last size set by the host.
func (v *Viewer) ViewportSize() geometry.Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport
}

// ResizeStarted signals that the host began a resize. Frames are built at
// fast quality until the resize settles.
func (v *Viewer) ResizeStarted() {
	v.settler.Poke()
}

// ResizeTick signals another resize event and restarts the settle period.
func (v *Viewer) ResizeTick() {
	v.settler.Poke()
}

// Resizing reports whether a resize is in progress.
func (v *Viewer) Resizing() bool {
	return v.settler.Resizing()
}

func (v *Viewer) settled() {
	v.mu.Lock()
	v.cache.Invalidate()
	v.mu.Unlock()

	v.logger.Debug("resize settled")
	v.emit(event{EventRepaint, nil})
}

// regionLocked returns the visible part of the image. Caller holds v.mu.
func (v *Viewer) regionLocked() geometry.Rect {
	size := v.imageSizeLocked()
	return v.crop.Crop().Region(size.Width, size.Height)
}

// fitLocked places the visible region in the viewport. Caller holds v.mu.
func (v *Viewer) fitLocked() (geometry.FitResult, bool) {
	if v.img == nil {
		return geometry.FitResult{}, false
	}
	return geometry.FitSize(v.regionLocked().Size(), v.viewport)
}

// Fit returns the display rectangle and scale of the visible region.
func (v *Viewer) Fit() (geometry.FitResult, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fitLocked()
}

// ImagePoint maps a screen point to full-image coordinates.
func (v *Viewer) ImagePoint(p geometry.Point) (geometry.PointF, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fit, ok := v.fitLocked()
	if !ok {
		return geometry.PointF{}, false
	}
	return geometry.ScreenToImage(p, fit, v.crop.Crop().Offset()), true
}

// Crop returns the current crop.
func (v *Viewer) Crop() crop.Crop {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.crop.Crop()
}

// SourceCrop returns the current crop in the coordinates of the image as it
// was set, undoing the rotations and mirrors applied since.
func (v *Viewer) SourceCrop() (geometry.Rect, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	r, ok := v.crop.Crop().Rect()
	if !ok {
		return geometry.Rect{}, false
	}
	return v.orient.MapRect(r)
}

// ResetCrop shows the whole image again.
func (v *Viewer) ResetCrop() {
	v.mu.Lock()
	if v.crop.Crop().IsNone() {
		v.mu.Unlock()
		return
	}
	v.crop.Reset()
	v.drag.Cancel()
	v.cache.Invalidate()
	v.mu.Unlock()

	v.emit(event{EventCropChanged, crop.None()}, event{EventRepaint, nil})
}

// CommitSelection crops to the full-image rectangle spanned by the corners,
// as a finished drag does. Returns false when the rectangle is too small.
func (v *Viewer) CommitSelection(minX, minY, maxX, maxY float64) bool {
	v.mu.Lock()
	if v.img == nil {
		v.mu.Unlock()
		return false
	}
	events, ok := v.commitLocked(minX, minY, maxX, maxY)
	v.mu.Unlock()

	v.emit(events...)
	return ok
}

func (v *Viewer) commitLocked(minX, minY, maxX, maxY float64) ([]event, bool) {
	size := v.imageSizeLocked()
	if !v.crop.Commit(minX, minY, maxX, maxY, size.Width, size.Height) {
		v.logger.Debug("selection rejected", "min", geometry.PointF{X: minX, Y: minY}, "max", geometry.PointF{X: maxX, Y: maxY})
		return []event{{EventRepaint, nil}}, false
	}
	v.cache.Invalidate()
	c := v.crop.Crop()
	v.logger.Debug("crop committed", "crop", c.String())
	return []event{{EventCropChanged, c}, {EventRepaint, nil}}, true
}

// PointerDown handles a button press at screen point p.
func (v *Viewer) PointerDown(p geometry.Point, b Button) {
	v.mu.Lock()
	fit, ok := v.fitLocked()
	if !ok {
		v.mu.Unlock()
		return
	}
	out := v.drag.Down(p, b, fit.Display, v.regionLocked().Size())
	v.mu.Unlock()

	if out == selection.Cancelled {
		v.emit(event{EventRepaint, nil})
	}
}

// PointerMove handles pointer motion.
func (v *Viewer) PointerMove(p geometry.Point) {
	v.mu.Lock()
	fit, ok := v.fitLocked()
	if !ok {
		v.mu.Unlock()
		return
	}
	out := v.drag.Move(p, fit.Display)
	v.mu.Unlock()

	if out == selection.Redraw {
		v.emit(event{EventRepaint, nil})
	}
}

// PointerUp handles a button release. A primary release that ends a large
// enough drag commits the selection as the new crop.
func (v *Viewer) PointerUp(p geometry.Point, b Button) {
	v.mu.Lock()
	fit, ok := v.fitLocked()
	if !ok {
		v.mu.Unlock()
		return
	}

	var events []event
	out, g := v.drag.Up(p, b)
	switch out {
	case selection.Commit:
		offset := v.crop.Crop().Offset()
		from := geometry.ScreenToImage(g.From, fit, offset)
		to := geometry.ScreenToImage(g.To, fit, offset)
		events, _ = v.commitLocked(min(from.X, to.X), min(from.Y, to.Y), max(from.X, to.X), max(from.Y, to.Y))
	case selection.Cancelled:
		events = []event{{EventRepaint, nil}}
	}
	v.mu.Unlock()

	v.emit(events...)
}

// Dragging reports whether a selection drag is active.
func (v *Viewer) Dragging() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.drag.State() == selection.Dragging
}

// Rotate90 turns the image a quarter clockwise.
func (v *Viewer) Rotate90() {
	v.transform("rotate90", func(size geometry.Size) {
		v.img = viewimage.Rotate90(v.img)
		v.orient.Rotate90(size.Width, size.Height)
		v.crop.Rotate90(size.Height, size.Width)
	})
}

// Rotate270 turns the image a quarter counter-clockwise.
func (v *Viewer) Rotate270() {
	v.transform("rotate270", func(size geometry.Size) {
		v.img = viewimage.Rotate270(v.img)
		v.orient.Rotate270(size.Width, size.Height)
		v.crop.Rotate270(size.Height, size.Width)
	})
}

// Mirror flips the image horizontally.
func (v *Viewer) Mirror() {
	v.transform("mirror", func(size geometry.Size) {
		v.img = viewimage.FlipHorizontal(v.img)
		v.orient.Mirror(size.Width)
		v.crop.Mirror(size.Width)
	})
}

// transform applies fn to the pixels and crop, given the size before the
// change. No-op without an image.
func (v *Viewer) transform(name string, fn func(size geometry.Size)) {
	v.mu.Lock()
	if v.img == nil {
		v.mu.Unlock()
		return
	}
	fn(v.imageSizeLocked())
	v.gen++
	v.drag.Cancel()
	v.cache.Invalidate()
	size := v.imageSizeLocked()
	c := v.crop.Crop()
	v.mu.Unlock()

	v.logger.Debug("transform applied", "op", name, "size", size, "crop", c.String())
	events := []event{{EventImageChanged, size}}
	if !c.IsNone() {
		events = append(events, event{EventCropChanged, c})
	}
	v.emit(append(events, event{EventRepaint, nil})...)
}

// ApplyGrayscale converts the image to gray in place. No-op without an image.
func (v *Viewer) ApplyGrayscale() error {
	v.mu.Lock()
	if v.img == nil {
		v.mu.Unlock()
		return nil
	}
	if err := viewimage.GrayscaleImage(v.img); err != nil {
		v.mu.Unlock()
		return fmt.Errorf("failed to apply grayscale: %w", err)
	}
	v.gen++
	v.cache.Invalidate()
	v.mu.Unlock()

	v.logger.Debug("grayscale applied")
	v.emit(event{EventRepaint, nil})
	return nil
}

// VisibleRegion copies the crop, or the whole image, into a new image at its
// native resolution. Returns false without an image.
func (v *Viewer) VisibleRegion() (*image.NRGBA, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.img == nil {
		return nil, false
	}
	return viewimage.CropCopy(v.img, v.regionLocked()), true
}

// SetGrid shows or hides the alignment grid.
func (v *Viewer) SetGrid(enabled bool) {
	v.mu.Lock()
	changed := v.grid != enabled
	v.grid = enabled
	v.mu.Unlock()

	if changed {
		v.emit(event{EventRepaint, nil})
	}
}

// Grid reports whether the alignment grid is shown.
func (v *Viewer) Grid() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.grid
}

// Frame returns the cached composite for the current viewport, rebuilding it
// when image, crop or size changed. nil without an image or viewport area.
// The returned image is owned by the viewer and must not be modified.
func (v *Viewer) Frame() *image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frameLocked()
}

func (v *Viewer) frameLocked() *image.RGBA {
	if v.img == nil || v.viewport.Empty() {
		return nil
	}
	region := v.regionLocked()
	key := render.Key{Generation: v.gen, Crop: v.crop.Crop(), Size: v.viewport}
	q := v.policy.For(v.settler.Resizing(), region.Size())
	return v.cache.Ensure(key, render.Source{Image: v.img, Region: region}, q, v.background)
}

// Builds returns how many frames have been composited.
func (v *Viewer) Builds() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cache.Builds()
}

// OverlayState is what the host draws on top of the frame.
type OverlayState struct {
	Display    geometry.Rect
	Shade      []geometry.Rect
	ShadeColor color.NRGBA
	Grid       []render.Line
	GridColor  color.NRGBA
}

// Empty reports whether there is nothing to draw.
func (o OverlayState) Empty() bool {
	return len(o.Shade) == 0 && len(o.Grid) == 0
}

// Overlay returns the current overlay: the darkened area around an active
// drag and the grid when enabled.
func (v *Viewer) Overlay() OverlayState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.overlayLocked()
}

func (v *Viewer) overlayLocked() OverlayState {
	st := OverlayState{ShadeColor: render.SelectionShade, GridColor: render.GridColor}
	fit, ok := v.fitLocked()
	if !ok {
		return st
	}
	st.Display = fit.Display
	if sel, ok := v.drag.Rect(); ok {
		st.Shade = render.DarkenRegions(fit.Display, sel)
	}
	if v.grid {
		st.Grid = render.GridLines(fit.Display)
	}
	return st
}

// Paint draws the frame and overlay into dst, with dst's origin at the
// viewport's top-left.
func (v *Viewer) Paint(dst draw.Image) {
	v.mu.Lock()
	frame := v.frameLocked()
	overlay := v.overlayLocked()
	background := v.background
	v.mu.Unlock()

	if frame == nil {
		viewimage.Fill(dst, background)
		return
	}
	if !dst.Bounds().Eq(frame.Bounds()) {
		viewimage.Fill(dst, background)
	}
	draw.Draw(dst, dst.Bounds(), frame, dst.Bounds().Min, draw.Src)
	render.FillRects(dst, overlay.Shade, overlay.ShadeColor)
	render.DrawLines(dst, overlay.Grid, overlay.GridColor)
}

// Close stops the settle timer and drops the cached frame.
func (v *Viewer) Close() {
	v.settler.Stop()
	v.mu.Lock()
	v.cache.Invalidate()
	v.mu.Unlock()
}
