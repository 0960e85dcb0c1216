// Package canvas provides the interactive image canvases: corner picking
// on the photo and mask painting on the rectified view.
package canvas

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"wall-meter/internal/mask"
	"wall-meter/internal/render"
	"wall-meter/internal/view"
	"wall-meter/pkg/geometry"
)

const zoomStep = 1.25

var backgroundColor = color.RGBA{R: 32, G: 32, B: 32, A: 255}

// EditCanvas displays the rectified image with the coverage mask overlay
// and routes pointer gestures into the mask editing session. The wheel
// zooms around the cursor; pan mode (or middle drag in spirit, here a
// toggled mode) moves the view.
type EditCanvas struct {
	widget.BaseWidget

	editor *mask.Editor
	trans  view.Transform
	fitted bool

	// Composite of image and mask overlay, rebuilt when the mask changes.
	composite *image.RGBA
	dirty     bool

	raster *fynecanvas.Raster

	panMode  bool
	dragging bool

	viewW, viewH float64

	onMaskChanged func()
	onViewChanged func(scale float64)
}

// NewEditCanvas creates an empty edit canvas.
func NewEditCanvas() *EditCanvas {
	ec := &EditCanvas{trans: view.Identity()}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.ExtendBaseWidget(ec)
	return ec
}

// SetEditor attaches a mask editing session. The view refits to the new
// image on the next draw.
func (ec *EditCanvas) SetEditor(e *mask.Editor) {
	ec.editor = e
	ec.fitted = false
	ec.dirty = true
	ec.Refresh()
}

// SetPanMode toggles between painting and panning drags.
func (ec *EditCanvas) SetPanMode(pan bool) {
	if pan == ec.panMode {
		return
	}
	if ec.editor != nil && ec.dragging {
		// Mid-gesture mode flips become a pan, same as a second finger.
		ec.editor.BeginPan()
		ec.editor.EndPan()
	}
	ec.panMode = pan
}

// OnMaskChanged sets a callback invoked after any committed mask edit.
func (ec *EditCanvas) OnMaskChanged(fn func()) { ec.onMaskChanged = fn }

// OnViewChanged sets a callback invoked when the zoom level changes.
func (ec *EditCanvas) OnViewChanged(fn func(scale float64)) { ec.onViewChanged = fn }

// Invalidate marks the mask composite stale (after undo/redo/clear from
// outside the canvas) and repaints.
func (ec *EditCanvas) Invalidate() {
	ec.dirty = true
	ec.Refresh()
}

// Scale returns the current view scale.
func (ec *EditCanvas) Scale() float64 { return ec.trans.Scale }

// FitToView recenters and refits the image on the next draw.
func (ec *EditCanvas) FitToView() {
	ec.fitted = false
	ec.Refresh()
}

// ZoomIn zooms one step around the view center.
func (ec *EditCanvas) ZoomIn() { ec.zoomCenter(zoomStep) }

// ZoomOut zooms one step out around the view center.
func (ec *EditCanvas) ZoomOut() { ec.zoomCenter(1 / zoomStep) }

func (ec *EditCanvas) zoomCenter(factor float64) {
	if ec.editor == nil {
		return
	}
	src := ec.editor.Source().Bounds()
	center := geometry.Point2D{X: ec.viewW / 2, Y: ec.viewH / 2}
	ec.trans = view.ZoomAt(ec.trans, center, ec.trans.Scale*factor,
		float64(src.Dx()), float64(src.Dy()), ec.viewW, ec.viewH)
	ec.editor.SetViewScale(ec.trans.Scale)
	if ec.onViewChanged != nil {
		ec.onViewChanged(ec.trans.Scale)
	}
	ec.Refresh()
}

// Tapped commits single-click tools (flood fill, single brush-select dab).
func (ec *EditCanvas) Tapped(ev *fyne.PointEvent) {
	if ec.editor == nil || ec.panMode {
		return
	}
	p := ec.toImage(ev.Position)
	ec.editor.PointerDown(p)
	ec.editor.PointerUp(p)
	ec.maskEdited()
}

// Dragged extends a paint stroke or pans the view.
func (ec *EditCanvas) Dragged(ev *fyne.DragEvent) {
	if ec.editor == nil {
		return
	}

	if ec.panMode {
		ec.pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
		return
	}

	if !ec.dragging {
		ec.dragging = true
		start := fyne.Position{
			X: ev.Position.X - ev.Dragged.DX,
			Y: ev.Position.Y - ev.Dragged.DY,
		}
		ec.editor.SetViewScale(ec.trans.Scale)
		ec.editor.PointerDown(ec.toImage(start))
	}
	ec.editor.PointerMove(ec.toImage(ev.Position))
	ec.dirty = true
	ec.Refresh()
}

// DragEnd finalizes the in-progress gesture.
func (ec *EditCanvas) DragEnd() {
	if ec.editor == nil {
		return
	}
	if ec.panMode {
		return
	}
	if !ec.dragging {
		return
	}
	ec.dragging = false

	if ec.editor.Authoring() {
		// DragEnd carries no position; an out-of-bounds point finishes
		// the gesture with the last moved-to point.
		ec.editor.PointerUp(geometry.Point2D{X: -1, Y: -1})
		ec.maskEdited()
	}
}

// Scrolled zooms around the cursor.
func (ec *EditCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ec.editor == nil {
		return
	}

	factor := zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}

	src := ec.editor.Source().Bounds()
	cursor := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	ec.trans = view.ZoomAt(ec.trans, cursor, ec.trans.Scale*factor,
		float64(src.Dx()), float64(src.Dy()), ec.viewW, ec.viewH)

	ec.editor.SetViewScale(ec.trans.Scale)
	if ec.onViewChanged != nil {
		ec.onViewChanged(ec.trans.Scale)
	}
	ec.Refresh()
}

func (ec *EditCanvas) pan(dx, dy float64) {
	src := ec.editor.Source().Bounds()
	ec.trans = view.Pan(ec.trans, dx, dy,
		float64(src.Dx()), float64(src.Dy()), ec.viewW, ec.viewH)
	ec.Refresh()
}

func (ec *EditCanvas) toImage(pos fyne.Position) geometry.Point2D {
	return ec.trans.ToImage(geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)})
}

func (ec *EditCanvas) maskEdited() {
	ec.dirty = true
	ec.Refresh()
	if ec.onMaskChanged != nil {
		ec.onMaskChanged()
	}
}

// draw renders the view: composited image where the transform lands it,
// background elsewhere, dashed preview rectangle on top.
func (ec *EditCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(output, backgroundColor)

	if ec.editor == nil || w == 0 || h == 0 {
		return output
	}

	src := ec.editor.Source()
	imgW := src.Bounds().Dx()
	imgH := src.Bounds().Dy()

	if ec.viewW != float64(w) || ec.viewH != float64(h) || !ec.fitted {
		ec.viewW, ec.viewH = float64(w), float64(h)
		if !ec.fitted {
			ec.trans = view.Centered(float64(imgW), float64(imgH), ec.viewW, ec.viewH)
			ec.fitted = true
		} else {
			ec.trans = view.Clamp(ec.trans, float64(imgW), float64(imgH), ec.viewW, ec.viewH, false)
		}
		ec.editor.SetViewScale(ec.trans.Scale)
	}

	if ec.dirty || ec.composite == nil {
		ec.composite = render.Overlay(src, ec.editor.Mask())
		ec.dirty = false
	}

	// Nearest-neighbor resample through the inverse transform.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := ec.trans.ToImage(geometry.Point2D{X: float64(x), Y: float64(y)})
			ix := int(math.Floor(p.X))
			iy := int(math.Floor(p.Y))
			if ix < 0 || ix >= imgW || iy < 0 || iy >= imgH {
				continue
			}
			si := ec.composite.PixOffset(ix, iy)
			di := output.PixOffset(x, y)
			copy(output.Pix[di:di+4], ec.composite.Pix[si:si+4])
		}
	}

	if rect, ok := ec.editor.PreviewRect(); ok {
		tl := ec.trans.ToView(geometry.Point2D{X: rect.X, Y: rect.Y})
		br := ec.trans.ToView(geometry.Point2D{X: rect.X + rect.Width, Y: rect.Y + rect.Height})
		drawDashedRect(output, int(tl.X), int(tl.Y), int(br.X), int(br.Y),
			color.RGBA{R: 255, G: 255, B: 0, A: 255})
	}

	return output
}

// CreateRenderer implements fyne.Widget.
func (ec *EditCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}

// Refresh repaints the canvas.
func (ec *EditCanvas) Refresh() {
	ec.raster.Refresh()
	ec.BaseWidget.Refresh()
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}
