package canvas

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"wall-meter/internal/view"
	"wall-meter/pkg/geometry"
)

// grabRadius is how close (in view pixels) a tap must land to pick up an
// existing corner instead of placing the next one.
const grabRadius = 16.0

var (
	cornerColor  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	outlineColor = color.RGBA{R: 255, G: 220, B: 0, A: 255}
)

// CornerCanvas displays the wall photo and lets the user place the four
// wall corners: taps place corners in order (top-left, top-right,
// bottom-right, bottom-left), dragging an existing corner moves it.
type CornerCanvas struct {
	widget.BaseWidget

	photo  *image.RGBA
	trans  view.Transform
	fitted bool

	corners []geometry.Point2D // 0..4, in image pixel coordinates

	raster *fynecanvas.Raster

	dragIndex int // corner being dragged, -1 when none

	viewW, viewH float64

	onCornersChanged func(q geometry.Quadrilateral, complete bool)
}

// NewCornerCanvas creates an empty corner canvas.
func NewCornerCanvas() *CornerCanvas {
	cc := &CornerCanvas{trans: view.Identity(), dragIndex: -1}
	cc.raster = fynecanvas.NewRaster(cc.draw)
	cc.raster.ScaleMode = fynecanvas.ImageScalePixels
	cc.ExtendBaseWidget(cc)
	return cc
}

// SetPhoto attaches the photo and clears any picked corners.
func (cc *CornerCanvas) SetPhoto(img *image.RGBA) {
	cc.photo = img
	cc.corners = nil
	cc.fitted = false
	cc.Refresh()
}

// OnCornersChanged sets a callback fired whenever the corner set changes.
// complete is true once all four corners are placed.
func (cc *CornerCanvas) OnCornersChanged(fn func(q geometry.Quadrilateral, complete bool)) {
	cc.onCornersChanged = fn
}

// Corners returns the picked corners so far.
func (cc *CornerCanvas) Corners() []geometry.Point2D {
	out := make([]geometry.Point2D, len(cc.corners))
	copy(out, cc.corners)
	return out
}

// Quadrilateral returns the picked quad and whether all four corners are
// placed.
func (cc *CornerCanvas) Quadrilateral() (geometry.Quadrilateral, bool) {
	if len(cc.corners) < 4 {
		return geometry.Quadrilateral{}, false
	}
	return geometry.Quadrilateral{
		TopLeft:     cc.corners[0],
		TopRight:    cc.corners[1],
		BottomRight: cc.corners[2],
		BottomLeft:  cc.corners[3],
	}, true
}

// Reset clears the picked corners.
func (cc *CornerCanvas) Reset() {
	cc.corners = nil
	cc.notify()
	cc.Refresh()
}

// Tapped places the next corner, or starts over from a full set if the
// tap is far from every existing corner.
func (cc *CornerCanvas) Tapped(ev *fyne.PointEvent) {
	if cc.photo == nil {
		return
	}
	p := cc.toImage(ev.Position)
	if !cc.inPhoto(p) {
		return
	}

	if i := cc.cornerAt(ev.Position); i >= 0 {
		cc.corners[i] = p
	} else if len(cc.corners) < 4 {
		cc.corners = append(cc.corners, p)
	} else {
		return
	}

	cc.notify()
	cc.Refresh()
}

// Dragged moves the corner nearest the drag start, if one is close
// enough.
func (cc *CornerCanvas) Dragged(ev *fyne.DragEvent) {
	if cc.photo == nil {
		return
	}

	if cc.dragIndex < 0 {
		start := fyne.Position{
			X: ev.Position.X - ev.Dragged.DX,
			Y: ev.Position.Y - ev.Dragged.DY,
		}
		cc.dragIndex = cc.cornerAt(start)
		if cc.dragIndex < 0 {
			return
		}
	}

	p := cc.toImage(ev.Position)
	if !cc.inPhoto(p) {
		return
	}
	cc.corners[cc.dragIndex] = p
	cc.notify()
	cc.Refresh()
}

// DragEnd releases the dragged corner.
func (cc *CornerCanvas) DragEnd() {
	cc.dragIndex = -1
}

// Scrolled zooms around the cursor.
func (cc *CornerCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if cc.photo == nil {
		return
	}
	factor := zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	b := cc.photo.Bounds()
	cursor := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	cc.trans = view.ZoomAt(cc.trans, cursor, cc.trans.Scale*factor,
		float64(b.Dx()), float64(b.Dy()), cc.viewW, cc.viewH)
	cc.Refresh()
}

// ZoomIn zooms one step around the view center.
func (cc *CornerCanvas) ZoomIn() { cc.zoomCenter(zoomStep) }

// ZoomOut zooms one step out around the view center.
func (cc *CornerCanvas) ZoomOut() { cc.zoomCenter(1 / zoomStep) }

// FitToView refits the photo on the next draw.
func (cc *CornerCanvas) FitToView() {
	cc.fitted = false
	cc.Refresh()
}

func (cc *CornerCanvas) zoomCenter(factor float64) {
	if cc.photo == nil {
		return
	}
	b := cc.photo.Bounds()
	center := geometry.Point2D{X: cc.viewW / 2, Y: cc.viewH / 2}
	cc.trans = view.ZoomAt(cc.trans, center, cc.trans.Scale*factor,
		float64(b.Dx()), float64(b.Dy()), cc.viewW, cc.viewH)
	cc.Refresh()
}

func (cc *CornerCanvas) toImage(pos fyne.Position) geometry.Point2D {
	return cc.trans.ToImage(geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)})
}

func (cc *CornerCanvas) inPhoto(p geometry.Point2D) bool {
	b := cc.photo.Bounds()
	return p.X >= 0 && p.X < float64(b.Dx()) && p.Y >= 0 && p.Y < float64(b.Dy())
}

// cornerAt returns the index of the corner within grab range of a view
// position, or -1.
func (cc *CornerCanvas) cornerAt(pos fyne.Position) int {
	best := -1
	bestDist := grabRadius
	for i, c := range cc.corners {
		v := cc.trans.ToView(c)
		d := math.Hypot(v.X-float64(pos.X), v.Y-float64(pos.Y))
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func (cc *CornerCanvas) notify() {
	if cc.onCornersChanged == nil {
		return
	}
	q, complete := cc.Quadrilateral()
	cc.onCornersChanged(q, complete)
}

func (cc *CornerCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(output, backgroundColor)

	if cc.photo == nil || w == 0 || h == 0 {
		return output
	}

	b := cc.photo.Bounds()
	imgW, imgH := b.Dx(), b.Dy()

	if cc.viewW != float64(w) || cc.viewH != float64(h) || !cc.fitted {
		cc.viewW, cc.viewH = float64(w), float64(h)
		if !cc.fitted {
			cc.trans = view.Centered(float64(imgW), float64(imgH), cc.viewW, cc.viewH)
			cc.fitted = true
		} else {
			cc.trans = view.Clamp(cc.trans, float64(imgW), float64(imgH), cc.viewW, cc.viewH, false)
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := cc.trans.ToImage(geometry.Point2D{X: float64(x), Y: float64(y)})
			ix := int(math.Floor(p.X))
			iy := int(math.Floor(p.Y))
			if ix < 0 || ix >= imgW || iy < 0 || iy >= imgH {
				continue
			}
			si := cc.photo.PixOffset(ix, iy)
			di := output.PixOffset(x, y)
			copy(output.Pix[di:di+4], cc.photo.Pix[si:si+4])
		}
	}

	// Outline between placed corners, closing the loop once all four are
	// down.
	for i := 1; i < len(cc.corners); i++ {
		p1 := cc.trans.ToView(cc.corners[i-1])
		p2 := cc.trans.ToView(cc.corners[i])
		drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), outlineColor, 1)
	}
	if len(cc.corners) == 4 {
		p1 := cc.trans.ToView(cc.corners[3])
		p2 := cc.trans.ToView(cc.corners[0])
		drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), outlineColor, 1)
	}

	for _, c := range cc.corners {
		v := cc.trans.ToView(c)
		drawCrossMarker(output, int(v.X), int(v.Y), 6, cornerColor)
		drawCircleOutline(output, int(v.X), int(v.Y), 6, cornerColor)
	}

	return output
}

// CreateRenderer implements fyne.Widget.
func (cc *CornerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cc.raster)
}

// Refresh repaints the canvas.
func (cc *CornerCanvas) Refresh() {
	cc.raster.Refresh()
	cc.BaseWidget.Refresh()
}
