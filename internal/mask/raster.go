package mask

import (
	"math"

	"wall-meter/pkg/geometry"
)

// Mode selects whether a painting operation marks or clears mask pixels.
type Mode string

const (
	ModeAdd      Mode = "add"
	ModeSubtract Mode = "subtract"
)

// PaintStroke rasterizes a round-capped, round-joined polyline of the
// given image-space width into the mask. Points are image-space
// coordinates; segments crossing the mask border are clipped pixel by
// pixel.
func (m *Mask) PaintStroke(points []geometry.Point2D, strokeWidth float64, mode Mode) {
	if len(points) == 0 || strokeWidth <= 0 {
		return
	}
	radius := strokeWidth / 2
	covered := mode != ModeSubtract

	// Discs at every vertex give the round caps and joins; stamping along
	// each segment at sub-radius spacing fills the shaft.
	m.stampDisc(points[0].X, points[0].Y, radius, covered)
	for i := 1; i < len(points); i++ {
		m.stampSegment(points[i-1], points[i], radius, covered)
	}
}

// PaintRectangle fills or clears an axis-aligned rectangle given in
// image-space coordinates.
func (m *Mask) PaintRectangle(rect geometry.Rect, mode Mode) {
	rect = rect.Normalized()
	covered := mode != ModeSubtract

	x0 := int(math.Floor(rect.X))
	y0 := int(math.Floor(rect.Y))
	x1 := int(math.Ceil(rect.X + rect.Width))
	y1 := int(math.Ceil(rect.Y + rect.Height))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, covered)
		}
	}
}

// stampSegment stamps discs from a to b at half-radius spacing, ending
// with a disc exactly at b so joins stay round.
func (m *Mask) stampSegment(a, b geometry.Point2D, radius float64, covered bool) {
	dist := a.Distance(b)
	step := radius / 2
	if step < 0.5 {
		step = 0.5
	}

	n := int(dist / step)
	for i := 1; i <= n; i++ {
		t := float64(i) * step / dist
		m.stampDisc(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t, radius, covered)
	}
	m.stampDisc(b.X, b.Y, radius, covered)
}

// stampDisc paints a filled circle, clipped to the mask bounds.
func (m *Mask) stampDisc(cx, cy, radius float64, covered bool) {
	if radius < 0.5 {
		radius = 0.5
	}
	r := int(math.Ceil(radius))
	icx := int(math.Round(cx))
	icy := int(math.Round(cy))
	r2 := radius * radius

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			fx := float64(icx+dx) + 0.5 - cx
			fy := float64(icy+dy) + 0.5 - cy
			if fx*fx+fy*fy <= r2 {
				m.Set(icx+dx, icy+dy, covered)
			}
		}
	}
}
