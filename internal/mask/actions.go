package mask

import (
	"image"

	"wall-meter/pkg/geometry"
)

// ActionKind tags the variants of Action.
type ActionKind string

const (
	ActionBrush       ActionKind = "brush"
	ActionRectangle   ActionKind = "rectangle"
	ActionFloodFill   ActionKind = "flood_fill"
	ActionBrushSelect ActionKind = "brush_select"
	ActionBitmap      ActionKind = "bitmap"
	ActionClear       ActionKind = "clear"
)

// Action is one committed mask edit. Replaying a session's actions in
// order against an empty mask reproduces the mask exactly; undo/redo and
// session restore both ride on that determinism.
//
// All coordinates and widths are in image pixel space, so a replay is
// independent of whatever zoom level the stroke was authored at.
type Action struct {
	Kind ActionKind `json:"kind"`
	Mode Mode       `json:"mode,omitempty"`

	// Brush / brush-select polyline.
	Points []geometry.Point2D `json:"points,omitempty"`

	// Brush stroke width.
	StrokeWidth float64 `json:"stroke_width,omitempty"`

	// Rectangle geometry.
	Rect *geometry.Rect `json:"rect,omitempty"`

	// Flood-fill seed.
	Seed *geometry.PointInt `json:"seed,omitempty"`

	// Flood-fill / brush-select color tolerance.
	Tolerance float64 `json:"tolerance,omitempty"`

	// Brush-select radius.
	Radius float64 `json:"radius,omitempty"`

	// Whole-mask bitmap, produced by automatic detection. Replaces the
	// mask content rather than painting into it.
	Data []byte `json:"data,omitempty"`
}

// apply mutates the mask according to the action. src is the rectified
// color image the color-aware operations sample.
func (a Action) apply(m *Mask, src *image.RGBA) {
	switch a.Kind {
	case ActionBrush:
		m.PaintStroke(a.Points, a.StrokeWidth, a.Mode)
	case ActionRectangle:
		if a.Rect != nil {
			m.PaintRectangle(*a.Rect, a.Mode)
		}
	case ActionFloodFill:
		if a.Seed != nil {
			m.FloodFill(src, *a.Seed, a.Tolerance)
		}
	case ActionBrushSelect:
		for _, p := range a.Points {
			m.BrushSelect(src, geometry.PointInt{X: int(p.X), Y: int(p.Y)}, a.Radius, a.Tolerance, a.Mode)
		}
	case ActionBitmap:
		m.SetBytes(a.Data)
	case ActionClear:
		m.Reset()
	}
}
