// Package view maps between the pannable/zoomable view space and the fixed
// pixel space of the rectified image.
package view

import (
	"wall-meter/pkg/geometry"
)

const (
	// MaxScale is the zoom ceiling.
	MaxScale = 6.0

	// absoluteMinScale bounds transient gesture scales so the transform
	// can never collapse to zero mid-pinch.
	absoluteMinScale = 0.05

	// centerSlack is how far (in view pixels) a smaller-than-viewport
	// image may be nudged away from center before clamping pulls it back.
	centerSlack = 40.0
)

// Transform is a uniform-scale affine transform from image pixel space to
// view space: view = image*Scale + Translate.
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// ToView converts an image-space point to view space.
func (t Transform) ToView(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*t.Scale + t.TranslateX,
		Y: p.Y*t.Scale + t.TranslateY,
	}
}

// ToImage converts a view-space point to image space. Exact inverse of
// ToView for the same transform.
func (t Transform) ToImage(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (p.X - t.TranslateX) / t.Scale,
		Y: (p.Y - t.TranslateY) / t.Scale,
	}
}

// FitScale returns the scale at which the whole image is visible inside the
// viewport.
func FitScale(imageW, imageH, viewportW, viewportH float64) float64 {
	if imageW <= 0 || imageH <= 0 || viewportW <= 0 || viewportH <= 0 {
		return 1
	}
	sx := viewportW / imageW
	sy := viewportH / imageH
	if sy < sx {
		return sy
	}
	return sx
}

// Centered returns the fit-to-viewport transform with the image centered.
func Centered(imageW, imageH, viewportW, viewportH float64) Transform {
	s := FitScale(imageW, imageH, viewportW, viewportH)
	return Transform{
		Scale:      s,
		TranslateX: (viewportW - imageW*s) / 2,
		TranslateY: (viewportH - imageH*s) / 2,
	}
}

// Clamp enforces the scale and translation bounds. Scale stays within
// [fit, MaxScale]; with allowBelowFit the lower bound relaxes to a small
// absolute minimum so pinch gestures can dip under the fit scale before the
// gesture-end clamp. Translation keeps an oversized image edge-to-edge or
// inward, and keeps an undersized image centered within a small slack.
func Clamp(t Transform, imageW, imageH, viewportW, viewportH float64, allowBelowFit bool) Transform {
	minScale := FitScale(imageW, imageH, viewportW, viewportH)
	if allowBelowFit {
		minScale = absoluteMinScale
	}
	if t.Scale < minScale {
		t.Scale = minScale
	}
	if t.Scale > MaxScale {
		t.Scale = MaxScale
	}

	t.TranslateX = clampAxis(t.TranslateX, imageW*t.Scale, viewportW)
	t.TranslateY = clampAxis(t.TranslateY, imageH*t.Scale, viewportH)
	return t
}

// clampAxis bounds one translation component given the scaled image extent
// and the viewport extent along that axis.
func clampAxis(translate, scaled, viewport float64) float64 {
	if scaled >= viewport {
		// Image overflows the viewport: keep it covering the viewport,
		// edge-to-edge or inward.
		if translate > 0 {
			return 0
		}
		if translate < viewport-scaled {
			return viewport - scaled
		}
		return translate
	}

	// Image smaller than viewport: centered with a nudge allowance.
	center := (viewport - scaled) / 2
	if translate < center-centerSlack {
		return center - centerSlack
	}
	if translate > center+centerSlack {
		return center + centerSlack
	}
	return translate
}

// ZoomAt rescales the transform so the image point under the cursor stays
// under the cursor, then clamps.
func ZoomAt(t Transform, cursor geometry.Point2D, newScale, imageW, imageH, viewportW, viewportH float64) Transform {
	pivot := t.ToImage(cursor)
	t.Scale = newScale
	t.TranslateX = cursor.X - pivot.X*t.Scale
	t.TranslateY = cursor.Y - pivot.Y*t.Scale
	return Clamp(t, imageW, imageH, viewportW, viewportH, false)
}

// Pan translates the view by a view-space delta, scale unchanged, then
// clamps.
func Pan(t Transform, dx, dy, imageW, imageH, viewportW, viewportH float64) Transform {
	t.TranslateX += dx
	t.TranslateY += dy
	return Clamp(t, imageW, imageH, viewportW, viewportH, false)
}
