package view

import (
	"wall-meter/pkg/geometry"
)

// PinchGesture tracks a two-pointer zoom gesture. Each Update computes an
// incremental transform change against the previous sample, not against the
// gesture start; accumulating from gesture start drifts as soon as the
// pointers wander. Create one on the first two-pointer sample and discard
// it when the pointer count drops below two.
type PinchGesture struct {
	prevMidpoint geometry.Point2D
	prevDistance float64
}

// NewPinchGesture records the initial two-pointer sample.
func NewPinchGesture(p1, p2 geometry.Point2D) *PinchGesture {
	return &PinchGesture{
		prevMidpoint: midpoint(p1, p2),
		prevDistance: p1.Distance(p2),
	}
}

// Update applies the incremental scale and pan implied by the new pointer
// pair. The scale factor is the ratio of the current inter-point distance
// to the previous sample's, pivoted at the gesture midpoint. Transient
// scales below the fit scale are permitted; call Finish when the gesture
// ends to apply the final clamp.
func (g *PinchGesture) Update(t Transform, p1, p2 geometry.Point2D, imageW, imageH, viewportW, viewportH float64) Transform {
	mid := midpoint(p1, p2)
	dist := p1.Distance(p2)

	factor := 1.0
	if g.prevDistance > 0 && dist > 0 {
		factor = dist / g.prevDistance
	}

	// The image point that was under the previous midpoint follows the
	// pointers to the new midpoint.
	pivot := t.ToImage(g.prevMidpoint)
	t.Scale *= factor
	t.TranslateX = mid.X - pivot.X*t.Scale
	t.TranslateY = mid.Y - pivot.Y*t.Scale

	g.prevMidpoint = mid
	g.prevDistance = dist

	return Clamp(t, imageW, imageH, viewportW, viewportH, true)
}

// Finish applies the end-of-gesture clamp that forbids below-fit scales.
func (g *PinchGesture) Finish(t Transform, imageW, imageH, viewportW, viewportH float64) Transform {
	return Clamp(t, imageW, imageH, viewportW, viewportH, false)
}

func midpoint(p1, p2 geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
}
