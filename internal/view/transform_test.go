package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wall-meter/pkg/geometry"
)

func TestRoundTrip(t *testing.T) {
	transforms := []Transform{
		Identity(),
		{Scale: 2.5, TranslateX: -120, TranslateY: 48},
		{Scale: 0.33, TranslateX: 7.1, TranslateY: -3.9},
	}
	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 123.4, Y: 567.8},
		{X: -50, Y: 1000},
	}

	for _, tr := range transforms {
		for _, p := range points {
			got := tr.ToView(tr.ToImage(p))
			require.InDelta(t, p.X, got.X, 1e-9)
			require.InDelta(t, p.Y, got.Y, 1e-9)

			got = tr.ToImage(tr.ToView(p))
			require.InDelta(t, p.X, got.X, 1e-9)
			require.InDelta(t, p.Y, got.Y, 1e-9)
		}
	}
}

func TestFitScale(t *testing.T) {
	// 800x600 image into 400x400 viewport: width is the limiting axis.
	require.InDelta(t, 0.5, FitScale(800, 600, 400, 400), 1e-9)
	// Tall image: height limits.
	require.InDelta(t, 0.25, FitScale(600, 1600, 400, 400), 1e-9)
}

func TestClampScaleBounds(t *testing.T) {
	tr := Transform{Scale: 100}
	tr = Clamp(tr, 800, 600, 400, 400, false)
	require.InDelta(t, MaxScale, tr.Scale, 1e-9)

	tr = Transform{Scale: 0.01}
	tr = Clamp(tr, 800, 600, 400, 400, false)
	require.InDelta(t, 0.5, tr.Scale, 1e-9) // fit scale

	// Transient below-fit scales allowed during gestures.
	tr = Clamp(Transform{Scale: 0.2}, 800, 600, 400, 400, true)
	require.InDelta(t, 0.2, tr.Scale, 1e-9)
}

func TestClampTranslationOversized(t *testing.T) {
	// Scaled image 1600x1200 in 400x400 viewport: translation must keep
	// the image covering the viewport.
	tr := Transform{Scale: 2, TranslateX: 50, TranslateY: -5000}
	tr = Clamp(tr, 800, 600, 400, 400, false)
	require.InDelta(t, 0, tr.TranslateX, 1e-9)
	require.InDelta(t, 400-1200.0, tr.TranslateY, 1e-9)
}

func TestClampTranslationUndersized(t *testing.T) {
	// 100x100 image at fit-irrelevant scale 1 in a 400x400 viewport:
	// centered position is 150,150 with a small slack either way.
	tr := Clamp(Transform{Scale: 1, TranslateX: 1000, TranslateY: -1000}, 100, 100, 400, 400, true)
	require.InDelta(t, 190, tr.TranslateX, 1e-9)
	require.InDelta(t, 110, tr.TranslateY, 1e-9)
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	tr := Centered(800, 600, 400, 400)
	cursor := geometry.Point2D{X: 200, Y: 130}
	before := tr.ToImage(cursor)

	tr2 := ZoomAt(tr, cursor, tr.Scale*2, 800, 600, 400, 400)
	after := tr2.ToImage(cursor)

	require.InDelta(t, before.X, after.X, 1e-9)
	require.InDelta(t, before.Y, after.Y, 1e-9)
	require.InDelta(t, tr.Scale*2, tr2.Scale, 1e-9)
}

func TestPanShiftsWithinBounds(t *testing.T) {
	tr := Transform{Scale: 2, TranslateX: -100, TranslateY: -100}
	tr = Pan(tr, -40, 25, 800, 600, 400, 400)
	require.InDelta(t, -140, tr.TranslateX, 1e-9)
	require.InDelta(t, -75, tr.TranslateY, 1e-9)
}

func TestPinchIncremental(t *testing.T) {
	tr := Centered(800, 600, 400, 400)

	a := geometry.Point2D{X: 150, Y: 200}
	b := geometry.Point2D{X: 250, Y: 200}
	g := NewPinchGesture(a, b)

	// Spread the pointers to twice the distance: scale doubles.
	a2 := geometry.Point2D{X: 100, Y: 200}
	b2 := geometry.Point2D{X: 300, Y: 200}
	tr2 := g.Update(tr, a2, b2, 800, 600, 400, 400)
	require.InDelta(t, tr.Scale*2, tr2.Scale, 1e-9)

	// A second identical sample is a no-op: updates are incremental
	// against the previous sample, not the gesture start.
	tr3 := g.Update(tr2, a2, b2, 800, 600, 400, 400)
	require.InDelta(t, tr2.Scale, tr3.Scale, 1e-9)
	require.InDelta(t, tr2.TranslateX, tr3.TranslateX, 1e-9)
	require.InDelta(t, tr2.TranslateY, tr3.TranslateY, 1e-9)
}

func TestPinchFinishClampsToFit(t *testing.T) {
	tr := Centered(800, 600, 400, 400)

	a := geometry.Point2D{X: 100, Y: 200}
	b := geometry.Point2D{X: 300, Y: 200}
	g := NewPinchGesture(a, b)

	// Pinch in hard: transient scale dips below fit.
	a2 := geometry.Point2D{X: 190, Y: 200}
	b2 := geometry.Point2D{X: 210, Y: 200}
	tr2 := g.Update(tr, a2, b2, 800, 600, 400, 400)
	require.Less(t, tr2.Scale, FitScale(800, 600, 400, 400))

	// Gesture end snaps back to the fit floor.
	tr3 := g.Finish(tr2, 800, 600, 400, 400)
	require.InDelta(t, FitScale(800, 600, 400, 400), tr3.Scale, 1e-9)
}
