package mask

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"wall-meter/pkg/geometry"
)

func TestSetAndCoverage(t *testing.T) {
	m := New(10, 10)
	require.Equal(t, 0, m.CoveredCount())
	require.InDelta(t, 0, m.CoveragePercent(), 1e-9)

	m.Set(3, 4, true)
	m.Set(3, 4, true) // repeated set must not double-count
	require.Equal(t, 1, m.CoveredCount())
	require.True(t, m.At(3, 4))

	m.Set(3, 4, false)
	require.Equal(t, 0, m.CoveredCount())

	// Out-of-bounds writes are clipped silently.
	m.Set(-1, 0, true)
	m.Set(10, 0, true)
	m.Set(0, 10, true)
	require.Equal(t, 0, m.CoveredCount())
	require.False(t, m.At(-1, 0))
}

func TestCoveragePercentBounds(t *testing.T) {
	m := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			m.Set(x, y, true)
			p := m.CoveragePercent()
			require.GreaterOrEqual(t, p, 0.0)
			require.LessOrEqual(t, p, 100.0)
		}
	}
	require.InDelta(t, 100, m.CoveragePercent(), 1e-9)
}

func TestPaintRectangle(t *testing.T) {
	m := New(20, 20)
	m.PaintRectangle(geometry.NewRect(5, 5, 10, 10), ModeAdd)
	require.Equal(t, 100, m.CoveredCount())
	require.True(t, m.At(5, 5))
	require.True(t, m.At(14, 14))
	require.False(t, m.At(4, 5))
	require.False(t, m.At(15, 15))

	// Subtract a sub-rectangle.
	m.PaintRectangle(geometry.NewRect(5, 5, 5, 10), ModeSubtract)
	require.Equal(t, 50, m.CoveredCount())

	// Negative-extent rectangles normalize.
	m2 := New(20, 20)
	m2.PaintRectangle(geometry.NewRect(15, 15, -10, -10), ModeAdd)
	require.Equal(t, 100, m2.CoveredCount())
}

func TestPaintRectangleClipsToBounds(t *testing.T) {
	m := New(10, 10)
	m.PaintRectangle(geometry.NewRect(-100, -100, 1000, 1000), ModeAdd)
	require.Equal(t, 100, m.CoveredCount())
}

func TestPaintStrokeRoundCaps(t *testing.T) {
	m := New(40, 40)
	m.PaintStroke([]geometry.Point2D{{X: 10, Y: 20}, {X: 30, Y: 20}}, 6, ModeAdd)

	// Shaft pixels along the segment are covered.
	for x := 10; x <= 30; x++ {
		require.True(t, m.At(x, 20), "shaft pixel %d,20", x)
	}
	// Cap extends past the endpoint by roughly the radius.
	require.True(t, m.At(8, 20))
	require.True(t, m.At(32, 20))
	// Well outside the stroke width stays clear.
	require.False(t, m.At(20, 26))
	require.False(t, m.At(20, 14))
}

func TestPaintStrokeSubtract(t *testing.T) {
	m := New(40, 40)
	m.PaintRectangle(geometry.NewRect(0, 0, 40, 40), ModeAdd)
	m.PaintStroke([]geometry.Point2D{{X: 0, Y: 20}, {X: 39, Y: 20}}, 4, ModeSubtract)
	require.False(t, m.At(20, 20))
	require.True(t, m.At(20, 5))
}

func TestBytesRoundTrip(t *testing.T) {
	m := New(16, 16)
	m.PaintRectangle(geometry.NewRect(2, 3, 7, 5), ModeAdd)

	m2 := New(16, 16)
	require.True(t, m2.SetBytes(m.Bytes()))
	require.True(t, m.Equal(m2))
	require.Equal(t, m.CoveredCount(), m2.CoveredCount())

	require.False(t, m2.SetBytes([]byte{1, 2, 3}))
}

func twoToneImage(w, h, split int, left, right color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < split {
				img.SetRGBA(x, y, left)
			} else {
				img.SetRGBA(x, y, right)
			}
		}
	}
	return img
}

func TestFloodFillRespectsTolerance(t *testing.T) {
	grey := color.RGBA{128, 128, 128, 255}
	red := color.RGBA{250, 30, 30, 255}
	img := twoToneImage(30, 20, 15, grey, red)

	m := New(30, 20)
	painted := m.FloodFill(img, geometry.PointInt{X: 5, Y: 10}, 40)
	require.Equal(t, 15*20, painted)

	// The whole qualifying 4-connected region is painted, nothing else.
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			require.Equal(t, x < 15, m.At(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestFloodFillStopsAtBarrier(t *testing.T) {
	grey := color.RGBA{128, 128, 128, 255}
	black := color.RGBA{0, 0, 0, 255}
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x == 10 {
				img.SetRGBA(x, y, black)
			} else {
				img.SetRGBA(x, y, grey)
			}
		}
	}

	m := New(20, 20)
	m.FloodFill(img, geometry.PointInt{X: 3, Y: 3}, 40)

	// Left of the barrier filled, barrier and right side untouched even
	// though the right side matches the seed color.
	require.True(t, m.At(9, 10))
	require.False(t, m.At(10, 10))
	require.False(t, m.At(11, 10))
}

func TestFloodFillOutOfBoundsSeed(t *testing.T) {
	img := twoToneImage(10, 10, 10, color.RGBA{1, 2, 3, 255}, color.RGBA{})
	m := New(10, 10)
	require.Equal(t, 0, m.FloodFill(img, geometry.PointInt{X: -1, Y: 5}, 40))
	require.Equal(t, 0, m.FloodFill(img, geometry.PointInt{X: 5, Y: 10}, 40))
	require.Equal(t, 0, m.CoveredCount())
}

func TestBrushSelectBoundedByRadius(t *testing.T) {
	grey := color.RGBA{100, 100, 100, 255}
	img := twoToneImage(50, 50, 50, grey, grey)

	m := New(50, 50)
	m.BrushSelect(img, geometry.PointInt{X: 25, Y: 25}, 8, 40, ModeAdd)

	// Everything painted sits within the radius even though the whole
	// image matches the center color.
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if m.At(x, y) {
				dx := float64(x - 25)
				dy := float64(y - 25)
				require.LessOrEqual(t, dx*dx+dy*dy, 64.0+1e-9, "pixel %d,%d outside radius", x, y)
			}
		}
	}
	require.True(t, m.At(25, 25))
	require.True(t, m.At(30, 25))
	require.False(t, m.At(40, 25))
}

func TestBrushSelectSubtract(t *testing.T) {
	grey := color.RGBA{100, 100, 100, 255}
	img := twoToneImage(30, 30, 30, grey, grey)

	m := New(30, 30)
	m.PaintRectangle(geometry.NewRect(0, 0, 30, 30), ModeAdd)
	m.BrushSelect(img, geometry.PointInt{X: 15, Y: 15}, 5, 40, ModeSubtract)
	require.False(t, m.At(15, 15))
	require.True(t, m.At(0, 0))
}
