package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"wall-meter/internal/mask"
	"wall-meter/pkg/geometry"
)

func grayImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{100, 100, 100, 255})
		}
	}
	return img
}

func TestOverlayBlendsCoveredPixels(t *testing.T) {
	src := grayImage(10, 10)
	m := mask.New(10, 10)
	m.PaintRectangle(geometry.NewRect(2, 2, 4, 4), mask.ModeAdd)

	out := Overlay(src, m)

	// Covered: 0.7*100 + 0.3*highlight channel.
	covered := out.RGBAAt(3, 3)
	require.Equal(t, uint8(70), covered.R)
	expectedG := 0.7*100 + 0.3*255
	require.Equal(t, uint8(expectedG), covered.G)
	require.Equal(t, uint8(70), covered.B)
	require.Equal(t, uint8(255), covered.A)

	// Uncovered pixels pass through.
	require.Equal(t, color.RGBA{100, 100, 100, 255}, out.RGBAAt(0, 0))

	// Source is untouched.
	require.Equal(t, color.RGBA{100, 100, 100, 255}, src.RGBAAt(3, 3))
}

func TestOverlayMismatchedMask(t *testing.T) {
	src := grayImage(10, 10)
	out := Overlay(src, mask.New(5, 5))
	require.Equal(t, color.RGBA{100, 100, 100, 255}, out.RGBAAt(3, 3))
}

func TestCutoutAlpha(t *testing.T) {
	src := grayImage(10, 10)
	m := mask.New(10, 10)
	m.Set(4, 4, true)

	out := Cutout(src, m)
	require.Equal(t, color.RGBA{100, 100, 100, 255}, out.RGBAAt(4, 4))
	require.Equal(t, color.RGBA{}, out.RGBAAt(0, 0))
}
