// Package render produces the user-facing composites of a rectified image
// and its coverage mask.
package render

import (
	"image"
	"image/color"

	"wall-meter/internal/mask"
)

// OverlayColor is the highlight painted over covered pixels.
var OverlayColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// overlay blend weights: covered pixels keep 70% of the photo and take
// 30% of the highlight color.
const (
	imageWeight   = 0.7
	overlayWeight = 0.3
)

// Overlay blends the highlight color into every covered pixel and returns
// a new image. Uncovered pixels pass through untouched. A nil mask or a
// size mismatch returns a plain copy.
func Overlay(src *image.RGBA, m *mask.Mask) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	copy(out.Pix, src.Pix)

	if m == nil || m.Width != b.Dx() || m.Height != b.Dy() {
		return out
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) {
				continue
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = blend(out.Pix[i+0], OverlayColor.R)
			out.Pix[i+1] = blend(out.Pix[i+1], OverlayColor.G)
			out.Pix[i+2] = blend(out.Pix[i+2], OverlayColor.B)
			out.Pix[i+3] = 255
		}
	}
	return out
}

// Cutout returns the source image with the mask applied as the alpha
// channel: covered pixels keep their color, everything else is fully
// transparent. Used for the exported PNG of just the cemented surface.
func Cutout(src *image.RGBA, m *mask.Mask) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if m == nil || m.Width != b.Dx() || m.Height != b.Dy() {
		return out
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) {
				continue
			}
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(x, y)
			out.Pix[di+0] = src.Pix[si+0]
			out.Pix[di+1] = src.Pix[si+1]
			out.Pix[di+2] = src.Pix[si+2]
			out.Pix[di+3] = 255
		}
	}
	return out
}

func blend(base, highlight uint8) uint8 {
	return uint8(imageWeight*float64(base) + overlayWeight*float64(highlight))
}
