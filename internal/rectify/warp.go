package rectify

import (
	"image"
	"image/color"
)

// warpPerspective resamples src through the destination->source homography
// with bilinear interpolation. Destination pixels whose source position
// falls outside the photo come out black.
func warpPerspective(src image.Image, H Homography, dstW, dstH int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	sb := src.Bounds()

	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			// Sample at the pixel center for symmetric coverage.
			sx, sy, ok := H.Apply(float64(x)+0.5, float64(y)+0.5)
			if !ok {
				continue
			}
			c := bilinearSample(src, sx+float64(sb.Min.X), sy+float64(sb.Min.Y))
			out.Set(x, y, c)
		}
	}
	return out
}

// bilinearSample interpolates the four pixels surrounding (x, y).
func bilinearSample(src image.Image, x, y float64) color.Color {
	b := src.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) ||
		x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.RGBA{0, 0, 0, 255}
	}

	x0 := int(x)
	y0 := int(y)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := toFloatRGBA(src.At(x0, y0))
	c10 := toFloatRGBA(src.At(x1, y0))
	c01 := toFloatRGBA(src.At(x0, y1))
	c11 := toFloatRGBA(src.At(x1, y1))

	r := lerp(lerp(c00.r, c10.r, fx), lerp(c01.r, c11.r, fx), fy)
	g := lerp(lerp(c00.g, c10.g, fx), lerp(c01.g, c11.g, fx), fy)
	bl := lerp(lerp(c00.b, c10.b, fx), lerp(c01.b, c11.b, fx), fy)
	a := lerp(lerp(c00.a, c10.a, fx), lerp(c01.a, c11.a, fx), fy)

	return color.RGBA{
		R: uint8(r + 0.5),
		G: uint8(g + 0.5),
		B: uint8(bl + 0.5),
		A: uint8(a + 0.5),
	}
}

type floatRGBA struct{ r, g, b, a float64 }

func toFloatRGBA(c color.Color) floatRGBA {
	r, g, b, a := c.RGBA()
	return floatRGBA{
		r: float64(r >> 8),
		g: float64(g >> 8),
		b: float64(b >> 8),
		a: float64(a >> 8),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
