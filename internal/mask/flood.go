package mask

import (
	"image"

	"wall-meter/pkg/geometry"
)

// DefaultFloodTolerance is the fixed-range color tolerance used when the
// user has not picked one.
const DefaultFloodTolerance = 40

// FloodFill grows a 4-connected region from seed over the source color
// image and marks the region covered in the mask. A pixel joins the region
// when the squared Euclidean RGB distance to the seed pixel's color is at
// most tolerance². Every pixel is visited at most once, so the operation
// is O(width*height). Seeds outside the image are ignored.
func (m *Mask) FloodFill(src *image.RGBA, seed geometry.PointInt, tolerance float64) int {
	return m.growRegion(src, seed, tolerance, -1, true)
}

// BrushSelect is flood fill bounded by a circular radius around the brush
// center: pixels join only when they are 4-connected to the center,
// within radius of it, and within the color tolerance of the center
// pixel's color. Unlike plain flood fill it can also subtract.
func (m *Mask) BrushSelect(src *image.RGBA, center geometry.PointInt, radius, tolerance float64, mode Mode) int {
	return m.growRegion(src, center, tolerance, radius, mode != ModeSubtract)
}

// growRegion is the shared breadth-first region growth. radius < 0 means
// unbounded. Comparison is always against the seed color, never the
// neighbor (fixed-range fill), so the region cannot drift across a
// gradient.
func (m *Mask) growRegion(src *image.RGBA, seed geometry.PointInt, tolerance, radius float64, covered bool) int {
	if src == nil || !m.InBounds(seed.X, seed.Y) {
		return 0
	}
	b := src.Bounds()
	if b.Dx() != m.Width || b.Dy() != m.Height {
		return 0
	}

	seedR, seedG, seedB := rgbAt(src, seed.X, seed.Y)
	tol2 := tolerance * tolerance
	r2 := radius * radius

	visited := make([]bool, m.Width*m.Height)
	queue := []geometry.PointInt{seed}
	visited[seed.Y*m.Width+seed.X] = true

	painted := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if colorDistSq(src, p.X, p.Y, seedR, seedG, seedB) > tol2 {
			continue
		}
		if m.At(p.X, p.Y) != covered {
			painted++
		}
		m.Set(p.X, p.Y, covered)

		for _, n := range [4]geometry.PointInt{
			{X: p.X + 1, Y: p.Y},
			{X: p.X - 1, Y: p.Y},
			{X: p.X, Y: p.Y + 1},
			{X: p.X, Y: p.Y - 1},
		} {
			if !m.InBounds(n.X, n.Y) {
				continue
			}
			if radius >= 0 {
				dx := float64(n.X - seed.X)
				dy := float64(n.Y - seed.Y)
				if dx*dx+dy*dy > r2 {
					continue
				}
			}
			i := n.Y*m.Width + n.X
			if !visited[i] {
				visited[i] = true
				queue = append(queue, n)
			}
		}
	}
	return painted
}

func rgbAt(src *image.RGBA, x, y int) (int, int, int) {
	b := src.Bounds()
	i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
	return int(src.Pix[i]), int(src.Pix[i+1]), int(src.Pix[i+2])
}

func colorDistSq(src *image.RGBA, x, y, r, g, b int) float64 {
	pr, pg, pb := rgbAt(src, x, y)
	dr := float64(pr - r)
	dg := float64(pg - g)
	db := float64(pb - b)
	return dr*dr + dg*dg + db*db
}
