package canvas

import (
	"image"
	"image/color"
)

// drawLine draws a thick line with Bresenham stepping, clipped to the
// output bounds.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.Set(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawDashedRect draws a dashed rectangle outline (alternate pixel runs).
func drawDashedRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := output.Bounds()

	set := func(x, y int) {
		if (x+y)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x, y, col)
		}
	}

	for x := x1; x <= x2; x++ {
		set(x, y1)
		set(x, y2)
	}
	for y := y1; y <= y2; y++ {
		set(x1, y)
		set(x2, y)
	}
}

// drawCrossMarker draws a crosshair marker centered at (cx, cy).
func drawCrossMarker(output *image.RGBA, cx, cy, arm int, col color.RGBA) {
	drawLine(output, cx-arm, cy, cx+arm, cy, col, 1)
	drawLine(output, cx, cy-arm, cx, cy+arm, col, 1)
}

// drawCircleOutline draws an unfilled circle using the midpoint algorithm.
func drawCircleOutline(output *image.RGBA, cx, cy, radius int, col color.RGBA) {
	bounds := output.Bounds()
	set := func(x, y int) {
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x, y, col)
		}
	}

	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		set(cx+x, cy+y)
		set(cx-x, cy+y)
		set(cx+x, cy-y)
		set(cx-x, cy-y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx+y, cy-x)
		set(cx-y, cy-x)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}
