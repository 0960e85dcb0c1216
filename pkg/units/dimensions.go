package units

import "fmt"

// RealDimensions is the real-world width and height of the wall region
// being measured.
type RealDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit"`
}

// Validate checks that both extents are positive and the unit is known.
func (d RealDimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %gx%g", d.Width, d.Height)
	}
	if !d.Unit.Valid() {
		return fmt.Errorf("unknown unit %q", d.Unit)
	}
	return nil
}

// Area returns width*height in Unit².
func (d RealDimensions) Area() float64 {
	return d.Width * d.Height
}

// AspectRatio returns width/height.
func (d RealDimensions) AspectRatio() float64 {
	return d.Width / d.Height
}
