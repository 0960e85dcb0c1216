package rectify

import (
	"errors"
	"fmt"
	"image"
	"math"

	"wall-meter/pkg/geometry"
	"wall-meter/pkg/units"
)

// Sentinel errors surfaced to the caller before any mask editing session
// can start. Neither is retryable: the same inputs fail the same way.
var (
	// ErrDegenerateGeometry means the four corners are collinear or
	// enclose (near-)zero area, so no homography exists.
	ErrDegenerateGeometry = errors.New("degenerate corner geometry")

	// ErrInvalidDimensions means a non-positive real-world width or
	// height was supplied.
	ErrInvalidDimensions = errors.New("invalid real-world dimensions")
)

// OutputHeight is the fixed pixel height of rectified images; width is
// derived from the real-world aspect ratio.
const OutputHeight = 800

// Result is a rectified, fronto-parallel view of the wall region together
// with the real-world dimensions it represents.
type Result struct {
	Image image.Image
	Real  units.RealDimensions
}

// Rectify warps the quadrilateral region of src into an axis-aligned
// rectangle whose aspect ratio equals real.Width:real.Height. The function
// is pure: identical inputs produce identical output.
func Rectify(src image.Image, quad geometry.Quadrilateral, real units.RealDimensions) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("rectify: nil source image")
	}
	if real.Width <= 0 || real.Height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g %s", ErrInvalidDimensions, real.Width, real.Height, real.Unit)
	}
	if !real.Unit.Valid() {
		return nil, fmt.Errorf("%w: unknown unit %q", ErrInvalidDimensions, real.Unit)
	}
	if quad.IsDegenerate() {
		return nil, fmt.Errorf("%w: corners %v", ErrDegenerateGeometry, quad.Points())
	}

	dstW, dstH := OutputSize(real)

	// Solve destination->source so the warp can walk output pixels and
	// sample the photo through the inverse mapping.
	dstCorners := [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: float64(dstW), Y: 0},
		{X: float64(dstW), Y: float64(dstH)},
		{X: 0, Y: float64(dstH)},
	}
	H, err := SolveHomography(dstCorners, quad.Points())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}

	out := warpPerspective(src, H, dstW, dstH)
	return &Result{Image: out, Real: real}, nil
}

// OutputSize returns the pixel resolution of the rectified image for the
// given real dimensions: fixed height, width from the aspect ratio.
func OutputSize(real units.RealDimensions) (w, h int) {
	h = OutputHeight
	w = int(math.Round(float64(h) * real.AspectRatio()))
	if w < 1 {
		w = 1
	}
	return w, h
}
