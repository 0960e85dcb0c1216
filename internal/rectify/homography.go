// Package rectify computes the four-point perspective rectification that
// turns a skewed wall quadrilateral into a fronto-parallel image.
package rectify

import (
	"fmt"
	"math"

	"wall-meter/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform in row-major order, normalized
// so H[2][2] == 1.
type Homography [3][3]float64

// Apply maps a point through the homography, including the perspective
// divide. Returns false when the point maps to the plane at infinity.
func (h Homography) Apply(x, y float64) (float64, float64, bool) {
	w := h[2][0]*x + h[2][1]*y + h[2][2]
	if math.Abs(w) < 1e-12 {
		return 0, 0, false
	}
	sx := (h[0][0]*x + h[0][1]*y + h[0][2]) / w
	sy := (h[1][0]*x + h[1][1]*y + h[1][2]) / w
	return sx, sy, true
}

// SolveHomography computes the projective transform mapping src[i] to
// dst[i] for four point correspondences. Points are in TL, TR, BR, BL
// order. The solve sets up the standard 8x8 direct linear system with
// h33 fixed to 1 and solves it with a dense QR factorization; an
// ill-conditioned system (collinear or coincident points) surfaces as a
// solve error.
func SolveHomography(src, dst [4]geometry.Point2D) (Homography, error) {
	// Each correspondence contributes two rows:
	//   x' = (h11 x + h12 y + h13) / (h31 x + h32 y + 1)
	//   y' = (h21 x + h22 y + h23) / (h31 x + h32 y + 1)
	// linearized over unknowns h11..h32.
	A := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -x*xp)
		A.Set(i*2, 7, -y*xp)
		b.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -x*yp)
		A.Set(i*2+1, 7, -y*yp)
		b.SetVec(i*2+1, yp)
	}

	var qr mat.QR
	qr.Factorize(A)

	var h mat.VecDense
	if err := qr.SolveVecTo(&h, false, b); err != nil {
		return Homography{}, fmt.Errorf("homography solve: %w", err)
	}

	H := Homography{
		{h.AtVec(0), h.AtVec(1), h.AtVec(2)},
		{h.AtVec(3), h.AtVec(4), h.AtVec(5)},
		{h.AtVec(6), h.AtVec(7), 1},
	}

	// Reject solutions the solver produced but that do not actually map
	// the correspondences (near-singular systems can still "solve").
	for i := 0; i < 4; i++ {
		mx, my, ok := H.Apply(src[i].X, src[i].Y)
		if !ok {
			return Homography{}, fmt.Errorf("homography maps corner %d to infinity", i)
		}
		if math.Hypot(mx-dst[i].X, my-dst[i].Y) > 1e-3 {
			return Homography{}, fmt.Errorf("homography residual too large at corner %d", i)
		}
	}

	return H, nil
}
