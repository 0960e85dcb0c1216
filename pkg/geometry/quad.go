package geometry

import "math"

// Quadrilateral is a four-corner region in image pixel space, ordered
// top-left, top-right, bottom-right, bottom-left. The ordering decides
// which edges map to width and which to height during rectification.
type Quadrilateral struct {
	TopLeft     Point2D `json:"top_left"`
	TopRight    Point2D `json:"top_right"`
	BottomRight Point2D `json:"bottom_right"`
	BottomLeft  Point2D `json:"bottom_left"`
}

// NewQuadrilateral builds a quadrilateral from four corner points in
// TL, TR, BR, BL order.
func NewQuadrilateral(tl, tr, br, bl Point2D) Quadrilateral {
	return Quadrilateral{TopLeft: tl, TopRight: tr, BottomRight: br, BottomLeft: bl}
}

// Points returns the corners in TL, TR, BR, BL order.
func (q Quadrilateral) Points() [4]Point2D {
	return [4]Point2D{q.TopLeft, q.TopRight, q.BottomRight, q.BottomLeft}
}

// Area returns the polygon area via the shoelace formula. Self-intersecting
// ("bow-tie") corner orderings partially cancel and come out near zero,
// which the degeneracy check relies on.
func (q Quadrilateral) Area() float64 {
	pts := q.Points()
	var sum float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// IsDegenerate reports whether the quadrilateral cannot define a
// perspective mapping: any three corners collinear, duplicate corners,
// or near-zero enclosed area.
func (q Quadrilateral) IsDegenerate() bool {
	pts := q.Points()

	// Any coincident pair collapses an edge.
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if pts[i].Distance(pts[j]) < 1e-6 {
				return true
			}
		}
	}

	// Any three collinear corners make the homography solve singular.
	for i := 0; i < 4; i++ {
		a := pts[i]
		b := pts[(i+1)%4]
		c := pts[(i+2)%4]
		if math.Abs(crossProduct(a, b, c)) < 1e-6 {
			return true
		}
	}

	return q.Area() < 1.0
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
