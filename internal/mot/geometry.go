package mot

import "math"

// Point is a position in frame pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box in frame pixel coordinates.
type Rect struct {
	X float64 // Left edge
	Y float64 // Top edge
	W float64
	H float64
}

// Center returns the box center.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns the box area; zero for degenerate boxes.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the box has no positive extent.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether pt lies inside the box.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X < r.X+r.W && pt.Y >= r.Y && pt.Y < r.Y+r.H
}

// Intersect returns the overlapping box of r and o. The result is Empty
// when the boxes do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.X+r.W, o.X+o.W)
	y2 := math.Min(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// IoU returns the intersection-over-union of two boxes in [0, 1].
// Degenerate boxes yield 0, never NaN.
func IoU(a, b Rect) float64 {
	inter := a.Intersect(b).Area()
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// RotatedRect is an oriented box: center, full size and rotation angle.
type RotatedRect struct {
	Center   Point
	W        float64
	H        float64
	AngleRad float64
}

// SearchEllipse is a track's predicted search area: the region around the
// expected position used to gate and scale the geometric metrics.
// SemiX and SemiY are the semi-axis lengths; AngleRad orients the major
// axis along the predicted motion direction.
type SearchEllipse struct {
	Center   Point
	SemiX    float64
	SemiY    float64
	AngleRad float64
}

// NormDistance returns the normalized distance of pt from the ellipse:
// < 1 inside, exactly 1 on the boundary, > 1 outside, linear in distance
// from the center. Degenerate ellipses (zero semi-axis) map every point
// except the center itself to +Inf.
func (e SearchEllipse) NormDistance(pt Point) float64 {
	dx := pt.X - e.Center.X
	dy := pt.Y - e.Center.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	// Rotate into the ellipse frame.
	sin, cos := math.Sincos(e.AngleRad)
	u := cos*dx + sin*dy
	v := -sin*dx + cos*dy
	if e.SemiX <= 0 || e.SemiY <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt((u/e.SemiX)*(u/e.SemiX) + (v/e.SemiY)*(v/e.SemiY))
}
