// Package physics provides spatial primitives, collision detection and distance utilities.
package physics

import "math"

// Size is the full width and height of a bounding box.
type Size struct {
	W, H float64
}

// Half returns the half extents of the size.
func (s Size) Half() (hw, hh float64) {
	return s.W / 2, s.H / 2
}

// Scaled returns the size multiplied per axis.
func (s Size) Scaled(sx, sy float64) Size {
	return Size{W: s.W * sx, H: s.H * sy}
}

// Box is an axis-aligned bounding box centered at (X, Y).
type Box struct {
	X, Y float64
	Size
}

// NewBox creates a box centered at (x, y) with the given size.
func NewBox(x, y float64, size Size) Box {
	return Box{X: x, Y: y, Size: size}
}

// Rect is an axis-aligned rectangle given by its corners.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Bounds returns the corners of the box.
func (b Box) Bounds() Rect {
	hw, hh := b.Half()
	return Rect{
		MinX: b.X - hw,
		MinY: b.Y - hh,
		MaxX: b.X + hw,
		MaxY: b.Y + hh,
	}
}

// Overlap reports whether two boxes intersect and returns the intersection.
// Touching edges do not count as overlap.
func Overlap(a, b Box) (Rect, bool) {
	ra, rb := a.Bounds(), b.Bounds()
	if ra.MinX >= rb.MaxX || ra.MaxX <= rb.MinX || ra.MinY >= rb.MaxY || ra.MaxY <= rb.MinY {
		return Rect{}, false
	}
	return Rect{
		MinX: math.Max(ra.MinX, rb.MinX),
		MinY: math.Max(ra.MinY, rb.MinY),
		MaxX: math.Min(ra.MaxX, rb.MaxX),
		MaxY: math.Min(ra.MaxY, rb.MaxY),
	}, true
}

// Collide is Overlap without the intersection region.
func Collide(a, b Box) bool {
	_, ok := Overlap(a, b)
	return ok
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// OutsideBounds reports whether (x, y) lies beyond the half extents plus margin
// on either axis. The region is centered at the origin.
func OutsideBounds(x, y, halfW, halfH, margin float64) bool {
	return x > halfW+margin || x < -halfW-margin ||
		y > halfH+margin || y < -halfH-margin
}
