// Package formation generates and follows the parametric paths enemies fly along.
package formation

import (
	"math"

	"github.com/tomz197/galaga/internal/physics"
)

// Point is a 2D coordinate or an (x, y) pair of radii.
type Point struct {
	X, Y float64
}

// Formation describes the elliptical path an enemy follows.
// Everything but Angle is fixed once the formation is made.
type Formation struct {
	Start  Point   // Where the enemy spawns
	Pivot  Point   // Center of the ellipse
	Radius Point   // Horizontal and vertical radius
	Speed  float64 // Units per second, also scales angular advance
	Angle  float64 // Current angle on the ellipse in radians
}

// Direction returns -1 for formations starting left of center and 1 otherwise.
// Left-spawned enemies orbit clockwise, right-spawned counter-clockwise.
func (f *Formation) Direction() float64 {
	if f.Start.X < 0 {
		return -1
	}
	return 1
}

// Target returns the point on the path at the current angle.
func (f *Formation) Target() Point {
	return Point{
		X: f.Radius.X*math.Cos(f.Angle) + f.Pivot.X,
		Y: f.Radius.Y*math.Sin(f.Angle) + f.Pivot.Y,
	}
}

// AngleStep returns how far the angle advances in one step of dt seconds.
func (f *Formation) AngleStep(dt float64) float64 {
	return f.Direction() * f.Speed * dt * math.Min(f.Radius.X, f.Radius.X*math.Pi/2)
}

// Threshold returns the distance to the target below which the angle advances.
func (f *Formation) Threshold(dt float64) float64 {
	return dt * f.Speed * f.Speed / 20
}

// Step moves (x, y) toward the current target by at most dt*Speed and returns
// the new position. Each axis is clamped on its own so the step never passes
// the target on that axis. The angle only advances once the starting point is
// already within Threshold of the target.
func (f *Formation) Step(x, y, dt float64) (float64, float64) {
	maxDistance := dt * f.Speed
	dst := f.Target()

	dx := x - dst.X
	dy := y - dst.Y
	distance := physics.Distance(x, y, dst.X, dst.Y)

	ratio := 0.0
	if distance != 0 {
		ratio = maxDistance / distance
	}

	nx := x - dx*ratio
	if dx > 0 {
		nx = math.Max(nx, dst.X)
	} else {
		nx = math.Min(nx, dst.X)
	}
	ny := y - dy*ratio
	if dy > 0 {
		ny = math.Max(ny, dst.Y)
	} else {
		ny = math.Min(ny, dst.Y)
	}

	if distance < f.Threshold(dt) {
		f.Angle += f.AngleStep(dt)
	}

	return nx, ny
}
