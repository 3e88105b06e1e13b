package formation

import "math"

// Rand is the random source used to lay out new formations.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Bounds is the window the formations are laid out in, centered at the origin.
type Bounds struct {
	Width, Height float64
}

// Maker hands out formations, sharing one template between up to
// maxMembers enemies so they fly the same path.
type Maker struct {
	rng        Rand
	speed      float64
	margin     float64
	maxMembers int

	current *Formation
	members int
}

// NewMaker creates a maker. speed is the formation speed, margin keeps starts
// away from the window edges and maxMembers caps a group.
func NewMaker(rng Rand, speed, margin float64, maxMembers int) *Maker {
	if maxMembers < 1 {
		maxMembers = 1
	}
	return &Maker{
		rng:        rng,
		speed:      speed,
		margin:     margin,
		maxMembers: maxMembers,
	}
}

// Members returns how many enemies have been assigned to the current group.
func (m *Maker) Members() int {
	return m.members
}

// Make returns the formation for the next enemy. The current template is
// reused until it is full, then a new group is drawn.
func (m *Maker) Make(b Bounds) Formation {
	if m.current != nil && m.members < m.maxMembers {
		m.members++
		return *m.current
	}

	// Start somewhere inside the window
	wSpan := math.Max(b.Width/2-m.margin, 0)
	hSpan := math.Max(b.Height/2-m.margin, 0)
	start := Point{
		X: m.between(-wSpan, wSpan),
		Y: m.between(-hSpan, hSpan),
	}

	// Pivot in the upper part of the window
	pivot := Point{
		X: m.between(-b.Width/4, b.Width/4),
		Y: m.between(0, math.Max(b.Height/3-50, 0)),
	}

	f := Formation{
		Start:  start,
		Pivot:  pivot,
		Radius: Point{X: m.between(80, 150), Y: 100},
		Speed:  m.speed,
		Angle:  math.Atan2(start.Y-pivot.Y, start.X-pivot.X),
	}

	m.current = &f
	m.members = 1
	return f
}

// between returns a uniform value in [lo, hi).
func (m *Maker) between(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}
