package draw

import (
	"math"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/entity"
	"github.com/tomz197/galaga/internal/sim"
)

// explosionSpikes is the number of points on an explosion star.
const explosionSpikes = 8

// Scene draws simulation sprites onto a canvas whose logical space is the
// world window. World coordinates have the origin at the window center and
// y pointing up.
type Scene struct {
	canvas *Canvas
	bounds sim.Bounds
}

// NewScene binds a canvas to the world bounds.
func NewScene(canvas *Canvas, bounds sim.Bounds) *Scene {
	return &Scene{canvas: canvas, bounds: bounds}
}

// ToCanvas converts a world position to canvas space.
func (s *Scene) ToCanvas(x, y float64) Point {
	return Point{X: x + s.bounds.Width/2, Y: s.bounds.Height/2 - y}
}

// Draw draws every sprite in order, so later sprites cover earlier ones.
func (s *Scene) Draw(sprites []sim.Sprite) {
	for _, sp := range sprites {
		switch sp.Role {
		case entity.RolePlayer:
			s.drawPlayer(sp)
		case entity.RoleEnemy:
			s.drawEnemy(sp)
		case entity.RoleLaserFromPlayer, entity.RoleLaserFromEnemy:
			s.drawLaser(sp)
		case entity.RoleExplosion:
			s.drawExplosion(sp)
		}
	}
}

// shape draws a filled polygon given as offsets from the sprite center,
// in units of the sprite's half extents.
func (s *Scene) shape(sp sim.Sprite, offsets ...[2]float64) {
	hw, hh := sp.W/2, sp.H/2
	pts := s.canvas.BorrowPoints(len(offsets))
	for i, o := range offsets {
		pts[i] = s.ToCanvas(sp.X+o[0]*hw, sp.Y+o[1]*hh)
	}
	s.canvas.DrawPolygon(pts, true)
}

// drawPlayer draws an upward arrowhead.
func (s *Scene) drawPlayer(sp sim.Sprite) {
	s.shape(sp,
		[2]float64{0, 1},
		[2]float64{1, -1},
		[2]float64{0, -0.4},
		[2]float64{-1, -1},
	)
}

// drawEnemy draws a downward chevron with swept wings.
func (s *Scene) drawEnemy(sp sim.Sprite) {
	s.shape(sp,
		[2]float64{-1, 1},
		[2]float64{0, 0.3},
		[2]float64{1, 1},
		[2]float64{0.4, -0.2},
		[2]float64{0, -1},
		[2]float64{-0.4, -0.2},
	)
}

func (s *Scene) drawLaser(sp sim.Sprite) {
	tl := s.ToCanvas(sp.X-sp.W/2, sp.Y+sp.H/2)
	br := s.ToCanvas(sp.X+sp.W/2, sp.Y-sp.H/2)
	s.canvas.FillRect(tl.X, tl.Y, br.X, br.Y)
}

// drawExplosion draws a star that swells and then collapses over the
// animation, turning a little each frame.
func (s *Scene) drawExplosion(sp sim.Sprite) {
	progress := float64(sp.Frame+1) / float64(config.ExplosionLen+1)
	outer := ExplosionRadius(sp.W/2, sp.Frame)
	if outer <= 0 {
		return
	}
	inner := outer * 0.45
	spin := progress * math.Pi / 2

	pts := s.canvas.BorrowPoints(explosionSpikes * 2)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := spin + float64(i)*math.Pi/explosionSpikes
		pts[i] = s.ToCanvas(sp.X+r*math.Cos(a), sp.Y+r*math.Sin(a))
	}
	s.canvas.DrawPolygon(pts, frameFilled(sp.Frame))
}

// ExplosionRadius returns the outer radius of an explosion at a frame:
// zero before the first and after the last frame, peaking mid-animation.
func ExplosionRadius(maxRadius float64, frame int) float64 {
	if frame < 0 || frame >= config.ExplosionLen {
		return 0
	}
	return maxRadius * math.Sin(math.Pi*float64(frame+1)/float64(config.ExplosionLen+1))
}

// frameFilled reports whether an explosion frame is drawn solid; the tail of
// the animation is only an outline.
func frameFilled(frame int) bool {
	return frame < config.ExplosionLen*3/4
}
