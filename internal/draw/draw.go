// Package draw renders the game onto an ANSI terminal using half-block cells.
package draw

// Point is a 2D coordinate in canvas space: origin top-left, y down.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
