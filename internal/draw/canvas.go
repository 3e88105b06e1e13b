package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Shapes are given in logical coordinates and scaled to the
// terminal cells the canvas covers.
type Canvas struct {
	cols, rows int
	subRows    int    // rows * 2
	pixels     []bool // [y*cols + x]
	shown      []rune // cell contents currently on screen, for diffing
	dirty      bool   // redraw every cell on the next Render

	logicalW, logicalH float64
	scaleX, scaleY     float64

	offsetCol, offsetRow int

	scaled []Point
	xs     []float64
	points []Point
	line   []byte
}

// NewScaledCanvas creates a canvas of cols x rows terminal cells that maps a
// logical space of logicalW x logicalH onto them.
func NewScaledCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal area while keeping the logical size. A change
// of dimensions forces a full redraw.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows, c.subRows = cols, rows, rows*2
		c.pixels = make([]bool, c.subRows*cols)
		c.shown = make([]rune, rows*cols)
		c.dirty = true
	}
	c.scaleX = float64(cols) / c.logicalW
	c.scaleY = float64(c.subRows) / c.logicalH
}

// SetOffset moves the canvas origin to (col+1, row+1) on the terminal.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.dirty = true
	}
	c.offsetCol, c.offsetRow = col, row
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared underneath the canvas.
func (c *Canvas) ForceRedraw() {
	c.dirty = true
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) Cols() int      { return c.cols }
func (c *Canvas) Rows() int      { return c.rows }
func (c *Canvas) OffsetCol() int { return c.offsetCol }
func (c *Canvas) OffsetRow() int { return c.offsetRow }

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		c.pixels[y*c.cols+x] = true
	}
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Set sets the pixel under a logical point.
func (c *Canvas) Set(p Point) {
	c.setPixel(c.toPixel(p))
}

// DrawLine draws a line with Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillRect fills the axis-aligned rectangle between two logical corners.
// Any rectangle that covers part of a pixel sets at least that pixel.
func (c *Canvas) FillRect(minX, minY, maxX, maxY float64) {
	x0 := int(math.Floor(minX * c.scaleX))
	x1 := max(int(math.Ceil(maxX*c.scaleX))-1, x0)
	y0 := int(math.Floor(minY * c.scaleY))
	y1 := max(int(math.Ceil(maxY*c.scaleY))-1, y0)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.setPixel(x, y)
		}
	}
}

// DrawPolygon draws a closed polygon, filling it with a scanline pass when
// filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

func (c *Canvas) fillPolygon(points []Point) {
	c.scaled = c.scaled[:0]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		s := Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		c.scaled = append(c.scaled, s)
		minY, maxY = math.Min(minY, s.Y), math.Max(maxY, s.Y)
	}

	n := len(c.scaled)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5

		c.xs = c.xs[:0]
		for i := 0; i < n; i++ {
			p1, p2 := c.scaled[i], c.scaled[(i+1)%n]
			if (p1.Y <= scanY) != (p2.Y <= scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				c.xs = append(c.xs, p1.X+t*(p2.X-p1.X))
			}
		}
		slices.Sort(c.xs)

		for i := 0; i+1 < len(c.xs); i += 2 {
			for x := int(math.Ceil(c.xs[i])); x <= int(math.Floor(c.xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.points) < n {
		c.points = make([]Point, n)
	}
	return c.points[:n]
}

// cell returns the half-block rune for a terminal cell.
func (c *Canvas) cell(col, row int) rune {
	top := c.pixels[row*2*c.cols+col]
	bottom := c.pixels[(row*2+1)*c.cols+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	c.line = c.line[:0]
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			ch := c.cell(col, row)
			i := row*c.cols + col
			if !c.dirty && c.shown[i] == ch {
				continue
			}
			c.shown[i] = ch
			c.line = append(c.line, "\033["...)
			c.line = strconv.AppendInt(c.line, int64(row+1+c.offsetRow), 10)
			c.line = append(c.line, ';')
			c.line = strconv.AppendInt(c.line, int64(col+1+c.offsetCol), 10)
			c.line = append(c.line, 'H')
			c.line = append(c.line, string(ch)...)
		}
	}
	c.dirty = false
	_, err := w.Write(c.line)
	return err
}

// RenderBorder frames the canvas when the terminal has room around it.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasSides := c.offsetCol >= 1
	hasTopBottom := c.offsetRow >= 1
	left, right := c.offsetCol, c.offsetCol+c.cols+1
	top, bottom := c.offsetRow, c.offsetRow+c.rows+1

	bar := strings.Repeat("─", c.cols)
	if hasTopBottom {
		if hasSides {
			cw.WriteAbs(left, top, "┌"+bar+"┐")
			cw.WriteAbs(left, bottom, "└"+bar+"┘")
		} else {
			cw.WriteAbs(left+1, top, bar)
			cw.WriteAbs(left+1, bottom, bar)
		}
	}
	if hasSides {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.rows; row++ {
			cw.WriteAbs(left, row, "│")
			cw.WriteAbs(right, row, "│")
		}
	}
}

// LogicalToCell converts a logical point to a 1-based cell position relative
// to the canvas origin.
func (c *Canvas) LogicalToCell(p Point) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1, py/2 + 1
}
