package raster

import (
	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/vmath"
)

// QuadrantChars maps a 2x2 sub-cell bitmap to its block glyph
// Bitmap: bit0=UL, bit1=UR, bit2=LL, bit3=LR
var QuadrantChars = [16]rune{
	' ', '▘', '▝', '▀',
	'▖', '▌', '▞', '▛',
	'▗', '▚', '▐', '▜',
	'▄', '▙', '▟', '█',
}

// HalfChars maps a vertical half bitmap (bit0=top, bit1=bottom) to its glyph
var HalfChars = [4]rune{' ', '▀', '▄', '█'}

// Mode selects the sub-cell resolution
type Mode uint8

const (
	// ModeQuadrant traces at 2x2 per cell
	ModeQuadrant Mode = iota
	// ModeHalf traces at 1x2 per cell for terminals without quadrant glyphs
	ModeHalf
)

// Cell is one grid cell touched by the bolt
type Cell struct {
	X, Y int
	Rune rune

	// Energy is the highest segment energy passing through the cell
	Energy float64
}

// Canvas accumulates sub-cell hits for a cols x rows grid
type Canvas struct {
	cols, rows int
	mode       Mode
	bits       []uint8
	energy     []float64
}

func NewCanvas(cols, rows int, mode Mode) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Canvas{
		cols:   cols,
		rows:   rows,
		mode:   mode,
		bits:   make([]uint8, cols*rows),
		energy: make([]float64, cols*rows),
	}
}

// Projection returns a projection of the tree bounds onto the canvas sub-cell grid
func (c *Canvas) Projection(tree *lightning.Tree, margin float64) Projection {
	lo, hi := tree.Bounds()
	return c.Fit(lo, hi, margin)
}

// Fit projects a fixed world box onto the canvas, for views that must not follow the tree
func (c *Canvas) Fit(lo, hi vmath.Vec3F, margin float64) Projection {
	w, h := c.subSize()
	// Terminal cells are about twice as tall as wide
	aspect := 2.0
	if c.mode == ModeHalf {
		aspect = 1
	}
	return Fit(lo, hi, w, h, margin, aspect)
}

func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) subSize() (w, h int) {
	if c.mode == ModeHalf {
		return c.cols, c.rows * 2
	}
	return c.cols * 2, c.rows * 2
}

// Reset clears every hit
func (c *Canvas) Reset() {
	clear(c.bits)
	clear(c.energy)
}

// DrawTree traces every segment of tree through p
func (c *Canvas) DrawTree(tree *lightning.Tree, p Projection) {
	for i, s := range tree.Segments() {
		line := tree.SegmentLine(i)
		x0, y0 := p.Round(line.From)
		x1, y1 := p.Round(line.To)
		c.Line(x0, y0, x1, y1, s.Energy)
	}
}

// Line traces sub-cell coordinates with Bresenham, recording energy on every touched cell
func (c *Canvas) Line(sx0, sy0, sx1, sy1 int, energy float64) {
	dx := abs(sx1 - sx0)
	dy := abs(sy1 - sy0)
	stepX, stepY := -1, -1
	if sx0 < sx1 {
		stepX = 1
	}
	if sy0 < sy1 {
		stepY = 1
	}

	err := dx - dy
	for {
		c.plot(sx0, sy0, energy)
		if sx0 == sx1 && sy0 == sy1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			sx0 += stepX
		}
		if e2 < dx {
			err += dx
			sy0 += stepY
		}
	}
}

func (c *Canvas) plot(sx, sy int, energy float64) {
	if sx < 0 || sy < 0 {
		return
	}
	var cx, cy int
	var bit uint8
	if c.mode == ModeHalf {
		cx, cy = sx, sy/2
		bit = 1 << (sy & 1)
	} else {
		cx, cy = sx/2, sy/2
		bit = 1 << ((sy&1)*2 + sx&1)
	}
	if cx >= c.cols || cy >= c.rows {
		return
	}
	i := cy*c.cols + cx
	c.bits[i] |= bit
	c.energy[i] = max(c.energy[i], energy)
}

// Cells returns the touched cells in row-major order
func (c *Canvas) Cells() []Cell {
	var out []Cell
	for i, b := range c.bits {
		if b == 0 {
			continue
		}
		r := QuadrantChars[b&0xF]
		if c.mode == ModeHalf {
			r = HalfChars[b&0x3]
		}
		out = append(out, Cell{X: i % c.cols, Y: i / c.cols, Rune: r, Energy: c.energy[i]})
	}
	return out
}

// Quadrants is the one-call form: fit the tree to cols x rows and return its cells
func Quadrants(tree *lightning.Tree, cols, rows int) []Cell {
	c := NewCanvas(cols, rows, ModeQuadrant)
	c.DrawTree(tree, c.Projection(tree, 1))
	return c.Cells()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
