package raster

import (
	"github.com/lixenwraith/lightning/vmath"
)

// Projection maps tree space onto a width x height grid
// X grows right, Y grows up in tree space and down on the grid; Z is dropped
type Projection struct {
	Width, Height int

	scaleX, scaleY float64
	offX, offY     float64
}

// Fit returns the projection that centers the box lo..hi inside the grid with margin units
// on every side. aspect is the height of one grid unit divided by its width; the box keeps its
// proportions on screen when aspect matches the display (2 for terminal sub-cells, 1 for pixels)
func Fit(lo, hi vmath.Vec3F, width, height int, margin, aspect float64) Projection {
	p := Projection{Width: width, Height: height}
	if aspect <= 0 || !vmath.IsFinite(aspect) {
		aspect = 1
	}

	availW := max(float64(width)-1-2*margin, 0)
	availH := max(float64(height)-1-2*margin, 0)
	spanX := hi.X - lo.X
	spanY := hi.Y - lo.Y

	// scale is grid units across per tree unit horizontally
	scale := 0.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = min(availW/spanX, availH*aspect/spanY)
	case spanX > 0:
		scale = availW / spanX
	case spanY > 0:
		scale = availH * aspect / spanY
	}

	p.scaleX = scale
	p.scaleY = scale / aspect
	p.offX = (float64(width-1) - spanX*p.scaleX) / 2
	p.offY = (float64(height-1) - spanY*p.scaleY) / 2
	p.offX -= lo.X * p.scaleX
	p.offY += hi.Y * p.scaleY
	return p
}

// Apply returns the grid coordinates of v
func (p Projection) Apply(v vmath.Vec3F) (x, y float64) {
	return v.X*p.scaleX + p.offX, p.offY - v.Y*p.scaleY
}

// Round returns the nearest grid point of v
func (p Projection) Round(v vmath.Vec3F) (x, y int) {
	fx, fy := p.Apply(v)
	return roundInt(fx), roundInt(fy)
}

func roundInt(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
