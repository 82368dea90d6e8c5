package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightning/raster"
	"github.com/lixenwraith/lightning/vmath"
)

const (
	sparkRune  = '·'
	targetRune = '╳'
	originRune = '◆'

	// sparkPeak is the brightness a fresh spark at full energy reaches
	sparkPeak = 6.0
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

func (s *sandbox) projection() raster.Projection {
	return s.canvas.Fit(
		vmath.Vec3F{X: -worldHalfWidth},
		vmath.Vec3F{X: worldHalfWidth, Y: worldHeight},
		1,
	)
}

func (s *sandbox) draw() {
	s.screen.Clear()
	proj := s.projection()

	s.drawMarker(proj, s.origin, originRune, styleDim)
	s.drawMarker(proj, s.target, targetRune, styleTarget)

	for _, b := range s.bolts {
		if !b.Visible() {
			continue
		}
		s.canvas.Reset()
		s.canvas.DrawTree(b.Tree(), proj)
		for _, cell := range s.canvas.Cells() {
			s.screen.SetContent(cell.X, cell.Y, cell.Rune, nil, styleFor(b.Color(cell.Energy)))
		}
	}

	palette := s.settings.Palette
	_, canvasRows := s.canvas.Size()
	for _, burst := range s.bursts {
		for _, spark := range burst.Sparks() {
			sx, sy := proj.Round(spark.Position)
			x, y := sx/2, sy/2
			if x < 0 || y < 0 || x >= s.cols || y >= canvasRows {
				continue
			}
			if r, _, _, _ := s.screen.GetContent(x, y); r != ' ' {
				continue
			}
			level := vmath.Clamp01(spark.Brightness() / sparkPeak)
			c := palette.At(level)
			dim := colorful.Color{R: c.R * level, G: c.G * level, B: c.B * level}
			s.screen.SetContent(x, y, sparkRune, nil, styleFor(dim))
		}
	}

	s.drawHUD()
	if s.debug {
		s.drawMetrics()
	}
	s.screen.Show()
}

func (s *sandbox) drawMarker(proj raster.Projection, v vmath.Vec3F, r rune, style tcell.Style) {
	sx, sy := proj.Round(v)
	s.screen.SetContent(sx/2, sy/2, r, nil, style)
}

func (s *sandbox) drawHUD() {
	if s.rows < hudRows {
		return
	}
	e := s.entries[s.current]
	line1 := fmt.Sprintf("[%d/%d] %s  seed:%d  bolts:%d  auto:%s flicker:%s vibrate:%s sound:%s",
		s.current+1, len(s.entries), e.Name, s.nextSeed(), len(s.bolts),
		onOff(s.auto), onOff(s.settings.Flicker), onOff(s.settings.Vibrate), onOff(s.player.Ready()))
	line2 := fmt.Sprintf("%s | 1-%d preset  space strike  a/f/v/s toggle  hjkl move  q quit",
		s.preview, min(len(s.entries), 9))

	drawText(s.screen, 0, s.rows-2, line1, styleHUD)
	drawText(s.screen, 0, s.rows-1, line2, styleDim)
}

func (s *sandbox) drawMetrics() {
	for i, e := range s.registry.Snapshot() {
		if i >= s.rows-hudRows {
			return
		}
		drawText(s.screen, 0, i, e.String(), styleDim)
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func styleFor(c colorful.Color) tcell.Style {
	r, g, b := c.Clamped().RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
