package raster

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightning/lightning"
)

// ImageOptions controls WritePNG output
type ImageOptions struct {
	Width, Height int
	Palette       Palette
	Background    colorful.Color

	// LineWidth is the stroke width in pixels of a full-energy segment
	LineWidth float64

	// Glow draws a wider translucent pass under the core strokes
	Glow bool

	// Margin is the empty border in pixels
	Margin float64
}

func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Width:      512,
		Height:     768,
		Palette:    Azure,
		Background: colorful.Color{R: 0.02, G: 0.02, B: 0.06},
		LineWidth:  3,
		Glow:       true,
		Margin:     16,
	}
}

// Render strokes tree into a new gg context
// The caller owns the returned context and must Close it
func Render(tree *lightning.Tree, opts ImageOptions) (*gg.Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", opts.Width, opts.Height, ErrImageSize)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	bg := opts.Background
	dc.ClearWithColor(gg.RGBA2(bg.R, bg.G, bg.B, 1))
	dc.SetLineCap(gg.LineCapRound)

	lo, hi := tree.Bounds()
	p := Fit(lo, hi, opts.Width, opts.Height, opts.Margin, 1)

	if opts.Glow {
		if err := strokeTree(dc, tree, p, opts, 4, 0.12); err != nil {
			dc.Close()
			return nil, err
		}
	}
	if err := strokeTree(dc, tree, p, opts, 1, 1); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

// strokeTree draws each segment with width and color scaled by its energy
func strokeTree(dc *gg.Context, tree *lightning.Tree, p Projection, opts ImageOptions, widthScale, alpha float64) error {
	for i, s := range tree.Segments() {
		line := tree.SegmentLine(i)
		x0, y0 := p.Apply(line.From)
		x1, y1 := p.Apply(line.To)

		c := opts.Palette.At(s.Energy)
		dc.SetRGBA(c.R, c.G, c.B, alpha)
		dc.SetLineWidth(opts.LineWidth * widthScale * (0.35 + 0.65*s.Energy))
		dc.DrawLine(x0, y0, x1, y1)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke segment %d: %w", i, err)
		}
	}
	return nil
}

// WritePNG renders tree and encodes it as PNG to w
func WritePNG(w io.Writer, tree *lightning.Tree, opts ImageOptions) error {
	dc, err := Render(tree, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}
