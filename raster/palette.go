package raster

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightning/vmath"
)

// Palette is an energy color ramp from Core (energy 0) to Hot (energy 1)
type Palette struct {
	Core colorful.Color
	Hot  colorful.Color
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Named palettes
var (
	Azure  = Palette{Core: rgb(77, 179, 255), Hot: rgb(235, 245, 255)}
	Cyan   = Palette{Core: rgb(0, 200, 200), Hot: rgb(255, 255, 255)}
	Red    = Palette{Core: rgb(180, 40, 40), Hot: rgb(255, 200, 200)}
	Gold   = Palette{Core: rgb(200, 150, 0), Hot: rgb(255, 255, 200)}
	Green  = Palette{Core: rgb(40, 150, 40), Hot: rgb(200, 255, 200)}
	Purple = Palette{Core: rgb(120, 40, 180), Hot: rgb(220, 180, 255)}
)

var palettes = []struct {
	name string
	p    Palette
}{
	{"azure", Azure},
	{"cyan", Cyan},
	{"red", Red},
	{"gold", Gold},
	{"green", Green},
	{"purple", Purple},
}

// PaletteNames lists the named palettes in cycle order
func PaletteNames() []string {
	out := make([]string, len(palettes))
	for i, e := range palettes {
		out[i] = e.name
	}
	return out
}

// ParsePalette accepts a palette name or a "#rrggbb" core color, which gets a white-shifted hot end
func ParsePalette(s string) (Palette, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range palettes {
		if e.name == s {
			return e.p, nil
		}
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %q: %w", s, err)
		}
		return Palette{Core: c, Hot: c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.75)}, nil
	}
	return Palette{}, fmt.Errorf("palette %q: %w", s, ErrUnknownPalette)
}

// At returns the color for energy, blended in HCL so mid energies keep their hue
func (p Palette) At(energy float64) colorful.Color {
	return p.Core.BlendHcl(p.Hot, vmath.Clamp01(energy)).Clamped()
}

// RGB255 returns the 8-bit channels for energy
func (p Palette) RGB255(energy float64) (r, g, b uint8) {
	return p.At(energy).RGB255()
}
