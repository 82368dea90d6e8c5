package effect

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/raster"
	"github.com/lixenwraith/lightning/vmath"
)

const (
	DefaultLifetime          = 500 * time.Millisecond
	DefaultFlickerInterval   = 50 * time.Millisecond
	DefaultVibrationInterval = 40 * time.Millisecond

	// MaxOpacity caps alpha at spawn so the bolt never reads as a solid line
	MaxOpacity = 0.9
)

// Settings controls how a bolt evolves after spawn
type Settings struct {
	Lifetime time.Duration
	Palette  raster.Palette

	// Flicker toggles visibility every FlickerInterval
	Flicker         bool
	FlickerInterval time.Duration

	// Vibrate regenerates the tree every VibrationInterval with a frame-derived seed
	Vibrate           bool
	VibrationInterval time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Lifetime:          DefaultLifetime,
		Palette:           raster.Azure,
		FlickerInterval:   DefaultFlickerInterval,
		VibrationInterval: DefaultVibrationInterval,
	}
}

// normalized replaces non-positive intervals with defaults
func (s Settings) normalized() Settings {
	if s.Lifetime <= 0 {
		s.Lifetime = DefaultLifetime
	}
	if s.FlickerInterval <= 0 {
		s.FlickerInterval = DefaultFlickerInterval
	}
	if s.VibrationInterval <= 0 {
		s.VibrationInterval = DefaultVibrationInterval
	}
	return s
}

// Bolt is one spawned strike between two points
type Bolt struct {
	start, end vmath.Vec3F
	config     lightning.Config
	settings   Settings
	tree       *lightning.Tree

	// Animation state
	Remaining time.Duration
	Duration  time.Duration

	flickerClock time.Duration
	vibrateClock time.Duration
	frame        uint64
	visible      bool
}

// NewBolt generates the initial tree; errors only on non-finite input
func NewBolt(start, end vmath.Vec3F, cfg lightning.Config, settings Settings) (*Bolt, error) {
	tree, err := lightning.Generate(start, end, cfg)
	if err != nil {
		return nil, err
	}
	settings = settings.normalized()
	return &Bolt{
		start:     start,
		end:       end,
		config:    cfg,
		settings:  settings,
		tree:      tree,
		Remaining: settings.Lifetime,
		Duration:  settings.Lifetime,
		visible:   true,
	}, nil
}

// Update advances the bolt by dt and reports whether the tree was regenerated
func (b *Bolt) Update(dt time.Duration) bool {
	if dt <= 0 || b.Expired() {
		return false
	}
	b.Remaining -= dt

	if b.settings.Flicker {
		b.flickerClock += dt
		for b.flickerClock >= b.settings.FlickerInterval {
			b.flickerClock -= b.settings.FlickerInterval
			b.visible = !b.visible
		}
	}

	if !b.settings.Vibrate || b.Expired() {
		return false
	}
	b.vibrateClock += dt
	steps := uint64(b.vibrateClock / b.settings.VibrationInterval)
	if steps == 0 {
		return false
	}
	b.vibrateClock -= time.Duration(steps) * b.settings.VibrationInterval
	b.frame += steps

	tree, err := lightning.Generate(b.start, b.end, b.config.WithSeed(b.Seed()))
	if err != nil {
		return false
	}
	b.tree = tree
	return true
}

// Seed returns the seed of the current tree
func (b *Bolt) Seed() uint64 {
	return vmath.DeriveSeed(b.config.Seed, b.frame)
}

func (b *Bolt) Tree() *lightning.Tree    { return b.tree }
func (b *Bolt) Frame() uint64            { return b.frame }
func (b *Bolt) Settings() Settings       { return b.settings }
func (b *Bolt) Config() lightning.Config { return b.config }

func (b *Bolt) Endpoints() (start, end vmath.Vec3F) { return b.start, b.end }

func (b *Bolt) Expired() bool {
	return b.Remaining <= 0
}

// Visible is false once expired and during the off phase of a flicker
func (b *Bolt) Visible() bool {
	return !b.Expired() && b.visible
}

// Life is the remaining fraction of the lifetime in [0, 1]
func (b *Bolt) Life() float64 {
	if b.Duration <= 0 {
		return 0
	}
	return vmath.Clamp01(float64(b.Remaining) / float64(b.Duration))
}

// Alpha fades linearly with life, capped at MaxOpacity
func (b *Bolt) Alpha() float64 {
	if !b.Visible() {
		return 0
	}
	return b.Life() * MaxOpacity
}

// Color returns the palette color for an energy, dimmed toward black by the current alpha
func (b *Bolt) Color(energy float64) colorful.Color {
	c := b.settings.Palette.At(energy)
	a := b.Alpha()
	return colorful.Color{R: c.R * a, G: c.G * a, B: c.B * a}
}
