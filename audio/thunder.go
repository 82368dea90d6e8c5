package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/vmath"
)

const (
	CrackDuration = 150 * time.Millisecond
	crackAttack   = 2 * time.Millisecond
	crackRelease  = 100 * time.Millisecond

	MinRumble = 600 * time.Millisecond
	MaxRumble = 1800 * time.Millisecond

	// rumbleReference is the bolt length that earns the full rumble tail
	rumbleReference = 400.0

	// ProfileSamples is the number of energy samples taken along the tree for the crack
	ProfileSamples = 32
)

// Stream fork indices
const (
	forkCrack uint64 = iota
	forkRumble
)

// ThunderDuration is the length of the sound for a tree: crack followed by a length-scaled rumble
func ThunderDuration(stats lightning.Stats) time.Duration {
	return max(CrackDuration, rumbleDuration(stats))
}

func rumbleDuration(stats lightning.Stats) time.Duration {
	f := vmath.Clamp01(stats.TotalLength / rumbleReference)
	return MinRumble + time.Duration(f*float64(MaxRumble-MinRumble))
}

// Loudness maps branching to a gain in [0.5, 1]: busier bolts sound louder
func Loudness(stats lightning.Stats) float64 {
	return vmath.Clamp(0.5+0.05*float64(stats.BranchCount), 0.5, 1)
}

// EnergyProfile samples the tree's energy along its arc length
func EnergyProfile(tree *lightning.Tree, n int) []float64 {
	particles := tree.ParticleData(n)
	gains := make([]float64, len(particles))
	for i, p := range particles {
		gains[i] = p.Energy
	}
	return gains
}

// NewThunder synthesizes a finite thunder clap for the tree
// The crack is noise shaped by the energy profile, the rumble is low-passed noise over a sub-bass tone
// The same tree, config and seed always render the same samples
func NewThunder(tree *lightning.Tree, cfg Config, seed uint64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	stats := tree.Stats()
	rng := vmath.NewFastRand(seed)

	crackRng := rng.Fork(forkCrack)
	noise := NewOscillator(0, CrackDuration, WaveNoise, rate, crackRng.Next())
	crack := NewProfile(
		NewEnvelope(noise, CrackDuration, crackAttack, crackRelease, rate),
		EnergyProfile(tree, ProfileSamples),
		CrackDuration,
		rate,
	)

	rumbleRng := rng.Fork(forkRumble)
	rd := rumbleDuration(stats)
	rumble := beep.Take(rate.N(rd), NewRumbleGenerator(rate, rd, rumbleRng.Next()))

	mixed := beep.Mix(
		newVolume(crack, 0.7),
		newVolume(rumble, 0.5),
	)
	return newVolume(mixed, cfg.MasterVolume*Loudness(stats))
}

// RumbleGenerator is a decaying low rumble
type RumbleGenerator struct {
	sr    beep.SampleRate
	pos   int
	decay float64
	rng   vmath.FastRand
	lp    float64
}

// NewRumbleGenerator decays to about 1% over duration
func NewRumbleGenerator(sr beep.SampleRate, duration time.Duration, seed uint64) *RumbleGenerator {
	secs := max(duration.Seconds(), 1e-3)
	return &RumbleGenerator{
		sr:    sr,
		decay: math.Log(100) / secs,
		rng:   vmath.NewFastRand(seed),
	}
}

func (g *RumbleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick swell, long exponential tail
		env := math.Exp(-t*g.decay) * math.Min(t/0.03, 1.0)

		// One-pole low-pass over white noise
		g.lp += 0.02 * (g.rng.Signed() - g.lp)
		tone := 0.4 * math.Sin(2*math.Pi*45*t)

		sample := env * (2.5*g.lp + tone)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RumbleGenerator) Err() error {
	return nil
}
