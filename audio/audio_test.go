package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/vmath"
)

const testRate = beep.SampleRate(8000)

func testTree(t *testing.T, seed uint64) *lightning.Tree {
	t.Helper()
	tree, err := lightning.Generate(vmath.Vec3F{Y: 200}, vmath.Vec3F{}, lightning.DefaultConfig().WithSeed(seed))
	require.NoError(t, err)
	return tree
}

// drain reads s to exhaustion, capped at limit samples
func drain(s beep.Streamer, limit int) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out
}

// take reads exactly n samples or fewer if s drains
func take(s beep.Streamer, n int) [][2]float64 {
	out := drain(s, n)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, DefaultMasterVolume, cfg.MasterVolume)
	assert.Equal(t, DefaultSampleRate, cfg.SampleRate)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv(EnvEnabled, "true")
	t.Setenv(EnvMasterVolume, "80")
	t.Setenv(EnvSampleRate, "22050")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.InDelta(t, 0.8, cfg.MasterVolume, 1e-12)
	assert.Equal(t, 22050, cfg.SampleRate)
}

func TestLoadConfig_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv(EnvEnabled, "maybe")
	t.Setenv(EnvMasterVolume, "loud")
	t.Setenv(EnvSampleRate, "-1")

	assert.Equal(t, DefaultConfig(), LoadConfig())
}

func TestLoadConfig_VolumeClamped(t *testing.T) {
	t.Setenv(EnvMasterVolume, "250")
	assert.Equal(t, 1.0, LoadConfig().MasterVolume)

	t.Setenv(EnvMasterVolume, "-20")
	assert.Equal(t, 0.0, LoadConfig().MasterVolume)
}

func TestOscillator_Length(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, testRate, 1)
		out := drain(osc, 10000)
		assert.Len(t, out, testRate.N(100*time.Millisecond), "wave %d", wave)
		for _, s := range out {
			assert.LessOrEqual(t, math.Abs(s[0]), 1.0)
			assert.Equal(t, s[0], s[1])
		}
	}
}

func TestOscillator_NoiseSeeded(t *testing.T) {
	a := drain(NewOscillator(0, 50*time.Millisecond, WaveNoise, testRate, 9), 10000)
	b := drain(NewOscillator(0, 50*time.Millisecond, WaveNoise, testRate, 9), 10000)
	c := drain(NewOscillator(0, 50*time.Millisecond, WaveNoise, testRate, 10), 10000)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestEnvelope_Shape(t *testing.T) {
	osc := NewOscillator(0, time.Second, WaveSquare, testRate, 0)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, testRate)
	out := drain(env, 10000)

	require.Len(t, out, testRate.N(100*time.Millisecond))
	assert.Zero(t, out[0][0], "attack starts silent")
	assert.InDelta(t, 0.5, out[40][0], 1e-9, "halfway through attack")
	assert.Equal(t, 1.0, out[400][0], "sustain")
	assert.InDelta(t, 1.0/160, out[len(out)-1][0], 1e-9, "last release sample")
}

func TestProfile_Gains(t *testing.T) {
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, testRate, 0)
	out := drain(NewProfile(osc, []float64{1, 0}, 100*time.Millisecond, testRate), 10000)

	require.Len(t, out, 800)
	assert.Equal(t, 1.0, out[0][0])
	assert.InDelta(t, 0.5, out[400][0], 1e-9)
	assert.InDelta(t, 1.0/800, out[799][0], 1e-9)

	flat := drain(NewProfile(NewOscillator(0, 10*time.Millisecond, WaveSquare, testRate, 0), nil, 10*time.Millisecond, testRate), 100)
	for _, s := range flat {
		assert.Equal(t, 1.0, s[0])
	}
}

func TestNewVolume_Silent(t *testing.T) {
	out := drain(newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, testRate, 0), 0), 1000)
	require.NotEmpty(t, out)
	for _, s := range out {
		assert.Zero(t, s[0])
	}

	half := drain(newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, testRate, 0), 0.5), 1000)
	assert.InDelta(t, 0.5, half[0][0], 1e-12)
}

func TestEnergyProfile(t *testing.T) {
	tree := testTree(t, 42)
	gains := EnergyProfile(tree, ProfileSamples)
	require.Len(t, gains, ProfileSamples)
	for _, g := range gains {
		assert.Greater(t, g, 0.0)
		assert.LessOrEqual(t, g, 1.0)
	}
}

func TestThunderDuration(t *testing.T) {
	short := ThunderDuration(lightning.Stats{TotalLength: 0})
	long := ThunderDuration(lightning.Stats{TotalLength: 10 * rumbleReference})
	assert.Equal(t, MinRumble, short)
	assert.Equal(t, MaxRumble, long)

	mid := ThunderDuration(lightning.Stats{TotalLength: rumbleReference / 2})
	assert.Equal(t, MinRumble+(MaxRumble-MinRumble)/2, mid)
}

func TestLoudness(t *testing.T) {
	assert.Equal(t, 0.5, Loudness(lightning.Stats{}))
	assert.InDelta(t, 0.75, Loudness(lightning.Stats{BranchCount: 5}), 1e-12)
	assert.Equal(t, 1.0, Loudness(lightning.Stats{BranchCount: 100}))
}

func TestThunder_Deterministic(t *testing.T) {
	tree := testTree(t, 42)
	cfg := DefaultConfig()
	cfg.SampleRate = int(testRate)
	n := testRate.N(300 * time.Millisecond)

	a := take(NewThunder(tree, cfg, 1), n)
	b := take(NewThunder(tree, cfg, 1), n)
	c := take(NewThunder(tree, cfg, 2), n)

	require.Len(t, a, n)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var peak float64
	for _, s := range a {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, 2.0)
}

func TestThunder_MutedVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = int(testRate)
	cfg.MasterVolume = 0

	for _, s := range take(NewThunder(testTree(t, 3), cfg, 1), 2000) {
		assert.Zero(t, s[0])
	}
}

func TestRumble_Decays(t *testing.T) {
	g := NewRumbleGenerator(testRate, time.Second, 5)
	out := take(g, testRate.N(time.Second))

	energy := func(from, to int) float64 {
		var e float64
		for _, s := range out[from:to] {
			e += s[0] * s[0]
		}
		return e
	}
	q := len(out) / 4
	assert.Greater(t, energy(0, q), energy(3*q, 4*q))
}

// Playback paths must be safe without a device
func TestPlayer_Disabled(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	require.NoError(t, p.Initialize())
	assert.False(t, p.Ready())
	assert.True(t, p.Muted())
	assert.False(t, p.PlayThunder(testTree(t, 1), 1))
	p.Cleanup()
}

func TestPlayer_MuteToggle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	p := NewPlayer(cfg)

	assert.False(t, p.Muted())
	assert.True(t, p.ToggleMute())
	assert.False(t, p.ToggleMute())
	p.SetMuted(true)
	assert.True(t, p.Muted())

	// Not initialized, so nothing reaches the speaker
	p.SetMuted(false)
	assert.False(t, p.PlayThunder(testTree(t, 1), 1))
	assert.False(t, p.Ready())
	p.Cleanup()
}
