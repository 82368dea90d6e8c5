package preset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/vmath"
)

func TestBuiltinValues(t *testing.T) {
	tests := []struct {
		name               Name
		alpha, beta, gamma float64
		depth, branchDepth int
	}{
		{Classic, 0.5, 0.4, 0.3, 8, 3},
		{Dense, 0.3, 0.3, 0.5, 10, 4},
		{Sparse, 0.7, 0.5, 0.2, 6, 2},
		{Chaotic, 0.4, 0.6, 0.6, 12, 5},
		{Smooth, 0.6, 0.2, 0.15, 7, 2},
		{Branchy, 0.35, 0.45, 0.55, 9, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			cfg := tt.name.Config(7)
			assert.Equal(t, lightning.Config{
				Seed: 7, Alpha: tt.alpha, Beta: tt.beta, Gamma: tt.gamma,
				MaxDepth: tt.depth, MaxBranchDepth: tt.branchDepth,
			}, cfg)
			assert.NoError(t, cfg.Validate())
			assert.Equal(t, cfg, cfg.Clamped())
			assert.Contains(t, tt.name.Description(), "\n")
		})
	}
}

func TestClassicIsDefault(t *testing.T) {
	assert.Equal(t, lightning.DefaultConfig(), Classic.Config(0))
}

func TestAll(t *testing.T) {
	names := All()
	require.Len(t, names, 6)
	assert.Equal(t, Classic, names[0])
	assert.Equal(t, Branchy, names[5])
	for _, n := range names {
		assert.True(t, n.Valid())
	}
}

func TestInvalidName(t *testing.T) {
	n := Name(42)
	assert.False(t, n.Valid())
	assert.Equal(t, "Name(42)", n.String())
	assert.Empty(t, n.Description())
	assert.Equal(t, lightning.DefaultConfig().WithSeed(3), n.Config(3))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"Classic", Classic},
		{"dense", Dense},
		{" SPARSE ", Sparse},
		{"chaotic", Chaotic},
		{"4", Chaotic},
		{"1", Classic},
		{"6", Branchy},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "0", "7", "-1", "fork"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrUnknownPreset, bad)
	}
}

// Branchy must outgrow Sparse on average across seeds
func TestBranchyDenserThanSparse(t *testing.T) {
	start, end := vmath.Vec3F{Y: 200}, vmath.Vec3F{}
	var branchy, sparse int
	for seed := range uint64(100) {
		branchy += lightning.MustGenerate(start, end, Branchy.Config(seed)).SegmentCount()
		sparse += lightning.MustGenerate(start, end, Sparse.Config(seed)).SegmentCount()
	}
	assert.Greater(t, branchy, sparse)
}

func TestPresetsBranch(t *testing.T) {
	start, end := vmath.Vec3F{Y: 200}, vmath.Vec3F{}
	for _, n := range All() {
		branches := 0
		for seed := range uint64(20) {
			branches += lightning.MustGenerate(start, end, n.Config(seed)).Stats().BranchCount
		}
		assert.Positive(t, branches, n.String())
	}
}

const customFile = `
# custom presets
[[preset]]
name = "Storm"
description = "Wide and loud"
seed = 99
alpha = 0.45
beta = 0.5
gamma = 0.4
max_depth = 9
max_branch_depth = 3

[[preset]]
name = "Wire"
alpha = 0.9
beta = 0.05
gamma = 0.0
max_depth = 5
max_branch_depth = 0
`

func TestDecode(t *testing.T) {
	entries, err := Decode(strings.NewReader(customFile))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{
		Name: "Storm", Description: "Wide and loud", Seed: 99,
		Alpha: 0.45, Beta: 0.5, Gamma: 0.4, MaxDepth: 9, MaxBranchDepth: 3,
	}, entries[0])
	assert.Equal(t, lightning.Config{Alpha: 0.9, Beta: 0.05, MaxDepth: 5}, entries[1].Config())

	e, err := Find(entries, "wire")
	require.NoError(t, err)
	assert.Equal(t, "Wire", e.Name)

	_, err = Find(entries, "classic")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing name":   "[[preset]]\nalpha = 0.5\n",
		"duplicate name": "[[preset]]\nname = \"a\"\n[[preset]]\nname = \"A\"\n",
		"negative depth": "[[preset]]\nname = \"a\"\nmax_depth = -2\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrInvalidPreset)
		})
	}

	_, err := Decode(strings.NewReader("[[preset]]\nname = 3\n"))
	assert.Error(t, err)
}

func TestBuiltins_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Builtins()))
	assert.True(t, strings.HasPrefix(buf.String(), "# lightning presets\n"))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Builtins(), got)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	want := []Entry{Chaotic.Entry(1 << 62), EntryFromConfig("mine", "", lightning.Config{Seed: 5, Alpha: 0.2, MaxDepth: 3})}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	entries := []Entry{Classic.Entry(0), EntryFromConfig("Storm", "", lightning.DefaultConfig())}

	for in, want := range map[string]int{"1": 0, "2": 1, "storm": 1, " CLASSIC ": 0} {
		got, err := Index(entries, in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"0", "3", "dense", ""} {
		_, err := Index(entries, bad)
		assert.ErrorIs(t, err, ErrUnknownPreset, bad)
	}
}
