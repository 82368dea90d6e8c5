package batch

import (
	"bytes"
	"context"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/preset"
	"github.com/lixenwraith/lightning/status"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Seeds = 12
	opts.BaseSeed = 99
	return opts
}

func TestRun_Validation(t *testing.T) {
	opts := smallOptions()
	opts.Presets = nil
	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNoPresets)

	opts = smallOptions()
	opts.Seeds = 0
	_, err = Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNoSeeds)
}

func TestRun_IndependentOfWorkers(t *testing.T) {
	opts := smallOptions()
	opts.Workers = 1
	serial, err := Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Workers = 8
	parallel, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	require.Len(t, serial, len(opts.Presets))
	for i, s := range serial {
		assert.Equal(t, opts.Presets[i].Name, s.Name)
		assert.Equal(t, opts.Seeds, s.Runs)
	}
}

func TestRun_MatchesDirectGeneration(t *testing.T) {
	opts := smallOptions()
	opts.Presets = []preset.Entry{preset.Classic.Entry(0)}

	sums, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, sums, 1)

	var segments, length float64
	maxDepth := 0
	cfg := preset.Classic.Config(0)
	for i := range opts.Seeds {
		tree := lightning.MustGenerate(opts.Start, opts.End, cfg.WithSeed(SeedAt(opts.BaseSeed, i)))
		st := tree.Stats()
		segments += float64(st.SegmentCount)
		length += st.TotalLength
		maxDepth = max(maxDepth, st.MaxDepth)
	}
	n := float64(opts.Seeds)
	assert.InDelta(t, segments/n, sums[0].MeanSegments, 1e-9)
	assert.InDelta(t, length/n, sums[0].MeanLength, 1e-9)
	assert.Equal(t, maxDepth, sums[0].MaxDepth)
	assert.InDelta(t, sums[0].MeanSegments+1, sums[0].MeanNodes, 1e-9)
}

func TestRun_Registry(t *testing.T) {
	reg := status.NewRegistry()
	opts := smallOptions()
	opts.Registry = reg

	sums, err := Run(context.Background(), opts)
	require.NoError(t, err)

	var segments, branches float64
	names := make([]string, 0, len(sums))
	for _, s := range sums {
		segments += s.MeanSegments * float64(s.Runs)
		branches += s.MeanBranches * float64(s.Runs)
		names = append(names, s.Name)
	}

	assert.Equal(t, int64(len(opts.Presets)*opts.Seeds), reg.Ints.Get(MetricTrees).Load())
	assert.InDelta(t, segments, float64(reg.Ints.Get(MetricSegments).Load()), 1e-6)
	assert.InDelta(t, branches, float64(reg.Ints.Get(MetricBranches).Load()), 1e-6)
	assert.Greater(t, reg.Floats.Get(MetricMaxLength).Get(), 0.0)
	assert.Contains(t, names, reg.Strings.Get(MetricLastPreset).Load())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, smallOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidPreset(t *testing.T) {
	opts := smallOptions()
	bad := preset.Classic.Entry(0)
	bad.Name = "broken"
	bad.Alpha = math.NaN()
	opts.Presets = append(opts.Presets, bad)

	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, lightning.ErrNonFinite)
	assert.Contains(t, err.Error(), "broken")
}

func TestRun_BranchyDenserThanSparse(t *testing.T) {
	opts := DefaultOptions()
	opts.Presets = []preset.Entry{preset.Sparse.Entry(0), preset.Branchy.Entry(0)}

	sums, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Greater(t, sums[1].MeanSegments, sums[0].MeanSegments)
	assert.Greater(t, sums[1].MaxDepth, sums[0].MaxDepth)
}

func TestRun_Logs(t *testing.T) {
	var buf bytes.Buffer
	opts := smallOptions()
	opts.Logger = log.New(&buf, "", 0)

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "batch: 72 trees, 6 presets"))
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{Name: "x"}, summarize("x", nil))
}

func TestWriteTable(t *testing.T) {
	sums, err := Run(context.Background(), smallOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sums))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(sums)+1)
	assert.Contains(t, lines[0], "segments")
	for i, s := range sums {
		assert.Contains(t, lines[i+1], s.Name)
	}
}
