package lightning

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lightning/vmath"
)

var (
	sky    = vmath.Vec3F{X: 0, Y: 200, Z: 0}
	ground = vmath.Vec3F{}
)

// testConfigs spans the tuning space from sparse to pathological
var testConfigs = map[string]Config{
	"classic": {Alpha: 0.5, Beta: 0.4, Gamma: 0.3, MaxDepth: 8, MaxBranchDepth: 3},
	"dense":   {Alpha: 0.3, Beta: 0.3, Gamma: 0.5, MaxDepth: 10, MaxBranchDepth: 4},
	"smooth":  {Alpha: 0.6, Beta: 0.2, Gamma: 0.15, MaxDepth: 7, MaxBranchDepth: 2},
	"wild":    {Alpha: 0.4, Beta: 2.5, Gamma: 0.6, MaxDepth: 9, MaxBranchDepth: 5},
	"always":  {Alpha: 1, Beta: 0.5, Gamma: 1, MaxDepth: 7, MaxBranchDepth: 3},
	"flat":    {Alpha: 0.5, Beta: 0, Gamma: 0.3, MaxDepth: 6, MaxBranchDepth: 2},
}

func mustGenerate(t *testing.T, start, end vmath.Vec3F, cfg Config) *Tree {
	t.Helper()
	tree, err := Generate(start, end, cfg)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func TestGenerate_Deterministic(t *testing.T) {
	for name, cfg := range testConfigs {
		t.Run(name, func(t *testing.T) {
			cfg.Seed = 1234
			a := mustGenerate(t, sky, ground, cfg)
			b := mustGenerate(t, sky, ground, cfg)

			require.Equal(t, a.LinePositions(), b.LinePositions())
			require.Equal(t, a.segments, b.segments)
			require.Equal(t, a.nodes, b.nodes)
		})
	}
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	cfg := DefaultConfig()
	a := mustGenerate(t, sky, ground, cfg.WithSeed(1))
	b := mustGenerate(t, sky, ground, cfg.WithSeed(2))
	assert.NotEqual(t, a.LinePositions(), b.LinePositions())
}

func TestGenerate_DepthBound(t *testing.T) {
	for name, cfg := range testConfigs {
		t.Run(name, func(t *testing.T) {
			for seed := uint64(0); seed < 20; seed++ {
				tree := mustGenerate(t, sky, ground, cfg.WithSeed(seed))
				for i, n := range tree.Nodes() {
					require.LessOrEqual(t, n.Depth, cfg.MaxDepth, "node %d", i)
					require.LessOrEqual(t, n.BranchLevel, cfg.MaxBranchDepth, "node %d", i)
				}
				for i, s := range tree.Segments() {
					require.LessOrEqual(t, s.Depth, cfg.MaxDepth, "segment %d", i)
					require.LessOrEqual(t, s.BranchLevel, cfg.MaxBranchDepth, "segment %d", i)
				}
			}
		})
	}
}

func TestGenerate_EnergyMonotonic(t *testing.T) {
	for name, cfg := range testConfigs {
		t.Run(name, func(t *testing.T) {
			for seed := uint64(0); seed < 20; seed++ {
				tree := mustGenerate(t, sky, ground, cfg.WithSeed(seed))
				for i, s := range tree.Segments() {
					from, to := tree.Node(s.From), tree.Node(s.To)
					require.LessOrEqual(t, to.Energy, from.Energy, "segment %d", i)
					require.Equal(t, from.Energy, s.Energy)
					require.Greater(t, to.Energy, 0.0)
					if s.Parent >= 0 {
						require.LessOrEqual(t, s.Energy, tree.Segment(s.Parent).Energy, "segment %d", i)
					}
				}
			}
		})
	}
}

func TestGenerate_ForwardProgress(t *testing.T) {
	endpoints := []struct {
		name       string
		start, end vmath.Vec3F
	}{
		{"vertical", sky, ground},
		{"horizontal", vmath.Vec3F{X: -50}, vmath.Vec3F{X: 50}},
		{"diagonal", vmath.Vec3F{X: 3, Y: 80, Z: -20}, vmath.Vec3F{X: 40, Y: -5, Z: 12}},
	}
	for _, ep := range endpoints {
		axis := vmath.V3FNormalize(vmath.V3FSub(ep.end, ep.start))
		proj := func(p vmath.Vec3F) float64 { return vmath.V3FDot(vmath.V3FSub(p, ep.start), axis) }
		for name, cfg := range testConfigs {
			t.Run(ep.name+"/"+name, func(t *testing.T) {
				for seed := uint64(0); seed < 10; seed++ {
					tree := mustGenerate(t, ep.start, ep.end, cfg.WithSeed(seed))
					for i, line := range tree.Lines() {
						require.GreaterOrEqual(t, proj(line.To), proj(line.From)-1e-9, "segment %d", i)
					}
				}
			})
		}
	}
}

func TestGenerate_NoNonFinitePositions(t *testing.T) {
	cfg := Config{Alpha: 0.9, Beta: 1e150, Gamma: 1, MaxDepth: 12, MaxBranchDepth: 2}
	for seed := uint64(0); seed < 5; seed++ {
		tree := mustGenerate(t, sky, ground, cfg.WithSeed(seed))
		for i, n := range tree.Nodes() {
			require.True(t, vmath.V3FIsFinite(n.Position), "node %d", i)
			require.True(t, vmath.IsFinite(n.Energy), "node %d", i)
		}
	}
}

func TestGenerate_Degenerate(t *testing.T) {
	p := vmath.Vec3F{X: 1, Y: 2, Z: 3}
	for name, cfg := range testConfigs {
		t.Run(name, func(t *testing.T) {
			tree := mustGenerate(t, p, p, cfg.WithSeed(9))
			require.Equal(t, 1, tree.SegmentCount())
			require.Equal(t, 2, tree.NodeCount())
			assert.Zero(t, tree.SegmentLength(0))
			assert.Equal(t, -1, tree.Segment(0).Parent)
			assert.Zero(t, tree.Stats().BranchCount)
		})
	}
}

func TestGenerate_ZeroDepth(t *testing.T) {
	cfg := Config{Alpha: 1, Beta: 0.5, Gamma: 1, MaxDepth: 0, MaxBranchDepth: 5}
	tree := mustGenerate(t, sky, ground, cfg)

	require.Equal(t, 1, tree.SegmentCount())
	line := tree.SegmentLine(0)
	assert.Equal(t, sky, line.From)
	assert.Equal(t, ground, line.To)
	assert.Equal(t, RootEnergy, tree.Segment(0).Energy)
}

func TestGenerate_NoBranching(t *testing.T) {
	cfg := Config{Alpha: 1, Beta: 0.4, Gamma: 1, MaxDepth: 6, MaxBranchDepth: 0}
	tree := mustGenerate(t, sky, ground, cfg.WithSeed(3))

	require.Equal(t, 1<<6, tree.SegmentCount())
	for _, s := range tree.Segments() {
		require.Zero(t, s.BranchLevel)
	}
}

func TestGenerate_NegativeDepthsActAsZero(t *testing.T) {
	cfg := Config{Alpha: 0.5, Beta: 0.4, Gamma: 0.3, MaxDepth: -3, MaxBranchDepth: -1}
	tree := mustGenerate(t, sky, ground, cfg)
	assert.Equal(t, 1, tree.SegmentCount())
}

func TestGenerate_RejectsNonFinite(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	_, err := Generate(vmath.Vec3F{X: nan}, ground, DefaultConfig())
	require.ErrorIs(t, err, ErrNonFinite)

	_, err = Generate(sky, vmath.Vec3F{Z: inf}, DefaultConfig())
	require.ErrorIs(t, err, ErrNonFinite)

	for _, cfg := range []Config{
		{Alpha: nan, Beta: 0.4, Gamma: 0.3, MaxDepth: 4},
		{Alpha: 0.5, Beta: inf, Gamma: 0.3, MaxDepth: 4},
		{Alpha: 0.5, Beta: 0.4, Gamma: -inf, MaxDepth: 4},
	} {
		_, err := Generate(sky, ground, cfg)
		require.ErrorIs(t, err, ErrNonFinite)
	}

	assert.Panics(t, func() { MustGenerate(sky, ground, Config{Beta: nan}) })
}

func TestGenerate_TreeStructure(t *testing.T) {
	tree := mustGenerate(t, sky, ground, testConfigs["dense"].WithSeed(77))

	assert.Equal(t, sky, tree.Node(0).Position)
	assert.Equal(t, ground, tree.Node(1).Position)
	assert.Equal(t, RootEnergy, tree.Node(0).Energy)
	assert.Equal(t, TipEnergy, tree.Node(1).Energy)
	assert.Equal(t, []int{0}, tree.Children(0))
	assert.Empty(t, tree.Children(1))
	assert.Nil(t, tree.Children(-1))

	for i, s := range tree.Segments() {
		assert.Contains(t, tree.Children(s.From), i)
		if s.Parent < 0 {
			require.Equal(t, 0, i, "only the first trunk segment lacks a parent")
			require.Equal(t, 0, s.From)
			continue
		}
		require.Less(t, s.Parent, tree.SegmentCount())
		require.Equal(t, s.From, tree.Segment(s.Parent).To, "segment %d", i)

		// Every chain leads back to the root without revisiting a segment
		seen := map[int]bool{i: true}
		last := i
		for a := range tree.Ancestors(i) {
			require.False(t, seen[a], "cycle at segment %d", a)
			seen[a] = true
			last = a
		}
		require.Equal(t, 0, tree.Segment(last).From)
	}
}

func TestGenerate_TrunkFirstOrder(t *testing.T) {
	cfg := testConfigs["dense"].WithSeed(5)
	tree := mustGenerate(t, sky, ground, cfg)

	trunk := 1 << cfg.MaxDepth
	for i := range trunk {
		s := tree.Segment(i)
		require.Zero(t, s.BranchLevel, "segment %d", i)
		if i > 0 {
			require.Equal(t, tree.Segment(i-1).To, s.From, "trunk is contiguous in path order")
		}
	}
	assert.Equal(t, 1, tree.Segment(trunk-1).To, "trunk ends at the end node")
	for i := trunk; i < tree.SegmentCount(); i++ {
		require.Positive(t, tree.Segment(i).BranchLevel)
	}
}

func TestGenerate_BranchTipEnergy(t *testing.T) {
	tree := mustGenerate(t, sky, ground, testConfigs["always"].WithSeed(11))
	found := 0
	for i, s := range tree.Segments() {
		if s.Parent < 0 || tree.Segment(s.Parent).BranchLevel >= s.BranchLevel {
			continue
		}
		found++
		spawn := tree.Node(s.From)
		// Walk the branch chain to its tip
		tip := s
		for {
			next := -1
			for _, c := range tree.Children(tip.To) {
				if tree.Segment(c).BranchLevel == s.BranchLevel {
					next = c
				}
			}
			if next < 0 {
				break
			}
			tip = tree.Segment(next)
		}
		assert.InDelta(t, spawn.Energy*BranchEnergyScale, tree.Node(tip.To).Energy, 1e-12, "branch at segment %d", i)
	}
	assert.Positive(t, found)
}

func TestGenerate_TrunkIndependentOfBranching(t *testing.T) {
	base := Config{Seed: 21, Alpha: 0.5, Beta: 0.4, MaxDepth: 7}
	plain := mustGenerate(t, sky, ground, base)

	branchy := base
	branchy.Gamma = 0.9
	branchy.MaxBranchDepth = 4
	rich := mustGenerate(t, sky, ground, branchy)

	require.Greater(t, rich.SegmentCount(), plain.SegmentCount())
	for i := range plain.SegmentCount() {
		require.Equal(t, plain.SegmentLine(i), rich.SegmentLine(i), "trunk segment %d", i)
	}
}

func TestGenerate_ExtremeBranchingTerminates(t *testing.T) {
	cfg := Config{Alpha: 1, Beta: 1, Gamma: 1, MaxDepth: 8, MaxBranchDepth: MaxBranchDepthLimit + 10}
	tree := mustGenerate(t, sky, ground, cfg)
	s := tree.Stats()
	assert.LessOrEqual(t, s.MaxBranchLevel, cfg.MaxDepth)
	assert.Greater(t, s.BranchCount, 0)
}

func TestGenerate_ConcurrentCalls(t *testing.T) {
	cfg := testConfigs["classic"].WithSeed(42)
	want := mustGenerate(t, sky, ground, cfg).LinePositions()

	results := make(chan []Line, 8)
	for range 8 {
		go func() {
			tree, err := Generate(sky, ground, cfg)
			if err != nil {
				results <- nil
				return
			}
			results <- tree.LinePositions()
		}()
	}
	for range 8 {
		require.Equal(t, want, <-results)
	}
}

func TestScenario_ClassicSeed42(t *testing.T) {
	cfg := Config{Seed: 42, Alpha: 0.5, Beta: 0.4, Gamma: 0.3, MaxDepth: 8, MaxBranchDepth: 3}

	first := mustGenerate(t, sky, ground, cfg)
	stats := first.Stats()
	require.Equal(t, 256, stats.TrunkSegments)
	require.GreaterOrEqual(t, stats.SegmentCount, 256)

	again := mustGenerate(t, sky, ground, cfg)
	require.Equal(t, first.SegmentCount(), again.SegmentCount())
	require.Equal(t, first.SegmentLine(0), again.SegmentLine(0))
	assert.Equal(t, sky, first.SegmentLine(0).From)
}

func TestBuilder_LimitsClampDepths(t *testing.T) {
	depth, branch := Config{MaxDepth: 1000, MaxBranchDepth: 1000}.limits()
	assert.Equal(t, MaxDepthLimit, depth)
	assert.Equal(t, MaxBranchDepthLimit, branch)
}

func TestEnergyDecay(t *testing.T) {
	assert.Equal(t, 1.0, energyDecay(0))
	prev := 1.0
	for d := 1; d <= MaxDepthLimit; d++ {
		v := energyDecay(d)
		assert.Less(t, v, prev)
		assert.Positive(t, v)
		prev = v
	}
}
