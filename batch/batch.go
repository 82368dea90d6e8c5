// Package batch generates many trees concurrently and summarizes them per preset.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/preset"
	"github.com/lixenwraith/lightning/status"
	"github.com/lixenwraith/lightning/vmath"
)

var (
	ErrNoPresets = errors.New("batch: no presets")
	ErrNoSeeds   = errors.New("batch: seed count must be positive")
)

// Metric names written to Options.Registry
const (
	MetricTrees      = "batch.trees"
	MetricSegments   = "batch.segments"
	MetricBranches   = "batch.branches"
	MetricMaxLength  = "batch.max_length"
	MetricLastPreset = "batch.last_preset"
)

// Options describes one batch run
// Every preset is generated with the same Seeds seeds, derived from BaseSeed
type Options struct {
	Presets  []preset.Entry
	Seeds    int
	BaseSeed uint64

	// Workers bounds concurrent generations; <= 0 uses GOMAXPROCS
	Workers int

	Start, End vmath.Vec3F

	// Registry receives running totals; nil disables metrics
	Registry *status.Registry
	Logger   *log.Logger
}

// DefaultOptions runs the built-in presets over a 200-unit vertical bolt
func DefaultOptions() Options {
	return Options{
		Presets: preset.Builtins(),
		Seeds:   100,
		Start:   vmath.Vec3F{Y: 200},
		End:     vmath.Vec3F{},
	}
}

// SeedAt returns the i-th seed of a run
func SeedAt(base uint64, i int) uint64 {
	return vmath.DeriveSeed(base, uint64(i))
}

// Run generates len(Presets)*Seeds trees and returns one summary per preset in input order
// The result does not depend on Workers; cancellation stops scheduling and returns ctx's error
func Run(ctx context.Context, opts Options) ([]Summary, error) {
	if len(opts.Presets) == 0 {
		return nil, ErrNoPresets
	}
	if opts.Seeds <= 0 {
		return nil, ErrNoSeeds
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m := newMetrics(opts.Registry)
	stats := make([]lightning.Stats, len(opts.Presets)*opts.Seeds)
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

scheduling:
	for p, entry := range opts.Presets {
		cfg := entry.Config()
		for s := range opts.Seeds {
			if gctx.Err() != nil {
				break scheduling
			}
			idx := p*opts.Seeds + s
			seed := SeedAt(opts.BaseSeed, s)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				tree, err := lightning.Generate(opts.Start, opts.End, cfg.WithSeed(seed))
				if err != nil {
					return fmt.Errorf("preset %q seed %d: %w", entry.Name, seed, err)
				}
				stats[idx] = tree.Stats()
				m.record(entry.Name, stats[idx])
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Scheduling may have stopped on cancellation with no job failing
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Summary, len(opts.Presets))
	for p, entry := range opts.Presets {
		out[p] = summarize(entry.Name, stats[p*opts.Seeds:(p+1)*opts.Seeds])
	}

	if opts.Logger != nil {
		opts.Logger.Printf("batch: %d trees, %d presets, %d workers in %s",
			len(stats), len(opts.Presets), workers, time.Since(started).Round(time.Millisecond))
	}
	return out, nil
}

// metrics caches registry pointers so workers update them lock-free
type metrics struct {
	enabled   bool
	trees     *atomic.Int64
	segments  *atomic.Int64
	branches  *atomic.Int64
	maxLength *status.AtomicFloat
	last      *status.AtomicString
}

func newMetrics(r *status.Registry) metrics {
	if r == nil {
		return metrics{}
	}
	return metrics{
		enabled:   true,
		trees:     r.Ints.Get(MetricTrees),
		segments:  r.Ints.Get(MetricSegments),
		branches:  r.Ints.Get(MetricBranches),
		maxLength: r.Floats.Get(MetricMaxLength),
		last:      r.Strings.Get(MetricLastPreset),
	}
}

func (m metrics) record(name string, s lightning.Stats) {
	if !m.enabled {
		return
	}
	m.trees.Add(1)
	m.segments.Add(int64(s.SegmentCount))
	m.branches.Add(int64(s.BranchCount))
	m.maxLength.Max(s.TotalLength)
	m.last.Store(name)
}
