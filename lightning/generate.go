package lightning

import (
	"fmt"
	"math"

	"github.com/lixenwraith/lightning/vmath"
)

// Generate builds a lightning tree from start to end
// The result depends only on the arguments; the random stream is seeded from cfg.Seed
// Non-finite points or config values are rejected with ErrNonFinite, any other input yields a tree
func Generate(start, end vmath.Vec3F, cfg Config) (*Tree, error) {
	if !vmath.V3FIsFinite(start) || !vmath.V3FIsFinite(end) {
		return nil, fmt.Errorf("generate %v -> %v: %w", start, end, ErrNonFinite)
	}
	if !cfg.finite() {
		return nil, fmt.Errorf("generate (%s): %w", cfg, ErrNonFinite)
	}

	b := newBuilder(start, end, cfg)
	root := b.addNode(start, RootEnergy, 0, 0)
	tip := b.addNode(end, TipEnergy, 0, 0)
	b.grow(root, tip, 0, 0, vmath.NewFastRand(cfg.Seed))

	return &Tree{
		config:   cfg,
		start:    start,
		end:      end,
		nodes:    b.nodes,
		segments: b.segments,
		children: b.children,
	}, nil
}

// MustGenerate is Generate for inputs known to be finite; it panics on error
func MustGenerate(start, end vmath.Vec3F, cfg Config) *Tree {
	t, err := Generate(start, end, cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// spawn is a branch decided during subdivision, grown once its parent chain is complete
type spawn struct {
	node   int // shared midpoint node the branch leaves from
	depth  int // depth of the split segment
	level  int // branch level of the split segment
	length float64
	perp   vmath.Vec3F
	rng    vmath.FastRand
}

type builder struct {
	cfg       Config
	maxDepth  int
	maxBranch int

	origin vmath.Vec3F
	end    vmath.Vec3F
	// axis is the unit start->end direction, zero for coincident endpoints
	axis vmath.Vec3F

	nodes    []Node
	segments []Segment
	children [][]int
	// inbound maps a node to the segment ending at it, -1 for the root
	inbound []int
}

func newBuilder(start, end vmath.Vec3F, cfg Config) *builder {
	depth, branch := cfg.limits()
	trunk := 1 << depth
	return &builder{
		cfg:       cfg,
		maxDepth:  depth,
		maxBranch: branch,
		origin:    start,
		end:       end,
		axis:      vmath.V3FNormalize(vmath.V3FSub(end, start)),
		nodes:     make([]Node, 0, trunk+1),
		segments:  make([]Segment, 0, trunk),
		children:  make([][]int, 0, trunk+1),
		inbound:   make([]int, 0, trunk+1),
	}
}

func (b *builder) addNode(pos vmath.Vec3F, energy float64, depth, level int) int {
	b.nodes = append(b.nodes, Node{Position: pos, Energy: energy, Depth: depth, BranchLevel: level})
	b.children = append(b.children, nil)
	b.inbound = append(b.inbound, -1)
	return len(b.nodes) - 1
}

// emit appends a leaf segment and links it into the arena
func (b *builder) emit(from, to, depth, level int) {
	idx := len(b.segments)
	b.segments = append(b.segments, Segment{
		From:        from,
		To:          to,
		Parent:      b.inbound[from],
		Depth:       depth,
		BranchLevel: level,
		Energy:      b.nodes[from].Energy,
	})
	b.children[from] = append(b.children[from], idx)
	b.inbound[to] = idx
}

// grow emits one chain from->to, then the branches it spawned, depth-first in path order
func (b *builder) grow(from, to, depth, level int, rng vmath.FastRand) {
	var spawns []spawn
	b.subdivide(from, to, depth, level, rng, &spawns)
	for _, sp := range spawns {
		b.branch(sp)
	}
}

// subdivide splits from->to until the depth ceiling or the length threshold
// Leaves are emitted in path order; spawns are recorded in path order of their midpoints
func (b *builder) subdivide(from, to, depth, level int, rng vmath.FastRand, spawns *[]spawn) {
	a := b.nodes[from]
	c := b.nodes[to]
	seg := vmath.V3FSub(c.Position, a.Position)
	length := vmath.V3FMag(seg)

	if depth >= b.maxDepth || !(length >= MinSegmentLength) || !vmath.IsFinite(length) {
		b.emit(from, to, depth, level)
		return
	}

	// Both draws happen on every split so trunk shape is independent of branching parameters
	displacement := rng.Signed()
	roll := rng.Float64()

	perp := vmath.V3FPerpendicular(seg)
	offset := vmath.V3FScale(perp, displacement*b.cfg.Beta*length)
	mid := vmath.V3FAdd(vmath.V3FMidpoint(a.Position, c.Position), offset)
	mid = b.constrain(mid, a.Position, c.Position)
	if !vmath.V3FIsFinite(mid) {
		b.emit(from, to, depth, level)
		return
	}

	energy := c.Energy + (a.Energy-c.Energy)*0.5*energyDecay(depth)
	m := b.addNode(mid, energy, depth+1, level)

	var sp *spawn
	if level < b.maxBranch && roll < b.branchProbability(depth) {
		sp = &spawn{
			node:   m,
			depth:  depth,
			level:  level,
			length: length,
			perp:   perp,
			rng:    rng.Fork(forkBranch),
		}
	}

	b.subdivide(from, m, depth+1, level, rng.Fork(forkLeft), spawns)
	if sp != nil {
		*spawns = append(*spawns, *sp)
	}
	b.subdivide(m, to, depth+1, level, rng.Fork(forkRight), spawns)
}

// branch grows a sub-tree from the spawn node toward a synthetic target
func (b *builder) branch(sp spawn) {
	rng := sp.rng
	base := b.nodes[sp.node]

	toEnd := vmath.V3FNormalize(vmath.V3FSub(b.end, base.Position))
	if toEnd == (vmath.Vec3F{}) {
		toEnd = b.axis
	}

	side := vmath.V3FScale(sp.perp, rng.Range(-BranchPerpSpread, BranchPerpSpread))
	forward := vmath.V3FScale(toEnd, rng.Range(ForwardBiasMin, ForwardBiasMax))
	dir := b.forwardOnly(vmath.V3FAdd(side, forward))
	if dir == (vmath.Vec3F{}) {
		return
	}

	length := sp.length * BranchLengthScale * math.Exp(-b.cfg.Alpha*float64(sp.level))
	target := vmath.V3FAdd(base.Position, vmath.V3FScale(dir, length))
	if !vmath.V3FIsFinite(target) {
		return
	}

	tip := b.addNode(target, base.Energy*BranchEnergyScale, sp.depth+1, sp.level+1)
	b.grow(sp.node, tip, sp.depth+1, sp.level+1, rng.Fork(forkLeft))
}

// branchProbability is gamma * alpha^depth
func (b *builder) branchProbability(depth int) float64 {
	return b.cfg.Gamma * math.Pow(b.cfg.Alpha, float64(depth))
}

// constrain keeps p's projection on the bolt axis between the projections of a and c
// so no child segment steps backward along start->end
func (b *builder) constrain(p, a, c vmath.Vec3F) vmath.Vec3F {
	if b.axis == (vmath.Vec3F{}) {
		return p
	}
	lo := b.project(a)
	hi := b.project(c)
	if lo > hi {
		lo, hi = hi, lo
	}
	pp := b.project(p)
	switch {
	case pp < lo:
		return vmath.V3FAdd(p, vmath.V3FScale(b.axis, lo-pp))
	case pp > hi:
		return vmath.V3FAdd(p, vmath.V3FScale(b.axis, hi-pp))
	}
	return p
}

// forwardOnly strips any backward axis component from dir and normalizes it
// A direction that vanishes falls back to the axis itself
func (b *builder) forwardOnly(dir vmath.Vec3F) vmath.Vec3F {
	if along := vmath.V3FDot(dir, b.axis); along < 0 {
		dir = vmath.V3FSub(dir, vmath.V3FScale(b.axis, along))
	}
	n := vmath.V3FNormalize(dir)
	if n == (vmath.Vec3F{}) {
		return b.axis
	}
	return n
}

func (b *builder) project(p vmath.Vec3F) float64 {
	return vmath.V3FDot(vmath.V3FSub(p, b.origin), b.axis)
}

// energyDecay is 1 / (1 + EnergyDepthDecay*depth)
func energyDecay(depth int) float64 {
	return 1 / (1 + EnergyDepthDecay*float64(depth))
}
