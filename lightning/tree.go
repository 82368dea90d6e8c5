package lightning

import (
	"iter"
	"slices"

	"github.com/lixenwraith/lightning/vmath"
)

// Node is a point of the bolt with its energy and generation depth
type Node struct {
	Position vmath.Vec3F

	// Energy is the relative intensity in (0, 1], never larger than any ancestor's
	Energy float64

	// Depth counts subdivisions from the trunk root segment
	Depth int

	// BranchLevel is the branch nesting level, 0 for the trunk
	BranchLevel int
}

// Segment is one renderable line between two nodes
type Segment struct {
	// From and To index Tree nodes
	From, To int

	// Parent indexes the segment ending at From, -1 for the first trunk segment
	Parent int

	Depth       int
	BranchLevel int

	// Energy is the energy of the From node
	Energy float64
}

// Line is a pair of segment endpoints
type Line struct {
	From, To vmath.Vec3F
}

// Tree is the immutable result of one Generate call
// Nodes and segments are stored in generation order and addressed by index
type Tree struct {
	config     Config
	start, end vmath.Vec3F

	nodes    []Node
	segments []Segment

	// children lists outgoing segment indices per node in generation order
	children [][]int
}

// Config returns the configuration the tree was generated with
func (t *Tree) Config() Config { return t.config }

// Start returns the requested start point (position of node 0)
func (t *Tree) Start() vmath.Vec3F { return t.start }

// End returns the requested end point (position of node 1)
func (t *Tree) End() vmath.Vec3F { return t.end }

func (t *Tree) NodeCount() int    { return len(t.nodes) }
func (t *Tree) SegmentCount() int { return len(t.segments) }

// Node returns node i; panics when i is out of range
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Segment returns segment i; panics when i is out of range
func (t *Tree) Segment(i int) Segment { return t.segments[i] }

// Nodes iterates nodes in creation order
func (t *Tree) Nodes() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, n := range t.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Segments iterates segments in generation order
func (t *Tree) Segments() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		for i, s := range t.segments {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Children returns the indices of segments leaving node
// A trunk or branch interior node has one continuation plus one entry per spawned branch
func (t *Tree) Children(node int) []int {
	if node < 0 || node >= len(t.children) {
		return nil
	}
	return slices.Clone(t.children[node])
}

// Ancestors iterates parent segments of seg, nearest first, up to the first trunk segment
func (t *Tree) Ancestors(seg int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if seg < 0 || seg >= len(t.segments) {
			return
		}
		for p := t.segments[seg].Parent; p >= 0; p = t.segments[p].Parent {
			if !yield(p) {
				return
			}
		}
	}
}

// SegmentLine returns the endpoint positions of segment i
func (t *Tree) SegmentLine(i int) Line {
	s := t.segments[i]
	return Line{From: t.nodes[s.From].Position, To: t.nodes[s.To].Position}
}

// SegmentLength returns the euclidean length of segment i
func (t *Tree) SegmentLength(i int) float64 {
	s := t.segments[i]
	return vmath.V3FDist(t.nodes[s.From].Position, t.nodes[s.To].Position)
}

// Bounds returns the axis-aligned box enclosing every node
func (t *Tree) Bounds() (lo, hi vmath.Vec3F) {
	if len(t.nodes) == 0 {
		return vmath.Vec3F{}, vmath.Vec3F{}
	}
	lo, hi = t.nodes[0].Position, t.nodes[0].Position
	for _, n := range t.nodes[1:] {
		lo = vmath.V3FMin(lo, n.Position)
		hi = vmath.V3FMax(hi, n.Position)
	}
	return lo, hi
}
