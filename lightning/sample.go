package lightning

import (
	"iter"

	"github.com/lixenwraith/lightning/vmath"
)

// Particle is one sampled point with its interpolated energy
type Particle struct {
	Position vmath.Vec3F
	Energy   float64
}

// LinePositions returns the endpoints of every segment in generation order
func (t *Tree) LinePositions() []Line {
	lines := make([]Line, len(t.segments))
	for i := range t.segments {
		lines[i] = t.SegmentLine(i)
	}
	return lines
}

// Lines iterates segment endpoints in generation order without materializing them
func (t *Tree) Lines() iter.Seq2[int, Line] {
	return func(yield func(int, Line) bool) {
		for i := range t.segments {
			if !yield(i, t.SegmentLine(i)) {
				return
			}
		}
	}
}

// SampleParticlePositions returns n points spread over the tree by arc length
// n <= 0 yields an empty slice
func (t *Tree) SampleParticlePositions(n int) []vmath.Vec3F {
	if n <= 0 {
		return []vmath.Vec3F{}
	}
	out := make([]vmath.Vec3F, 0, n)
	t.walk(n, func(seg int, f float64) {
		line := t.SegmentLine(seg)
		out = append(out, vmath.V3FLerp(line.From, line.To, f))
	})
	return out
}

// ParticleData returns n samples like SampleParticlePositions, each carrying the energy
// interpolated between the segment's node energies
func (t *Tree) ParticleData(n int) []Particle {
	if n <= 0 {
		return []Particle{}
	}
	out := make([]Particle, 0, n)
	t.walk(n, func(seg int, f float64) {
		s := t.segments[seg]
		a, b := t.nodes[s.From], t.nodes[s.To]
		out = append(out, Particle{
			Position: vmath.V3FLerp(a.Position, b.Position, f),
			Energy:   vmath.Lerp(a.Energy, b.Energy, f),
		})
	})
	return out
}

// walk calls fn exactly n times with a segment index and a fraction along it
// Sample k sits at arc length (k+0.5)*L/n over the concatenated segments
// With zero total length samples are assigned by segment index at fraction 0.5
func (t *Tree) walk(n int, fn func(seg int, f float64)) {
	count := len(t.segments)
	if count == 0 {
		return
	}

	lengths := make([]float64, count)
	var total float64
	for i := range t.segments {
		lengths[i] = t.SegmentLength(i)
		total += lengths[i]
	}

	if !(total > 0) || !vmath.IsFinite(total) {
		for k := range n {
			fn(k*count/n, 0.5)
		}
		return
	}

	step := total / float64(n)
	seg := 0
	// start is the arc length at which segment seg begins
	var start float64
	for k := range n {
		target := (float64(k) + 0.5) * step
		for seg < count-1 && start+lengths[seg] <= target {
			start += lengths[seg]
			seg++
		}
		var f float64
		if lengths[seg] > 0 {
			f = vmath.Clamp01((target - start) / lengths[seg])
		}
		fn(seg, f)
	}
}
