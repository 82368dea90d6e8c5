package lightning

import "fmt"

// Stats summarizes a tree for overlays and batch reports
type Stats struct {
	NodeCount    int
	SegmentCount int

	// TrunkSegments counts segments at branch level 0
	TrunkSegments int

	// BranchCount counts spawned branches, one per first segment of a branch chain
	BranchCount int

	MaxDepth       int
	MaxBranchLevel int

	// TotalLength is the summed length of all segments
	TotalLength float64
}

// Stats computes the tree summary in one pass over the segments
func (t *Tree) Stats() Stats {
	s := Stats{
		NodeCount:    len(t.nodes),
		SegmentCount: len(t.segments),
	}
	for i, seg := range t.segments {
		if seg.BranchLevel == 0 {
			s.TrunkSegments++
		}
		if seg.Parent >= 0 && t.segments[seg.Parent].BranchLevel < seg.BranchLevel {
			s.BranchCount++
		}
		s.MaxDepth = max(s.MaxDepth, seg.Depth)
		s.MaxBranchLevel = max(s.MaxBranchLevel, seg.BranchLevel)
		s.TotalLength += t.SegmentLength(i)
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d segments=%d trunk=%d branches=%d depth=%d branch_level=%d length=%.2f",
		s.NodeCount, s.SegmentCount, s.TrunkSegments, s.BranchCount, s.MaxDepth, s.MaxBranchLevel, s.TotalLength)
}
