package batch

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lixenwraith/lightning/lightning"
)

// Summary aggregates the trees generated for one preset
type Summary struct {
	Name string
	Runs int

	MeanNodes    float64
	MeanSegments float64
	MeanBranches float64
	MeanLength   float64

	MaxSegments    int
	MaxBranches    int
	MaxDepth       int
	MaxBranchLevel int

	// Branched counts trees with at least one branch
	Branched int
}

func summarize(name string, stats []lightning.Stats) Summary {
	sum := Summary{Name: name, Runs: len(stats)}
	if len(stats) == 0 {
		return sum
	}
	for _, s := range stats {
		sum.MeanNodes += float64(s.NodeCount)
		sum.MeanSegments += float64(s.SegmentCount)
		sum.MeanBranches += float64(s.BranchCount)
		sum.MeanLength += s.TotalLength

		sum.MaxSegments = max(sum.MaxSegments, s.SegmentCount)
		sum.MaxBranches = max(sum.MaxBranches, s.BranchCount)
		sum.MaxDepth = max(sum.MaxDepth, s.MaxDepth)
		sum.MaxBranchLevel = max(sum.MaxBranchLevel, s.MaxBranchLevel)
		if s.BranchCount > 0 {
			sum.Branched++
		}
	}
	n := float64(len(stats))
	sum.MeanNodes /= n
	sum.MeanSegments /= n
	sum.MeanBranches /= n
	sum.MeanLength /= n
	return sum
}

// WriteTable prints summaries as aligned columns
func WriteTable(w io.Writer, sums []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "preset\truns\tsegments\tbranches\tlength\tmax seg\tmax br\tdepth\tlevel\tbranched\t")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.2f\t%.1f\t%d\t%d\t%d\t%d\t%d\t\n",
			s.Name, s.Runs, s.MeanSegments, s.MeanBranches, s.MeanLength,
			s.MaxSegments, s.MaxBranches, s.MaxDepth, s.MaxBranchLevel, s.Branched)
	}
	return tw.Flush()
}
