package lightning

// Energy
const (
	// RootEnergy is the energy of the start node
	RootEnergy = 1.0

	// TipEnergy is the energy of the trunk end node
	TipEnergy = 0.8

	// EnergyDepthDecay pulls a midpoint's energy toward its segment's far end as depth grows
	// decay(d) = 1 / (1 + EnergyDepthDecay*d), always in (0, 1]
	EnergyDepthDecay = 0.1

	// BranchEnergyScale is the tip energy of a branch relative to its spawn node
	BranchEnergyScale = 0.5
)

// Branch geometry
const (
	// BranchLengthScale is the branch length relative to the split segment, before level decay
	BranchLengthScale = 0.5

	// BranchPerpSpread bounds the sideways component of a branch direction
	BranchPerpSpread = 0.6

	// ForwardBiasMin and ForwardBiasMax bound the weight of the toward-target component
	ForwardBiasMin = 0.3
	ForwardBiasMax = 0.8
)

// Termination
const (
	// MinSegmentLength stops subdivision of degenerate segments
	MinSegmentLength = 1e-4

	// MaxDepthLimit caps Config.MaxDepth; the trunk alone holds 2^MaxDepth segments
	MaxDepthLimit = 20

	// MaxBranchDepthLimit caps Config.MaxBranchDepth
	MaxBranchDepthLimit = 16
)

// Fork indices used to derive child streams from a split's stream
const (
	forkLeft uint64 = iota
	forkRight
	forkBranch
)
