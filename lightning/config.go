package lightning

import (
	"fmt"

	"github.com/lixenwraith/lightning/vmath"
)

// Config holds the tunable generation parameters
// It is a value type; copies are independent
type Config struct {
	// Seed selects the random stream; equal seeds reproduce equal trees
	Seed uint64 `toml:"seed"`

	// Alpha is the branch-probability decay rate per depth level, typically 0.3-0.7
	Alpha float64 `toml:"alpha"`

	// Beta scales perpendicular midpoint displacement relative to segment length
	Beta float64 `toml:"beta"`

	// Gamma is the base branch probability at depth 0
	Gamma float64 `toml:"gamma"`

	// MaxDepth is the subdivision recursion ceiling
	MaxDepth int `toml:"max_depth"`

	// MaxBranchDepth is the nested-branch ceiling; 0 disables branching
	MaxBranchDepth int `toml:"max_branch_depth"`
}

// DefaultConfig returns the balanced parameter set (the Classic preset with seed 0)
func DefaultConfig() Config {
	return Config{
		Seed:           0,
		Alpha:          0.5,
		Beta:           0.4,
		Gamma:          0.3,
		MaxDepth:       8,
		MaxBranchDepth: 3,
	}
}

// WithSeed returns a copy of c using seed
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	return c
}

// Validate reports non-finite floats and negative depth limits
func (c Config) Validate() error {
	if !c.finite() {
		return fmt.Errorf("config alpha=%v beta=%v gamma=%v: %w", c.Alpha, c.Beta, c.Gamma, ErrNonFinite)
	}
	if c.MaxDepth < 0 || c.MaxBranchDepth < 0 {
		return fmt.Errorf("config max_depth=%d max_branch_depth=%d: %w", c.MaxDepth, c.MaxBranchDepth, ErrNegativeDepth)
	}
	return nil
}

// Clamped returns c with probability-like values in [0,1], Beta non-negative,
// and depth limits within [0, hard limit]
// Non-finite floats collapse to 0
func (c Config) Clamped() Config {
	c.Alpha = clampFinite01(c.Alpha)
	c.Gamma = clampFinite01(c.Gamma)
	if !vmath.IsFinite(c.Beta) || c.Beta < 0 {
		c.Beta = 0
	}
	c.MaxDepth, c.MaxBranchDepth = c.limits()
	return c
}

func (c Config) String() string {
	return fmt.Sprintf("seed=%d alpha=%.2f beta=%.2f gamma=%.2f depth=%d branch=%d",
		c.Seed, c.Alpha, c.Beta, c.Gamma, c.MaxDepth, c.MaxBranchDepth)
}

func (c Config) finite() bool {
	return vmath.IsFinite(c.Alpha) && vmath.IsFinite(c.Beta) && vmath.IsFinite(c.Gamma)
}

// limits applies the hard recursion ceilings
func (c Config) limits() (depth, branch int) {
	return vmath.ClampInt(c.MaxDepth, 0, MaxDepthLimit), vmath.ClampInt(c.MaxBranchDepth, 0, MaxBranchDepthLimit)
}

func clampFinite01(v float64) float64 {
	if !vmath.IsFinite(v) {
		return 0
	}
	return vmath.Clamp01(v)
}
