package lightning

import "errors"

// Sentinel errors; callers branch with errors.Is
var (
	// ErrNonFinite rejects NaN or infinite points and config values at the API boundary
	ErrNonFinite = errors.New("lightning: non-finite input")

	// ErrNegativeDepth is reported by Config.Validate for negative depth limits
	// Generate itself treats negative limits as zero
	ErrNegativeDepth = errors.New("lightning: negative depth limit")
)
