package vmath

// --- Randomness ---

// GoldenGamma is the 64-bit golden ratio increment used to decorrelate derived seeds
const GoldenGamma = 0x9E3779B97F4A7C15

// FastRand is a xorshift64* stream
// It is a value type: copying it forks the sequence, and Fork derives independent children
// so recursive callers never share generator state
type FastRand struct {
	state uint64
}

// NewFastRand seeds a stream; the seed is scrambled so nearby seeds diverge immediately
func NewFastRand(seed uint64) FastRand {
	s := mix64(seed + GoldenGamma)
	if s == 0 {
		s = GoldenGamma
	}
	return FastRand{state: s}
}

// Next advances the stream and returns 64 random bits
func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * 0x2545F4914F6CDD1D
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) * (1.0 / (1 << 53))
}

// Range returns a uniform value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Signed returns a uniform value in [-1, 1)
func (r *FastRand) Signed() float64 {
	return r.Float64()*2 - 1
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Fork derives the k-th child stream without advancing r
// Children of the same parent with distinct k are decorrelated; the same (state, k) always yields the same child
func (r FastRand) Fork(k uint64) FastRand {
	s := mix64(r.state ^ ((k + 1) * GoldenGamma))
	if s == 0 {
		s = GoldenGamma
	}
	return FastRand{state: s}
}

// State exposes the raw state for logging and reproduction
func (r FastRand) State() uint64 {
	return r.state
}

// DeriveSeed combines a base seed with a frame counter
// XOR with the golden ratio product gives full avalanche on frame increment
func DeriveSeed(seed, frame uint64) uint64 {
	return seed ^ (frame * GoldenGamma)
}

// mix64 is the splitmix64 finalizer
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
