package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as bits in an atomic.Uint64
// Zero value holds 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	return f.update(func(old float64) (float64, bool) { return old + delta, true })
}

// Max raises the value to val if val is larger and returns the result
func (f *AtomicFloat) Max(val float64) float64 {
	return f.update(func(old float64) (float64, bool) { return val, val > old })
}

func (f *AtomicFloat) update(fn func(old float64) (float64, bool)) float64 {
	for {
		bits := f.bits.Load()
		old := math.Float64frombits(bits)
		next, ok := fn(old)
		if !ok {
			return old
		}
		if f.bits.CompareAndSwap(bits, math.Float64bits(next)) {
			return next
		}
	}
}
