// Package atomic_float provides a lock-free float64 for values written by a
// single estimator while being read concurrently, e.g. Q-values displayed by
// live views during training.
package atomic_float

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AtomicFloat64 encapsulates a float64 for non-locking atomic operations.
// The zero value is usable and holds 0.0.
type AtomicFloat64 struct {
	val float64
}

// NewAtomicFloat64 returns a float initialized to val.
func NewAtomicFloat64(val float64) *AtomicFloat64 {
	return &AtomicFloat64{val: val}
}

// AtomicRead returns the value, synchronized with main memory.
func (af *AtomicFloat64) AtomicRead() float64 {
	bits := atomic.LoadUint64((*uint64)(unsafe.Pointer(&af.val)))
	return math.Float64frombits(bits)
}

// AtomicAdd attempts a single compare-and-swap of val+addend. A false return
// means the value changed underneath the caller, who decides whether to
// retry, recompute or drop the update; a blind retry loop would hide lost
// updates.
func (af *AtomicFloat64) AtomicAdd(addend float64) (newVal float64, succeeded bool) {
	old := af.AtomicRead()
	newVal = old + addend
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return
}

// AtomicSet attempts a single compare-and-swap to newVal.
func (af *AtomicFloat64) AtomicSet(newVal float64) (succeeded bool) {
	old := af.AtomicRead()
	return atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
}
