package pool

import (
	"math/bits"
	"sync"
)

// maxSizeClass bounds the number of power-of-two size classes a LimbSlicePool tracks.
const maxSizeClass = 48

// LimbSlicePool recycles limb backing arrays by power-of-two size class.
//
// Every slice handed out by Get has a power-of-two length and is zeroed. Slices
// larger than maxCapacity are never retained, which bounds how much memory an idle
// pool can pin.
//
// A LimbSlicePool is an explicit value: callers create one and pass it to the
// containers that should share it. The zero value is not usable; use
// NewLimbSlicePool.
type LimbSlicePool struct {
	classes     [maxSizeClass]sync.Pool
	maxCapacity int
}

// NewLimbSlicePool creates a pool that retains backing arrays of up to maxCapacity limbs.
//
// Parameters:
//   - maxCapacity: Largest slice length (in limbs) kept for reuse; values <= 0 retain everything
//
// Returns:
//   - *LimbSlicePool: An empty pool
func NewLimbSlicePool(maxCapacity int) *LimbSlicePool {
	return &LimbSlicePool{maxCapacity: maxCapacity}
}

// Get returns a zeroed slice whose length is the power of two size.
//
// Panics if size is not a positive power of two.
func (p *LimbSlicePool) Get(size int) []uint64 {
	class := sizeClass(size)

	if ptr, ok := p.classes[class].Get().(*[]uint64); ok {
		s := *ptr
		clear(s)

		return s
	}

	return make([]uint64, size)
}

// Put hands a slice back for reuse.
//
// Slices with a non power-of-two length, or longer than the pool's maxCapacity,
// are dropped.
func (p *LimbSlicePool) Put(s []uint64) {
	n := len(s)
	if n == 0 || n&(n-1) != 0 {
		return
	}

	if p.maxCapacity > 0 && n > p.maxCapacity {
		return
	}

	s = s[:n:n]
	p.classes[sizeClass(n)].Put(&s)
}

// MaxCapacity returns the largest slice length retained by the pool.
func (p *LimbSlicePool) MaxCapacity() int {
	return p.maxCapacity
}

func sizeClass(size int) int {
	if size <= 0 || size&(size-1) != 0 {
		panic("pool: size must be a positive power of two")
	}

	class := bits.TrailingZeros(uint(size))
	if class >= maxSizeClass {
		panic("pool: size class out of range")
	}

	return class
}
