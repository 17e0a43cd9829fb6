package limb

import "github.com/gliu20/collatz-encoder/internal/pool"

// DefaultArenaMaxCapacity is the largest backing array, in limbs, retained by an
// Arena created with NewArena(0).
const DefaultArenaMaxCapacity = 256 * 256

// Arena recycles the backing arrays of the vectors created from it.
//
// An Arena replaces a process-wide free list: each owner creates its own and
// threads it through the constructors that should share it, so independent users
// (or tests) never observe each other's buffers. A nil *Arena is valid and
// allocates from the Go heap without recycling.
type Arena struct {
	slices *pool.LimbSlicePool
}

// NewArena creates an Arena that keeps backing arrays of up to maxCapacity limbs.
//
// Parameters:
//   - maxCapacity: Largest array kept for reuse, in limbs (<= 0 selects DefaultArenaMaxCapacity)
//
// Returns:
//   - *Arena: A new, empty arena
func NewArena(maxCapacity int) *Arena {
	if maxCapacity <= 0 {
		maxCapacity = DefaultArenaMaxCapacity
	}

	return &Arena{slices: pool.NewLimbSlicePool(maxCapacity)}
}

// MaxCapacity returns the largest backing array retained by the arena.
func (a *Arena) MaxCapacity() int {
	if a == nil {
		return 0
	}

	return a.slices.MaxCapacity()
}

func (a *Arena) alloc(size int) []Limb {
	if a == nil {
		return make([]Limb, size)
	}

	return a.slices.Get(size)
}

func (a *Arena) free(buf []Limb) {
	if a == nil || buf == nil {
		return
	}

	a.slices.Put(buf)
}
