// Package limb provides the fixed-width digit type and the growable circular
// container that every multi-limb number in this module is stored in.
//
// A Limb is one 64-bit digit. What a digit means depends on the numeral system of
// the number that owns the container: the custom radix uses Base (2^63 - 2) as its
// base, the power-of-two radix uses the full machine word. Constants for both live
// here because both radices share the same container.
//
// # Container
//
// Vec is a circular buffer with a power-of-two capacity and a logical window of
// length Len starting at a head offset. Limbs can be pushed and popped at both
// ends in O(1) without shifting the remaining limbs. Pushes never grow the
// container implicitly; callers make room with Grow before pushing:
//
//	v := limb.NewVec(nil)
//	v.Grow(v.Len() + 1)
//	v.PushTail(42)
//
// Grow only ever enlarges the buffer. Reserve also shrinks it when the length
// has fallen well below the capacity, and Canonicalize calls it after trimming.
//
// # Arena
//
// Backing arrays may be recycled through an Arena shared by several vectors.
// Passing a nil Arena allocates directly from the Go heap.
package limb

// Limb is a single fixed-width digit, least significant limb first.
type Limb = uint64

const (
	// ContainerBits is the width of a limb in bits.
	ContainerBits = 64

	// ContainerBytes is the width of a limb in bytes.
	ContainerBytes = ContainerBits / 8

	// DigitBits is the number of bits a custom radix digit can occupy.
	DigitBits = ContainerBits - 1

	// Base is the custom radix. It is divisible by 6, so a digit can be halved or
	// divided by three with a correction taken from the next digit alone.
	Base Limb = 1<<DigitBits - 2

	// MaxVal is the largest custom radix digit.
	MaxVal = Base - 1

	// Half is Base / 2.
	Half = Base / 2

	// Third is Base / 3.
	Third = Base / 3
)

// InitialCapacity is the capacity of a freshly created Vec and the smallest
// capacity Reserve ever settles on.
const InitialCapacity = 16
