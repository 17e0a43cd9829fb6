package limb

import (
	"fmt"
	"math/bits"
	"strings"
)

// Vec is a growable circular buffer of limbs, least significant limb at index 0.
//
// The capacity is always a power of two so that logical indices map onto the
// backing array with a mask. Pushes and pops at either end are O(1) and never
// move the other limbs.
//
// Capacity management is explicit: PushTail and PushHead panic when the buffer is
// full, and callers call Reserve beforehand. A Vec is owned by a single goroutine.
type Vec struct {
	buf   []Limb
	head  int
	n     int
	arena *Arena
}

// NewVec creates an empty Vec with InitialCapacity limbs of room.
//
// Parameters:
//   - arena: Arena to draw backing arrays from (nil allocates from the heap)
//
// Returns:
//   - *Vec: An empty vector
func NewVec(arena *Arena) *Vec {
	return &Vec{
		buf:   arena.alloc(InitialCapacity),
		arena: arena,
	}
}

// NewVecFrom creates a Vec holding a copy of limbs.
func NewVecFrom(arena *Arena, limbs ...Limb) *Vec {
	v := NewVec(arena)
	v.Grow(len(limbs))
	for _, l := range limbs {
		v.PushTail(l)
	}

	return v
}

// Len returns the number of limbs in the window.
func (v *Vec) Len() int {
	return v.n
}

// Cap returns the capacity of the backing array.
func (v *Vec) Cap() int {
	return len(v.buf)
}

// Arena returns the arena the vector allocates from.
func (v *Vec) Arena() *Arena {
	return v.arena
}

func (v *Vec) index(i int) int {
	return (v.head + i) & (len(v.buf) - 1)
}

// At returns the i-th limb. Panics if i is outside [0, Len).
func (v *Vec) At(i int) Limb {
	if uint(i) >= uint(v.n) {
		panic(fmt.Sprintf("limb: index %d out of range [0, %d)", i, v.n))
	}

	return v.buf[v.index(i)]
}

// Set overwrites the i-th limb. Panics if i is outside [0, Len).
func (v *Vec) Set(i int, l Limb) {
	if uint(i) >= uint(v.n) {
		panic(fmt.Sprintf("limb: index %d out of range [0, %d)", i, v.n))
	}

	v.buf[v.index(i)] = l
}

// Head returns the least significant limb.
func (v *Vec) Head() Limb {
	return v.At(0)
}

// Tail returns the most significant limb.
func (v *Vec) Tail() Limb {
	return v.At(v.n - 1)
}

// PushTail appends l as the new most significant limb.
//
// Panics if the vector is full; call Grow(Len()+1) first.
func (v *Vec) PushTail(l Limb) {
	if v.n == len(v.buf) {
		panic("limb: push into full vec, Reserve was not called")
	}

	v.buf[v.index(v.n)] = l
	v.n++
}

// PushHead inserts l as the new least significant limb.
//
// Panics if the vector is full; call Grow(Len()+1) first.
func (v *Vec) PushHead(l Limb) {
	if v.n == len(v.buf) {
		panic("limb: push into full vec, Reserve was not called")
	}

	v.head = (v.head - 1) & (len(v.buf) - 1)
	v.buf[v.head] = l
	v.n++
}

// PopTail removes and returns the most significant limb. Panics if empty.
func (v *Vec) PopTail() Limb {
	if v.n == 0 {
		panic("limb: pop from empty vec")
	}

	i := v.index(v.n - 1)
	l := v.buf[i]
	v.buf[i] = 0
	v.n--

	return l
}

// PopHead removes and returns the least significant limb. Panics if empty.
func (v *Vec) PopHead() Limb {
	if v.n == 0 {
		panic("limb: pop from empty vec")
	}

	l := v.buf[v.head]
	v.buf[v.head] = 0
	v.head = (v.head + 1) & (len(v.buf) - 1)
	v.n--

	return l
}

// IsWellSized reports whether the current capacity suits a length of n limbs.
//
// A capacity fits when it holds n limbs and is no more than four times n; small
// vectors at InitialCapacity always fit.
func (v *Vec) IsWellSized(n int) bool {
	c := len(v.buf)
	if n > c {
		return false
	}

	return n > c/4 || c <= InitialCapacity
}

// Reserve makes room for at least n limbs.
//
// Growth picks the smallest power of two >= n. When n (or Len, whichever is
// larger) has dropped under a quarter of the capacity, the buffer is shrunk to
// the smallest power of two >= 2n, leaving headroom so that a length hovering at
// the boundary does not reallocate on every call. Reserve never discards limbs.
func (v *Vec) Reserve(n int) {
	if n < v.n {
		n = v.n
	}

	if v.IsWellSized(n) {
		return
	}

	target := n
	if n <= len(v.buf) {
		target = 2 * n
	}

	v.resize(max(roundUpPow2(target), InitialCapacity))
}

// Grow makes room for at least n limbs without ever shrinking, so capacity set
// up by an earlier Reserve survives the pushes that fill it.
func (v *Vec) Grow(n int) {
	if n <= len(v.buf) {
		return
	}

	v.resize(max(roundUpPow2(n), InitialCapacity))
}

func (v *Vec) resize(capacity int) {
	if capacity == len(v.buf) {
		return
	}

	buf := v.arena.alloc(capacity)
	for i := 0; i < v.n; i++ {
		buf[i] = v.buf[v.index(i)]
	}

	v.arena.free(v.buf)
	v.buf = buf
	v.head = 0
}

// Canonicalize trims zero limbs from the most significant end, keeping at least
// one limb. An empty vector stays empty. If limbs were trimmed the buffer is
// shrunk by the Reserve rules.
func (v *Vec) Canonicalize() {
	trimmed := false
	for v.n > 1 && v.buf[v.index(v.n-1)] == 0 {
		v.PopTail()
		trimmed = true
	}

	if trimmed {
		v.Reserve(v.n)
	}
}

// Reset empties the vector without releasing its backing array.
func (v *Vec) Reset() {
	clear(v.buf)
	v.head = 0
	v.n = 0
}

// CopyFrom replaces the contents of v with a copy of src.
func (v *Vec) CopyFrom(src *Vec) {
	if v == src {
		return
	}

	v.Reset()
	v.Reserve(src.n)
	for i := 0; i < src.n; i++ {
		v.buf[i] = src.buf[src.index(i)]
	}
	v.n = src.n
}

// Clone returns an independent copy of v drawing from the same arena.
func (v *Vec) Clone() *Vec {
	c := NewVec(v.arena)
	c.CopyFrom(v)

	return c
}

// Limbs returns a copy of the window, least significant limb first.
func (v *Vec) Limbs() []Limb {
	out := make([]Limb, v.n)
	for i := range out {
		out[i] = v.buf[v.index(i)]
	}

	return out
}

// Release hands the backing array back to the arena. The vector must not be
// used afterwards.
func (v *Vec) Release() {
	v.arena.free(v.buf)
	v.buf = nil
	v.head = 0
	v.n = 0
}

// String dumps the window as fixed-width hex limbs, least significant first.
func (v *Vec) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "len: %d  cap: %d ", v.n, len(v.buf))
	for i := 0; i < v.n; i++ {
		fmt.Fprintf(&sb, " %016x", v.buf[v.index(i)])
	}

	return sb.String()
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
