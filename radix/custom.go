package radix

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gliu20/collatz-encoder/limb"
)

// ErrDigitOutOfRange is returned when a custom radix digit is not below limb.Base.
var ErrDigitOutOfRange = errors.New("radix: digit out of range for custom base")

// Custom is an unsigned integer written in base limb.Base, least significant
// digit first.
//
// Every arithmetic method mutates the receiver. Before a carry producing pass the
// value is guarded: an empty value receives a zero limb, and a value whose top
// limb is non-zero receives an extra zero limb so the carry has somewhere to land.
type Custom struct {
	v *limb.Vec
}

// NewCustom creates a Custom holding zero (no limbs).
func NewCustom(arena *limb.Arena) *Custom {
	return &Custom{v: limb.NewVec(arena)}
}

// CustomFromUint64 creates a Custom holding u.
func CustomFromUint64(arena *limb.Arena, u uint64) *Custom {
	c := NewCustom(arena)
	c.v.Grow(2)
	c.v.PushTail(u % limb.Base)
	if hi := u / limb.Base; hi != 0 {
		c.v.PushTail(hi)
	}

	return c
}

// CustomFromDigits creates a Custom from base limb.Base digits, least significant first.
//
// Returns:
//   - *Custom: The new value
//   - error: ErrDigitOutOfRange if any digit is >= limb.Base
func CustomFromDigits(arena *limb.Arena, digits ...limb.Limb) (*Custom, error) {
	for i, d := range digits {
		if d >= limb.Base {
			return nil, fmt.Errorf("%w: digit %d is %#x", ErrDigitOutOfRange, i, d)
		}
	}

	return &Custom{v: limb.NewVecFrom(arena, digits...)}, nil
}

// Kind returns KindCustomBase6.
func (c *Custom) Kind() Kind {
	return KindCustomBase6
}

// Len returns the number of stored digits, significant or not.
func (c *Custom) Len() int {
	return c.v.Len()
}

// Digits returns a copy of the stored digits, least significant first.
func (c *Custom) Digits() []limb.Limb {
	return c.v.Limbs()
}

func (c *Custom) padZero() {
	c.v.Grow(c.v.Len() + 1)
	c.v.PushTail(0)
}

func (c *Custom) padToLength(n int) {
	c.v.Grow(n)
	for c.v.Len() < n {
		c.v.PushTail(0)
	}
}

func (c *Custom) guardAgainstEmpty() {
	if c.v.Len() == 0 {
		c.padZero()
	}
}

func (c *Custom) guardAgainstOverflow() {
	c.guardAgainstEmpty()
	if c.v.Tail() != 0 {
		c.padZero()
	}
}

func (c *Custom) digit(i int) limb.Limb {
	if i >= c.v.Len() {
		return 0
	}

	return c.v.At(i)
}

// Add sets c to c + b. b keeps its value but is canonicalized.
func (c *Custom) Add(b *Custom) {
	c.v.Canonicalize()
	b.v.Canonicalize()
	c.padToLength(max(c.v.Len(), b.v.Len()) + 1)

	carryPass(c.v, 0, func(i int, d limb.Limb) limb.Limb {
		return d + b.digit(i)
	})
}

// Increment sets c to c + 1.
func (c *Custom) Increment() {
	c.guardAgainstOverflow()
	carryRipple(c.v, 1)
}

// Decrement sets c to c - 1. Panics if c is zero.
func (c *Custom) Decrement() {
	c.guardAgainstEmpty()
	if !borrowRipple(c.v) {
		panic("radix: decrement of zero")
	}
}

// LeftShift sets c to 2c.
func (c *Custom) LeftShift() {
	c.guardAgainstOverflow()

	carryPass(c.v, 0, func(_ int, d limb.Limb) limb.Limb {
		return d << 1
	})
}

// RightShift sets c to floor(c / 2).
func (c *Custom) RightShift() {
	c.guardAgainstEmpty()
	dividePass(c.v, 2)
}

// DivideByThree sets c to floor(c / 3). The Collatz decoder only calls it on
// multiples of three, where the quotient is exact.
func (c *Custom) DivideByThree() {
	c.guardAgainstEmpty()
	dividePass(c.v, 3)
}

// FusedIncrementHalve sets c to floor((c + 1) / 2) in a single pass.
//
// Halving drops the low bit of c; adding it back as the incoming carry yields the
// rounded-up half without materialising c + 1.
func (c *Custom) FusedIncrementHalve() {
	c.guardAgainstEmpty()

	n := c.v.Len()
	carryPass(c.v, c.v.Head()&1, func(i int, d limb.Limb) limb.Limb {
		var next limb.Limb
		if i+1 < n {
			next = c.v.At(i + 1)
		}

		return d/2 + (next%2)*limb.Half
	})
}

// Canonicalize trims non-significant zero digits, keeping at least one digit.
func (c *Custom) Canonicalize() {
	c.v.Canonicalize()
}

// IsEven reports whether c is even. The base is even, so only the lowest digit matters.
func (c *Custom) IsEven() bool {
	if c.v.Len() == 0 {
		return true
	}

	return c.v.Head()&1 == 0
}

// Mod3 returns c mod 3. The base is a multiple of three, so only the lowest
// digit matters.
func (c *Custom) Mod3() uint64 {
	return c.digit(0) % 3
}

// IsZero reports whether c is zero.
func (c *Custom) IsZero() bool {
	c.v.Canonicalize()

	return c.v.Len() == 0 || (c.v.Len() == 1 && c.v.Head() == 0)
}

// IsOne reports whether c is one.
func (c *Custom) IsOne() bool {
	c.v.Canonicalize()

	return c.v.Len() == 1 && c.v.Head() == 1
}

// Equal reports whether c and o hold the same value. Both are canonicalized.
func (c *Custom) Equal(o *Custom) bool {
	return equalVecs(c.v, o.v)
}

// BitLength returns the bit count of the top digit plus 64 bits for every digit
// below it.
//
// Digits are narrower than a limb, so for multi-digit values this is an upper
// bound on the binary length rather than the exact figure.
func (c *Custom) BitLength() int {
	return bitLength(c.v)
}

// Uint64 returns c as a uint64 and reports whether it fits.
func (c *Custom) Uint64() (uint64, bool) {
	c.v.Canonicalize()

	var acc uint64
	for i := c.v.Len() - 1; i >= 0; i-- {
		hi, lo := bits.Mul64(acc, limb.Base)
		if hi != 0 {
			return 0, false
		}

		var carry uint64
		acc, carry = bits.Add64(lo, c.v.At(i), 0)
		if carry != 0 {
			return 0, false
		}
	}

	return acc, true
}

// CopyFrom overwrites c with the value of src.
func (c *Custom) CopyFrom(src *Custom) {
	c.v.CopyFrom(src.v)
}

// Clone returns an independent copy of c.
func (c *Custom) Clone() *Custom {
	return &Custom{v: c.v.Clone()}
}

// Reset sets c to zero (no digits).
func (c *Custom) Reset() {
	c.v.Reset()
}

// Release returns c's storage to its arena. c must not be used afterwards.
func (c *Custom) Release() {
	c.v.Release()
}

func (c *Custom) String() string {
	return "custom " + c.v.String()
}
