package radix

import "github.com/gliu20/collatz-encoder/limb"

// ToPow2 writes the value of src into dst, consuming src.
//
// The bits are peeled off from the least significant end: record src's parity,
// halve, and repeat until src reaches one, whose bit is recorded as the top bit.
// Each halving costs a pass over src, so the conversion is O(bits × digits).
// A zero src leaves dst empty.
func ToPow2(dst *Pow2, src *Custom) {
	dst.Reset()
	if src.IsZero() {
		return
	}

	dst.Reserve(src.BitLength()/limb.ContainerBits + 1)

	for i := 0; ; i++ {
		if !src.IsEven() {
			dst.SetBit(i)
		}
		if src.IsOne() {
			break
		}
		src.RightShift()
	}
}

// ToCustom writes the value of src into dst. src is only read.
//
// Horner's method from the most significant bit down: dst = 2·dst + bit.
func ToCustom(dst *Custom, src *Pow2) {
	dst.Reset()

	n := src.BitLength()
	dst.v.Reserve(n/limb.DigitBits + 2)
	dst.padZero()

	for i := n - 1; i >= 0; i-- {
		dst.LeftShift()
		if src.Bit(i) != 0 {
			dst.Increment()
		}
	}

	dst.Canonicalize()
}
