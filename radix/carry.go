package radix

import "github.com/gliu20/collatz-encoder/limb"

// carryPass rewrites every limb of v as step(i, limb) plus the running carry,
// reduced modulo limb.Base, and returns the carry out of the top limb.
//
// step may read limb i+1: it has not been rewritten yet when limb i is computed.
// step(i, d) + carry must not overflow a Limb, which holds for any step bounded by
// 2*limb.MaxVal since the carry never exceeds 1.
func carryPass(v *limb.Vec, carry limb.Limb, step func(i int, d limb.Limb) limb.Limb) limb.Limb {
	n := v.Len()
	for i := 0; i < n; i++ {
		sum := step(i, v.At(i)) + carry
		v.Set(i, sum%limb.Base)
		carry = sum / limb.Base
	}

	return carry
}

// carryRipple adds carry at limb 0 and stops as soon as it has been absorbed.
// It returns whatever carry is left past the top limb.
func carryRipple(v *limb.Vec, carry limb.Limb) limb.Limb {
	n := v.Len()
	for i := 0; i < n && carry != 0; i++ {
		sum := v.At(i) + carry
		v.Set(i, sum%limb.Base)
		carry = sum / limb.Base
	}

	return carry
}

// borrowRipple subtracts one at limb 0 and stops at the first non-zero limb.
// It reports false when every limb was zero.
func borrowRipple(v *limb.Vec) bool {
	n := v.Len()
	for i := 0; i < n; i++ {
		d := v.At(i)
		if d != 0 {
			v.Set(i, d-1)
			return true
		}
		v.Set(i, limb.MaxVal)
	}

	return false
}

// dividePass divides v by divisor, which must divide limb.Base, folding the
// remainder of each limb into the one below it. The remainder of the whole value
// is dropped.
func dividePass(v *limb.Vec, divisor limb.Limb) {
	share := limb.Base / divisor

	n := v.Len()
	for i := 0; i < n; i++ {
		var next limb.Limb
		if i+1 < n {
			next = v.At(i + 1)
		}
		v.Set(i, v.At(i)/divisor+(next%divisor)*share)
	}
}
