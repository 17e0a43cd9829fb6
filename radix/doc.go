// Package radix implements the two numeral systems the Collatz codec works in and
// the conversions between them.
//
// # Custom radix
//
// Custom stores an unsigned integer in base B = 2^63 - 2. B is divisible by both 2
// and 3, which turns halving and division by three into a single forward pass
// where every digit only needs a correction from the digit above it:
//
//	d_i / 2 = (d_i div 2) + (d_{i+1} mod 2) * B/2
//	d_i / 3 = (d_i div 3) + (d_{i+1} mod 3) * B/3
//
// Addition, increment, decrement and doubling are ordinary carry passes reduced
// modulo B. Because B is not a power of two, doubling is a genuine multiply and
// reduce rather than a bit shift, and converting to or from a word-addressable
// form requires ToPow2 / ToCustom.
//
// # Power-of-two radix
//
// Pow2 stores an unsigned integer in base 2^64 and offers bit-indexed access. It
// holds raw file bytes and encoded trajectories.
//
// # Types
//
// The two radices are distinct types so that a power-of-two value can never be
// handed to custom radix arithmetic without an explicit conversion. Values are
// mutated in place and owned by one goroutine; Clone and CopyFrom always produce
// independent storage.
package radix
