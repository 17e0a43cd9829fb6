package radix

import (
	"math/bits"

	"github.com/gliu20/collatz-encoder/limb"
)

// Pow2 is an unsigned integer written in base 2^64, least significant word first,
// with bit-indexed access. Bit i lives in word i/64 at position i%64.
type Pow2 struct {
	v *limb.Vec
}

// NewPow2 creates a Pow2 holding zero (no words).
func NewPow2(arena *limb.Arena) *Pow2 {
	return &Pow2{v: limb.NewVec(arena)}
}

// Pow2FromWords creates a Pow2 from machine words, least significant first.
func Pow2FromWords(arena *limb.Arena, words ...limb.Limb) *Pow2 {
	return &Pow2{v: limb.NewVecFrom(arena, words...)}
}

// Kind returns KindPowerOfTwo.
func (p *Pow2) Kind() Kind {
	return KindPowerOfTwo
}

// Len returns the number of stored words, significant or not.
func (p *Pow2) Len() int {
	return p.v.Len()
}

// Word returns the i-th word, or 0 past the stored length.
func (p *Pow2) Word(i int) limb.Limb {
	if i >= p.v.Len() {
		return 0
	}

	return p.v.At(i)
}

// Words returns a copy of the stored words, least significant first.
func (p *Pow2) Words() []limb.Limb {
	return p.v.Limbs()
}

// AppendWord pushes w as the new most significant word.
func (p *Pow2) AppendWord(w limb.Limb) {
	p.v.Grow(p.v.Len() + 1)
	p.v.PushTail(w)
}

// Reserve makes room for n words.
func (p *Pow2) Reserve(n int) {
	p.v.Reserve(n)
}

// SetBit sets bit i, growing the value to cover word i/64.
func (p *Pow2) SetBit(i int) {
	word := i / limb.ContainerBits

	if n := word + 1; p.v.Len() < n {
		p.v.Grow(n)
		for p.v.Len() < n {
			p.v.PushTail(0)
		}
	}

	p.v.Set(word, p.v.At(word)|1<<(uint(i)%limb.ContainerBits))
}

// Bit returns bit i as 0 or 1. Bits past the stored length are leading zeros.
func (p *Pow2) Bit(i int) uint {
	return uint(p.Word(i/limb.ContainerBits)>>(uint(i)%limb.ContainerBits)) & 1
}

// BitLength returns the number of significant bits.
func (p *Pow2) BitLength() int {
	return bitLength(p.v)
}

// OnesCount returns the number of set bits.
func (p *Pow2) OnesCount() int {
	count := 0
	for i := 0; i < p.v.Len(); i++ {
		count += bits.OnesCount64(p.v.At(i))
	}

	return count
}

// Canonicalize trims zero words from the top, keeping at least one word.
func (p *Pow2) Canonicalize() {
	p.v.Canonicalize()
}

// IsZero reports whether p is zero.
func (p *Pow2) IsZero() bool {
	p.v.Canonicalize()

	return p.v.Len() == 0 || (p.v.Len() == 1 && p.v.Head() == 0)
}

// Equal reports whether p and o hold the same value. Both are canonicalized.
func (p *Pow2) Equal(o *Pow2) bool {
	return equalVecs(p.v, o.v)
}

// CopyFrom overwrites p with the value of src.
func (p *Pow2) CopyFrom(src *Pow2) {
	p.v.CopyFrom(src.v)
}

// Clone returns an independent copy of p.
func (p *Pow2) Clone() *Pow2 {
	return &Pow2{v: p.v.Clone()}
}

// Reset sets p to zero (no words).
func (p *Pow2) Reset() {
	p.v.Reset()
}

// Release returns p's storage to its arena. p must not be used afterwards.
func (p *Pow2) Release() {
	p.v.Release()
}

func (p *Pow2) String() string {
	return "pow2 " + p.v.String()
}

// bitLength canonicalizes v and returns the bit length of its top limb plus
// ContainerBits for every limb below it.
func bitLength(v *limb.Vec) int {
	v.Canonicalize()
	if v.Len() == 0 {
		return 0
	}

	return (v.Len()-1)*limb.ContainerBits + bits.Len64(v.Tail())
}

func equalVecs(a, b *limb.Vec) bool {
	a.Canonicalize()
	b.Canonicalize()

	if isZeroVec(a) || isZeroVec(b) {
		return isZeroVec(a) && isZeroVec(b)
	}

	if a.Len() != b.Len() {
		return false
	}

	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}

	return true
}

func isZeroVec(v *limb.Vec) bool {
	return v.Len() == 0 || (v.Len() == 1 && v.Head() == 0)
}
