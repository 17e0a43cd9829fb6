package radix

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/gliu20/collatz-encoder/limb"
	"github.com/stretchr/testify/require"
)

var bigBase = new(big.Int).SetUint64(limb.Base)

func customToBig(c *Custom) *big.Int {
	out := new(big.Int)
	digits := c.Digits()
	for i := len(digits) - 1; i >= 0; i-- {
		out.Mul(out, bigBase)
		out.Add(out, new(big.Int).SetUint64(digits[i]))
	}

	return out
}

func customFromBig(t *testing.T, b *big.Int) *Custom {
	t.Helper()

	rest := new(big.Int).Set(b)
	digits := make([]limb.Limb, 0)
	mod := new(big.Int)
	for rest.Sign() > 0 {
		rest.DivMod(rest, bigBase, mod)
		digits = append(digits, mod.Uint64())
	}

	c, err := CustomFromDigits(nil, digits...)
	require.NoError(t, err)

	return c
}

func pow2ToBig(p *Pow2) *big.Int {
	out := new(big.Int)
	words := p.Words()
	for i := len(words) - 1; i >= 0; i-- {
		out.Lsh(out, limb.ContainerBits)
		out.Or(out, new(big.Int).SetUint64(words[i]))
	}

	return out
}

func pow2FromBig(b *big.Int) *Pow2 {
	p := NewPow2(nil)
	mask := new(big.Int).SetUint64(^uint64(0))
	rest := new(big.Int).Set(b)
	for rest.Sign() > 0 {
		p.AppendWord(new(big.Int).And(rest, mask).Uint64())
		rest.Rsh(rest, limb.ContainerBits)
	}

	return p
}

// randomBig returns a value of up to maxBytes random bytes, never zero.
func randomBig(rng *rand.Rand, maxBytes int) *big.Int {
	buf := make([]byte, 1+rng.IntN(maxBytes))
	for i := range buf {
		buf[i] = byte(rng.Uint32())
	}
	buf[0] |= 1

	return new(big.Int).SetBytes(buf)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(0x5eed, 0xc011a72))
}

func requireBigEqual(t *testing.T, want, got *big.Int, msgAndArgs ...any) {
	t.Helper()
	require.Equal(t, want.String(), got.String(), msgAndArgs...)
}
