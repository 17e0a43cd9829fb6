package trajectory

import (
	"math/big"
	"testing"

	"github.com/gliu20/collatz-encoder/limb"
	"github.com/gliu20/collatz-encoder/radix"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t testing.TB, opts ...Option) *Codec {
	t.Helper()

	c, err := NewCodec(opts...)
	require.NoError(t, err)

	return c
}

// referenceTrajectory walks the shortcut Collatz map with math/big.
func referenceTrajectory(n *big.Int) *big.Int {
	x := new(big.Int).Set(n)
	one := big.NewInt(1)
	out := new(big.Int)

	i := 0
	for ; x.Cmp(one) != 0; i++ {
		if x.Bit(0) == 0 {
			x.Rsh(x, 1)
			continue
		}
		x.Mul(x, big.NewInt(3))
		x.Add(x, one)
		x.Rsh(x, 1)
		out.SetBit(out, i, 1)
	}

	return out.SetBit(out, i, 1)
}

func pow2ToBig(p *radix.Pow2) *big.Int {
	out := new(big.Int)
	for i := p.BitLength() - 1; i >= 0; i-- {
		out.SetBit(out, i, p.Bit(i))
	}

	return out
}

func TestEncode_Boundaries(t *testing.T) {
	c := newTestCodec(t)

	t.Run("one has only the terminal marker", func(t *testing.T) {
		traj := c.Encode(radix.CustomFromUint64(nil, 1))
		require.Equal(t, []limb.Limb{1}, traj.Words())
		require.Equal(t, 1, traj.BitLength())
	})

	t.Run("zero yields an empty trajectory", func(t *testing.T) {
		traj := c.Encode(radix.CustomFromUint64(nil, 0))
		require.Equal(t, 0, traj.Len())

		traj = c.Encode(radix.NewCustom(nil))
		require.Equal(t, 0, traj.Len())
	})

	t.Run("empty trajectory decodes to one", func(t *testing.T) {
		x, err := c.Decode(radix.NewPow2(nil))
		require.NoError(t, err)
		require.True(t, x.IsOne())
	})

	t.Run("encode consumes its input", func(t *testing.T) {
		x := radix.CustomFromUint64(nil, 27)
		c.Encode(x)
		require.True(t, x.IsOne())
	})
}

func TestEncode_KnownTrajectories(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{n: 2, want: 0b10},
		{n: 3, want: 0b100011}, // 3 -> 5 -> 8 -> 4 -> 2 -> 1
		{n: 4, want: 0b100},
		{n: 5, want: 0b10001}, // 5 -> 8 -> 4 -> 2 -> 1
		{n: 7, want: 0b100010010111},
	}

	c := newTestCodec(t)
	for _, tt := range tests {
		traj := c.Encode(radix.CustomFromUint64(nil, tt.n))
		require.Equal(t, new(big.Int).SetUint64(tt.want).Text(2), pow2ToBig(traj).Text(2), "n=%d", tt.n)
	}
}

func TestEncode_MatchesReference(t *testing.T) {
	c := newTestCodec(t)

	for n := int64(1); n <= 2000; n++ {
		x := big.NewInt(n)
		traj := c.Encode(radix.CustomFromUint64(nil, uint64(n)))
		require.Equal(t, referenceTrajectory(x).Text(2), pow2ToBig(traj).Text(2), "n=%d", n)
	}

	t.Run("multi digit values", func(t *testing.T) {
		x := new(big.Int).Lsh(big.NewInt(1), 300)
		x.Sub(x, big.NewInt(1))

		src := radix.NewCustom(nil)
		radix.ToCustom(src, radix.Pow2FromWords(nil, words(x)...))

		traj := c.Encode(src)
		require.Equal(t, referenceTrajectory(x).Text(2), pow2ToBig(traj).Text(2))
	})
}

func words(x *big.Int) []limb.Limb {
	var out []limb.Limb
	for _, w := range x.Bits() {
		out = append(out, limb.Limb(w))
	}

	return out
}

func requireRoundTrip(t *testing.T, c *Codec, x *radix.Custom) {
	t.Helper()

	want := x.Clone()
	traj := c.Encode(x)
	got, err := c.Decode(traj)
	require.NoError(t, err)

	require.True(t, want.Equal(got), "round trip of %s gave %s", want, got)
}

func TestRoundTrip_Counter(t *testing.T) {
	limit := 256 * 256 * 12
	if testing.Short() {
		limit = 256 * 256
	}

	c := newTestCodec(t, WithArena(limb.NewArena(0)))
	counter := radix.NewCustom(nil)

	for i := 1; i <= limit; i++ {
		counter.Increment()
		requireRoundTrip(t, c, counter.Clone())
	}
}

func TestRoundTrip_RangeSweeps(t *testing.T) {
	const iterations = 1024

	tests := []struct {
		name  string
		start uint64
		next  func(x *radix.Custom)
	}{
		{
			name:  "doubled minus one from three",
			start: 3,
			next: func(x *radix.Custom) {
				x.LeftShift()
				x.Decrement()
			},
		},
		{
			name:  "doubled plus one from one",
			start: 1,
			next: func(x *radix.Custom) {
				x.LeftShift()
				x.Increment()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCodec(t)
			x := radix.CustomFromUint64(nil, tt.start)

			for i := 0; i < iterations; i++ {
				requireRoundTrip(t, c, x.Clone())
				tt.next(x)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name  string
		words []limb.Limb
	}{
		{"odd step from two", []limb.Limb{0b11}},
		{"three low bits set", []limb.Limb{0b111}},
		{"odd step landing on one", []limb.Limb{0b101}},
		{"every bit set", []limb.Limb{^limb.Limb(0)}},
		{"valid low word under a bad high word", []limb.Limb{0b100011, 0b111}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj := radix.Pow2FromWords(nil, tt.words...)

			require.NotPanics(t, func() {
				x, err := c.Decode(traj)
				require.ErrorIs(t, err, ErrInvalid)
				require.Nil(t, x)
			})
		})
	}

	t.Run("codec stays usable after a rejection", func(t *testing.T) {
		_, err := c.Decode(radix.Pow2FromWords(nil, 0b111))
		require.ErrorIs(t, err, ErrInvalid)

		requireRoundTrip(t, c, radix.CustomFromUint64(nil, 27))
	})
}

func TestSteps(t *testing.T) {
	steps, odd := Steps(radix.NewPow2(nil))
	require.Zero(t, steps)
	require.Zero(t, odd)

	c := newTestCodec(t)
	steps, odd = Steps(c.Encode(radix.CustomFromUint64(nil, 3)))
	require.Equal(t, 5, steps)
	require.Equal(t, 2, odd)

	steps, odd = Steps(c.Encode(radix.CustomFromUint64(nil, 1)))
	require.Zero(t, steps)
	require.Zero(t, odd)
}

func TestCodec_Arena(t *testing.T) {
	arena := limb.NewArena(64)
	c := newTestCodec(t, WithArena(arena))
	require.Same(t, arena, c.Arena())

	requireRoundTrip(t, c, radix.CustomFromUint64(arena, 837799))
	c.Release()
}
