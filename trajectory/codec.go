// Package trajectory maps positive integers to their Collatz trajectories and
// back.
//
// A trajectory is a bit string in which bit i is set when step i of the
// shortcut Collatz map was an odd step, x -> (3x+1)/2. Even steps, x -> x/2,
// leave their bit clear. The walk stops when x reaches 1, and that step is
// marked with a final set bit, so the trajectory's top bit is always the
// terminal marker. Because every positive integer has exactly one trajectory
// and the odd step can be undone, the map is a bijection between positive
// integers and the trajectories that the decoder accepts.
package trajectory

import (
	"errors"
	"fmt"

	"github.com/gliu20/collatz-encoder/internal/options"
	"github.com/gliu20/collatz-encoder/limb"
	"github.com/gliu20/collatz-encoder/radix"
)

// ErrInvalid is returned by Decode for a bit string that Encode never produces.
var ErrInvalid = errors.New("trajectory: invalid trajectory")

// Codec encodes and decodes trajectories.
//
// A Codec keeps a scratch value between calls and is not safe for concurrent
// use. The zero value is not usable; create one with NewCodec.
type Codec struct {
	arena   *limb.Arena
	scratch *radix.Custom
}

// Config holds the settings of a Codec.
type Config struct {
	Arena *limb.Arena
}

// Option configures a Codec.
type Option = options.Option[*Config]

// WithArena makes the codec draw its values from arena.
func WithArena(arena *limb.Arena) Option {
	return options.NoError(func(c *Config) {
		c.Arena = arena
	})
}

// NewCodec creates a Codec.
//
// Parameters:
//   - opts: Optional settings (WithArena)
//
// Returns:
//   - *Codec: A ready codec
//   - error: The first error returned by an option
func NewCodec(opts ...Option) (*Codec, error) {
	cfg, err := options.Build(func() *Config { return &Config{} }, opts...)
	if err != nil {
		return nil, err
	}

	return &Codec{
		arena:   cfg.Arena,
		scratch: radix.NewCustom(cfg.Arena),
	}, nil
}

// Arena returns the arena the codec allocates from, possibly nil.
func (c *Codec) Arena() *limb.Arena {
	return c.arena
}

// Encode returns the trajectory of x and consumes x: on return x holds one,
// or zero if it started at zero.
//
// Zero has no trajectory and yields an empty one.
func (c *Codec) Encode(x *radix.Custom) *radix.Pow2 {
	t := radix.NewPow2(c.arena)

	if x.IsZero() {
		return t
	}

	i := 0
	for ; !x.IsOne(); i++ {
		if x.IsEven() {
			x.RightShift()
			continue
		}

		// (3x+1)/2 == x + (x+1)/2 for odd x
		c.scratch.CopyFrom(x)
		c.scratch.FusedIncrementHalve()
		x.Add(c.scratch)
		t.SetBit(i)
	}
	t.SetBit(i)

	return t
}

// Decode replays trajectory t backwards from one and returns the integer it
// started from. t is only read.
//
// The top bit of t is the terminal marker and is not replayed. An empty
// trajectory decodes to one, not zero: Encode maps zero to the empty
// trajectory, so zero does not survive a round trip. Callers that need to
// carry zero must handle it before encoding.
//
// An odd step from y can only be undone when 2y-1 is a multiple of three and the
// predecessor is an odd value above one. Any other set bit makes t a string
// Encode cannot emit, and Decode returns ErrInvalid naming the step.
func (c *Codec) Decode(t *radix.Pow2) (*radix.Custom, error) {
	x := radix.CustomFromUint64(c.arena, 1)

	for i := t.BitLength() - 2; i >= 0; i-- {
		x.LeftShift()
		if t.Bit(i) == 0 {
			continue
		}

		if x.Mod3() != 1 {
			x.Release()
			return nil, fmt.Errorf("%w: step %d is not reachable by an odd step", ErrInvalid, i)
		}

		x.Decrement()
		x.DivideByThree()

		if x.IsOne() {
			x.Release()
			return nil, fmt.Errorf("%w: step %d leaves from one", ErrInvalid, i)
		}
	}

	x.Canonicalize()

	return x, nil
}

// Steps reports the number of map steps recorded in t and how many of them
// were odd. The terminal marker counts as neither.
func Steps(t *radix.Pow2) (steps, odd int) {
	n := t.BitLength()
	if n == 0 {
		return 0, 0
	}

	return n - 1, t.OnesCount() - 1
}

// Release returns the codec's scratch storage to its arena. The codec must not
// be used afterwards.
func (c *Codec) Release() {
	c.scratch.Release()
}
