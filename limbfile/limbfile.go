// Package limbfile reads and writes integers as flat streams of 64-bit limbs.
//
// The format has no header. Limbs are stored least significant first, each as
// 8 bytes in the engine's byte order (little-endian by default). The last limb
// is stored with its insignificant zero bytes dropped, so a stream whose length
// is not a multiple of 8 ends in a short limb that readers zero-extend:
//
//	bytes:  01 02 03 04 05 06 07 08 09 0a
//	limbs:  0x0807060504030201, 0x0a09
//
// The mapping is between byte streams and values. Zero is written as no bytes,
// and zero bytes at the end of a stream do not survive a read and write.
package limbfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/gliu20/collatz-encoder/endian"
	"github.com/gliu20/collatz-encoder/internal/options"
	"github.com/gliu20/collatz-encoder/internal/pool"
	"github.com/gliu20/collatz-encoder/limb"
	"github.com/gliu20/collatz-encoder/radix"
)

// ErrShortWrite is returned when the destination accepts fewer bytes than it
// was given without reporting an error.
var ErrShortWrite = errors.New("limbfile: short write")

// Config holds the settings of Read and Write.
type Config struct {
	Engine endian.EndianEngine
	Arena  *limb.Arena
}

// Option configures Read and Write.
type Option = options.Option[*Config]

// WithEngine selects the byte order of each limb.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(c *Config) error {
		if engine == nil {
			return errors.New("limbfile: nil endian engine")
		}
		c.Engine = engine

		return nil
	})
}

// WithArena makes Read allocate the returned value from arena.
func WithArena(arena *limb.Arena) Option {
	return options.NoError(func(c *Config) {
		c.Arena = arena
	})
}

func newConfig(opts []Option) (*Config, error) {
	return options.Build(func() *Config {
		return &Config{Engine: endian.GetLittleEndianEngine()}
	}, opts...)
}

// Read decodes every limb in r.
//
// Parameters:
//   - r: Source stream, read to EOF
//   - opts: Optional settings (WithEngine, WithArena)
//
// Returns:
//   - *radix.Pow2: The decoded value, empty for an empty stream
//   - int64: Number of bytes consumed
//   - error: Any read error other than EOF, wrapped
func Read(r io.Reader, opts ...Option) (*radix.Pow2, int64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, 0, err
	}

	br := bufio.NewReaderSize(r, pool.FileBufferDefaultSize)
	p := radix.NewPow2(cfg.Arena)

	var (
		word  [endian.WordBytes]byte
		total int64
	)
	for {
		n, err := io.ReadFull(br, word[:])
		total += int64(n)

		switch {
		case err == nil:
			p.AppendWord(cfg.Engine.Uint64(word[:]))
			continue
		case errors.Is(err, io.EOF):
		case errors.Is(err, io.ErrUnexpectedEOF):
			p.AppendWord(endian.Extend(cfg.Engine, word[:n]))
		default:
			p.Release()
			return nil, total, fmt.Errorf("limbfile: read after %d bytes: %w", total, err)
		}

		return p, total, nil
	}
}

// Write encodes p to w. p is canonicalized but keeps its value.
//
// Parameters:
//   - w: Destination stream
//   - p: Value to write; zero writes nothing
//   - opts: Optional settings (WithEngine)
//
// Returns:
//   - int64: Number of bytes written
//   - error: A wrapped write error, or ErrShortWrite
func Write(w io.Writer, p *radix.Pow2, opts ...Option) (int64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	p.Canonicalize()

	bb := pool.GetFileBuffer()
	defer pool.PutFileBuffer(bb)

	var total int64
	flush := func() error {
		n, err := bb.WriteTo(w)
		total += n
		bb.Reset()

		switch {
		case errors.Is(err, io.ErrShortWrite):
			return fmt.Errorf("%w after %d bytes", ErrShortWrite, total)
		case err != nil:
			return fmt.Errorf("limbfile: write after %d bytes: %w", total, err)
		}

		return nil
	}

	last := p.Len() - 1
	for i := 0; i < last; i++ {
		if bb.Len()+endian.WordBytes > pool.FileBufferDefaultSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
		bb.Grow(endian.WordBytes)
		bb.B = cfg.Engine.AppendUint64(bb.B, p.Word(i))
	}
	if last >= 0 {
		bb.B = endian.AppendTrimmed(cfg.Engine, bb.B, p.Word(last))
	}

	if bb.Len() == 0 {
		return total, nil
	}

	return total, flush()
}

// Size returns the number of bytes Write would produce for p.
func Size(p *radix.Pow2) int64 {
	p.Canonicalize()
	if p.Len() == 0 {
		return 0
	}
	last := p.Len() - 1

	return int64(last)*endian.WordBytes + int64(endian.SignificantBytes(p.Word(last)))
}
