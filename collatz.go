// Package collatz encodes byte streams as Collatz trajectories and back.
//
// A stream is read as one unsigned integer (see package limbfile for the
// layout), the integer's trajectory under the shortcut Collatz map is computed,
// and the trajectory's bits are written out in the same layout. Decoding
// replays the trajectory backwards to recover the integer.
//
// # Basic Usage
//
//	in, _ := os.Open("input.bin")
//	out, _ := os.Create("input.collatz")
//	stats, err := collatz.Encode(in, out)
//
//	// and back
//	stats, err = collatz.Decode(encoded, restored)
//
// For in-memory data, EncodeBytes and DecodeBytes avoid the io plumbing:
//
//	encoded, _, err := collatz.EncodeBytes(data, collatz.WithVerify(true))
//
// # Limitations
//
// The streams are treated as numbers, so zero bytes at the end of an input do
// not survive a round trip. An empty input encodes to an empty output and
// decodes back to an empty output.
//
// # Package Structure
//
// This package wires together limbfile (stream layout), radix (the two integer
// representations and the conversions between them) and trajectory (the
// Collatz bijection). Use those packages directly for finer control.
package collatz

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gliu20/collatz-encoder/endian"
	"github.com/gliu20/collatz-encoder/internal/hash"
	"github.com/gliu20/collatz-encoder/internal/options"
	"github.com/gliu20/collatz-encoder/limb"
	"github.com/gliu20/collatz-encoder/limbfile"
	"github.com/gliu20/collatz-encoder/radix"
	"github.com/gliu20/collatz-encoder/trajectory"
)

// ErrRoundTripMismatch is returned when a trajectory does not decode back to the
// value it was computed from.
var ErrRoundTripMismatch = errors.New("collatz: round trip mismatch")

// Stats describes one Encode, Decode or Verify call.
type Stats struct {
	BytesRead      int64
	BytesWritten   int64
	TrajectoryBits int // length of the trajectory including its terminal marker
	OddSteps       int
	Elapsed        time.Duration
}

// Report is the outcome of Verify.
type Report struct {
	Stats
	RawDigest       uint64 // xxHash64 of the bytes as read, trailing zeros included
	InputDigest     uint64 // xxHash64 of the canonical input bytes
	RecoveredDigest uint64 // xxHash64 of the bytes recovered from the trajectory
}

// Config holds the settings shared by Encode, Decode and Verify.
type Config struct {
	arena  *limb.Arena
	engine endian.EndianEngine
	logger *slog.Logger
	verify bool
}

// Option configures Encode, Decode and Verify.
type Option = options.Option[*Config]

// WithArena recycles limb buffers through arena. Passing the same arena to
// successive calls lets them share buffers.
func WithArena(arena *limb.Arena) Option {
	return options.NoError(func(c *Config) {
		c.arena = arena
	})
}

// WithByteOrder selects the byte order of the limbs in both input and output.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.New(func(c *Config) error {
		if engine == nil {
			return errors.New("collatz: nil byte order")
		}
		c.engine = engine

		return nil
	})
}

// WithLogger sets the logger that receives per-call debug records.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithVerify makes Encode decode the trajectory it computed and compare the
// result with its input before writing anything.
func WithVerify(verify bool) Option {
	return options.NoError(func(c *Config) {
		c.verify = verify
	})
}

func newConfig(opts []Option) (*Config, error) {
	return options.Build(func() *Config {
		return &Config{
			engine: endian.GetLittleEndianEngine(),
			logger: slog.New(slog.DiscardHandler),
		}
	}, opts...)
}

func (c *Config) fileOptions() []limbfile.Option {
	return []limbfile.Option{limbfile.WithEngine(c.engine), limbfile.WithArena(c.arena)}
}

func (c *Config) newCodec() (*trajectory.Codec, error) {
	return trajectory.NewCodec(trajectory.WithArena(c.arena))
}

// Encode reads r to EOF and writes the trajectory of its value to w.
//
// Parameters:
//   - r: Input stream
//   - w: Output stream
//   - opts: Optional settings (WithArena, WithByteOrder, WithLogger, WithVerify)
//
// Returns:
//   - Stats: Byte counts and trajectory shape
//   - error: Wrapped I/O errors, or ErrRoundTripMismatch when verifying
func Encode(r io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	start := time.Now()

	cfg, err := newConfig(opts)
	if err != nil {
		return Stats{}, err
	}

	codec, err := cfg.newCodec()
	if err != nil {
		return Stats{}, err
	}
	defer codec.Release()

	input, read, err := limbfile.Read(r, cfg.fileOptions()...)
	if err != nil {
		return Stats{BytesRead: read}, fmt.Errorf("collatz: encode: %w", err)
	}
	defer input.Release()

	stats := Stats{BytesRead: read}
	cfg.logger.Debug("read input", "bytes", read, "limbs", input.Len(), "bits", input.BitLength())

	var inputDigest uint64
	if cfg.verify {
		if inputDigest, err = digest(input, cfg); err != nil {
			return stats, err
		}
	}

	traj := encodeValue(codec, input, cfg.arena)
	defer traj.Release()

	stats.TrajectoryBits = traj.BitLength()
	_, stats.OddSteps = trajectory.Steps(traj)
	cfg.logger.Debug("computed trajectory", "bits", stats.TrajectoryBits, "odd_steps", stats.OddSteps)

	if cfg.verify {
		recovered, err := decodeValue(codec, traj, cfg.arena)
		if err != nil {
			return stats, fmt.Errorf("collatz: encode: %w", err)
		}
		got, err := digest(recovered, cfg)
		recovered.Release()
		if err != nil {
			return stats, err
		}
		if got != inputDigest {
			return stats, fmt.Errorf("%w: input %016x, recovered %016x", ErrRoundTripMismatch, inputDigest, got)
		}
		cfg.logger.Debug("verified round trip", "digest", fmt.Sprintf("%016x", got))
	}

	stats.BytesWritten, err = limbfile.Write(w, traj, cfg.fileOptions()...)
	stats.Elapsed = time.Since(start)
	if err != nil {
		return stats, fmt.Errorf("collatz: encode: %w", err)
	}
	cfg.logger.Debug("wrote trajectory", "bytes", stats.BytesWritten, "elapsed", stats.Elapsed)

	return stats, nil
}

// Decode reads a trajectory from r to EOF and writes the value it encodes to w.
// An empty trajectory decodes to an empty output.
//
// Parameters:
//   - r: Stream produced by Encode
//   - w: Output stream
//   - opts: Optional settings (WithArena, WithByteOrder, WithLogger)
//
// Returns:
//   - Stats: Byte counts and trajectory shape
//   - error: Wrapped I/O errors, or trajectory.ErrInvalid when r holds bits
//     that no input encodes to
func Decode(r io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	start := time.Now()

	cfg, err := newConfig(opts)
	if err != nil {
		return Stats{}, err
	}

	codec, err := cfg.newCodec()
	if err != nil {
		return Stats{}, err
	}
	defer codec.Release()

	traj, read, err := limbfile.Read(r, cfg.fileOptions()...)
	if err != nil {
		return Stats{BytesRead: read}, fmt.Errorf("collatz: decode: %w", err)
	}
	defer traj.Release()

	stats := Stats{BytesRead: read, TrajectoryBits: traj.BitLength()}
	_, stats.OddSteps = trajectory.Steps(traj)
	cfg.logger.Debug("read trajectory", "bytes", read, "bits", stats.TrajectoryBits, "odd_steps", stats.OddSteps)

	output, err := decodeValue(codec, traj, cfg.arena)
	if err != nil {
		stats.Elapsed = time.Since(start)
		return stats, fmt.Errorf("collatz: decode: %w", err)
	}
	defer output.Release()

	stats.BytesWritten, err = limbfile.Write(w, output, cfg.fileOptions()...)
	stats.Elapsed = time.Since(start)
	if err != nil {
		return stats, fmt.Errorf("collatz: decode: %w", err)
	}
	cfg.logger.Debug("wrote output", "bytes", stats.BytesWritten, "elapsed", stats.Elapsed)

	return stats, nil
}

// Verify reads r to EOF, encodes and decodes its value in memory and reports
// whether the recovered bytes match the input.
//
// Returns:
//   - Report: Digests of both sides plus the trajectory shape; BytesWritten is
//     the size the encoded stream would have
//   - error: Wrapped read errors, or ErrRoundTripMismatch
func Verify(r io.Reader, opts ...Option) (Report, error) {
	start := time.Now()

	cfg, err := newConfig(opts)
	if err != nil {
		return Report{}, err
	}

	codec, err := cfg.newCodec()
	if err != nil {
		return Report{}, err
	}
	defer codec.Release()

	raw := hash.NewReader(r)
	input, read, err := limbfile.Read(raw, cfg.fileOptions()...)
	if err != nil {
		return Report{Stats: Stats{BytesRead: read}}, fmt.Errorf("collatz: verify: %w", err)
	}
	defer input.Release()

	report := Report{Stats: Stats{BytesRead: read}, RawDigest: raw.Sum64()}
	if report.InputDigest, err = digest(input, cfg); err != nil {
		return report, err
	}

	traj := encodeValue(codec, input, cfg.arena)
	defer traj.Release()

	report.TrajectoryBits = traj.BitLength()
	_, report.OddSteps = trajectory.Steps(traj)
	report.BytesWritten = limbfile.Size(traj)

	recovered, err := decodeValue(codec, traj, cfg.arena)
	if err != nil {
		return report, fmt.Errorf("collatz: verify: %w", err)
	}
	defer recovered.Release()

	if report.RecoveredDigest, err = digest(recovered, cfg); err != nil {
		return report, err
	}
	report.Elapsed = time.Since(start)

	cfg.logger.Debug("verified",
		"raw_digest", fmt.Sprintf("%016x", report.RawDigest),
		"input_digest", fmt.Sprintf("%016x", report.InputDigest),
		"recovered_digest", fmt.Sprintf("%016x", report.RecoveredDigest),
		"elapsed", report.Elapsed)

	if report.InputDigest != report.RecoveredDigest {
		return report, fmt.Errorf("%w: input %016x, recovered %016x",
			ErrRoundTripMismatch, report.InputDigest, report.RecoveredDigest)
	}

	return report, nil
}

// EncodeBytes is Encode over byte slices.
func EncodeBytes(data []byte, opts ...Option) ([]byte, Stats, error) {
	var out bytes.Buffer
	stats, err := Encode(bytes.NewReader(data), &out, opts...)
	if err != nil {
		return nil, stats, err
	}

	return out.Bytes(), stats, nil
}

// DecodeBytes is Decode over byte slices.
func DecodeBytes(data []byte, opts ...Option) ([]byte, Stats, error) {
	var out bytes.Buffer
	stats, err := Decode(bytes.NewReader(data), &out, opts...)
	if err != nil {
		return nil, stats, err
	}

	return out.Bytes(), stats, nil
}

// encodeValue returns the trajectory of p. p is left untouched.
func encodeValue(codec *trajectory.Codec, p *radix.Pow2, arena *limb.Arena) *radix.Pow2 {
	x := radix.NewCustom(arena)
	defer x.Release()

	radix.ToCustom(x, p)

	return codec.Encode(x)
}

// decodeValue returns the value whose trajectory is t. An empty trajectory
// yields zero rather than the one trajectory.Decode would return, so that empty
// streams map to empty streams.
func decodeValue(codec *trajectory.Codec, t *radix.Pow2, arena *limb.Arena) (*radix.Pow2, error) {
	out := radix.NewPow2(arena)
	if t.IsZero() {
		return out, nil
	}

	x, err := codec.Decode(t)
	if err != nil {
		out.Release()
		return nil, err
	}
	defer x.Release()

	radix.ToPow2(out, x)

	return out, nil
}

func digest(p *radix.Pow2, cfg *Config) (uint64, error) {
	h := hash.NewWriter()
	if _, err := limbfile.Write(h, p, limbfile.WithEngine(cfg.engine)); err != nil {
		return 0, fmt.Errorf("collatz: digest: %w", err)
	}

	return h.Sum64(), nil
}
