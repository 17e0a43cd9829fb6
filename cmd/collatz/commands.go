package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	collatz "github.com/gliu20/collatz-encoder"
	"github.com/gliu20/collatz-encoder/compress"
	"github.com/gliu20/collatz-encoder/limb"
	"github.com/gliu20/collatz-encoder/radix"
	"github.com/gliu20/collatz-encoder/trajectory"
)

func (a *app) newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <in> <out>",
		Short: "Write the Collatz trajectory of <in> to <out>",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return printUsage(cmd, nil)
			}

			return a.transform("encode", args[0], args[1], collatz.Encode)
		},
	}
	cmd.Flags().BoolVar(&a.verify, "verify", false, "decode the trajectory in memory and compare before writing")

	return cmd
}

func (a *app) newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <in> <out>",
		Short: "Recover the file whose trajectory is <in> into <out>",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return printUsage(cmd, nil)
			}

			return a.transform("decode", args[0], args[1], collatz.Decode)
		},
	}
}

func (a *app) newVerifyCmd() *cobra.Command {
	var (
		measure    bool
		algorithms []string
	)

	cmd := &cobra.Command{
		Use:   "verify <in>",
		Short: "Check that <in> survives an encode and decode round trip",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return printUsage(cmd, nil)
			}

			selected, err := parseAlgorithms(algorithms)
			if err != nil {
				return err
			}

			if err := a.verifyFile(args[0]); err != nil {
				return err
			}
			if measure {
				return a.compressibility(args[0], selected)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&measure, "compressibility", false, "also report compressed sizes of the input and its trajectory")
	cmd.Flags().StringSliceVar(&algorithms, "algorithms", nil, "compressors to report with --compressibility: none, zstd, s2, lz4 (default all)")

	return cmd
}

func (a *app) newSelfTestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "selftest <0|1|2>",
		Short: "Round trip generated integers through the codec",
		Long: `selftest runs one of the built-in round trip sweeps:

  0  every integer from 1 to --limit
  1  x = 3, then x = 2x - 1, --limit times
  2  x = 1, then x = 2x + 1, --limit times`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return printUsage(cmd, nil)
			}

			mode, err := strconv.Atoi(args[0])
			if err != nil || mode < 0 || mode > 2 {
				return printUsage(cmd, nil)
			}

			return a.selfTest(mode, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 1024, "number of integers to check")

	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}

			_, err = a.out.Write(data)

			return err
		},
	}
}

func parseAlgorithms(names []string) ([]compress.Algorithm, error) {
	out := make([]compress.Algorithm, 0, len(names))
	for _, name := range names {
		algo, err := compress.ParseAlgorithm(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		out = append(out, algo)
	}

	return out, nil
}

type streamFunc func(io.Reader, io.Writer, ...collatz.Option) (collatz.Stats, error)

func (a *app) options() []collatz.Option {
	return []collatz.Option{
		collatz.WithArena(a.cfg.NewArena()),
		collatz.WithByteOrder(a.cfg.Engine()),
		collatz.WithLogger(a.logger),
	}
}

func (a *app) transform(op, inPath, outPath string, fn streamFunc) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return &FileError{Op: "open", Path: inPath, Err: err}
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return &FileError{Op: "create", Path: outPath, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &FileError{Op: "close", Path: outPath, Err: cerr}
		}
	}()

	opts := a.options()
	if op == "encode" {
		opts = append(opts, collatz.WithVerify(a.cfg.Verify))
	}

	stats, err := fn(in, out, opts...)
	if err != nil {
		return &FileError{Op: op, Path: inPath, Err: err}
	}

	a.logger.Info(op+"d",
		slog.String("in", inPath),
		slog.String("out", outPath),
		slog.Int64("bytes_read", stats.BytesRead),
		slog.Int64("bytes_written", stats.BytesWritten),
		slog.Int("trajectory_bits", stats.TrajectoryBits),
		slog.Int("odd_steps", stats.OddSteps),
		slog.Duration("elapsed", stats.Elapsed))

	return nil
}

func (a *app) verifyFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return &FileError{Op: "open", Path: path, Err: err}
	}
	defer in.Close()

	report, err := collatz.Verify(in, a.options()...)
	if err != nil {
		if errors.Is(err, collatz.ErrRoundTripMismatch) {
			fmt.Fprintf(a.out, "FAIL %s\n", path)
		}

		return &FileError{Op: "verify", Path: path, Err: err}
	}

	steps := max(report.TrajectoryBits-1, 0)
	fmt.Fprintf(a.out, "OK %s digest=%016x raw_digest=%016x steps=%d odd_steps=%d encoded_bytes=%d\n",
		path, report.InputDigest, report.RawDigest, steps, report.OddSteps, report.BytesWritten)
	if report.RawDigest != report.InputDigest {
		a.logger.Warn("trailing zero bytes will not survive decoding", slog.String("in", path))
	}
	a.logger.Info("verified", slog.String("in", path), slog.Duration("elapsed", report.Elapsed))

	return nil
}

// compressibility prints how well each compressor shrinks the file and its
// encoding.
func (a *app) compressibility(path string, algorithms []compress.Algorithm) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Op: "open", Path: path, Err: err}
	}

	encoded, _, err := collatz.EncodeBytes(data, a.options()...)
	if err != nil {
		return &FileError{Op: "encode", Path: path, Err: err}
	}

	for _, side := range []struct {
		name string
		data []byte
	}{{"input", data}, {"encoded", encoded}} {
		measurements, err := compress.Measure(side.data, algorithms...)
		if err != nil {
			return err
		}

		line := make([]string, 0, len(measurements))
		for _, m := range measurements {
			line = append(line, m.String())
			a.logger.Debug("measured",
				slog.String("stream", side.name),
				slog.String("algorithm", m.Algorithm.String()),
				slog.Float64("ratio", m.Ratio()))
		}
		fmt.Fprintf(a.out, "%-8s %s\n", side.name, strings.Join(line, " "))
	}

	return nil
}

// selfTest round trips generated integers through one codec.
func (a *app) selfTest(mode, limit int) error {
	start := time.Now()

	arena := a.cfg.NewArena()
	codec, err := trajectory.NewCodec(trajectory.WithArena(arena))
	if err != nil {
		return err
	}
	defer codec.Release()

	x, next := selfTestSequence(mode, arena)
	for i := 0; i < limit; i++ {
		want := x.Clone()
		traj := codec.Encode(x.Clone())
		got, err := codec.Decode(traj)
		traj.Release()
		if err != nil {
			return fmt.Errorf("selftest %d: round trip %d failed: %w", mode, i, err)
		}
		if !want.Equal(got) {
			return fmt.Errorf("selftest %d: round trip %d failed: got %s, want %s", mode, i, got, want)
		}
		got.Release()
		want.Release()

		next(x)
	}

	fmt.Fprintf(a.out, "selftest %d: %d round trips ok\n", mode, limit)
	a.logger.Info("selftest passed",
		slog.Int("mode", mode),
		slog.Int("limit", limit),
		slog.Duration("elapsed", time.Since(start)))

	return nil
}

func selfTestSequence(mode int, arena *limb.Arena) (*radix.Custom, func(*radix.Custom)) {
	switch mode {
	case 1:
		return radix.CustomFromUint64(arena, 3), func(x *radix.Custom) {
			x.LeftShift()
			x.Decrement()
		}
	case 2:
		return radix.CustomFromUint64(arena, 1), func(x *radix.Custom) {
			x.LeftShift()
			x.Increment()
		}
	default:
		return radix.CustomFromUint64(arena, 1), func(x *radix.Custom) {
			x.Increment()
		}
	}
}
