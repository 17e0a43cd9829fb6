// Package compress measures how well general purpose compressors shrink a
// stream.
//
// Trajectories of structured inputs are long and far from random, so the
// compressed size of an encoded stream next to that of its input says how much
// redundancy the Collatz transform introduced. The codecs here are the block
// formats of klauspost/compress (zstd and s2) and pierrec/lz4, plus a no-op
// baseline.
package compress

import (
	"fmt"
	"strings"
)

// Algorithm identifies a compression algorithm.
type Algorithm uint8

const (
	None Algorithm = iota + 1
	Zstd
	S2
	LZ4
)

// Algorithms lists every built-in algorithm in report order.
var Algorithms = []Algorithm{None, Zstd, S2, LZ4}

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a name printed by String back to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if strings.EqualFold(name, a.String()) {
			return a, nil
		}
	}

	return 0, fmt.Errorf("compress: unknown algorithm %q", name)
}

// Codec compresses and decompresses whole blocks. Implementations are safe for
// concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Algorithm]Codec{
	None: NoOpCompressor{},
	Zstd: ZstdCompressor{},
	S2:   S2Compressor{},
	LZ4:  LZ4Compressor{},
}

// GetCodec returns the built-in Codec for a.
func GetCodec(a Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[a]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported algorithm %s", a)
}

// Measurement is the outcome of compressing one stream with one algorithm.
type Measurement struct {
	Algorithm      Algorithm
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size over original size, 0 for an empty stream.
func (m Measurement) Ratio() float64 {
	if m.OriginalSize == 0 {
		return 0
	}

	return float64(m.CompressedSize) / float64(m.OriginalSize)
}

func (m Measurement) String() string {
	return fmt.Sprintf("%s=%d", m.Algorithm, m.CompressedSize)
}

// Measure compresses data with each algorithm, or with all of them when none is
// given.
//
// Parameters:
//   - data: Stream to measure
//   - algorithms: Algorithms to try, defaults to Algorithms
//
// Returns:
//   - []Measurement: One entry per algorithm, in the order given
//   - error: The first unsupported algorithm or compression failure
func Measure(data []byte, algorithms ...Algorithm) ([]Measurement, error) {
	if len(algorithms) == 0 {
		algorithms = Algorithms
	}

	out := make([]Measurement, 0, len(algorithms))
	for _, a := range algorithms {
		codec, err := GetCodec(a)
		if err != nil {
			return nil, err
		}

		compressed, err := codec.Compress(data)
		if err != nil {
			return nil, fmt.Errorf("compress: %s: %w", a, err)
		}

		size := len(compressed)
		if size == 0 {
			// incompressible block, stored as is
			size = len(data)
		}

		out = append(out, Measurement{
			Algorithm:      a,
			OriginalSize:   len(data),
			CompressedSize: size,
		})
	}

	return out, nil
}
