package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdDecoders = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compress: zstd decoder: %v", err))
		}

		return decoder
	},
}

var zstdEncoders = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: zstd encoder: %v", err))
		}

		return encoder
	},
}

// ZstdCompressor uses single zstd frames at the default level.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// Compress returns a zstd frame holding data.
func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder, _ := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decodes zstd frames.
func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(decoder)

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out, nil
}
