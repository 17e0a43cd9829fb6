package compress

import "github.com/klauspost/compress/s2"

// S2Compressor uses the S2 block format.
type S2Compressor struct{}

var _ Codec = S2Compressor{}

// Compress returns the S2 block encoding of data, nil for empty input.
func (S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
func (S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
