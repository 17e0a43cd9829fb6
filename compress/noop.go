package compress

// NoOpCompressor returns its input unchanged. It is the baseline in reports.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// Compress returns data itself, not a copy.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself, not a copy.
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
