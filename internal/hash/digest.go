// Package hash computes the content digests used to check round trips.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Reader hashes everything read through it.
type Reader struct {
	r io.Reader
	d *xxhash.Digest
	n int64
}

// NewReader returns a Reader that hashes the bytes read from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, d: xxhash.New()}
}

func (h *Reader) Read(p []byte) (int, error) {
	n, err := h.r.Read(p)
	if n > 0 {
		_, _ = h.d.Write(p[:n])
		h.n += int64(n)
	}

	return n, err
}

// Sum64 returns the digest of the bytes read so far.
func (h *Reader) Sum64() uint64 {
	return h.d.Sum64()
}

// Count returns the number of bytes read so far.
func (h *Reader) Count() int64 {
	return h.n
}

// Writer is an io.Writer that only hashes and counts what it is given.
type Writer struct {
	d *xxhash.Digest
	n int64
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{d: xxhash.New()}
}

func (h *Writer) Write(p []byte) (int, error) {
	h.n += int64(len(p))
	return h.d.Write(p)
}

// Sum64 returns the digest of the bytes written so far.
func (h *Writer) Sum64() uint64 {
	return h.d.Sum64()
}

// Count returns the number of bytes written so far.
func (h *Writer) Count() int64 {
	return h.n
}
