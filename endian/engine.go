// Package endian selects the byte order of limbs in the file format.
//
// The default, and the only order the reference file format uses, is
// little-endian:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, word)
//
// Big-endian is available for experiments with other tooling. Both engines are
// the stateless encoding/binary values and are safe for concurrent use.
//
// A word written with AppendTrimmed keeps only its significant bytes. For
// little-endian that drops the zero bytes at the end of the word, for
// big-endian the ones at the start. Extend reverses it.
package endian

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"unsafe"
)

// WordBytes is the size of an encoded limb.
const WordBytes = 8

// ErrUnknownByteOrder is returned by Parse for names it does not recognise.
var ErrUnknownByteOrder = errors.New("endian: unknown byte order")

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Parse maps "little"/"le" and "big"/"be" (any case) to an engine.
// The empty string selects little-endian.
func Parse(name string) (EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "little", "le", "little-endian":
		return binary.LittleEndian, nil
	case "big", "be", "big-endian":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownByteOrder, name)
	}
}

// IsBig reports whether engine writes the most significant byte first.
func IsBig(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// SignificantBytes returns the number of bytes needed to hold w, 0 for 0.
func SignificantBytes(w uint64) int {
	return (bits.Len64(w) + 7) / 8
}

// AppendTrimmed appends the significant bytes of w to dst in engine's order.
// Zero appends nothing.
func AppendTrimmed(engine EndianEngine, dst []byte, w uint64) []byte {
	n := SignificantBytes(w)
	if n == 0 {
		return dst
	}

	var word [WordBytes]byte
	engine.PutUint64(word[:], w)

	if IsBig(engine) {
		return append(dst, word[WordBytes-n:]...)
	}

	return append(dst, word[:n]...)
}

// Extend decodes a word of up to WordBytes bytes, treating the missing bytes as
// the zeros AppendTrimmed dropped. Panics if b is longer than WordBytes.
func Extend(engine EndianEngine, b []byte) uint64 {
	if len(b) > WordBytes {
		panic("endian: partial word longer than a word")
	}

	var word [WordBytes]byte
	if IsBig(engine) {
		copy(word[WordBytes-len(b):], b)
	} else {
		copy(word[:], b)
	}

	return engine.Uint64(word[:])
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// Name returns "little" or "big".
func Name(engine EndianEngine) string {
	if IsBig(engine) {
		return "big"
	}

	return "little"
}
