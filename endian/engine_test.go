package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want EndianEngine
	}{
		{"", binary.LittleEndian},
		{"little", binary.LittleEndian},
		{"LE", binary.LittleEndian},
		{" little-endian ", binary.LittleEndian},
		{"big", binary.BigEndian},
		{"Be", binary.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("middle")
	require.ErrorIs(t, err, ErrUnknownByteOrder)
}

func TestSignificantBytes(t *testing.T) {
	require.Equal(t, 0, SignificantBytes(0))
	require.Equal(t, 1, SignificantBytes(1))
	require.Equal(t, 1, SignificantBytes(0xff))
	require.Equal(t, 2, SignificantBytes(0x100))
	require.Equal(t, 8, SignificantBytes(1<<63))
}

func TestAppendTrimmed(t *testing.T) {
	tests := []struct {
		name   string
		engine EndianEngine
		word   uint64
		want   []byte
	}{
		{"little zero", GetLittleEndianEngine(), 0, nil},
		{"little one byte", GetLittleEndianEngine(), 0x2a, []byte{0x2a}},
		{"little three bytes", GetLittleEndianEngine(), 0x030201, []byte{0x01, 0x02, 0x03}},
		{"little inner zero kept", GetLittleEndianEngine(), 0x010001, []byte{0x01, 0x00, 0x01}},
		{"little full", GetLittleEndianEngine(), 0x0807060504030201, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"big three bytes", GetBigEndianEngine(), 0x030201, []byte{0x03, 0x02, 0x01}},
		{"big zero", GetBigEndianEngine(), 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendTrimmed(tt.engine, nil, tt.word)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.word, Extend(tt.engine, got))
		})
	}
}

func TestAppendTrimmed_AppendsToExisting(t *testing.T) {
	dst := []byte{0xaa}
	dst = AppendTrimmed(GetLittleEndianEngine(), dst, 0xbbcc)
	require.Equal(t, []byte{0xaa, 0xcc, 0xbb}, dst)
}

func TestExtend(t *testing.T) {
	le := GetLittleEndianEngine()
	require.Equal(t, uint64(0), Extend(le, nil))
	require.Equal(t, uint64(0x0201), Extend(le, []byte{0x01, 0x02}))
	require.Equal(t, uint64(0x0102), Extend(GetBigEndianEngine(), []byte{0x01, 0x02}))

	require.Panics(t, func() { Extend(le, make([]byte, 9)) })
}

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	if first == 0x02 {
		require.Equal(t, binary.LittleEndian, CheckEndianness())
		require.True(t, IsNativeLittleEndian())
	} else {
		require.Equal(t, binary.BigEndian, CheckEndianness())
		require.False(t, IsNativeLittleEndian())
	}
}

func TestName(t *testing.T) {
	require.Equal(t, "little", Name(GetLittleEndianEngine()))
	require.Equal(t, "big", Name(GetBigEndianEngine()))
}
