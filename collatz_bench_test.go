package collatz

import (
	"math/rand/v2"
	"testing"

	"github.com/gliu20/collatz-encoder/limb"
)

func BenchmarkEncodeBytes(b *testing.B) {
	input := randomInput(rand.New(rand.NewPCG(9, 9)), 64)
	arena := limb.NewArena(0)

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		if _, _, err := EncodeBytes(input, WithArena(arena)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeBytes(b *testing.B) {
	input := randomInput(rand.New(rand.NewPCG(9, 9)), 64)
	arena := limb.NewArena(0)
	encoded, _, err := EncodeBytes(input, WithArena(arena))
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		if _, _, err := DecodeBytes(encoded, WithArena(arena)); err != nil {
			b.Fatal(err)
		}
	}
}
