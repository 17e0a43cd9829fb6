package compress

import "testing"

func BenchmarkMeasure(b *testing.B) {
	data := repetitive(2000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for b.Loop() {
		if _, err := Measure(data); err != nil {
			b.Fatal(err)
		}
	}
}
