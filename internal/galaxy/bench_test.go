package galaxy

import "testing"

func BenchmarkGenerate100k(b *testing.B) {
	p := DefaultParameters()
	rng := NewSeededSource(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(p, rng); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate1M(b *testing.B) {
	p := DefaultParameters()
	p.Count = MaxCount
	rng := NewSeededSource(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(p, rng); err != nil {
			b.Fatal(err)
		}
	}
}
