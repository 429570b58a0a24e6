package evolve

import (
	"fmt"
	"testing"
)

func BenchmarkStep(b *testing.B) {
	for _, size := range []int{64, 256, 512} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			g := patternGrid(size)
			ev := NewEvolver()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g = ev.Step(g)
			}
		})
	}
}

func BenchmarkNormalize(b *testing.B) {
	g := patternGrid(256)
	nz := NewNormalizer()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nz.Normalize(g)
	}
}
