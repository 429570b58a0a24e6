package analysis

import (
	"fmt"
	"testing"
)

func BenchmarkBoxCount(b *testing.B) {
	for _, size := range []int{81, 243, 729} {
		b.Run(fmt.Sprintf("carpet_%d", size), func(b *testing.B) {
			g := carpetGrid(size)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				BoxCount(g)
			}
		})
	}
}
