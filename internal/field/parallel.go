package field

import (
	"runtime"
	"sync"
)

// ParallelFor splits [0, n) into contiguous chunks and runs fn on each
// chunk from its own goroutine, blocking until all chunks finish. Work
// with n at or below minChunk runs on the calling goroutine. fn must not
// touch indices outside its [start, end) range.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if max := n / minChunk; workers > max {
		workers = max
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			if s < e {
				fn(s, e)
			}
		}(start, end)
	}
	wg.Wait()
}
