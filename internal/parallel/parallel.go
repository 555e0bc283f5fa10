// Package parallel provides the flat data-parallel loop used for independent
// row/column work. There is no task graph and no shared accumulator: each
// iteration writes only its own slot, so the loop needs no locking, and For
// returning doubles as the barrier between consecutive parallel phases.
package parallel

import (
	"runtime"
	"sync"
)

// minParallel is the iteration count below which For runs inline.
// Goroutine fan-out costs more than it saves on tiny loops.
const minParallel = 128

// For runs fn(i) for every i in [0, n), fanning the iterations out across
// GOMAXPROCS workers in contiguous chunks. It returns only after every
// iteration has completed.
//
// Iterations must be independent: fn must not read state another iteration
// writes.
func For(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if n < minParallel || workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
