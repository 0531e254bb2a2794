package volumetric

import (
	"runtime"
	"sync"
)

// workerCount returns how many goroutines should split n independent units.
func workerCount(n int) int {
	workers := Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	return workers
}

// parallelRange splits [0,n) into contiguous, non-overlapping chunks (the
// first n%workers chunks get one extra unit) and runs fn on each chunk in
// its own goroutine. It returns when every chunk is done.
func parallelRange(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := workerCount(n)
	per, rem := n/workers, n%workers

	var wg sync.WaitGroup
	wg.Add(workers)
	lo := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, lo+cnt)
		lo += cnt
	}
	wg.Wait()
}
