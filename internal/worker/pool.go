// Package worker wraps the shared ants pool behind a fan-out helper used by
// ingestion and the scoring scans.
package worker

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// NewPool creates an ants pool of the given size. Non-positive sizes default
// to half the CPUs, with a minimum of one worker.
func NewPool(size int) (*ants.Pool, error) {
	if size <= 0 {
		size = runtime.NumCPU() / 2
		if size < 1 {
			size = 1
		}
	}
	return ants.NewPool(size)
}

// ForEach runs fn(i) for i in [0, n) across the pool and blocks until every
// task finishes. Tasks must be independent; fn typically writes into its own
// slot of a preallocated slice, so no locking is needed. A nil pool, or a
// pool that rejects a submit, runs the task inline.
func ForEach(pool *ants.Pool, n int, fn func(i int)) {
	if pool == nil {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			fn(i)
			wg.Done()
		}
	}
	wg.Wait()
}
