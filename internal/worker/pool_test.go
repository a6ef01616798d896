package worker

import (
	"sync/atomic"
	"testing"
)

func TestForEachRunsEveryIndex(t *testing.T) {
	pool, err := NewPool(4)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Release()

	const n = 100
	seen := make([]int32, n)
	ForEach(pool, n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d ran %d times, want 1", i, c)
		}
	}
}

func TestForEachNilPoolRunsInline(t *testing.T) {
	var total int
	ForEach(nil, 10, func(i int) {
		total += i
	})
	if total != 45 {
		t.Fatalf("total = %d, want 45", total)
	}
}

func TestForEachZeroTasks(t *testing.T) {
	pool, err := NewPool(1)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Release()

	ForEach(pool, 0, func(i int) {
		t.Fatal("fn should not run")
	})
}

func TestNewPoolDefaultsSize(t *testing.T) {
	pool, err := NewPool(0)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Release()

	if pool.Cap() < 1 {
		t.Fatalf("Cap() = %d, want >= 1", pool.Cap())
	}
}
