package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRowsRunsAllRows(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	const n = 1000
	var hits [n]atomic.Int32
	p.Rows(n, func(row int) {
		hits[row].Add(1)
	})

	for row := 0; row < n; row++ {
		if got := hits[row].Load(); got != 1 {
			t.Fatalf("row %d executed %d times, want 1", row, got)
		}
	}
}

func TestRowsZeroAndNegative(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	called := false
	p.Rows(0, func(int) { called = true })
	p.Rows(-3, func(int) { called = true })
	if called {
		t.Error("fn called for empty row range")
	}
}

func TestRowsAfterCloseRunsInline(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()

	var count atomic.Int32
	p.Rows(10, func(int) { count.Add(1) })
	if got := count.Load(); got != 10 {
		t.Errorf("inline fallback ran %d rows, want 10", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close() // must not panic or deadlock
}

func TestDefaultPoolSingleton(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Error("Default() returned distinct pools")
	}
	if a.Workers() <= 0 {
		t.Errorf("Workers() = %d, want > 0", a.Workers())
	}
}

func TestRowsParallelResult(t *testing.T) {
	p := NewWorkerPool(8)
	defer p.Close()

	// Each row writes only its own output slot, mirroring how the
	// resampler partitions work.
	out := make([]int, 512)
	p.Rows(len(out), func(row int) {
		out[row] = row * row
	})
	for row, got := range out {
		if got != row*row {
			t.Fatalf("out[%d] = %d, want %d", row, got, row*row)
		}
	}
}
