// Package parallel provides a worker pool for data-parallel pixel work.
//
// The resampler fans out one task per output row. Rows are independent
// (each reads only the shared input buffer and precomputed plan arrays
// and writes only its own output row), so no locking is needed beyond
// the completion barrier.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for parallel row processing.
//
// The pool distributes work items across multiple workers, each with their
// own queue. Workers can steal work from other workers when their own queue
// is empty. This helps balance load when some rows are slower than others
// (wide tap footprints near downsampled borders).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// defaultPool serves Rows calls that do not carry their own pool.
var (
	defaultPool     *WorkerPool
	defaultPoolOnce sync.Once
)

// Default returns the process-wide worker pool, creating it on first use
// with one worker per logical CPU.
func Default() *WorkerPool {
	defaultPoolOnce.Do(func() {
		defaultPool = NewWorkerPool(0)
	})
	return defaultPool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return
		case work := <-myQueue:
			if work != nil {
				work()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				select {
				case <-p.done:
					p.drainQueue(myQueue)
					return
				case work := <-myQueue:
					if work != nil {
						work()
					}
				}
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Rows runs fn(row) for every row in [0, n) across the pool's workers
// and waits for all rows to complete. Each row is scheduled as its own
// task; fn must not touch state owned by other rows.
//
// If the pool has been closed, rows are executed inline on the calling
// goroutine so callers never silently lose work.
func (p *WorkerPool) Rows(n int, fn func(row int)) {
	if n <= 0 {
		return
	}
	if !p.running.Load() {
		for row := 0; row < n; row++ {
			fn(row)
		}
		return
	}

	var completionWG sync.WaitGroup
	completionWG.Add(n)

	for row := 0; row < n; row++ {
		workerID := row % p.workers
		r := row // capture for closure

		wrapped := func() {
			defer completionWG.Done()
			fn(r)
		}

		select {
		case p.workQueues[workerID] <- wrapped:
		case <-p.done:
			// Pool is closing, run inline.
			fn(r)
			completionWG.Done()
		}
	}

	completionWG.Wait()
}

// Close stops accepting work and waits for workers to finish their
// queues. Safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }
