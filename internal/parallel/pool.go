package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs panel jobs on a fixed set of goroutines.
//
// Every worker owns a queue. Jobs are dealt round-robin; a worker whose
// queue runs dry steals from the others, which evens out chunks that take
// longer (panels deep inside the set iterate the full budget).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered job queue per worker.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to exit.
	wg sync.WaitGroup

	// running is false once Close has been called.
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop of one worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			run(job)
		default:
			if job := p.steal(id); job != nil {
				run(job)
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case job := <-own:
				run(job)
			}
		}
	}
}

func run(job func()) {
	if job != nil {
		job()
	}
}

// drain runs whatever is left in a queue.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			run(job)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and returns once all of them have finished.
// Jobs may run in any order and on any worker. If the pool is closed,
// ExecuteAll returns without running anything.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, job := range jobs {
		wrapped := func() {
			defer pending.Done()
			run(job)
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			// Closed while dealing: the job will never run.
			pending.Done()
		}
	}

	pending.Wait()
}

// Close stops the workers after the queued jobs have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts jobs.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
