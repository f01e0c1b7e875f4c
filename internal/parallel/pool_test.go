package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -5, runtime.GOMAXPROCS(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			if pool.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.want)
			}
			if !pool.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll_RunsEveryJobOnce(t *testing.T) {
	for _, workers := range []int{1, 3, 8, 32} {
		pool := NewWorkerPool(workers)

		const n = 500
		hits := make([]atomic.Int32, n)
		jobs := make([]func(), n)
		for i := range jobs {
			jobs[i] = func() { hits[i].Add(1) }
		}

		pool.ExecuteAll(jobs)
		pool.Close()

		for i := range hits {
			if got := hits[i].Load(); got != 1 {
				t.Fatalf("workers=%d: job %d ran %d times, want 1", workers, i, got)
			}
		}
	}
}

func TestWorkerPool_ExecuteAll_DisjointWrites(t *testing.T) {
	// Jobs write disjoint halves of a shared slice without locks, the way
	// the compositor writes panels into the canvas.
	pool := NewWorkerPool(4)
	defer pool.Close()

	layout := NewLayout(16, 4)
	canvas := make([]int, layout.CanvasSide()*layout.CanvasSide())
	spans := layout.Spans(7)

	jobs := make([]func(), len(spans))
	for i, s := range spans {
		jobs[i] = func() {
			layout.ForEach(s, func(p Panel) {
				x0, y0, w, h := p.Bounds()
				for y := y0; y < y0+h; y++ {
					for x := x0; x < x0+w; x++ {
						canvas[y*layout.CanvasSide()+x] += p.Index + 1
					}
				}
			})
		}
	}
	pool.ExecuteAll(jobs)

	for i, v := range canvas {
		x, y := i%layout.CanvasSide(), i/layout.CanvasSide()
		p, _ := layout.PanelAtPixel(x, y)
		if v != p.Index+1 {
			t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, v, p.Index+1)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_NilJob(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var ran atomic.Bool
	pool.ExecuteAll([]func(){nil, func() { ran.Store(true) }})
	if !ran.Load() {
		t.Error("second job did not run")
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const callers, perCaller = 10, 50

	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			jobs := make([]func(), perCaller)
			for i := range jobs {
				jobs[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(jobs)
		}()
	}
	wg.Wait()

	if counter.Load() != callers*perCaller {
		t.Errorf("counter = %d, want %d", counter.Load(), callers*perCaller)
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Every slow job lands on worker 0; the others must steal to finish.
	var slow, fast atomic.Int64
	jobs := make([]func(), 40)
	for i := range jobs {
		if i%4 == 0 {
			jobs[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			jobs[i] = func() { fast.Add(1) }
		}
	}

	pool.ExecuteAll(jobs)

	if slow.Load() != 10 || fast.Load() != 30 {
		t.Errorf("slow=%d fast=%d, want 10 and 30", slow.Load(), fast.Load())
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after close")
	}
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Bool
	pool.ExecuteAll([]func(){func() { executed.Store(true) }})

	if executed.Load() {
		t.Error("job executed on closed pool")
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		jobs := make([]func(), 100)
		for j := range jobs {
			jobs[j] = func() {}
		}
		pool.ExecuteAll(jobs)
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	// Allow for some variance (test framework goroutines, etc.)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	var sink atomic.Int64
	jobs := make([]func(), 1000)
	for i := range jobs {
		jobs[i] = func() { sink.Add(1) }
	}

	b.ReportAllocs()
	for b.Loop() {
		pool.ExecuteAll(jobs)
	}
}
