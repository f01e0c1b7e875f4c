package z0matrix

import "sync"

// Progress observes composition. Report is called with a strictly
// increasing done count, ending at done == total. Calls never overlap, so
// implementations need no locking of their own.
//
// Progress is purely observational: it cannot influence the canvas.
type Progress interface {
	Report(done, total int)
}

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func(done, total int)

// Report implements Progress.
func (f ProgressFunc) Report(done, total int) { f(done, total) }

type nopProgress struct{}

func (nopProgress) Report(int, int) {}

// tracker serializes progress updates coming from worker goroutines.
type tracker struct {
	mu    sync.Mutex
	done  int
	total int
	p     Progress
}

func newTracker(p Progress, total int) *tracker {
	return &tracker{p: p, total: total}
}

// add records n finished panels and reports the new total.
func (t *tracker) add(n int) {
	if n <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done += n
	t.p.Report(t.done, t.total)
}

func (t *tracker) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
