package parallel

// jobsPerWorker is how many spans DefaultSpanSize aims to hand each worker.
// More spans than workers lets stealing balance uneven panels.
const jobsPerWorker = 16

// Layout maps panel indices to canvas positions for an N×N lattice of
// size×size panels.
//
// Layout is immutable and safe for concurrent use.
type Layout struct {
	side int
	size int
}

// NewLayout creates a layout for side×side panels of size×size pixels.
// Non-positive arguments yield an empty layout.
func NewLayout(side, size int) *Layout {
	if side <= 0 || size <= 0 {
		return &Layout{}
	}
	return &Layout{side: side, size: size}
}

// Side returns the number of panels along each axis.
func (l *Layout) Side() int { return l.side }

// PanelSize returns the panel side in pixels.
func (l *Layout) PanelSize() int { return l.size }

// CanvasSide returns the canvas side in pixels.
func (l *Layout) CanvasSide() int { return l.side * l.size }

// Count returns the number of panels.
func (l *Layout) Count() int { return l.side * l.side }

// Panel returns panel i. Returns ok == false if i is out of range.
func (l *Layout) Panel(i int) (p Panel, ok bool) {
	if i < 0 || i >= l.Count() {
		return Panel{}, false
	}
	return Panel{Index: i, Row: i / l.side, Col: i % l.side, Size: l.size}, true
}

// PanelAt returns the panel at (row, col). Returns ok == false if out of range.
func (l *Layout) PanelAt(row, col int) (p Panel, ok bool) {
	if row < 0 || row >= l.side || col < 0 || col >= l.side {
		return Panel{}, false
	}
	return l.Panel(row*l.side + col)
}

// PanelAtPixel returns the panel containing canvas pixel (px, py).
func (l *Layout) PanelAtPixel(px, py int) (p Panel, ok bool) {
	side := l.CanvasSide()
	if px < 0 || px >= side || py < 0 || py >= side {
		return Panel{}, false
	}
	return l.PanelAt(py/l.size, px/l.size)
}

// Spans splits all panels into consecutive spans of at most n panels.
// The spans cover every index exactly once, in order.
func (l *Layout) Spans(n int) []Span {
	total := l.Count()
	if total == 0 {
		return nil
	}
	n = max(n, 1)

	spans := make([]Span, 0, (total+n-1)/n)
	for start := 0; start < total; start += n {
		spans = append(spans, Span{Start: start, End: min(start+n, total)})
	}
	return spans
}

// ForEach calls fn for every panel of s in index order.
func (l *Layout) ForEach(s Span, fn func(p Panel)) {
	for i := max(s.Start, 0); i < min(s.End, l.Count()); i++ {
		fn(Panel{Index: i, Row: i / l.side, Col: i % l.side, Size: l.size})
	}
}

// DefaultSpanSize picks a span length that gives each of workers about
// jobsPerWorker spans. The result is at least 1.
func DefaultSpanSize(panels, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	return max(panels/(workers*jobsPerWorker), 1)
}
