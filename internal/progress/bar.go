package progress

import (
	"io"
	"strings"
	"sync"

	"golang.org/x/text/message"
)

const defaultBarWidth = 40

// Bar draws a single-line progress bar, redrawn in place with '\r'.
// The line is only rewritten when the whole percentage changes; a newline
// follows the final report.
type Bar struct {
	w     io.Writer
	width int

	mu      sync.Mutex
	last    int
	printer *message.Printer
}

// NewBar returns a Bar writing to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w, width: defaultBarWidth, last: -1, printer: printer()}
}

// Report implements z0matrix.Progress.
func (b *Bar) Report(done, total int) {
	e := NewEvent(done, total)
	pct := int(e.Percent)

	b.mu.Lock()
	defer b.mu.Unlock()

	if pct == b.last {
		return
	}
	b.last = pct

	filled := min(max(pct*b.width/100, 0), b.width)
	line := b.printer.Sprintf("\r[%s%s] %3d%% %d/%d panels",
		strings.Repeat("#", filled), strings.Repeat(".", b.width-filled),
		pct, done, total)
	if e.Complete() {
		line += "\n"
	}
	_, _ = io.WriteString(b.w, line)
}
