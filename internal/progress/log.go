package progress

import (
	"log/slog"
	"sync"

	"golang.org/x/text/message"
)

// DefaultStep is the default percentage between two Log lines.
const DefaultStep = 5.0

// Log writes progress to a slog.Logger, at most once every Step percent
// and always on completion.
type Log struct {
	logger *slog.Logger
	step   float64

	mu      sync.Mutex
	next    float64
	printer *message.Printer
}

// NewLog returns a Log reporter. A nil logger uses slog.Default(); a
// non-positive step uses DefaultStep.
func NewLog(logger *slog.Logger, step float64) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Log{logger: logger, step: step, next: step, printer: printer()}
}

// Report implements z0matrix.Progress.
func (l *Log) Report(done, total int) {
	e := NewEvent(done, total)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !e.Complete() && e.Percent < l.next {
		return
	}
	for l.next <= e.Percent {
		l.next += l.step
	}

	l.logger.Info("z0matrix: progress",
		"panels", l.printer.Sprintf("%d/%d", done, total),
		"percent", l.printer.Sprintf("%.1f", e.Percent))
}
