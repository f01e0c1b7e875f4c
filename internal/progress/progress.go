// Package progress provides reporters for the compositor's panel count.
//
// All reporters implement z0matrix.Progress and can be combined with Multi:
//
//	p := progress.Multi(progress.NewBar(os.Stderr), broadcaster)
//	c, _ := z0matrix.NewCompositor(cfg, z0matrix.WithProgress(p))
package progress

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/z0matrix"
)

// Nop discards every report.
var Nop z0matrix.Progress = nop{}

type nop struct{}

func (nop) Report(int, int) {}

type multi []z0matrix.Progress

func (m multi) Report(done, total int) {
	for _, p := range m {
		p.Report(done, total)
	}
}

// Multi forwards each report to every non-nil p, in order.
func Multi(ps ...z0matrix.Progress) z0matrix.Progress {
	var m multi
	for _, p := range ps {
		if p != nil {
			m = append(m, p)
		}
	}
	switch len(m) {
	case 0:
		return Nop
	case 1:
		return m[0]
	}
	return m
}

// Event is one progress sample.
type Event struct {
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// NewEvent builds an event. A zero total counts as complete.
func NewEvent(done, total int) Event {
	pct := 100.0
	if total > 0 {
		pct = float64(done) * 100 / float64(total)
	}
	return Event{Done: done, Total: total, Percent: pct}
}

// Complete reports whether the event is the last one of a run.
func (e Event) Complete() bool {
	return e.Done >= e.Total
}

// printer formats counts with English digit grouping.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}
