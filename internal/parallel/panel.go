// Package parallel schedules panel evaluation for the z0matrix compositor.
//
// The canvas is an N×N arrangement of square panels. Panels are numbered
// row-major (index = row·N + col) and grouped into contiguous spans; each
// span becomes one job on the WorkerPool. Panels never overlap, so a job
// writes its panels without coordinating with other jobs.
package parallel

// Panel is the placement of one lattice seed on the canvas.
type Panel struct {
	// Index is the row-major position in the lattice.
	Index int

	// Row is the panel row (0-based).
	Row int

	// Col is the panel column (0-based).
	Col int

	// Size is the panel side in pixels.
	Size int
}

// Bounds returns the pixel bounds of the panel in canvas space as
// (x, y, width, height), with x, y the top-left corner.
func (p Panel) Bounds() (x, y, w, h int) {
	return p.Col * p.Size, p.Row * p.Size, p.Size, p.Size
}

// Contains reports whether the canvas pixel (cx, cy) lies in the panel.
func (p Panel) Contains(cx, cy int) bool {
	x, y, w, h := p.Bounds()
	return cx >= x && cx < x+w && cy >= y && cy < y+h
}

// Span is a half-open range [Start, End) of panel indices.
type Span struct {
	Start int
	End   int
}

// Len returns the number of panels in the span.
func (s Span) Len() int {
	return s.End - s.Start
}
