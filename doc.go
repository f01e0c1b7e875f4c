// Package z0matrix renders the Z0-Mandel-Matrix: a grid of Mandelbrot
// variants, one per starting value z₀.
//
// # Overview
//
// The classical Mandelbrot set iterates z ← z² + c from z₀ = 0. This package
// lets z₀ vary: a lattice of N×N seeds spans [-r, r] on both axes, and for
// every seed an escape-time image of the same parameter plane is computed.
// The small images (panels) are tiled into one large float32 canvas whose
// panel (row, col) belongs to seed index row·N + col.
//
// # Quick Start
//
//	cfg := z0matrix.DefaultConfig()
//	cfg.LatticeSide = 200
//
//	c, err := z0matrix.NewCompositor(cfg,
//	    z0matrix.WithProgress(z0matrix.ProgressFunc(func(done, total int) {
//	        fmt.Printf("\r%d/%d", done, total)
//	    })))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	canvas, err := c.Compose(context.Background())
//
// # Escape-time convention
//
// A cell holds the zero-based iteration index at which |z| first exceeded the
// escape radius, or MaxIter if it never did. A cell that would escape at
// step MaxIter is therefore indistinguishable from one that never escapes;
// that is the usual approximation of a bounded iteration budget.
//
// Non-finite values produced by the recurrence count as escaped, and an
// escaped cell is never iterated again, so overflow cannot reach the canvas.
//
// # Concurrency
//
// Panels are evaluated on a work-stealing worker pool. Each panel is written
// through its own view of the canvas and panels never overlap, so the canvas
// needs no locking. The result is identical for every worker count.
//
// # Architecture
//
//   - Public API: Config, Compositor, Evaluate, Raster, ParameterGrid, Lattice
//   - internal/parallel: worker pool and panel layout
//   - internal/colormap, internal/image, internal/caption: turning a canvas into a picture
//   - internal/canvasio: compressed float32 dumps
//   - internal/config, internal/progress: CLI collaborators
package z0matrix

// Version information
const (
	// Version is the current version of the module
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
