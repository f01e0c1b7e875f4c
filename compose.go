package z0matrix

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/z0matrix/internal/parallel"
)

// Compositor evaluates every seed of a lattice and tiles the escape rasters
// into one canvas. The parameter grid and the lattice are built once in
// NewCompositor and only read afterwards.
//
// A Compositor may be used for several Compose calls; each call produces a
// fresh canvas.
type Compositor struct {
	cfg      Config
	grid     *ParameterGrid
	lattice  *Lattice
	layout   *parallel.Layout
	progress Progress
}

// NewCompositor validates cfg and prepares the shared inputs.
// The returned error wraps ErrInvalidConfig when cfg is rejected.
func NewCompositor(cfg Config, opts ...Option) (*Compositor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Compositor{
		cfg:      cfg,
		grid:     NewParameterGrid(cfg.Plane, cfg.PanelSize, cfg.PanelSize),
		lattice:  NewLattice(cfg.SeedRadius, cfg.LatticeSide),
		layout:   parallel.NewLayout(cfg.LatticeSide, cfg.PanelSize),
		progress: o.progress,
	}, nil
}

// Config returns the validated configuration.
func (c *Compositor) Config() Config { return c.cfg }

// Grid returns the shared parameter grid.
func (c *Compositor) Grid() *ParameterGrid { return c.grid }

// Lattice returns the seed lattice.
func (c *Compositor) Lattice() *Lattice { return c.lattice }

// Compose renders the full canvas. Panel (row, col) of the result equals
// Evaluate(Lattice().Seed(row·N+col), …) regardless of the worker count.
//
// If ctx is cancelled, the remaining panels are skipped and Compose returns
// ctx.Err(); an incomplete canvas is never returned.
func (c *Compositor) Compose(ctx context.Context) (*Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := Logger()
	start := time.Now()

	side := c.layout.CanvasSide()
	canvas := NewRaster(side, side)

	pool := parallel.NewWorkerPool(c.cfg.Workers)
	defer pool.Close()

	spanSize := c.cfg.ChunkSize
	if spanSize == 0 {
		spanSize = parallel.DefaultSpanSize(c.layout.Count(), pool.Workers())
	}
	spans := c.layout.Spans(spanSize)

	log.Info("z0matrix: compose started",
		"panels", c.layout.Count(),
		"canvas", fmt.Sprintf("%dx%d", side, side),
		"max_iter", c.cfg.MaxIter)
	log.Debug("z0matrix: schedule",
		"workers", pool.Workers(),
		"span_size", spanSize,
		"jobs", len(spans))

	progress := newTracker(c.progress, c.layout.Count())

	jobs := make([]func(), len(spans))
	for i, span := range spans {
		jobs[i] = func() {
			if ctx.Err() != nil {
				return
			}
			c.layout.ForEach(span, func(p parallel.Panel) {
				x, y, w, h := p.Bounds()
				EvaluateInto(canvas.SubRaster(x, y, w, h), c.lattice.Seed(p.Index),
					c.grid, c.cfg.MaxIter, c.cfg.EscapeRadius)
			})
			progress.add(span.Len())
		}
	}

	pool.ExecuteAll(jobs)

	if err := ctx.Err(); err != nil {
		log.Warn("z0matrix: compose cancelled",
			"done", progress.count(),
			"panels", c.layout.Count(),
			"err", err)
		return nil, err
	}

	log.Info("z0matrix: compose finished",
		"panels", c.layout.Count(),
		"elapsed", time.Since(start))
	return canvas, nil
}

// Compose is the sequential form of Compositor.Compose. It places
// Evaluate(lattice[i], …) at panel (i / latticeSide, i % latticeSide) of a
// square canvas of side latticeSide·panelSize, in lattice order.
//
// grid must be panelSize×panelSize and lattice must hold at most
// latticeSide² seeds; Compose panics otherwise. Panels without a seed stay 0.
func Compose(lattice []complex128, latticeSide, panelSize int, grid *ParameterGrid, maxIter int, escapeRadius float64) *Raster {
	if grid.Width() != panelSize || grid.Height() != panelSize {
		panic(fmt.Sprintf("z0matrix: parameter grid %dx%d does not match panel size %d",
			grid.Width(), grid.Height(), panelSize))
	}
	if len(lattice) > latticeSide*latticeSide {
		panic(fmt.Sprintf("z0matrix: %d seeds do not fit a %dx%d lattice",
			len(lattice), latticeSide, latticeSide))
	}

	side := latticeSide * panelSize
	canvas := NewRaster(side, side)
	for idx, seed := range lattice {
		row, col := idx/latticeSide, idx%latticeSide
		canvas.Panel(row, col, panelSize).CopyFrom(Evaluate(seed, grid, maxIter, escapeRadius))
	}
	return canvas
}
