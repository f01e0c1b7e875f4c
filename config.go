package z0matrix

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("z0matrix: invalid config")

// Limits enforced by Config.Validate.
const (
	// MaxIterLimit keeps every iteration count exactly representable in float32.
	MaxIterLimit = 1 << 24

	// MaxCanvasSide bounds the canvas side (LatticeSide·PanelSize) in pixels.
	MaxCanvasSide = 1 << 16
)

// Bounds is an axis-aligned rectangle of the complex plane.
type Bounds struct {
	ReMin, ReMax float64
	ImMin, ImMax float64
}

// Config holds everything the compositor needs. It carries no I/O settings;
// output and progress belong to the caller.
type Config struct {
	// LatticeSide is the number of panels along each axis (N).
	LatticeSide int

	// PanelSize is the side of one panel in pixels.
	PanelSize int

	// MaxIter is the iteration budget per cell; also the "did not escape" value.
	MaxIter int

	// EscapeRadius is the magnitude above which an orbit counts as escaped.
	EscapeRadius float64

	// SeedRadius bounds the seed lattice: both axes span [-SeedRadius, SeedRadius].
	SeedRadius float64

	// Plane is the region of c-values shared by every panel.
	Plane Bounds

	// Workers is the number of worker goroutines. 0 or negative means GOMAXPROCS.
	Workers int

	// ChunkSize is the number of consecutive panels per job. 0 picks a size
	// that gives every worker about 16 jobs.
	ChunkSize int
}

// DefaultConfig returns the configuration of the reference rendering:
// 1000×1000 panels of 5×5 pixels, five iterations, z₀ ∈ [-3, 3]².
func DefaultConfig() Config {
	return Config{
		LatticeSide:  1000,
		PanelSize:    5,
		MaxIter:      5,
		EscapeRadius: 2.0,
		SeedRadius:   3,
		Plane: Bounds{
			ReMin: -2.0,
			ReMax: 1.0,
			ImMin: -1.5,
			ImMax: 1.5,
		},
	}
}

// CanvasSide returns LatticeSide·PanelSize.
func (c Config) CanvasSide() int {
	return c.LatticeSide * c.PanelSize
}

// Panels returns the number of panels (LatticeSide²).
func (c Config) Panels() int {
	return c.LatticeSide * c.LatticeSide
}

// Validate reports every problem with the configuration at once.
// The returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.LatticeSide < 1 {
		add("lattice side must be at least 1, got %d", c.LatticeSide)
	}
	if c.PanelSize < 1 {
		add("panel size must be at least 1, got %d", c.PanelSize)
	}
	if c.LatticeSide >= 1 && c.PanelSize >= 1 {
		if c.LatticeSide > MaxCanvasSide/c.PanelSize {
			add("canvas side %d×%d exceeds %d pixels", c.LatticeSide, c.PanelSize, MaxCanvasSide)
		}
	}
	if c.MaxIter < 1 {
		add("max iterations must be at least 1, got %d", c.MaxIter)
	}
	if c.MaxIter > MaxIterLimit {
		add("max iterations must not exceed %d, got %d", MaxIterLimit, c.MaxIter)
	}
	if !isFinite(c.EscapeRadius) || c.EscapeRadius <= 0 {
		add("escape radius must be finite and positive, got %v", c.EscapeRadius)
	}
	if !isFinite(c.SeedRadius) || c.SeedRadius < 0 {
		add("seed radius must be finite and non-negative, got %v", c.SeedRadius)
	}
	if err := c.Plane.validate(); err != nil {
		errs = append(errs, err)
	}
	if c.ChunkSize < 0 {
		add("chunk size must not be negative, got %d", c.ChunkSize)
	}

	return errors.Join(errs...)
}

func (b Bounds) validate() error {
	for _, v := range []float64{b.ReMin, b.ReMax, b.ImMin, b.ImMax} {
		if !isFinite(v) {
			return fmt.Errorf("%w: plane bounds must be finite, got %+v", ErrInvalidConfig, b)
		}
	}
	if b.ReMin >= b.ReMax {
		return fmt.Errorf("%w: re_min %v must be less than re_max %v", ErrInvalidConfig, b.ReMin, b.ReMax)
	}
	if b.ImMin >= b.ImMax {
		return fmt.Errorf("%w: im_min %v must be less than im_max %v", ErrInvalidConfig, b.ImMin, b.ImMax)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
