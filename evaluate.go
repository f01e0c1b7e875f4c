package z0matrix

import (
	"fmt"
	"math"
)

// Evaluate computes the escape raster of seed over grid.
//
// Each cell starts at v = seed and iterates v ← v² + c with its own c.
// The cell records the zero-based index i of the first step after which
// |v| > escapeRadius, or maxIter if that never happens within maxIter steps.
// Every value is therefore in {0, 1, …, maxIter}.
//
// Evaluate has no side effects; equal inputs give bitwise-equal outputs.
func Evaluate(seed complex128, grid *ParameterGrid, maxIter int, escapeRadius float64) *Raster {
	dst := NewRaster(grid.Width(), grid.Height())
	EvaluateInto(dst, seed, grid, maxIter, escapeRadius)
	return dst
}

// EvaluateInto is Evaluate writing into dst, which may be a view of a canvas.
// It panics if dst does not have the grid's dimensions.
func EvaluateInto(dst *Raster, seed complex128, grid *ParameterGrid, maxIter int, escapeRadius float64) {
	if dst.Width != grid.Width() || dst.Height != grid.Height() {
		panic(fmt.Sprintf("z0matrix: raster %dx%d does not match parameter grid %dx%d",
			dst.Width, dst.Height, grid.Width(), grid.Height()))
	}
	for y := range grid.Height() {
		out := dst.Row(y)
		for x, c := range grid.Row(y) {
			out[x] = float32(escapeTime(seed, c, maxIter, escapeRadius))
		}
	}
}

// escapeTime iterates a single cell. The loop exits at the first escape, so
// an escaped orbit is never squared again.
func escapeTime(z, c complex128, maxIter int, radius float64) int {
	zr, zi := real(z), imag(z)
	cr, ci := real(c), imag(c)
	for i := range maxIter {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if escaped(zr, zi, radius) {
			return i
		}
	}
	return maxIter
}

// escaped reports whether |z| > radius. NaN and infinite components count
// as escaped: the comparison is written so that NaN fails the bound.
func escaped(zr, zi, radius float64) bool {
	return !(math.Hypot(zr, zi) <= radius)
}
