package z0matrix

// Linspace returns n evenly spaced values over [start, stop].
// The first value is start and, for n > 1, the last is exactly stop.
// n == 1 yields [start]; n <= 0 yields nil.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range n {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// ParameterGrid is an immutable height×width grid of c-values.
// Row y holds imaginary part im[y]; column x holds real part re[x].
//
// A ParameterGrid is safe for concurrent reads.
type ParameterGrid struct {
	width  int
	height int
	values []complex128 // row-major
}

// NewParameterGrid samples b on a width×height lattice of evenly spaced axes.
func NewParameterGrid(b Bounds, width, height int) *ParameterGrid {
	re := Linspace(b.ReMin, b.ReMax, width)
	im := Linspace(b.ImMin, b.ImMax, height)

	g := &ParameterGrid{
		width:  len(re),
		height: len(im),
		values: make([]complex128, len(re)*len(im)),
	}
	for y, ci := range im {
		row := g.values[y*g.width : (y+1)*g.width]
		for x, cr := range re {
			row[x] = complex(cr, ci)
		}
	}
	return g
}

// Width returns the number of columns.
func (g *ParameterGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *ParameterGrid) Height() int { return g.height }

// At returns the parameter at column x, row y.
func (g *ParameterGrid) At(x, y int) complex128 {
	return g.values[y*g.width+x]
}

// Row returns row y. The slice aliases the grid and must not be modified.
func (g *ParameterGrid) Row(y int) []complex128 {
	return g.values[y*g.width : (y+1)*g.width]
}

// Lattice is the ordered sequence of seeds, flattened row-major from an
// N×N grid. Seed i belongs to panel (i / N, i % N).
type Lattice struct {
	side  int
	seeds []complex128
}

// NewLattice spans [-radius, radius] on both axes with side points each.
// The outer order runs over the imaginary axis, so consecutive seeds share
// an imaginary part and step along the real axis.
func NewLattice(radius float64, side int) *Lattice {
	re := Linspace(-radius, radius, side)
	im := Linspace(-radius, radius, side)

	l := &Lattice{
		side:  len(re),
		seeds: make([]complex128, 0, len(re)*len(im)),
	}
	for _, y := range im {
		for _, x := range re {
			l.seeds = append(l.seeds, complex(x, y))
		}
	}
	return l
}

// Side returns N.
func (l *Lattice) Side() int { return l.side }

// Len returns N².
func (l *Lattice) Len() int { return len(l.seeds) }

// Seed returns seed i.
func (l *Lattice) Seed(i int) complex128 { return l.seeds[i] }

// Position returns the panel row and column of seed i.
func (l *Lattice) Position(i int) (row, col int) {
	return i / l.side, i % l.side
}

// Seeds returns the flattened seeds. The slice aliases the lattice and must
// not be modified.
func (l *Lattice) Seeds() []complex128 { return l.seeds }
