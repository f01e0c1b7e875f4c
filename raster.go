package z0matrix

import "fmt"

// Raster is a rectangular float32 buffer. It is used both for a single
// panel (an escape raster) and for the canvas holding all panels.
//
// A Raster may be a view into a larger raster; Stride is then the width of
// the parent. Views of non-overlapping regions may be written from
// different goroutines without synchronization.
type Raster struct {
	Width  int
	Height int
	Stride int
	Pix    []float32
}

// NewRaster allocates a zero-filled width×height raster.
func NewRaster(width, height int) *Raster {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("z0matrix: negative raster size %dx%d", width, height))
	}
	return &Raster{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]float32, width*height),
	}
}

// At returns the value at column x, row y.
// Out-of-range coordinates return 0.
func (r *Raster) At(x, y int) float32 {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Pix[y*r.Stride+x]
}

// Set stores v at column x, row y. Out-of-range coordinates are ignored.
func (r *Raster) Set(x, y int, v float32) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return
	}
	r.Pix[y*r.Stride+x] = v
}

// Row returns row y as a slice of length Width aliasing Pix.
func (r *Raster) Row(y int) []float32 {
	off := y * r.Stride
	return r.Pix[off : off+r.Width : off+r.Width]
}

// SubRaster returns a view of the w×h region whose top-left corner is (x, y).
// The view shares Pix with r. It panics if the region is not inside r.
func (r *Raster) SubRaster(x, y, w, h int) *Raster {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > r.Width || y+h > r.Height {
		panic(fmt.Sprintf("z0matrix: sub-raster (%d,%d %dx%d) outside %dx%d", x, y, w, h, r.Width, r.Height))
	}
	if w == 0 || h == 0 {
		return &Raster{Width: w, Height: h, Stride: r.Stride}
	}
	start := y*r.Stride + x
	end := (y+h-1)*r.Stride + x + w
	return &Raster{
		Width:  w,
		Height: h,
		Stride: r.Stride,
		Pix:    r.Pix[start:end:end],
	}
}

// Panel returns the view of panel (row, col) in a canvas of size×size panels.
func (r *Raster) Panel(row, col, size int) *Raster {
	return r.SubRaster(col*size, row*size, size, size)
}

// CopyFrom copies src into r. Both must have the same dimensions.
func (r *Raster) CopyFrom(src *Raster) {
	if src.Width != r.Width || src.Height != r.Height {
		panic(fmt.Sprintf("z0matrix: copy %dx%d into %dx%d", src.Width, src.Height, r.Width, r.Height))
	}
	for y := range r.Height {
		copy(r.Row(y), src.Row(y))
	}
}

// Clone returns a compact copy of r.
func (r *Raster) Clone() *Raster {
	c := NewRaster(r.Width, r.Height)
	c.CopyFrom(r)
	return c
}

// Equal reports whether r and o have the same dimensions and bitwise-equal values.
func (r *Raster) Equal(o *Raster) bool {
	if r.Width != o.Width || r.Height != o.Height {
		return false
	}
	for y := range r.Height {
		a, b := r.Row(y), o.Row(y)
		for x := range a {
			if a[x] != b[x] {
				return false
			}
		}
	}
	return true
}

// MinMax returns the smallest and largest values. An empty raster returns (0, 0).
func (r *Raster) MinMax() (lo, hi float32) {
	if r.Width == 0 || r.Height == 0 {
		return 0, 0
	}
	lo, hi = r.Pix[0], r.Pix[0]
	for y := range r.Height {
		for _, v := range r.Row(y) {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}
