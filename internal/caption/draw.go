package caption

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics returns the ascent, descent and line height of the face.
func (f *Face) Metrics() Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.font.outlines.Metrics(&f.buf, f.ppem(), xfont.HintingNone)
	if err != nil {
		// Fall back to the usual Latin proportions.
		return Metrics{Ascent: f.size * 0.8, Descent: f.size * 0.2, Height: f.size * 1.2}
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		Height:  fixedToFloat(m.Height),
	}
}

// Draw fills text onto dst with its pen origin at (x, baseline) in dst
// coordinates.
func (f *Face) Draw(dst draw.Image, text string, x, baseline float64, c color.Color) error {
	if text == "" {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b := dst.Bounds()
	if b.Empty() {
		return nil
	}
	f.raster.Reset(b.Dx(), b.Dy())

	// Rasterizer space starts at dst.Bounds().Min.
	ox := x - float64(b.Min.X)
	oy := baseline - float64(b.Min.Y)

	for _, g := range f.shape(text) {
		segs, err := f.font.outlines.LoadGlyph(&f.buf, g.ID, f.ppem(), nil)
		if err != nil {
			return fmt.Errorf("caption: load glyph %d: %w", g.ID, err)
		}
		f.path(segs, ox+g.X, oy+g.Y)
	}

	f.raster.Draw(dst, b, image.NewUniform(c), image.Point{})
	return nil
}

// path appends glyph segments to the rasterizer, translated by (dx, dy).
func (f *Face) path(segs sfnt.Segments, dx, dy float64) {
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(dx + fixedToFloat(p.X)), float32(dy + fixedToFloat(p.Y))
	}

	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				f.raster.ClosePath()
			}
			f.raster.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			f.raster.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			f.raster.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			f.raster.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if open {
		f.raster.ClosePath()
	}
}

// DrawCentered draws text centred horizontally and vertically in r.
func (f *Face) DrawCentered(dst draw.Image, r image.Rectangle, text string, c color.Color) error {
	w := f.Measure(text)
	m := f.Metrics()

	x := float64(r.Min.X) + (float64(r.Dx())-w)/2
	// Centre the ascent+descent box, not the line height.
	baseline := float64(r.Min.Y) + (float64(r.Dy())+m.Ascent-m.Descent)/2
	return f.Draw(dst, text, math.Round(x), math.Round(baseline), c)
}
