package colormap

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/z0matrix"
)

// Origin selects where canvas row 0 ends up in the image.
type Origin int

const (
	// OriginLower puts canvas row 0 at the bottom, so the imaginary axis
	// grows upwards.
	OriginLower Origin = iota

	// OriginUpper puts canvas row 0 at the top.
	OriginUpper
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginLower:
		return "lower"
	case OriginUpper:
		return "upper"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// ParseOrigin parses "lower" or "upper". The empty string means lower.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lower":
		return OriginLower, nil
	case "upper":
		return OriginUpper, nil
	}
	return 0, fmt.Errorf("colormap: unknown origin %q (want lower or upper)", s)
}

// Colorize renders r with m, scaled to the raster's own min and max.
func Colorize(r *z0matrix.Raster, m *Map, origin Origin) *image.NRGBA {
	lo, hi := r.MinMax()
	return ColorizeRange(r, m, lo, hi, origin)
}

// ColorizeRange renders r with m, normalising values against [lo, hi].
func ColorizeRange(r *z0matrix.Raster, m *Map, lo, hi float32, origin Origin) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := range r.Height {
		dy := y
		if origin == OriginLower {
			dy = r.Height - 1 - y
		}
		dst := img.Pix[dy*img.Stride : dy*img.Stride+r.Width*4]
		for x, v := range r.Row(y) {
			c := m.lut[Index(v, lo, hi)]
			i := x * 4
			dst[i+0] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = c.A
		}
	}
	return img
}
