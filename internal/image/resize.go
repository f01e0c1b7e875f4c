package image

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation selects the resampling kernel used by Resize.
type Interpolation uint8

const (
	// InterpNearest keeps hard panel edges. It is the default.
	InterpNearest Interpolation = iota

	// InterpBilinear is a fast bilinear approximation.
	InterpBilinear

	// InterpCatmullRom is the Catmull-Rom cubic.
	InterpCatmullRom
)

// String returns the interpolation name as accepted by ParseInterpolation.
func (i Interpolation) String() string {
	switch i {
	case InterpNearest:
		return "nearest"
	case InterpBilinear:
		return "bilinear"
	case InterpCatmullRom:
		return "catmullrom"
	default:
		return fmt.Sprintf("Interpolation(%d)", i)
	}
}

// ParseInterpolation parses "nearest", "bilinear" or "catmullrom".
// The empty string means nearest.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return InterpNearest, nil
	case "bilinear":
		return InterpBilinear, nil
	case "catmullrom", "bicubic":
		return InterpCatmullRom, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInterpolation, s)
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpBilinear:
		return draw.ApproxBiLinear
	case InterpCatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// FitSize returns the dimensions of a w×h image scaled so that its longer
// side is longest, keeping the aspect ratio. Each side is at least 1.
// A non-positive longest returns (w, h) unchanged.
func FitSize(w, h, longest int) (int, int) {
	if longest <= 0 || w <= 0 || h <= 0 {
		return w, h
	}
	if w >= h {
		return longest, max(int(int64(h)*int64(longest)/int64(w)), 1)
	}
	return max(int(int64(w)*int64(longest)/int64(h)), 1), longest
}

// Resize scales src so that its longer side is longest pixels.
// If longest is not positive or already matches, src is returned as is.
func Resize(src *image.NRGBA, longest int, interp Interpolation) *image.NRGBA {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), longest)
	if w == b.Dx() && h == b.Dy() {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	interp.scaler().Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
