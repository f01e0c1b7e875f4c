// Package image turns a coloured canvas into the final picture file.
//
// It resamples to a requested size, adds an optional title band and
// encodes by file extension (PNG, JPEG, TIFF, BMP).
package image

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Errors.
var (
	// ErrUnsupportedFormat is returned when the output extension has no encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrUnknownInterpolation is returned by ParseInterpolation.
	ErrUnknownInterpolation = errors.New("image: unknown interpolation")
)

// Format is an output file format.
type Format uint8

const (
	// FormatPNG is lossless PNG. It is the default.
	FormatPNG Format = iota

	// FormatJPEG is baseline JPEG at JPEGQuality.
	FormatJPEG

	// FormatTIFF is deflate-compressed TIFF.
	FormatTIFF

	// FormatBMP is uncompressed BMP.
	FormatBMP
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// FormatFromPath picks the format from the extension of path.
// A path without an extension is PNG.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
