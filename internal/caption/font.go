// Package caption renders single-line text onto RGBA images.
//
// Text is shaped with go-text/typesetting (HarfBuzz), so kerning and
// ligatures come out as the font intends. Glyph outlines are loaded with
// golang.org/x/image/font/sfnt and filled with the anti-aliasing
// rasterizer from golang.org/x/image/vector.
//
// The embedded Go Regular font is always available:
//
//	f, _ := caption.GoRegular()
//	face := f.Face(24)
//	face.DrawCentered(img, band, "Hello", color.Black)
package caption

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// ErrEmptyFont is returned by ParseFont for empty data.
var ErrEmptyFont = errors.New("caption: empty font data")

// Font is a parsed TrueType/OpenType font. It is read-only and safe for
// concurrent use; create a Face per goroutine.
type Font struct {
	outlines *sfnt.Font
	shaping  *font.Font
}

// ParseFont parses TTF or OTF data.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}

	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("caption: parse outlines: %w", err)
	}

	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("caption: parse shaping tables: %w", err)
	}

	return &Font{outlines: outlines, shaping: face.Font}, nil
}

var goRegular = sync.OnceValues(func() (*Font, error) {
	return ParseFont(goregular.TTF)
})

// GoRegular returns the embedded Go Regular font. It is parsed once.
func GoRegular() (*Font, error) {
	return goRegular()
}

// Face returns a face of f at size pixels per em.
func (f *Font) Face(size float64) *Face {
	return &Face{
		font: f,
		size: size,
		text: font.NewFace(f.shaping),
	}
}
