package caption

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Glyph is one shaped glyph, positioned relative to the pen origin of the
// line. Y grows downwards.
type Glyph struct {
	ID      sfnt.GlyphIndex
	X, Y    float64
	Advance float64
}

// Metrics describes the vertical extent of a face in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64
}

// Face is a Font at a given size.
//
// A Face serialises its own calls; share the Font, not the Face, between
// goroutines that draw a lot.
type Face struct {
	font *Font
	size float64

	mu     sync.Mutex
	text   *font.Face
	shaper shaping.HarfbuzzShaper
	buf    sfnt.Buffer
	raster vector.Rasterizer
}

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 { return f.size }

func (f *Face) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * 64)
}

// Shape lays out text on a single line starting at x = 0.
func (f *Face) Shape(text string) []Glyph {
	if text == "" {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shape(text)
}

func (f *Face) shape(text string) []Glyph {
	runes := []rune(text)
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.text,
		Size:      f.ppem(),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	glyphs := make([]Glyph, len(out.Glyphs))
	var x float64
	for i, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		glyphs[i] = Glyph{
			//nolint:gosec // G115: glyph ids of a TrueType font fit in uint16
			ID:      sfnt.GlyphIndex(g.GlyphID),
			X:       x + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	return glyphs
}

// Measure returns the advance width of text in pixels.
func (f *Face) Measure(text string) float64 {
	var w float64
	for _, g := range f.Shape(text) {
		w += g.Advance
	}
	return w
}

// detectScript returns the script of the first rune that has one.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if s := language.LookupScript(r); s != language.Common && s != language.Inherited {
			return s
		}
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
