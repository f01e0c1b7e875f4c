package image

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/z0matrix/internal/caption"
)

// Title band proportions relative to the image width.
const (
	titleSizeRatio = 1.0 / 45
	minTitleSize   = 10
	maxTitleSize   = 96

	// maxTitleWidth is the share of the image width the caption may use.
	maxTitleWidth = 0.95
)

// TitleSize returns the caption size in pixels per em for an image of
// width w.
func TitleSize(w int) float64 {
	return min(max(math.Round(float64(w)*titleSizeRatio), minTitleSize), maxTitleSize)
}

// WithTitle returns a new image with a white band above img holding title
// in black, centred. The font shrinks if the caption would not fit.
// An empty title returns img unchanged.
func WithTitle(img *image.NRGBA, title string) (*image.NRGBA, error) {
	if title == "" {
		return img, nil
	}

	font, err := caption.GoRegular()
	if err != nil {
		return nil, err
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	size := TitleSize(w)
	face := font.Face(size)
	if tw := face.Measure(title); tw > float64(w)*maxTitleWidth {
		size = max(math.Floor(size*float64(w)*maxTitleWidth/tw), 1)
		face = font.Face(size)
	}

	band := int(math.Ceil(face.Metrics().Height * 2))
	out := image.NewNRGBA(image.Rect(0, 0, w, h+band))
	draw.Draw(out, image.Rect(0, 0, w, band), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, band, w, h+band), img, img.Bounds().Min, draw.Src)

	if err := face.DrawCentered(out, image.Rect(0, 0, w, band), title, color.Black); err != nil {
		return nil, fmt.Errorf("image: draw title: %w", err)
	}
	return out, nil
}

// Figure bundles the post-processing of a coloured canvas.
type Figure struct {
	// Size is the longest side of the picture, excluding the title band.
	// Zero keeps the native size.
	Size int

	// Interpolation is the kernel used when Size rescales.
	Interpolation Interpolation

	// Title is drawn above the picture when not empty.
	Title string
}

// Render resizes img and adds the title band.
func (f Figure) Render(img *image.NRGBA) (*image.NRGBA, error) {
	return WithTitle(Resize(img, f.Size, f.Interpolation), f.Title)
}
