// Package colormap maps escape counts to colours using 256-entry lookup
// tables.
//
// Tables are built once at init from polynomial fits of the matplotlib
// perceptual maps (viridis, plasma, magma, inferno) and Google's Turbo.
// Lookups are O(1): a value is normalised against the canvas range and
// rounded to one of the 256 entries.
//
// References:
//   - Turbo: https://ai.googleblog.com/2019/08/turbo-improved-rainbow-colormap-for.html
//   - Polynomial fits of the matplotlib maps: https://www.shadertoy.com/view/WlfXRN
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"
)

// Size is the number of entries in every table.
const Size = 256

// ErrUnknown is returned by Lookup for a name with no table.
var ErrUnknown = errors.New("colormap: unknown colormap")

// Map is a named 256-entry colour table. Map is immutable and safe for
// concurrent use.
type Map struct {
	name string
	lut  [Size]color.NRGBA
}

// poly holds per-channel polynomial coefficients, lowest degree first.
type poly [3][]float64

var (
	turbo = poly{
		{0.13572138, 4.61539260, -42.66032258, 132.13108234, -152.94239396, 59.28637943},
		{0.09140261, 2.19418839, 4.84296658, -14.18503333, 4.27729857, 2.82956604},
		{0.10667330, 12.64194608, -60.58204836, 110.36276771, -89.90310912, 27.34824973},
	}
	viridis = poly{
		{0.2777273272234177, 0.1050930431085774, -0.3308618287255563, -4.634230498983486, 6.228269936347081, 4.776384997670288, -5.435455855934631},
		{0.005407344544966578, 1.404613529898575, 0.214847559468213, -5.799100973351585, 14.17993336680509, -13.74514537774601, 4.645852612178535},
		{0.3340998053353061, 1.384590162594685, 0.09509516302823659, -19.33244095627987, 56.69055260068105, -65.35303263337234, 26.3124352495832},
	}
	plasma = poly{
		{0.05873234392399702, 2.176514634195958, -2.689460476458034, 6.130348345893603, -11.10743619062271, 10.02306557647065, -3.658713842777788},
		{0.02333670892565664, 0.2383834171260182, -7.455851135738909, 42.3461881477227, -82.66631109428045, 71.41361770095349, -22.93153465461149},
		{0.5433401826748754, 0.7539604599784036, 3.110799939717086, -28.51885465332158, 60.13984767418263, -54.07218655560067, 18.19190778539828},
	}
	magma = poly{
		{-0.002136485053939582, 0.2516605407371642, 8.353717279216625, -27.66873308576866, 52.17613981234068, -50.76852536473588, 18.65570506591883},
		{-0.000749655052795221, 0.6775232436837668, -3.577719514958484, 14.26473078096533, -27.94360607168351, 29.04658282127291, -11.48977351997711},
		{-0.005386127855323933, 2.494026599312351, 0.3144679030132573, -13.64921318813922, 12.94416944238394, 4.23415299384598, -5.601961508734096},
	}
	inferno = poly{
		{0.0002189403691192265, 0.1065134194856116, 11.60249308247187, -41.70399613139459, 77.162935699427, -71.31942824499214, 25.13112622477341},
		{0.001651004631001012, 0.5639564367884091, -3.972853965665698, 17.43639888205313, -33.40235894210092, 32.62606426397723, -12.24266895238567},
		{-0.01948089843709184, 3.932712388889277, -15.9423941062914, 44.35414519872813, -81.80730925738993, 73.20951985803202, -23.07032500287172},
	}
)

// registry holds every table by lower-case name.
var registry = map[string]*Map{}

func init() {
	for name, p := range map[string]poly{
		"turbo":   turbo,
		"viridis": viridis,
		"plasma":  plasma,
		"magma":   magma,
		"inferno": inferno,
	} {
		m := &Map{name: name}
		for i := range Size {
			t := float64(i) / (Size - 1)
			m.lut[i] = color.NRGBA{R: channel(p[0], t), G: channel(p[1], t), B: channel(p[2], t), A: 0xff}
		}
		registry[name] = m
	}

	gray := &Map{name: "gray"}
	for i := range Size {
		//nolint:gosec // G115: i is in [0,255]
		v := uint8(i)
		gray.lut[i] = color.NRGBA{R: v, G: v, B: v, A: 0xff}
	}
	registry["gray"] = gray
}

// channel evaluates c at t with Horner's rule and converts to a byte.
func channel(c []float64, t float64) uint8 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*t + c[i]
	}
	v = min(max(v, 0), 1)
	//nolint:gosec // G115: v is clamped to [0,1]
	return uint8(v*255 + 0.5)
}

// Lookup returns the table called name (case-insensitive).
func Lookup(name string) (*Map, error) {
	if m, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}

// Names returns the known colormap names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Name returns the colormap name.
func (m *Map) Name() string { return m.name }

// At returns table entry i.
func (m *Map) At(i uint8) color.NRGBA { return m.lut[i] }

// Color maps v within [lo, hi] to a colour. See Index.
func (m *Map) Color(v, lo, hi float32) color.NRGBA { return m.lut[Index(v, lo, hi)] }

// Index normalises v against [lo, hi] and rounds to a table index:
// round((v-lo)/(hi-lo) · 255). Values outside the range are clamped.
// An empty range (hi <= lo) maps every value to 0.
//
// Index is monotonic non-decreasing in v.
func Index(v, lo, hi float32) uint8 {
	if !(hi > lo) {
		return 0
	}
	t := (float64(v) - float64(lo)) / (float64(hi) - float64(lo))
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return Size - 1
	}
	//nolint:gosec // G115: t is in (0,1)
	return uint8(math.Round(t * (Size - 1)))
}
