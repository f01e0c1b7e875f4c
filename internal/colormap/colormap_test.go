package colormap

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/z0matrix"
)

// =============================================================================
// Lookup Tests
// =============================================================================

func TestLookup_Known(t *testing.T) {
	for _, name := range []string{"turbo", "viridis", "plasma", "magma", "inferno", "gray", "Turbo", " viridis "} {
		m, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if m == nil || m.Name() == "" {
			t.Errorf("Lookup(%q) returned an unnamed map", name)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("jet")
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("Lookup(jet) error = %v, want ErrUnknown", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	want := []string{"gray", "inferno", "magma", "plasma", "turbo", "viridis"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names() = %v, want %v", got, want)
			break
		}
	}
}

// =============================================================================
// Table Tests
// =============================================================================

func TestGray_Identity(t *testing.T) {
	m, _ := Lookup("gray")
	for i := range Size {
		//nolint:gosec // i < 256
		v := uint8(i)
		if c := m.At(v); c != (color.NRGBA{R: v, G: v, B: v, A: 0xff}) {
			t.Fatalf("gray.At(%d) = %v", i, c)
		}
	}
}

func TestTables_Opaque(t *testing.T) {
	for _, name := range Names() {
		m, _ := Lookup(name)
		for i := range Size {
			//nolint:gosec // i < 256
			if a := m.At(uint8(i)).A; a != 0xff {
				t.Fatalf("%s.At(%d).A = %d, want 255", name, i, a)
			}
		}
	}
}

func TestPerceptualMaps_LightnessGrows(t *testing.T) {
	// The matplotlib maps go from dark to light.
	luma := func(c color.NRGBA) float64 {
		return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	}
	for _, name := range []string{"viridis", "plasma", "magma", "inferno"} {
		m, _ := Lookup(name)
		if first, last := luma(m.At(0)), luma(m.At(255)); first >= last {
			t.Errorf("%s: luma(0) = %.1f, luma(255) = %.1f, want increasing", name, first, last)
		}
	}
}

// =============================================================================
// Index Tests
// =============================================================================

func TestIndex(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float32
		want      uint8
	}{
		{"low end", 0, 0, 5, 0},
		{"high end", 5, 0, 5, 255},
		{"middle rounds", 2.5, 0, 5, 128},
		{"one fifth", 1, 0, 5, 51},
		{"below range", -3, 0, 5, 0},
		{"above range", 9, 0, 5, 255},
		{"empty range", 4, 4, 4, 0},
		{"inverted range", 1, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Index(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Index(%v, %v, %v) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestIndex_Monotonic(t *testing.T) {
	const lo, hi = 0, 1000
	prev := Index(lo, lo, hi)
	for v := float32(lo); v <= hi; v += 0.25 {
		cur := Index(v, lo, hi)
		if cur < prev {
			t.Fatalf("Index(%v) = %d < Index(previous) = %d", v, cur, prev)
		}
		prev = cur
	}
}

// =============================================================================
// Colorize Tests
// =============================================================================

func TestColorize_OriginLowerFlipsRows(t *testing.T) {
	r := z0matrix.NewRaster(2, 3)
	for y := range 3 {
		for x := range 2 {
			r.Set(x, y, float32(y))
		}
	}
	m, _ := Lookup("gray")

	lower := Colorize(r, m, OriginLower)
	upper := Colorize(r, m, OriginUpper)

	if got := lower.NRGBAAt(0, 2).R; got != 0 {
		t.Errorf("lower: bottom row = %d, want 0 (canvas row 0)", got)
	}
	if got := lower.NRGBAAt(1, 0).R; got != 255 {
		t.Errorf("lower: top row = %d, want 255 (canvas row 2)", got)
	}
	if got := upper.NRGBAAt(0, 0).R; got != 0 {
		t.Errorf("upper: top row = %d, want 0 (canvas row 0)", got)
	}
	if got := upper.NRGBAAt(1, 1).R; got != 128 {
		t.Errorf("upper: middle row = %d, want 128", got)
	}
}

func TestColorize_ConstantRaster(t *testing.T) {
	r := z0matrix.NewRaster(4, 4)
	for i := range r.Pix {
		r.Pix[i] = 5
	}
	m, _ := Lookup("viridis")
	img := Colorize(r, m, OriginUpper)

	want := m.At(0)
	for y := range 4 {
		for x := range 4 {
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestColorize_Deterministic(t *testing.T) {
	cfg := z0matrix.DefaultConfig()
	grid := z0matrix.NewParameterGrid(cfg.Plane, 32, 32)
	r := z0matrix.Evaluate(0.2-0.4i, grid, 20, cfg.EscapeRadius)
	m, _ := Lookup("turbo")

	a := Colorize(r, m, OriginLower)
	b := Colorize(r, m, OriginLower)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("Colorize() is not deterministic")
		}
	}
}

func TestOrigin_Parse(t *testing.T) {
	tests := []struct {
		in      string
		want    Origin
		wantErr bool
	}{
		{"", OriginLower, false},
		{"lower", OriginLower, false},
		{"UPPER", OriginUpper, false},
		{"middle", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOrigin(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("ParseOrigin(%q) = (%v, %v), want (%v, err=%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
	if OriginLower.String() != "lower" || OriginUpper.String() != "upper" {
		t.Error("Origin.String() mismatch")
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkColorize_1000(b *testing.B) {
	r := z0matrix.NewRaster(1000, 1000)
	for i := range r.Pix {
		r.Pix[i] = float32(i % 6)
	}
	m, _ := Lookup("turbo")
	b.ReportAllocs()
	for b.Loop() {
		_ = Colorize(r, m, OriginLower)
	}
}
