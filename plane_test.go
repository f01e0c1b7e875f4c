package z0matrix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		n           int
		want        []float64
	}{
		{"zero", 0, 1, 0, nil},
		{"negative", 0, 1, -2, nil},
		{"single", -3, 3, 1, []float64{-3}},
		{"two", -2, 1, 2, []float64{-2, 1}},
		{"five", -2, 1, 5, []float64{-2, -1.25, -0.5, 0.25, 1}},
		{"symmetric", -3, 3, 3, []float64{-3, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linspace(tt.start, tt.stop, tt.n)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Linspace(%v, %v, %d) mismatch (-want +got):\n%s", tt.start, tt.stop, tt.n, diff)
			}
		})
	}
}

func TestLinspace_LastIsExact(t *testing.T) {
	for _, n := range []int{3, 7, 11, 999, 1000} {
		got := Linspace(-1.5, 1.5, n)
		if got[n-1] != 1.5 {
			t.Errorf("Linspace(-1.5, 1.5, %d) last = %v, want 1.5", n, got[n-1])
		}
	}
}

func TestNewParameterGrid(t *testing.T) {
	g := NewParameterGrid(Bounds{ReMin: -2, ReMax: 1, ImMin: -1.5, ImMax: 1.5}, 4, 3)

	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", g.Width(), g.Height())
	}

	tests := []struct {
		x, y int
		want complex128
	}{
		{0, 0, complex(-2, -1.5)},
		{3, 0, complex(1, -1.5)},
		{0, 2, complex(-2, 1.5)},
		{1, 1, complex(-1, 0)},
		{3, 2, complex(1, 1.5)},
	}
	for _, tt := range tests {
		if got := g.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	row := g.Row(1)
	if len(row) != 4 || row[2] != complex(0, 0) {
		t.Errorf("Row(1) = %v, want 4 values with Row(1)[2] = 0", row)
	}
}

func TestNewLattice_RowMajor(t *testing.T) {
	l := NewLattice(3, 3)

	if l.Side() != 3 || l.Len() != 9 {
		t.Fatalf("Side()=%d Len()=%d, want 3 and 9", l.Side(), l.Len())
	}

	want := []complex128{
		complex(-3, -3), complex(0, -3), complex(3, -3),
		complex(-3, 0), complex(0, 0), complex(3, 0),
		complex(-3, 3), complex(0, 3), complex(3, 3),
	}
	if diff := cmp.Diff(want, l.Seeds()); diff != "" {
		t.Errorf("Seeds() mismatch (-want +got):\n%s", diff)
	}

	for i := range l.Len() {
		row, col := l.Position(i)
		if row != i/3 || col != i%3 {
			t.Errorf("Position(%d) = (%d,%d), want (%d,%d)", i, row, col, i/3, i%3)
		}
		if l.Seed(i) != want[i] {
			t.Errorf("Seed(%d) = %v, want %v", i, l.Seed(i), want[i])
		}
	}
}

func TestNewLattice_SingleSeed(t *testing.T) {
	l := NewLattice(3, 1)
	if l.Len() != 1 || l.Seed(0) != complex(-3, -3) {
		t.Errorf("NewLattice(3, 1) = %v, want [(-3-3i)]", l.Seeds())
	}
}
