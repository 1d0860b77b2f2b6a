package model

import (
	"math"
	"testing"
)

func TestGridAt(t *testing.T) {
	grid := NewGrid(4, 3, []int{
		0, 0, 1, 1,
		0, 2, 1, 1,
		2, 0, 0, 0,
	})
	if grid == nil {
		t.Fatal("NewGrid returned nil for matching dimensions")
	}

	tests := []struct {
		col, row int
		want     Cell
	}{
		{0, 0, Open},
		{2, 0, Water},
		{1, 1, Blocked},
		{0, 2, Blocked},
		{3, 2, Open},
	}
	for _, tc := range tests {
		got := grid.At(tc.col, tc.row)
		if got != tc.want {
			t.Errorf("At(%d, %d) = %d, want %d", tc.col, tc.row, got, tc.want)
		}
	}
}

func TestGridAtOutOfBounds(t *testing.T) {
	grid := NewGrid(2, 2, []int{1, 1, 1, 1})

	// Out-of-bounds should return Open.
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := grid.At(c[0], c[1]); got != Open {
			t.Errorf("At(%d, %d) = %d, want Open", c[0], c[1], got)
		}
	}
}

func TestGridAtPoint(t *testing.T) {
	grid := NewGrid(2, 2, []int{0, 1, 2, 0})

	if got := grid.AtPoint(Point{X: 1.7, Y: 0.2}); got != Water {
		t.Errorf("AtPoint(1.7, 0.2) = %d, want Water", got)
	}
	if got := grid.AtPoint(Point{X: 0.5, Y: 1.9}); got != Blocked {
		t.Errorf("AtPoint(0.5, 1.9) = %d, want Blocked", got)
	}
	if got := grid.AtPoint(Point{X: -0.5, Y: 0}); got != Open {
		t.Errorf("AtPoint(-0.5, 0) = %d, want Open", got)
	}
}

func TestNewGridRejectsMismatch(t *testing.T) {
	if g := NewGrid(3, 3, []int{0, 0}); g != nil {
		t.Error("expected nil grid when data length does not match dimensions")
	}
	if g := NewGrid(0, 0, nil); g != nil {
		t.Error("expected nil grid for zero dimensions")
	}
}

func TestGridHasWater(t *testing.T) {
	if NewGrid(2, 1, []int{0, 2}).HasWater() {
		t.Error("HasWater() should be false for a land-only grid")
	}
	if !NewGrid(2, 1, []int{0, 1}).HasWater() {
		t.Error("HasWater() should be true for a grid with water")
	}
}

func TestPointDist(t *testing.T) {
	d := Point{X: 0, Y: 0}.Dist(Point{X: 3, Y: 4})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("Dist = %v, want 5", d)
	}
}

func TestClassProductRoundTrip(t *testing.T) {
	for _, c := range Classes {
		got, ok := ClassOf(c.Product())
		if !ok || got != c {
			t.Errorf("ClassOf(%q.Product()) = %q, %v", c, got, ok)
		}
	}
	if _, ok := ClassOf(Mine); ok {
		t.Error("mine should not map to a unit class")
	}
}
