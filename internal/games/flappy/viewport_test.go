package flappy

import (
	"math"
	"testing"
)

func TestViewportFitsWidth(t *testing.T) {
	// 400x480 world in an 80x120 terminal: width is the tighter axis.
	v := NewViewport(400, 480, 80, 120, 2)
	if v.Scale != 0.2 {
		t.Fatalf("Scale = %v, want 0.2", v.Scale)
	}
	if v.OffsetX != 0 {
		t.Errorf("OffsetX = %v, want 0", v.OffsetX)
	}
	// 480 * 0.2 / 2 = 48 rows used, 72 spare.
	if v.OffsetY != 36 {
		t.Errorf("OffsetY = %v, want 36", v.OffsetY)
	}
}

func TestViewportFitsHeight(t *testing.T) {
	// 400x480 world in 200x24: scale = min(0.5, 0.1) = 0.1.
	v := NewViewport(400, 480, 200, 24, 2)
	if v.Scale != 0.1 {
		t.Fatalf("Scale = %v, want 0.1", v.Scale)
	}
	if v.OffsetX != 80 {
		t.Errorf("OffsetX = %v, want 80", v.OffsetX)
	}
	if v.OffsetY != 0 {
		t.Errorf("OffsetY = %v, want 0", v.OffsetY)
	}

	col, row := v.ToScreen(0, 0)
	if col != 80 || row != 0 {
		t.Errorf("ToScreen(0,0) = %d,%d", col, row)
	}
	col, row = v.ToScreen(399.9, 479.9)
	if col != 119 || row != 23 {
		t.Errorf("ToScreen(max) = %d,%d, want 119,23", col, row)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(400, 480, 100, 30, CellAspect)
	for _, p := range [][2]float64{{0, 0}, {80, 240}, {200, 100}, {399, 429}} {
		col, row := v.ToScreen(p[0], p[1])
		x, y := v.ToWorld(col, row)
		// Back-projection lands within one cell of the original point.
		if math.Abs(x-p[0]) > 1/v.Scale || math.Abs(y-p[1]) > v.Aspect/v.Scale {
			t.Errorf("round trip %v -> (%d,%d) -> (%v,%v)", p, col, row, x, y)
		}
	}
}

func TestViewportDegenerate(t *testing.T) {
	v := NewViewport(400, 480, 0, 0, 0)
	if v.Scale != 0 {
		t.Errorf("Scale = %v, want 0", v.Scale)
	}
	if v.Aspect != CellAspect {
		t.Errorf("Aspect = %v, want default", v.Aspect)
	}
	if v.Cols(52) != 1 || v.Rows(110) != 1 {
		t.Error("lengths should never collapse below one cell")
	}
}
