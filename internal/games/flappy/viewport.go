package flappy

import "math"

// CellAspect is the height of a terminal cell divided by its width.
// It plays the role a device pixel ratio plays on a bitmap display.
const CellAspect = 2.0

// Viewport maps world coordinates onto screen cells. The world keeps its
// proportions: one uniform scale is chosen so it fits the screen, and the
// remaining space is split evenly on both sides.
type Viewport struct {
	Scale   float64 // columns per world unit
	Aspect  float64 // cell height / cell width
	OffsetX float64 // columns
	OffsetY float64 // rows
}

// NewViewport fits a worldW x worldH world into cols x rows cells.
func NewViewport(worldW, worldH float64, cols, rows int, aspect float64) Viewport {
	if aspect <= 0 {
		aspect = CellAspect
	}
	if worldW <= 0 || worldH <= 0 || cols <= 0 || rows <= 0 {
		return Viewport{Scale: 0, Aspect: aspect}
	}

	// Measure everything in cell widths so both axes share one unit.
	scale := math.Min(float64(cols)/worldW, float64(rows)*aspect/worldH)
	usedCols := worldW * scale
	usedRows := worldH * scale / aspect

	return Viewport{
		Scale:   scale,
		Aspect:  aspect,
		OffsetX: (float64(cols) - usedCols) / 2,
		OffsetY: (float64(rows) - usedRows) / 2,
	}
}

// ToScreen converts a world point to the cell that contains it.
func (v Viewport) ToScreen(x, y float64) (col, row int) {
	return int(math.Floor(x*v.Scale + v.OffsetX)), int(math.Floor(y*v.Scale/v.Aspect + v.OffsetY))
}

// ToWorld converts the centre of a cell back to world coordinates.
func (v Viewport) ToWorld(col, row int) (x, y float64) {
	if v.Scale == 0 {
		return 0, 0
	}
	x = (float64(col) + 0.5 - v.OffsetX) / v.Scale
	y = (float64(row) + 0.5 - v.OffsetY) * v.Aspect / v.Scale
	return x, y
}

// Cols converts a horizontal world length to a whole number of columns, at least 1.
func (v Viewport) Cols(length float64) int {
	return max(1, int(math.Round(length*v.Scale)))
}

// Rows converts a vertical world length to a whole number of rows, at least 1.
func (v Viewport) Rows(length float64) int {
	return max(1, int(math.Round(length*v.Scale/v.Aspect)))
}
