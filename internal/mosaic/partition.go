package mosaic

// GridPartition is an ordered list of rectangular parts covering an image,
// in the same pixel coordinate space as the image they partition. Parts may
// be non-uniform in size: remainder pixels are absorbed by the last column
// and row. A partition is built once per document and never mutated.
type GridPartition struct {
	Parts []Rect
	Cols  int
	Rows  int
}

// Partition splits a width x height pixel area into cols x rows plates,
// row-major. Remainders go to the rightmost column and bottom row.
func Partition(width, height, cols, rows int) GridPartition {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	baseW := width / cols
	baseH := height / rows
	parts := make([]Rect, 0, cols*rows)
	for r := 0; r < rows; r++ {
		h := baseH
		if r == rows-1 {
			h = height - baseH*(rows-1)
		}
		for c := 0; c < cols; c++ {
			w := baseW
			if c == cols-1 {
				w = width - baseW*(cols-1)
			}
			parts = append(parts, Rect{X: c * baseW, Y: r * baseH, W: w, H: h})
		}
	}
	return GridPartition{Parts: parts, Cols: cols, Rows: rows}
}

// StepPartition subdivides one plate into cells of a fixed step size,
// row-major. When the plate does not divide evenly the trailing cells are
// smaller, so the partition still tiles the plate exactly.
func StepPartition(plate Rect, step int) GridPartition {
	if step < 1 {
		step = 1
	}
	cols := (plate.W + step - 1) / step
	rows := (plate.H + step - 1) / step
	parts := make([]Rect, 0, cols*rows)
	for r := 0; r < rows; r++ {
		h := step
		if plate.Y+r*step+h > plate.Y+plate.H {
			h = plate.H - r*step
		}
		for c := 0; c < cols; c++ {
			w := step
			if plate.X+c*step+w > plate.X+plate.W {
				w = plate.W - c*step
			}
			parts = append(parts, Rect{X: plate.X + c*step, Y: plate.Y + r*step, W: w, H: h})
		}
	}
	return GridPartition{Parts: parts, Cols: cols, Rows: rows}
}

// Divisible reports whether a plate's dimensions are exact multiples of the
// step size.
func Divisible(plate Rect, step int) bool {
	return step > 0 && plate.W%step == 0 && plate.H%step == 0
}

// AllDivisible reports whether every part of the partition divides evenly by
// the step size.
func AllDivisible(g GridPartition, step int) bool {
	for _, p := range g.Parts {
		if !Divisible(p, step) {
			return false
		}
	}
	return true
}
