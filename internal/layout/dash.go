package layout

import (
	"math"

	"github.com/tilebook/tilebook/internal/ir"
)

// DashedSegment draws a dashed straight line. The full segment is stroked
// once in the light base color, then one dark dash of length dashLen per
// whole dash+gap period starting at offset zero. Any remainder past the last
// whole period becomes one final dark dash reaching the exact end of the
// segment, so a dashed line always terminates in a solid mark, never in a
// partial gap.
func DashedSegment(x1, y1, x2, y2, dashLen, gapLen, width float64, base, dark ir.RGB) []ir.Instruction {
	out := []ir.Instruction{
		ir.Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: base},
	}
	length := math.Hypot(x2-x1, y2-y1)
	period := dashLen + gapLen
	if length <= 0 || dashLen <= 0 || period <= 0 {
		return out
	}
	ux := (x2 - x1) / length
	uy := (y2 - y1) / length
	whole := int(math.Floor(length / period))
	for k := 0; k < whole; k++ {
		start := float64(k) * period
		end := start + dashLen
		out = append(out, ir.Line{
			X1: x1 + ux*start, Y1: y1 + uy*start,
			X2: x1 + ux*end, Y2: y1 + uy*end,
			Width: width, Color: dark,
		})
	}
	if rem := length - float64(whole)*period; rem > 0 {
		start := float64(whole) * period
		out = append(out, ir.Line{
			X1: x1 + ux*start, Y1: y1 + uy*start,
			X2: x2, Y2: y2,
			Width: width, Color: dark,
		})
	}
	return out
}

// DashedRectOutline draws the four edges of a rectangle as dashed segments.
func DashedRectOutline(r ir.Rect, dashLen, gapLen, width float64, base, dark ir.RGB) []ir.Instruction {
	var out []ir.Instruction
	out = append(out, DashedSegment(r.X, r.Y, r.X+r.W, r.Y, dashLen, gapLen, width, base, dark)...)
	out = append(out, DashedSegment(r.X+r.W, r.Y, r.X+r.W, r.Y+r.H, dashLen, gapLen, width, base, dark)...)
	out = append(out, DashedSegment(r.X, r.Y+r.H, r.X+r.W, r.Y+r.H, dashLen, gapLen, width, base, dark)...)
	out = append(out, DashedSegment(r.X, r.Y, r.X, r.Y+r.H, dashLen, gapLen, width, base, dark)...)
	return out
}

// Centerline collapses a rectangle used as a thin line to the segment along
// its long axis, so the dashed-line algorithm can run on it.
func Centerline(r ir.Rect) (x1, y1, x2, y2 float64) {
	if r.W >= r.H {
		y := r.Y + r.H/2
		return r.X, y, r.X + r.W, y
	}
	x := r.X + r.W/2
	return x, r.Y, x, r.Y + r.H
}
