package layout

import (
	"sort"
	"strconv"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// explodedOptions bundles the knobs of an exploded part view. Overview and
// chapter pages pass independently configured gaps.
type explodedOptions struct {
	Gap        float64
	Frame      float64
	FrameColor ir.RGB
	// Shrink scales the view down inside the available area (chapter pages
	// use a factor below one, the overview uses one).
	Shrink float64
	// Annotate adds the pixel-dimension guide lines above the top row and
	// right of the rightmost column.
	Annotate  bool
	DimFontPt float64
	DimOffset float64
	DimLine   float64
}

// explodedAxis describes the distinct part origins along one axis: parts are
// positioned by snapping their original pixel origins into columns/rows, not
// by visual adjacency.
type explodedAxis struct {
	origins []int       // sorted distinct origins
	sizes   []int       // pixel extent of the span starting at each origin
	index   map[int]int // origin -> slot
}

func buildAxis(parts []mosaic.Rect, origin func(mosaic.Rect) int, size func(mosaic.Rect) int) explodedAxis {
	ax := explodedAxis{index: make(map[int]int)}
	for _, p := range parts {
		if _, ok := ax.index[origin(p)]; !ok {
			ax.index[origin(p)] = 0
			ax.origins = append(ax.origins, origin(p))
		}
	}
	sort.Ints(ax.origins)
	ax.sizes = make([]int, len(ax.origins))
	for i, o := range ax.origins {
		ax.index[o] = i
	}
	for _, p := range parts {
		ax.sizes[ax.index[origin(p)]] = size(p)
	}
	return ax
}

func (ax explodedAxis) totalPixels() int {
	total := 0
	for _, s := range ax.sizes {
		total += s
	}
	return total
}

// explodedView draws every part of the partition as an independent cropped
// bitmap inside a thin frame, separated from its neighbors by the configured
// gap and centered as a block within area.
func explodedView(img *mosaic.PixelImage, parts mosaic.GridPartition, area ir.Rect, o explodedOptions) []ir.Instruction {
	if len(parts.Parts) == 0 {
		return nil
	}
	cols := buildAxis(parts.Parts, func(r mosaic.Rect) int { return r.X }, func(r mosaic.Rect) int { return r.W })
	rows := buildAxis(parts.Parts, func(r mosaic.Rect) int { return r.Y }, func(r mosaic.Rect) int { return r.H })

	if o.Annotate {
		// Reserve room for the guides so they stay inside the area.
		top := o.DimOffset + ptToMM(o.DimFontPt) + 1
		right := o.DimOffset + ptToMM(o.DimFontPt) + 6
		area.Y += top
		area.H -= top
		area.W -= right
	}

	gapW := o.Gap * float64(len(cols.origins)-1)
	gapH := o.Gap * float64(len(rows.origins)-1)
	pxW := float64(cols.totalPixels())
	pxH := float64(rows.totalPixels())
	scale := (area.W - gapW) / pxW
	if s := (area.H - gapH) / pxH; s < scale {
		scale = s
	}
	if o.Shrink > 0 {
		scale *= o.Shrink
	}
	if scale <= 0 {
		return nil
	}

	blockW := pxW*scale + gapW
	blockH := pxH*scale + gapH
	blockX := area.X + (area.W-blockW)/2
	blockY := area.Y + (area.H-blockH)/2

	colX := make([]float64, len(cols.origins))
	x := blockX
	for i, s := range cols.sizes {
		colX[i] = x
		x += float64(s)*scale + o.Gap
	}
	rowY := make([]float64, len(rows.origins))
	y := blockY
	for i, s := range rows.sizes {
		rowY[i] = y
		y += float64(s)*scale + o.Gap
	}

	var out []ir.Instruction
	frames := make([]ir.Rect, 0, len(parts.Parts))
	for _, part := range parts.Parts {
		crop := img.Crop(part)
		r := ir.Rect{
			X: colX[cols.index[part.X]],
			Y: rowY[rows.index[part.Y]],
			W: float64(part.W) * scale,
			H: float64(part.H) * scale,
		}
		out = append(out, ir.PixelGrid{Rect: r, Cols: crop.Width, Rows: crop.Height, RGB: crop.FlatRGB()})
		frames = append(frames, r)
	}
	out = append(out, ir.StrokeRects{Rects: frames, Color: o.FrameColor, Width: o.Frame})

	if o.Annotate {
		out = append(out, dimensionGuides(cols, rows, colX, rowY, scale, blockX, blockY, blockW, blockH, o)...)
	}
	return out
}

// dimensionGuides emits one labeled guide per distinct column pixel width
// above the top row, and one per distinct row pixel height to the right of
// the rightmost column. A value repeated across several spans is annotated
// once, on the first span carrying it.
func dimensionGuides(cols, rows explodedAxis, colX, rowY []float64, scale, blockX, blockY, blockW, blockH float64, o explodedOptions) []ir.Instruction {
	var out []ir.Instruction
	guideY := blockY - o.DimOffset
	seenW := make(map[int]bool)
	for i, w := range cols.sizes {
		if seenW[w] {
			continue
		}
		seenW[w] = true
		x1 := colX[i]
		x2 := x1 + float64(w)*scale
		out = append(out, ir.Line{X1: x1, Y1: guideY, X2: x2, Y2: guideY, Width: o.DimLine, Color: ir.Black})
		// End ticks.
		out = append(out, ir.Line{X1: x1, Y1: guideY - 1, X2: x1, Y2: guideY + 1, Width: o.DimLine, Color: ir.Black})
		out = append(out, ir.Line{X1: x2, Y1: guideY - 1, X2: x2, Y2: guideY + 1, Width: o.DimLine, Color: ir.Black})
		out = append(out, ir.TextAligned{
			X:      (x1 + x2) / 2,
			Y:      guideY - 1.2,
			Value:  strconv.Itoa(w),
			Align:  ir.AlignCenter,
			FontPt: o.DimFontPt,
		})
	}
	guideX := blockX + blockW + o.DimOffset
	seenH := make(map[int]bool)
	for i, h := range rows.sizes {
		if seenH[h] {
			continue
		}
		seenH[h] = true
		y1 := rowY[i]
		y2 := y1 + float64(h)*scale
		out = append(out, ir.Line{X1: guideX, Y1: y1, X2: guideX, Y2: y2, Width: o.DimLine, Color: ir.Black})
		out = append(out, ir.Line{X1: guideX - 1, Y1: y1, X2: guideX + 1, Y2: y1, Width: o.DimLine, Color: ir.Black})
		out = append(out, ir.Line{X1: guideX - 1, Y1: y2, X2: guideX + 1, Y2: y2, Width: o.DimLine, Color: ir.Black})
		out = append(out, ir.TextAligned{
			X:      guideX + 1.5,
			Y:      (y1+y2)/2 + ptToMM(o.DimFontPt)/2,
			Value:  strconv.Itoa(h),
			Align:  ir.AlignLeft,
			FontPt: o.DimFontPt,
		})
	}
	return out
}

// ptToMM converts a font size in points to millimeters.
func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72
}
