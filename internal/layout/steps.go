package layout

import (
	"fmt"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// StepPages lays out every instruction page for one plate, emitting a
// NewPage before each page it creates.
//
// A plate whose dimensions divide evenly by the step size gets its steps in
// row-major order; each step is built up in cumulative color layers (rarest
// color first), and the layer bitmaps are packed four to a page in a 2x2
// arrangement together with the step's locator and its color list. A plate
// that does not divide evenly gets a single explanatory page instead and the
// booklet skips to the next plate.
func StepPages(img *mosaic.PixelImage, plates mosaic.GridPartition, plate, stepSize int, cfg Config) []ir.Instruction {
	part := plates.Parts[plate]

	if !mosaic.Divisible(part, stepSize) {
		return skipPage(part, plate, stepSize, cfg)
	}

	steps := mosaic.StepPartition(part, stepSize)
	var out []ir.Instruction
	for step := range steps.Parts {
		out = append(out, stepPagesFor(img, plates, steps, plate, step, cfg)...)
	}
	return out
}

// skipPage is the explanatory page for a plate that cannot be stepped.
func skipPage(part mosaic.Rect, plate, stepSize int, cfg Config) []ir.Instruction {
	st := cfg.Step
	content := cfg.Page.ContentRect()
	y := content.Y + ptToMM(st.HeaderFontPt)
	return []ir.Instruction{
		ir.NewPage{},
		ir.TextAligned{
			X:      content.X,
			Y:      y,
			Value:  fmt.Sprintf("Plate %d", plate+1),
			Align:  ir.AlignLeft,
			FontPt: st.HeaderFontPt,
		},
		ir.TextAligned{
			X:      content.X,
			Y:      y + 10,
			Value:  fmt.Sprintf("Plate %d is %d x %d px and does not divide evenly into %d px steps.", plate+1, part.W, part.H, stepSize),
			Align:  ir.AlignLeft,
			FontPt: st.NoteFontPt,
		},
		ir.TextAligned{
			X:      content.X,
			Y:      y + 10 + ptToMM(st.NoteFontPt) + 2,
			Value:  "Assemble it from the chapter overview, then continue with the next plate.",
			Align:  ir.AlignLeft,
			FontPt: st.NoteFontPt,
		},
	}
}

// stepPagesFor lays out all pages of a single step.
func stepPagesFor(img *mosaic.PixelImage, plates, steps mosaic.GridPartition, plate, step int, cfg Config) []ir.Instruction {
	st := cfg.Step
	content := cfg.Page.ContentRect()

	crop := img.Crop(steps.Parts[step])
	uses := usedColorsAsc(crop.Counts)
	layerCount := len(uses)
	perPage := st.LayersPerPage()
	pageCount := (layerCount + perPage - 1) / perPage
	if pageCount < 1 {
		pageCount = 1
	}

	var out []ir.Instruction
	for page := 0; page < pageCount; page++ {
		out = append(out, ir.NewPage{})
		out = append(out, ir.TextAligned{
			X:      content.X,
			Y:      content.Y + ptToMM(st.HeaderFontPt),
			Value:  fmt.Sprintf("Plate %d · Step %d of %d", plate+1, step+1, len(steps.Parts)),
			Align:  ir.AlignLeft,
			FontPt: st.HeaderFontPt,
		})
		bodyY := content.Y + ptToMM(st.HeaderFontPt) + 6

		// The color list and locator repeat on every page of the step.
		rows, afterSwatches := swatchColumn(img, usedColorsDesc(crop.Counts), content.X, bodyY, swatchStyle{
			Size:   st.SwatchSize,
			Gap:    st.SwatchGap,
			FontPt: st.SwatchFontPt,
			Stroke: st.SwatchStroke,
		})
		out = append(out, rows...)
		locY := afterSwatches + 4
		if locH := content.Y + content.H - locY; locH > 0 {
			locBox := ir.Rect{X: content.X, Y: locY, W: st.Locator.Width, H: locH}
			locInstr, _ := locator(img, plates, plate, &steps, step, locBox, st.Locator)
			out = append(out, locInstr...)
		}

		region := ir.Rect{
			X: content.X + st.ColumnWidth,
			Y: bodyY,
			W: content.W - st.ColumnWidth,
			H: content.Y + content.H - bodyY,
		}
		first := page * perPage
		last := first + perPage
		if last > layerCount {
			last = layerCount
		}
		out = append(out, layerGrid(crop, uses, first, last, layerCount, region, cfg)...)
	}
	return out
}

// layerGrid packs the layer bitmaps [first, last) into the right-hand
// region, LayersPerRow x LayersPerCol cells per page.
func layerGrid(crop *mosaic.PixelImage, uses []paletteUse, first, last, layerCount int, region ir.Rect, cfg Config) []ir.Instruction {
	st := cfg.Step
	labelH := ptToMM(st.LabelFontPt) + 2
	cellW := (region.W - float64(st.LayersPerRow-1)*st.CellGap) / float64(st.LayersPerRow)
	cellH := (region.H - float64(st.LayersPerCol-1)*st.CellGap) / float64(st.LayersPerCol)

	// Square bitmap side fitting the cell under its label.
	side := cellW
	if h := cellH - labelH; h < side {
		side = h
	}
	scaleX := side / float64(crop.Width)
	scaleY := side / float64(crop.Height)

	var out []ir.Instruction
	for layer := first; layer < last; layer++ {
		slot := layer - first
		col := slot % st.LayersPerRow
		row := slot / st.LayersPerRow
		x := region.X + float64(col)*(cellW+st.CellGap)
		y := region.Y + float64(row)*(cellH+st.CellGap)

		out = append(out, ir.TextAligned{
			X:      x,
			Y:      y + ptToMM(st.LabelFontPt),
			Value:  fmt.Sprintf("Layer %d of %d", layer+1, layerCount),
			Align:  ir.AlignLeft,
			FontPt: st.LabelFontPt,
		})

		keep := make(map[int]bool, layer+1)
		for _, u := range uses[:layer+1] {
			keep[u.Index] = true
		}
		r := ir.Rect{X: x, Y: y + labelH, W: float64(crop.Width) * scaleX, H: float64(crop.Height) * scaleY}
		out = append(out, ir.PixelGrid{
			Rect: r,
			Cols: crop.Width,
			Rows: crop.Height,
			RGB:  crop.FlatRGBSubset(keep, cfg.Page.Background),
		})
		out = append(out, layerGrids(r, crop.Width, crop.Height, cfg)...)
	}
	return out
}

// layerGrids overlays the step-size dashed boundary and the finer counting
// grid on one layer bitmap.
func layerGrids(r ir.Rect, cols, rows int, cfg Config) []ir.Instruction {
	st := cfg.Step
	var out []ir.Instruction
	if st.FineGridEvery > 0 {
		stepX := r.W / float64(cols)
		stepY := r.H / float64(rows)
		for c := st.FineGridEvery; c < cols; c += st.FineGridEvery {
			x := r.X + float64(c)*stepX
			out = append(out, DashedSegment(x, r.Y, x, r.Y+r.H, st.GridDashLen, st.GridDashGap, st.GridLineWidth, st.GridBase, st.GridDark)...)
		}
		for row := st.FineGridEvery; row < rows; row += st.FineGridEvery {
			y := r.Y + float64(row)*stepY
			out = append(out, DashedSegment(r.X, y, r.X+r.W, y, st.GridDashLen, st.GridDashGap, st.GridLineWidth, st.GridBase, st.GridDark)...)
		}
	}
	out = append(out, DashedRectOutline(r, st.GridDashLen, st.GridDashGap, st.GridLineWidth, st.GridBase, st.GridDark)...)
	return out
}
