package layout

import (
	"fmt"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// Chapter lays out the per-plate overview page: the plate's own colors in
// the left column, a locator below them showing where the plate sits in the
// whole mosaic, and an exploded view of the plate's step-size subdivision on
// the right, scaled down by the configured factor. If any plate of the
// partition does not divide evenly by the step size, a one-line note under
// the locator names the step size.
func Chapter(img *mosaic.PixelImage, plates mosaic.GridPartition, plate, stepSize int, cfg Config) []ir.Instruction {
	ch := cfg.Chapter
	content := cfg.Page.ContentRect()

	out := []ir.Instruction{
		ir.TextAligned{
			X:      content.X,
			Y:      content.Y + ptToMM(ch.HeaderFontPt),
			Value:  fmt.Sprintf("Plate %d", plate+1),
			Align:  ir.AlignLeft,
			FontPt: ch.HeaderFontPt,
		},
	}
	bodyY := content.Y + ptToMM(ch.HeaderFontPt) + 6

	crop := img.Crop(plates.Parts[plate])
	uses := usedColorsDesc(crop.Counts)
	rows, afterSwatches := swatchColumn(img, uses, content.X, bodyY, swatchStyle{
		Size:   ch.SwatchSize,
		Gap:    ch.SwatchGap,
		FontPt: ch.SwatchFontPt,
		Stroke: ch.SwatchStroke,
	})
	out = append(out, rows...)

	// A long color list can eat the whole column; the locator is dropped
	// rather than drawn with no room.
	locY := afterSwatches + 4
	noteY := locY
	if locH := content.Y + content.H - locY; locH > 0 {
		locBox := ir.Rect{X: content.X, Y: locY, W: ch.Locator.Width, H: locH}
		locInstr, locRect := locator(img, plates, plate, nil, 0, locBox, ch.Locator)
		out = append(out, locInstr...)
		noteY = locRect.Y + locRect.H + 4
	}

	if !mosaic.AllDivisible(plates, stepSize) {
		out = append(out, ir.TextAligned{
			X:      content.X,
			Y:      noteY + ptToMM(ch.NoteFontPt),
			Value:  fmt.Sprintf("Not all plates divide evenly into %d px steps.", stepSize),
			Align:  ir.AlignLeft,
			FontPt: ch.NoteFontPt,
		})
	}

	region := ir.Rect{
		X: content.X + ch.ColumnWidth,
		Y: bodyY,
		W: content.W - ch.ColumnWidth,
		H: content.Y + content.H - bodyY,
	}
	steps := mosaic.StepPartition(plates.Parts[plate], stepSize)
	out = append(out, explodedView(img, steps, region, explodedOptions{
		Gap:        ch.ExplodedGap,
		Frame:      ch.PartFrame,
		FrameColor: ir.Black,
		Shrink:     ch.ScaleFactor,
	})...)
	return out
}
