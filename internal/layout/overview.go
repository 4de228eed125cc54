package layout

import (
	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// Overview lays out the whole-mosaic page: a fixed-width left column listing
// every used color as a swatch row (most-used first) and the mosaic itself on
// the right. With more than one plate the mosaic is drawn as an exploded
// view with pixel-dimension guides; a single plate is drawn as one scaled
// bitmap with no annotations.
func Overview(img *mosaic.PixelImage, plates mosaic.GridPartition, cfg Config) []ir.Instruction {
	ov := cfg.Overview
	content := cfg.Page.ContentRect()

	out := []ir.Instruction{
		ir.TextAligned{
			X:      content.X,
			Y:      content.Y + ptToMM(ov.HeaderFontPt),
			Value:  "Overview",
			Align:  ir.AlignLeft,
			FontPt: ov.HeaderFontPt,
		},
	}
	bodyY := content.Y + ptToMM(ov.HeaderFontPt) + 6

	uses := usedColorsDesc(img.Counts)
	rows, _ := swatchColumn(img, uses, content.X, bodyY, swatchStyle{
		Size:   ov.SwatchSize,
		Gap:    ov.SwatchGap,
		FontPt: ov.SwatchFontPt,
		Stroke: ov.SwatchStroke,
	})
	out = append(out, rows...)

	region := ir.Rect{
		X: content.X + ov.ColumnWidth,
		Y: bodyY,
		W: content.W - ov.ColumnWidth,
		H: content.Y + content.H - bodyY,
	}

	if len(plates.Parts) > 1 {
		out = append(out, explodedView(img, plates, region, explodedOptions{
			Gap:        ov.ExplodedGap,
			Frame:      ov.PartFrame,
			FrameColor: ir.Black,
			Shrink:     1,
			Annotate:   true,
			DimFontPt:  ov.DimFontPt,
			DimOffset:  ov.DimOffset,
			DimLine:    ov.DimLineWidth,
		})...)
		return out
	}

	scale := region.W / float64(img.Width)
	if s := region.H / float64(img.Height); s < scale {
		scale = s
	}
	r := ir.Rect{W: float64(img.Width) * scale, H: float64(img.Height) * scale}
	r.X = region.X + (region.W-r.W)/2
	r.Y = region.Y + (region.H-r.H)/2
	out = append(out,
		ir.PixelGrid{Rect: r, Cols: img.Width, Rows: img.Height, RGB: img.FlatRGB()},
		ir.StrokeRects{Rects: []ir.Rect{r}, Color: ir.Black, Width: ov.PartFrame},
	)
	return out
}
