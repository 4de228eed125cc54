package layout

import (
	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// locator draws the small whole-mosaic position indicator: the mosaic,
// a semi-transparent overlay de-emphasizing everything but the current
// region, a dashed plate-boundary grid, a solid frame on the highlighted
// region and a solid border around the locator box. The order is strictly
// back to front so every later element stays visible.
//
// With steps == nil the current plate is highlighted (chapter pages); with a
// step partition the other steps of the current plate are dimmed too and
// only the current step is framed (step pages). Returns the occupied rect so
// callers can stack content below it.
func locator(img *mosaic.PixelImage, plates mosaic.GridPartition, plate int, steps *mosaic.GridPartition, step int, box ir.Rect, lc LocatorConfig) ([]ir.Instruction, ir.Rect) {
	scale := box.W / float64(img.Width)
	if s := box.H / float64(img.Height); s < scale {
		scale = s
	}
	r := ir.Rect{X: box.X, Y: box.Y, W: float64(img.Width) * scale, H: float64(img.Height) * scale}

	toMM := func(p mosaic.Rect) ir.Rect {
		return ir.Rect{
			X: r.X + float64(p.X)*scale,
			Y: r.Y + float64(p.Y)*scale,
			W: float64(p.W) * scale,
			H: float64(p.H) * scale,
		}
	}

	out := []ir.Instruction{
		ir.PixelGrid{Rect: r, Cols: img.Width, Rows: img.Height, RGB: img.FlatRGB()},
	}

	for i, p := range plates.Parts {
		if i == plate {
			continue
		}
		out = append(out, ir.FillRectOpacity{Rect: toMM(p), Color: lc.OverlayColor, Opacity: lc.OverlayOpacity})
	}
	highlight := toMM(plates.Parts[plate])
	if steps != nil {
		for i, p := range steps.Parts {
			if i == step {
				continue
			}
			out = append(out, ir.FillRectOpacity{Rect: toMM(p), Color: lc.OverlayColor, Opacity: lc.OverlayOpacity})
		}
		highlight = toMM(steps.Parts[step])
	}

	// Dashed plate-boundary grid over the interior edges.
	seenX := map[int]bool{0: true}
	seenY := map[int]bool{0: true}
	for _, p := range plates.Parts {
		if !seenX[p.X] {
			seenX[p.X] = true
			x := r.X + float64(p.X)*scale
			out = append(out, DashedSegment(x, r.Y, x, r.Y+r.H, lc.DashLen, lc.DashGap, lc.DashWidth, lc.DashBase, lc.DashDark)...)
		}
		if !seenY[p.Y] {
			seenY[p.Y] = true
			y := r.Y + float64(p.Y)*scale
			out = append(out, DashedSegment(r.X, y, r.X+r.W, y, lc.DashLen, lc.DashGap, lc.DashWidth, lc.DashBase, lc.DashDark)...)
		}
	}

	out = append(out,
		ir.StrokeRects{Rects: []ir.Rect{highlight}, Color: ir.Black, Width: lc.FrameWidth},
		ir.StrokeRects{Rects: []ir.Rect{r}, Color: ir.Black, Width: lc.BorderWidth},
	)
	return out, r
}
