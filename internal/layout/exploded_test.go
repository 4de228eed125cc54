package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

func onePxImage(t *testing.T, w, h int) *mosaic.PixelImage {
	t.Helper()
	pixels := make([]int, w*h)
	img, err := mosaic.NewPixelImage(w, h, []ir.RGB{{R: 128}}, pixels)
	require.NoError(t, err)
	return img
}

func explodedTestOptions() explodedOptions {
	return explodedOptions{
		Gap:        5,
		Frame:      0.25,
		FrameColor: ir.Black,
		Shrink:     1,
		Annotate:   true,
		DimFontPt:  8,
		DimOffset:  4,
		DimLine:    0.3,
	}
}

func TestExplodedViewDimensionLabels(t *testing.T) {
	// Columns of pixel widths [48, 32], rows of heights [16, 16]: two top
	// labels, and the duplicate row height collapses to one right label.
	img := onePxImage(t, 80, 32)
	parts := mosaic.GridPartition{
		Parts: []mosaic.Rect{
			{X: 0, Y: 0, W: 48, H: 16},
			{X: 48, Y: 0, W: 32, H: 16},
			{X: 0, Y: 16, W: 48, H: 16},
			{X: 48, Y: 16, W: 32, H: 16},
		},
		Cols: 2,
		Rows: 2,
	}

	instrs := explodedView(img, parts, ir.Rect{X: 10, Y: 10, W: 150, H: 120}, explodedTestOptions())

	var top, right []string
	for _, in := range instrs {
		if txt, ok := in.(ir.TextAligned); ok {
			switch txt.Align {
			case ir.AlignCenter:
				top = append(top, txt.Value)
			case ir.AlignLeft:
				right = append(right, txt.Value)
			}
		}
	}
	assert.Equal(t, []string{"48", "32"}, top)
	assert.Equal(t, []string{"16"}, right)
}

func TestExplodedViewDrawsEveryPart(t *testing.T) {
	img := onePxImage(t, 40, 40)
	parts := mosaic.Partition(40, 40, 2, 2)

	o := explodedTestOptions()
	o.Annotate = false
	instrs := explodedView(img, parts, ir.Rect{X: 0, Y: 0, W: 100, H: 100}, o)

	var grids []ir.PixelGrid
	for _, in := range instrs {
		if g, ok := in.(ir.PixelGrid); ok {
			grids = append(grids, g)
		}
	}
	require.Len(t, grids, 4)
	for _, g := range grids {
		assert.True(t, g.Valid())
		assert.Equal(t, 20, g.Cols)
	}

	// Parts in distinct columns are separated by the configured gap.
	gap := grids[1].Rect.X - (grids[0].Rect.X + grids[0].Rect.W)
	assert.InDelta(t, o.Gap, gap, 1e-9)

	var frames ir.StrokeRects
	found := false
	for _, in := range instrs {
		if f, ok := in.(ir.StrokeRects); ok {
			frames = f
			found = true
		}
	}
	require.True(t, found, "parts are framed")
	assert.Len(t, frames.Rects, 4)
}

func TestExplodedViewSinglePart(t *testing.T) {
	img := onePxImage(t, 16, 16)
	parts := mosaic.Partition(16, 16, 1, 1)

	o := explodedTestOptions()
	o.Annotate = false
	instrs := explodedView(img, parts, ir.Rect{X: 0, Y: 0, W: 50, H: 50}, o)

	count := 0
	for _, in := range instrs {
		if _, ok := in.(ir.PixelGrid); ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
