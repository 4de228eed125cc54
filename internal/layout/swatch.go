package layout

import (
	"sort"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// paletteUse pairs a palette index with its usage count within some region.
type paletteUse struct {
	Index int
	Count int
}

// usedColorsDesc lists the palette indices with a nonzero count, most-used
// first. Ties break on ascending palette index so repeated runs over the
// same input emit byte-identical instruction lists.
func usedColorsDesc(counts []int) []paletteUse {
	uses := collectUses(counts)
	sort.Slice(uses, func(i, j int) bool {
		if uses[i].Count != uses[j].Count {
			return uses[i].Count > uses[j].Count
		}
		return uses[i].Index < uses[j].Index
	})
	return uses
}

// usedColorsAsc lists the palette indices with a nonzero count, rarest
// first, ties on ascending palette index. This is the layering order of the
// step pages.
func usedColorsAsc(counts []int) []paletteUse {
	uses := collectUses(counts)
	sort.Slice(uses, func(i, j int) bool {
		if uses[i].Count != uses[j].Count {
			return uses[i].Count < uses[j].Count
		}
		return uses[i].Index < uses[j].Index
	})
	return uses
}

func collectUses(counts []int) []paletteUse {
	uses := make([]paletteUse, 0, len(counts))
	for idx, n := range counts {
		if n > 0 {
			uses = append(uses, paletteUse{Index: idx, Count: n})
		}
	}
	return uses
}

// swatchStyle bundles the per-page-type swatch constants.
type swatchStyle struct {
	Size   float64
	Gap    float64
	FontPt float64
	Stroke float64
}

// swatchColumn emits one SwatchRow per used color, top to bottom from (x, y),
// and returns the y coordinate below the last row.
func swatchColumn(img *mosaic.PixelImage, uses []paletteUse, x, y float64, st swatchStyle) ([]ir.Instruction, float64) {
	out := make([]ir.Instruction, 0, len(uses))
	for _, u := range uses {
		out = append(out, ir.SwatchRow{
			X:           x,
			Y:           y,
			Color:       img.Palette[u.Index],
			Count:       u.Count,
			Size:        st.Size,
			Gap:         st.Gap,
			FontPt:      st.FontPt,
			StrokeWidth: st.Stroke,
		})
		y += st.Size + st.Gap
	}
	return out, y
}
