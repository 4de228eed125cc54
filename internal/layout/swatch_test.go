package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

func TestUsedColorsDesc(t *testing.T) {
	// Index 2 and 0 tie on count; the lower palette index wins the tie.
	counts := []int{3, 7, 3, 0, 1}
	uses := usedColorsDesc(counts)
	require.Len(t, uses, 4, "zero-count colors are dropped")

	got := make([]int, len(uses))
	for i, u := range uses {
		got[i] = u.Index
	}
	assert.Equal(t, []int{1, 0, 2, 4}, got)
}

func TestUsedColorsAsc(t *testing.T) {
	counts := []int{3, 7, 3, 0, 1}
	uses := usedColorsAsc(counts)

	got := make([]int, len(uses))
	for i, u := range uses {
		got[i] = u.Index
	}
	assert.Equal(t, []int{4, 0, 2, 1}, got)
}

func TestSwatchColumnDeterministic(t *testing.T) {
	img, err := mosaic.NewPixelImage(2, 2, []ir.RGB{{R: 1}, {G: 1}}, []int{0, 1, 0, 1})
	require.NoError(t, err)

	st := swatchStyle{Size: 6, Gap: 2, FontPt: 10, Stroke: 0.2}
	a, endA := swatchColumn(img, usedColorsDesc(img.Counts), 10, 20, st)
	b, endB := swatchColumn(img, usedColorsDesc(img.Counts), 10, 20, st)

	assert.Equal(t, a, b, "identical input must produce identical instructions")
	assert.Equal(t, endA, endB)
	assert.Equal(t, 20+2*(6+2.0), endA)

	first, ok := a[0].(ir.SwatchRow)
	require.True(t, ok)
	assert.Equal(t, 2, first.Count)
}
