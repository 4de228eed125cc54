package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

func TestBookPageCensus(t *testing.T) {
	// One 4x4 plate with two colors and step size 4: cover, overview,
	// chapter, one step page.
	img := twoColorStepImage(t)
	plates := mosaic.Partition(4, 4, 1, 1)

	instrs := Book(img, plates, "Test Mosaic", 4, DefaultConfig(), "out.pdf")

	require.NotEmpty(t, instrs)
	_, ok := instrs[0].(ir.NewDocument)
	assert.True(t, ok, "document starts with NewDocument")
	save, ok := instrs[len(instrs)-1].(ir.Save)
	require.True(t, ok, "document ends with Save")
	assert.Equal(t, "out.pdf", save.Filename)

	assert.Equal(t, 3, countNewPages(instrs), "overview, chapter and one step page follow the cover")
}

func TestBookMultiplePlates(t *testing.T) {
	pixels := make([]int, 8*4)
	img, err := mosaic.NewPixelImage(8, 4, []ir.RGB{{R: 9}}, pixels)
	require.NoError(t, err)
	plates := mosaic.Partition(8, 4, 2, 1)

	instrs := Book(img, plates, "Two Plates", 4, DefaultConfig(), "out.pdf")

	// Overview + per plate: chapter and a single step page.
	assert.Equal(t, 1+2*2, countNewPages(instrs))

	doc, ok := instrs[0].(ir.NewDocument)
	require.True(t, ok)
	assert.Equal(t, 210.0, doc.PageW)
	assert.Equal(t, 297.0, doc.PageH)
}

func TestBookIndivisiblePlateStillSaves(t *testing.T) {
	pixels := make([]int, 25)
	img, err := mosaic.NewPixelImage(5, 5, []ir.RGB{{R: 9}}, pixels)
	require.NoError(t, err)
	plates := mosaic.Partition(5, 5, 1, 1)

	instrs := Book(img, plates, "Odd", 4, DefaultConfig(), "odd.pdf")

	// Cover, overview, chapter, explanatory page.
	assert.Equal(t, 3, countNewPages(instrs))
	_, ok := instrs[len(instrs)-1].(ir.Save)
	assert.True(t, ok)
}
