package api

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
	"github.com/tilebook/tilebook/internal/mosaic"
)

func testImage(t *testing.T) *mosaic.PixelImage {
	t.Helper()
	pixels := []int{
		0, 0, 0, 0,
		0, 1, 1, 0,
		0, 1, 1, 0,
		0, 0, 0, 0,
	}
	img, err := mosaic.NewPixelImage(4, 4, []ir.RGB{{R: 220, G: 220, B: 220}, {R: 180, G: 40, B: 40}}, pixels)
	require.NoError(t, err)
	return img
}

func TestNewValidation(t *testing.T) {
	img := testImage(t)
	plates := mosaic.Partition(4, 4, 1, 1)

	_, err := New(nil, plates)
	assert.ErrorContains(t, err, "nil pixel image")

	_, err = New(img, mosaic.GridPartition{})
	assert.ErrorContains(t, err, "empty plate partition")

	_, err = New(img, plates, WithStepSize(0))
	assert.ErrorContains(t, err, "step size")

	_, err = New(img, plates)
	assert.NoError(t, err)
}

func TestWithLayoutPageOverridesSurvive(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.Page.Background = ir.RGB{R: 1, G: 2, B: 3}
	cfg.Page.Margin = 14

	g, err := New(testImage(t), mosaic.Partition(4, 4, 1, 1), WithStepSize(4), WithLayout(cfg))
	require.NoError(t, err)

	assert.Equal(t, ir.RGB{R: 1, G: 2, B: 3}, g.options.Layout.Page.Background)
	assert.Equal(t, 14.0, g.options.Layout.Page.Margin)
}

func TestPageOptionsWriteThroughToLayout(t *testing.T) {
	g, err := New(testImage(t), mosaic.Partition(4, 4, 1, 1), WithStepSize(4),
		WithPageBackground(ir.RGB{R: 7, G: 8, B: 9}), WithMargin(12))
	require.NoError(t, err)
	assert.Equal(t, ir.RGB{R: 7, G: 8, B: 9}, g.options.Layout.Page.Background)
	assert.Equal(t, 12.0, g.options.Layout.Page.Margin)

	// Options apply in order; the last writer wins.
	cfg := layout.DefaultConfig()
	cfg.Page.Margin = 20
	g, err = New(testImage(t), mosaic.Partition(4, 4, 1, 1), WithStepSize(4),
		WithMargin(12), WithLayout(cfg))
	require.NoError(t, err)
	assert.Equal(t, 20.0, g.options.Layout.Page.Margin)
}

func TestPageCount(t *testing.T) {
	// One divisible plate, two colors: cover, overview, chapter, one step
	// page.
	g, err := New(testImage(t), mosaic.Partition(4, 4, 1, 1), WithStepSize(4))
	require.NoError(t, err)
	assert.Equal(t, 4, g.PageCount())
}

func TestInstructionsCached(t *testing.T) {
	g, err := New(testImage(t), mosaic.Partition(4, 4, 1, 1), WithStepSize(4))
	require.NoError(t, err)

	a := g.Instructions()
	b := g.Instructions()
	assert.Len(t, b, len(a))
	assert.Same(t, &a[0], &b[0], "the list is built once and cached")
}

func TestExportPDF(t *testing.T) {
	g, err := New(testImage(t), mosaic.Partition(4, 4, 1, 1), WithStepSize(4), WithTitle("Cached Mosaic"))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "booklet.pdf")
	require.NoError(t, g.ExportPDF(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderPreview(t *testing.T) {
	g, err := New(testImage(t), mosaic.Partition(4, 4, 1, 1), WithStepSize(4))
	require.NoError(t, err)

	dst := image.NewRGBA(image.Rect(0, 0, 210, 297))
	require.NoError(t, g.RenderPreview(dst, 0))

	// The cleared surface is repainted; at least the margin area is white.
	assert.Equal(t, uint8(255), dst.RGBAAt(2, 2).R)

	err = g.RenderPreview(dst, g.PageCount())
	assert.ErrorContains(t, err, "out of range")
	err = g.RenderPreview(dst, -1)
	assert.ErrorContains(t, err, "out of range")
}
