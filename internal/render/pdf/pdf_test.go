package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
)

func smallDoc() []ir.Instruction {
	return []ir.Instruction{
		ir.NewDocument{PageW: 210, PageH: 297},
		ir.SetFontSize{Pt: 12},
		ir.Text{X: 20, Y: 30, Value: "hello"},
		ir.Line{X1: 10, Y1: 10, X2: 100, Y2: 10, Width: 0.3, Color: ir.RGB{R: 40, G: 40, B: 40}},
		ir.NewPage{},
		ir.PixelGrid{
			Rect: ir.Rect{X: 20, Y: 20, W: 40, H: 40},
			Cols: 2, Rows: 2,
			RGB: []uint8{255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 255, 0},
		},
		ir.Save{Filename: "unused.pdf"},
	}
}

func TestRenderWritesDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "doc.pdf")
	r := NewRenderer(layout.DefaultConfig())

	require.NoError(t, r.Render(smallDoc(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderNoBackend(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := &Renderer{Logger: zap.New(core), cfg: layout.DefaultConfig()}

	err := r.Render(smallDoc(), filepath.Join(t.TempDir(), "doc.pdf"))
	assert.ErrorIs(t, err, ErrNoBackend)
	assert.Equal(t, 1, logs.Len(), "the missing backend is reported before aborting")
}

func TestRenderSkipsMalformedPixelGrid(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRenderer(layout.DefaultConfig())
	r.Logger = zap.New(core)

	out := filepath.Join(t.TempDir(), "doc.pdf")
	list := []ir.Instruction{
		ir.NewDocument{PageW: 210, PageH: 297},
		// Three pixels of data for a 2x2 grid.
		ir.PixelGrid{Rect: ir.Rect{X: 10, Y: 10, W: 20, H: 20}, Cols: 2, Rows: 2, RGB: make([]uint8, 9)},
		ir.Save{Filename: "unused.pdf"},
	}

	require.NoError(t, r.Render(list, out))
	assert.Equal(t, 1, logs.FilterMessageSnippet("pixel grid").Len())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotEmpty(t, data, "the document is still produced without the bad bitmap")
}

func TestRenderSkipsInstructionsBeforeNewDocument(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRenderer(layout.DefaultConfig())
	r.Logger = zap.New(core)

	out := filepath.Join(t.TempDir(), "doc.pdf")
	list := []ir.Instruction{
		ir.Text{X: 10, Y: 10, Value: "orphan"},
		ir.NewDocument{PageW: 210, PageH: 297},
		ir.Save{Filename: "unused.pdf"},
	}

	require.NoError(t, r.Render(list, out))
	assert.Equal(t, 1, logs.FilterMessageSnippet("before NewDocument").Len())
}

func TestAmbientFontSizeSurvivesSizedInstructions(t *testing.T) {
	r := NewRenderer(layout.DefaultConfig())
	require.NoError(t, r.apply(ir.NewDocument{PageW: 210, PageH: 297}, ""))
	require.NoError(t, r.apply(ir.SetFontSize{Pt: 12}, ""))

	sized := []ir.Instruction{
		ir.TextAligned{X: 20, Y: 20, Value: "header", Align: ir.AlignCenter, FontPt: 30},
		ir.TextWithBackground{X: 20, YTop: 40, Value: "label", FontPt: 24, Padding: 2, AnchorLeft: true, Background: ir.Black},
		ir.SwatchRow{X: 20, Y: 60, Color: ir.RGB{R: 200}, Count: 3, Size: 5, Gap: 2, FontPt: 9, StrokeWidth: 0.2},
	}
	for _, in := range sized {
		require.NoError(t, r.apply(in, ""))
		pt, _ := r.doc.GetFontSize()
		assert.InDelta(t, 12, pt, 1e-9, "%T must restore the ambient size", in)
	}
}

func TestRenderFallsBackToSaveFilename(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	r := NewRenderer(layout.DefaultConfig())
	require.NoError(t, r.Render([]ir.Instruction{
		ir.NewDocument{PageW: 100, PageH: 100},
		ir.Save{Filename: "fallback.pdf"},
	}, ""))

	_, err = os.Stat(filepath.Join(dir, "fallback.pdf"))
	assert.NoError(t, err)
}
