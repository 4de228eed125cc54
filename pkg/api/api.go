// Package api is the public surface of the booklet engine. A Generator
// consumes one quantized pixel image plus one plate partition, both
// read-only, and drives the layout functions, the pagination pass and the
// two renderers.
package api

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
	"github.com/tilebook/tilebook/internal/mosaic"
	"github.com/tilebook/tilebook/internal/pagination"
	"github.com/tilebook/tilebook/internal/render/pdf"
	"github.com/tilebook/tilebook/internal/render/raster"
)

// OutputFilename is the fixed name of the exported document.
const OutputFilename = "mosaic-instructions.pdf"

// Generator turns one mosaic into an instruction booklet.
type Generator struct {
	options Options
	img     *mosaic.PixelImage
	plates  mosaic.GridPartition

	// instructions caches the post-processed list; layout is pure, so one
	// build serves both export and preview.
	instructions []ir.Instruction
	pages        [][]ir.Instruction
}

// New creates a generator for one image and plate partition with default
// options.
func New(img *mosaic.PixelImage, plates mosaic.GridPartition, opts ...Option) (*Generator, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(img, plates, options)
}

// NewWithOptions creates a generator with fully specified options.
func NewWithOptions(img *mosaic.PixelImage, plates mosaic.GridPartition, options Options) (*Generator, error) {
	if img == nil {
		return nil, fmt.Errorf("api: nil pixel image")
	}
	if len(plates.Parts) == 0 {
		return nil, fmt.Errorf("api: empty plate partition")
	}
	if options.StepSize < 1 {
		return nil, fmt.Errorf("api: step size must be a positive integer, got %d", options.StepSize)
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Generator{options: options, img: img, plates: plates}, nil
}

// Instructions returns the complete post-processed instruction list,
// building it on first use.
func (g *Generator) Instructions() []ir.Instruction {
	if g.instructions == nil {
		list := layout.Book(g.img, g.plates, g.options.Title, g.options.StepSize, g.options.Layout, OutputFilename)
		g.instructions = pagination.InjectProgress(list, g.options.Layout)
		g.pages = pagination.SplitPages(g.instructions)
	}
	return g.instructions
}

// PageCount returns the number of pages the booklet will have.
func (g *Generator) PageCount() int {
	return pagination.TotalPages(g.Instructions())
}

// ExportPDF generates the whole document and writes it to outputPath; an
// empty path uses OutputFilename.
func (g *Generator) ExportPDF(outputPath string) error {
	renderer := pdf.NewRenderer(g.options.Layout)
	renderer.Logger = g.options.Logger
	return renderer.Render(g.Instructions(), outputPath)
}

// RenderPreview draws one page onto dst, sized to the caller's viewport.
func (g *Generator) RenderPreview(dst *image.RGBA, pageIndex int) error {
	g.Instructions()
	if pageIndex < 0 || pageIndex >= len(g.pages) {
		return fmt.Errorf("api: page index %d out of range [0,%d)", pageIndex, len(g.pages))
	}
	renderer := raster.NewRenderer(g.options.Layout)
	renderer.Logger = g.options.Logger
	renderer.RenderPage(dst, g.pages[pageIndex], g.options.Layout.Page.Width, g.options.Layout.Page.Height, pageIndex, len(g.pages))
	return nil
}
