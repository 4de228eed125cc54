package tilebook

import (
	"image"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
	"github.com/tilebook/tilebook/internal/mosaic"
	"github.com/tilebook/tilebook/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option

type PixelImage = mosaic.PixelImage
type GridPartition = mosaic.GridPartition
type PixelRect = mosaic.Rect
type RGB = ir.RGB
type LayoutConfig = layout.Config

const OutputFilename = api.OutputFilename

func New(img *PixelImage, plates GridPartition, opts ...Option) (*Generator, error) {
	return api.New(img, plates, opts...)
}

func NewWithOptions(img *PixelImage, plates GridPartition, options Options) (*Generator, error) {
	return api.NewWithOptions(img, plates, options)
}

func DefaultOptions() Options           { return api.DefaultOptions() }
func DefaultLayoutConfig() LayoutConfig { return layout.DefaultConfig() }

func NewPixelImage(width, height int, palette []RGB, pixels []int) (*PixelImage, error) {
	return mosaic.NewPixelImage(width, height, palette, pixels)
}

func FromPaletted(img *image.Paletted) (*PixelImage, error) { return mosaic.FromPaletted(img) }

func Partition(width, height, cols, rows int) GridPartition {
	return mosaic.Partition(width, height, cols, rows)
}

var (
	WithTitle          = api.WithTitle
	WithStepSize       = api.WithStepSize
	WithPageBackground = api.WithPageBackground
	WithMargin         = api.WithMargin
	WithLayout         = api.WithLayout
	WithLogger         = api.WithLogger
)
