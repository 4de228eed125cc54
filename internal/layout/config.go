// Package layout contains the pure layout functions of the booklet engine.
// Each function maps domain data plus a Config to an ordered instruction
// list; none performs I/O or references a renderer.
package layout

import "github.com/tilebook/tilebook/internal/ir"

// Config is the full set of layout constants, grouped per page type. It is
// a parameter bag with no behavior; callers copy DefaultConfig and override
// fields. Lengths are millimeters, font sizes points.
type Config struct {
	Page     PageConfig
	Cover    CoverConfig
	Overview OverviewConfig
	Chapter  ChapterConfig
	Step     StepConfig
	Progress ProgressConfig
	Number   PageNumberConfig
}

// PageConfig is the global page geometry shared by every page.
type PageConfig struct {
	Width  float64
	Height float64
	// Margin is the printer-safe margin; the page background is painted
	// inside it and no content is laid out outside it.
	Margin     float64
	Background ir.RGB
}

// ContentRect returns the area inside the printer-safe margin.
func (p PageConfig) ContentRect() ir.Rect {
	return ir.Rect{
		X: p.Margin,
		Y: p.Margin,
		W: p.Width - 2*p.Margin,
		H: p.Height - 2*p.Margin,
	}
}

// CoverConfig controls the title page.
type CoverConfig struct {
	TitleFontPt  float64
	TitlePadding float64
	TitleBg      ir.RGB
	// TitleOffset shifts the title label outward from the frame corner so
	// it sits on top of the frame edge.
	TitleOffset float64
	FramePad    float64
	FrameRadius float64
	FrameStroke float64
	FrameColor  ir.RGB
	// MaxPixelSize caps the cover scale in mm per source pixel so tiny
	// mosaics are not blown up past recognition.
	MaxPixelSize float64
	// FallbackX/Y position the bare title when no image is supplied.
	FallbackX float64
	FallbackY float64
}

// OverviewConfig controls the whole-mosaic overview page.
type OverviewConfig struct {
	HeaderFontPt float64
	// ColumnWidth is the reserved width of the left color-list column.
	ColumnWidth  float64
	SwatchSize   float64
	SwatchGap    float64
	SwatchFontPt float64
	SwatchStroke float64
	ExplodedGap  float64
	PartFrame    float64
	// Dimension-annotation guides.
	DimFontPt    float64
	DimOffset    float64
	DimLineWidth float64
}

// ChapterConfig controls the per-plate overview page.
type ChapterConfig struct {
	HeaderFontPt float64
	ColumnWidth  float64
	SwatchSize   float64
	SwatchGap    float64
	SwatchFontPt float64
	SwatchStroke float64
	// ExplodedGap is configured independently of the overview gap.
	ExplodedGap float64
	PartFrame   float64
	// ScaleFactor shrinks the exploded view relative to the available area.
	ScaleFactor float64
	Locator     LocatorConfig
	NoteFontPt  float64
}

// LocatorConfig controls the small whole-mosaic position indicator repeated
// on chapter and step pages.
type LocatorConfig struct {
	Width          float64
	OverlayColor   ir.RGB
	OverlayOpacity float64
	DashLen        float64
	DashGap        float64
	DashWidth      float64
	DashBase       ir.RGB
	DashDark       ir.RGB
	FrameWidth     float64
	BorderWidth    float64
}

// StepConfig controls the per-step instruction pages.
type StepConfig struct {
	HeaderFontPt float64
	ColumnWidth  float64
	SwatchSize   float64
	SwatchGap    float64
	SwatchFontPt float64
	SwatchStroke float64
	// Layer bitmaps are packed LayersPerRow x LayersPerCol per page.
	LayersPerRow int
	LayersPerCol int
	CellGap      float64
	LabelFontPt  float64
	// FineGridEvery is the cell pitch of the finer dashed counting grid.
	FineGridEvery int
	GridDashLen   float64
	GridDashGap   float64
	GridLineWidth float64
	GridBase      ir.RGB
	GridDark      ir.RGB
	Locator       LocatorConfig
	NoteFontPt    float64
}

// LayersPerPage returns the layer-bitmap capacity of one step page.
func (s StepConfig) LayersPerPage() int {
	n := s.LayersPerRow * s.LayersPerCol
	if n < 1 {
		return 1
	}
	return n
}

// ProgressConfig controls the per-page progress bar injected by the
// pagination pass.
type ProgressConfig struct {
	BarWidth  float64
	BarHeight float64
	// BottomInset is the distance from the page's bottom edge to the bar.
	BottomInset float64
	Background  ir.RGB
	Fill        ir.RGB
}

// PageNumberConfig controls the page-number stamp.
type PageNumberConfig struct {
	FontPt float64
	// ReservedFront/ReservedBack pages carry no number (covers).
	ReservedFront int
	ReservedBack  int
}

// DefaultConfig returns the built-in layout constants: A4 portrait with a
// 10mm printer-safe margin.
func DefaultConfig() Config {
	grey := ir.RGB{R: 120, G: 120, B: 120}
	lightGrey := ir.RGB{R: 210, G: 210, B: 210}
	locator := LocatorConfig{
		Width:          42,
		OverlayColor:   ir.RGB{R: 128, G: 128, B: 128},
		OverlayOpacity: 0.65,
		DashLen:        1.4,
		DashGap:        1.0,
		DashWidth:      0.25,
		DashBase:       lightGrey,
		DashDark:       ir.RGB{R: 60, G: 60, B: 60},
		FrameWidth:     0.5,
		BorderWidth:    0.35,
	}
	return Config{
		Page: PageConfig{
			Width:      210,
			Height:     297,
			Margin:     10,
			Background: ir.RGB{R: 248, G: 246, B: 240},
		},
		Cover: CoverConfig{
			TitleFontPt:  30,
			TitlePadding: 2.5,
			TitleBg:      ir.RGB{R: 30, G: 30, B: 30},
			TitleOffset:  4,
			FramePad:     6,
			FrameRadius:  3,
			FrameStroke:  0.5,
			FrameColor:   ir.RGB{R: 70, G: 70, B: 70},
			MaxPixelSize: 2.5,
			FallbackX:    25,
			FallbackY:    60,
		},
		Overview: OverviewConfig{
			HeaderFontPt: 16,
			ColumnWidth:  46,
			SwatchSize:   6,
			SwatchGap:    2.5,
			SwatchFontPt: 10,
			SwatchStroke: 0.2,
			ExplodedGap:  5,
			PartFrame:    0.25,
			DimFontPt:    8,
			DimOffset:    4,
			DimLineWidth: 0.3,
		},
		Chapter: ChapterConfig{
			HeaderFontPt: 16,
			ColumnWidth:  46,
			SwatchSize:   5,
			SwatchGap:    2.2,
			SwatchFontPt: 9,
			SwatchStroke: 0.2,
			ExplodedGap:  3.5,
			PartFrame:    0.25,
			ScaleFactor:  0.85,
			Locator:      locator,
			NoteFontPt:   8,
		},
		Step: StepConfig{
			HeaderFontPt:  14,
			ColumnWidth:   42,
			SwatchSize:    5,
			SwatchGap:     2.2,
			SwatchFontPt:  9,
			SwatchStroke:  0.2,
			LayersPerRow:  2,
			LayersPerCol:  2,
			CellGap:       7,
			LabelFontPt:   9,
			FineGridEvery: 4,
			GridDashLen:   1.2,
			GridDashGap:   0.9,
			GridLineWidth: 0.2,
			GridBase:      lightGrey,
			GridDark:      grey,
			Locator:       locator,
			NoteFontPt:    9,
		},
		Progress: ProgressConfig{
			BarWidth:    58,
			BarHeight:   1.4,
			BottomInset: 5,
			Background:  ir.RGB{R: 222, G: 222, B: 222},
			Fill:        ir.RGB{R: 90, G: 90, B: 90},
		},
		Number: PageNumberConfig{
			FontPt:        9,
			ReservedFront: 1,
			ReservedBack:  0,
		},
	}
}
