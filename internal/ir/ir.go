// Package ir defines the drawing-instruction vocabulary shared by every
// layout function and every renderer. Instructions are plain values: produced
// once by layout, consumed once by an interpreter, never mutated. All
// coordinates are page-space millimeters; font sizes are points. Within a
// page, later instructions draw on top of earlier ones.
package ir

// RGB is an opaque 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Luma returns the perceived brightness in [0,255].
func (c RGB) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Rect is an axis-aligned rectangle in page-space millimeters.
type Rect struct {
	X, Y, W, H float64
}

// Align selects horizontal text alignment relative to the anchor X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Instruction is the closed set of drawable primitives. No instruction
// references another; ordering alone encodes intent.
type Instruction interface {
	isInstruction()
}

// NewDocument opens a document with the given page size in millimeters and
// its first page. It must be the first instruction of any list.
type NewDocument struct {
	PageW, PageH float64
}

// NewPage closes the current page and opens a new one of the same size.
type NewPage struct{}

// SetFontSize sets the font size, in points, for subsequent Text instructions.
type SetFontSize struct {
	Pt float64
}

// Text draws a string with its baseline-left anchor at (X, Y), using the font
// size established by the last SetFontSize.
type Text struct {
	X, Y  float64
	Value string
}

// TextAligned draws a string at an explicit size, aligned relative to X.
type TextAligned struct {
	X, Y   float64
	Value  string
	Align  Align
	FontPt float64
}

// TextWithBackground draws a string on a filled label. YTop is the top edge
// of the label; Padding surrounds the text on all sides. When AnchorLeft is
// true the label grows rightward from X, otherwise leftward.
type TextWithBackground struct {
	X, YTop    float64
	Value      string
	FontPt     float64
	Padding    float64
	AnchorLeft bool
	Background RGB
}

// Line draws a straight stroked segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          RGB
}

// StrokeRects outlines each rectangle with the same color and line width.
type StrokeRects struct {
	Rects []Rect
	Color RGB
	Width float64
}

// FillRect fills a rectangle.
type FillRect struct {
	Rect  Rect
	Color RGB
}

// FillRectOpacity fills a rectangle with an alpha in [0,1].
type FillRectOpacity struct {
	Rect    Rect
	Color   RGB
	Opacity float64
}

// RoundedFillRect fills a rectangle with rounded corners.
type RoundedFillRect struct {
	Rect   Rect
	Radius float64
	Color  RGB
}

// RoundedStrokeRect outlines a rectangle with rounded corners.
type RoundedStrokeRect struct {
	Rect   Rect
	Radius float64
	Color  RGB
	Width  float64
}

// PixelGrid blits a dense Cols x Rows bitmap scaled into Rect. RGB holds
// three bytes per pixel in row-major order; its length must equal
// 3*Cols*Rows or the interpreter drops the instruction.
type PixelGrid struct {
	Rect       Rect
	Cols, Rows int
	RGB        []uint8
}

// Valid reports whether the flat color array matches the declared dimensions.
func (p PixelGrid) Valid() bool {
	return p.Cols > 0 && p.Rows > 0 && len(p.RGB) == 3*p.Cols*p.Rows
}

// SwatchRow draws a stroked color square at (X, Y) and a "×Count" label to
// its right, vertically centered on the square.
type SwatchRow struct {
	X, Y        float64
	Color       RGB
	Count       int
	Size        float64
	Gap         float64
	FontPt      float64
	StrokeWidth float64
}

// Save closes the document and writes it out. It must be the last
// instruction of any list.
type Save struct {
	Filename string
}

func (NewDocument) isInstruction()        {}
func (NewPage) isInstruction()            {}
func (SetFontSize) isInstruction()        {}
func (Text) isInstruction()               {}
func (TextAligned) isInstruction()        {}
func (TextWithBackground) isInstruction() {}
func (Line) isInstruction()               {}
func (StrokeRects) isInstruction()        {}
func (FillRect) isInstruction()           {}
func (FillRectOpacity) isInstruction()    {}
func (RoundedFillRect) isInstruction()    {}
func (RoundedStrokeRect) isInstruction()  {}
func (PixelGrid) isInstruction()          {}
func (SwatchRow) isInstruction()          {}
func (Save) isInstruction()               {}
