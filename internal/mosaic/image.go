// Package mosaic holds the immutable domain inputs of the booklet engine: a
// color-quantized pixel image and a rectangular grid partition over it. Both
// are produced upstream and consumed read-only here.
package mosaic

import (
	"fmt"
	"image"

	"github.com/tilebook/tilebook/internal/ir"
)

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	X, Y, W, H int
}

// PixelImage is a palette-indexed image plus a usage count per palette
// entry. Instances are immutable; Crop returns a new one.
type PixelImage struct {
	Width  int
	Height int
	// Palette is the ordered color table; Pixels holds one palette index
	// per pixel, row-major.
	Palette []ir.RGB
	Pixels  []int
	// Counts holds the number of pixels using each palette index.
	Counts []int
}

// NewPixelImage validates the index grid against the palette and derives the
// usage counts.
func NewPixelImage(width, height int, palette []ir.RGB, pixels []int) (*PixelImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("mosaic: invalid dimensions %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("mosaic: %d pixels for %dx%d image", len(pixels), width, height)
	}
	counts := make([]int, len(palette))
	for i, idx := range pixels {
		if idx < 0 || idx >= len(palette) {
			return nil, fmt.Errorf("mosaic: pixel %d references palette index %d (palette has %d colors)", i, idx, len(palette))
		}
		counts[idx]++
	}
	return &PixelImage{
		Width:   width,
		Height:  height,
		Palette: append([]ir.RGB(nil), palette...),
		Pixels:  append([]int(nil), pixels...),
		Counts:  counts,
	}, nil
}

// FromPaletted converts a palette-indexed stdlib image. The alpha channel of
// the source palette is discarded; quantization happens upstream.
func FromPaletted(img *image.Paletted) (*PixelImage, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	palette := make([]ir.RGB, len(img.Palette))
	for i, c := range img.Palette {
		r, g, b, _ := c.RGBA()
		palette[i] = ir.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	}
	pixels := make([]int, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pixels = append(pixels, int(img.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return NewPixelImage(w, h, palette, pixels)
}

// At returns the palette index at (x, y).
func (p *PixelImage) At(x, y int) int {
	return p.Pixels[y*p.Width+x]
}

// Bounds returns the image extent as a pixel rectangle at the origin.
func (p *PixelImage) Bounds() Rect {
	return Rect{W: p.Width, H: p.Height}
}

// Crop returns a new image covering r, clamped to the source bounds, with
// usage counts re-derived for the cropped region. The palette is shared
// structurally but never mutated.
func (p *PixelImage) Crop(r Rect) *PixelImage {
	if r.X < 0 {
		r.W += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
	}
	if r.X+r.W > p.Width {
		r.W = p.Width - r.X
	}
	if r.Y+r.H > p.Height {
		r.H = p.Height - r.Y
	}
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	pixels := make([]int, 0, r.W*r.H)
	counts := make([]int, len(p.Palette))
	for y := r.Y; y < r.Y+r.H; y++ {
		row := p.Pixels[y*p.Width : y*p.Width+p.Width]
		for x := r.X; x < r.X+r.W; x++ {
			pixels = append(pixels, row[x])
			counts[row[x]]++
		}
	}
	return &PixelImage{
		Width:   r.W,
		Height:  r.H,
		Palette: p.Palette,
		Pixels:  pixels,
		Counts:  counts,
	}
}

// FlatRGB renders the image to three bytes per pixel, row-major, the format
// ir.PixelGrid carries.
func (p *PixelImage) FlatRGB() []uint8 {
	out := make([]uint8, 0, len(p.Pixels)*3)
	for _, idx := range p.Pixels {
		c := p.Palette[idx]
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// FlatRGBSubset renders the image keeping a pixel's true color only when its
// palette index is in keep; every other pixel becomes background.
func (p *PixelImage) FlatRGBSubset(keep map[int]bool, background ir.RGB) []uint8 {
	out := make([]uint8, 0, len(p.Pixels)*3)
	for _, idx := range p.Pixels {
		c := background
		if keep[idx] {
			c = p.Palette[idx]
		}
		out = append(out, c.R, c.G, c.B)
	}
	return out
}
