// Package raster renders one page's worth of instructions onto a caller-
// provided RGBA surface for interactive preview. Unlike the export renderer
// it holds no document-wide state: every call starts from a cleared surface
// and replays one page slice.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
	"github.com/tilebook/tilebook/internal/res"
)

// Renderer replays page slices onto raster surfaces.
type Renderer struct {
	// Logger receives skipped-instruction reports.
	Logger *zap.Logger
	cfg    layout.Config
}

// NewRenderer creates a preview renderer.
func NewRenderer(cfg layout.Config) *Renderer {
	return &Renderer{Logger: zap.NewNop(), cfg: cfg}
}

// pageRun is the ephemeral per-call state: the surface, the resolution-
// independent scale and the current font size.
type pageRun struct {
	r      *Renderer
	dst    *image.RGBA
	scale  float64 // pixels per millimeter
	fontPt float64
}

// RenderPage clears the surface, paints the page background inside the
// printer-safe margin and replays the instructions of one page. pageIndex is
// 0-based; together with totalPages it decides whether the page-number stamp
// appears, under the same reserved-cover-page rule as the export renderer.
// Page-boundary markers inside the slice are ignored.
func (r *Renderer) RenderPage(dst *image.RGBA, page []ir.Instruction, pageW, pageH float64, pageIndex, totalPages int) {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	bounds := dst.Bounds()
	scale := float64(bounds.Dx()) / pageW
	if s := float64(bounds.Dy()) / pageH; s < scale {
		scale = s
	}
	run := &pageRun{r: r, dst: dst, scale: scale, fontPt: 12}

	draw.Draw(dst, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	m := r.cfg.Page.Margin
	run.fillRect(ir.Rect{X: m, Y: m, W: pageW - 2*m, H: pageH - 2*m}, r.cfg.Page.Background, 255)

	for _, in := range page {
		run.apply(in)
	}

	n := r.cfg.Number
	pageNo := pageIndex + 1
	if pageNo > n.ReservedFront && pageNo <= totalPages-n.ReservedBack {
		run.fontPt = n.FontPt
		run.drawTextAligned(pageW/2, pageH-m/3, strconv.Itoa(pageNo), ir.AlignCenter, n.FontPt, ir.Black)
	}
}

func (p *pageRun) apply(in ir.Instruction) {
	switch v := in.(type) {
	case ir.NewDocument, ir.NewPage, ir.Save:
		// Boundary markers the caller used to slice the stream.

	case ir.SetFontSize:
		p.fontPt = v.Pt

	case ir.Text:
		p.drawText(v.X, v.Y, v.Value, p.fontPt, ir.Black)

	case ir.TextAligned:
		p.drawTextAligned(v.X, v.Y, v.Value, v.Align, v.FontPt, ir.Black)

	case ir.TextWithBackground:
		p.drawTextWithBackground(v)

	case ir.Line:
		p.drawLine(v)

	case ir.StrokeRects:
		for _, rect := range v.Rects {
			p.strokeRect(rect, v.Color, v.Width)
		}

	case ir.FillRect:
		p.fillRect(v.Rect, v.Color, 255)

	case ir.FillRectOpacity:
		p.fillRect(v.Rect, v.Color, uint8(math.Round(255*v.Opacity)))

	case ir.RoundedFillRect:
		p.roundedRect(v.Rect, v.Radius, v.Color, 0, true)

	case ir.RoundedStrokeRect:
		p.roundedRect(v.Rect, v.Radius, v.Color, v.Width, false)

	case ir.PixelGrid:
		p.drawPixelGrid(v)

	case ir.SwatchRow:
		p.fillRect(ir.Rect{X: v.X, Y: v.Y, W: v.Size, H: v.Size}, v.Color, 255)
		p.strokeRect(ir.Rect{X: v.X, Y: v.Y, W: v.Size, H: v.Size}, ir.Black, v.StrokeWidth)
		baseline := v.Y + v.Size/2 + ptToMM(v.FontPt)*0.35
		p.drawText(v.X+v.Size+v.Gap, baseline, fmt.Sprintf("×%d", v.Count), v.FontPt, ir.Black)
	}
}

func (p *pageRun) px(v float64) int {
	return int(math.Round(v * p.scale))
}

func (p *pageRun) rectPx(r ir.Rect) image.Rectangle {
	return image.Rect(p.px(r.X), p.px(r.Y), p.px(r.X+r.W), p.px(r.Y+r.H))
}

func (p *pageRun) fillRect(r ir.Rect, c ir.RGB, alpha uint8) {
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha})
	draw.Draw(p.dst, p.rectPx(r).Intersect(p.dst.Bounds()), src, image.Point{}, draw.Over)
}

// strokeRect draws four edge strips at least one device pixel thick.
func (p *pageRun) strokeRect(r ir.Rect, c ir.RGB, width float64) {
	t := p.strokePx(width)
	box := p.rectPx(r)
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	edges := []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+t),
		image.Rect(box.Min.X, box.Max.Y-t, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+t, box.Max.Y),
		image.Rect(box.Max.X-t, box.Min.Y, box.Max.X, box.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(p.dst, e.Intersect(p.dst.Bounds()), src, image.Point{}, draw.Over)
	}
}

func (p *pageRun) strokePx(width float64) int {
	t := int(math.Round(width * p.scale))
	if t < 1 {
		t = 1
	}
	return t
}

// drawLine fast-paths axis-aligned segments as strips and stamps the rest
// along the segment.
func (p *pageRun) drawLine(v ir.Line) {
	t := p.strokePx(v.Width)
	src := image.NewUniform(color.NRGBA{R: v.Color.R, G: v.Color.G, B: v.Color.B, A: 255})
	x1, y1 := p.px(v.X1), p.px(v.Y1)
	x2, y2 := p.px(v.X2), p.px(v.Y2)
	half := t / 2
	switch {
	case y1 == y2:
		if x2 < x1 {
			x1, x2 = x2, x1
		}
		strip := image.Rect(x1, y1-half, x2, y1-half+t)
		draw.Draw(p.dst, strip.Intersect(p.dst.Bounds()), src, image.Point{}, draw.Over)
	case x1 == x2:
		if y2 < y1 {
			y1, y2 = y2, y1
		}
		strip := image.Rect(x1-half, y1, x1-half+t, y2)
		draw.Draw(p.dst, strip.Intersect(p.dst.Bounds()), src, image.Point{}, draw.Over)
	default:
		length := math.Hypot(float64(x2-x1), float64(y2-y1))
		steps := int(length) + 1
		for i := 0; i <= steps; i++ {
			f := float64(i) / float64(steps)
			cx := x1 + int(math.Round(f*float64(x2-x1)))
			cy := y1 + int(math.Round(f*float64(y2-y1)))
			stamp := image.Rect(cx-half, cy-half, cx-half+t, cy-half+t)
			draw.Draw(p.dst, stamp.Intersect(p.dst.Bounds()), src, image.Point{}, draw.Over)
		}
	}
}

// roundedRect scans the bounding box once, testing each pixel against the
// rounded outline.
func (p *pageRun) roundedRect(r ir.Rect, radius float64, c ir.RGB, width float64, fill bool) {
	box := p.rectPx(r).Intersect(p.dst.Bounds())
	rad := radius * p.scale
	half := float64(p.strokePx(width)) / 2
	col := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	minX, minY := float64(p.px(r.X)), float64(p.px(r.Y))
	maxX, maxY := float64(p.px(r.X+r.W))-1, float64(p.px(r.Y+r.H))-1
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			// Signed distance to the rounded outline: clamp the pixel to the
			// inner rectangle inset by the radius, measure to that point and
			// subtract the radius. Negative is inside.
			cx := math.Min(math.Max(float64(x), minX+rad), maxX-rad)
			cy := math.Min(math.Max(float64(y), minY+rad), maxY-rad)
			sd := math.Hypot(float64(x)-cx, float64(y)-cy) - rad
			if fill {
				if sd <= 0 {
					p.dst.Set(x, y, col)
				}
			} else if math.Abs(sd) <= half+0.5 {
				p.dst.Set(x, y, col)
			}
		}
	}
}

// drawPixelGrid blits through an intermediate bitmap with nearest-neighbor
// scaling: uniform, free of seam artifacts and never smoothed, so pixel art
// stays crisp at any zoom.
func (p *pageRun) drawPixelGrid(v ir.PixelGrid) {
	if !v.Valid() {
		p.r.Logger.Warn("pixel grid data length does not match its dimensions, skipping",
			zap.Int("cols", v.Cols), zap.Int("rows", v.Rows), zap.Int("len", len(v.RGB)))
		return
	}
	src := image.NewRGBA(image.Rect(0, 0, v.Cols, v.Rows))
	for i := 0; i < v.Cols*v.Rows; i++ {
		src.SetRGBA(i%v.Cols, i/v.Cols, color.RGBA{R: v.RGB[3*i], G: v.RGB[3*i+1], B: v.RGB[3*i+2], A: 255})
	}
	xdraw.NearestNeighbor.Scale(p.dst, p.rectPx(v.Rect), src, src.Bounds(), xdraw.Over, nil)
}

func (p *pageRun) face(pt float64) font.Face {
	// DPI chosen so a point size maps to the page's mm scale.
	return res.Face(pt, 25.4*p.scale)
}

func (p *pageRun) drawText(x, y float64, s string, pt float64, c ir.RGB) {
	d := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}),
		Face: p.face(pt),
		Dot:  fixed.P(p.px(x), p.px(y)),
	}
	d.DrawString(s)
}

func (p *pageRun) measure(s string, pt float64) float64 {
	w := font.MeasureString(p.face(pt), s)
	return float64(w) / 64 / p.scale
}

func (p *pageRun) drawTextAligned(x, y float64, s string, align ir.Align, pt float64, c ir.RGB) {
	switch align {
	case ir.AlignCenter:
		x -= p.measure(s, pt) / 2
	case ir.AlignRight:
		x -= p.measure(s, pt)
	}
	p.drawText(x, y, s, pt, c)
}

func (p *pageRun) drawTextWithBackground(v ir.TextWithBackground) {
	textW := p.measure(v.Value, v.FontPt)
	textH := ptToMM(v.FontPt)
	w := textW + 2*v.Padding
	h := textH + 2*v.Padding
	x := v.X
	if !v.AnchorLeft {
		x -= w
	}
	p.fillRect(ir.Rect{X: x, Y: v.YTop, W: w, H: h}, v.Background, 255)
	textColor := ir.Black
	if v.Background.Luma() < 128 {
		textColor = ir.White
	}
	p.drawText(x+v.Padding, v.YTop+v.Padding+textH*0.82, v.Value, v.FontPt, textColor)
}

func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72
}
