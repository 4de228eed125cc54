// Package pdf executes a full instruction list against the fpdf backend,
// producing one paginated document file.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
	"github.com/tilebook/tilebook/internal/pagination"
)

// ErrNoBackend reports that the output backend is unavailable. This mirrors
// an environment-setup defect, not a data error: the run aborts whole, since
// there is nothing partial worth saving.
var ErrNoBackend = errors.New("pdf: output backend unavailable")

// Renderer folds an instruction list into a PDF. It owns its interpreter
// state (current document, page size, page index) for the duration of one
// Render call only.
type Renderer struct {
	// Logger receives environment errors and skipped instructions.
	Logger *zap.Logger

	cfg     layout.Config
	backend func(pageW, pageH float64) *fpdf.Fpdf

	doc          *fpdf.Fpdf
	pageW, pageH float64
	page         int // 1-based index of the open page
	total        int
	images       int
}

// NewRenderer creates a renderer with the default fpdf backend.
func NewRenderer(cfg layout.Config) *Renderer {
	return &Renderer{
		Logger: zap.NewNop(),
		cfg:    cfg,
		backend: func(pageW, pageH float64) *fpdf.Fpdf {
			return fpdf.NewCustom(&fpdf.InitType{
				OrientationStr: "P",
				UnitStr:        "mm",
				Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
			})
		},
	}
}

// Render executes the list end to end and writes the document to outputPath.
// An empty outputPath falls back to the filename carried by the terminal
// Save instruction. Malformed instructions are skipped one by one; only a
// missing backend aborts the run.
func (r *Renderer) Render(list []ir.Instruction, outputPath string) error {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	if r.backend == nil {
		r.Logger.Error("pdf backend not available, skipping document generation")
		return ErrNoBackend
	}

	// Clean state per render.
	r.doc = nil
	r.page = 1
	r.images = 0
	r.total = pagination.TotalPages(list)

	for _, in := range list {
		if _, ok := in.(ir.NewDocument); !ok && r.doc == nil {
			r.Logger.Warn("instruction before NewDocument, skipping", zap.String("instruction", fmt.Sprintf("%T", in)))
			continue
		}
		if err := r.apply(in, outputPath); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) apply(in ir.Instruction, outputPath string) error {
	switch v := in.(type) {
	case ir.NewDocument:
		r.pageW, r.pageH = v.PageW, v.PageH
		r.doc = r.backend(v.PageW, v.PageH)
		r.doc.SetAutoPageBreak(false, 0)
		r.doc.SetFont("Helvetica", "", 12)
		r.doc.SetTextColor(0, 0, 0)
		r.doc.AddPage()
		r.paintBackground()

	case ir.NewPage:
		r.stampPageNumber()
		r.page++
		r.doc.AddPage()
		r.paintBackground()

	case ir.SetFontSize:
		r.doc.SetFontSize(v.Pt)

	case ir.Text:
		r.doc.Text(v.X, v.Y, v.Value)

	case ir.TextAligned:
		// The ambient size set by SetFontSize survives instructions that
		// carry their own size, matching the preview interpreter.
		prev, _ := r.doc.GetFontSize()
		r.doc.SetFontSize(v.FontPt)
		x := v.X
		switch v.Align {
		case ir.AlignCenter:
			x -= r.doc.GetStringWidth(v.Value) / 2
		case ir.AlignRight:
			x -= r.doc.GetStringWidth(v.Value)
		}
		r.doc.Text(x, v.Y, v.Value)
		r.doc.SetFontSize(prev)

	case ir.TextWithBackground:
		r.drawTextWithBackground(v)

	case ir.Line:
		r.doc.SetDrawColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
		r.doc.SetLineWidth(v.Width)
		r.doc.Line(v.X1, v.Y1, v.X2, v.Y2)

	case ir.StrokeRects:
		r.doc.SetDrawColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
		r.doc.SetLineWidth(v.Width)
		for _, rect := range v.Rects {
			r.doc.Rect(rect.X, rect.Y, rect.W, rect.H, "D")
		}

	case ir.FillRect:
		r.doc.SetFillColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
		r.doc.Rect(v.Rect.X, v.Rect.Y, v.Rect.W, v.Rect.H, "F")

	case ir.FillRectOpacity:
		r.doc.SetFillColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
		r.doc.SetAlpha(v.Opacity, "Normal")
		r.doc.Rect(v.Rect.X, v.Rect.Y, v.Rect.W, v.Rect.H, "F")
		r.doc.SetAlpha(1, "Normal")

	case ir.RoundedFillRect:
		r.doc.SetFillColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
		r.doc.RoundedRect(v.Rect.X, v.Rect.Y, v.Rect.W, v.Rect.H, v.Radius, "1234", "F")

	case ir.RoundedStrokeRect:
		r.doc.SetDrawColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
		r.doc.SetLineWidth(v.Width)
		r.doc.RoundedRect(v.Rect.X, v.Rect.Y, v.Rect.W, v.Rect.H, v.Radius, "1234", "D")

	case ir.PixelGrid:
		r.drawPixelGrid(v)

	case ir.SwatchRow:
		r.drawSwatchRow(v)

	case ir.Save:
		r.stampPageNumber()
		path := outputPath
		if path == "" {
			path = v.Filename
		}
		if err := r.doc.OutputFileAndClose(path); err != nil {
			return fmt.Errorf("pdf: writing %s: %w", path, err)
		}
	}
	return nil
}

// paintBackground fills the page background inside the printer-safe margin.
func (r *Renderer) paintBackground() {
	bg := r.cfg.Page.Background
	m := r.cfg.Page.Margin
	r.doc.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	r.doc.Rect(m, m, r.pageW-2*m, r.pageH-2*m, "F")
}

// stampPageNumber numbers the page being closed, except on the reserved
// cover pages at the front and back of the document.
func (r *Renderer) stampPageNumber() {
	n := r.cfg.Number
	if r.page <= n.ReservedFront || r.page > r.total-n.ReservedBack {
		return
	}
	prev, _ := r.doc.GetFontSize()
	r.doc.SetFontSize(n.FontPt)
	label := strconv.Itoa(r.page)
	x := r.pageW/2 - r.doc.GetStringWidth(label)/2
	r.doc.Text(x, r.pageH-r.cfg.Page.Margin/3, label)
	r.doc.SetFontSize(prev)
}

func (r *Renderer) drawTextWithBackground(v ir.TextWithBackground) {
	prev, _ := r.doc.GetFontSize()
	r.doc.SetFontSize(v.FontPt)
	textW := r.doc.GetStringWidth(v.Value)
	textH := ptToMM(v.FontPt)
	w := textW + 2*v.Padding
	h := textH + 2*v.Padding
	x := v.X
	if !v.AnchorLeft {
		x -= w
	}
	r.doc.SetFillColor(int(v.Background.R), int(v.Background.G), int(v.Background.B))
	r.doc.Rect(x, v.YTop, w, h, "F")
	if v.Background.Luma() < 128 {
		r.doc.SetTextColor(255, 255, 255)
	}
	r.doc.Text(x+v.Padding, v.YTop+v.Padding+textH*0.82, v.Value)
	r.doc.SetTextColor(0, 0, 0)
	r.doc.SetFontSize(prev)
}

// drawPixelGrid blits the bitmap as one scaled image, never as per-pixel
// rectangles, so scaling stays uniform and seam-free.
func (r *Renderer) drawPixelGrid(v ir.PixelGrid) {
	if !v.Valid() {
		r.Logger.Warn("pixel grid data length does not match its dimensions, skipping",
			zap.Int("cols", v.Cols), zap.Int("rows", v.Rows), zap.Int("len", len(v.RGB)))
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, v.Cols, v.Rows))
	for i := 0; i < v.Cols*v.Rows; i++ {
		img.SetRGBA(i%v.Cols, i/v.Cols, color.RGBA{R: v.RGB[3*i], G: v.RGB[3*i+1], B: v.RGB[3*i+2], A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		r.Logger.Warn("encoding pixel grid bitmap failed, skipping", zap.Error(err))
		return
	}
	r.images++
	name := fmt.Sprintf("pixelgrid-%d", r.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	r.doc.RegisterImageOptionsReader(name, opts, &buf)
	r.doc.ImageOptions(name, v.Rect.X, v.Rect.Y, v.Rect.W, v.Rect.H, false, opts, 0, "")
}

func (r *Renderer) drawSwatchRow(v ir.SwatchRow) {
	r.doc.SetFillColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
	r.doc.Rect(v.X, v.Y, v.Size, v.Size, "F")
	r.doc.SetDrawColor(0, 0, 0)
	r.doc.SetLineWidth(v.StrokeWidth)
	r.doc.Rect(v.X, v.Y, v.Size, v.Size, "D")
	prev, _ := r.doc.GetFontSize()
	r.doc.SetFontSize(v.FontPt)
	baseline := v.Y + v.Size/2 + ptToMM(v.FontPt)*0.35
	r.doc.Text(v.X+v.Size+v.Gap, baseline, fmt.Sprintf("×%d", v.Count))
	r.doc.SetFontSize(prev)
}

func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72
}
