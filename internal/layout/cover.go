package layout

import (
	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// Cover lays out the title page. With a mosaic supplied, the image is
// centered and scaled to fit the content area (aspect preserved, scale
// capped so small mosaics are not upscaled past MaxPixelSize), wrapped in a
// white rounded frame with a stroked border; the title is a background-
// filled label anchored at the frame's top-left corner and offset outward
// onto the frame edge. Without an image only the title is placed. The
// terminal Save is not part of the output.
func Cover(img *mosaic.PixelImage, title string, cfg Config) []ir.Instruction {
	cc := cfg.Cover
	if img == nil {
		return []ir.Instruction{
			ir.SetFontSize{Pt: cc.TitleFontPt},
			ir.Text{X: cc.FallbackX, Y: cc.FallbackY, Value: title},
		}
	}

	content := cfg.Page.ContentRect()
	avail := ir.Rect{
		X: content.X + cc.FramePad,
		Y: content.Y + cc.FramePad,
		W: content.W - 2*cc.FramePad,
		H: content.H - 2*cc.FramePad,
	}
	scale := avail.W / float64(img.Width)
	if s := avail.H / float64(img.Height); s < scale {
		scale = s
	}
	if cc.MaxPixelSize > 0 && scale > cc.MaxPixelSize {
		scale = cc.MaxPixelSize
	}
	imgRect := ir.Rect{
		W: float64(img.Width) * scale,
		H: float64(img.Height) * scale,
	}
	imgRect.X = content.X + (content.W-imgRect.W)/2
	imgRect.Y = content.Y + (content.H-imgRect.H)/2
	frame := ir.Rect{
		X: imgRect.X - cc.FramePad,
		Y: imgRect.Y - cc.FramePad,
		W: imgRect.W + 2*cc.FramePad,
		H: imgRect.H + 2*cc.FramePad,
	}

	return []ir.Instruction{
		ir.RoundedFillRect{Rect: frame, Radius: cc.FrameRadius, Color: ir.White},
		ir.RoundedStrokeRect{Rect: frame, Radius: cc.FrameRadius, Color: cc.FrameColor, Width: cc.FrameStroke},
		ir.PixelGrid{Rect: imgRect, Cols: img.Width, Rows: img.Height, RGB: img.FlatRGB()},
		ir.TextWithBackground{
			X:          frame.X - cc.TitleOffset,
			YTop:       frame.Y - cc.TitleOffset,
			Value:      title,
			FontPt:     cc.TitleFontPt,
			Padding:    cc.TitlePadding,
			AnchorLeft: true,
			Background: cc.TitleBg,
		},
	}
}
