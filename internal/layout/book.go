package layout

import (
	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/mosaic"
)

// Book assembles the complete instruction list for one booklet: cover,
// whole-mosaic overview, then a chapter overview and step pages per plate,
// terminated by Save. The result still lacks the progress bars; the
// pagination pass injects those.
func Book(img *mosaic.PixelImage, plates mosaic.GridPartition, title string, stepSize int, cfg Config, filename string) []ir.Instruction {
	out := []ir.Instruction{
		ir.NewDocument{PageW: cfg.Page.Width, PageH: cfg.Page.Height},
	}
	out = append(out, Cover(img, title, cfg)...)

	out = append(out, ir.NewPage{})
	out = append(out, Overview(img, plates, cfg)...)

	for plate := range plates.Parts {
		out = append(out, ir.NewPage{})
		out = append(out, Chapter(img, plates, plate, stepSize, cfg)...)
		out = append(out, StepPages(img, plates, plate, stepSize, cfg)...)
	}

	out = append(out, ir.Save{Filename: filename})
	return out
}
