// Package pagination post-processes a finished instruction list: it counts
// pages, injects the per-page progress bar, and splits the list into
// per-page slices for the preview renderer.
package pagination

import (
	"github.com/tilebook/tilebook/internal/ir"
	"github.com/tilebook/tilebook/internal/layout"
)

// TotalPages returns the page count of an instruction list: one page for the
// document itself plus one per page break.
func TotalPages(list []ir.Instruction) int {
	total := 1
	for _, in := range list {
		if _, ok := in.(ir.NewPage); ok {
			total++
		}
	}
	return total
}

// InjectProgress inserts a horizontal progress bar immediately before every
// NewPage and before the terminal Save, so the bar reflects the page being
// left. The fill width is min(1, page/totalPages) of the configured bar
// width. The pass is linear and never reorders the other instructions, which
// keeps it safe for documents with hundreds of pages.
func InjectProgress(list []ir.Instruction, cfg layout.Config) []ir.Instruction {
	total := TotalPages(list)
	pageW, pageH := cfg.Page.Width, cfg.Page.Height

	out := make([]ir.Instruction, 0, len(list)+2*total)
	page := 1
	for _, in := range list {
		switch v := in.(type) {
		case ir.NewDocument:
			pageW, pageH = v.PageW, v.PageH
		case ir.NewPage:
			out = append(out, progressBar(page, total, pageW, pageH, cfg.Progress)...)
			page++
		case ir.Save:
			out = append(out, progressBar(page, total, pageW, pageH, cfg.Progress)...)
		}
		out = append(out, in)
	}
	return out
}

func progressBar(page, total int, pageW, pageH float64, pc layout.ProgressConfig) []ir.Instruction {
	frac := float64(page) / float64(total)
	if frac > 1 {
		frac = 1
	}
	bar := ir.Rect{
		X: (pageW - pc.BarWidth) / 2,
		Y: pageH - pc.BottomInset - pc.BarHeight,
		W: pc.BarWidth,
		H: pc.BarHeight,
	}
	fill := bar
	fill.W = pc.BarWidth * frac
	return []ir.Instruction{
		ir.FillRect{Rect: bar, Color: pc.Background},
		ir.FillRect{Rect: fill, Color: pc.Fill},
	}
}

// SplitPages partitions a finished list into per-page instruction slices.
// The page-boundary markers (NewDocument, NewPage, Save) are dropped; they
// direct the split, they are not drawing operations within a page.
func SplitPages(list []ir.Instruction) [][]ir.Instruction {
	pages := [][]ir.Instruction{nil}
	for _, in := range list {
		switch in.(type) {
		case ir.NewDocument, ir.Save:
			// Document boundaries, no page break.
		case ir.NewPage:
			pages = append(pages, nil)
		default:
			pages[len(pages)-1] = append(pages[len(pages)-1], in)
		}
	}
	return pages
}
