package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/tilebook/tilebook/internal/mosaic"
	"github.com/tilebook/tilebook/pkg/api"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a single booklet page to a PNG",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().String("input", "", "Palette-indexed PNG to build instructions for")
	previewCmd.Flags().String("output", "page.png", "Output PNG path")
	previewCmd.Flags().String("title", "Mosaic", "Cover title")
	previewCmd.Flags().Int("step", 16, "Step size in pixels")
	previewCmd.Flags().Int("plates-x", 2, "Number of plate columns")
	previewCmd.Flags().Int("plates-y", 2, "Number of plate rows")
	previewCmd.Flags().Int("page", 0, "0-based page index to render")
	previewCmd.Flags().Int("width", 840, "Surface width in pixels")
	previewCmd.Flags().Int("height", 1188, "Surface height in pixels")
	_ = previewCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	step, _ := cmd.Flags().GetInt("step")
	platesX, _ := cmd.Flags().GetInt("plates-x")
	platesY, _ := cmd.Flags().GetInt("plates-y")
	page, _ := cmd.Flags().GetInt("page")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	img, err := loadPixelImage(input)
	if err != nil {
		return err
	}
	logger, err := buildLogger(cmd)
	if err != nil {
		return err
	}

	plates := mosaic.Partition(img.Width, img.Height, platesX, platesY)
	gen, err := api.New(img, plates,
		api.WithTitle(title),
		api.WithStepSize(step),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	surface := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := gen.RenderPreview(surface, page); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Close()
	if err := png.Encode(f, surface); err != nil {
		return fmt.Errorf("encoding %s: %w", output, err)
	}
	cmd.Printf("Rendered page %d of %d to %s\n", page+1, gen.PageCount(), output)
	return nil
}
