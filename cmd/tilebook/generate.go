package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tilebook/tilebook/internal/layout"
	"github.com/tilebook/tilebook/internal/mosaic"
	"github.com/tilebook/tilebook/pkg/api"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the instruction booklet PDF",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().String("input", "", "Palette-indexed PNG to build instructions for")
	generateCmd.Flags().String("output", api.OutputFilename, "Output PDF path")
	generateCmd.Flags().String("title", "Mosaic", "Cover title")
	generateCmd.Flags().Int("step", 16, "Step size in pixels")
	generateCmd.Flags().Int("plates-x", 2, "Number of plate columns")
	generateCmd.Flags().Int("plates-y", 2, "Number of plate rows")
	generateCmd.Flags().String("layout", "", "YAML file with layout-config overrides")
	_ = generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	step, _ := cmd.Flags().GetInt("step")
	platesX, _ := cmd.Flags().GetInt("plates-x")
	platesY, _ := cmd.Flags().GetInt("plates-y")
	layoutPath, _ := cmd.Flags().GetString("layout")

	img, err := loadPixelImage(input)
	if err != nil {
		return err
	}
	cfg, err := loadLayout(layoutPath)
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
		api.WithLayout(cfg),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if err := gen.ExportPDF(output); err != nil {
		return fmt.Errorf("generating booklet: %w", err)
	}
	cmd.Printf("Wrote %d pages to %s\n", gen.PageCount(), output)
	return nil
}

// loadPixelImage reads a palette-indexed PNG. Non-indexed images are
// rejected; quantization happens outside this tool.
func loadPixelImage(path string) (*mosaic.PixelImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	paletted, ok := decoded.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%s is not palette-indexed; quantize it first", path)
	}
	return mosaic.FromPaletted(paletted)
}

// loadLayout returns the default layout constants, optionally overridden by
// a partial YAML file.
func loadLayout(path string) (layout.Config, error) {
	cfg := layout.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading layout config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing layout config: %w", err)
	}
	return cfg, nil
}

func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
