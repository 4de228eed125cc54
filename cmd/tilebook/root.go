package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tilebook",
	Short: "Tilebook turns a quantized pixel mosaic into an illustrated instruction booklet",
	Long: `Tilebook consumes a palette-indexed PNG and a plate grid and produces a
paginated PDF with a cover, a whole-mosaic overview, per-plate chapters and
step-by-step layer pages. Quantization is not part of this tool; the input
image must already be palette-indexed.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
}
