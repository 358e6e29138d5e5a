package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfsc/georef-verifier/internal/config"
	"github.com/rfsc/georef-verifier/internal/document"
	"github.com/rfsc/georef-verifier/internal/raster"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a multi-frame TIFF into a one-page-per-frame PDF",
	Long:  "Convert rasterizes every frame of a scanned TIFF to JPEG and assembles the frames, in order, into a single PDF document.",
	RunE:  runConvert,
}

var (
	convertConfigPath string
	convertTIFF       string
	convertOut        string
	convertQuality    int
	convertScratch    string
)

func init() {
	convertCmd.Flags().StringVar(&convertConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	convertCmd.Flags().StringVar(&convertTIFF, "tiff", "", "Path to the source TIFF (required)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Path of the PDF to write (required)")
	convertCmd.Flags().IntVar(&convertQuality, "quality", 0, "JPEG quality for rasterized pages (default 85)")
	convertCmd.Flags().StringVar(&convertScratch, "scratch-dir", "", "Directory for intermediate page images (default: system temp)")

	convertCmd.MarkFlagRequired("tiff")
	convertCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if convertConfigPath != "" {
		loaded, err := config.LoadConfig(convertConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("quality") {
		cfg.Quality = convertQuality
	}
	if cmd.Flags().Changed("scratch-dir") {
		cfg.ScratchDir = convertScratch
	}
	cfg = cfg.MergeWithDefaults(config.Config{Quality: raster.DefaultQuality})

	converter := &document.Converter{ScratchDir: cfg.ScratchDir, Quality: cfg.Quality}
	doc, err := converter.Convert(ctx, convertTIFF, convertOut)
	if err != nil {
		return fmt.Errorf("raster conversion failed: %w", err)
	}

	fmt.Printf("Successfully converted %s\n", convertTIFF)
	fmt.Printf("PDF: %s (%d page(s))\n", doc.Path, doc.PageCount)
	return nil
}
