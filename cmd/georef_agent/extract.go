package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfsc/georef-verifier/internal/document"
	"github.com/rfsc/georef-verifier/internal/selection"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a set of pages from a PDF into a new PDF",
	Long:  "Extract copies the listed pages of a PDF, in the order given, into a new document. Pages are one-based and may be written as a comma list with ranges, e.g. \"1,3-5\".",
	RunE:  runExtract,
}

var (
	extractPDF   string
	extractPages string
	extractOut   string
)

func init() {
	extractCmd.Flags().StringVar(&extractPDF, "pdf", "", "Path to the source PDF (required)")
	extractCmd.Flags().StringVar(&extractPages, "pages", "", "Pages to extract, e.g. \"1,3-5\" (required)")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "Path of the PDF to write (required)")

	extractCmd.MarkFlagRequired("pdf")
	extractCmd.MarkFlagRequired("pages")
	extractCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	src, err := document.Load(extractPDF)
	if err != nil {
		return err
	}
	indices, skipped, err := selection.Select(extractPages, src.PageCount)
	if err != nil {
		return err
	}
	for _, page := range skipped {
		fmt.Printf("Warning: page %d is outside the document (%d pages), skipping\n", page, src.PageCount)
	}

	doc, err := document.Extract(ctx, extractPDF, indices, extractOut)
	if err != nil {
		return err
	}

	fmt.Printf("Successfully extracted %d page(s)\n", doc.PageCount)
	fmt.Printf("PDF: %s\n", doc.Path)
	return nil
}
