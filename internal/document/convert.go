package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rfsc/georef-verifier/internal/raster"
)

// Converter turns multi-frame TIFF scans into one-page-per-frame PDFs.
type Converter struct {
	// ScratchDir hosts the intermediate page JPEGs. Empty means the
	// system temp directory.
	ScratchDir string
	// Quality is the JPEG quality for rasterized pages.
	Quality int
}

// Convert renders every frame of the raster at rasterPath into outPath, one
// PDF page per frame in frame order. Intermediate page images are removed
// whether or not conversion succeeds.
func (c *Converter) Convert(ctx context.Context, rasterPath, outPath string) (*Document, error) {
	frames, err := raster.OpenFrames(rasterPath)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(c.ScratchDir, "rasterize-*")
	if err != nil {
		return nil, &ConversionError{Path: rasterPath, Message: "creating scratch directory", Cause: err}
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("Warning: could not remove scratch directory %s: %v\n", dir, err)
		}
	}()

	pages := make([]string, 0, frames.Count())
	for i := 0; i < frames.Count(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := raster.WriteFrameJPEG(frames, i, dir, c.Quality)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, &ConversionError{Path: rasterPath, Message: "creating output directory", Cause: err}
	}
	if err := api.ImportImagesFile(pages, outPath, nil, nil); err != nil {
		return nil, &ConversionError{Path: rasterPath, Message: "assembling PDF", Cause: err}
	}

	return Load(outPath)
}
