package document

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pageSpecs maps zero-based page indices to the one-based page selectors the
// PDF library expects, preserving order and duplicates.
func pageSpecs(indices []int) []string {
	specs := make([]string, len(indices))
	for i, idx := range indices {
		specs[i] = strconv.Itoa(idx + 1)
	}
	return specs
}

// Extract writes the pages of src named by the zero-based indices into a new
// PDF at outPath, in the order given. An empty index list is rejected with
// EmptyExtractionError.
func Extract(ctx context.Context, src string, indices []int, outPath string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, &EmptyExtractionError{Path: src}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, &ExtractionError{Path: src, Message: "creating output directory", Cause: err}
	}
	if err := api.CollectFile(src, outPath, pageSpecs(indices), nil); err != nil {
		return nil, &ExtractionError{Path: src, Message: "collecting pages", Cause: err}
	}

	return Load(outPath)
}
