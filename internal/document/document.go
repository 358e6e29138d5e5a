// Package document converts raster scans into PDF documents and carves
// page subsets out of them.
package document

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is a PDF on disk together with its page count.
type Document struct {
	Path      string
	PageCount int
}

// Load opens an existing PDF and reads its page count.
func Load(path string) (*Document, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, &InvalidDocumentError{Path: path, Cause: err}
	}
	return &Document{Path: path, PageCount: count}, nil
}
