package document

import "fmt"

// InvalidDocumentError indicates a file that is not a readable PDF.
type InvalidDocumentError struct {
	Path  string
	Cause error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("not a readable PDF: %s: %v", e.Path, e.Cause)
}

func (e *InvalidDocumentError) Unwrap() error {
	return e.Cause
}

// ConversionError indicates a raster-to-PDF conversion failure.
type ConversionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversion failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("conversion failed for %s: %s", e.Path, e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// EmptyExtractionError indicates a page extraction that named no pages.
type EmptyExtractionError struct {
	Path string
}

func (e *EmptyExtractionError) Error() string {
	return fmt.Sprintf("no pages selected for extraction from %s", e.Path)
}

// ExtractionError indicates a page extraction that could not be completed.
type ExtractionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("page extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("page extraction failed for %s: %s", e.Path, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// RenderError indicates a page that could not be rendered to an image.
type RenderError struct {
	Path    string
	Page    int
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed for page %d of %s: %s: %v", e.Page+1, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed for page %d of %s: %s", e.Page+1, e.Path, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
