package report

import "fmt"

// RenderError represents a failure producing the HTML report
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExportError represents a failure writing a spreadsheet or report file
type ExportError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error for %s: %s", e.Path, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// ImportError represents a failure reading a previously exported workbook
type ImportError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("import error for %s: %s", e.Path, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
