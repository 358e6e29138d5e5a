package raster

import "fmt"

// EmptyRasterError indicates a raster file whose frame directory chain holds
// no frames, so there is nothing to convert.
type EmptyRasterError struct {
	Path string
}

func (e *EmptyRasterError) Error() string {
	return fmt.Sprintf("raster file has no frames: %s", e.Path)
}

// DecodeError indicates a raster file that could not be read or decoded.
type DecodeError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("raster decode failed at %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("raster decode failed at %s: %s", e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
