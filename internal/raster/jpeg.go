package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"
)

// DefaultQuality is the JPEG quality used when a caller does not override it.
const DefaultQuality = 85

// EncodeJPEG re-encodes img as a baseline JPEG. Scanned pages arrive as
// bilevel or grayscale frames; drawing onto an RGBA canvas first gives every
// page the same three-channel color model in the output document.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFrameJPEG decodes frame i of f and writes it to dir as a JPEG,
// returning the written path.
func WriteFrameJPEG(f *Frames, i int, dir string, quality int) (string, error) {
	img, err := f.Frame(i)
	if err != nil {
		return "", err
	}

	data, err := EncodeJPEG(img, quality)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("page_%04d.jpg", i+1))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing page image: %w", err)
	}
	return path, nil
}
