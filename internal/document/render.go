package document

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rfsc/georef-verifier/internal/raster"

	_ "image/png" // extracted page images may arrive as PNG
)

// PageRenderer renders single document pages to JPEG files for visual
// analysis. Callers own the returned files and should remove them once the
// page has been processed; Close releases the renderer's scratch space.
type PageRenderer interface {
	PageCount() int
	RenderPage(ctx context.Context, index int) (string, error)
	Close() error
}

// FrameRenderer renders pages straight from the TIFF frames backing a
// converted document.
type FrameRenderer struct {
	frames  *raster.Frames
	dir     string
	quality int
}

// NewFrameRenderer opens the raster at rasterPath for page rendering.
func NewFrameRenderer(rasterPath, scratchDir string, quality int) (*FrameRenderer, error) {
	frames, err := raster.OpenFrames(rasterPath)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp(scratchDir, "render-*")
	if err != nil {
		return nil, &RenderError{Path: rasterPath, Message: "creating scratch directory", Cause: err}
	}
	return &FrameRenderer{frames: frames, dir: dir, quality: quality}, nil
}

func (r *FrameRenderer) PageCount() int {
	return r.frames.Count()
}

func (r *FrameRenderer) RenderPage(ctx context.Context, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return raster.WriteFrameJPEG(r.frames, index, r.dir, r.quality)
}

func (r *FrameRenderer) Close() error {
	return os.RemoveAll(r.dir)
}

// ImageRenderer renders pages of a scanned PDF by pulling out the page's
// embedded scan image. It covers documents supplied directly as PDFs, where
// no source raster exists.
type ImageRenderer struct {
	path    string
	dir     string
	pages   int
	quality int
}

// NewImageRenderer opens the scanned PDF at path for page rendering.
func NewImageRenderer(path, scratchDir string, quality int) (*ImageRenderer, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp(scratchDir, "render-*")
	if err != nil {
		return nil, &RenderError{Path: path, Message: "creating scratch directory", Cause: err}
	}
	return &ImageRenderer{path: path, dir: dir, pages: doc.PageCount, quality: quality}, nil
}

func (r *ImageRenderer) PageCount() int {
	return r.pages
}

func (r *ImageRenderer) RenderPage(ctx context.Context, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if index < 0 || index >= r.pages {
		return "", &RenderError{Path: r.path, Page: index, Message: "page out of range"}
	}

	pageDir := filepath.Join(r.dir, fmt.Sprintf("page-%d", index+1))
	if err := os.MkdirAll(pageDir, 0o755); err != nil {
		return "", &RenderError{Path: r.path, Page: index, Message: "creating page directory", Cause: err}
	}

	spec := []string{strconv.Itoa(index + 1)}
	if err := api.ExtractImagesFile(r.path, pageDir, spec, nil); err != nil {
		return "", &RenderError{Path: r.path, Page: index, Message: "extracting page image", Cause: err}
	}

	img, err := largestFile(pageDir)
	if err != nil {
		return "", &RenderError{Path: r.path, Page: index, Message: "no embedded image on page", Cause: err}
	}

	ext := strings.ToLower(filepath.Ext(img))
	if ext == ".jpg" || ext == ".jpeg" {
		return img, nil
	}
	return r.reencode(img, index)
}

// largestFile picks the biggest file in dir. Scanned pages carry one full
// page image; when stamps or logos share the page, the scan dominates.
func largestFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var best string
	var bestSize int64 = -1
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = filepath.Join(dir, entry.Name())
			bestSize = info.Size()
		}
	}
	if best == "" {
		return "", fmt.Errorf("no files in %s", dir)
	}
	return best, nil
}

func (r *ImageRenderer) reencode(path string, index int) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", &RenderError{Path: r.path, Page: index, Message: "opening page image", Cause: err}
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return "", &RenderError{Path: r.path, Page: index, Message: "decoding page image", Cause: err}
	}

	data, err := raster.EncodeJPEG(img, r.quality)
	if err != nil {
		return "", &RenderError{Path: r.path, Page: index, Message: "re-encoding page image", Cause: err}
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", &RenderError{Path: r.path, Page: index, Message: "writing page image", Cause: err}
	}
	return out, nil
}

func (r *ImageRenderer) Close() error {
	return os.RemoveAll(r.dir)
}
