package document

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/rfsc/georef-verifier/internal/raster"
)

func writeJPEG(t *testing.T, dir, name string, shade uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 24, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			img.SetGray(x, y, color.Gray{Y: shade + uint8(x)})
		}
	}
	data, err := raster.EncodeJPEG(img, 90)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func twoPagePDF(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	pages := []string{
		writeJPEG(t, dir, "a.jpg", 10),
		writeJPEG(t, dir, "b.jpg", 120),
	}
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, api.ImportImagesFile(pages, path, nil, nil))
	return path
}

func singleFrameTIFF(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 24, 16))
	var buf bytes.Buffer
	require.NoError(t, tiff.Encode(&buf, img, nil))

	path := filepath.Join(t.TempDir(), "scan.tif")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestPageSpecs(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
		want    []string
	}{
		{name: "ordered", indices: []int{0, 2, 9}, want: []string{"1", "3", "10"}},
		{name: "duplicates preserved", indices: []int{2, 2}, want: []string{"3", "3"}},
		{name: "caller order preserved", indices: []int{4, 0}, want: []string{"5", "1"}},
		{name: "empty", indices: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageSpecs(tt.indices))
		})
	}
}

func TestExtractRejectsEmptySelection(t *testing.T) {
	_, err := Extract(context.Background(), "in.pdf", nil, "out.pdf")
	require.Error(t, err)

	var emptyErr *EmptyExtractionError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "in.pdf", emptyErr.Path)
}

func TestExtractCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, "in.pdf", []int{0}, "out.pdf")
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractPages(t *testing.T) {
	src := twoPagePDF(t)
	outDir := t.TempDir()

	t.Run("single page", func(t *testing.T) {
		out := filepath.Join(outDir, "second.pdf")
		doc, err := Extract(context.Background(), src, []int{1}, out)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.PageCount)
		assert.Equal(t, out, doc.Path)
	})

	t.Run("duplicate pages kept", func(t *testing.T) {
		out := filepath.Join(outDir, "doubled.pdf")
		doc, err := Extract(context.Background(), src, []int{0, 0}, out)
		require.NoError(t, err)
		assert.Equal(t, 2, doc.PageCount)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)

	var invalidErr *InvalidDocumentError
	require.ErrorAs(t, err, &invalidErr)
}

func TestConvertSingleFrame(t *testing.T) {
	src := singleFrameTIFF(t)
	out := filepath.Join(t.TempDir(), "out", "doc.pdf")

	conv := &Converter{Quality: 90}
	doc, err := conv.Convert(context.Background(), src, out)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount)
	assert.FileExists(t, out)
}

func TestConvertEmptyRaster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.tif")
	// Valid header whose first frame directory offset is zero.
	require.NoError(t, os.WriteFile(path, []byte{'I', 'I', 42, 0, 0, 0, 0, 0}, 0o644))

	conv := &Converter{}
	_, err := conv.Convert(context.Background(), path, filepath.Join(dir, "out.pdf"))
	require.Error(t, err)

	var emptyErr *raster.EmptyRasterError
	require.ErrorAs(t, err, &emptyErr)
}

func TestConvertCancelledContext(t *testing.T) {
	src := singleFrameTIFF(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &Converter{}
	_, err := conv.Convert(ctx, src, filepath.Join(t.TempDir(), "out.pdf"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFrameRenderer(t *testing.T) {
	r, err := NewFrameRenderer(singleFrameTIFF(t), "", 90)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 1, r.PageCount())

	path, err := r.RenderPage(context.Background(), 0)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	require.NoError(t, r.Close())
	assert.NoFileExists(t, path)
}

func TestImageRenderer(t *testing.T) {
	r, err := NewImageRenderer(twoPagePDF(t), "", 90)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 2, r.PageCount())

	for page := 0; page < 2; page++ {
		path, err := r.RenderPage(context.Background(), page)
		require.NoError(t, err)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = jpeg.Decode(bytes.NewReader(raw))
		require.NoError(t, err, "page %d should render to a JPEG", page)
	}
}

func TestImageRendererPageOutOfRange(t *testing.T) {
	r, err := NewImageRenderer(twoPagePDF(t), "", 90)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.RenderPage(context.Background(), 5)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, 5, renderErr.Page)
}
