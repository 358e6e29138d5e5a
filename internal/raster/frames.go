// Package raster provides frame-level access to multi-frame TIFF scans and
// the JPEG page rendering shared by conversion and classification.
package raster

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"os"

	"golang.org/x/image/tiff"
)

// Frames provides per-frame access to a multi-frame TIFF. The tiff decoder
// reads a single image directory per call, so frame access works by
// re-pointing the header at the wanted directory and truncating its chain.
type Frames struct {
	path    string
	data    []byte
	order   binary.ByteOrder
	offsets []uint32
}

// OpenFrames reads a TIFF file and walks its frame directory chain.
// A file with zero frames yields EmptyRasterError.
func OpenFrames(path string) (*Frames, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Message: "reading raster file", Cause: err}
	}
	return parseFrames(path, data)
}

func parseFrames(path string, data []byte) (*Frames, error) {
	if len(data) < 8 {
		return nil, &DecodeError{Path: path, Message: "file too short for a TIFF header"}
	}

	var order binary.ByteOrder
	switch string(data[0:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return nil, &DecodeError{Path: path, Message: "unrecognized TIFF byte order mark"}
	}
	if order.Uint16(data[2:4]) != 42 {
		return nil, &DecodeError{Path: path, Message: "bad TIFF magic number"}
	}

	f := &Frames{path: path, data: data, order: order}
	seen := make(map[uint32]bool)
	offset := order.Uint32(data[4:8])
	for offset != 0 {
		if seen[offset] {
			return nil, &DecodeError{Path: path, Message: "cyclic frame directory chain"}
		}
		seen[offset] = true

		next, err := f.nextOffset(offset)
		if err != nil {
			return nil, err
		}
		f.offsets = append(f.offsets, offset)
		offset = next
	}

	if len(f.offsets) == 0 {
		return nil, &EmptyRasterError{Path: path}
	}
	return f, nil
}

// nextOffset reads the directory at off and returns the offset of the one
// after it; 0 terminates the chain.
func (f *Frames) nextOffset(off uint32) (uint32, error) {
	if int64(off)+2 > int64(len(f.data)) {
		return 0, &DecodeError{Path: f.path, Message: "frame directory offset past end of file"}
	}
	count := int64(f.order.Uint16(f.data[off : off+2]))
	pos := int64(off) + 2 + count*12
	if pos+4 > int64(len(f.data)) {
		return 0, &DecodeError{Path: f.path, Message: "truncated frame directory"}
	}
	return f.order.Uint32(f.data[pos : pos+4]), nil
}

// Count returns the number of frames in the raster.
func (f *Frames) Count() int {
	return len(f.offsets)
}

// Path returns the raster file the frames were read from.
func (f *Frames) Path() string {
	return f.path
}

// frameBytes returns a copy of the file with the header pointing at frame i
// and that frame's next-directory pointer zeroed, yielding a valid
// single-frame TIFF.
func (f *Frames) frameBytes(i int) []byte {
	buf := make([]byte, len(f.data))
	copy(buf, f.data)

	off := f.offsets[i]
	f.order.PutUint32(buf[4:8], off)

	count := int64(f.order.Uint16(buf[off : off+2]))
	pos := int64(off) + 2 + count*12
	f.order.PutUint32(buf[pos:pos+4], 0)
	return buf
}

// Frame decodes frame i into an image.
func (f *Frames) Frame(i int) (image.Image, error) {
	if i < 0 || i >= len(f.offsets) {
		return nil, &DecodeError{Path: f.path, Message: fmt.Sprintf("frame %d out of range (raster has %d)", i, len(f.offsets))}
	}

	img, err := tiff.Decode(bytes.NewReader(f.frameBytes(i)))
	if err != nil {
		return nil, &DecodeError{Path: f.path, Message: fmt.Sprintf("decoding frame %d", i), Cause: err}
	}
	return img, nil
}
