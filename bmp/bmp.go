// Package bmp reads the fixed-layout header subset of Windows bitmap
// files: the pixel data offset and the image dimensions. It does not
// decode palettes, compression or pixel formats.
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Header holds the bitmap header fields the converter relies on.
type Header struct {
	// PixelDataOffset is the offset from the start of the file to
	// the first pixel row.
	PixelDataOffset uint32
	Width           uint32
	Height          uint32
}

const (
	offPixelData = 0x0a
	offWidth     = 0x12
	offHeight    = 0x16

	headerLen = offHeight + 4
)

// ErrTruncated reports a file too short to contain the header fields.
var ErrTruncated = errors.New("bmp: truncated header")

// DecodeHeader reads the pixel data offset and the image dimensions,
// and seeks r to the start of the pixel data. The dimensions are not
// validated against any particular layout.
func DecodeHeader(r io.ReadSeeker) (Header, error) {
	var buf [headerLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, ErrTruncated
		}
		return Header{}, fmt.Errorf("bmp: %w", err)
	}
	bo := binary.LittleEndian
	h := Header{
		PixelDataOffset: bo.Uint32(buf[offPixelData:]),
		Width:           bo.Uint32(buf[offWidth:]),
		Height:          bo.Uint32(buf[offHeight:]),
	}
	if _, err := r.Seek(int64(h.PixelDataOffset), io.SeekStart); err != nil {
		return Header{}, fmt.Errorf("bmp: %w", err)
	}
	return h, nil
}
