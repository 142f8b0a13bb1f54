// Package atlas extracts per-character scanlines from a monochrome
// font atlas image holding the 128 ASCII glyphs in two rows of 64,
// with no padding between cells.
//
// The pixel buffer is addressed as 32-bit words with the leftmost
// pixel of each 32-pixel span in bit 31. Glyph scanlines are
// arbitrary-width bit spans within that stream and may straddle a
// word boundary; [Buffer.Glyph] reassembles them.
package atlas

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"fontbin.dev/image/mono"
)

// NumGlyphs is the number of character cells in an atlas.
const NumGlyphs = 128

const (
	glyphsPerRow = 64
	atlasRows    = 2

	// wordBits is the extraction word size. A glyph scanline spans at
	// most two words, so CharWidth is capped at wordBits.
	wordBits = 32

	// maxHeight keeps a corrupt header from sizing an absurd buffer.
	maxHeight = 1 << 14
)

// ErrGeometry reports image dimensions that do not describe a 64x2
// glyph atlas extractable with 32-bit words.
var ErrGeometry = errors.New("atlas: unsupported geometry")

// ErrTruncated reports pixel data shorter than the header dimensions
// call for.
var ErrTruncated = errors.New("atlas: truncated pixel data")

// Geometry describes one atlas: the character cell size and the
// number of 32-bit words per image row.
type Geometry struct {
	Width, Height int

	CharWidth    int
	CharHeight   int
	WordsPerLine int
}

// NewGeometry derives the cell geometry from the image dimensions.
// Width must be a positive multiple of 64 with cells no wider than
// 32 pixels, and height a positive even number; every image row then
// starts on a word boundary.
func NewGeometry(width, height int) (Geometry, error) {
	switch {
	case width <= 0 || width%glyphsPerRow != 0:
		return Geometry{}, fmt.Errorf("%w: width %d is not a positive multiple of %d", ErrGeometry, width, glyphsPerRow)
	case width/glyphsPerRow > wordBits:
		return Geometry{}, fmt.Errorf("%w: %d pixel wide characters exceed the %d bit limit", ErrGeometry, width/glyphsPerRow, wordBits)
	case height <= 0 || height%atlasRows != 0:
		return Geometry{}, fmt.Errorf("%w: height %d is not a positive multiple of %d", ErrGeometry, height, atlasRows)
	case height > maxHeight:
		return Geometry{}, fmt.Errorf("%w: height %d exceeds %d", ErrGeometry, height, maxHeight)
	}
	charWidth := width / glyphsPerRow
	bytesPerLine := charWidth * glyphsPerRow / 8
	return Geometry{
		Width:        width,
		Height:       height,
		CharWidth:    charWidth,
		CharHeight:   height / atlasRows,
		WordsPerLine: bytesPerLine / 4,
	}, nil
}

// Buffer is a normalized pixel buffer: Height rows of WordsPerLine
// words, row 0 the topmost image row, bit 31 of each word the
// leftmost pixel of its span.
type Buffer struct {
	geom  Geometry
	words []uint32
}

// ReadBuffer reads WordsPerLine*Height words of pixel data from r.
// Source rows are stored bottom-up, so the first row read becomes
// the last row of the buffer. The stream is little-endian; decoding
// each word big-endian is the byte swap that moves the first pixel
// byte to bits 31..24.
func ReadBuffer(r io.Reader, g Geometry) (*Buffer, error) {
	words := make([]uint32, g.WordsPerLine*g.Height)
	row := make([]byte, g.WordsPerLine*4)
	for y := g.Height - 1; y >= 0; y-- {
		if _, err := io.ReadFull(r, row); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrTruncated
			}
			return nil, fmt.Errorf("atlas: %w", err)
		}
		for x := 0; x < g.WordsPerLine; x++ {
			words[y*g.WordsPerLine+x] = binary.BigEndian.Uint32(row[4*x:])
		}
	}
	return &Buffer{geom: g, words: words}, nil
}

// Geometry returns the geometry the buffer was read with.
func (b *Buffer) Geometry() Geometry {
	return b.geom
}

// Image returns the buffer as a top-down 1-bit image.
func (b *Buffer) Image() *mono.Image {
	g := b.geom
	img := mono.New(image.Rect(0, 0, g.Width, g.Height))
	for i, w := range b.words {
		binary.BigEndian.PutUint32(img.Pix[4*i:], w)
	}
	return img
}
