package mono

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	paletteLen    = 2 * 4

	pixelDataOffset = fileHeaderLen + infoHeaderLen + paletteLen
)

// Encode writes m as an uncompressed 1-bit Windows bitmap with a
// two-entry black/white palette. Rows are written bottom-up and
// padded to 4-byte boundaries, per the file format.
func Encode(w io.Writer, m *Image) error {
	dx, dy := m.Rect.Dx(), m.Rect.Dy()
	rowLen := (dx + 7) / 8
	paddedRow := (rowLen + 3) &^ 3
	fileLen := pixelDataOffset + paddedRow*dy

	var hdr [pixelDataOffset]byte
	bo := binary.LittleEndian
	hdr[0], hdr[1] = 'B', 'M'
	bo.PutUint32(hdr[2:], uint32(fileLen))
	bo.PutUint32(hdr[10:], pixelDataOffset)
	bo.PutUint32(hdr[14:], infoHeaderLen)
	bo.PutUint32(hdr[18:], uint32(dx))
	bo.PutUint32(hdr[22:], uint32(dy))
	bo.PutUint16(hdr[26:], 1) // planes
	bo.PutUint16(hdr[28:], 1) // bits per pixel
	bo.PutUint32(hdr[34:], uint32(paddedRow*dy))
	bo.PutUint32(hdr[46:], 2) // palette entries
	// Palette entry 0 is black; entry 1 is white.
	hdr[58], hdr[59], hdr[60] = 0xff, 0xff, 0xff
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("mono: %w", err)
	}
	row := make([]byte, paddedRow)
	for y := dy - 1; y >= 0; y-- {
		copy(row, m.Pix[y*m.Stride:y*m.Stride+rowLen])
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("mono: %w", err)
		}
	}
	return nil
}
