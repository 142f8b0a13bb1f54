package atlas

import "fmt"

// start returns the bit position of the glyph's top left pixel,
// treating the buffer as one flat stream of WordsPerLine*32 bits per
// row. Characters 0-63 sit on the top half of the image, 64-127 on
// the bottom half, CharHeight rows down.
func (g Geometry) start(index int) int {
	bits := (index % glyphsPerRow) * g.CharWidth
	if index >= glyphsPerRow {
		bits += g.CharHeight * g.WordsPerLine * wordBits
	}
	return bits
}

// Glyph returns the CharHeight scanlines of the glyph at index, top
// scanline first. Each scanline holds CharWidth significant bits,
// right-justified, with the leftmost pixel in the most significant
// bit.
func (b *Buffer) Glyph(index int) ([]uint32, error) {
	if index < 0 || index >= NumGlyphs {
		return nil, fmt.Errorf("atlas: glyph index %d out of range", index)
	}
	g := b.geom
	lines := make([]uint32, g.CharHeight)
	pos := g.start(index)
	for i := range lines {
		v, err := b.scanline(pos, g.CharWidth)
		if err != nil {
			return nil, err
		}
		lines[i] = v
		pos += g.WordsPerLine * wordBits
	}
	return lines, nil
}

// scanline extracts width bits starting at bit position pos. Bit
// offsets count from the most significant bit, so offset 0 within a
// word is bit 31.
func (b *Buffer) scanline(pos, width int) (uint32, error) {
	word := pos / wordBits
	off := pos % wordBits
	if off+width <= wordBits {
		// The span lies within a single word.
		if word >= len(b.words) {
			return 0, fmt.Errorf("atlas: scanline at bit %d outside pixel buffer", pos)
		}
		return b.words[word] >> (wordBits - width - off) & mask(width), nil
	}
	// The span straddles a word boundary: the low 32-off bits of the
	// first word carry the left part, the remaining bits come from
	// the top of the next word.
	if word+1 >= len(b.words) {
		return 0, fmt.Errorf("atlas: scanline at bit %d outside pixel buffer", pos)
	}
	hi := wordBits - off
	lo := width - hi
	left := b.words[word] & mask(hi)
	right := b.words[word+1] >> (wordBits - lo)
	return left<<lo | right, nil
}

func mask(n int) uint32 {
	return uint32(1)<<n - 1
}
