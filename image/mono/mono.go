// Package mono implements a 1-bit-per-pixel [image.Image] with rows
// packed most significant bit first, the pixel layout of monochrome
// bitmap files.
package mono

import (
	"image"
	"image/color"
)

type Image struct {
	// Pix holds packed pixels, 8 per byte, leftmost pixel in the
	// most significant bit.
	Pix    []byte
	Stride int // bytes per row
	Rect   image.Rectangle
}

func New(r image.Rectangle) *Image {
	stride := (r.Dx() + 7) / 8
	return &Image{
		Pix:    make([]byte, stride*r.Dy()),
		Stride: stride,
		Rect:   r,
	}
}

func (p *Image) ColorModel() color.Model { return color.GrayModel }

func (p *Image) Bounds() image.Rectangle { return p.Rect }

func (p *Image) At(x, y int) color.Color {
	return p.GrayAt(x, y)
}

func (p *Image) GrayAt(x, y int) color.Gray {
	if p.BitAt(x, y) {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{}
}

// BitAt reports whether the pixel at (x, y) is set. Pixels outside
// the bounds are clear.
func (p *Image) BitAt(x, y int) bool {
	if !(image.Point{x, y}).In(p.Rect) {
		return false
	}
	i, mask := p.pixOffset(x, y)
	return p.Pix[i]&mask != 0
}

func (p *Image) Set(x, y int, c color.Color) {
	g := color.GrayModel.Convert(c).(color.Gray)
	p.SetBit(x, y, g.Y >= 0x80)
}

func (p *Image) SetBit(x, y int, on bool) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	i, mask := p.pixOffset(x, y)
	if on {
		p.Pix[i] |= mask
	} else {
		p.Pix[i] &^= mask
	}
}

// pixOffset returns the byte index of (x, y) along with the mask
// selecting the pixel within the byte.
func (p *Image) pixOffset(x, y int) (int, byte) {
	off := image.Pt(x, y).Sub(p.Rect.Min)
	return off.Y*p.Stride + off.X/8, 0x80 >> (off.X % 8)
}
