package main

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"fontbin.dev/atlas"
)

// previewScale enlarges the atlas so individual pixels are visible.
const previewScale = 4

// writePreview renders the normalized (top-down, endian-corrected)
// atlas to a PNG, scaled up with nearest-neighbor so each source
// pixel becomes a previewScale sized block.
func writePreview(path string, buf *atlas.Buffer) (cerr error) {
	src := buf.Image()
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*previewScale, b.Dy()*previewScale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && cerr == nil {
			cerr = err
		}
	}()
	return png.Encode(f, dst)
}
