package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fontbin.dev/atlas"
	"fontbin.dev/image/mono"
	"fontbin.dev/readmem"
)

// pattern is the synthetic scanline drawn for glyph index at row r.
func pattern(cw, index, r int) uint32 {
	return uint32(index*31+r*17) & (uint32(1)<<cw - 1)
}

// writeAtlasBMP renders a synthetic 128 glyph atlas and writes it as
// a 1-bit BMP, returning the file path and the derived geometry.
func writeAtlasBMP(t *testing.T, dir string, width, height int) (string, atlas.Geometry) {
	t.Helper()
	geom, err := atlas.NewGeometry(width, height)
	if err != nil {
		t.Fatal(err)
	}
	img := mono.New(image.Rect(0, 0, width, height))
	for index := 0; index < atlas.NumGlyphs; index++ {
		x0 := (index % 64) * geom.CharWidth
		y0 := index / 64 * geom.CharHeight
		for r := 0; r < geom.CharHeight; r++ {
			v := pattern(geom.CharWidth, index, r)
			for j := 0; j < geom.CharWidth; j++ {
				img.SetBit(x0+j, y0+r, v>>(geom.CharWidth-1-j)&1 == 1)
			}
		}
	}
	path := filepath.Join(dir, "atlas.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := mono.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path, geom
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	src, geom := writeAtlasBMP(t, dir, 384, 10)
	out := filepath.Join(dir, "font.bin")
	if err := run(src, out, readmem.Bin, ""); err != nil {
		t.Fatal(err)
	}
	lines := readLines(t, out)
	if want := atlas.NumGlyphs * geom.CharHeight; len(lines) != want {
		t.Fatalf("got %d lines, expected %d", len(lines), want)
	}
	for k, line := range lines {
		index, r := k/geom.CharHeight, k%geom.CharHeight
		want := fmt.Sprintf("%0*b", geom.CharWidth, pattern(geom.CharWidth, index, r))
		if line != want {
			t.Fatalf("line %d (glyph %d scanline %d): got %q, expected %q", k, index, r, line, want)
		}
	}
}

func TestConvertHex(t *testing.T) {
	dir := t.TempDir()
	src, geom := writeAtlasBMP(t, dir, 256, 12)
	out := filepath.Join(dir, "font.hex")
	if err := run(src, out, readmem.Hex, ""); err != nil {
		t.Fatal(err)
	}
	lines := readLines(t, out)
	if want := atlas.NumGlyphs * geom.CharHeight; len(lines) != want {
		t.Fatalf("got %d lines, expected %d", len(lines), want)
	}
	digits := (geom.CharWidth + 3) / 4
	for k, line := range lines {
		index, r := k/geom.CharHeight, k%geom.CharHeight
		want := fmt.Sprintf("%0*x", digits, pattern(geom.CharWidth, index, r))
		if line != want {
			t.Fatalf("line %d: got %q, expected %q", k, line, want)
		}
	}
}

func TestMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "font.bin")
	err := run(filepath.Join(dir, "nonexistent.bmp"), out, readmem.Bin, "")
	if err == nil {
		t.Fatal("missing input did not fail")
	}
	if got := exitCode(err); got != exitInput {
		t.Errorf("got exit code %d, expected %d", got, exitInput)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output file exists after failed conversion")
	}
}

func TestBadGeometry(t *testing.T) {
	dir := t.TempDir()
	img := mono.New(image.Rect(0, 0, 100, 2))
	src := filepath.Join(dir, "bad.bmp")
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := mono.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "font.bin")
	err = run(src, out, readmem.Bin, "")
	if !errors.Is(err, atlas.ErrGeometry) {
		t.Fatalf("got error %v, expected ErrGeometry", err)
	}
	if got := exitCode(err); got != exitGeometry {
		t.Errorf("got exit code %d, expected %d", got, exitGeometry)
	}
}

func TestTruncatedPixelData(t *testing.T) {
	dir := t.TempDir()
	src, _ := writeAtlasBMP(t, dir, 384, 10)
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, data[:len(data)-10], 0o600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "font.bin")
	err = run(src, out, readmem.Bin, "")
	if !errors.Is(err, atlas.ErrTruncated) {
		t.Fatalf("got error %v, expected ErrTruncated", err)
	}
	if got := exitCode(err); got != exitInput {
		t.Errorf("got exit code %d, expected %d", got, exitInput)
	}
	// Nothing may be emitted before the pixel data is fully read.
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output file exists after truncated input")
	}
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	src, geom := writeAtlasBMP(t, dir, 384, 10)
	out := filepath.Join(dir, "font.bin")
	preview := filepath.Join(dir, "preview.png")
	if err := run(src, out, readmem.Bin, preview); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(preview)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	want := image.Rect(0, 0, geom.Width*previewScale, geom.Height*previewScale)
	if img.Bounds() != want {
		t.Fatalf("got preview bounds %v, expected %v", img.Bounds(), want)
	}
	// Glyph 1, scanline 0 is 011111: its second pixel is lit, its
	// first is not.
	lit := img.At((geom.CharWidth+1)*previewScale, 0)
	if r, _, _, _ := lit.RGBA(); r == 0 {
		t.Error("lit atlas pixel renders black")
	}
	dark := img.At(geom.CharWidth*previewScale, 0)
	if r, _, _, _ := dark.RGBA(); r != 0 {
		t.Error("clear atlas pixel renders lit")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(writeError{errors.New("disk full")}); got != exitOutput {
		t.Errorf("got exit code %d for a write error, expected %d", got, exitOutput)
	}
	if got := exitCode(errors.New("anything else")); got != exitInput {
		t.Errorf("got exit code %d, expected %d", got, exitInput)
	}
}
