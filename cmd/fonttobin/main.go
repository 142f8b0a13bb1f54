// Command fonttobin converts a monochrome bitmap of an ASCII font
// atlas into a text file loadable with the Verilog $readmemb system
// task. The atlas holds the first 64 characters on its top row and
// the last 64 on its bottom row, with no space between characters
// and cells at most 32 pixels wide.
//
// The output contains one line per glyph scanline, 128*charHeight
// lines in total: the first line is the top scanline of character
// 0x00, the last the bottom scanline of character 0x7f.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"fontbin.dev/atlas"
	"fontbin.dev/bmp"
	"fontbin.dev/readmem"
)

var (
	output     = flag.String("o", "font.bin", "output path")
	format     = flag.String("format", "bin", "output radix ('bin', 'hex')")
	previewOut = flag.String("preview", "", "write a PNG preview of the decoded atlas to `path`")
)

// Exit statuses, distinguishable by build scripts.
const (
	exitInput    = 1 // missing or malformed source image
	exitOutput   = 2 // destination not writable
	exitGeometry = 3 // image does not describe a supported atlas
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: fonttobin [flags] font.bmp\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(exitInput)
	}
	var radix readmem.Radix
	switch *format {
	case "bin":
		radix = readmem.Bin
	case "hex":
		radix = readmem.Hex
	default:
		fmt.Fprintf(os.Stderr, "fonttobin: unknown format: %q\n", *format)
		os.Exit(exitInput)
	}
	if err := run(flag.Arg(0), *output, radix, *previewOut); err != nil {
		fmt.Fprintf(os.Stderr, "fonttobin: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var werr writeError
	switch {
	case errors.Is(err, atlas.ErrGeometry):
		return exitGeometry
	case errors.As(err, &werr):
		return exitOutput
	default:
		return exitInput
	}
}

// writeError marks failures on the destination file so main can
// report a distinct exit status.
type writeError struct{ err error }

func (e writeError) Error() string { return e.err.Error() }
func (e writeError) Unwrap() error { return e.err }

func run(path, out string, radix readmem.Radix, preview string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	hdr, err := bmp.DecodeHeader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	geom, err := atlas.NewGeometry(int(hdr.Width), int(hdr.Height))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	buf, err := atlas.ReadBuffer(f, geom)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := writeFont(out, buf, radix); err != nil {
		// Leave no partial output behind.
		os.Remove(out)
		return err
	}
	if preview != "" {
		if err := writePreview(preview, buf); err != nil {
			return writeError{err}
		}
	}
	return nil
}

// writeFont emits every scanline of every glyph, in glyph order, top
// scanline first.
func writeFont(out string, buf *atlas.Buffer, radix readmem.Radix) (cerr error) {
	dst, err := os.Create(out)
	if err != nil {
		return writeError{err}
	}
	defer func() {
		if err := dst.Close(); err != nil && cerr == nil {
			cerr = writeError{err}
		}
	}()
	w := readmem.NewWriter(dst, radix, buf.Geometry().CharWidth)
	for i := 0; i < atlas.NumGlyphs; i++ {
		lines, err := buf.Glyph(i)
		if err != nil {
			return err
		}
		for _, v := range lines {
			if err := w.WriteValue(v); err != nil {
				return writeError{err}
			}
		}
	}
	if err := w.Flush(); err != nil {
		return writeError{err}
	}
	return nil
}
