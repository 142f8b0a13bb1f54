// Package readmem writes memory-initialization text in the format
// consumed by the Verilog $readmemb and $readmemh system tasks: one
// fixed-width value per line, most significant digit first.
package readmem

import (
	"bufio"
	"fmt"
	"io"
)

// Radix selects the output base.
type Radix int

const (
	Bin Radix = iota // one character per bit, for $readmemb
	Hex              // zero-padded hexadecimal, for $readmemh
)

// A Writer emits one value per line, sized to a fixed number of
// significant bits. Output is buffered; call Flush when done.
type Writer struct {
	w     *bufio.Writer
	radix Radix
	bits  int
	line  []byte
}

// NewWriter returns a Writer emitting values of the given bit width
// in the given radix.
func NewWriter(w io.Writer, radix Radix, bits int) *Writer {
	return &Writer{
		w:     bufio.NewWriter(w),
		radix: radix,
		bits:  bits,
	}
}

// WriteValue writes v as one line. Bin writes exactly the configured
// number of '0'/'1' characters; Hex writes one digit per four bits,
// rounded up. Bits of v above the configured width are ignored.
func (w *Writer) WriteValue(v uint32) error {
	w.line = w.line[:0]
	switch w.radix {
	case Hex:
		digits := (w.bits + 3) / 4
		w.line = fmt.Appendf(w.line, "%0*x", digits, v&mask(w.bits))
	default:
		for i := w.bits - 1; i >= 0; i-- {
			w.line = append(w.line, byte('0'+v>>i&1))
		}
	}
	w.line = append(w.line, '\n')
	_, err := w.w.Write(w.line)
	return err
}

// Flush writes any buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func mask(n int) uint32 {
	return uint32(1)<<n - 1
}
