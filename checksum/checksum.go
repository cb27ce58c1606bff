package checksum

import (
	"io"

	"github.com/hupe1980/crcgo"
)

// Writer wraps an io.Writer and computes a running CRC-32 checksum of
// everything written through it.
type Writer struct {
	w io.Writer
	h *crcgo.Hasher
}

// NewWriter creates a new checksumming writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: w,
		h: crcgo.New(),
	}
}

// Write implements io.Writer. Only bytes accepted by the underlying writer
// are folded into the checksum.
func (cw *Writer) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		cw.h.Update(p[:n])
	}
	return n, err
}

// Sum returns the checksum of the bytes written so far.
func (cw *Writer) Sum() uint32 {
	return cw.h.Sum32()
}

// Size returns the number of bytes written so far.
func (cw *Writer) Size() int64 {
	return cw.h.Amount()
}

// Reset resets the checksum to its initial state.
func (cw *Writer) Reset() {
	cw.h.Reset()
}

// Reader wraps an io.Reader and computes a running CRC-32 checksum of
// everything read through it.
type Reader struct {
	r io.Reader
	h *crcgo.Hasher
}

// NewReader creates a new checksumming reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r: r,
		h: crcgo.New(),
	}
}

// Read implements io.Reader.
func (cr *Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.h.Update(p[:n])
	}
	return n, err
}

// Sum returns the checksum of the bytes read so far.
func (cr *Reader) Sum() uint32 {
	return cr.h.Sum32()
}

// Size returns the number of bytes read so far.
func (cr *Reader) Size() int64 {
	return cr.h.Amount()
}

// Reset resets the checksum to its initial state.
func (cr *Reader) Reset() {
	cr.h.Reset()
}

// Verify checks if the checksum of the bytes read so far matches expected.
func (cr *Reader) Verify(expected uint32) error {
	return verify(expected, cr.Sum())
}

// Verify checks if the checksum of the bytes written so far matches expected.
func (cw *Writer) Verify(expected uint32) error {
	return verify(expected, cw.Sum())
}

func verify(expected, actual uint32) error {
	if actual != expected {
		return &crcgo.ChecksumMismatchError{
			Expected: expected,
			Actual:   actual,
		}
	}
	return nil
}
