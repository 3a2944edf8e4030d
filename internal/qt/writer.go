package qt

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/transform"
)

const initialWriterCap = 32

// Writer encodes values into a growable buffer. Capacity doubles whenever an
// append would overflow it.
type Writer struct {
	buf []byte
	pos int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, initialWriterCap)}
}

func (w *Writer) alloc(n int) []byte {
	if len(w.buf) == 0 {
		w.buf = make([]byte, initialWriterCap)
	}
	size := len(w.buf)
	for w.pos+n > size {
		size <<= 1
	}
	if size != len(w.buf) {
		grown := make([]byte, size)
		copy(grown, w.buf[:w.pos])
		w.buf = grown
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b
}

// Int32 appends a big-endian int32.
func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

// Uint32 appends a big-endian uint32.
func (w *Writer) Uint32(v uint32) {
	binary.BigEndian.PutUint32(w.alloc(4), v)
}

// Int64 appends v as high then low big-endian halves.
func (w *Writer) Int64(v int64) { w.Uint64(uint64(v)) }

// Uint64 appends v as high then low big-endian halves.
func (w *Writer) Uint64(v uint64) {
	b := w.alloc(8)
	binary.BigEndian.PutUint32(b[:4], uint32(v>>32))
	binary.BigEndian.PutUint32(b[4:], uint32(v))
}

// Raw appends b verbatim.
func (w *Writer) Raw(b []byte) {
	copy(w.alloc(len(b)), b)
}

// ByteArray appends a length-prefixed QByteArray.
func (w *Writer) ByteArray(b []byte) {
	w.Uint32(uint32(len(b)))
	w.Raw(b)
}

// CharArray appends b as a QByteArray with a NUL terminator. An empty b is
// written as an empty array without terminator.
func (w *Writer) CharArray(b []byte) {
	if len(b) == 0 {
		w.Uint32(0)
		return
	}
	w.Uint32(uint32(len(b) + 1))
	w.Raw(b)
	w.alloc(1)[0] = 0
}

// QString appends s as a QString.
func (w *Writer) QString(s string) error {
	encoded, _, err := transform.Bytes(utf16BE.NewEncoder(), []byte(s))
	if err != nil {
		return fmt.Errorf("qt: encode string: %w", err)
	}
	w.ByteArray(encoded)
	return nil
}

// Len returns the number of bytes written.
func (w *Writer) Len() int { return w.pos }

// Bytes returns exactly the bytes written so far. Appending to the result
// never touches the writer's spare capacity.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.pos:w.pos]
}
