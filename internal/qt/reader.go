package qt

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/tdatakit/internal/buf"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// NullLength is the QByteArray length that marks a null array.
const NullLength = 0xFFFFFFFF

// utf16BE is the QString code unit encoding. Byte order marks are data.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Reader decodes values from an in-memory buffer. Slices it returns alias the
// underlying buffer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Ended reports whether every byte has been consumed.
func (r *Reader) Ended() bool { return r.pos >= len(r.buf) }

// Pos returns the cursor offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) next(n int) ([]byte, error) {
	b, ok := buf.Slice(r.buf, r.pos, n)
	if !ok {
		return nil, fmt.Errorf("qt: read %d bytes at offset %d of %d: %w", n, r.pos, len(r.buf), types.ErrTruncated)
	}
	r.pos += n
	return b[:n:n], nil
}

// Int32 reads a big-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint32 reads a big-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Int64 reads a 64-bit value stored as high then low big-endian halves.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Uint64 is the unsigned reading of Int64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	high := binary.BigEndian.Uint32(b[:4])
	low := binary.BigEndian.Uint32(b[4:])
	return uint64(high)<<32 | uint64(low), nil
}

// Raw returns the next n bytes verbatim.
func (r *Reader) Raw(n int) ([]byte, error) {
	return r.next(n)
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.next(n)
	return err
}

// SkipRecords advances past count fixed-size records of stride bytes.
func (r *Reader) SkipRecords(count, stride int) error {
	end, err := buf.CheckStride(len(r.buf), r.pos, count, stride)
	if err != nil {
		return fmt.Errorf("qt: skip %d records: %v: %w", count, err, types.ErrTruncated)
	}
	r.pos = end
	return nil
}

// ByteArray reads a length-prefixed QByteArray. Null and empty arrays both
// decode to an empty slice.
func (r *Reader) ByteArray() ([]byte, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if n == 0 || n == NullLength {
		return []byte{}, nil
	}
	if uint64(n) > uint64(r.Remaining()) {
		return nil, fmt.Errorf("qt: byte array of %d bytes at offset %d: %w", n, r.pos-4, types.ErrTruncated)
	}
	return r.next(int(n))
}

// CharArray reads a QByteArray and strips its NUL terminator.
func (r *Reader) CharArray() ([]byte, error) {
	b, err := r.ByteArray()
	if err != nil || len(b) == 0 {
		return b, err
	}
	return b[: len(b)-1 : len(b)-1], nil
}

// QString reads a QString and converts it to UTF-8.
func (r *Reader) QString() (string, error) {
	b, err := r.ByteArray()
	if err != nil {
		return "", err
	}
	if len(b)%2 != 0 {
		return "", fmt.Errorf("qt: string payload of %d bytes is not whole code units: %w", len(b), types.ErrTruncated)
	}
	out, _, err := transform.Bytes(utf16BE.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("qt: decode string: %w", err)
	}
	return string(out), nil
}
