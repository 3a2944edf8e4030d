// Package buf contains bounds and byte-order helpers shared by the tdata
// codecs.
package buf

import "encoding/binary"

// Int32Bytes encodes v as four bytes in the given order. The container
// checksum and the local-encryption length prefix both use this layout.
func Int32Bytes(order binary.ByteOrder, v int32) []byte {
	b := make([]byte, 4)
	order.PutUint32(b, uint32(v))
	return b
}

// Int32At reads an int32 at off in the given order. Returns ok = false when
// fewer than four bytes are available.
func Int32At(order binary.ByteOrder, b []byte, off int) (int32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return int32(order.Uint32(s)), true
}
