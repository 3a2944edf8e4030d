package tdata

import (
	"strconv"
)

const filePartAlphabet = "0123456789ABCDEF"

// DataNameKeySize is the length of an account data key.
const DataNameKeySize = 8

// DataName returns the account base name for idx: "data", "data#2", ...
func (s *Session) DataName(idx int) string {
	if idx == 0 {
		return s.opts.DataKey
	}
	return s.opts.DataKey + "#" + strconv.Itoa(idx+1)
}

// DataNameKey returns the first eight bytes of MD5(DataName(idx)).
func (s *Session) DataNameKey(idx int) []byte {
	h := s.opts.Crypto.NewMD5()
	h.Write([]byte(s.DataName(idx)))
	return h.Sum(nil)[:DataNameKeySize]
}

// AccountDir is the directory holding the account's map, with a trailing
// slash.
func (s *Session) AccountDir(idx int) string {
	return ToFilePart(s.DataNameKey(idx)) + "/"
}

// AccountFile joins name under the account directory of idx.
func (s *Session) AccountFile(idx int, name string) string {
	return s.AccountDir(idx) + name
}

// ToFilePart renders the first eight bytes of key as hex with each byte's
// nibbles swapped, the naming used for account directories and files.
// Digits are uppercase, as in folders written by the desktop client
// (D877F783D5D3EF8C for "data"), not lowercase.
func ToFilePart(key []byte) string {
	out := make([]byte, 0, 2*DataNameKeySize)
	for i := 0; i < DataNameKeySize && i < len(key); i++ {
		b := key[i]
		out = append(out, filePartAlphabet[b&0x0f], filePartAlphabet[b>>4])
	}
	return string(out)
}

// FileKeyName renders a 64-bit file key from the map the same way. The key
// is taken in little-endian byte order.
func FileKeyName(key uint64) string {
	var b [DataNameKeySize]byte
	for i := range b {
		b[i] = byte(key >> (8 * i))
	}
	return ToFilePart(b[:])
}
