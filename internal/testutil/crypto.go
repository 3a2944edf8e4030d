// Package testutil holds fixtures shared by the tdata package tests.
package testutil

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/joshuapare/tdatakit/pkg/crypto"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// Crypto is a deterministic crypto capability. Hashes and PBKDF2 are real;
// randomness is a counter stream and the message cipher is a keyed XOR so
// unit tests run without AES.
type Crypto struct {
	crypto.Provider

	mu      sync.Mutex
	counter uint64
}

var _ types.Crypto = (*Crypto)(nil)

// NewCrypto returns a Crypto whose random stream starts at seed.
func NewCrypto(seed uint64) *Crypto {
	return &Crypto{counter: seed}
}

// RandomBytes returns the next n bytes of the counter stream.
func (c *Crypto) RandomBytes(n int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, 0, n+sha1.Size)
	var ctr [8]byte
	for len(out) < n {
		binary.BigEndian.PutUint64(ctr[:], c.counter)
		c.counter++
		sum := sha1.Sum(ctr[:])
		out = append(out, sum[:]...)
	}
	return out[:n], nil
}

// MessageCipher returns a XOR keystream cipher derived from key and msgKey.
func (c *Crypto) MessageCipher(key, msgKey []byte, outgoing bool) (types.MessageCipher, error) {
	if len(key) != types.LocalKeySize {
		return nil, fmt.Errorf("testutil: key is %d bytes", len(key))
	}
	seed := sha1.Sum(append(append([]byte{}, key...), msgKey...))
	if outgoing {
		seed[0] ^= 0xff
	}
	return xorCipher(seed[:]), nil
}

type xorCipher []byte

func (x xorCipher) apply(src []byte) ([]byte, error) {
	if len(src)%16 != 0 {
		return nil, fmt.Errorf("testutil: input of %d bytes is not block aligned", len(src))
	}
	dst := make([]byte, len(src))
	for i := range src {
		dst[i] = src[i] ^ x[i%len(x)] ^ byte(i)
	}
	return dst, nil
}

func (x xorCipher) Encrypt(src []byte) ([]byte, error) { return x.apply(src) }
func (x xorCipher) Decrypt(src []byte) ([]byte, error) { return x.apply(src) }

// LocalKey returns a 256-byte key filled from seed.
func LocalKey(seed byte) []byte {
	k := make([]byte, types.LocalKeySize)
	for i := range k {
		k[i] = seed + byte(i)
	}
	return k
}
