// Package crypto is the default crypto capability: standard library hashes,
// PBKDF2 from golang.org/x/crypto, and AES-IGE keyed with the MTProto 1.0
// message key schedule.
package crypto

import (
	"crypto/aes"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/gotd/ige"
	"golang.org/x/crypto/pbkdf2"

	"github.com/joshuapare/tdatakit/pkg/types"
)

// MsgKeySize is the length of the message key (tag) keying each cipher.
const MsgKeySize = 16

// Provider implements types.Crypto.
type Provider struct{}

var _ types.Crypto = Provider{}

// Default returns the standard provider.
func Default() types.Crypto { return Provider{} }

func (Provider) NewMD5() hash.Hash { return md5.New() }

func (Provider) SHA1(data []byte) []byte {
	sum := sha1.Sum(data)
	return sum[:]
}

func (Provider) SHA512(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

func (Provider) PBKDF2(password, salt []byte, iterations, keyLen int, algo types.HashAlgo) []byte {
	h := sha1.New
	if algo == types.SHA512 {
		h = sha512.New
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, h)
}

func (Provider) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("crypto: random: %w", err)
	}
	return b, nil
}

func (Provider) MessageCipher(key, msgKey []byte, outgoing bool) (types.MessageCipher, error) {
	aesKey, aesIV, err := OldMtpKeyIV(key, msgKey, outgoing)
	if err != nil {
		return nil, err
	}
	return &igeCipher{key: aesKey, iv: aesIV}, nil
}

// OldMtpKeyIV derives the AES-256 key and 32-byte IGE iv from an auth key and
// message key using the MTProto 1.0 schedule. The incoming direction reads the
// auth key at offset 8.
func OldMtpKeyIV(authKey, msgKey []byte, outgoing bool) (aesKey, aesIV []byte, err error) {
	if len(authKey) < types.LocalKeySize {
		return nil, nil, fmt.Errorf("crypto: auth key is %d bytes, want %d", len(authKey), types.LocalKeySize)
	}
	if len(msgKey) != MsgKeySize {
		return nil, nil, fmt.Errorf("crypto: message key is %d bytes, want %d", len(msgKey), MsgKeySize)
	}
	x := 8
	if outgoing {
		x = 0
	}

	var data [48]byte
	copy(data[:16], msgKey)
	copy(data[16:], authKey[x:x+32])
	sha1A := sha1.Sum(data[:])

	copy(data[:16], authKey[x+32:x+48])
	copy(data[16:32], msgKey)
	copy(data[32:], authKey[x+48:x+64])
	sha1B := sha1.Sum(data[:])

	copy(data[:32], authKey[x+64:x+96])
	copy(data[32:], msgKey)
	sha1C := sha1.Sum(data[:])

	copy(data[:16], msgKey)
	copy(data[16:], authKey[x+96:x+128])
	sha1D := sha1.Sum(data[:])

	aesKey = make([]byte, 0, 32)
	aesKey = append(aesKey, sha1A[:8]...)
	aesKey = append(aesKey, sha1B[8:20]...)
	aesKey = append(aesKey, sha1C[4:16]...)

	aesIV = make([]byte, 0, 32)
	aesIV = append(aesIV, sha1A[8:20]...)
	aesIV = append(aesIV, sha1B[:8]...)
	aesIV = append(aesIV, sha1C[16:20]...)
	aesIV = append(aesIV, sha1D[:8]...)
	return aesKey, aesIV, nil
}

type igeCipher struct {
	key []byte
	iv  []byte
}

func (c *igeCipher) crypt(src []byte, encrypt bool) ([]byte, error) {
	if len(src)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("crypto: ige input of %d bytes is not block aligned", len(src))
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("crypto: aes: %w", err)
	}
	dst := make([]byte, len(src))
	if len(src) == 0 {
		return dst, nil
	}
	// ige does not copy the iv it is given.
	iv := append([]byte(nil), c.iv...)
	if encrypt {
		ige.EncryptBlocks(block, iv, dst, src)
	} else {
		ige.DecryptBlocks(block, iv, dst, src)
	}
	return dst, nil
}

func (c *igeCipher) Encrypt(src []byte) ([]byte, error) { return c.crypt(src, true) }

func (c *igeCipher) Decrypt(src []byte) ([]byte, error) { return c.crypt(src, false) }
