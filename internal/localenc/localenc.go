// Package localenc implements the password-derived key schedules and the
// authenticated encryption applied to every inner tdata payload.
//
// Encrypted layout:
//
//	tag(16) || E(len(4) || plaintext || padding)
//
// tag is the first 16 bytes of SHA-1 over the padded plaintext block and keys
// the cipher together with the local key. len counts itself plus the
// plaintext; padding is random and brings the block to a multiple of 16.
package localenc

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/tdatakit/internal/buf"
	"github.com/joshuapare/tdatakit/pkg/types"
)

const (
	// TagSize is the length of the message tag prefix.
	TagSize = 16
	// BlockSize is the padding granularity of the encrypted block.
	BlockSize = 16
	// SaltSize is the salt length used when writing new files.
	SaltSize = 32

	legacyIterations         = 4
	legacyPasscodeIterations = 4000
	modernIterations         = 1
	modernPasscodeIterations = 100000

	lengthPrefixSize = 4
)

// Codec derives keys and encrypts payloads with an injected crypto
// capability. Order is the byte order of the length prefix.
type Codec struct {
	Crypto types.Crypto
	Order  binary.ByteOrder
}

// New returns a Codec. A nil order means little endian.
func New(c types.Crypto, order binary.ByteOrder) *Codec {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Codec{Crypto: c, Order: order}
}

// LegacyKey derives a key with PBKDF2-HMAC-SHA1 directly over the passcode.
func (c *Codec) LegacyKey(salt []byte, passcode string) []byte {
	iterations := legacyIterations
	if passcode != "" {
		iterations = legacyPasscodeIterations
	}
	return c.Crypto.PBKDF2([]byte(passcode), salt, iterations, types.LocalKeySize, types.SHA1)
}

// ModernKey derives a key with PBKDF2-HMAC-SHA512 over
// SHA-512(salt || passcode || salt).
func (c *Codec) ModernKey(salt []byte, passcode string) []byte {
	pre := make([]byte, 0, 2*len(salt)+len(passcode))
	pre = append(pre, salt...)
	pre = append(pre, passcode...)
	pre = append(pre, salt...)
	hashed := c.Crypto.SHA512(pre)

	iterations := modernIterations
	if passcode != "" {
		iterations = modernPasscodeIterations
	}
	return c.Crypto.PBKDF2(hashed, salt, iterations, types.LocalKeySize, types.SHA512)
}

// Encrypt seals plaintext under key.
func (c *Codec) Encrypt(plaintext, key []byte) ([]byte, error) {
	sized := lengthPrefixSize + len(plaintext)
	padding := 0
	if rem := sized % BlockSize; rem != 0 {
		padding = BlockSize - rem
	}

	block := make([]byte, sized, sized+padding)
	c.Order.PutUint32(block, uint32(sized))
	copy(block[lengthPrefixSize:], plaintext)
	if padding > 0 {
		pad, err := c.Crypto.RandomBytes(padding)
		if err != nil {
			return nil, fmt.Errorf("local encrypt: padding: %w", err)
		}
		block = append(block, pad...)
	}

	tag := c.Crypto.SHA1(block)[:TagSize]
	cipher, err := c.Crypto.MessageCipher(key, tag, false)
	if err != nil {
		return nil, fmt.Errorf("local encrypt: %w", err)
	}
	sealed, err := cipher.Encrypt(block)
	if err != nil {
		return nil, fmt.Errorf("local encrypt: %w", err)
	}

	out := make([]byte, 0, TagSize+len(sealed))
	out = append(out, tag...)
	return append(out, sealed...), nil
}

// Decrypt opens a payload produced by Encrypt. A tag mismatch (wrong key or
// tampered data) fails with types.ErrAuthentication; an out-of-range length
// prefix fails with types.ErrLengthCorruption. A payload that is not a tag
// plus whole blocks cannot be authenticated and matches both.
func (c *Codec) Decrypt(encrypted, key []byte) ([]byte, error) {
	if len(encrypted) < TagSize+BlockSize || (len(encrypted)-TagSize)%BlockSize != 0 {
		return nil, types.NewError(types.ErrKindAuthentication,
			fmt.Sprintf("encrypted payload of %d bytes is not tag plus whole blocks", len(encrypted)),
			types.ErrLengthCorruption)
	}
	tag := encrypted[:TagSize]
	body := encrypted[TagSize:]

	cipher, err := c.Crypto.MessageCipher(key, tag, false)
	if err != nil {
		return nil, fmt.Errorf("local decrypt: %w", err)
	}
	decrypted, err := cipher.Decrypt(body)
	if err != nil {
		return nil, fmt.Errorf("local decrypt: %w", err)
	}

	if subtle.ConstantTimeCompare(c.Crypto.SHA1(decrypted)[:TagSize], tag) != 1 {
		return nil, types.ErrAuthentication
	}

	length, ok := buf.Int32At(c.Order, decrypted, 0)
	if !ok {
		return nil, types.ErrLengthCorruption
	}
	n := int(length)
	if n < lengthPrefixSize || n > len(decrypted) || n <= len(body)-BlockSize {
		return nil, types.NewError(types.ErrKindLengthCorruption,
			fmt.Sprintf("failed to decrypt, invalid data length %d for %d byte block", n, len(decrypted)), nil)
	}
	return decrypted[lengthPrefixSize:n], nil
}
