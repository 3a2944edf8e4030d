package localenc

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tdatakit/internal/testutil"
	"github.com/joshuapare/tdatakit/pkg/crypto"
	"github.com/joshuapare/tdatakit/pkg/types"
)

func TestRoundTripLengths(t *testing.T) {
	codecs := map[string]*Codec{
		"aes-ige":    New(crypto.Default(), nil),
		"test":       New(testutil.NewCrypto(1), nil),
		"big-endian": New(testutil.NewCrypto(2), binary.BigEndian),
	}
	key := testutil.LocalKey(5)
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{0, 1, 10, 12, 16, 28, 32, 160} {
				plain := bytes.Repeat([]byte{byte(n)}, n)
				enc, err := c.Encrypt(plain, key)
				require.NoError(t, err)
				assert.Zero(t, len(enc)%BlockSize)

				dec, err := c.Decrypt(enc, key)
				require.NoError(t, err, "length %d", n)
				assert.Equal(t, plain, dec, "length %d", n)
			}
		})
	}
}

func TestEncryptSizes(t *testing.T) {
	c := New(crypto.Default(), nil)
	key := testutil.LocalKey(1)

	enc, err := c.Encrypt(make([]byte, 10), key)
	require.NoError(t, err)
	assert.Len(t, enc, TagSize+16)

	// 12 bytes plus the length prefix fill one block exactly.
	enc, err = c.Encrypt(make([]byte, 12), key)
	require.NoError(t, err)
	assert.Len(t, enc, TagSize+16)

	enc, err = c.Encrypt(make([]byte, 13), key)
	require.NoError(t, err)
	assert.Len(t, enc, TagSize+32)
}

func TestDecryptWrongKey(t *testing.T) {
	c := New(crypto.Default(), nil)
	enc, err := c.Encrypt([]byte("secret payload"), testutil.LocalKey(1))
	require.NoError(t, err)

	_, err = c.Decrypt(enc, testutil.LocalKey(2))
	require.ErrorIs(t, err, types.ErrAuthentication)
}

func TestDecryptTampered(t *testing.T) {
	c := New(testutil.NewCrypto(3), nil)
	key := testutil.LocalKey(9)
	enc, err := c.Encrypt([]byte("payload"), key)
	require.NoError(t, err)

	for _, i := range []int{0, TagSize, len(enc) - 1} {
		bad := bytes.Clone(enc)
		bad[i] ^= 0x01
		_, err := c.Decrypt(bad, key)
		require.ErrorIs(t, err, types.ErrAuthentication, "flip at %d", i)
	}
}

func TestDecryptMalformedSizes(t *testing.T) {
	c := New(testutil.NewCrypto(3), nil)
	key := testutil.LocalKey(9)
	for _, n := range []int{0, 15, TagSize, TagSize + 15, TagSize + 17} {
		_, err := c.Decrypt(make([]byte, n), key)
		require.ErrorIs(t, err, types.ErrAuthentication, "size %d", n)
		require.ErrorIs(t, err, types.ErrLengthCorruption, "size %d", n)
	}
}

// seal encrypts an already framed block without touching the length prefix,
// so tests can produce authentic payloads with corrupt lengths.
func seal(t *testing.T, c *Codec, block, key []byte) []byte {
	t.Helper()
	tag := c.Crypto.SHA1(block)[:TagSize]
	mc, err := c.Crypto.MessageCipher(key, tag, false)
	require.NoError(t, err)
	sealed, err := mc.Encrypt(block)
	require.NoError(t, err)
	return append(bytes.Clone(tag), sealed...)
}

func TestDecryptLengthBounds(t *testing.T) {
	c := New(testutil.NewCrypto(4), nil)
	key := testutil.LocalKey(4)

	cases := map[string]int32{
		"below prefix":     3,
		"beyond block":     33,
		"too much padding": 16,
		"negative":         -1,
	}
	for name, length := range cases {
		t.Run(name, func(t *testing.T) {
			block := make([]byte, 32)
			binary.LittleEndian.PutUint32(block, uint32(length))
			_, err := c.Decrypt(seal(t, c, block, key), key)
			require.ErrorIs(t, err, types.ErrLengthCorruption)
		})
	}

	block := make([]byte, 32)
	binary.LittleEndian.PutUint32(block, 17)
	block[4] = 'x'
	dec, err := c.Decrypt(seal(t, c, block, key), key)
	require.NoError(t, err)
	assert.Len(t, dec, 13)
	assert.Equal(t, byte('x'), dec[0])
}

func TestByteOrderMismatch(t *testing.T) {
	le := New(testutil.NewCrypto(5), binary.LittleEndian)
	be := New(le.Crypto, binary.BigEndian)
	key := testutil.LocalKey(6)

	enc, err := le.Encrypt([]byte("abc"), key)
	require.NoError(t, err)
	_, err = be.Decrypt(enc, key)
	require.ErrorIs(t, err, types.ErrLengthCorruption)
}

func TestKeyDerivation(t *testing.T) {
	c := New(crypto.Default(), nil)
	salt := make([]byte, 32)

	legacyEmpty := c.LegacyKey(salt, "")
	legacyPass := c.LegacyKey(salt, "hunter2")
	assert.Len(t, legacyEmpty, types.LocalKeySize)
	assert.NotEqual(t, legacyEmpty, legacyPass)

	modernEmpty := c.ModernKey(salt, "")
	assert.Len(t, modernEmpty, types.LocalKeySize)
	assert.NotEqual(t, legacyEmpty, modernEmpty)

	assert.Equal(t, legacyEmpty, c.LegacyKey(salt, ""))
	assert.Equal(t, modernEmpty, c.ModernKey(salt, ""))

	want := c.Crypto.PBKDF2(nil, salt, 4, types.LocalKeySize, types.SHA1)
	assert.Equal(t, want, legacyEmpty)

	pre := c.Crypto.SHA512(append(append(bytes.Clone(salt), "hunter2"...), salt...))
	assert.NotEqual(t, c.Crypto.PBKDF2(pre, salt, 1, types.LocalKeySize, types.SHA512), c.ModernKey(salt, "hunter2"))
}

// fixedPad is the real provider with a constant padding source.
type fixedPad struct {
	crypto.Provider
}

func (fixedPad) RandomBytes(n int) ([]byte, error) {
	return bytes.Repeat([]byte{0xee}, n), nil
}

func TestEncryptKnownAnswer(t *testing.T) {
	key := make([]byte, types.LocalKeySize)
	for i := range key {
		key[i] = byte(i)
	}
	c := New(fixedPad{}, nil)

	sealed, err := c.Encrypt([]byte("tdata-kat!"), key)
	require.NoError(t, err)
	assert.Equal(t,
		"4d73232b957a4a3ce853555b6138c0610a337a90eef4778d39c17721b2331f83",
		hex.EncodeToString(sealed))

	plain, err := c.Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("tdata-kat!"), plain)
}
