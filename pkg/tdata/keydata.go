package tdata

import (
	"context"
	"fmt"

	"github.com/joshuapare/tdatakit/internal/localenc"
	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// KeyFile returns the logical name of the account index, key_<DataKey>.
func (s *Session) KeyFile() string {
	return "key_" + s.DataName(0)
}

// ReadKeyData decrypts the account index and the local key with the session
// passcode.
func (s *Session) ReadKeyData(ctx context.Context) (*types.KeyData, error) {
	name := s.KeyFile()
	_, payload, err := s.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	arrays, err := readArrays(name, payload, 3)
	if err != nil {
		return nil, err
	}
	salt, keyEncrypted, infoEncrypted := arrays[0], arrays[1], arrays[2]

	passcodeKey := s.enc.ModernKey(salt, s.opts.Passcode)
	localKey, err := s.enc.Decrypt(keyEncrypted, passcodeKey)
	if err != nil {
		return nil, fmt.Errorf("%s: local key: %w", name, err)
	}
	info, err := s.enc.Decrypt(infoEncrypted, localKey)
	if err != nil {
		return nil, fmt.Errorf("%s: info: %w", name, err)
	}
	kd, err := parseKeyInfo(info)
	if err != nil {
		return nil, fmt.Errorf("%s: info: %w", name, err)
	}
	kd.LocalKey = localKey
	return kd, nil
}

func parseKeyInfo(info []byte) (*types.KeyData, error) {
	r := qt.NewReader(info)
	count, err := r.Int32()
	if err != nil {
		return nil, err
	}
	if count < 0 || int(count) > r.Remaining()/4 {
		return nil, types.NewError(types.ErrKindTruncated,
			fmt.Sprintf("account count %d exceeds remaining %d bytes", count, r.Remaining()), nil)
	}
	kd := &types.KeyData{Count: count, Order: make([]int32, count)}
	for i := range kd.Order {
		if kd.Order[i], err = r.Int32(); err != nil {
			return nil, err
		}
	}
	if kd.Active, err = r.Int32(); err != nil {
		return nil, err
	}
	return kd, nil
}

// WriteKeyData writes a new account index under a fresh random local key and
// returns that key. kd.LocalKey is ignored and the stored count is
// len(kd.Order).
func (s *Session) WriteKeyData(ctx context.Context, kd *types.KeyData) ([]byte, error) {
	name := s.KeyFile()

	info := qt.NewWriter()
	info.Int32(int32(len(kd.Order)))
	for _, idx := range kd.Order {
		info.Int32(idx)
	}
	info.Int32(kd.Active)

	localKey, err := s.opts.Crypto.RandomBytes(types.LocalKeySize)
	if err != nil {
		return nil, fmt.Errorf("%s: local key: %w", name, err)
	}
	infoEncrypted, err := s.enc.Encrypt(info.Bytes(), localKey)
	if err != nil {
		return nil, fmt.Errorf("%s: info: %w", name, err)
	}

	salt, err := s.opts.Crypto.RandomBytes(localenc.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("%s: salt: %w", name, err)
	}
	keyEncrypted, err := s.enc.Encrypt(localKey, s.enc.ModernKey(salt, s.opts.Passcode))
	if err != nil {
		return nil, fmt.Errorf("%s: local key: %w", name, err)
	}

	if err := s.WriteFile(ctx, name, writeArrays(salt, keyEncrypted, infoEncrypted), false); err != nil {
		return nil, err
	}
	return localKey, nil
}
