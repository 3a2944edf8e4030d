package tdata

import (
	"context"
	"fmt"

	"github.com/joshuapare/tdatakit/pkg/localstorage"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// MapFile is the logical name of the per-account map inside AccountDir.
const MapFile = "map"

// ReadMapFile decodes the map of account idx. When localKey is nil and the
// map carries a legacy salt, the key is recovered from the legacy key blob
// with the session passcode.
func (s *Session) ReadMapFile(ctx context.Context, localKey []byte, idx int) ([]localstorage.Field, error) {
	name := s.AccountFile(idx, MapFile)
	_, payload, err := s.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	arrays, err := readArrays(name, payload, 3)
	if err != nil {
		return nil, err
	}
	legacySalt, legacyKeyEncrypted, mapEncrypted := arrays[0], arrays[1], arrays[2]

	if localKey == nil && len(legacySalt) > 0 {
		legacyKey := s.enc.LegacyKey(legacySalt, s.opts.Passcode)
		localKey, err = s.enc.Decrypt(legacyKeyEncrypted, legacyKey)
		if err != nil {
			return nil, fmt.Errorf("%s: legacy key: %w", name, err)
		}
		s.log.Debug("recovered legacy local key", "file", name)
	}
	if localKey == nil {
		return nil, fmt.Errorf("%s: %w", name, types.ErrLocalKeyMissing)
	}

	plain, err := s.enc.Decrypt(mapEncrypted, localKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	fields, err := localstorage.Decode(plain)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fields, nil
}

// WriteMapFile encodes fields as the map of account idx, creating the account
// directory if needed. The legacy salt and key are left empty.
func (s *Session) WriteMapFile(ctx context.Context, fields []localstorage.Field, localKey []byte, idx int) error {
	name := s.AccountFile(idx, MapFile)
	plain, err := localstorage.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	encrypted, err := s.enc.Encrypt(plain, localKey)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return s.WriteFile(ctx, name, writeArrays(nil, nil, encrypted), true)
}
