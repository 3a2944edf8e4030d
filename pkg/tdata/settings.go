package tdata

import (
	"context"
	"fmt"

	"github.com/joshuapare/tdatakit/internal/localenc"
	"github.com/joshuapare/tdatakit/pkg/settings"
)

// SettingsFile is the logical name of the global settings container.
const SettingsFile = "settings"

// ReadSettingsFile decodes the global settings. The file is keyed by the
// legacy derivation with an empty passcode, whatever the session passcode.
func (s *Session) ReadSettingsFile(ctx context.Context) ([]settings.Field, error) {
	_, payload, err := s.ReadFile(ctx, SettingsFile)
	if err != nil {
		return nil, err
	}
	arrays, err := readArrays(SettingsFile, payload, 2)
	if err != nil {
		return nil, err
	}
	salt, encrypted := arrays[0], arrays[1]

	key := s.enc.LegacyKey(salt, "")
	plain, err := s.enc.Decrypt(encrypted, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SettingsFile, err)
	}
	fields, err := settings.Decode(plain)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SettingsFile, err)
	}
	return fields, nil
}

// WriteSettingsFile encodes fields under a fresh salt.
func (s *Session) WriteSettingsFile(ctx context.Context, fields []settings.Field) error {
	plain, err := settings.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%s: %w", SettingsFile, err)
	}
	salt, err := s.opts.Crypto.RandomBytes(localenc.SaltSize)
	if err != nil {
		return fmt.Errorf("%s: salt: %w", SettingsFile, err)
	}
	encrypted, err := s.enc.Encrypt(plain, s.enc.LegacyKey(salt, ""))
	if err != nil {
		return fmt.Errorf("%s: %w", SettingsFile, err)
	}
	return s.WriteFile(ctx, SettingsFile, writeArrays(salt, encrypted), false)
}
