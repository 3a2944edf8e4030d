package tdata

import (
	"context"
	"fmt"

	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/pkg/settings"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// legacyMarker in the main DC slot announces the 64-bit user id layout.
const legacyMarker = -1

// MtpFile returns the logical name of the authorization container for
// account idx. It sits at the folder root.
func (s *Session) MtpFile(idx int) string {
	return ToFilePart(s.DataNameKey(idx))
}

// ReadMtpAuthorization decrypts and parses the authorization of account idx.
// When the stream carries several authorization records the last one wins.
func (s *Session) ReadMtpAuthorization(ctx context.Context, localKey []byte, idx int) (*types.MtpAuthorization, error) {
	name := s.MtpFile(idx)
	_, plain, err := s.ReadEncryptedFile(ctx, name, localKey)
	if err != nil {
		return nil, err
	}
	fields, err := settings.Decode(plain)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var (
		data  []byte
		found bool
	)
	for _, f := range fields {
		if m, ok := f.(settings.MtpAuthorization); ok {
			data, found = m.Data, true
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", name, types.ErrMissingAuthorization)
	}

	auth, err := ParseMtpAuthorization(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return auth, nil
}

// WriteMtpAuthorization stores auth as the authorization of account idx.
func (s *Session) WriteMtpAuthorization(ctx context.Context, auth *types.MtpAuthorization, localKey []byte, idx int) error {
	name := s.MtpFile(idx)
	data, err := SerializeMtpAuthorization(auth)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	stream, err := settings.Marshal([]settings.Field{settings.MtpAuthorization{Data: data}})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return s.WriteEncryptedFile(ctx, name, localKey, stream, false)
}

// ParseMtpAuthorization decodes the payload of an authorization record.
func ParseMtpAuthorization(data []byte) (*types.MtpAuthorization, error) {
	r := qt.NewReader(data)
	legacyUserID, err := r.Int32()
	if err != nil {
		return nil, err
	}
	legacyMainDcID, err := r.Int32()
	if err != nil {
		return nil, err
	}

	auth := &types.MtpAuthorization{}
	if legacyMainDcID == legacyMarker {
		if auth.UserID, err = r.Uint64(); err != nil {
			return nil, err
		}
		if auth.MainDcID, err = r.Int32(); err != nil {
			return nil, err
		}
	} else {
		auth.UserID = uint64(int64(legacyUserID))
		auth.MainDcID = legacyMainDcID
	}

	if auth.AuthKeys, err = readAuthKeys(r); err != nil {
		return nil, fmt.Errorf("auth keys: %w", err)
	}
	if auth.AuthKeysToDestroy, err = readAuthKeys(r); err != nil {
		return nil, fmt.Errorf("auth keys to destroy: %w", err)
	}
	return auth, nil
}

func readAuthKeys(r *qt.Reader) ([]types.AuthKey, error) {
	count, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	const entrySize = 4 + types.AuthKeySize
	if uint64(count) > uint64(r.Remaining()/entrySize) {
		return nil, types.NewError(types.ErrKindTruncated,
			fmt.Sprintf("%d keys exceed remaining %d bytes", count, r.Remaining()), nil)
	}
	if count == 0 {
		return nil, nil
	}
	keys := make([]types.AuthKey, 0, count)
	for range count {
		dcID, err := r.Int32()
		if err != nil {
			return nil, err
		}
		key, err := r.Raw(types.AuthKeySize)
		if err != nil {
			return nil, err
		}
		keys = append(keys, types.AuthKey{DcID: dcID, Key: append([]byte(nil), key...)})
	}
	return keys, nil
}

// SerializeMtpAuthorization encodes auth in the current layout: the legacy
// slots hold the marker and the 64-bit user id follows.
func SerializeMtpAuthorization(auth *types.MtpAuthorization) ([]byte, error) {
	w := qt.NewWriter()
	w.Int32(legacyMarker)
	w.Int32(legacyMarker)
	w.Uint64(auth.UserID)
	w.Int32(auth.MainDcID)
	if err := writeAuthKeys(w, auth.AuthKeys); err != nil {
		return nil, fmt.Errorf("auth keys: %w", err)
	}
	if err := writeAuthKeys(w, auth.AuthKeysToDestroy); err != nil {
		return nil, fmt.Errorf("auth keys to destroy: %w", err)
	}
	return w.Bytes(), nil
}

func writeAuthKeys(w *qt.Writer, keys []types.AuthKey) error {
	w.Uint32(uint32(len(keys)))
	for _, k := range keys {
		if len(k.Key) != types.AuthKeySize {
			return fmt.Errorf("dc %d: key is %d bytes, want %d", k.DcID, len(k.Key), types.AuthKeySize)
		}
		w.Int32(k.DcID)
		w.Raw(k.Key)
	}
	return nil
}
