// Package export renders decoded tdata accounts as JSON and reads them back,
// so sessions can be moved between folders or inspected by other tools.
package export

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/joshuapare/tdatakit/pkg/settings"
	"github.com/joshuapare/tdatakit/pkg/tdata"
	"github.com/joshuapare/tdatakit/pkg/types"
)

// AuthKey is a datacenter key with hex-encoded material.
type AuthKey struct {
	DcID int32  `json:"dc_id"`
	Key  string `json:"key"`
}

// Account is the exported form of one account.
type Account struct {
	Index             int       `json:"index"`
	Dir               string    `json:"dir"`
	UserID            uint64    `json:"user_id"`
	MainDcID          int32     `json:"main_dc_id"`
	AuthKeys          []AuthKey `json:"auth_keys"`
	AuthKeysToDestroy []AuthKey `json:"auth_keys_to_destroy,omitempty"`
}

// Setting is one global settings record.
type Setting struct {
	ID    uint32 `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Snapshot is everything Build could read from a folder.
type Snapshot struct {
	Active   int32     `json:"active"`
	Accounts []Account `json:"accounts"`
	Settings []Setting `json:"settings,omitempty"`
}

// Build reads the key index, every account authorization and, when present,
// the global settings.
func Build(ctx context.Context, s *tdata.Session, localKey []byte) (*Snapshot, error) {
	accounts, kd, err := s.Accounts(ctx, localKey)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Active: kd.Active, Accounts: make([]Account, 0, len(accounts))}
	for _, a := range accounts {
		snap.Accounts = append(snap.Accounts, FromAccount(a))
	}

	fields, err := s.ReadSettingsFile(ctx)
	switch {
	case err == nil:
		snap.Settings = FromSettings(fields)
	case errors.Is(err, types.ErrNotFound):
	default:
		return nil, fmt.Errorf("export settings: %w", err)
	}
	return snap, nil
}

// FromAccount converts a decoded account.
func FromAccount(a tdata.Account) Account {
	out := Account{Index: a.Index, Dir: a.Dir}
	if auth := a.Authorization; auth != nil {
		out.UserID = auth.UserID
		out.MainDcID = auth.MainDcID
		out.AuthKeys = fromKeys(auth.AuthKeys)
		out.AuthKeysToDestroy = fromKeys(auth.AuthKeysToDestroy)
	}
	return out
}

func fromKeys(keys []types.AuthKey) []AuthKey {
	if len(keys) == 0 {
		return nil
	}
	out := make([]AuthKey, len(keys))
	for i, k := range keys {
		out[i] = AuthKey{DcID: k.DcID, Key: hex.EncodeToString(k.Key)}
	}
	return out
}

// Authorization converts the account back for WriteMtpAuthorization.
func (a Account) Authorization() (*types.MtpAuthorization, error) {
	keys, err := toKeys(a.AuthKeys)
	if err != nil {
		return nil, fmt.Errorf("account %d: %w", a.Index, err)
	}
	destroy, err := toKeys(a.AuthKeysToDestroy)
	if err != nil {
		return nil, fmt.Errorf("account %d: %w", a.Index, err)
	}
	return &types.MtpAuthorization{
		UserID:            a.UserID,
		MainDcID:          a.MainDcID,
		AuthKeys:          keys,
		AuthKeysToDestroy: destroy,
	}, nil
}

func toKeys(keys []AuthKey) ([]types.AuthKey, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	out := make([]types.AuthKey, len(keys))
	for i, k := range keys {
		raw, err := hex.DecodeString(k.Key)
		if err != nil {
			return nil, fmt.Errorf("dc %d key: %w", k.DcID, err)
		}
		if len(raw) != types.AuthKeySize {
			return nil, fmt.Errorf("dc %d key: %d bytes, want %d", k.DcID, len(raw), types.AuthKeySize)
		}
		out[i] = types.AuthKey{DcID: k.DcID, Key: raw}
	}
	return out, nil
}

// FromSettings converts settings records. Byte payloads are hex encoded.
func FromSettings(fields []settings.Field) []Setting {
	out := make([]Setting, 0, len(fields))
	for _, f := range fields {
		id := f.Block()
		var v any
		switch f := f.(type) {
		case settings.Bool:
			v = f.Value
		case settings.Int32:
			v = f.Value
		case settings.Uint64:
			v = f.Value
		case settings.String:
			v = f.Value
		case settings.Bytes:
			v = hex.EncodeToString(f.Value)
		case settings.MtpAuthorization:
			v = hex.EncodeToString(f.Data)
		default:
			v = f
		}
		out = append(out, Setting{ID: uint32(id), Name: id.String(), Value: v})
	}
	return out
}

// Write encodes snap as indented JSON.
func Write(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Read decodes a snapshot produced by Write.
func Read(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Restore writes a fresh key index and every account authorization of snap
// into s, returning the new local key.
func Restore(ctx context.Context, s *tdata.Session, snap *Snapshot) ([]byte, error) {
	kd := &types.KeyData{Active: snap.Active, Order: make([]int32, 0, len(snap.Accounts))}
	auths := make([]*types.MtpAuthorization, len(snap.Accounts))
	for i, a := range snap.Accounts {
		auth, err := a.Authorization()
		if err != nil {
			return nil, err
		}
		auths[i] = auth
		kd.Order = append(kd.Order, int32(a.Index))
	}

	localKey, err := s.WriteKeyData(ctx, kd)
	if err != nil {
		return nil, err
	}
	for i, a := range snap.Accounts {
		if err := s.WriteMtpAuthorization(ctx, auths[i], localKey, a.Index); err != nil {
			return nil, fmt.Errorf("account %d: %w", a.Index, err)
		}
	}
	return localKey, nil
}
