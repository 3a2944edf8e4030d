package tdata

import (
	"context"
	"fmt"

	"github.com/joshuapare/tdatakit/pkg/types"
)

// Account is one entry of the key index with its authorization.
type Account struct {
	Index         int
	Dir           string
	Authorization *types.MtpAuthorization
}

// Accounts reads the authorization of every account listed in the key index.
// A nil localKey is taken from the index itself.
func (s *Session) Accounts(ctx context.Context, localKey []byte) ([]Account, *types.KeyData, error) {
	kd, err := s.ReadKeyData(ctx)
	if err != nil {
		return nil, nil, err
	}
	if localKey == nil {
		localKey = kd.LocalKey
	}

	accounts := make([]Account, 0, len(kd.Order))
	for _, idx := range kd.Order {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		auth, err := s.ReadMtpAuthorization(ctx, localKey, int(idx))
		if err != nil {
			return nil, nil, fmt.Errorf("account %d: %w", idx, err)
		}
		accounts = append(accounts, Account{
			Index:         int(idx),
			Dir:           s.AccountDir(int(idx)),
			Authorization: auth,
		})
	}
	return accounts, kd, nil
}
