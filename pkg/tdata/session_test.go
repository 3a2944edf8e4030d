package tdata

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/internal/testutil"
	"github.com/joshuapare/tdatakit/pkg/localstorage"
	"github.com/joshuapare/tdatakit/pkg/settings"
	"github.com/joshuapare/tdatakit/pkg/storage"
	"github.com/joshuapare/tdatakit/pkg/types"
)

func newSession(t *testing.T, passcode string) (*Session, *storage.Memory) {
	t.Helper()
	st := storage.NewMemory()
	return New(st, Options{Passcode: passcode, Crypto: testutil.NewCrypto(1)}), st
}

func authKey(dc int32, fill byte) types.AuthKey {
	return types.AuthKey{DcID: dc, Key: bytes.Repeat([]byte{fill}, types.AuthKeySize)}
}

func TestAccountNames(t *testing.T) {
	s, _ := newSession(t, "")
	assert.Equal(t, "data", s.DataName(0))
	assert.Equal(t, "data#2", s.DataName(1))
	assert.Equal(t, "data#3", s.DataName(2))

	// MD5("data") starts 8d 77 7f 38 5d 3d fe c8.
	assert.Equal(t, []byte{0x8d, 0x77, 0x7f, 0x38, 0x5d, 0x3d, 0xfe, 0xc8}, s.DataNameKey(0))
	assert.Equal(t, "D877F783D5D3EF8C/", s.AccountDir(0))
	assert.Equal(t, "D877F783D5D3EF8C/map", s.AccountFile(0, MapFile))
	assert.Equal(t, "D877F783D5D3EF8C", s.MtpFile(0))
	assert.Equal(t, "key_data", s.KeyFile())

	assert.Equal(t, s.AccountDir(1), s.AccountDir(1))
	assert.NotEqual(t, s.AccountDir(0), s.AccountDir(1))
	assert.Len(t, s.AccountDir(1), 17)

	custom := New(storage.NewMemory(), Options{DataKey: "work"})
	assert.Equal(t, "work#2", custom.DataName(1))
	assert.Equal(t, "key_work", custom.KeyFile())
}

func TestToFilePart(t *testing.T) {
	assert.Equal(t, "1032547698BADCFE", ToFilePart([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0xff}))
	assert.Equal(t, "1032547698BADCFE", FileKeyName(0xefcdab8967452301))
}

func TestOptionsDefaults(t *testing.T) {
	s := New(storage.NewMemory(), Options{})
	opts := s.Options()
	assert.Equal(t, DefaultDataKey, opts.DataKey)
	assert.NotNil(t, opts.ByteOrder)
	assert.NotNil(t, opts.Logger)
	assert.NotNil(t, opts.Crypto)
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t, "ignored for settings")
	fields := []settings.Field{
		settings.Bool{ID: settings.DbiAutoStart, Value: true},
		settings.Int32{ID: settings.DbiScalePercent, Value: 100},
		settings.Uint64{ID: settings.DbiLangPackKey, Value: 0x1122334455667788},
		settings.String{ID: settings.DbiDialogLastPath, Value: "C:/Users/hé"},
		settings.CacheSettings{Size: 1 << 30, SizeBig: 1 << 32, Time: 86400, TimeBig: 3600},
	}
	require.NoError(t, s.WriteSettingsFile(ctx, fields))
	assert.Equal(t, []string{"settingss"}, st.Names())

	got, err := s.ReadSettingsFile(ctx)
	require.NoError(t, err)
	assert.Equal(t, fields, got)
}

func TestReadSettingsMissing(t *testing.T) {
	s, _ := newSession(t, "")
	_, err := s.ReadSettingsFile(context.Background())
	require.ErrorIs(t, err, types.ErrAllCandidatesFailed)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestReadSettingsUnknownBlock(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "")
	w := qt.NewWriter()
	w.Uint32(uint32(settings.DbiAutoStart))
	w.Uint32(1)
	w.Uint32(0x7777)

	salt := bytes.Repeat([]byte{3}, 32)
	enc, err := s.enc.Encrypt(w.Bytes(), s.enc.LegacyKey(salt, ""))
	require.NoError(t, err)
	require.NoError(t, s.WriteFile(ctx, SettingsFile, writeArrays(salt, enc), false))

	_, err = s.ReadSettingsFile(ctx)
	require.ErrorIs(t, err, types.ErrUnknownBlock)
	assert.Contains(t, err.Error(), "30583")
	assert.Contains(t, err.Error(), "0x7777")
}

func TestKeyDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "hunter2")
	localKey, err := s.WriteKeyData(ctx, &types.KeyData{Order: []int32{0, 2, 1}, Active: 2})
	require.NoError(t, err)
	require.Len(t, localKey, types.LocalKeySize)

	kd, err := s.ReadKeyData(ctx)
	require.NoError(t, err)
	assert.Equal(t, localKey, kd.LocalKey)
	assert.Equal(t, int32(3), kd.Count)
	assert.Equal(t, []int32{0, 2, 1}, kd.Order)
	assert.Equal(t, int32(2), kd.Active)

	wrong := New(s.storage, Options{Passcode: "hunter3", Crypto: s.opts.Crypto})
	_, err = wrong.ReadKeyData(ctx)
	require.ErrorIs(t, err, types.ErrAuthentication)
}

func TestKeyInfoBounds(t *testing.T) {
	w := qt.NewWriter()
	w.Int32(1000)
	w.Int32(0)
	_, err := parseKeyInfo(w.Bytes())
	require.ErrorIs(t, err, types.ErrTruncated)

	w = qt.NewWriter()
	w.Int32(-1)
	_, err = parseKeyInfo(w.Bytes())
	require.ErrorIs(t, err, types.ErrTruncated)

	w = qt.NewWriter()
	w.Int32(1)
	w.Int32(0)
	_, err = parseKeyInfo(w.Bytes())
	require.ErrorIs(t, err, types.ErrTruncated, "active index missing")
}

func TestMapFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t, "")
	localKey := testutil.LocalKey(9)
	fields := []localstorage.Field{
		localstorage.FileKey{ID: localstorage.LskLocations, Value: 0xAABBCCDD},
		localstorage.Draft{Drafts: []localstorage.DraftRef{{FileKey: 1, PeerID: 2}, {FileKey: 3, PeerID: 4}}},
		localstorage.StickersKeys{Installed: 1, Featured: 2, Recent: 3, Archived: 4},
		localstorage.SelfSerialized{Data: []byte("self")},
	}
	require.NoError(t, s.WriteMapFile(ctx, fields, localKey, 0))
	assert.Equal(t, []string{"D877F783D5D3EF8C/maps"}, st.Names())

	got, err := s.ReadMapFile(ctx, localKey, 0)
	require.NoError(t, err)
	assert.Equal(t, fields, got)

	_, err = s.ReadMapFile(ctx, testutil.LocalKey(10), 0)
	require.ErrorIs(t, err, types.ErrAuthentication)
}

func TestMapFileLocalKeyMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "")
	require.NoError(t, s.WriteMapFile(ctx, nil, testutil.LocalKey(1), 1))

	_, err := s.ReadMapFile(ctx, nil, 1)
	require.ErrorIs(t, err, types.ErrLocalKeyMissing)
}

func TestMapFileLegacyKeyRecovery(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "pass")
	localKey := testutil.LocalKey(4)
	salt := bytes.Repeat([]byte{7}, 32)

	legacyKeyEncrypted, err := s.enc.Encrypt(localKey, s.enc.LegacyKey(salt, "pass"))
	require.NoError(t, err)
	plain, err := localstorage.Marshal([]localstorage.Field{
		localstorage.FileKey{ID: localstorage.LskUserSettings, Value: 42},
	})
	require.NoError(t, err)
	mapEncrypted, err := s.enc.Encrypt(plain, localKey)
	require.NoError(t, err)
	require.NoError(t, s.WriteFile(ctx, s.AccountFile(0, MapFile), writeArrays(salt, legacyKeyEncrypted, mapEncrypted), true))

	got, err := s.ReadMapFile(ctx, nil, 0)
	require.NoError(t, err)
	key, ok := localstorage.FileKeyOf(got, localstorage.LskUserSettings)
	require.True(t, ok)
	assert.Equal(t, uint64(42), key)
}

func TestMtpAuthorizationRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t, "")
	localKey := testutil.LocalKey(2)
	auth := &types.MtpAuthorization{
		UserID:            7_000_000_000,
		MainDcID:          2,
		AuthKeys:          []types.AuthKey{authKey(2, 0xA2), authKey(4, 0xA4)},
		AuthKeysToDestroy: []types.AuthKey{authKey(1, 0xD1)},
	}
	require.NoError(t, s.WriteMtpAuthorization(ctx, auth, localKey, 0))
	assert.Equal(t, []string{"D877F783D5D3EF8Cs"}, st.Names())

	got, err := s.ReadMtpAuthorization(ctx, localKey, 0)
	require.NoError(t, err)
	assert.Equal(t, auth, got)
}

func TestMtpAuthorizationEmptyKeyLists(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "")
	localKey := testutil.LocalKey(6)
	auth := &types.MtpAuthorization{UserID: 9, MainDcID: 1, AuthKeys: []types.AuthKey{authKey(1, 0x01)}}
	require.NoError(t, s.WriteMtpAuthorization(ctx, auth, localKey, 0))

	got, err := s.ReadMtpAuthorization(ctx, localKey, 0)
	require.NoError(t, err)
	assert.Nil(t, got.AuthKeysToDestroy)
	assert.Equal(t, auth, got)
}

func TestMtpAuthorizationWriteRejectsBadKey(t *testing.T) {
	s, _ := newSession(t, "")
	auth := &types.MtpAuthorization{AuthKeys: []types.AuthKey{{DcID: 1, Key: []byte{1, 2, 3}}}}
	err := s.WriteMtpAuthorization(context.Background(), auth, testutil.LocalKey(2), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dc 1")
}

func TestParseMtpAuthorizationLegacy(t *testing.T) {
	w := qt.NewWriter()
	w.Int32(-7)
	w.Int32(3)
	w.Uint32(1)
	w.Int32(3)
	w.Raw(bytes.Repeat([]byte{0x33}, types.AuthKeySize))
	w.Uint32(0)

	auth, err := ParseMtpAuthorization(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFF9), auth.UserID)
	assert.Equal(t, int32(3), auth.MainDcID)
	assert.Equal(t, []types.AuthKey{authKey(3, 0x33)}, auth.AuthKeys)
	assert.Nil(t, auth.AuthKeysToDestroy)
}

func TestParseMtpAuthorizationModernMarker(t *testing.T) {
	// Only the main DC slot selects the layout; the user id slot is ignored.
	w := qt.NewWriter()
	w.Int32(12345)
	w.Int32(-1)
	w.Uint64(1 << 40)
	w.Int32(5)
	w.Uint32(0)
	w.Uint32(0)

	auth, err := ParseMtpAuthorization(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), auth.UserID)
	assert.Equal(t, int32(5), auth.MainDcID)
}

func TestParseMtpAuthorizationTruncated(t *testing.T) {
	w := qt.NewWriter()
	w.Int32(-1)
	w.Int32(-1)
	w.Uint64(1)
	w.Int32(2)
	w.Uint32(2)
	w.Int32(2)
	w.Raw(make([]byte, 10))

	_, err := ParseMtpAuthorization(w.Bytes())
	require.ErrorIs(t, err, types.ErrTruncated)
}

func TestReadMtpAuthorizationMissingRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "")
	localKey := testutil.LocalKey(3)
	stream, err := settings.Marshal([]settings.Field{settings.Bool{ID: settings.DbiAutoStart, Value: false}})
	require.NoError(t, err)
	require.NoError(t, s.WriteEncryptedFile(ctx, s.MtpFile(0), localKey, stream, false))

	_, err = s.ReadMtpAuthorization(ctx, localKey, 0)
	require.ErrorIs(t, err, types.ErrMissingAuthorization)
}

func TestReadMtpAuthorizationLastRecordWins(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "")
	localKey := testutil.LocalKey(3)
	first, err := SerializeMtpAuthorization(&types.MtpAuthorization{UserID: 1, MainDcID: 1})
	require.NoError(t, err)
	second, err := SerializeMtpAuthorization(&types.MtpAuthorization{UserID: 2, MainDcID: 2})
	require.NoError(t, err)
	stream, err := settings.Marshal([]settings.Field{
		settings.MtpAuthorization{Data: first},
		settings.MtpAuthorization{Data: second},
	})
	require.NoError(t, err)
	require.NoError(t, s.WriteEncryptedFile(ctx, s.MtpFile(0), localKey, stream, false))

	auth, err := s.ReadMtpAuthorization(ctx, localKey, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), auth.UserID)
}

func TestEncryptedFileUnderAccountDir(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t, "")
	localKey := testutil.LocalKey(5)
	name := s.AccountFile(1, FileKeyName(0x1234))
	require.NoError(t, s.WriteEncryptedFile(ctx, name, localKey, []byte("sticker set"), true))
	assert.Equal(t, []string{name + "s"}, st.Names())

	version, got, err := s.ReadEncryptedFile(ctx, name, localKey)
	require.NoError(t, err)
	assert.Equal(t, int32(3007006), version)
	assert.Equal(t, []byte("sticker set"), got)
}

func TestOverrideVersion(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	s := New(st, Options{OverrideVersion: 1234, Crypto: testutil.NewCrypto(1)})
	require.NoError(t, s.WriteFile(ctx, "usertag", []byte{1}, false))
	version, _, err := s.ReadFile(ctx, "usertag")
	require.NoError(t, err)
	assert.Equal(t, int32(1234), version)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "")
	localKey, err := s.WriteKeyData(ctx, &types.KeyData{Order: []int32{0, 1}, Active: 0})
	require.NoError(t, err)
	for idx, user := range []uint64{100, 200} {
		auth := &types.MtpAuthorization{UserID: user, MainDcID: 2, AuthKeys: []types.AuthKey{authKey(2, byte(idx))}}
		require.NoError(t, s.WriteMtpAuthorization(ctx, auth, localKey, idx))
	}

	accounts, kd, err := s.Accounts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, localKey, kd.LocalKey)
	require.Len(t, accounts, 2)
	assert.Equal(t, 0, accounts[0].Index)
	assert.Equal(t, "D877F783D5D3EF8C/", accounts[0].Dir)
	assert.Equal(t, uint64(100), accounts[0].Authorization.UserID)
	assert.Equal(t, 1, accounts[1].Index)
	assert.Equal(t, uint64(200), accounts[1].Authorization.UserID)
}

func TestAccountsMissingAuthorization(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t, "")
	_, err := s.WriteKeyData(ctx, &types.KeyData{Order: []int32{0}})
	require.NoError(t, err)

	_, _, err = s.Accounts(ctx, nil)
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "account 0")
}

func TestLegacyCandidateFallback(t *testing.T) {
	ctx := context.Background()
	s, st := newSession(t, "")
	require.NoError(t, s.WriteSettingsFile(ctx, []settings.Field{settings.Bool{ID: settings.DbiAutoStart, Value: true}}))
	good, err := st.ReadFile(ctx, "settingss")
	require.NoError(t, err)
	st.Remove("settingss")

	bad := append([]byte(nil), good...)
	bad[len(bad)-1] ^= 0x01
	base := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	st.Add("settings0", good, base)
	st.Add("settings1", bad, base.Add(time.Second))

	fields, err := s.ReadSettingsFile(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 1)
}
