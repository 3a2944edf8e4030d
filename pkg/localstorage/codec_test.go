package localstorage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tdatakit/internal/qt"
	"github.com/joshuapare/tdatakit/pkg/types"
)

func TestRoundTrip(t *testing.T) {
	in := []Field{
		FileKey{ID: LskLocations, Value: 0x1122334455667788},
		FileKey{ID: LskTrustedBots, Value: 7},
		Draft{Drafts: []DraftRef{{FileKey: 1, PeerID: 2}, {FileKey: 3, PeerID: 1 << 63}}},
		DraftPosition{Cursors: []DraftRef{{FileKey: 4, PeerID: 5}}},
		BackgroundOld{Day: 8, Night: 9},
		StickersKeys{Installed: 10, Featured: 11, Recent: 12, Archived: 13},
		MasksKeys{Installed: 14, Recent: 15, Archived: 16},
		SelfSerialized{Data: []byte("self")},
	}
	data, err := Marshal(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLegacySkip(t *testing.T) {
	w := qt.NewWriter()
	w.Uint32(uint32(LskLegacyImages))
	w.Int32(2)
	w.Raw(make([]byte, 2*LegacyRecordSize))
	w.Uint32(uint32(LskLegacyAudios))
	w.Int32(0)
	w.Uint32(uint32(LskSavedGifs))
	w.Uint64(42)

	out, err := Decode(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []Field{FileKey{ID: LskSavedGifs, Value: 42}}, out)
}

func TestLegacySkipPastEnd(t *testing.T) {
	w := qt.NewWriter()
	w.Uint32(uint32(LskLegacyStickerImages))
	w.Int32(3)
	w.Raw(make([]byte, LegacyRecordSize))

	_, err := Decode(w.Bytes())
	require.ErrorIs(t, err, types.ErrTruncated)
}

func TestDraftCountTooLarge(t *testing.T) {
	w := qt.NewWriter()
	w.Uint32(uint32(LskDraft))
	w.Int32(1000)
	w.Uint64(1)
	w.Uint64(2)

	_, err := Decode(w.Bytes())
	require.Error(t, err)
}

func TestUnknownKey(t *testing.T) {
	w := qt.NewWriter()
	w.Uint32(uint32(LskUserMap))
	w.Raw(make([]byte, 16))

	out, err := Decode(w.Bytes())
	require.Error(t, err)
	assert.Nil(t, out)
	var ube *types.UnknownBlockError
	require.True(t, errors.As(err, &ube))
	assert.Equal(t, uint32(0), ube.ID)
	assert.Equal(t, Schema, ube.Schema)
	assert.ErrorIs(t, err, types.ErrUnknownBlock)
}

func TestEncodeRejectsBadFileKey(t *testing.T) {
	_, err := Marshal([]Field{FileKey{ID: LskDraft, Value: 1}})
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	fields := []Field{
		FileKey{ID: LskExportSettings, Value: 99},
		StickersKeys{Installed: 1},
	}
	sk, ok := Find[StickersKeys](fields)
	require.True(t, ok)
	assert.Equal(t, uint64(1), sk.Installed)

	v, ok := FileKeyOf(fields, LskExportSettings)
	require.True(t, ok)
	assert.Equal(t, uint64(99), v)

	_, ok = FileKeyOf(fields, LskLocations)
	assert.False(t, ok)
	assert.Equal(t, "exportSettings", LskExportSettings.String())
	assert.False(t, Supported(LskUserMap))
	assert.True(t, Supported(LskLegacyAudios))
}
