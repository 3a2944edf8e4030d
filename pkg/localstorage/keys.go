package localstorage

import "fmt"

// KeyID is a local-storage-schema discriminant.
type KeyID uint32

// Local storage map keys. Most entries hold the file key of a separate
// encrypted file; legacy entries hold inline records that are skipped.
const (
	LskUserMap               KeyID = 0x00
	LskDraft                 KeyID = 0x01 // data: PeerId peer
	LskDraftPosition         KeyID = 0x02 // data: PeerId peer
	LskLegacyImages          KeyID = 0x03 // legacy
	LskLocations             KeyID = 0x04 // no data
	LskLegacyStickerImages   KeyID = 0x05 // legacy
	LskLegacyAudios          KeyID = 0x06 // legacy
	LskRecentStickersOld     KeyID = 0x07 // no data
	LskBackgroundOldOld      KeyID = 0x08 // no data
	LskUserSettings          KeyID = 0x09 // no data
	LskRecentHashtagsAndBots KeyID = 0x0a // no data
	LskStickersOld           KeyID = 0x0b // no data
	LskSavedPeersOld         KeyID = 0x0c // no data
	LskReportSpamStatusesOld KeyID = 0x0d // no data
	LskSavedGifsOld          KeyID = 0x0e // no data
	LskSavedGifs             KeyID = 0x0f // no data
	LskStickersKeys          KeyID = 0x10 // no data
	LskTrustedBots           KeyID = 0x11 // no data
	LskFavedStickers         KeyID = 0x12 // no data
	LskExportSettings        KeyID = 0x13 // no data
	LskBackgroundOld         KeyID = 0x14 // no data
	LskSelfSerialized        KeyID = 0x15 // serialized self
	LskMasksKeys             KeyID = 0x16 // no data
)

var keyNames = [...]string{
	LskUserMap:               "userMap",
	LskDraft:                 "draft",
	LskDraftPosition:         "draftPosition",
	LskLegacyImages:          "legacyImages",
	LskLocations:             "locations",
	LskLegacyStickerImages:   "legacyStickerImages",
	LskLegacyAudios:          "legacyAudios",
	LskRecentStickersOld:     "recentStickersOld",
	LskBackgroundOldOld:      "backgroundOldOld",
	LskUserSettings:          "userSettings",
	LskRecentHashtagsAndBots: "recentHashtagsAndBots",
	LskStickersOld:           "stickersOld",
	LskSavedPeersOld:         "savedPeersOld",
	LskReportSpamStatusesOld: "reportSpamStatusesOld",
	LskSavedGifsOld:          "savedGifsOld",
	LskSavedGifs:             "savedGifs",
	LskStickersKeys:          "stickersKeys",
	LskTrustedBots:           "trustedBots",
	LskFavedStickers:         "favedStickers",
	LskExportSettings:        "exportSettings",
	LskBackgroundOld:         "backgroundOld",
	LskSelfSerialized:        "selfSerialized",
	LskMasksKeys:             "masksKeys",
}

func (id KeyID) String() string {
	if int(id) < len(keyNames) {
		return keyNames[id]
	}
	return fmt.Sprintf("KeyID(0x%x)", uint32(id))
}

// LegacyRecordSize is the stride of inline legacy records:
// FileKey key; quint64 first, second; qint32 size.
const LegacyRecordSize = 28

// DraftRefSize is the encoded size of one DraftRef.
const DraftRefSize = 16

var (
	// fileKeyBlocks hold a single 64-bit file key.
	fileKeyBlocks = []KeyID{
		LskLocations,
		LskReportSpamStatusesOld,
		LskTrustedBots,
		LskRecentStickersOld,
		LskBackgroundOldOld,
		LskUserSettings,
		LskRecentHashtagsAndBots,
		LskStickersOld,
		LskFavedStickers,
		LskSavedGifsOld,
		LskSavedGifs,
		LskSavedPeersOld,
		LskExportSettings,
	}
	legacyBlocks = []KeyID{
		LskLegacyImages,
		LskLegacyStickerImages,
		LskLegacyAudios,
	}
)
