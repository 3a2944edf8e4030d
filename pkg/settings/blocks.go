package settings

import "fmt"

// BlockID is a settings-schema discriminant.
type BlockID uint32

// Settings block ids as written by the desktop client. Ids marked Old are
// only found in files produced by older releases.
const (
	DbiKey                       BlockID = 0x00
	DbiUser                      BlockID = 0x01
	DbiDcOptionOldOld            BlockID = 0x02
	DbiChatSizeMaxOld            BlockID = 0x03
	DbiMutePeerOld               BlockID = 0x04
	DbiSendKeyOld                BlockID = 0x05
	DbiAutoStart                 BlockID = 0x06
	DbiStartMinimized            BlockID = 0x07
	DbiSoundFlashBounceNotifyOld BlockID = 0x08
	DbiWorkModeOld               BlockID = 0x09
	DbiSeenTrayTooltip           BlockID = 0x0a
	DbiDesktopNotifyOld          BlockID = 0x0b
	DbiAutoUpdate                BlockID = 0x0c
	DbiLastUpdateCheck           BlockID = 0x0d
	DbiWindowPositionOld         BlockID = 0x0e
	DbiConnectionTypeOldOld      BlockID = 0x0f
	DbiDefaultAttach             BlockID = 0x11
	DbiCatsAndDogsOld            BlockID = 0x12
	DbiReplaceEmojiOld           BlockID = 0x13
	DbiAskDownloadPathOld        BlockID = 0x14
	DbiDownloadPathOldOld        BlockID = 0x15
	DbiScaleOld                  BlockID = 0x16
	DbiEmojiTabOld               BlockID = 0x17
	DbiRecentEmojiOldOldOld      BlockID = 0x18
	DbiLoggedPhoneNumberOld      BlockID = 0x19
	DbiMutedPeersOld             BlockID = 0x1a
	DbiNotifyViewOld             BlockID = 0x1c
	DbiSendToMenu                BlockID = 0x1d
	DbiCompressPastedImageOld    BlockID = 0x1e
	DbiLangOld                   BlockID = 0x1f
	DbiLangFileOld               BlockID = 0x20
	DbiTileBackgroundOld         BlockID = 0x21
	DbiAutoLockOld               BlockID = 0x22
	DbiDialogLastPath            BlockID = 0x23
	DbiRecentEmojiOldOld         BlockID = 0x24
	DbiEmojiVariantsOldOld       BlockID = 0x25
	DbiRecentStickers            BlockID = 0x26
	DbiDcOptionOld               BlockID = 0x27
	DbiTryIPv6Old                BlockID = 0x28
	DbiSongVolumeOld             BlockID = 0x29
	DbiWindowsNotificationsOld   BlockID = 0x30
	DbiIncludeMutedOld           BlockID = 0x31
	DbiMegagroupSizeMaxOld       BlockID = 0x32
	DbiDownloadPathOld           BlockID = 0x33
	DbiAutoDownloadOld           BlockID = 0x34
	DbiSavedGifsLimitOld         BlockID = 0x35
	DbiShowingSavedGifsOld       BlockID = 0x36
	DbiAutoPlayOld               BlockID = 0x37
	DbiAdaptiveForWideOld        BlockID = 0x38
	DbiHiddenPinnedMessagesOld   BlockID = 0x39
	DbiRecentEmojiOld            BlockID = 0x3a
	DbiEmojiVariantsOld          BlockID = 0x3b
	DbiDialogsModeOld            BlockID = 0x40
	DbiModerateModeOld           BlockID = 0x41
	DbiVideoVolumeOld            BlockID = 0x42
	DbiStickersRecentLimitOld    BlockID = 0x43
	DbiNativeNotificationsOld    BlockID = 0x44
	DbiNotificationsCountOld     BlockID = 0x45
	DbiNotificationsCornerOld    BlockID = 0x46
	DbiThemeKeyOld               BlockID = 0x47
	DbiDialogsWidthRatioOld      BlockID = 0x48
	DbiUseExternalVideoPlayer    BlockID = 0x49
	DbiDcOptionsOld              BlockID = 0x4a
	DbiMtpAuthorization          BlockID = 0x4b
	DbiLastSeenWarningSeenOld    BlockID = 0x4c
	DbiSessionSettings           BlockID = 0x4d
	DbiLangPackKey               BlockID = 0x4e
	DbiConnectionTypeOld         BlockID = 0x4f
	DbiStickersFavedLimitOld     BlockID = 0x50
	DbiSuggestStickersByEmojiOld BlockID = 0x51
	DbiSuggestEmojiOld           BlockID = 0x52
	DbiTxtDomainStringOldOld     BlockID = 0x53
	DbiThemeKey                  BlockID = 0x54
	DbiTileBackground            BlockID = 0x55
	DbiCacheSettingsOld          BlockID = 0x56
	DbiAnimationsDisabled        BlockID = 0x57
	DbiScalePercent              BlockID = 0x58
	DbiPlaybackSpeedOld          BlockID = 0x59
	DbiLanguagesKey              BlockID = 0x5a
	DbiCallSettingsOld           BlockID = 0x5b
	DbiCacheSettings             BlockID = 0x5c
	DbiTxtDomainStringOld        BlockID = 0x5d
	DbiApplicationSettings       BlockID = 0x5e
	DbiDialogsFiltersOld         BlockID = 0x5f
	DbiFallbackProductionConfig  BlockID = 0x60
	DbiBackgroundKey             BlockID = 0x61

	DbiEncryptedWithSalt BlockID = 333
	DbiEncrypted         BlockID = 444

	DbiVersion BlockID = 666
)

var blockNames = map[BlockID]string{
	DbiKey:                       "key",
	DbiUser:                      "user",
	DbiDcOptionOldOld:            "dcOptionOldOld",
	DbiChatSizeMaxOld:            "chatSizeMaxOld",
	DbiMutePeerOld:               "mutePeerOld",
	DbiSendKeyOld:                "sendKeyOld",
	DbiAutoStart:                 "autoStart",
	DbiStartMinimized:            "startMinimized",
	DbiSoundFlashBounceNotifyOld: "soundFlashBounceNotifyOld",
	DbiWorkModeOld:               "workModeOld",
	DbiSeenTrayTooltip:           "seenTrayTooltip",
	DbiDesktopNotifyOld:          "desktopNotifyOld",
	DbiAutoUpdate:                "autoUpdate",
	DbiLastUpdateCheck:           "lastUpdateCheck",
	DbiWindowPositionOld:         "windowPositionOld",
	DbiConnectionTypeOldOld:      "connectionTypeOldOld",
	DbiDefaultAttach:             "defaultAttach",
	DbiCatsAndDogsOld:            "catsAndDogsOld",
	DbiReplaceEmojiOld:           "replaceEmojiOld",
	DbiAskDownloadPathOld:        "askDownloadPathOld",
	DbiDownloadPathOldOld:        "downloadPathOldOld",
	DbiScaleOld:                  "scaleOld",
	DbiEmojiTabOld:               "emojiTabOld",
	DbiRecentEmojiOldOldOld:      "recentEmojiOldOldOld",
	DbiLoggedPhoneNumberOld:      "loggedPhoneNumberOld",
	DbiMutedPeersOld:             "mutedPeersOld",
	DbiNotifyViewOld:             "notifyViewOld",
	DbiSendToMenu:                "sendToMenu",
	DbiCompressPastedImageOld:    "compressPastedImageOld",
	DbiLangOld:                   "langOld",
	DbiLangFileOld:               "langFileOld",
	DbiTileBackgroundOld:         "tileBackgroundOld",
	DbiAutoLockOld:               "autoLockOld",
	DbiDialogLastPath:            "dialogLastPath",
	DbiRecentEmojiOldOld:         "recentEmojiOldOld",
	DbiEmojiVariantsOldOld:       "emojiVariantsOldOld",
	DbiRecentStickers:            "recentStickers",
	DbiDcOptionOld:               "dcOptionOld",
	DbiTryIPv6Old:                "tryIPv6Old",
	DbiSongVolumeOld:             "songVolumeOld",
	DbiWindowsNotificationsOld:   "windowsNotificationsOld",
	DbiIncludeMutedOld:           "includeMutedOld",
	DbiMegagroupSizeMaxOld:       "megagroupSizeMaxOld",
	DbiDownloadPathOld:           "downloadPathOld",
	DbiAutoDownloadOld:           "autoDownloadOld",
	DbiSavedGifsLimitOld:         "savedGifsLimitOld",
	DbiShowingSavedGifsOld:       "showingSavedGifsOld",
	DbiAutoPlayOld:               "autoPlayOld",
	DbiAdaptiveForWideOld:        "adaptiveForWideOld",
	DbiHiddenPinnedMessagesOld:   "hiddenPinnedMessagesOld",
	DbiRecentEmojiOld:            "recentEmojiOld",
	DbiEmojiVariantsOld:          "emojiVariantsOld",
	DbiDialogsModeOld:            "dialogsModeOld",
	DbiModerateModeOld:           "moderateModeOld",
	DbiVideoVolumeOld:            "videoVolumeOld",
	DbiStickersRecentLimitOld:    "stickersRecentLimitOld",
	DbiNativeNotificationsOld:    "nativeNotificationsOld",
	DbiNotificationsCountOld:     "notificationsCountOld",
	DbiNotificationsCornerOld:    "notificationsCornerOld",
	DbiThemeKeyOld:               "themeKeyOld",
	DbiDialogsWidthRatioOld:      "dialogsWidthRatioOld",
	DbiUseExternalVideoPlayer:    "useExternalVideoPlayer",
	DbiDcOptionsOld:              "dcOptionsOld",
	DbiMtpAuthorization:          "mtpAuthorization",
	DbiLastSeenWarningSeenOld:    "lastSeenWarningSeenOld",
	DbiSessionSettings:           "sessionSettings",
	DbiLangPackKey:               "langPackKey",
	DbiConnectionTypeOld:         "connectionTypeOld",
	DbiStickersFavedLimitOld:     "stickersFavedLimitOld",
	DbiSuggestStickersByEmojiOld: "suggestStickersByEmojiOld",
	DbiSuggestEmojiOld:           "suggestEmojiOld",
	DbiTxtDomainStringOldOld:     "txtDomainStringOldOld",
	DbiThemeKey:                  "themeKey",
	DbiTileBackground:            "tileBackground",
	DbiCacheSettingsOld:          "cacheSettingsOld",
	DbiAnimationsDisabled:        "animationsDisabled",
	DbiScalePercent:              "scalePercent",
	DbiPlaybackSpeedOld:          "playbackSpeedOld",
	DbiLanguagesKey:              "languagesKey",
	DbiCallSettingsOld:           "callSettingsOld",
	DbiCacheSettings:             "cacheSettings",
	DbiTxtDomainStringOld:        "txtDomainStringOld",
	DbiApplicationSettings:       "applicationSettings",
	DbiDialogsFiltersOld:         "dialogsFiltersOld",
	DbiFallbackProductionConfig:  "fallbackProductionConfig",
	DbiBackgroundKey:             "backgroundKey",
	DbiEncryptedWithSalt:         "encryptedWithSalt",
	DbiEncrypted:                 "encrypted",
	DbiVersion:                   "version",
}

// String returns the field name of the block, e.g. "autoStart".
func (id BlockID) String() string {
	if name, ok := blockNames[id]; ok {
		return name
	}
	return fmt.Sprintf("BlockID(0x%x)", uint32(id))
}

// Scalar block kinds. Each id appears in exactly one list; the decoder table
// and the encoder's kind check are both built from these.
var (
	boolBlocks = []BlockID{
		DbiAutoStart,
		DbiStartMinimized,
		DbiSendToMenu,
		DbiUseExternalVideoPlayer,
		DbiSeenTrayTooltip,
		DbiAutoUpdate,
		DbiTryIPv6Old,
		DbiAnimationsDisabled,
	}
	int32Blocks = []BlockID{
		DbiLastUpdateCheck,
		DbiScalePercent,
	}
	uint64Blocks = []BlockID{
		DbiLangPackKey,
	}
	stringBlocks = []BlockID{
		DbiDialogLastPath,
	}
	bytesBlocks = []BlockID{
		DbiFallbackProductionConfig,
		DbiApplicationSettings,
		DbiDcOptionsOld,
		DbiSessionSettings,
		DbiRecentStickers,
	}
)
