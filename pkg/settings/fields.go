package settings

import (
	"github.com/joshuapare/tdatakit/internal/qt"
)

// Field is one decoded settings record. The set of implementations is closed:
// Bool, Int32, Uint64, String, Bytes, MtpAuthorization, DcOptionOldOld,
// DcOptionOld, ThemeKey, BackgroundKey, TileBackground and CacheSettings.
type Field interface {
	Block() BlockID
	encodePayload(w *qt.Writer) error
}

// Bool is a flag stored as an int32 equal to 1 when set.
type Bool struct {
	ID    BlockID
	Value bool
}

func (f Bool) Block() BlockID { return f.ID }

func (f Bool) encodePayload(w *qt.Writer) error {
	var v int32
	if f.Value {
		v = 1
	}
	w.Int32(v)
	return nil
}

// Int32 is a signed 32-bit setting.
type Int32 struct {
	ID    BlockID
	Value int32
}

func (f Int32) Block() BlockID { return f.ID }

func (f Int32) encodePayload(w *qt.Writer) error {
	w.Int32(f.Value)
	return nil
}

// Uint64 is a 64-bit key setting.
type Uint64 struct {
	ID    BlockID
	Value uint64
}

func (f Uint64) Block() BlockID { return f.ID }

func (f Uint64) encodePayload(w *qt.Writer) error {
	w.Uint64(f.Value)
	return nil
}

// String is a QString setting.
type String struct {
	ID    BlockID
	Value string
}

func (f String) Block() BlockID { return f.ID }

func (f String) encodePayload(w *qt.Writer) error {
	return w.QString(f.Value)
}

// Bytes is an opaque QByteArray setting.
type Bytes struct {
	ID    BlockID
	Value []byte
}

func (f Bytes) Block() BlockID { return f.ID }

func (f Bytes) encodePayload(w *qt.Writer) error {
	w.ByteArray(f.Value)
	return nil
}

// MtpAuthorization carries the serialized protocol authorization state of an
// account. Package tdata parses Data.
type MtpAuthorization struct {
	Data []byte
}

func (MtpAuthorization) Block() BlockID { return DbiMtpAuthorization }

func (f MtpAuthorization) encodePayload(w *qt.Writer) error {
	w.ByteArray(f.Data)
	return nil
}

// DcOptionOldOld is the oldest datacenter endpoint layout.
type DcOptionOldOld struct {
	DcID uint32
	Host string
	IP   string
	Port uint32
}

func (DcOptionOldOld) Block() BlockID { return DbiDcOptionOldOld }

func (f DcOptionOldOld) encodePayload(w *qt.Writer) error {
	w.Uint32(f.DcID)
	if err := w.QString(f.Host); err != nil {
		return err
	}
	if err := w.QString(f.IP); err != nil {
		return err
	}
	w.Uint32(f.Port)
	return nil
}

// DcOptionOld is the datacenter endpoint layout with flags. DcIDWithShift
// holds the datacenter id combined with a test/media shift.
type DcOptionOld struct {
	DcIDWithShift uint32
	Flags         int32
	IP            string
	Port          uint32
}

func (DcOptionOld) Block() BlockID { return DbiDcOptionOld }

func (f DcOptionOld) encodePayload(w *qt.Writer) error {
	w.Uint32(f.DcIDWithShift)
	w.Int32(f.Flags)
	if err := w.QString(f.IP); err != nil {
		return err
	}
	w.Uint32(f.Port)
	return nil
}

// ThemeKey references the day and night theme files. NightMode is the raw
// stored word; 1 means night mode is on.
type ThemeKey struct {
	Day       uint64
	Night     uint64
	NightMode int32
}

// IsNight reports whether night mode is on.
func (f ThemeKey) IsNight() bool { return f.NightMode == 1 }

func (ThemeKey) Block() BlockID { return DbiThemeKey }

func (f ThemeKey) encodePayload(w *qt.Writer) error {
	w.Uint64(f.Day)
	w.Uint64(f.Night)
	w.Int32(f.NightMode)
	return nil
}

// BackgroundKey references the day and night chat backgrounds.
type BackgroundKey struct {
	Day   uint64
	Night uint64
}

func (BackgroundKey) Block() BlockID { return DbiBackgroundKey }

func (f BackgroundKey) encodePayload(w *qt.Writer) error {
	w.Uint64(f.Day)
	w.Uint64(f.Night)
	return nil
}

// TileBackground records whether the backgrounds are tiled. Any non-zero
// word means tiled; the words are kept as stored.
type TileBackground struct {
	Day   uint32
	Night uint32
}

// Tiled reports the day and night tiling flags.
func (f TileBackground) Tiled() (day, night bool) { return f.Day != 0, f.Night != 0 }

func (TileBackground) Block() BlockID { return DbiTileBackground }

func (f TileBackground) encodePayload(w *qt.Writer) error {
	w.Uint32(f.Day)
	w.Uint32(f.Night)
	return nil
}

// CacheSettings holds the media cache limits. Times are in seconds.
type CacheSettings struct {
	Size    int64
	SizeBig int64
	Time    uint32
	TimeBig uint32
}

func (CacheSettings) Block() BlockID { return DbiCacheSettings }

func (f CacheSettings) encodePayload(w *qt.Writer) error {
	w.Int64(f.Size)
	w.Int64(f.SizeBig)
	w.Uint32(f.Time)
	w.Uint32(f.TimeBig)
	return nil
}
